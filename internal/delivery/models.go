package delivery

import (
	"errors"
	"time"
)

// Delivery moves an item between the outside world and a warehouse.
//
// Status machine:
//   CREATED -> IN_PROGRESS -> DELIVERED
//   CREATED, IN_PROGRESS   -> CANCELLED
// DELIVERED and CANCELLED are terminal.
type Delivery struct {
	ID             string    `json:"id" db:"id"`
	ItemID         string    `json:"item_id" db:"item_id"`
	WarehouseID    string    `json:"warehouse_id" db:"warehouse_id"`
	DriverIdentity string    `json:"driver_identity,omitempty" db:"driver_identity"`
	Status         Status    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type Status string

const (
	StatusCreated    Status = "CREATED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// CanTransition reports whether moving from s to next is legal.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusCreated:
		return next == StatusInProgress || next == StatusCancelled
	case StatusInProgress:
		return next == StatusDelivered || next == StatusCancelled
	default:
		return false
	}
}

var (
	ErrNotFound          = errors.New("delivery: not found")
	ErrInvalidArgument   = errors.New("delivery: invalid argument")
	ErrInvalidTransition = errors.New("delivery: invalid status transition")
	ErrNotADriver        = errors.New("delivery: assignee is not a driver")
)
