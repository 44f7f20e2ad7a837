package item

import (
	"errors"
	"time"
)

// Item is a stocked product tracked per warehouse.
type Item struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	WarehouseID string    `json:"warehouse_id" db:"warehouse_id"`
	Quantity    int64     `json:"quantity" db:"quantity"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

var (
	ErrNotFound        = errors.New("item: not found")
	ErrInvalidArgument = errors.New("item: invalid argument")
)
