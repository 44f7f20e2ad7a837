package warehouse

import (
	"errors"
	"time"
)

// Warehouse is a physical storage site.
type Warehouse struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	Capacity  int64     `json:"capacity" db:"capacity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

var (
	ErrNotFound        = errors.New("warehouse: not found")
	ErrInvalidArgument = errors.New("warehouse: invalid argument")
)
