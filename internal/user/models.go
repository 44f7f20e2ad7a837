package user

import (
	"errors"
	"time"
)

// User is a warehouse-platform account.
//
// Invariants:
// - Email is the account identity: unique, case-sensitive, immutable once assigned.
// - PasswordHash is a bcrypt hash; plaintext secrets never reach this package.
// - Role is one of the fixed set in internal/rbac.
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Identity, SecretHash and RoleName satisfy the minimal user-details contract
// the token codec and guard depend on.
func (u User) Identity() string   { return u.Email }
func (u User) SecretHash() string { return u.PasswordHash }
func (u User) RoleName() string   { return u.Role }

var (
	ErrNotFound      = errors.New("user: not found")
	ErrAlreadyExists = errors.New("user: already exists")
)
