package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Repo persists users in Postgres.
//
// Assumed table:
//   users (id, name, email UNIQUE, password_hash, role, created_at, updated_at)
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

const pgUniqueViolation = "23505"

func (r *Repo) Create(ctx context.Context, u User) (User, error) {
	const q = `
INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return User{}, ErrAlreadyExists
		}
		return User{}, err
	}
	return u, nil
}

func (r *Repo) FindByIdentity(ctx context.Context, identity string) (User, error) {
	const q = `
SELECT id, name, email, password_hash, role, created_at, updated_at
FROM users
WHERE email = $1
`
	return r.scanOne(ctx, q, identity)
}

func (r *Repo) FindByID(ctx context.Context, id string) (User, error) {
	const q = `
SELECT id, name, email, password_hash, role, created_at, updated_at
FROM users
WHERE id = $1
`
	return r.scanOne(ctx, q, id)
}

func (r *Repo) List(ctx context.Context) ([]User, error) {
	const q = `
SELECT id, name, email, password_hash, role, created_at, updated_at
FROM users
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateRole(ctx context.Context, identity, role string) (User, error) {
	const q = `
UPDATE users
SET role = $2, updated_at = now()
WHERE email = $1
RETURNING id, name, email, password_hash, role, created_at, updated_at
`
	return r.scanOne(ctx, q, identity, role)
}

func (r *Repo) UpdateProfile(ctx context.Context, identity, name string) (User, error) {
	const q = `
UPDATE users
SET name = $2, updated_at = now()
WHERE email = $1
RETURNING id, name, email, password_hash, role, created_at, updated_at
`
	return r.scanOne(ctx, q, identity, name)
}

func (r *Repo) Delete(ctx context.Context, identity string) error {
	const q = `DELETE FROM users WHERE email = $1`
	res, err := r.db.ExecContext(ctx, q, identity)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) scanOne(ctx context.Context, q string, args ...any) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}
