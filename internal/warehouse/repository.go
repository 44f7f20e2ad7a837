package warehouse

import (
	"context"
	"database/sql"
	"errors"
)

// Repo persists warehouses in Postgres.
//
// Assumed table:
//   warehouses (id, name, address, capacity, created_at, updated_at)
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Insert(ctx context.Context, w Warehouse) error {
	const q = `
INSERT INTO warehouses (id, name, address, capacity, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
`
	_, err := r.db.ExecContext(ctx, q, w.ID, w.Name, w.Address, w.Capacity, w.CreatedAt, w.UpdatedAt)
	return err
}

func (r *Repo) Find(ctx context.Context, id string) (Warehouse, error) {
	const q = `
SELECT id, name, address, capacity, created_at, updated_at
FROM warehouses
WHERE id = $1
`
	var w Warehouse
	err := r.db.QueryRowContext(ctx, q, id).Scan(&w.ID, &w.Name, &w.Address, &w.Capacity, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Warehouse{}, ErrNotFound
		}
		return Warehouse{}, err
	}
	return w, nil
}

func (r *Repo) List(ctx context.Context) ([]Warehouse, error) {
	const q = `
SELECT id, name, address, capacity, created_at, updated_at
FROM warehouses
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Warehouse
	for rows.Next() {
		var w Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Address, &w.Capacity, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *Repo) Update(ctx context.Context, w Warehouse) (Warehouse, error) {
	const q = `
UPDATE warehouses
SET name = $2, address = $3, capacity = $4, updated_at = $5
WHERE id = $1
RETURNING id, name, address, capacity, created_at, updated_at
`
	var out Warehouse
	err := r.db.QueryRowContext(ctx, q, w.ID, w.Name, w.Address, w.Capacity, w.UpdatedAt).Scan(
		&out.ID, &out.Name, &out.Address, &out.Capacity, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Warehouse{}, ErrNotFound
		}
		return Warehouse{}, err
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM warehouses WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
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
