package item

import (
	"context"
	"database/sql"
	"errors"
)

// Repo persists items in Postgres.
//
// Assumed table:
//   items (id, name, description, warehouse_id, quantity, created_at, updated_at)
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Insert(ctx context.Context, it Item) error {
	const q = `
INSERT INTO items (id, name, description, warehouse_id, quantity, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`
	_, err := r.db.ExecContext(ctx, q, it.ID, it.Name, it.Description, it.WarehouseID, it.Quantity, it.CreatedAt, it.UpdatedAt)
	return err
}

func (r *Repo) Find(ctx context.Context, id string) (Item, error) {
	const q = `
SELECT id, name, description, warehouse_id, quantity, created_at, updated_at
FROM items
WHERE id = $1
`
	var it Item
	err := r.db.QueryRowContext(ctx, q, id).Scan(&it.ID, &it.Name, &it.Description, &it.WarehouseID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return it, nil
}

func (r *Repo) List(ctx context.Context, warehouseID string) ([]Item, error) {
	const base = `
SELECT id, name, description, warehouse_id, quantity, created_at, updated_at
FROM items
`
	var (
		rows *sql.Rows
		err  error
	)
	if warehouseID == "" {
		rows, err = r.db.QueryContext(ctx, base+`ORDER BY created_at`)
	} else {
		rows, err = r.db.QueryContext(ctx, base+`WHERE warehouse_id = $1 ORDER BY created_at`, warehouseID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.WarehouseID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *Repo) Update(ctx context.Context, it Item) (Item, error) {
	const q = `
UPDATE items
SET name = $2, description = $3, warehouse_id = $4, quantity = $5, updated_at = $6
WHERE id = $1
RETURNING id, name, description, warehouse_id, quantity, created_at, updated_at
`
	var out Item
	err := r.db.QueryRowContext(ctx, q, it.ID, it.Name, it.Description, it.WarehouseID, it.Quantity, it.UpdatedAt).Scan(
		&out.ID, &out.Name, &out.Description, &out.WarehouseID, &out.Quantity, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM items WHERE id = $1`
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
