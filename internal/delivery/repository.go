package delivery

import (
	"context"
	"database/sql"
	"errors"
)

// Repo persists deliveries in Postgres.
//
// Assumed table:
//   deliveries (id, item_id, warehouse_id, driver_identity, status, created_at, updated_at)
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Insert(ctx context.Context, d Delivery) error {
	const q = `
INSERT INTO deliveries (id, item_id, warehouse_id, driver_identity, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`
	_, err := r.db.ExecContext(ctx, q, d.ID, d.ItemID, d.WarehouseID, d.DriverIdentity, d.Status, d.CreatedAt, d.UpdatedAt)
	return err
}

func (r *Repo) Find(ctx context.Context, id string) (Delivery, error) {
	const q = `
SELECT id, item_id, warehouse_id, driver_identity, status, created_at, updated_at
FROM deliveries
WHERE id = $1
`
	var d Delivery
	err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.ItemID, &d.WarehouseID, &d.DriverIdentity, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Delivery{}, ErrNotFound
		}
		return Delivery{}, err
	}
	return d, nil
}

func (r *Repo) List(ctx context.Context, driverIdentity string) ([]Delivery, error) {
	const base = `
SELECT id, item_id, warehouse_id, driver_identity, status, created_at, updated_at
FROM deliveries
`
	var (
		rows *sql.Rows
		err  error
	)
	if driverIdentity == "" {
		rows, err = r.db.QueryContext(ctx, base+`ORDER BY created_at`)
	} else {
		rows, err = r.db.QueryContext(ctx, base+`WHERE driver_identity = $1 ORDER BY created_at`, driverIdentity)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Delivery
	for rows.Next() {
		var d Delivery
		if err := rows.Scan(&d.ID, &d.ItemID, &d.WarehouseID, &d.DriverIdentity, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repo) Update(ctx context.Context, d Delivery) (Delivery, error) {
	const q = `
UPDATE deliveries
SET driver_identity = $2, status = $3, updated_at = $4
WHERE id = $1
RETURNING id, item_id, warehouse_id, driver_identity, status, created_at, updated_at
`
	var out Delivery
	err := r.db.QueryRowContext(ctx, q, d.ID, d.DriverIdentity, d.Status, d.UpdatedAt).Scan(
		&out.ID, &out.ItemID, &out.WarehouseID, &out.DriverIdentity, &out.Status, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Delivery{}, ErrNotFound
		}
		return Delivery{}, err
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM deliveries WHERE id = $1`
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
