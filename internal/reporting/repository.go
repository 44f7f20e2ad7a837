package reporting

import (
	"context"
	"database/sql"
	"time"

	"warehouse-platform/internal/delivery"
	"warehouse-platform/internal/item"
)

// PostgresRepo reads report source rows from the domain tables.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) ListDeliveries(ctx context.Context, from, to time.Time, warehouseID, driver string) ([]delivery.Delivery, error) {
	const q = `
SELECT id, item_id, warehouse_id, driver_identity, status, created_at, updated_at
FROM deliveries
WHERE created_at >= $1 AND created_at < $2
  AND ($3 = '' OR warehouse_id = $3)
  AND ($4 = '' OR driver_identity = $4)
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q, from, to, warehouseID, driver)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []delivery.Delivery
	for rows.Next() {
		var d delivery.Delivery
		if err := rows.Scan(&d.ID, &d.ItemID, &d.WarehouseID, &d.DriverIdentity, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListItems(ctx context.Context, warehouseID string) ([]item.Item, error) {
	const q = `
SELECT id, name, description, warehouse_id, quantity, created_at, updated_at
FROM items
WHERE ($1 = '' OR warehouse_id = $1)
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q, warehouseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []item.Item
	for rows.Next() {
		var it item.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.WarehouseID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
