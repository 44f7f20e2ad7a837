package reporting

import (
	"context"
	"sync"
	"time"

	"warehouse-platform/internal/delivery"
	"warehouse-platform/internal/item"
)

// MemoryRepo is an in-memory report source useful for tests.
type MemoryRepo struct {
	mu         sync.Mutex
	deliveries []delivery.Delivery
	items      []item.Item
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) AddDelivery(d delivery.Delivery) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, d)
}

func (r *MemoryRepo) AddItem(it item.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, it)
}

func (r *MemoryRepo) ListDeliveries(ctx context.Context, from, to time.Time, warehouseID, driver string) ([]delivery.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []delivery.Delivery
	for _, d := range r.deliveries {
		if d.CreatedAt.Before(from) || !d.CreatedAt.Before(to) {
			continue
		}
		if warehouseID != "" && d.WarehouseID != warehouseID {
			continue
		}
		if driver != "" && d.DriverIdentity != driver {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *MemoryRepo) ListItems(ctx context.Context, warehouseID string) ([]item.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []item.Item
	for _, it := range r.items {
		if warehouseID != "" && it.WarehouseID != warehouseID {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}
