package delivery

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory delivery store useful for tests.
type MemoryRepo struct {
	mu         sync.Mutex
	deliveries map[string]Delivery
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{deliveries: make(map[string]Delivery)} }

func (r *MemoryRepo) Insert(ctx context.Context, d Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries[d.ID] = d
	return nil
}

func (r *MemoryRepo) Find(ctx context.Context, id string) (Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deliveries[id]
	if !ok {
		return Delivery{}, ErrNotFound
	}
	return d, nil
}

func (r *MemoryRepo) List(ctx context.Context, driverIdentity string) ([]Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Delivery
	for _, d := range r.deliveries {
		if driverIdentity == "" || d.DriverIdentity == driverIdentity {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, d Delivery) (Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.deliveries[d.ID]
	if !ok {
		return Delivery{}, ErrNotFound
	}
	d.ItemID = existing.ItemID
	d.WarehouseID = existing.WarehouseID
	d.CreatedAt = existing.CreatedAt
	r.deliveries[d.ID] = d
	return d, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.deliveries[id]; !ok {
		return ErrNotFound
	}
	delete(r.deliveries, id)
	return nil
}
