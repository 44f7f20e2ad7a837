package item

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory item store useful for tests.
type MemoryRepo struct {
	mu    sync.Mutex
	items map[string]Item
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{items: make(map[string]Item)} }

func (r *MemoryRepo) Insert(ctx context.Context, it Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[it.ID] = it
	return nil
}

func (r *MemoryRepo) Find(ctx context.Context, id string) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return it, nil
}

func (r *MemoryRepo) List(ctx context.Context, warehouseID string) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Item
	for _, it := range r.items {
		if warehouseID == "" || it.WarehouseID == warehouseID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, it Item) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[it.ID]
	if !ok {
		return Item{}, ErrNotFound
	}
	it.CreatedAt = existing.CreatedAt
	r.items[it.ID] = it
	return it, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}
