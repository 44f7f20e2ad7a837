package warehouse

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory warehouse store useful for tests.
type MemoryRepo struct {
	mu         sync.Mutex
	warehouses map[string]Warehouse
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{warehouses: make(map[string]Warehouse)} }

func (r *MemoryRepo) Insert(ctx context.Context, w Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warehouses[w.ID] = w
	return nil
}

func (r *MemoryRepo) Find(ctx context.Context, id string) (Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.warehouses[id]
	if !ok {
		return Warehouse{}, ErrNotFound
	}
	return w, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Warehouse, 0, len(r.warehouses))
	for _, w := range r.warehouses {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, w Warehouse) (Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.warehouses[w.ID]
	if !ok {
		return Warehouse{}, ErrNotFound
	}
	w.CreatedAt = existing.CreatedAt
	r.warehouses[w.ID] = w
	return w, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.warehouses[id]; !ok {
		return ErrNotFound
	}
	delete(r.warehouses, id)
	return nil
}
