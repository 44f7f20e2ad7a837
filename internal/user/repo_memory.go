package user

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory user store useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu    sync.Mutex
	users map[string]User // keyed by identity (email)
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]User)}
}

func (r *MemoryRepo) Create(ctx context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return User{}, ErrAlreadyExists
	}
	r.users[u.Email] = u
	return u, nil
}

func (r *MemoryRepo) FindByIdentity(ctx context.Context, identity string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[identity]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *MemoryRepo) FindByID(ctx context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) List(ctx context.Context) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) UpdateRole(ctx context.Context, identity, role string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[identity]
	if !ok {
		return User{}, ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	r.users[identity] = u
	return u, nil
}

func (r *MemoryRepo) UpdateProfile(ctx context.Context, identity, name string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[identity]
	if !ok {
		return User{}, ErrNotFound
	}
	u.Name = name
	u.UpdatedAt = time.Now().UTC()
	r.users[identity] = u
	return u, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[identity]; !ok {
		return ErrNotFound
	}
	delete(r.users, identity)
	return nil
}
