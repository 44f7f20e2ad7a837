package token

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory ledger useful for tests.
// All mutation happens under one lock, which gives Rotate the same
// no-partially-revoked-set guarantee the Postgres transaction provides.
type MemoryRepo struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Persist(ctx context.Context, identity, tok string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{
		ID:        uuid.NewString(),
		Identity:  identity,
		Token:     tok,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (r *MemoryRepo) FindByToken(ctx context.Context, tok string) (Entry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Deterministic encoding can reissue an identical token string within the
	// same second; the newest ledger entry is authoritative.
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].Token == tok {
			return r.entries[i], true, nil
		}
	}
	return Entry{}, false, nil
}

func (r *MemoryRepo) FindAllValidForIdentity(ctx context.Context, identity string) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Entry
	for _, e := range r.entries {
		if e.Identity == identity && e.Valid() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *MemoryRepo) RevokeAll(ctx context.Context, entries []Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, target := range entries {
		for i := range r.entries {
			if r.entries[i].ID == target.ID {
				r.entries[i].Expired = true
				r.entries[i].Revoked = true
			}
		}
	}
	return nil
}

func (r *MemoryRepo) Rotate(ctx context.Context, identity, tok string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].Identity == identity && r.entries[i].Valid() {
			r.entries[i].Expired = true
			r.entries[i].Revoked = true
		}
	}
	r.entries = append(r.entries, Entry{
		ID:        uuid.NewString(),
		Identity:  identity,
		Token:     tok,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (r *MemoryRepo) DeleteAllForIdentity(ctx context.Context, identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.Identity != identity {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

// Entries returns a snapshot of all entries, for test assertions.
func (r *MemoryRepo) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
