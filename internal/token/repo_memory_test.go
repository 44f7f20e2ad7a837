package token

import (
	"context"
	"testing"
)

func TestMemoryRotate_LeavesExactlyOneValidEntry(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	for _, tok := range []string{"t1", "t2", "t3"} {
		if err := r.Rotate(ctx, "a@x.com", tok); err != nil {
			t.Fatalf("rotate: %v", err)
		}
	}

	valid, err := r.FindAllValidForIdentity(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(valid) != 1 || valid[0].Token != "t3" {
		t.Fatalf("expected only t3 valid, got %+v", valid)
	}
	if len(r.Entries()) != 3 {
		t.Fatalf("rotation must keep the revoked history")
	}
}

func TestMemoryRotate_ScopedToIdentity(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	if err := r.Rotate(ctx, "a@x.com", "ta"); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if err := r.Rotate(ctx, "b@x.com", "tb"); err != nil {
		t.Fatalf("rotate: %v", err)
	}

	e, ok, err := r.FindByToken(ctx, "ta")
	if err != nil || !ok {
		t.Fatalf("find: %v ok=%v", err, ok)
	}
	if !e.Valid() {
		t.Fatalf("another identity's rotation must not revoke this entry")
	}
}

func TestMemoryRevokeAll(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	if err := r.Persist(ctx, "a@x.com", "t1"); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if err := r.Persist(ctx, "a@x.com", "t2"); err != nil {
		t.Fatalf("persist: %v", err)
	}

	valid, _ := r.FindAllValidForIdentity(ctx, "a@x.com")
	if err := r.RevokeAll(ctx, valid); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	left, _ := r.FindAllValidForIdentity(ctx, "a@x.com")
	if len(left) != 0 {
		t.Fatalf("expected no valid entries, got %+v", left)
	}
	for _, e := range r.Entries() {
		if !e.Expired || !e.Revoked {
			t.Fatalf("entry not flagged: %+v", e)
		}
	}
}

func TestMemoryDeleteAllForIdentity(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	_ = r.Persist(ctx, "a@x.com", "t1")
	_ = r.Persist(ctx, "b@x.com", "t2")

	if err := r.DeleteAllForIdentity(ctx, "a@x.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := r.FindByToken(ctx, "t1"); ok {
		t.Fatalf("t1 should be gone")
	}
	if _, ok, _ := r.FindByToken(ctx, "t2"); !ok {
		t.Fatalf("t2 must survive")
	}
}
