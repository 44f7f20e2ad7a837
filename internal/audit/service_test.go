package audit

import (
	"context"
	"errors"
	"testing"
)

func TestAppend_FillsDefaults(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.Record(context.Background(), EventTypeLogin, "a@x.com", "login"); err != nil {
		t.Fatalf("record: %v", err)
	}

	events := repo.Events()
	if len(events) != 1 {
		t.Fatalf("events = %d", len(events))
	}
	e := events[0]
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Fatalf("defaults not filled: %+v", e)
	}
	if e.Type != EventTypeLogin || e.Identity != "a@x.com" {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestAppend_RejectsUntypedEvents(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if err := svc.Append(context.Background(), Event{Identity: "a@x.com"}); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestRecordActor(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.RecordActor(context.Background(), EventTypeRoleChange, "a@x.com", "root@x.com", "role changed"); err != nil {
		t.Fatalf("record: %v", err)
	}
	e := repo.Events()[0]
	if e.ActorIdentity != "root@x.com" {
		t.Fatalf("actor = %q", e.ActorIdentity)
	}
}
