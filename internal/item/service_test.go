package item

import (
	"context"
	"errors"
	"testing"
)

func newTestService() *Service {
	return NewService(NewMemoryRepo())
}

func TestCreate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	it, err := svc.Create(ctx, CreateRequest{Name: "  Pallet Jack ", WarehouseID: "wh-1", Quantity: 4})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if it.Name != "Pallet Jack" {
		t.Fatalf("name = %q", it.Name)
	}
	if it.ID == "" {
		t.Fatalf("missing id")
	}

	bad := []CreateRequest{
		{WarehouseID: "wh-1"},
		{Name: "x"},
		{Name: "x", WarehouseID: "wh-1", Quantity: -1},
	}
	for _, req := range bad {
		if _, err := svc.Create(ctx, req); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%+v: expected ErrInvalidArgument, got %v", req, err)
		}
	}
}

func TestAdjustQuantity(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	it, err := svc.Create(ctx, CreateRequest{Name: "Box", WarehouseID: "wh-1", Quantity: 10})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.AdjustQuantity(ctx, it.ID, -4)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got.Quantity != 6 {
		t.Fatalf("quantity = %d", got.Quantity)
	}

	// Stock never goes negative.
	if _, err := svc.AdjustQuantity(ctx, it.ID, -7); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	after, err := svc.Get(ctx, it.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if after.Quantity != 6 {
		t.Fatalf("failed adjust must not change stock, got %d", after.Quantity)
	}

	if _, err := svc.AdjustQuantity(ctx, "missing", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_FiltersByWarehouse(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateRequest{Name: "A", WarehouseID: "wh-1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateRequest{Name: "B", WarehouseID: "wh-2"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all = %d", len(all))
	}

	one, err := svc.List(ctx, "wh-2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(one) != 1 || one[0].Name != "B" {
		t.Fatalf("filtered = %+v", one)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	it, err := svc.Create(ctx, CreateRequest{Name: "Old", WarehouseID: "wh-1", Quantity: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Update(ctx, it.ID, UpdateRequest{Name: "New", WarehouseID: "wh-1", Quantity: 2})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "New" || got.Quantity != 2 {
		t.Fatalf("updated = %+v", got)
	}

	if err := svc.Delete(ctx, it.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, it.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
