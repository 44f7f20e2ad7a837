package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"warehouse-platform/internal/delivery"
	"warehouse-platform/internal/item"
)

var (
	t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
)

func seedDeliveries(repo *MemoryRepo) {
	mk := func(id string, status delivery.Status, wh, driver string, at time.Time) delivery.Delivery {
		return delivery.Delivery{ID: id, ItemID: "i", WarehouseID: wh, DriverIdentity: driver, Status: status, CreatedAt: at}
	}
	repo.AddDelivery(mk("d1", delivery.StatusDelivered, "wh-1", "drv@x.com", t0.Add(24*time.Hour)))
	repo.AddDelivery(mk("d2", delivery.StatusDelivered, "wh-1", "drv@x.com", t0.Add(48*time.Hour)))
	repo.AddDelivery(mk("d3", delivery.StatusCancelled, "wh-1", "", t0.Add(72*time.Hour)))
	repo.AddDelivery(mk("d4", delivery.StatusInProgress, "wh-2", "drv@x.com", t0.Add(96*time.Hour)))
	// Outside the query range.
	repo.AddDelivery(mk("d5", delivery.StatusDelivered, "wh-1", "", t1.Add(24*time.Hour)))
}

func TestDeliverySummary(t *testing.T) {
	repo := NewMemoryRepo()
	seedDeliveries(repo)
	svc := NewService(repo)

	got, err := svc.DeliverySummary(context.Background(), DeliverySummaryRequest{
		Range: TimeRange{From: t0, To: t1},
	})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got.TotalDeliveries != 4 {
		t.Fatalf("total = %d", got.TotalDeliveries)
	}
	if got.DeliveredDeliveries != 2 || got.CancelledDeliveries != 1 || got.InProgressDeliveries != 1 {
		t.Fatalf("breakdown = %+v", got)
	}
	if got.CompletionRate != 0.5 {
		t.Fatalf("completion rate = %v", got.CompletionRate)
	}
}

func TestDeliverySummary_Filters(t *testing.T) {
	repo := NewMemoryRepo()
	seedDeliveries(repo)
	svc := NewService(repo)

	byWarehouse, err := svc.DeliverySummary(context.Background(), DeliverySummaryRequest{
		Range:       TimeRange{From: t0, To: t1},
		WarehouseID: "wh-2",
	})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if byWarehouse.TotalDeliveries != 1 || byWarehouse.InProgressDeliveries != 1 {
		t.Fatalf("by warehouse = %+v", byWarehouse)
	}

	byDriver, err := svc.DeliverySummary(context.Background(), DeliverySummaryRequest{
		Range:  TimeRange{From: t0, To: t1},
		Driver: "drv@x.com",
	})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if byDriver.TotalDeliveries != 3 {
		t.Fatalf("by driver = %+v", byDriver)
	}
}

func TestDeliverySummary_RejectsBadRange(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	bad := []TimeRange{
		{},
		{From: t0},
		{From: t1, To: t0},
	}
	for _, r := range bad {
		if _, err := svc.DeliverySummary(context.Background(), DeliverySummaryRequest{Range: r}); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("%+v: expected ErrInvalidRequest, got %v", r, err)
		}
	}
}

func TestStockSummary(t *testing.T) {
	repo := NewMemoryRepo()
	repo.AddItem(item.Item{ID: "i1", WarehouseID: "wh-1", Quantity: 10})
	repo.AddItem(item.Item{ID: "i2", WarehouseID: "wh-1", Quantity: 0})
	repo.AddItem(item.Item{ID: "i3", WarehouseID: "wh-2", Quantity: 7})
	svc := NewService(repo)

	all, err := svc.StockSummary(context.Background(), StockSummaryRequest{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if all.DistinctItems != 3 || all.TotalQuantity != 17 || all.OutOfStockItems != 1 {
		t.Fatalf("all = %+v", all)
	}

	scoped, err := svc.StockSummary(context.Background(), StockSummaryRequest{WarehouseID: "wh-1"})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if scoped.DistinctItems != 2 || scoped.TotalQuantity != 10 || scoped.OutOfStockItems != 1 {
		t.Fatalf("scoped = %+v", scoped)
	}
}
