package reporting

import (
	"context"
	"errors"
	"time"

	"warehouse-platform/internal/delivery"
	"warehouse-platform/internal/item"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// Repository abstracts data access for reporting. Implementations should
// query the same tables the domain repositories write; reports never mutate.
type Repository interface {
	ListDeliveries(ctx context.Context, from, to time.Time, warehouseID, driver string) ([]delivery.Delivery, error)
	ListItems(ctx context.Context, warehouseID string) ([]item.Item, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) DeliverySummary(ctx context.Context, req DeliverySummaryRequest) (DeliverySummary, error) {
	if req.Range.From.IsZero() || req.Range.To.IsZero() || !req.Range.To.After(req.Range.From) {
		return DeliverySummary{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return DeliverySummary{}, errors.New("reporting: repository not configured")
	}

	rows, err := s.repo.ListDeliveries(ctx, req.Range.From, req.Range.To, req.WarehouseID, req.Driver)
	if err != nil {
		return DeliverySummary{}, err
	}

	out := DeliverySummary{WarehouseID: req.WarehouseID, Driver: req.Driver}
	for _, d := range rows {
		out.TotalDeliveries++
		switch d.Status {
		case delivery.StatusCreated:
			out.CreatedDeliveries++
		case delivery.StatusInProgress:
			out.InProgressDeliveries++
		case delivery.StatusDelivered:
			out.DeliveredDeliveries++
		case delivery.StatusCancelled:
			out.CancelledDeliveries++
		}
	}
	if out.TotalDeliveries > 0 {
		out.CompletionRate = float64(out.DeliveredDeliveries) / float64(out.TotalDeliveries)
	}
	return out, nil
}

func (s *Service) StockSummary(ctx context.Context, req StockSummaryRequest) (StockSummary, error) {
	if s.repo == nil {
		return StockSummary{}, errors.New("reporting: repository not configured")
	}

	items, err := s.repo.ListItems(ctx, req.WarehouseID)
	if err != nil {
		return StockSummary{}, err
	}

	out := StockSummary{WarehouseID: req.WarehouseID}
	for _, it := range items {
		out.DistinctItems++
		out.TotalQuantity += it.Quantity
		if it.Quantity == 0 {
			out.OutOfStockItems++
		}
	}
	return out, nil
}
