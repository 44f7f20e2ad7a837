package item

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for items.
type Repository interface {
	Insert(ctx context.Context, it Item) error
	Find(ctx context.Context, id string) (Item, error)
	List(ctx context.Context, warehouseID string) ([]Item, error)
	Update(ctx context.Context, it Item) (Item, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Item, error) {
	if strings.TrimSpace(req.Name) == "" || req.WarehouseID == "" {
		return Item{}, ErrInvalidArgument
	}
	if req.Quantity < 0 {
		return Item{}, ErrInvalidArgument
	}
	now := s.clock().UTC()
	it := Item{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		WarehouseID: req.WarehouseID,
		Quantity:    req.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, it); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (s *Service) Get(ctx context.Context, id string) (Item, error) {
	if id == "" {
		return Item{}, ErrInvalidArgument
	}
	return s.repo.Find(ctx, id)
}

func (s *Service) List(ctx context.Context, warehouseID string) ([]Item, error) {
	return s.repo.List(ctx, warehouseID)
}

type UpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Item, error) {
	if id == "" || strings.TrimSpace(req.Name) == "" || req.WarehouseID == "" || req.Quantity < 0 {
		return Item{}, ErrInvalidArgument
	}
	return s.repo.Update(ctx, Item{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		WarehouseID: req.WarehouseID,
		Quantity:    req.Quantity,
		UpdatedAt:   s.clock().UTC(),
	})
}

// AdjustQuantity applies a signed delta to stock. The result may not go
// negative.
func (s *Service) AdjustQuantity(ctx context.Context, id string, delta int64) (Item, error) {
	if id == "" {
		return Item{}, ErrInvalidArgument
	}
	it, err := s.repo.Find(ctx, id)
	if err != nil {
		return Item{}, err
	}
	if it.Quantity+delta < 0 {
		return Item{}, ErrInvalidArgument
	}
	it.Quantity += delta
	it.UpdatedAt = s.clock().UTC()
	return s.repo.Update(ctx, it)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArgument
	}
	return s.repo.Delete(ctx, id)
}
