package warehouse

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for warehouses.
type Repository interface {
	Insert(ctx context.Context, w Warehouse) error
	Find(ctx context.Context, id string) (Warehouse, error)
	List(ctx context.Context) ([]Warehouse, error)
	Update(ctx context.Context, w Warehouse) (Warehouse, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

type UpsertRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int64  `json:"capacity"`
}

func (r UpsertRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Address) == "" {
		return ErrInvalidArgument
	}
	if r.Capacity <= 0 {
		return ErrInvalidArgument
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (Warehouse, error) {
	if err := req.validate(); err != nil {
		return Warehouse{}, err
	}
	now := s.clock().UTC()
	w := Warehouse{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		Capacity:  req.Capacity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, w); err != nil {
		return Warehouse{}, err
	}
	return w, nil
}

func (s *Service) Get(ctx context.Context, id string) (Warehouse, error) {
	if id == "" {
		return Warehouse{}, ErrInvalidArgument
	}
	return s.repo.Find(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Warehouse, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (Warehouse, error) {
	if id == "" {
		return Warehouse{}, ErrInvalidArgument
	}
	if err := req.validate(); err != nil {
		return Warehouse{}, err
	}
	return s.repo.Update(ctx, Warehouse{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		Capacity:  req.Capacity,
		UpdatedAt: s.clock().UTC(),
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArgument
	}
	return s.repo.Delete(ctx, id)
}
