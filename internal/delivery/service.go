package delivery

import (
	"context"
	"errors"
	"time"

	"warehouse-platform/internal/rbac"
	"warehouse-platform/internal/user"

	"github.com/google/uuid"
)

// Repository is the persistence contract for deliveries.
type Repository interface {
	Insert(ctx context.Context, d Delivery) error
	Find(ctx context.Context, id string) (Delivery, error)
	List(ctx context.Context, driverIdentity string) ([]Delivery, error)
	Update(ctx context.Context, d Delivery) (Delivery, error)
	Delete(ctx context.Context, id string) error
}

// DriverLookup resolves an identity so driver assignment can verify the
// assignee exists and actually holds the DRIVER role.
type DriverLookup interface {
	FindByIdentity(ctx context.Context, identity string) (user.User, error)
}

type Service struct {
	repo    Repository
	drivers DriverLookup
	clock   func() time.Time
}

func NewService(repo Repository, drivers DriverLookup) *Service {
	return &Service{repo: repo, drivers: drivers, clock: time.Now}
}

type CreateRequest struct {
	ItemID      string `json:"item_id"`
	WarehouseID string `json:"warehouse_id"`
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Delivery, error) {
	if req.ItemID == "" || req.WarehouseID == "" {
		return Delivery{}, ErrInvalidArgument
	}
	now := s.clock().UTC()
	d := Delivery{
		ID:          uuid.NewString(),
		ItemID:      req.ItemID,
		WarehouseID: req.WarehouseID,
		Status:      StatusCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, d); err != nil {
		return Delivery{}, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id string) (Delivery, error) {
	if id == "" {
		return Delivery{}, ErrInvalidArgument
	}
	return s.repo.Find(ctx, id)
}

func (s *Service) List(ctx context.Context, driverIdentity string) ([]Delivery, error) {
	return s.repo.List(ctx, driverIdentity)
}

// AssignDriver sets the driver for a delivery. The assignee must exist and
// hold the DRIVER role.
func (s *Service) AssignDriver(ctx context.Context, id, driverIdentity string) (Delivery, error) {
	if id == "" || driverIdentity == "" {
		return Delivery{}, ErrInvalidArgument
	}
	u, err := s.drivers.FindByIdentity(ctx, driverIdentity)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Delivery{}, ErrNotADriver
		}
		return Delivery{}, err
	}
	if u.Role != rbac.RoleDriver {
		return Delivery{}, ErrNotADriver
	}

	d, err := s.repo.Find(ctx, id)
	if err != nil {
		return Delivery{}, err
	}
	d.DriverIdentity = driverIdentity
	d.UpdatedAt = s.clock().UTC()
	return s.repo.Update(ctx, d)
}

// Transition moves a delivery to the next status, enforcing the machine.
func (s *Service) Transition(ctx context.Context, id string, next Status) (Delivery, error) {
	if id == "" {
		return Delivery{}, ErrInvalidArgument
	}
	switch next {
	case StatusInProgress, StatusDelivered, StatusCancelled:
	default:
		return Delivery{}, ErrInvalidArgument
	}

	d, err := s.repo.Find(ctx, id)
	if err != nil {
		return Delivery{}, err
	}
	if !d.Status.CanTransition(next) {
		return Delivery{}, ErrInvalidTransition
	}
	d.Status = next
	d.UpdatedAt = s.clock().UTC()
	return s.repo.Update(ctx, d)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArgument
	}
	return s.repo.Delete(ctx, id)
}
