package places

import (
	"context"

	"encore/shared/go/models"
)

// Store defines persistence operations for places (locations & tours)
type Store interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
	GetLocation(ctx context.Context, id int64) (models.Location, error)
	ListTours(ctx context.Context) ([]models.Tour, error)
	GetTour(ctx context.Context, id int64) (models.Tour, error)
}

// Service coordinates the taxonomy terms shows are filed under
type Service interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
	GetLocation(ctx context.Context, id int64) (models.Location, error)
	ListTours(ctx context.Context) ([]models.Tour, error)
	GetTour(ctx context.Context, id int64) (models.Tour, error)
}

type service struct {
	store Store
}

// New constructs a places Service backed by the provided Store
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) ListLocations(ctx context.Context) ([]models.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListLocations(ctx)
}

func (s *service) GetLocation(ctx context.Context, id int64) (models.Location, error) {
	if err := ctx.Err(); err != nil {
		return models.Location{}, err
	}
	return s.store.GetLocation(ctx, id)
}

func (s *service) ListTours(ctx context.Context) ([]models.Tour, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListTours(ctx)
}

func (s *service) GetTour(ctx context.Context, id int64) (models.Tour, error) {
	if err := ctx.Err(); err != nil {
		return models.Tour{}, err
	}
	return s.store.GetTour(ctx, id)
}
