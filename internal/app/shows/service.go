package shows

import (
	"context"

	"encore/shared/go/models"
)

// Store defines persistence operations for shows
type Store interface {
	ListShows(ctx context.Context, filter models.ShowFilter) ([]models.Show, error)
	GetShow(ctx context.Context, id int64) (models.Show, error)
}

// Service coordinates show-related operations
type Service interface {
	List(ctx context.Context, filter models.ShowFilter) ([]models.Show, error)
	Get(ctx context.Context, id int64) (models.Show, error)
}

type service struct {
	store Store
}

// New constructs a shows Service
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, filter models.ShowFilter) ([]models.Show, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListShows(ctx, filter)
}

func (s *service) Get(ctx context.Context, id int64) (models.Show, error) {
	if err := ctx.Err(); err != nil {
		return models.Show{}, err
	}
	return s.store.GetShow(ctx, id)
}
