package discography

import (
	"context"
	"strings"

	"encore/shared/go/models"
)

// Store exposes the band and album queries.
type Store interface {
	ListBands(ctx context.Context) ([]models.Band, error)
	ListAlbums(ctx context.Context) ([]models.Album, error)
}

// BandFilter narrows the list of returned bands.
type BandFilter struct {
	Name       string
	ActiveOnly bool
}

// Service provides band and album listings.
type Service interface {
	ListBands(ctx context.Context, filter BandFilter) ([]models.Band, error)
	ListAlbums(ctx context.Context, bandID *int64) ([]models.Album, error)
}

type service struct {
	store Store
}

// New constructs a discography Service backed by the supplied store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) ListBands(ctx context.Context, filter BandFilter) ([]models.Band, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bands, err := s.store.ListBands(ctx)
	if err != nil {
		return nil, err
	}

	target := strings.ToLower(strings.TrimSpace(filter.Name))
	out := []models.Band{}
	for _, band := range bands {
		if filter.ActiveOnly && !band.Active() {
			continue
		}
		if target != "" && !strings.Contains(strings.ToLower(band.Name), target) {
			continue
		}
		out = append(out, band)
	}
	return out, nil
}

func (s *service) ListAlbums(ctx context.Context, bandID *int64) ([]models.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	albums, err := s.store.ListAlbums(ctx)
	if err != nil {
		return nil, err
	}
	if bandID == nil {
		return albums, nil
	}

	out := []models.Album{}
	for _, album := range albums {
		if album.BandID != nil && *album.BandID == *bandID {
			out = append(out, album)
		}
	}
	return out, nil
}
