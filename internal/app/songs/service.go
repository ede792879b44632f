package songs

import (
	"context"
	"time"

	"encore/internal/catalog"
	"encore/internal/stats"
	"encore/shared/go/models"
)

// Store exposes the song queries the service needs.
type Store interface {
	ListSongs(ctx context.Context, filter models.SongFilter) ([]models.Song, error)
	GetSong(ctx context.Context, id int64) (models.Song, error)
}

// StatisticsSource supplies play statistics for metric-based orderings.
type StatisticsSource interface {
	SongStatistics(ctx context.Context) (stats.SongStatistics, error)
}

// Service exposes song listing operations.
type Service interface {
	List(ctx context.Context, filter models.SongFilter, policy catalog.Policy) ([]models.Song, error)
	Grouped(ctx context.Context, filter models.SongFilter, key catalog.GroupKey) ([]catalog.SongGroup, error)
	Get(ctx context.Context, id int64) (models.Song, error)
}

type service struct {
	store Store
	stats StatisticsSource
	loc   *time.Location
}

// Option customizes the service
type Option func(*service)

// WithLocation sets the time zone whose calendar defines publication months
func WithLocation(loc *time.Location) Option {
	return func(s *service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// New constructs a song Service. Statistics are only loaded for policies
// that order by them.
func New(store Store, statistics StatisticsSource, opts ...Option) Service {
	s := &service{store: store, stats: statistics, loc: time.UTC}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) List(ctx context.Context, filter models.SongFilter, policy catalog.Policy) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	songs, err := s.store.ListSongs(ctx, filter)
	if err != nil {
		return nil, err
	}

	var metrics catalog.Metrics
	if policy.NeedsMetrics() && s.stats != nil {
		st, err := s.stats.SongStatistics(ctx)
		if err != nil {
			return nil, err
		}
		metrics = st
	}

	return catalog.Sort(songs, policy, metrics), nil
}

func (s *service) Grouped(ctx context.Context, filter models.SongFilter, key catalog.GroupKey) ([]catalog.SongGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	songs, err := s.store.ListSongs(ctx, filter)
	if err != nil {
		return nil, err
	}

	if key == catalog.GroupMonth {
		songs = s.inLocation(songs)
	}

	groups := catalog.Arrange(songs, key, nil)
	if groups == nil {
		groups = []catalog.SongGroup{}
	}
	return groups, nil
}

func (s *service) Get(ctx context.Context, id int64) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}
	return s.store.GetSong(ctx, id)
}

// inLocation returns copies of songs whose publication times are expressed in
// the service location, leaving the store's slice untouched.
func (s *service) inLocation(songs []models.Song) []models.Song {
	out := make([]models.Song, len(songs))
	for i, song := range songs {
		if !song.PublishedAt.IsZero() {
			song.PublishedAt = song.PublishedAt.In(s.loc)
		}
		out[i] = song
	}
	return out
}
