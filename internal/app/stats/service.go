package stats

import (
	"cmp"
	"context"
	"slices"
	"time"

	"encore/internal/catalog"
	aggregate "encore/internal/stats"
	"encore/shared/go/logging"
	"encore/shared/go/models"
)

// Store defines the read operations the statistics service needs
type Store interface {
	ListShows(ctx context.Context, filter models.ShowFilter) ([]models.Show, error)
	ListSongs(ctx context.Context, filter models.SongFilter) ([]models.Song, error)
	GetSong(ctx context.Context, id int64) (models.Song, error)
	ListTours(ctx context.Context) ([]models.Tour, error)
	GetTour(ctx context.Context, id int64) (models.Tour, error)
}

// SongReport pairs a song with its live statistics
type SongReport struct {
	Song  models.Song         `json:"song"`
	Stats aggregate.SongStats `json:"stats"`
}

// GapReport describes how long a song has gone unplayed
type GapReport struct {
	Song   models.Song    `json:"song"`
	Played bool           `json:"played"`
	Gap    *aggregate.Gap `json:"gap,omitempty"`
}

// TourReport rolls up one tour and lists its shows
type TourReport struct {
	Tour  models.Tour         `json:"tour"`
	Stats aggregate.TourStats `json:"stats"`
	Shows []models.Show       `json:"shows"`
}

// Service computes statistics over a fresh snapshot on every call
type Service interface {
	SongStatistics(ctx context.Context) (aggregate.SongStatistics, error)
	Songs(ctx context.Context, policy catalog.Policy) ([]SongReport, error)
	Song(ctx context.Context, id int64) (SongReport, error)
	Gap(ctx context.Context, id int64) (GapReport, error)
	Venues(ctx context.Context) ([]aggregate.VenueStats, error)
	Tours(ctx context.Context) ([]aggregate.TourStats, error)
	Tour(ctx context.Context, id int64) (TourReport, error)
	Now() time.Time
}

// Option customizes the service
type Option func(*service)

// WithClock overrides the source of "today"
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// WithLocation sets the time zone whose calendar defines whole days
func WithLocation(loc *time.Location) Option {
	return func(s *service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

type service struct {
	store Store
	now   func() time.Time
	loc   *time.Location
}

// New constructs a statistics Service backed by the provided Store
func New(store Store, opts ...Option) Service {
	s := &service{
		store: store,
		now:   time.Now,
		loc:   time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *service) SongStatistics(ctx context.Context) (aggregate.SongStatistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	shows, err := s.store.ListShows(ctx, models.ShowFilter{})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := aggregate.ComputeSongStatistics(shows, s.Now())
	logging.WithContext(ctx).Debug().
		Int("shows", len(shows)).
		Int("songs_played", len(result)).
		Dur("duration_ms", time.Since(start)).
		Msg("computed song statistics")
	return result, nil
}

func (s *service) Songs(ctx context.Context, policy catalog.Policy) ([]SongReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	songs, err := s.store.ListSongs(ctx, models.SongFilter{})
	if err != nil {
		return nil, err
	}

	st, err := s.SongStatistics(ctx)
	if err != nil {
		return nil, err
	}

	sorted := catalog.Sort(songs, policy, st)
	reports := make([]SongReport, 0, len(sorted))
	for _, song := range sorted {
		reports = append(reports, SongReport{Song: song, Stats: st.For(song.ID)})
	}
	return reports, nil
}

func (s *service) Song(ctx context.Context, id int64) (SongReport, error) {
	if err := ctx.Err(); err != nil {
		return SongReport{}, err
	}

	song, err := s.store.GetSong(ctx, id)
	if err != nil {
		return SongReport{}, err
	}

	st, err := s.SongStatistics(ctx)
	if err != nil {
		return SongReport{}, err
	}

	return SongReport{Song: song, Stats: st.For(id)}, nil
}

func (s *service) Gap(ctx context.Context, id int64) (GapReport, error) {
	report, err := s.Song(ctx, id)
	if err != nil {
		return GapReport{}, err
	}

	gap, ok := aggregate.GapForSong(aggregate.SongStatistics{id: report.Stats}, id)
	if !ok {
		return GapReport{Song: report.Song}, nil
	}
	return GapReport{Song: report.Song, Played: true, Gap: &gap}, nil
}

func (s *service) Venues(ctx context.Context) ([]aggregate.VenueStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	shows, err := s.store.ListShows(ctx, models.ShowFilter{})
	if err != nil {
		return nil, err
	}

	byVenue := aggregate.ComputeVenueStatistics(shows)
	venues := make([]aggregate.VenueStats, 0, len(byVenue))
	for _, vs := range byVenue {
		venues = append(venues, vs)
	}
	slices.SortFunc(venues, func(a, b aggregate.VenueStats) int {
		if c := cmp.Compare(b.ShowCount, a.ShowCount); c != 0 {
			return c
		}
		if c := cmp.Compare(a.LocationName, b.LocationName); c != 0 {
			return c
		}
		return cmp.Compare(a.LocationID, b.LocationID)
	})
	return venues, nil
}

func (s *service) Tours(ctx context.Context) ([]aggregate.TourStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tours, err := s.store.ListTours(ctx)
	if err != nil {
		return nil, err
	}

	shows, err := s.store.ListShows(ctx, models.ShowFilter{})
	if err != nil {
		return nil, err
	}

	byTour := aggregate.ComputeAllTourStatistics(shows)
	out := make([]aggregate.TourStats, 0, len(tours))
	for _, tour := range tours {
		ts := byTour[tour.ID]
		ts.TourID = tour.ID
		ts.TourName = tour.Name
		out = append(out, ts)
	}
	return out, nil
}

func (s *service) Tour(ctx context.Context, id int64) (TourReport, error) {
	if err := ctx.Err(); err != nil {
		return TourReport{}, err
	}

	tour, err := s.store.GetTour(ctx, id)
	if err != nil {
		return TourReport{}, err
	}

	shows, err := s.store.ListShows(ctx, models.ShowFilter{TourID: &id})
	if err != nil {
		return TourReport{}, err
	}

	ts := aggregate.ComputeTourStatistics(shows)
	ts.TourID = tour.ID
	ts.TourName = tour.Name
	return TourReport{Tour: tour, Stats: ts, Shows: shows}, nil
}
