package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"encore/internal/catalog"
	"encore/internal/store"
	"encore/shared/go/models"
)

type fakeStore struct {
	shows []models.Show
	songs []models.Song
	tours []models.Tour

	lastShowFilter models.ShowFilter
}

func (f *fakeStore) ListShows(_ context.Context, filter models.ShowFilter) ([]models.Show, error) {
	f.lastShowFilter = filter
	if filter.TourID == nil {
		return f.shows, nil
	}
	var out []models.Show
	for _, show := range f.shows {
		if show.TourID == *filter.TourID {
			out = append(out, show)
		}
	}
	return out, nil
}

func (f *fakeStore) ListSongs(context.Context, models.SongFilter) ([]models.Song, error) {
	return f.songs, nil
}

func (f *fakeStore) GetSong(_ context.Context, id int64) (models.Song, error) {
	for _, song := range f.songs {
		if song.ID == id {
			return song, nil
		}
	}
	return models.Song{}, store.ErrSongNotFound
}

func (f *fakeStore) ListTours(context.Context) ([]models.Tour, error) {
	return f.tours, nil
}

func (f *fakeStore) GetTour(_ context.Context, id int64) (models.Tour, error) {
	for _, tour := range f.tours {
		if tour.ID == id {
			return tour, nil
		}
	}
	return models.Tour{}, store.ErrTourNotFound
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 20, 0, 0, 0, time.UTC)
}

func newFixture() *fakeStore {
	return &fakeStore{
		songs: []models.Song{
			{ID: 1, Title: "Opener"},
			{ID: 2, Title: "Deep Cut"},
			{ID: 3, Title: "Unplayed"},
		},
		tours: []models.Tour{
			{ID: 10, Name: "Spring Run"},
			{ID: 11, Name: "Winter Run"},
		},
		shows: []models.Show{
			{ID: 100, Date: date(2024, 1, 1), LocationID: 5, LocationName: "Hall", TourID: 10, Setlist: []models.SetlistEntry{
				{Kind: models.EntrySongPost, SongID: 1, Position: 1},
				{Kind: models.EntrySongPost, SongID: 2, Position: 2},
			}},
			{ID: 101, Date: date(2024, 2, 1), LocationID: 5, LocationName: "Hall", TourID: 10, Setlist: []models.SetlistEntry{
				{Kind: models.EntrySongPost, SongID: 1, Position: 1},
				{Kind: models.EntrySongText, Title: "Jam", Position: 2},
			}},
			{ID: 102, Date: date(2024, 3, 1), LocationID: 6, LocationName: "Arena", Setlist: []models.SetlistEntry{
				{Kind: models.EntrySongPost, SongID: 1, Position: 1},
			}},
		},
	}
}

func newService(fs *fakeStore) Service {
	clock := func() time.Time { return date(2024, 3, 11) }
	return New(fs, WithClock(clock))
}

func TestSongsIncludesUnplayed(t *testing.T) {
	svc := newService(newFixture())

	reports, err := svc.Songs(context.Background(), catalog.PolicyByPlayCount)
	if err != nil {
		t.Fatalf("Songs: %v", err)
	}

	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	if reports[0].Song.ID != 1 || reports[0].Stats.PlayCount != 3 {
		t.Fatalf("expected most played song first, got %+v", reports[0])
	}
	if reports[2].Song.ID != 3 || reports[2].Stats.PlayCount != 0 {
		t.Fatalf("expected unplayed song last, got %+v", reports[2])
	}
}

func TestGap(t *testing.T) {
	svc := newService(newFixture())

	report, err := svc.Gap(context.Background(), 1)
	if err != nil {
		t.Fatalf("Gap: %v", err)
	}
	if !report.Played || report.Gap == nil {
		t.Fatalf("expected played gap report, got %+v", report)
	}
	if report.Gap.DaysSince != 10 {
		t.Fatalf("expected 10 days since, got %d", report.Gap.DaysSince)
	}

	report, err = svc.Gap(context.Background(), 3)
	if err != nil {
		t.Fatalf("Gap: %v", err)
	}
	if report.Played || report.Gap != nil {
		t.Fatalf("expected not yet played, got %+v", report)
	}
}

func TestGapUnknownSong(t *testing.T) {
	svc := newService(newFixture())

	_, err := svc.Gap(context.Background(), 99)
	if !errors.Is(err, store.ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}
}

func TestVenuesOrderedByShowCount(t *testing.T) {
	svc := newService(newFixture())

	venues, err := svc.Venues(context.Background())
	if err != nil {
		t.Fatalf("Venues: %v", err)
	}

	if len(venues) != 2 {
		t.Fatalf("expected 2 venues, got %d", len(venues))
	}
	if venues[0].LocationID != 5 || venues[0].ShowCount != 2 || venues[0].SongCount != 4 {
		t.Fatalf("unexpected first venue %+v", venues[0])
	}
}

func TestToursIncludeEmptyTours(t *testing.T) {
	svc := newService(newFixture())

	tours, err := svc.Tours(context.Background())
	if err != nil {
		t.Fatalf("Tours: %v", err)
	}

	if len(tours) != 2 {
		t.Fatalf("expected 2 tours, got %d", len(tours))
	}
	if tours[0].ShowCount != 2 || tours[0].UniqueSongCount != 2 || tours[0].SongCount != 4 {
		t.Fatalf("unexpected spring stats %+v", tours[0])
	}
	if tours[1].TourName != "Winter Run" || tours[1].ShowCount != 0 {
		t.Fatalf("expected empty winter tour, got %+v", tours[1])
	}
}

func TestTour(t *testing.T) {
	fs := newFixture()
	svc := newService(fs)

	report, err := svc.Tour(context.Background(), 10)
	if err != nil {
		t.Fatalf("Tour: %v", err)
	}
	if fs.lastShowFilter.TourID == nil || *fs.lastShowFilter.TourID != 10 {
		t.Fatalf("expected shows filtered by tour")
	}
	if report.Stats.ShowCount != 2 || len(report.Shows) != 2 {
		t.Fatalf("unexpected report %+v", report.Stats)
	}

	if _, err := svc.Tour(context.Background(), 12); !errors.Is(err, store.ErrTourNotFound) {
		t.Fatalf("expected ErrTourNotFound, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	svc := newService(newFixture())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Venues(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNowUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	svc := New(newFixture(), WithClock(func() time.Time { return date(2024, 3, 11) }), WithLocation(loc))

	if got := svc.Now().Day(); got != 12 {
		t.Fatalf("expected local day 12, got %d", got)
	}
}
