package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"encore/internal/app/discography"
	"encore/internal/app/stats"
	"encore/internal/catalog"
	aggregate "encore/internal/stats"
	"encore/internal/store"
	"encore/shared/go/logging"
	"encore/shared/go/models"
)

// SongService coordinates song listing and grouping.
type SongService interface {
	List(ctx context.Context, filter models.SongFilter, policy catalog.Policy) ([]models.Song, error)
	Grouped(ctx context.Context, filter models.SongFilter, key catalog.GroupKey) ([]catalog.SongGroup, error)
	Get(ctx context.Context, id int64) (models.Song, error)
}

// ShowService exposes shows and their setlists.
type ShowService interface {
	List(ctx context.Context, filter models.ShowFilter) ([]models.Show, error)
	Get(ctx context.Context, id int64) (models.Show, error)
}

// StatsService computes live statistics.
type StatsService interface {
	Songs(ctx context.Context, policy catalog.Policy) ([]stats.SongReport, error)
	Song(ctx context.Context, id int64) (stats.SongReport, error)
	Gap(ctx context.Context, id int64) (stats.GapReport, error)
	Venues(ctx context.Context) ([]aggregate.VenueStats, error)
	Tours(ctx context.Context) ([]aggregate.TourStats, error)
	Tour(ctx context.Context, id int64) (stats.TourReport, error)
	Now() time.Time
}

// PlaceService exposes locations and tours.
type PlaceService interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
	GetLocation(ctx context.Context, id int64) (models.Location, error)
	ListTours(ctx context.Context) ([]models.Tour, error)
	GetTour(ctx context.Context, id int64) (models.Tour, error)
}

// DiscographyService exposes bands and albums.
type DiscographyService interface {
	ListBands(ctx context.Context, filter discography.BandFilter) ([]models.Band, error)
	ListAlbums(ctx context.Context, bandID *int64) ([]models.Album, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	songs       SongService
	shows       ShowService
	stats       StatsService
	places      PlaceService
	discography DiscographyService
}

// New configures a Server with the given services.
func New(
	songs SongService,
	shows ShowService,
	stats StatsService,
	places PlaceService,
	discography DiscographyService,
) *Server {
	return &Server{
		songs:       songs,
		shows:       shows,
		stats:       stats,
		places:      places,
		discography: discography,
	}
}

// Routes exposes the read API.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Song routes
	mux.HandleFunc("GET /api/v1/songs", s.handleListSongs)
	mux.HandleFunc("GET /api/v1/songs/grouped", s.handleGroupedSongs)
	mux.HandleFunc("GET /api/v1/songs/{id}", s.handleGetSong)
	mux.HandleFunc("GET /api/v1/songs/{id}/stats", s.handleSongStats)
	mux.HandleFunc("GET /api/v1/songs/{id}/gap", s.handleSongGap)

	// Show routes
	mux.HandleFunc("GET /api/v1/shows", s.handleListShows)
	mux.HandleFunc("GET /api/v1/shows/{id}", s.handleGetShow)

	// Statistics routes
	mux.HandleFunc("GET /api/v1/stats/songs", s.handleStatsSongs)
	mux.HandleFunc("GET /api/v1/stats/venues", s.handleStatsVenues)
	mux.HandleFunc("GET /api/v1/stats/tours", s.handleStatsTours)
	mux.HandleFunc("GET /api/v1/stats/tours/{id}", s.handleStatsTour)

	// Taxonomy routes
	mux.HandleFunc("GET /api/v1/locations", s.handleListLocations)
	mux.HandleFunc("GET /api/v1/locations/{id}", s.handleGetLocation)
	mux.HandleFunc("GET /api/v1/tours", s.handleListTours)
	mux.HandleFunc("GET /api/v1/tours/{id}", s.handleGetTour)

	// Discography routes
	mux.HandleFunc("GET /api/v1/bands", s.handleListBands)
	mux.HandleFunc("GET /api/v1/albums", s.handleListAlbums)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps service errors onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, catalog.ErrUnknownPolicy), errors.Is(err, catalog.ErrUnknownGroupKey):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrSongNotFound),
		errors.Is(err, store.ErrShowNotFound),
		errors.Is(err, store.ErrLocationNotFound),
		errors.Is(err, store.ErrTourNotFound):
		status = http.StatusNotFound
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		logging.WithContext(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("request failed")
		message = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: message})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
