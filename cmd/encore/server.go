package main

import (
	"database/sql"
	"fmt"
	"net/http"

	"encore/internal/app/discography"
	"encore/internal/app/places"
	"encore/internal/app/shows"
	"encore/internal/app/songs"
	"encore/internal/app/stats"
	"encore/internal/http/middleware"
	"encore/internal/httpapi"
	"encore/internal/search"
	"encore/internal/store"
	"encore/shared/go/config"
	sharedmw "encore/shared/go/middleware"
)

func newHTTPHandler(cfg *config.Config, db *sql.DB, dataStore *store.Store) (http.Handler, error) {
	loc, err := cfg.Stats.Location()
	if err != nil {
		return nil, fmt.Errorf("resolve stats timezone: %w", err)
	}

	statsSvc := stats.New(dataStore, stats.WithLocation(loc))

	// Song orderings by play count or gap read from the stats service
	songSvc := songs.New(dataStore, statsSvc, songs.WithLocation(loc))
	showSvc := shows.New(dataStore)
	placesSvc := places.New(dataStore)
	discographySvc := discography.New(dataStore)

	api := httpapi.New(songSvc, showSvc, statsSvc, placesSvc, discographySvc)

	mux := http.NewServeMux()
	mux.Handle("/", api.Routes())
	mux.Handle("GET /api/v1/search", search.NewHandler(search.NewPGStore(db)))

	return sharedmw.Chain(mux,
		sharedmw.RequestLogging(),
		sharedmw.Recovery(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	), nil
}
