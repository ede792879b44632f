package search

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// Store defines the persistence operations required by the search handler.
type Store interface {
	Search(ctx context.Context, query string, limit int) (Results, error)
}

// Results captures the different result buckets surfaced by the handler.
type Results struct {
	Songs     []SongResult
	Shows     []ShowResult
	Locations []LocationResult
}

// SongResult summarises a song match.
type SongResult struct {
	ID          int64
	Title       string
	Attribution string
	Band        string
	Href        string
}

// ShowResult summarises a show match.
type ShowResult struct {
	ID       int64
	Title    string
	Date     time.Time
	Location string
	Href     string
}

// LocationResult summarises a location match.
type LocationResult struct {
	ID        int64
	Name      string
	City      string
	ShowCount int
	Href      string
}

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

// NewPGStore creates a Store backed by the supplied database handle.
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

// Search performs a fan-out query across songs, shows, and locations.
func (s *PGStore) Search(ctx context.Context, query string, limit int) (Results, error) {
	if limit <= 0 {
		limit = 10
	}
	like := "%" + query + "%"

	songs, err := s.fetchSongs(ctx, like, limit)
	if err != nil {
		return Results{}, err
	}

	shows, err := s.fetchShows(ctx, like, limit)
	if err != nil {
		return Results{}, err
	}

	locations, err := s.fetchLocations(ctx, like, limit)
	if err != nil {
		return Results{}, err
	}

	return Results{
		Songs:     songs,
		Shows:     shows,
		Locations: locations,
	}, nil
}

func (s *PGStore) fetchSongs(ctx context.Context, like string, limit int) ([]SongResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.title, COALESCE(s.attribution, ''), COALESCE(b.name, '')
		FROM songs s
		LEFT JOIN bands b ON b.id = s.artist_id
		WHERE s.title ILIKE $1 OR s.attribution ILIKE $1
		ORDER BY s.title ASC
		LIMIT $2
	`, like, limit)
	if err != nil {
		return nil, fmt.Errorf("search songs: %w", err)
	}
	defer rows.Close()

	results := make([]SongResult, 0)
	for rows.Next() {
		var r SongResult
		if err := rows.Scan(&r.ID, &r.Title, &r.Attribution, &r.Band); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		r.Href = "/api/v1/songs/" + strconv.FormatInt(r.ID, 10)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}

	return results, nil
}

func (s *PGStore) fetchShows(ctx context.Context, like string, limit int) ([]ShowResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sh.id, sh.title, sh.show_date, COALESCE(l.name, '')
		FROM shows sh
		LEFT JOIN locations l ON l.id = sh.location_id
		WHERE sh.title ILIKE $1 OR l.name ILIKE $1
		ORDER BY sh.show_date DESC
		LIMIT $2
	`, like, limit)
	if err != nil {
		return nil, fmt.Errorf("search shows: %w", err)
	}
	defer rows.Close()

	results := make([]ShowResult, 0)
	for rows.Next() {
		var r ShowResult
		if err := rows.Scan(&r.ID, &r.Title, &r.Date, &r.Location); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		r.Href = "/api/v1/shows/" + strconv.FormatInt(r.ID, 10)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shows: %w", err)
	}

	return results, nil
}

func (s *PGStore) fetchLocations(ctx context.Context, like string, limit int) ([]LocationResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.name, COALESCE(l.city, ''), COUNT(sh.id) AS show_count
		FROM locations l
		LEFT JOIN shows sh ON sh.location_id = l.id
		WHERE l.name ILIKE $1 OR l.city ILIKE $1
		GROUP BY l.id, l.name, l.city
		ORDER BY show_count DESC, l.name ASC
		LIMIT $2
	`, like, limit)
	if err != nil {
		return nil, fmt.Errorf("search locations: %w", err)
	}
	defer rows.Close()

	results := make([]LocationResult, 0)
	for rows.Next() {
		var r LocationResult
		if err := rows.Scan(&r.ID, &r.Name, &r.City, &r.ShowCount); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		r.Href = "/api/v1/locations/" + strconv.FormatInt(r.ID, 10)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}

	return results, nil
}
