package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"encore/shared/go/models"
)

const locationColumns = `
		SELECT id, name, COALESCE(city, ''), COALESCE(region, ''),
		       venue_name, COALESCE(venue_address, ''), venue_capacity
		FROM locations`

// ListLocations returns every location ordered by name.
func (s *Store) ListLocations(ctx context.Context) ([]models.Location, error) {
	rows, err := s.db.QueryContext(ctx, locationColumns+`
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return locations, nil
}

// GetLocation retrieves a single location by ID.
func (s *Store) GetLocation(ctx context.Context, id int64) (models.Location, error) {
	loc, err := scanLocation(s.db.QueryRowContext(ctx, locationColumns+`
		WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Location{}, ErrLocationNotFound
	}
	if err != nil {
		return models.Location{}, err
	}
	return loc, nil
}

func scanLocation(row rowScanner) (models.Location, error) {
	var (
		loc       models.Location
		venueName sql.NullString
		address   string
		capacity  sql.NullInt32
	)
	if err := row.Scan(&loc.ID, &loc.Name, &loc.City, &loc.Region,
		&venueName, &address, &capacity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Location{}, err
		}
		return models.Location{}, fmt.Errorf("scan location: %w", err)
	}

	if venueName.Valid && venueName.String != "" {
		loc.Venue = &models.VenueInfo{
			Name:     venueName.String,
			Address:  address,
			Capacity: nullIntPtr(capacity),
		}
	}
	return loc, nil
}

// ListTours returns every tour ordered by name.
func (s *Store) ListTours(ctx context.Context) ([]models.Tour, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, slug
		FROM tours
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query tours: %w", err)
	}
	defer rows.Close()

	tours := []models.Tour{}
	for rows.Next() {
		var t models.Tour
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, fmt.Errorf("scan tour: %w", err)
		}
		tours = append(tours, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tours: %w", err)
	}
	return tours, nil
}

// GetTour retrieves a single tour by ID.
func (s *Store) GetTour(ctx context.Context, id int64) (models.Tour, error) {
	var t models.Tour
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug
		FROM tours
		WHERE id = $1`, id).Scan(&t.ID, &t.Name, &t.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tour{}, ErrTourNotFound
	}
	if err != nil {
		return models.Tour{}, fmt.Errorf("get tour: %w", err)
	}
	return t, nil
}
