package store

import (
	"context"
	"database/sql"
	"fmt"

	"encore/shared/go/models"
)

// ListBands returns every band ordered by name.
func (s *Store) ListBands(ctx context.Context) ([]models.Band, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, founded, disbanded
		FROM bands
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query bands: %w", err)
	}
	defer rows.Close()

	bands := []models.Band{}
	for rows.Next() {
		var (
			b                  models.Band
			founded, disbanded sql.NullInt32
		)
		if err := rows.Scan(&b.ID, &b.Name, &founded, &disbanded); err != nil {
			return nil, fmt.Errorf("scan band: %w", err)
		}
		b.Founded = nullIntPtr(founded)
		b.Disbanded = nullIntPtr(disbanded)
		bands = append(bands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bands: %w", err)
	}
	return bands, nil
}

// ListAlbums returns albums with the newest release first. Albums without a
// release date come last.
func (s *Store) ListAlbums(ctx context.Context) ([]models.Album, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.title, a.band_id, COALESCE(b.name, ''), a.release_date
		FROM albums a
		LEFT JOIN bands b ON b.id = a.band_id
		ORDER BY a.release_date DESC NULLS LAST, a.title ASC`)
	if err != nil {
		return nil, fmt.Errorf("query albums: %w", err)
	}
	defer rows.Close()

	albums := []models.Album{}
	for rows.Next() {
		var (
			a       models.Album
			bandID  sql.NullInt64
			release sql.NullTime
		)
		if err := rows.Scan(&a.ID, &a.Title, &bandID, &a.BandName, &release); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		a.BandID = nullInt64Ptr(bandID)
		if release.Valid {
			t := release.Time
			a.ReleaseDate = &t
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}
	return albums, nil
}
