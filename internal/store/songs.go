package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"encore/shared/go/models"
)

const songColumns = `
		SELECT s.id, s.title, s.published_at, s.categories,
		       COALESCE(s.attribution, ''), s.artist_id, COALESCE(b.name, '')
		FROM songs s
		LEFT JOIN bands b ON b.id = s.artist_id`

// ListSongs returns songs matching the filter ordered by title.
func (s *Store) ListSongs(ctx context.Context, filter models.SongFilter) ([]models.Song, error) {
	query := songColumns + `
		WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Query != "" {
		query += fmt.Sprintf(" AND s.title ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Query+"%")
		argIdx++
	}

	if filter.Category != "" {
		category, err := json.Marshal([]string{filter.Category})
		if err != nil {
			return nil, fmt.Errorf("prepare category filter: %w", err)
		}
		query += fmt.Sprintf(" AND s.categories @> $%d::jsonb", argIdx)
		args = append(args, string(category))
		argIdx++
	}

	if filter.ArtistID != nil {
		query += fmt.Sprintf(" AND s.artist_id = $%d", argIdx)
		args = append(args, *filter.ArtistID)
		argIdx++
	}

	if filter.Attribution != "" {
		query += fmt.Sprintf(" AND LOWER(s.attribution) = LOWER($%d)", argIdx)
		args = append(args, filter.Attribution)
		argIdx++
	}

	query += " ORDER BY s.title ASC, s.id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}

	return songs, nil
}

// GetSong returns a single song by ID.
func (s *Store) GetSong(ctx context.Context, id int64) (models.Song, error) {
	row := s.db.QueryRowContext(ctx, songColumns+`
		WHERE s.id = $1`, id)

	song, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Song{}, ErrSongNotFound
	}
	if err != nil {
		return models.Song{}, err
	}
	return song, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(row rowScanner) (models.Song, error) {
	var (
		song       models.Song
		categories []byte
		artistID   sql.NullInt64
	)
	if err := row.Scan(&song.ID, &song.Title, &song.PublishedAt, &categories,
		&song.Attribution, &artistID, &song.ArtistName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Song{}, err
		}
		return models.Song{}, fmt.Errorf("scan song: %w", err)
	}

	song.Categories = []string{}
	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &song.Categories); err != nil {
			return models.Song{}, fmt.Errorf("decode categories for song %d: %w", song.ID, err)
		}
	}
	song.ArtistID = nullInt64Ptr(artistID)
	return song, nil
}
