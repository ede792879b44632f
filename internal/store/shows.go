package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/lib/pq"

	"encore/shared/go/logging"
	"encore/shared/go/models"
)

const showColumns = `
		SELECT sh.id, sh.title, sh.show_date,
		       COALESCE(sh.location_id, 0), COALESCE(l.name, ''),
		       COALESCE(sh.tour_id, 0), COALESCE(t.name, ''),
		       sh.setlist
		FROM shows sh
		LEFT JOIN locations l ON l.id = sh.location_id
		LEFT JOIN tours t ON t.id = sh.tour_id`

// storedEntry mirrors one element of the shows.setlist jsonb array.
type storedEntry struct {
	Type   string `json:"type"`
	SongID int64  `json:"song_id"`
	Title  string `json:"title"`
}

// ListShows returns shows matching the filter ordered by date ascending, with
// every song reference in their setlists resolved against the songs table.
func (s *Store) ListShows(ctx context.Context, filter models.ShowFilter) ([]models.Show, error) {
	query := showColumns + `
		WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.TourID != nil {
		query += fmt.Sprintf(" AND sh.tour_id = $%d", argIdx)
		args = append(args, *filter.TourID)
		argIdx++
	}

	if filter.LocationID != nil {
		query += fmt.Sprintf(" AND sh.location_id = $%d", argIdx)
		args = append(args, *filter.LocationID)
		argIdx++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND sh.show_date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND sh.show_date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	query += " ORDER BY sh.show_date ASC, sh.id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query shows: %w", err)
	}
	defer rows.Close()

	shows := []models.Show{}
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		shows = append(shows, show)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shows: %w", err)
	}
	rows.Close()

	if err := s.resolveSongRefs(ctx, shows); err != nil {
		return nil, err
	}
	return shows, nil
}

// GetShow returns a single show by ID.
func (s *Store) GetShow(ctx context.Context, id int64) (models.Show, error) {
	row := s.db.QueryRowContext(ctx, showColumns+`
		WHERE sh.id = $1`, id)

	show, err := scanShow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Show{}, ErrShowNotFound
	}
	if err != nil {
		return models.Show{}, err
	}

	shows := []models.Show{show}
	if err := s.resolveSongRefs(ctx, shows); err != nil {
		return models.Show{}, err
	}
	return shows[0], nil
}

func scanShow(row rowScanner) (models.Show, error) {
	var (
		show    models.Show
		setlist []byte
	)
	if err := row.Scan(&show.ID, &show.Title, &show.Date,
		&show.LocationID, &show.LocationName,
		&show.TourID, &show.TourName, &setlist); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Show{}, err
		}
		return models.Show{}, fmt.Errorf("scan show: %w", err)
	}

	entries, err := decodeSetlist(setlist)
	if err != nil {
		return models.Show{}, fmt.Errorf("decode setlist for show %d: %w", show.ID, err)
	}
	show.Setlist = entries
	return show, nil
}

func decodeSetlist(raw []byte) ([]models.SetlistEntry, error) {
	entries := []models.SetlistEntry{}
	if len(raw) == 0 {
		return entries, nil
	}

	var stored []storedEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}

	for i, e := range stored {
		entry := models.SetlistEntry{
			Kind:     models.ParseEntryKind(e.Type),
			Title:    e.Title,
			Position: i + 1,
		}
		if entry.Kind == models.EntrySongPost {
			entry.SongID = e.SongID
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// resolveSongRefs zeroes song-post references whose song no longer exists so
// the aggregator skips them.
func (s *Store) resolveSongRefs(ctx context.Context, shows []models.Show) error {
	var ids []int64
	for _, show := range shows {
		for _, entry := range show.Setlist {
			if entry.Kind == models.EntrySongPost && entry.SongID != 0 {
				ids = append(ids, entry.SongID)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id
		FROM songs
		WHERE id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("resolve setlist songs: %w", err)
	}
	defer rows.Close()

	known := make(map[int64]struct{}, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan song id: %w", err)
		}
		known[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate song ids: %w", err)
	}

	for i := range shows {
		for j := range shows[i].Setlist {
			entry := &shows[i].Setlist[j]
			if entry.Kind != models.EntrySongPost || entry.SongID == 0 {
				continue
			}
			if _, ok := known[entry.SongID]; ok {
				continue
			}
			logging.WithContext(ctx).Debug().
				Int64("show_id", shows[i].ID).
				Int64("song_id", entry.SongID).
				Int("position", entry.Position).
				Msg("dropping dangling setlist reference")
			entry.SongID = 0
		}
	}
	return nil
}
