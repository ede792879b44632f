package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 20, 0, 0, 0, time.UTC)
}

type seedSong struct {
	Title       string
	Published   time.Time
	Categories  []string
	Attribution string
}

type seedShow struct {
	Title    string
	Date     time.Time
	Location string
	Tour     string
	// Setlist lines prefixed with "~" are free-text entries, "--" is a break
	Setlist []string
}

var demoSongs = []seedSong{
	{Title: "Harbor Lights", Published: day(2019, time.April, 12), Categories: []string{"original"}},
	{Title: "The Long Way Home", Published: day(2019, time.April, 12), Categories: []string{"original"}},
	{Title: "Paper Moons", Published: day(2020, time.September, 1), Categories: []string{"original"}},
	{Title: "Anchor", Published: day(2021, time.February, 14), Categories: []string{"original"}},
	{Title: "Wildflower Road", Published: day(2022, time.June, 30), Categories: []string{"original"}},
	{Title: "Unwritten Song", Published: day(2023, time.November, 5), Categories: []string{"original"}},
	{Title: "Dancing in the Dark", Published: day(2020, time.January, 20), Categories: []string{"cover"}, Attribution: "Bruce Springsteen"},
	{Title: "Jolene", Published: day(2021, time.July, 8), Categories: []string{"cover"}, Attribution: "Dolly Parton"},
	{Title: "Old Standard", Published: day(2022, time.March, 3), Categories: []string{"cover"}},
}

var demoLocations = []struct {
	Name, City, Region, Venue string
	Capacity                  int
}{
	{Name: "The Fillmore", City: "San Francisco", Region: "CA", Venue: "The Fillmore", Capacity: 1315},
	{Name: "Ryman Auditorium", City: "Nashville", Region: "TN", Venue: "Ryman Auditorium", Capacity: 2362},
	{Name: "Portland", City: "Portland", Region: "OR"},
}

var demoTours = []struct{ Name, Slug string }{
	{Name: "Paper Moons Tour", Slug: "paper-moons-2021"},
	{Name: "Wildflower Tour", Slug: "wildflower-2023"},
}

var demoShows = []seedShow{
	{
		Title: "Paper Moons Tour: San Francisco", Date: day(2021, time.May, 14), Location: "The Fillmore", Tour: "Paper Moons Tour",
		Setlist: []string{"Paper Moons", "Harbor Lights", "--", "Dancing in the Dark", "The Long Way Home"},
	},
	{
		Title: "Paper Moons Tour: Nashville", Date: day(2021, time.May, 20), Location: "Ryman Auditorium", Tour: "Paper Moons Tour",
		Setlist: []string{"Paper Moons", "Jolene", "~Untitled Jam", "Anchor", "Harbor Lights"},
	},
	{
		Title: "Wildflower Tour: Portland", Date: day(2023, time.August, 2), Location: "Portland", Tour: "Wildflower Tour",
		Setlist: []string{"Wildflower Road", "Anchor", "Old Standard", "Harbor Lights"},
	},
	{
		Title: "Wildflower Tour: San Francisco", Date: day(2023, time.August, 9), Location: "The Fillmore", Tour: "Wildflower Tour",
		Setlist: []string{"Harbor Lights", "Wildflower Road", "--", "Jolene", "Paper Moons"},
	},
	{
		Title: "Holiday Benefit", Date: day(2023, time.December, 16), Location: "Ryman Auditorium",
		Setlist: []string{"The Long Way Home", "~Silent Night", "Wildflower Road"},
	},
}

// bootstrapDemoData loads a small demo catalogue when the songs table is
// empty. It is a no-op once any song exists.
func bootstrapDemoData(ctx context.Context, db *sql.DB) error {
	songsTableExists, err := tableExists(ctx, db, "songs")
	if err != nil {
		return fmt.Errorf("check songs table: %w", err)
	}
	if !songsTableExists {
		log.Warn().Msg("songs table missing, run migrations before seeding")
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM songs`).Scan(&count); err != nil {
		return fmt.Errorf("count songs: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	var bandID int64
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO bands (name, founded)
		VALUES ($1, $2)
		RETURNING id
	`, "The Lanterns", 2018).Scan(&bandID); err != nil {
		return fmt.Errorf("insert demo band: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO albums (title, band_id, release_date)
		VALUES ($1, $2, $3), ($4, $2, $5)
	`, "Harbor Lights", bandID, day(2019, time.April, 12), "Wildflower Road", day(2022, time.June, 30)); err != nil {
		return fmt.Errorf("insert demo albums: %w", err)
	}

	songIDs := make(map[string]int64, len(demoSongs))
	for _, song := range demoSongs {
		categories, err := json.Marshal(song.Categories)
		if err != nil {
			return fmt.Errorf("marshal categories for %q: %w", song.Title, err)
		}

		var attribution any
		if song.Attribution != "" {
			attribution = song.Attribution
		}

		var id int64
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO songs (title, published_at, categories, attribution, artist_id)
			VALUES ($1, $2, $3::jsonb, $4, $5)
			RETURNING id
		`, song.Title, song.Published, string(categories), attribution, bandID).Scan(&id); err != nil {
			return fmt.Errorf("insert demo song %q: %w", song.Title, err)
		}
		songIDs[song.Title] = id
	}

	locationIDs := make(map[string]int64, len(demoLocations))
	for _, loc := range demoLocations {
		var venue, capacity any
		if loc.Venue != "" {
			venue, capacity = loc.Venue, loc.Capacity
		}

		var id int64
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO locations (name, city, region, venue_name, venue_capacity)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, loc.Name, loc.City, loc.Region, venue, capacity).Scan(&id); err != nil {
			return fmt.Errorf("insert demo location %q: %w", loc.Name, err)
		}
		locationIDs[loc.Name] = id
	}

	tourIDs := make(map[string]int64, len(demoTours))
	for _, tour := range demoTours {
		var id int64
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO tours (name, slug)
			VALUES ($1, $2)
			RETURNING id
		`, tour.Name, tour.Slug).Scan(&id); err != nil {
			return fmt.Errorf("insert demo tour %q: %w", tour.Name, err)
		}
		tourIDs[tour.Name] = id
	}

	for _, show := range demoShows {
		setlist, err := json.Marshal(seedSetlist(show.Setlist, songIDs))
		if err != nil {
			return fmt.Errorf("marshal setlist for %q: %w", show.Title, err)
		}

		var locationID, tourID any
		if id, ok := locationIDs[show.Location]; ok {
			locationID = id
		}
		if id, ok := tourIDs[show.Tour]; ok {
			tourID = id
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO shows (title, show_date, location_id, tour_id, setlist)
			VALUES ($1, $2, $3, $4, $5::jsonb)
		`, show.Title, show.Date, locationID, tourID, string(setlist)); err != nil {
			return fmt.Errorf("insert demo show %q: %w", show.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	tx = nil

	log.Info().
		Int("songs", len(demoSongs)).
		Int("shows", len(demoShows)).
		Msg("seeded demo catalogue")
	return nil
}

func seedSetlist(lines []string, songIDs map[string]int64) []map[string]any {
	entries := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		switch {
		case line == "--":
			entries = append(entries, map[string]any{"type": "break"})
		case len(line) > 0 && line[0] == '~':
			entries = append(entries, map[string]any{"type": "song-text", "title": line[1:]})
		default:
			entries = append(entries, map[string]any{"type": "song-post", "song_id": songIDs[line]})
		}
	}
	return entries
}

type queryRower interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func tableExists(ctx context.Context, q queryRower, table string) (bool, error) {
	var name sql.NullString
	if err := q.QueryRowContext(ctx, `SELECT to_regclass($1)`, table).Scan(&name); err != nil {
		return false, err
	}
	return name.Valid, nil
}
