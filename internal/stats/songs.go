// Package stats aggregates live-performance statistics from show setlists.
//
// Every function here reads a snapshot of shows and returns fresh values.
// Inputs are never mutated, and unresolvable references are skipped rather
// than reported: the worst outcome is an undercounted result.
package stats

import (
	"slices"
	"time"

	"encore/shared/go/models"
)

// Performance records one appearance of a song in a setlist
type Performance struct {
	ShowID            int64     `json:"show_id"`
	ShowTitle         string    `json:"show_title,omitempty"`
	Date              time.Time `json:"date"`
	LocationID        int64     `json:"location_id,omitempty"`
	LocationName      string    `json:"location_name,omitempty"`
	TourID            int64     `json:"tour_id,omitempty"`
	Position          int       `json:"position"`
	DaysSincePrevious int       `json:"days_since_previous"` // 0 for the first performance
}

// SongStats summarizes a song's live history
type SongStats struct {
	SongID              int64         `json:"song_id"`
	PlayCount           int           `json:"play_count"`
	FirstPlayed         *Performance  `json:"first_played,omitempty"`
	LastPlayed          *Performance  `json:"last_played,omitempty"`
	DaysSinceLastPlayed *int          `json:"days_since_last_played,omitempty"`
	Openers             int           `json:"openers"`
	Closers             int           `json:"closers"`
	Performances        []Performance `json:"performances"`
}

// Played reports whether the song has at least one performance
func (s SongStats) Played() bool {
	return s.PlayCount > 0
}

// SongStatistics maps song IDs to their statistics. Songs that were never
// played have no entry.
type SongStatistics map[int64]SongStats

// For returns the statistics for id, or a zero-play record when the song was
// never performed.
func (s SongStatistics) For(id int64) SongStats {
	if st, ok := s[id]; ok {
		return st
	}
	return SongStats{SongID: id, Performances: []Performance{}}
}

// PlayCount returns the number of performances of the song
func (s SongStatistics) PlayCount(id int64) int {
	return s[id].PlayCount
}

// DaysSinceLastPlayed returns the gap for the song; ok is false when the song
// was never played.
func (s SongStatistics) DaysSinceLastPlayed(id int64) (int, bool) {
	st, found := s[id]
	if !found || st.DaysSinceLastPlayed == nil {
		return 0, false
	}
	return *st.DaysSinceLastPlayed, true
}

// ComputeSongStatistics builds per-song statistics in a single pass over all
// setlist entries. Whole-day differences use the calendar of today's location.
func ComputeSongStatistics(shows []models.Show, today time.Time) SongStatistics {
	loc := today.Location()
	out := make(SongStatistics)

	for _, show := range chronological(shows) {
		first, last := qualifyingBounds(show.Setlist)
		for i, entry := range show.Setlist {
			if entry.Kind != models.EntrySongPost || entry.SongID == 0 {
				continue
			}

			st := out[entry.SongID]
			st.SongID = entry.SongID

			perf := Performance{
				ShowID:       show.ID,
				ShowTitle:    show.Title,
				Date:         show.Date,
				LocationID:   show.LocationID,
				LocationName: show.LocationName,
				TourID:       show.TourID,
				Position:     position(entry, i),
			}
			if n := len(st.Performances); n > 0 {
				perf.DaysSincePrevious = daysBetween(st.Performances[n-1].Date, show.Date, loc)
			}

			st.Performances = append(st.Performances, perf)
			st.PlayCount++
			if i == first {
				st.Openers++
			}
			if i == last {
				st.Closers++
			}
			out[entry.SongID] = st
		}
	}

	for id, st := range out {
		firstPerf := st.Performances[0]
		lastPerf := st.Performances[len(st.Performances)-1]
		days := daysBetween(lastPerf.Date, today, loc)
		st.FirstPlayed = &firstPerf
		st.LastPlayed = &lastPerf
		st.DaysSinceLastPlayed = &days
		out[id] = st
	}

	return out
}

// chronological returns shows ordered by date ascending. The input is
// returned as-is when already ordered; otherwise a sorted copy is made.
func chronological(shows []models.Show) []models.Show {
	byDate := func(a, b models.Show) int {
		return a.Date.Compare(b.Date)
	}
	if slices.IsSortedFunc(shows, byDate) {
		return shows
	}
	sorted := slices.Clone(shows)
	slices.SortStableFunc(sorted, byDate)
	return sorted
}

// qualifyingBounds returns the indexes of the first and last qualifying
// entries, or -1 for both when there are none.
func qualifyingBounds(setlist []models.SetlistEntry) (int, int) {
	first, last := -1, -1
	for i, entry := range setlist {
		if !entry.Kind.Qualifies() {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	return first, last
}

func position(entry models.SetlistEntry, index int) int {
	if entry.Position > 0 {
		return entry.Position
	}
	return index + 1
}

// daysBetween counts calendar days from a to b as seen in loc
func daysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int((to.Unix() - from.Unix()) / 86400)
}
