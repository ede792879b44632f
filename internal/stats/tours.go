package stats

import "encore/shared/go/models"

// TourStats rolls up the shows of a tour
type TourStats struct {
	TourID          int64  `json:"tour_id,omitempty"`
	TourName        string `json:"tour_name,omitempty"`
	ShowCount       int    `json:"show_count"`
	SongCount       int    `json:"song_count"`
	UniqueSongCount int    `json:"unique_song_count"`
}

// ComputeTourStatistics aggregates the shows belonging to a single tour.
// Text entries count toward SongCount but never toward UniqueSongCount.
func ComputeTourStatistics(shows []models.Show) TourStats {
	var ts TourStats
	seen := make(map[int64]struct{})
	for _, show := range shows {
		ts.add(show, seen)
	}
	ts.UniqueSongCount = len(seen)
	return ts
}

// ComputeAllTourStatistics groups shows by tour and aggregates each group.
// Shows outside any tour are left out.
func ComputeAllTourStatistics(shows []models.Show) map[int64]TourStats {
	out := make(map[int64]TourStats)
	seen := make(map[int64]map[int64]struct{})
	for _, show := range shows {
		if show.TourID == 0 {
			continue
		}
		ts := out[show.TourID]
		ts.TourID = show.TourID
		if ts.TourName == "" {
			ts.TourName = show.TourName
		}
		songs, ok := seen[show.TourID]
		if !ok {
			songs = make(map[int64]struct{})
			seen[show.TourID] = songs
		}
		ts.add(show, songs)
		ts.UniqueSongCount = len(songs)
		out[show.TourID] = ts
	}
	return out
}

func (ts *TourStats) add(show models.Show, seen map[int64]struct{}) {
	ts.ShowCount++
	ts.SongCount += countQualifying(show.Setlist)
	for _, entry := range show.Setlist {
		if entry.Kind == models.EntrySongPost && entry.SongID != 0 {
			seen[entry.SongID] = struct{}{}
		}
	}
}
