package stats

import (
	"time"

	"encore/shared/go/models"
)

// VenueStats rolls up the shows played at one location
type VenueStats struct {
	LocationID   int64     `json:"location_id"`
	LocationName string    `json:"location_name,omitempty"`
	ShowCount    int       `json:"show_count"`
	SongCount    int       `json:"song_count"`
	LastShow     time.Time `json:"last_show"`
}

// ComputeVenueStatistics groups shows by location. Shows without a resolved
// location are left out.
func ComputeVenueStatistics(shows []models.Show) map[int64]VenueStats {
	out := make(map[int64]VenueStats)
	for _, show := range shows {
		if show.LocationID == 0 {
			continue
		}
		vs := out[show.LocationID]
		vs.LocationID = show.LocationID
		if vs.LocationName == "" {
			vs.LocationName = show.LocationName
		}
		vs.ShowCount++
		vs.SongCount += countQualifying(show.Setlist)
		if show.Date.After(vs.LastShow) {
			vs.LastShow = show.Date
		}
		out[show.LocationID] = vs
	}
	return out
}

// countQualifying counts song-post entries with a resolved song plus every
// song-text entry.
func countQualifying(setlist []models.SetlistEntry) int {
	n := 0
	for _, entry := range setlist {
		switch entry.Kind {
		case models.EntrySongPost:
			if entry.SongID != 0 {
				n++
			}
		case models.EntrySongText:
			n++
		}
	}
	return n
}
