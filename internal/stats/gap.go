package stats

import "time"

// Gap is the time elapsed since a song was last performed
type Gap struct {
	SongID     int64     `json:"song_id"`
	DaysSince  int       `json:"days_since"`
	PlayCount  int       `json:"play_count"`
	LastPlayed time.Time `json:"last_played"`
}

// GapForSong derives the gap view for a song. It returns false when the song
// has not been played yet.
func GapForSong(stats SongStatistics, songID int64) (Gap, bool) {
	st := stats.For(songID)
	if !st.Played() || st.LastPlayed == nil || st.DaysSinceLastPlayed == nil {
		return Gap{}, false
	}
	return Gap{
		SongID:     songID,
		DaysSince:  *st.DaysSinceLastPlayed,
		PlayCount:  st.PlayCount,
		LastPlayed: st.LastPlayed.Date,
	}, true
}
