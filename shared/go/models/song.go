package models

import "time"

const (
	CategoryOriginal = "original"
	CategoryCover    = "cover"
)

// Song represents a song post
type Song struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"published_at"`
	Categories  []string  `json:"categories"`
	Attribution string    `json:"attribution,omitempty"` // Original artist for covers
	ArtistID    *int64    `json:"artist_id,omitempty"`   // Performing band
	ArtistName  string    `json:"artist_name,omitempty"`
}

// HasCategory reports whether the song is tagged with category
func (s Song) HasCategory(category string) bool {
	for _, c := range s.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// SongFilter narrows the songs returned by a query
type SongFilter struct {
	Query       string // Substring match on title
	Category    string
	ArtistID    *int64
	Attribution string
}
