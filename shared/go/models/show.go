package models

import "time"

// EntryKind identifies what a setlist entry refers to
type EntryKind string

const (
	EntrySongPost EntryKind = "song-post" // References a Song by ID
	EntrySongText EntryKind = "song-text" // Free-text song name, no Song identity
	EntryOther    EntryKind = "other"     // Breaks, notes, anything not counted
)

// ParseEntryKind maps a stored entry type onto the closed set of kinds.
// Missing or unrecognized types become EntryOther.
func ParseEntryKind(raw string) EntryKind {
	switch EntryKind(raw) {
	case EntrySongPost:
		return EntrySongPost
	case EntrySongText:
		return EntrySongText
	default:
		return EntryOther
	}
}

// Qualifies reports whether the entry counts toward song totals
func (k EntryKind) Qualifies() bool {
	return k == EntrySongPost || k == EntrySongText
}

// SetlistEntry is one row of a show's setlist
type SetlistEntry struct {
	Kind     EntryKind `json:"type"`
	SongID   int64     `json:"song_id,omitempty"` // 0 when the entry has no resolvable song
	Title    string    `json:"title,omitempty"`   // Free text for song-text entries
	Position int       `json:"position"`          // 1-based index within the setlist
}

// Show represents a single live performance
type Show struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Date         time.Time      `json:"date"`
	LocationID   int64          `json:"location_id,omitempty"` // 0 when missing or deleted
	LocationName string         `json:"location_name,omitempty"`
	TourID       int64          `json:"tour_id,omitempty"` // 0 when not part of a tour
	TourName     string         `json:"tour_name,omitempty"`
	Setlist      []SetlistEntry `json:"setlist"`
}

// ShowFilter narrows the shows returned by a query
type ShowFilter struct {
	TourID     *int64
	LocationID *int64
	From       *time.Time // Shows on or after this date
	To         *time.Time // Shows on or before this date
}
