package models

import "time"

// Band is a performing artist referenced by songs and albums
type Band struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Founded   *int   `json:"founded,omitempty"`   // Year
	Disbanded *int   `json:"disbanded,omitempty"` // Year, nil while active
}

// Active reports whether the band has no disbanded year
func (b Band) Active() bool {
	return b.Disbanded == nil
}

// Album is a release by a band
type Album struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	BandID      *int64     `json:"band_id,omitempty"`
	BandName    string     `json:"band_name,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
}
