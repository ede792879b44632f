package models

// VenueInfo holds optional venue metadata linked to a location
type VenueInfo struct {
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Capacity *int   `json:"capacity,omitempty"`
}

// Location represents a venue or city term
type Location struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	City   string     `json:"city,omitempty"`
	Region string     `json:"region,omitempty"`
	Venue  *VenueInfo `json:"venue,omitempty"`
}

// Tour represents a tour term. Its shows are derived from shows.tour_id.
type Tour struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
