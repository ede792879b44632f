package search

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"encore/shared/go/logging"
)

// Handler responds to search requests backed by the Store.
type Handler struct {
	store Store
}

// NewHandler builds a handler using the provided store implementation.
func NewHandler(store Store) http.Handler {
	return &Handler{store: store}
}

// Response models the payload returned by the search handler.
type Response struct {
	Sections []Section `json:"sections"`
}

// Section groups related search results.
type Section struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Item represents a single search result entry.
type Item struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Href     string `json:"href,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusOK, Response{Sections: []Section{}})
		return
	}

	limit := 10
	if rawLimit := strings.TrimSpace(r.URL.Query().Get("limit")); rawLimit != "" {
		if parsed, err := strconv.Atoi(rawLimit); err == nil && parsed > 0 {
			limit = min(parsed, 50)
		}
	}

	results, err := h.store.Search(r.Context(), query, limit)
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Str("query", query).Msg("search failed")
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, buildResponse(results))
}

func buildResponse(results Results) Response {
	sections := []Section{}

	if len(results.Songs) > 0 {
		items := make([]Item, 0, len(results.Songs))
		for _, song := range results.Songs {
			subtitle := song.Band
			if song.Attribution != "" {
				subtitle = "cover of " + song.Attribution
			}
			items = append(items, Item{
				ID:       strconv.FormatInt(song.ID, 10),
				Title:    song.Title,
				Subtitle: subtitle,
				Href:     song.Href,
			})
		}
		sections = append(sections, Section{Name: "songs", Items: items})
	}

	if len(results.Shows) > 0 {
		items := make([]Item, 0, len(results.Shows))
		for _, show := range results.Shows {
			subtitle := show.Date.Format(time.DateOnly)
			if show.Location != "" {
				subtitle = show.Location + " • " + subtitle
			}
			items = append(items, Item{
				ID:       strconv.FormatInt(show.ID, 10),
				Title:    show.Title,
				Subtitle: subtitle,
				Href:     show.Href,
			})
		}
		sections = append(sections, Section{Name: "shows", Items: items})
	}

	if len(results.Locations) > 0 {
		items := make([]Item, 0, len(results.Locations))
		for _, loc := range results.Locations {
			var parts []string
			if loc.City != "" && loc.City != loc.Name {
				parts = append(parts, loc.City)
			}
			if shows := pluralize(loc.ShowCount, "show"); shows != "" {
				parts = append(parts, shows)
			}
			items = append(items, Item{
				ID:       strconv.FormatInt(loc.ID, 10),
				Title:    loc.Name,
				Subtitle: strings.Join(parts, " • "),
				Href:     loc.Href,
			})
		}
		sections = append(sections, Section{Name: "locations", Items: items})
	}

	return Response{Sections: sections}
}

func writeJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pluralize(count int, singular string) string {
	switch count {
	case 0:
		return ""
	case 1:
		return "1 " + singular
	default:
		return strconv.Itoa(count) + " " + singular + "s"
	}
}
