package httpapi

import (
	"net/http"
	"time"

	"encore/shared/go/models"
)

const dateLayout = "2006-01-02"

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Server) handleListShows(w http.ResponseWriter, r *http.Request) {
	var (
		filter models.ShowFilter
		err    error
	)

	if filter.TourID, err = queryID(r, "tour_id"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid tour_id parameter"})
		return
	}
	if filter.LocationID, err = queryID(r, "location_id"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid location_id parameter"})
		return
	}
	if filter.From, err = parseDateParam(r, "from"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid from parameter, expected YYYY-MM-DD"})
		return
	}
	if filter.To, err = parseDateParam(r, "to"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid to parameter, expected YYYY-MM-DD"})
		return
	}

	shows, err := s.shows.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Shows []models.Show `json:"shows"`
	}{Shows: shows})
}

func (s *Server) handleGetShow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid show ID"})
		return
	}

	show, err := s.shows.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, show)
}
