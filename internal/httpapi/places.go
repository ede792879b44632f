package httpapi

import (
	"net/http"
	"strconv"

	"encore/internal/app/discography"
	"encore/shared/go/models"
)

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := s.places.ListLocations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Locations []models.Location `json:"locations"`
	}{Locations: locations})
}

func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid location ID"})
		return
	}

	location, err := s.places.GetLocation(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, location)
}

func (s *Server) handleListTours(w http.ResponseWriter, r *http.Request) {
	tours, err := s.places.ListTours(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Tours []models.Tour `json:"tours"`
	}{Tours: tours})
}

func (s *Server) handleGetTour(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid tour ID"})
		return
	}

	tour, err := s.places.GetTour(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tour)
}

func (s *Server) handleListBands(w http.ResponseWriter, r *http.Request) {
	filter := discography.BandFilter{Name: r.URL.Query().Get("name")}
	if raw := r.URL.Query().Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid active parameter"})
			return
		}
		filter.ActiveOnly = active
	}

	bands, err := s.discography.ListBands(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Bands []models.Band `json:"bands"`
	}{Bands: bands})
}

func (s *Server) handleListAlbums(w http.ResponseWriter, r *http.Request) {
	bandID, err := queryID(r, "band_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid band_id parameter"})
		return
	}

	albums, err := s.discography.ListAlbums(r.Context(), bandID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Albums []models.Album `json:"albums"`
	}{Albums: albums})
}
