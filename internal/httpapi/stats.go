package httpapi

import (
	"net/http"

	"github.com/dustin/go-humanize"

	"encore/internal/app/stats"
	aggregate "encore/internal/stats"
	"encore/shared/go/models"
)

type gapResponse struct {
	Song      models.Song `json:"song"`
	Played    bool        `json:"played"`
	DaysSince *int        `json:"days_since,omitempty"`
	PlayCount int         `json:"play_count"`
	Label     string      `json:"label"`
}

func (s *Server) handleSongStats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid song ID"})
		return
	}

	report, err := s.stats.Song(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSongGap(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid song ID"})
		return
	}

	report, err := s.stats.Gap(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s.gapResponse(report))
}

func (s *Server) gapResponse(report stats.GapReport) gapResponse {
	resp := gapResponse{Song: report.Song, Played: report.Played, Label: "not yet played"}
	if !report.Played || report.Gap == nil {
		return resp
	}

	days := report.Gap.DaysSince
	resp.DaysSince = &days
	resp.PlayCount = report.Gap.PlayCount
	resp.Label = "last played " + humanize.RelTime(report.Gap.LastPlayed, s.stats.Now(), "ago", "from now")
	return resp
}

func (s *Server) handleStatsSongs(w http.ResponseWriter, r *http.Request) {
	policy, err := sortPolicy(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	reports, err := s.stats.Songs(r.Context(), policy)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Songs []stats.SongReport `json:"songs"`
	}{Songs: reports})
}

func (s *Server) handleStatsVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := s.stats.Venues(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Venues []aggregate.VenueStats `json:"venues"`
	}{Venues: venues})
}

func (s *Server) handleStatsTours(w http.ResponseWriter, r *http.Request) {
	tours, err := s.stats.Tours(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Tours []aggregate.TourStats `json:"tours"`
	}{Tours: tours})
}

func (s *Server) handleStatsTour(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid tour ID"})
		return
	}

	report, err := s.stats.Tour(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
