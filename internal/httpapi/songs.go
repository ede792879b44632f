package httpapi

import (
	"net/http"

	"encore/internal/catalog"
	"encore/shared/go/models"
)

func songFilter(r *http.Request) (models.SongFilter, error) {
	query := r.URL.Query()
	artistID, err := queryID(r, "artist_id")
	if err != nil {
		return models.SongFilter{}, err
	}
	return models.SongFilter{
		Query:       query.Get("q"),
		Category:    query.Get("category"),
		ArtistID:    artistID,
		Attribution: query.Get("attribution"),
	}, nil
}

func sortPolicy(r *http.Request) (catalog.Policy, error) {
	raw := r.URL.Query().Get("sort")
	if raw == "" {
		return catalog.PolicyAlphabetical, nil
	}
	return catalog.ParsePolicy(raw)
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	filter, err := songFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist_id parameter"})
		return
	}

	policy, err := sortPolicy(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	songs, err := s.songs.List(r.Context(), filter, policy)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Sort  catalog.Policy `json:"sort"`
		Songs []models.Song  `json:"songs"`
	}{Sort: policy, Songs: songs})
}

func (s *Server) handleGroupedSongs(w http.ResponseWriter, r *http.Request) {
	filter, err := songFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist_id parameter"})
		return
	}

	key := catalog.GroupFirstLetter
	if raw := r.URL.Query().Get("group"); raw != "" {
		key, err = catalog.ParseGroupKey(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
	}

	groups, err := s.songs.Grouped(r.Context(), filter, key)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Group  catalog.GroupKey    `json:"group"`
		Groups []catalog.SongGroup `json:"groups"`
	}{Group: key, Groups: groups})
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid song ID"})
		return
	}

	song, err := s.songs.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, song)
}
