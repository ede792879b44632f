package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

type stubStore struct {
	results   Results
	err       error
	lastQuery string
	lastLimit int
}

func (s *stubStore) Search(ctx context.Context, query string, limit int) (Results, error) {
	s.lastQuery = query
	s.lastLimit = limit
	return s.results, s.err
}

func TestHandlerBuildsSections(t *testing.T) {
	store := &stubStore{results: Results{
		Songs: []SongResult{
			{ID: 1, Title: "Jolene", Attribution: "Dolly Parton", Href: "/api/v1/songs/1"},
			{ID: 2, Title: "Anchor", Band: "The Lanterns", Href: "/api/v1/songs/2"},
		},
		Shows: []ShowResult{
			{ID: 5, Title: "Holiday Benefit", Date: time.Date(2023, 12, 16, 20, 0, 0, 0, time.UTC), Location: "Ryman Auditorium"},
		},
		Locations: []LocationResult{
			{ID: 3, Name: "The Fillmore", City: "San Francisco", ShowCount: 2},
			{ID: 4, Name: "Portland", City: "Portland", ShowCount: 1},
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=%20la%20&limit=500", nil)
	rec := httptest.NewRecorder()
	NewHandler(store).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if store.lastQuery != "la" {
		t.Fatalf("expected trimmed query, got %q", store.lastQuery)
	}
	if store.lastLimit != 50 {
		t.Fatalf("expected limit capped at 50, got %d", store.lastLimit)
	}

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(resp.Sections))
	}

	songs := resp.Sections[0]
	if songs.Name != "songs" || songs.Items[0].Subtitle != "cover of Dolly Parton" || songs.Items[1].Subtitle != "The Lanterns" {
		t.Fatalf("unexpected songs section %+v", songs)
	}
	if got := resp.Sections[1].Items[0].Subtitle; got != "Ryman Auditorium • 2023-12-16" {
		t.Fatalf("unexpected show subtitle %q", got)
	}
	locations := resp.Sections[2].Items
	if locations[0].Subtitle != "San Francisco • 2 shows" || locations[1].Subtitle != "1 show" {
		t.Fatalf("unexpected location subtitles %+v", locations)
	}
}

func TestHandlerEmptyQuery(t *testing.T) {
	store := &stubStore{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=", nil)
	rec := httptest.NewRecorder()
	NewHandler(store).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if store.lastQuery != "" {
		t.Fatalf("store should not be queried for an empty search")
	}
}

func TestHandlerStoreFailure(t *testing.T) {
	store := &stubStore{err: errors.New("boom")}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=x", nil)
	rec := httptest.NewRecorder()
	NewHandler(store).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestPGStoreSearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM songs s`)).
		WithArgs("%moon%", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "attribution", "band"}).
			AddRow(int64(3), "Paper Moons", "", "The Lanterns"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM shows sh`)).
		WithArgs("%moon%", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "show_date", "location"}).
			AddRow(int64(8), "Paper Moons Tour: Nashville", time.Date(2021, 5, 20, 20, 0, 0, 0, time.UTC), "Ryman Auditorium"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM locations l`)).
		WithArgs("%moon%", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "show_count"}))

	results, err := NewPGStore(db).Search(context.Background(), "moon", 5)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}

	if len(results.Songs) != 1 || results.Songs[0].Href != "/api/v1/songs/3" {
		t.Fatalf("unexpected songs %+v", results.Songs)
	}
	if len(results.Shows) != 1 || results.Shows[0].Href != "/api/v1/shows/8" {
		t.Fatalf("unexpected shows %+v", results.Shows)
	}
	if results.Locations == nil || len(results.Locations) != 0 {
		t.Fatalf("expected empty locations, got %#v", results.Locations)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
