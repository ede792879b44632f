package catalog

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"encore/shared/go/models"
)

// UnknownArtist labels covers without an attribution
const UnknownArtist = "Unknown Artist"

// SongGroup is a labelled run of consecutive songs sharing a key
type SongGroup struct {
	Label string        `json:"label"`
	Songs []models.Song `json:"songs"`
}

// Group splits an already ordered song list wherever the key changes between
// neighbours. It does not sort: callers that need alphabetical or
// chronological groups must order the input first, or use Arrange.
func Group(songs []models.Song, key GroupKey) []SongGroup {
	label := labeler(key)

	var groups []SongGroup
	for _, song := range songs {
		l := label(song)
		if n := len(groups); n > 0 && groups[n-1].Label == l {
			groups[n-1].Songs = append(groups[n-1].Songs, song)
			continue
		}
		groups = append(groups, SongGroup{Label: l, Songs: []models.Song{song}})
	}
	return groups
}

// Arrange sorts songs with the policy matching key and then groups them
func Arrange(songs []models.Song, key GroupKey, metrics Metrics) []SongGroup {
	return Group(Sort(songs, key.Policy(), metrics), key)
}

func labeler(key GroupKey) func(models.Song) string {
	switch key {
	case GroupMonth:
		return monthLabel
	case GroupAttribution:
		return AttributionLabel
	default:
		upper := cases.Upper(language.Und)
		return func(s models.Song) string {
			return firstLetter(upper, s.Title)
		}
	}
}

func firstLetter(upper cases.Caser, title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "#"
	}
	r, size := utf8.DecodeRuneInString(title)
	if r == utf8.RuneError {
		return "#"
	}
	return upper.String(title[:size])
}

func monthLabel(s models.Song) string {
	return s.PublishedAt.Format("2006-01")
}

// AttributionLabel returns the cover-source artist, or UnknownArtist when the
// song carries none.
func AttributionLabel(s models.Song) string {
	if a := strings.TrimSpace(s.Attribution); a != "" {
		return a
	}
	return UnknownArtist
}
