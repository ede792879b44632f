package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedSetlist(t *testing.T) {
	ids := map[string]int64{"Anchor": 4, "Jolene": 8}

	got := seedSetlist([]string{"Anchor", "--", "~Untitled Jam", "Jolene"}, ids)

	assert.Equal(t, []map[string]any{
		{"type": "song-post", "song_id": int64(4)},
		{"type": "break"},
		{"type": "song-text", "title": "Untitled Jam"},
		{"type": "song-post", "song_id": int64(8)},
	}, got)
}

func TestDemoShowsReferenceKnownSongs(t *testing.T) {
	known := make(map[string]bool, len(demoSongs))
	for _, song := range demoSongs {
		known[song.Title] = true
	}

	for _, show := range demoShows {
		for _, line := range show.Setlist {
			if line == "--" || line[0] == '~' {
				continue
			}
			assert.Truef(t, known[line], "show %q references unknown song %q", show.Title, line)
		}
	}
}
