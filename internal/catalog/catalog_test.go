package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encore/shared/go/models"
)

func songs(titles ...string) []models.Song {
	out := make([]models.Song, len(titles))
	for i, title := range titles {
		out[i] = models.Song{ID: int64(i + 1), Title: title}
	}
	return out
}

func titles(list []models.Song) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Title
	}
	return out
}

type fakeMetrics struct {
	counts map[int64]int
	gaps   map[int64]int
}

func (f fakeMetrics) PlayCount(id int64) int { return f.counts[id] }

func (f fakeMetrics) DaysSinceLastPlayed(id int64) (int, bool) {
	d, ok := f.gaps[id]
	return d, ok
}

func TestGroupFirstLetter(t *testing.T) {
	input := songs("Apple", "Avocado", "Banana", "Blueberry", "Cherry")

	got := Group(input, GroupFirstLetter)

	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].Label)
	assert.Equal(t, []string{"Apple", "Avocado"}, titles(got[0].Songs))
	assert.Equal(t, "B", got[1].Label)
	assert.Equal(t, []string{"Banana", "Blueberry"}, titles(got[1].Songs))
	assert.Equal(t, "C", got[2].Label)
	assert.Equal(t, []string{"Cherry"}, titles(got[2].Songs))
}

func TestGroupDoesNotSort(t *testing.T) {
	input := songs("Banana", "Apple", "Blueberry")

	got := Group(input, GroupFirstLetter)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"B", "A", "B"}, []string{got[0].Label, got[1].Label, got[2].Label})
}

func TestGroupFirstLetterFoldsCase(t *testing.T) {
	got := Group(songs("apple", "Avocado", "  éclair", ""), GroupFirstLetter)

	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].Label)
	assert.Len(t, got[0].Songs, 2)
	assert.Equal(t, "É", got[1].Label)
	assert.Equal(t, "#", got[2].Label)
}

func TestGroupMonth(t *testing.T) {
	input := []models.Song{
		{ID: 1, Title: "c", PublishedAt: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "b", PublishedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "a", PublishedAt: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
	}

	got := Group(input, GroupMonth)

	require.Len(t, got, 2)
	assert.Equal(t, "2024-03", got[0].Label)
	assert.Len(t, got[0].Songs, 2)
	assert.Equal(t, "2023-12", got[1].Label)
}

func TestGroupAttributionDefaultsToUnknownArtist(t *testing.T) {
	input := []models.Song{
		{ID: 1, Title: "One", Attribution: "Bowie"},
		{ID: 2, Title: "Two", Attribution: "  "},
		{ID: 3, Title: "Three", Attribution: UnknownArtist},
	}

	got := Group(input, GroupAttribution)

	require.Len(t, got, 2)
	assert.Equal(t, "Bowie", got[0].Label)
	assert.Equal(t, UnknownArtist, got[1].Label)
	assert.Len(t, got[1].Songs, 2)
}

func TestArrangeSortsBeforeGrouping(t *testing.T) {
	input := songs("Cherry", "banana", "Apple", "Blueberry", "avocado")

	got := Arrange(input, GroupFirstLetter, nil)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"Apple", "avocado"}, titles(got[0].Songs))
	assert.Equal(t, []string{"banana", "Blueberry"}, titles(got[1].Songs))
	assert.Equal(t, []string{"Cherry"}, titles(got[2].Songs))
}

func TestArrangeAttributionMergesUnknown(t *testing.T) {
	input := []models.Song{
		{ID: 1, Title: "Zed", Attribution: UnknownArtist},
		{ID: 2, Title: "Heroes", Attribution: "Bowie"},
		{ID: 3, Title: "Alpha"},
		{ID: 4, Title: "Changes", Attribution: "Bowie"},
	}

	got := Arrange(input, GroupAttribution, nil)

	require.Len(t, got, 2)
	assert.Equal(t, "Bowie", got[0].Label)
	assert.Equal(t, []string{"Changes", "Heroes"}, titles(got[0].Songs))
	assert.Equal(t, UnknownArtist, got[1].Label)
	assert.Equal(t, []string{"Alpha", "Zed"}, titles(got[1].Songs))
}

func TestSortAlphabeticalIgnoresCase(t *testing.T) {
	got := Sort(songs("banana", "Cherry", "apple"), PolicyAlphabetical, nil)
	assert.Equal(t, []string{"apple", "banana", "Cherry"}, titles(got))
}

func TestSortReturnsCopy(t *testing.T) {
	input := songs("b", "a")
	_ = Sort(input, PolicyAlphabetical, nil)
	assert.Equal(t, []string{"b", "a"}, titles(input))
}

func TestSortChronological(t *testing.T) {
	input := []models.Song{
		{ID: 1, Title: "Old", PublishedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "New", PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "Mid", PublishedAt: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	got := Sort(input, PolicyChronological, nil)

	assert.Equal(t, []string{"New", "Mid", "Old"}, titles(got))
}

func TestSortByPlayCountBreaksTiesByTitle(t *testing.T) {
	input := []models.Song{
		{ID: 3, Title: "C"},
		{ID: 2, Title: "B"},
		{ID: 1, Title: "A"},
	}
	metrics := fakeMetrics{counts: map[int64]int{1: 5, 2: 5, 3: 2}}

	got := Sort(input, PolicyByPlayCount, metrics)

	assert.Equal(t, []string{"A", "B", "C"}, titles(got))
}

func TestSortByGapPutsNeverPlayedLast(t *testing.T) {
	input := songs("Fresh", "Never", "Stale", "Also Never", "Tied")
	metrics := fakeMetrics{gaps: map[int64]int{1: 3, 3: 400, 5: 3}}

	got := Sort(input, PolicyByGap, metrics)

	assert.Equal(t, []string{"Stale", "Fresh", "Tied", "Also Never", "Never"}, titles(got))
}

func TestSortByGapWithoutMetrics(t *testing.T) {
	got := Sort(songs("b", "a"), PolicyByGap, nil)
	assert.Equal(t, []string{"a", "b"}, titles(got))
}

func TestSortByName(t *testing.T) {
	got := Sort(songs("The Zebra", "Apple", "A Moon", "(Intro) Mars"), PolicyByName, nil)
	assert.Equal(t, []string{"Apple", "(Intro) Mars", "A Moon", "The Zebra"}, titles(got))
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"The Dark Side", "dark side"},
		{"A", "a"},
		{"An Ending (Ascent)", "ending ascent"},
		{"Rock 'n' Roll", "rock n roll"},
		{"  Theory  ", "theory"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestParsePolicy(t *testing.T) {
	for _, p := range Policies() {
		got, err := ParsePolicy(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParsePolicy(" BY_GAP ")
	require.NoError(t, err)
	assert.Equal(t, PolicyByGap, got)

	_, err = ParsePolicy("random")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestParseGroupKey(t *testing.T) {
	got, err := ParseGroupKey("month")
	require.NoError(t, err)
	assert.Equal(t, GroupMonth, got)
	assert.Equal(t, PolicyChronological, got.Policy())

	_, err = ParseGroupKey("decade")
	assert.ErrorIs(t, err, ErrUnknownGroupKey)
}
