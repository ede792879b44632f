package catalog

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"encore/shared/go/models"
)

// Metrics supplies the play statistics some policies order by
type Metrics interface {
	PlayCount(songID int64) int
	DaysSinceLastPlayed(songID int64) (int, bool)
}

// Sort returns a copy of songs ordered by policy. A nil metrics treats every
// song as never played. Unknown policies fall back to alphabetical.
func Sort(songs []models.Song, policy Policy, metrics Metrics) []models.Song {
	if metrics == nil {
		metrics = noMetrics{}
	}
	sorted := slices.Clone(songs)
	byTitle := titleComparer()

	var compare func(a, b models.Song) int
	switch policy {
	case PolicyChronological:
		compare = func(a, b models.Song) int {
			if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
				return c
			}
			return byTitle(a, b)
		}
	case PolicyByPlayCount:
		compare = func(a, b models.Song) int {
			if c := cmp.Compare(metrics.PlayCount(b.ID), metrics.PlayCount(a.ID)); c != 0 {
				return c
			}
			return byTitle(a, b)
		}
	case PolicyByName:
		compare = func(a, b models.Song) int {
			if c := strings.Compare(NormalizeName(a.Title), NormalizeName(b.Title)); c != 0 {
				return c
			}
			return byTitle(a, b)
		}
	case PolicyByGap:
		compare = func(a, b models.Song) int {
			ga, playedA := metrics.DaysSinceLastPlayed(a.ID)
			gb, playedB := metrics.DaysSinceLastPlayed(b.ID)
			switch {
			case playedA && !playedB:
				return -1
			case !playedA && playedB:
				return 1
			case playedA && playedB:
				if c := cmp.Compare(gb, ga); c != 0 {
					return c
				}
			}
			return byTitle(a, b)
		}
	case PolicyByAttribution:
		col := collate.New(language.Und, collate.IgnoreCase)
		compare = func(a, b models.Song) int {
			if c := col.CompareString(AttributionLabel(a), AttributionLabel(b)); c != 0 {
				return c
			}
			return byTitle(a, b)
		}
	default:
		compare = byTitle
	}

	slices.SortStableFunc(sorted, compare)
	return sorted
}

// titleComparer orders by collated title ignoring case, falling back to the
// raw title and then the ID so equal-looking titles stay deterministic.
func titleComparer() func(a, b models.Song) int {
	col := collate.New(language.Und, collate.IgnoreCase)
	return func(a, b models.Song) int {
		if c := col.CompareString(a.Title, b.Title); c != 0 {
			return c
		}
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}
}

var (
	punctuationRe   = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	multipleSpaceRe = regexp.MustCompile(`\s+`)
	leadingArticles = []string{"the ", "a ", "an "}
)

// NormalizeName lowercases a title, replaces punctuation with spaces,
// collapses whitespace and drops a leading English article.
func NormalizeName(s string) string {
	s = strings.ToLower(s)
	s = punctuationRe.ReplaceAllString(s, " ")
	s = multipleSpaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	for _, article := range leadingArticles {
		if rest, ok := strings.CutPrefix(s, article); ok && rest != "" {
			return rest
		}
	}
	return s
}

type noMetrics struct{}

func (noMetrics) PlayCount(int64) int { return 0 }
func (noMetrics) DaysSinceLastPlayed(int64) (int, bool) { return 0, false }
