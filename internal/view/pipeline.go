package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/shared"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering applied by [Apply].
type SortKey string

const (
	SortRelevance  SortKey = "relevance"
	SortRatingAsc  SortKey = "rating_asc"
	SortRatingDesc SortKey = "rating_desc"
	SortYearAsc    SortKey = "year_asc"
	SortYearDesc   SortKey = "year_desc"
	SortNameAsc    SortKey = "name_asc"
)

// SortKeys lists every supported key in selector order.
var SortKeys = []SortKey{SortRelevance, SortRatingDesc, SortRatingAsc, SortYearDesc, SortYearAsc, SortNameAsc}

// ParseSortKey maps a user supplied name to a [SortKey]. The empty string means relevance.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortRelevance, nil
	}
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, key) {
		return key, nil
	}
	return "", fmt.Errorf("%w: unknown sort key %q", shared.ErrInvalidArgument, s)
}

// Filter is the user-controlled part of the pipeline.
type Filter struct {
	Genre     string  // exact genre label; empty matches every show
	MinRating float64 // shows without a rating count as 0
	Sort      SortKey
}

// Matches reports whether a show passes the genre and rating filters.
func (f Filter) Matches(s models.Show) bool {
	if f.Genre != "" && !s.HasGenre(f.Genre) {
		return false
	}
	rating := 0.0
	if s.Rating.Average != nil {
		rating = *s.Rating.Average
	}
	return rating >= f.MinRating
}

// Apply returns the shows passing f, ordered by f.Sort.
//
// The input slice is never modified.
func Apply(shows []models.Show, f Filter) []models.Show {
	out := make([]models.Show, 0, len(shows))
	for _, s := range shows {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	Sort(out, f.Sort)
	return out
}

// Sort orders shows in place. Unknown keys and [SortRelevance] keep the current order.
func Sort(shows []models.Show, key SortKey) {
	switch key {
	case SortRatingDesc:
		slices.SortStableFunc(shows, func(a, b models.Show) int { return cmp.Compare(b.RatingValue(), a.RatingValue()) })
	case SortRatingAsc:
		slices.SortStableFunc(shows, func(a, b models.Show) int { return cmp.Compare(a.RatingValue(), b.RatingValue()) })
	case SortYearDesc:
		slices.SortStableFunc(shows, func(a, b models.Show) int { return cmp.Compare(b.Year(), a.Year()) })
	case SortYearAsc:
		slices.SortStableFunc(shows, func(a, b models.Show) int { return cmp.Compare(a.Year(), b.Year()) })
	case SortNameAsc:
		// A Collator keeps scratch buffers and is not safe to share.
		c := collate.New(language.English)
		slices.SortStableFunc(shows, func(a, b models.Show) int { return c.CompareString(a.Name, b.Name) })
	}
}

// Genres returns the distinct genre labels of shows, sorted.
func Genres(shows []models.Show) []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, s := range shows {
		for _, g := range s.Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			genres = append(genres, g)
		}
	}
	slices.Sort(genres)
	return genres
}

// ReconcileGenre keeps current when it is still offered, otherwise resets to "" (all genres).
func ReconcileGenre(current string, genres []string) string {
	if current != "" && slices.Contains(genres, current) {
		return current
	}
	return ""
}

// TrendingFrom builds the trending feed from one catalog page: shows with a poster,
// highest rated first, capped at limit.
//
// The catalog has no trending endpoint; rating order over a fixed page stands in for one.
func TrendingFrom(page []models.Show, limit int) []models.Show {
	out := make([]models.Show, 0, len(page))
	for _, s := range page {
		if s.Poster() != "" {
			out = append(out, s)
		}
	}
	Sort(out, SortRatingDesc)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
