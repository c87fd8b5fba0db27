package view

import (
	"fmt"

	"github.com/desertthunder/showfinder/internal/models"
)

// DefaultPageSize is the number of shows revealed initially and per [View.LoadMore].
const DefaultPageSize = 12

// TrendingQuery labels a view loaded from the trending feed.
const TrendingQuery = "Trending"

// View is the state behind a results screen: the fetched list, its filtered and
// sorted derivation, and how many entries are revealed.
type View struct {
	Query    string
	All      []models.Show
	Results  []models.Show
	Genres   []string
	Filter   Filter
	Visible  int
	PageSize int
}

// NewView creates an empty view. Non-positive page sizes use [DefaultPageSize].
func NewView(pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View{
		PageSize: pageSize,
		Visible:  pageSize,
		Filter:   Filter{Sort: SortRelevance},
	}
}

// Load replaces the fetched list for query, keeping the current sort and rating
// filter but dropping a genre the new list does not offer.
func (v *View) Load(query string, shows []models.Show) {
	v.Query = query
	v.All = shows
	v.Genres = Genres(shows)
	v.Filter.Genre = ReconcileGenre(v.Filter.Genre, v.Genres)
	v.refresh()
}

// LoadTrending loads a trending feed and resets the controls to rating order with no filters.
func (v *View) LoadTrending(shows []models.Show) {
	v.Filter = Filter{Sort: SortRatingDesc}
	v.Load(TrendingQuery, shows)
}

// Clear drops all results, as after an empty or failed search.
func (v *View) Clear() {
	v.All = nil
	v.Results = nil
	v.Genres = nil
	v.Visible = v.PageSize
}

// SetFilter applies new filter settings and resets the reveal cursor.
func (v *View) SetFilter(f Filter) {
	v.Filter = f
	v.refresh()
}

// LoadMore reveals one more page.
func (v *View) LoadMore() {
	v.Visible += v.PageSize
}

// Page returns the revealed prefix of the results.
func (v *View) Page() []models.Show {
	return v.Results[:min(v.Visible, len(v.Results))]
}

// HasMore reports whether [View.LoadMore] would reveal anything.
func (v *View) HasMore() bool {
	return len(v.Results) > v.Visible
}

// Find returns a show by ID from the fetched list.
func (v *View) Find(id int) (models.Show, bool) {
	for _, s := range v.All {
		if s.ID == id {
			return s, true
		}
	}
	return models.Show{}, false
}

// Status describes what is on screen.
func (v *View) Status() string {
	shown, total := len(v.Page()), len(v.Results)
	if v.Query == TrendingQuery {
		return fmt.Sprintf("Trending picks • Showing %d of %d", shown, total)
	}
	return fmt.Sprintf("Results for %q • Showing %d of %d", v.Query, shown, total)
}

func (v *View) refresh() {
	v.Results = Apply(v.All, v.Filter)
	v.Visible = v.PageSize
}
