package tasks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/shared"
	tu "github.com/desertthunder/showfinder/internal/testing"
	"github.com/desertthunder/showfinder/internal/view"
)

func newTestFinder(catalog *tu.MockCatalog) *Finder {
	return NewFinder(catalog, FinderOpts{TrendingPage: 1, Logger: shared.NewLogger(&bytes.Buffer{})})
}

func waitForCalls(t *testing.T, catalog *tu.MockCatalog, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for len(catalog.Calls()) < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d catalog calls, got %v", n, catalog.Calls())
		}
		time.Sleep(time.Millisecond)
	}
}

func poster(s models.Show) models.Show {
	s.Image = &models.Image{Medium: fmt.Sprintf("https://img/%d.jpg", s.ID)}
	return s
}

// gatedCatalog answers each search only when its gate is closed, ignoring cancellation, so
// responses can be delivered in any order.
type gatedCatalog struct {
	tu.MockCatalog
	gates map[string]chan struct{}
}

func (g *gatedCatalog) SearchShows(ctx context.Context, query string) ([]models.SearchResult, error) {
	<-g.gates[query]
	return g.Results[query], nil
}

func TestFinderSearch(t *testing.T) {
	results := map[string][]models.SearchResult{
		"batman": {
			{Score: 0.9, Show: tu.ShowFixture(1, "Batman", 7.5, "1966-01-12", "Action")},
			{Score: 0.8, Show: tu.ShowFixture(2, "Batman Beyond", 8.1, "1999-01-10", "Animation")},
		},
	}

	t.Run("returns shows in relevance order", func(t *testing.T) {
		f := newTestFinder(&tu.MockCatalog{Results: results})
		res := f.Search(context.Background(), "  batman ", nil)

		if res.Status != StatusOK || res.Err != nil {
			t.Fatalf("expected ok, got %v %v", res.Status, res.Err)
		}
		if res.Query != "batman" {
			t.Errorf("expected trimmed query, got %q", res.Query)
		}
		if len(res.Shows) != 2 || res.Shows[0].ID != 1 {
			t.Errorf("unexpected shows %+v", res.Shows)
		}
		if !f.Current(SearchLane, res.Generation) {
			t.Error("expected result to be current")
		}
	})

	t.Run("empty query never reaches the catalog", func(t *testing.T) {
		catalog := &tu.MockCatalog{}
		f := newTestFinder(catalog)
		res := f.Search(context.Background(), "   ", nil)

		if res.Status != StatusFailed || res.Message != MsgEmptyQuery {
			t.Errorf("unexpected outcome %v %q", res.Status, res.Message)
		}
		if !errors.Is(res.Err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", res.Err)
		}
		if len(catalog.Calls()) != 0 {
			t.Errorf("expected no catalog calls, got %v", catalog.Calls())
		}
	})

	t.Run("no matches is empty not failed", func(t *testing.T) {
		f := newTestFinder(&tu.MockCatalog{})
		res := f.Search(context.Background(), "zzz", nil)

		if res.Status != StatusEmpty || res.Err != nil {
			t.Fatalf("expected empty, got %v %v", res.Status, res.Err)
		}
		if res.Message != `No results found for "zzz".` {
			t.Errorf("unexpected message %q", res.Message)
		}
	})

	t.Run("catalog failure", func(t *testing.T) {
		f := newTestFinder(&tu.MockCatalog{Err: shared.ErrAPIRequest})
		res := f.Search(context.Background(), "batman", nil)

		if res.Status != StatusFailed || res.Message != MsgSearchFailed {
			t.Errorf("unexpected outcome %v %q", res.Status, res.Message)
		}
		if !errors.Is(res.Err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", res.Err)
		}
	})

	t.Run("reports progress", func(t *testing.T) {
		progress := make(chan ProgressUpdate, 4)
		newTestFinder(&tu.MockCatalog{Results: results}).Search(context.Background(), "batman", progress)
		close(progress)

		update, ok := <-progress
		if !ok || update.Phase != FetchResults || update.Data != "batman" {
			t.Errorf("unexpected progress %+v", update)
		}
	})
}

func TestFinderGenerations(t *testing.T) {
	t.Run("newer search cancels the older one", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			Results: map[string][]models.SearchResult{"second": {{Show: tu.ShowFixture(2, "Second", 5, "")}}},
			Block:   make(chan struct{}),
		}
		f := newTestFinder(catalog)

		first := make(chan Result, 1)
		go func() { first <- f.Search(context.Background(), "first", nil) }()
		waitForCalls(t, catalog, 1)

		second := make(chan Result, 1)
		go func() { second <- f.Search(context.Background(), "second", nil) }()

		old := <-first
		if !old.Stale() || old.Shows != nil {
			t.Errorf("expected stale first result, got %+v", old)
		}

		close(catalog.Block)
		latest := <-second
		if latest.Status != StatusOK || latest.Stale() {
			t.Fatalf("expected current second result, got %+v", latest)
		}
		if latest.Generation <= old.Generation {
			t.Errorf("expected generation to grow, got %d then %d", old.Generation, latest.Generation)
		}
	})

	t.Run("late response is discarded even without cancellation", func(t *testing.T) {
		catalog := &gatedCatalog{
			MockCatalog: tu.MockCatalog{Results: map[string][]models.SearchResult{
				"slow": {{Show: tu.ShowFixture(1, "Slow", 5, "")}},
				"fast": {{Show: tu.ShowFixture(2, "Fast", 5, "")}},
			}},
			gates: map[string]chan struct{}{"slow": make(chan struct{}), "fast": make(chan struct{})},
		}
		f := NewFinder(catalog, FinderOpts{Logger: shared.NewLogger(&bytes.Buffer{})})

		slow := make(chan Result, 1)
		go func() { slow <- f.Search(context.Background(), "slow", nil) }()
		for f.generation(SearchLane) < 1 {
			time.Sleep(time.Millisecond)
		}

		fast := make(chan Result, 1)
		go func() { fast <- f.Search(context.Background(), "fast", nil) }()
		for f.generation(SearchLane) < 2 {
			time.Sleep(time.Millisecond)
		}

		close(catalog.gates["fast"])
		if res := <-fast; res.Stale() || res.Shows[0].Name != "Fast" {
			t.Fatalf("expected fast result applied, got %+v", res)
		}

		close(catalog.gates["slow"])
		if res := <-slow; !res.Stale() {
			t.Errorf("expected slow result to be stale, got %+v", res)
		}
	})

	t.Run("lanes are independent", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			Results: map[string][]models.SearchResult{"x": {{Show: tu.ShowFixture(1, "X", 5, "")}}},
			Shows:   map[int]models.Show{1: tu.ShowFixture(1, "X", 5, "")},
		}
		f := newTestFinder(catalog)

		search := f.Search(context.Background(), "x", nil)
		details := f.Details(context.Background(), 1, nil)

		if !f.Current(SearchLane, search.Generation) || !f.Current(DetailsLane, details.Generation) {
			t.Error("expected both lanes current")
		}
	})

	t.Run("empty query does not supersede", func(t *testing.T) {
		catalog := &tu.MockCatalog{Results: map[string][]models.SearchResult{"x": {{Show: tu.ShowFixture(1, "X", 5, "")}}}}
		f := newTestFinder(catalog)

		res := f.Search(context.Background(), "x", nil)
		f.Search(context.Background(), "", nil)
		if !f.Current(SearchLane, res.Generation) {
			t.Error("empty query should leave the last search current")
		}
	})

	t.Run("cancel invalidates the lane", func(t *testing.T) {
		catalog := &tu.MockCatalog{Block: make(chan struct{})}
		f := newTestFinder(catalog)

		done := make(chan Result, 1)
		go func() { done <- f.Details(context.Background(), 1, nil) }()
		waitForCalls(t, catalog, 1)

		f.Cancel(DetailsLane)
		if res := <-done; !res.Stale() {
			t.Errorf("expected stale after cancel, got %+v", res)
		}
	})
}

func TestFinderTrending(t *testing.T) {
	page := []models.Show{
		poster(tu.ShowFixture(1, "Low", 6.0, "2000-01-01", "Drama")),
		tu.ShowFixture(2, "No Poster", 9.9, "2001-01-01"),
		poster(tu.ShowFixture(3, "High", 8.8, "2002-01-01", "Comedy")),
		poster(tu.ShowFixture(4, "Unrated", -1, "")),
	}

	t.Run("keeps posters ranked by rating", func(t *testing.T) {
		catalog := &tu.MockCatalog{Pages: map[int][]models.Show{1: page}}
		res := newTestFinder(catalog).Trending(context.Background(), nil)

		if res.Status != StatusOK || res.Query != view.TrendingQuery {
			t.Fatalf("unexpected outcome %+v", res)
		}
		got := []int{}
		for _, s := range res.Shows {
			got = append(got, s.ID)
		}
		if fmt.Sprint(got) != "[3 1 4]" {
			t.Errorf("expected [3 1 4], got %v", got)
		}
	})

	t.Run("caps at the configured limit", func(t *testing.T) {
		catalog := &tu.MockCatalog{Pages: map[int][]models.Show{1: page}}
		f := NewFinder(catalog, FinderOpts{TrendingPage: 1, TrendingLimit: 1, Logger: shared.NewLogger(&bytes.Buffer{})})

		if res := f.Trending(context.Background(), nil); len(res.Shows) != 1 || res.Shows[0].ID != 3 {
			t.Errorf("expected only the top show, got %+v", res.Shows)
		}
	})

	t.Run("failure message", func(t *testing.T) {
		res := newTestFinder(&tu.MockCatalog{Err: shared.ErrAPIRequest}).Trending(context.Background(), nil)
		if res.Status != StatusFailed || res.Message != MsgTrendingFailed {
			t.Errorf("unexpected outcome %v %q", res.Status, res.Message)
		}
	})

	t.Run("page without posters is empty", func(t *testing.T) {
		catalog := &tu.MockCatalog{Pages: map[int][]models.Show{1: {tu.ShowFixture(1, "Bare", 5, "")}}}
		if res := newTestFinder(catalog).Trending(context.Background(), nil); res.Status != StatusEmpty {
			t.Errorf("expected empty, got %v", res.Status)
		}
	})

	t.Run("progress phases", func(t *testing.T) {
		progress := make(chan ProgressUpdate, 4)
		catalog := &tu.MockCatalog{Pages: map[int][]models.Show{1: page}}
		newTestFinder(catalog).Trending(context.Background(), progress)
		close(progress)

		var phases []Phase
		for u := range progress {
			phases = append(phases, u.Phase)
		}
		if len(phases) != 2 || phases[0] != FetchResults || phases[1] != RankResults {
			t.Errorf("unexpected phases %v", phases)
		}
	})
}

func TestFinderDetails(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		catalog := &tu.MockCatalog{Shows: map[int]models.Show{82: tu.ShowFixture(82, "Game of Thrones", 8.9, "2011-04-17")}}
		res := newTestFinder(catalog).Details(context.Background(), 82, nil)

		if res.Status != StatusOK || res.Show == nil || res.Show.Name != "Game of Thrones" {
			t.Errorf("unexpected outcome %+v", res)
		}
	})

	t.Run("failure message", func(t *testing.T) {
		res := newTestFinder(&tu.MockCatalog{}).Details(context.Background(), 5, nil)
		if res.Status != StatusFailed || res.Message != MsgDetailsFailed {
			t.Errorf("unexpected outcome %v %q", res.Status, res.Message)
		}
		if !errors.Is(res.Err, shared.ErrShowNotFound) {
			t.Errorf("expected ErrShowNotFound, got %v", res.Err)
		}
	})
}

func TestRefreshFavorites(t *testing.T) {
	favs := []models.Favorite{
		{ID: 1, Name: "Old One"},
		{ID: 2, Name: "Old Two"},
		{ID: 3, Name: "Gone"},
	}
	catalog := &tu.MockCatalog{Shows: map[int]models.Show{
		1: tu.ShowFixture(1, "New One", 7, "2010-01-01"),
		2: tu.ShowFixture(2, "New Two", 8, "2011-01-01"),
	}}

	t.Run("refreshes in input order", func(t *testing.T) {
		progress := make(chan ProgressUpdate, 10)
		res, err := newTestFinder(catalog).RefreshFavorites(context.Background(), favs, RefreshOpts{RateLimit: 1000}, progress)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Refreshed != 2 || res.Failed != 1 {
			t.Errorf("expected 2 refreshed 1 failed, got %d %d", res.Refreshed, res.Failed)
		}

		updated := res.Favorites()
		if len(updated) != 3 {
			t.Fatalf("expected 3 favorites, got %d", len(updated))
		}
		if updated[0].Name != "New One" || updated[1].Name != "New Two" || updated[2].Name != "Gone" {
			t.Errorf("unexpected names %+v", updated)
		}
		if updated[1].RatingValue() != 8 {
			t.Errorf("expected refreshed rating, got %v", updated[1].RatingValue())
		}
		if !errors.Is(res.Items[2].Error, shared.ErrShowNotFound) {
			t.Errorf("expected ErrShowNotFound for missing show, got %v", res.Items[2].Error)
		}

		close(progress)
		count := 0
		for range progress {
			count++
		}
		if count != 4 {
			t.Errorf("expected 4 progress updates, got %d", count)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		res, err := newTestFinder(catalog).RefreshFavorites(context.Background(), nil, RefreshOpts{}, nil)
		if err != nil || len(res.Items) != 0 {
			t.Errorf("expected empty result, got %+v %v", res, err)
		}
	})

	t.Run("canceled context keeps stored projections", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := newTestFinder(catalog).RefreshFavorites(ctx, favs, RefreshOpts{}, nil)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		updated := res.Favorites()
		if len(updated) != 3 || updated[0].Name != "Old One" {
			t.Errorf("expected stored projections, got %+v", updated)
		}
	})
}
