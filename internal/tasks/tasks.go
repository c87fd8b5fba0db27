package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/services"
	"github.com/desertthunder/showfinder/internal/shared"
	"github.com/desertthunder/showfinder/internal/view"
)

// User-facing outcome messages.
const (
	MsgEmptyQuery     = "Type a show title first (e.g., Batman)."
	MsgSearchFailed   = "Error fetching data. Check your internet connection."
	MsgTrendingFailed = "Failed to load trending. Check your internet."
	MsgDetailsFailed  = "Failed to load details."
	MsgTrendingEmpty  = "No trending shows available right now."
)

// ErrStale marks a response superseded by a newer request on the same lane.
var ErrStale = errors.New("response superseded by a newer request")

// Lane identifies an independent request sequence.
type Lane int

const (
	SearchLane Lane = iota
	DetailsLane
	laneCount
)

func (l Lane) String() string {
	switch l {
	case SearchLane:
		return "search"
	case DetailsLane:
		return "details"
	default:
		return ""
	}
}

// Status classifies the outcome of a request.
type Status int

const (
	StatusOK Status = iota
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return ""
	}
}

// NoResultsMessage is the status line for a search that matched nothing.
func NoResultsMessage(query string) string {
	return fmt.Sprintf("No results found for %q.", query)
}

// Result is the outcome of one Finder request.
type Result struct {
	Lane       Lane
	Generation uint64
	Query      string        // search query, or [view.TrendingQuery]
	Shows      []models.Show // search and trending results
	Show       *models.Show  // details
	Status     Status
	Message    string // set for StatusEmpty and StatusFailed
	Err        error
}

// Stale reports whether the result was superseded and must be discarded.
func (r Result) Stale() bool {
	return errors.Is(r.Err, ErrStale)
}

// FinderOpts configures a [Finder].
type FinderOpts struct {
	TrendingPage  int // show index page sampled for trending
	TrendingLimit int // maximum trending shows kept
	Logger        *log.Logger
}

// Finder runs catalog requests and discards responses that arrive out of order.
type Finder struct {
	catalog       services.Catalog
	trendingPage  int
	trendingLimit int
	logger        *log.Logger

	mu      sync.Mutex
	gens    [laneCount]uint64
	cancels [laneCount]context.CancelFunc
}

// NewFinder creates a [Finder] over catalog.
func NewFinder(catalog services.Catalog, opts FinderOpts) *Finder {
	if opts.TrendingPage < 0 {
		opts.TrendingPage = 1
	}
	if opts.TrendingLimit <= 0 {
		opts.TrendingLimit = 60
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Finder{
		catalog:       catalog,
		trendingPage:  opts.TrendingPage,
		trendingLimit: opts.TrendingLimit,
		logger:        opts.Logger,
	}
}

// NewFinderFromConfig builds a [Finder] using the [shared.ViewConfig] section.
func NewFinderFromConfig(catalog services.Catalog, cfg shared.ViewConfig, logger *log.Logger) *Finder {
	return NewFinder(catalog, FinderOpts{
		TrendingPage:  cfg.TrendingPage,
		TrendingLimit: cfg.TrendingLimit,
		Logger:        logger,
	})
}

// Current reports whether gen is the latest generation issued on lane.
func (f *Finder) Current(lane Lane, gen uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gens[lane] == gen
}

// Cancel aborts the in-flight request of lane, if any, and invalidates its response.
func (f *Finder) Cancel(lane Lane) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gens[lane]++
	if f.cancels[lane] != nil {
		f.cancels[lane]()
		f.cancels[lane] = nil
	}
}

// begin starts a new generation on lane, canceling the previous request.
func (f *Finder) begin(ctx context.Context, lane Lane) (context.Context, context.CancelFunc, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancels[lane] != nil {
		f.cancels[lane]()
	}
	f.gens[lane]++
	ctx, cancel := context.WithCancel(ctx)
	f.cancels[lane] = cancel
	return ctx, cancel, f.gens[lane]
}

func (f *Finder) generation(lane Lane) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gens[lane]
}

// stale marks res as superseded when a newer request started on its lane.
func (f *Finder) stale(res Result) (Result, bool) {
	if f.Current(res.Lane, res.Generation) {
		return res, false
	}
	f.logger.Debug("discarding stale response", "lane", res.Lane, "generation", res.Generation)
	res.Shows, res.Show = nil, nil
	res.Err = ErrStale
	return res, true
}

// Search runs a title search.
//
// An empty query fails validation without a request and without superseding the in-flight one.
func (f *Finder) Search(ctx context.Context, query string, progress chan<- ProgressUpdate) Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{
			Lane:       SearchLane,
			Generation: f.generation(SearchLane),
			Status:     StatusFailed,
			Message:    MsgEmptyQuery,
			Err:        fmt.Errorf("%w: search query", shared.ErrMissingArgument),
		}
	}

	ctx, cancel, gen := f.begin(ctx, SearchLane)
	defer cancel()

	sendProgress(progress, searchingUpdate(query))
	found, err := f.catalog.SearchShows(ctx, query)

	res := Result{Lane: SearchLane, Generation: gen, Query: query}
	if res, isStale := f.stale(res); isStale {
		return res
	}

	switch {
	case err != nil:
		f.logger.Error("search failed", "query", query, "error", err)
		res.Status, res.Message, res.Err = StatusFailed, MsgSearchFailed, err
	case len(found) == 0:
		res.Status, res.Message = StatusEmpty, NoResultsMessage(query)
	default:
		res.Status, res.Shows = StatusOK, models.Shows(found)
	}
	return res
}

// Trending samples one page of the show index, keeps shows with posters and ranks them by
// rating. It runs on the search lane since both fill the results area.
func (f *Finder) Trending(ctx context.Context, progress chan<- ProgressUpdate) Result {
	ctx, cancel, gen := f.begin(ctx, SearchLane)
	defer cancel()

	sendProgress(progress, loadingTrendingUpdate(f.trendingPage))
	page, err := f.catalog.GetShowsPage(ctx, f.trendingPage)

	res := Result{Lane: SearchLane, Generation: gen, Query: view.TrendingQuery}
	if res, isStale := f.stale(res); isStale {
		return res
	}

	if err != nil {
		f.logger.Error("trending failed", "page", f.trendingPage, "error", err)
		res.Status, res.Message, res.Err = StatusFailed, MsgTrendingFailed, err
		return res
	}

	sendProgress(progress, rankingUpdate(len(page)))
	res.Shows = view.TrendingFrom(page, f.trendingLimit)
	if len(res.Shows) == 0 {
		res.Status, res.Message = StatusEmpty, MsgTrendingEmpty
		return res
	}
	res.Status = StatusOK
	return res
}

// Details fetches the full record of one show.
func (f *Finder) Details(ctx context.Context, id int, progress chan<- ProgressUpdate) Result {
	ctx, cancel, gen := f.begin(ctx, DetailsLane)
	defer cancel()

	sendProgress(progress, detailsUpdate(id))
	show, err := f.catalog.GetShow(ctx, id)

	res := Result{Lane: DetailsLane, Generation: gen}
	if res, isStale := f.stale(res); isStale {
		return res
	}

	if err != nil {
		f.logger.Error("details failed", "id", id, "error", err)
		res.Status, res.Message, res.Err = StatusFailed, MsgDetailsFailed, err
		return res
	}
	res.Status, res.Show = StatusOK, show
	return res
}
