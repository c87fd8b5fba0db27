package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/showfinder/internal/models"
	"golang.org/x/time/rate"
)

// RefreshOpts contains configuration for refreshing favorites.
type RefreshOpts struct {
	NumWorkers int     // Concurrent workers (default: 4, max: 8)
	RateLimit  float64 // Dispatches per second (default: 2)
}

// RefreshItem is the outcome for one favorite.
type RefreshItem struct {
	Favorite models.Favorite // projection as stored before the refresh
	Show     *models.Show    // fresh record; nil on failure
	Error    error
}

// RefreshResult summarizes a favorites refresh.
type RefreshResult struct {
	Items     []RefreshItem // in the order of the input list
	Refreshed int
	Failed    int
}

// Favorites returns the refreshed projections in input order, keeping the stored projection for
// shows that could not be fetched.
func (r *RefreshResult) Favorites() []models.Favorite {
	favs := make([]models.Favorite, 0, len(r.Items))
	for _, item := range r.Items {
		if item.Show != nil {
			favs = append(favs, models.NewFavorite(*item.Show))
			continue
		}
		favs = append(favs, item.Favorite)
	}
	return favs
}

type refreshJob struct {
	index    int
	favorite models.Favorite
}

type refreshOutcome struct {
	index int
	item  RefreshItem
}

// RefreshFavorites re-fetches every favorite so stored ratings, posters and premiere dates
// track the catalog.
//
// Fetches run on a small worker pool paced by a dispatch limiter. Per-show failures are
// recorded in the result; a canceled context stops dispatching and returns the context error
// with whatever completed.
func (f *Finder) RefreshFavorites(ctx context.Context, favs []models.Favorite, opts RefreshOpts, progress chan<- ProgressUpdate) (*RefreshResult, error) {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	result := &RefreshResult{Items: make([]RefreshItem, len(favs))}
	for i, fav := range favs {
		result.Items[i] = RefreshItem{Favorite: fav, Error: context.Canceled}
	}
	if len(favs) == 0 {
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan refreshJob, len(favs))
	results := make(chan refreshOutcome, len(favs))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go f.refreshWorker(ctx, &wg, jobs, results)
	}

	sendProgress(progress, refreshStartedUpdate(len(favs)))

	go func() {
		defer close(jobs)
		for i, fav := range favs {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			jobs <- refreshJob{index: i, favorite: fav}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for out := range results {
		item := out.item
		completed++
		result.Items[out.index] = item

		if item.Error == nil {
			result.Refreshed++
			sendProgress(progress, refreshCompletedUpdate(completed, len(favs), item.Show.Name))
		} else {
			result.Failed++
			sendProgress(progress, refreshFailedUpdate(completed, len(favs), item.Favorite.Name, item.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		result.Failed = len(favs) - result.Refreshed
		return result, fmt.Errorf("refresh interrupted after %d of %d: %w", completed, len(favs), err)
	}
	return result, nil
}

// refreshWorker fetches favorites from the jobs channel until it closes.
func (f *Finder) refreshWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan refreshJob, results chan<- refreshOutcome) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		show, err := f.catalog.GetShow(ctx, job.favorite.ID)
		item := RefreshItem{Favorite: job.favorite, Show: show, Error: err}
		if err != nil {
			item.Show = nil
			f.logger.Warn("refresh failed", "id", job.favorite.ID, "error", err)
		}
		results <- refreshOutcome{index: job.index, item: item}
	}
}
