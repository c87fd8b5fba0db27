package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/showfinder/internal/formatter"
	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/shared"
	"github.com/desertthunder/showfinder/internal/tasks"
	"github.com/desertthunder/showfinder/internal/view"
	"github.com/urfave/cli/v3"
)

// Search fetches shows matching the query and prints the filtered, sorted page.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: %s", shared.ErrMissingArgument, tasks.MsgEmptyQuery)
	}

	r.logger.Info("searching catalog", "query", query, "catalog", r.catalog.Name())

	var res tasks.Result
	r.logProgress(func(progress chan<- tasks.ProgressUpdate) {
		res = r.finder.Search(ctx, query, progress)
	})
	return r.renderResults(cmd, res)
}

// Trending prints the trending picks.
func (r *Runner) Trending(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("loading trending", "catalog", r.catalog.Name())

	var res tasks.Result
	r.logProgress(func(progress chan<- tasks.ProgressUpdate) {
		res = r.finder.Trending(ctx, progress)
	})
	return r.renderResults(cmd, res)
}

// ShowDetails prints the detail block for one show.
func (r *Runner) ShowDetails(ctx context.Context, cmd *cli.Command) error {
	id, err := parseShowID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	var res tasks.Result
	r.logProgress(func(progress chan<- tasks.ProgressUpdate) {
		res = r.finder.Details(ctx, id, progress)
	})
	if res.Stale() {
		return res.Err
	}
	if res.Status == tasks.StatusFailed {
		return fmt.Errorf("%s: %w", res.Message, res.Err)
	}
	show := *res.Show

	if cmd.Bool("json") {
		if err := r.writeJSON(show, cmd.Bool("pretty")); err != nil {
			return err
		}
	} else {
		r.writePlain("%s", formatter.Details(show))
		if favorites, _, err := r.stores(); err != nil {
			r.logger.Warn("favorites unavailable", "error", err)
		} else if favorites.Contains(show.ID) {
			r.writePlain("\n★ Saved in favorites\n")
		}
	}

	if cmd.Bool("open") {
		if show.OfficialSite == "" {
			return fmt.Errorf("%w: %s has no official site", shared.ErrInvalidArgument, show.Name)
		}
		r.logger.Info("opening official site", "url", show.OfficialSite)
		if err := r.openURL(show.OfficialSite); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
	}
	return nil
}

// renderResults applies the filter flags to a fetched result and prints the revealed page.
func (r *Runner) renderResults(cmd *cli.Command, res tasks.Result) error {
	if res.Stale() {
		return res.Err
	}

	switch res.Status {
	case tasks.StatusFailed:
		return fmt.Errorf("%s: %w", res.Message, res.Err)
	case tasks.StatusEmpty:
		if cmd.Bool("json") {
			return r.writeJSON([]models.Show{}, false)
		}
		return r.writePlain("%s\n", res.Message)
	}

	v := view.NewView(r.config.View.PageSize)
	if res.Query == view.TrendingQuery {
		v.LoadTrending(res.Shows)
	} else {
		v.Load(res.Query, res.Shows)
	}

	filter, err := filterFromFlags(cmd, v.Filter)
	if err != nil {
		return err
	}
	// Applied after Load so a genre the results do not offer yields an empty list.
	v.SetFilter(filter)

	switch {
	case cmd.Bool("all"):
		v.Visible = len(v.Results)
	case cmd.Int("limit") > 0:
		v.Visible = int(cmd.Int("limit"))
	}

	if cmd.Bool("json") {
		page := v.Page()
		if page == nil {
			page = []models.Show{}
		}
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	if len(v.Results) == 0 {
		return r.writePlain("%s\nNo shows match the current filters.\n", v.Status())
	}

	var favIDs map[int]bool
	if favorites, _, err := r.stores(); err != nil {
		r.logger.Warn("favorites unavailable", "error", err)
	} else {
		favIDs = favorites.IDs()
	}

	r.writePlain("%s\n", v.Status())
	r.writePlain("%s\n", formatter.ResultsTable(v.Page(), favIDs))
	if v.HasMore() {
		r.writePlain("%d more. Use --limit or --all to reveal them.\n", len(v.Results)-len(v.Page()))
	}
	return nil
}

// filterFromFlags overlays the filter flags that were set on base.
func filterFromFlags(cmd *cli.Command, base view.Filter) (view.Filter, error) {
	f := base
	if cmd.IsSet("genre") {
		f.Genre = strings.TrimSpace(cmd.String("genre"))
	}
	if cmd.IsSet("sort") {
		key, err := view.ParseSortKey(cmd.String("sort"))
		if err != nil {
			return f, err
		}
		f.Sort = key
	}
	if cmd.IsSet("min-rating") {
		rating := cmd.Float("min-rating")
		if rating < 0 || rating > 10 {
			return f, fmt.Errorf("%w: --min-rating must be between 0 and 10", shared.ErrInvalidFlag)
		}
		f.MinRating = rating
	}
	return f, nil
}

func parseShowID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: show ID", shared.ErrMissingArgument)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: show ID must be a positive integer, got %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}
