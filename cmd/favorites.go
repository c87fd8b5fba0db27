package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/showfinder/internal/formatter"
	"github.com/desertthunder/showfinder/internal/tasks"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints the saved favorites.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	favorites, _, err := r.stores()
	if err != nil {
		return err
	}

	favs := favorites.List()
	if cmd.Bool("json") {
		return r.writeJSON(favs, true)
	}

	r.writePlain("%s\n", formatter.FavoritesStatus(len(favs)))
	if len(favs) > 0 {
		r.writePlain("%s\n", formatter.FavoritesTable(favs))
	}
	return nil
}

// FavoritesToggle fetches a show and adds it to favorites, or removes it when already saved.
func (r *Runner) FavoritesToggle(ctx context.Context, cmd *cli.Command) error {
	id, err := parseShowID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	favorites, _, err := r.stores()
	if err != nil {
		return err
	}

	// Removing needs no network call.
	if favorites.Contains(id) {
		if _, err := favorites.Remove(id); err != nil {
			return err
		}
		r.logger.Info("favorite removed", "id", id)
		return r.writePlain("Removed from favorites ❌ (%d)\n", id)
	}

	res := r.finder.Details(ctx, id, nil)
	if res.Stale() {
		return res.Err
	}
	if res.Status == tasks.StatusFailed {
		return fmt.Errorf("%s: %w", res.Message, res.Err)
	}

	added, err := favorites.Toggle(*res.Show)
	if err != nil {
		return err
	}
	r.logger.Info("favorite toggled", "id", id, "added", added)
	if added {
		return r.writePlain("Added to favorites ⭐ %s\n", res.Show.Name)
	}
	return r.writePlain("Removed from favorites ❌ %s\n", res.Show.Name)
}

// FavoritesRemove deletes a favorite by ID.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := parseShowID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	favorites, _, err := r.stores()
	if err != nil {
		return err
	}

	removed, err := favorites.Remove(id)
	if err != nil {
		return err
	}
	if !removed {
		return r.writePlain("Show %d is not in favorites\n", id)
	}
	r.logger.Info("favorite removed", "id", id)
	return r.writePlain("Removed from favorites ❌ (%d)\n", id)
}

// FavoritesExport writes the favorites list as CSV, Markdown, text or JSON.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")

	favorites, _, err := r.stores()
	if err != nil {
		return err
	}
	favs := favorites.List()

	if output == "-" {
		data, err := formatter.ExportFavorites(favs, format)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	path, err := formatter.WriteFavoritesExport(favs, format, output)
	if err != nil {
		return err
	}

	r.logger.Info("favorites exported", "path", path, "format", format, "count", len(favs))
	return r.writePlain("✓ Exported %d favorites to %s\n", len(favs), path)
}

// FavoritesRefresh re-fetches every favorite and saves the updated projections.
func (r *Runner) FavoritesRefresh(ctx context.Context, cmd *cli.Command) error {
	favorites, _, err := r.stores()
	if err != nil {
		return err
	}

	favs := favorites.List()
	if len(favs) == 0 {
		return r.writePlain("%s\n", formatter.FavoritesStatus(0))
	}

	opts := tasks.RefreshOpts{
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	}

	var result *tasks.RefreshResult
	var refreshErr error
	r.streamProgress(func(progress chan<- tasks.ProgressUpdate) {
		result, refreshErr = r.finder.RefreshFavorites(ctx, favs, opts, progress)
	}, func(u tasks.ProgressUpdate) {
		if err, ok := u.Data.(error); ok {
			r.logger.Warn(u.Message, "error", err)
			return
		}
		r.logger.Debug(u.Message, "step", u.Step, "total", u.Total)
	})
	if refreshErr != nil {
		return refreshErr
	}

	if err := favorites.Save(result.Favorites()); err != nil {
		return err
	}

	for _, item := range result.Items {
		if item.Error != nil && !errors.Is(item.Error, context.Canceled) {
			r.writePlain("✗ %s (%d): %v\n", item.Favorite.Name, item.Favorite.ID, item.Error)
		}
	}
	return r.writePlain("✓ Refreshed %d of %d favorites (%d failed)\n", result.Refreshed, len(favs), result.Failed)
}
