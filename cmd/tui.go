package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/showfinder/internal/shared"
	"github.com/desertthunder/showfinder/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultTUILog = "./tmp/showfinder-tui.log"

// TUI launches the interactive show finder.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	logPath := r.config.Log.File
	if logPath == "" {
		logPath = defaultTUILog
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if err := shared.ApplyLogLevel(fileLogger, r.config.Log.Level); err != nil {
		return err
	}
	r.SetLogger(shared.WithLogger(fileLogger, "session", shared.GenerateID()))

	favorites, themes, err := r.stores()
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, r.finder, favorites, ui.Options{
		PageSize: r.config.View.PageSize,
		Theme:    themes.Get(),
		Logger:   r.logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	r.logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
