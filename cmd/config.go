package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/showfinder/internal/repositories"
	"github.com/desertthunder/showfinder/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the default config file to the --config path.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := r.configPath
	if path == "" {
		path = "config.toml"
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlain("✓ Config written to %s\n", path)
}

// ConfigTheme prints the saved theme, or saves the one given as argument.
func (r *Runner) ConfigTheme(ctx context.Context, cmd *cli.Command) error {
	_, themes, err := r.stores()
	if err != nil {
		return err
	}

	raw := cmd.StringArg("theme")
	if raw == "" {
		return r.writePlain("%s\n", themes.Get())
	}

	theme, err := repositories.ParseTheme(raw)
	if err != nil {
		return err
	}
	if err := themes.Set(theme); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}

	r.logger.Info("theme saved", "theme", theme)
	return r.writePlain("✓ Theme set to %s\n", theme)
}
