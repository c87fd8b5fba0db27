package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/showfinder/internal/repositories"
	"github.com/desertthunder/showfinder/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		runner.Close()
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}

	if err := runner.Close(); err != nil {
		logger.Warn("failed to close database", "error", err)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "showfinder",
		Usage:   "Search the TVmaze catalog and keep a list of favorite shows",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "Keep favorites and theme in memory for this run only",
			},
		},
		Before:   r.Before,
		Commands: r.register(),
	}
}

// Before loads the config named by --config, when present, and applies the root flags.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	r.configPath = path

	if _, err := os.Stat(path); err == nil {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, err
		}
		if err := r.Configure(config); err != nil {
			return ctx, err
		}
		r.logger.Debug("config loaded", "path", path)
	}

	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	if cmd.Bool("ephemeral") && r.kv == nil {
		r.kv = repositories.NewMemoryKV(nil)
	}
	return ctx, nil
}
