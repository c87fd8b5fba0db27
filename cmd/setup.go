package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/showfinder/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the database and runs migrations.
//
// A missing config file is created from the embedded template first.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.ensureConfigFile()

	cfg := r.config.Database
	r.logger.Info("initializing database", "path", cfg.Path)

	db, err := shared.NewDatabase(cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", cfg.Path)
	return r.writePlain("✓ Database ready at %s\n", cfg.Path)
}

// RollbackDatabase undoes the most recent migration.
func (r *Runner) RollbackDatabase(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Database
	db, err := shared.NewDatabase(cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	r.logger.Info("rolling back latest migration", "path", cfg.Path)
	if err := shared.RollbackMigration(db); err != nil {
		return err
	}
	return r.writePlain("✓ Rolled back latest migration\n")
}

// ensureConfigFile writes the default config to the --config path when no file exists there.
//
// The active config already holds those defaults, so nothing is reloaded.
func (r *Runner) ensureConfigFile() {
	if r.configPath == "" {
		return
	}
	if _, err := os.Stat(r.configPath); err == nil {
		return
	}

	r.logger.Info("config file not found, creating from template", "path", r.configPath)
	if err := shared.CreateConfigFile(r.configPath); err != nil {
		r.logger.Warn("failed to create config file, using defaults", "error", err)
		return
	}
	r.logger.Info("config file created", "path", r.configPath)
}
