package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/showfinder/internal/repositories"
	"github.com/desertthunder/showfinder/internal/services"
	"github.com/desertthunder/showfinder/internal/shared"
	"github.com/desertthunder/showfinder/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	catalog     services.Catalog
	ownsCatalog bool
	ownsAPI     bool
	api         *services.APIService
	httpClient  *http.Client
	finder      *tasks.Finder
	kv          repositories.KV
	db          *sql.DB
	logger      *log.Logger
	output      io.Writer
	openURL     func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    services.Catalog
	API        *services.APIService
	HTTPClient *http.Client
	KV         repositories.KV // opened from Config.Database on first use when nil
	Logger     *log.Logger
	Output     io.Writer
	OpenURL    func(string) error // defaults to [shared.OpenBrowser]
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		catalog:    opts.Catalog,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		kv:         opts.KV,
		logger:     opts.Logger,
		output:     opts.Output,
		openURL:    opts.OpenURL,
	}
	r.ownsCatalog = opts.Catalog == nil
	r.ownsAPI = opts.API == nil
	r.build()
	return r
}

// build wires the catalog-dependent services from the current config and logger.
func (r *Runner) build() {
	if r.ownsCatalog {
		r.catalog = services.NewTVMazeServiceFromConfig(r.config.Catalog, r.logger)
	}
	if r.ownsAPI {
		r.api = services.NewAPIService(r.config.Catalog.BaseURL, r.httpClient)
	}
	r.finder = tasks.NewFinderFromConfig(r.catalog, r.config.View, r.logger)
}

// Configure replaces the active config, e.g. after the --config flag is read.
func (r *Runner) Configure(config *shared.Config) error {
	if err := shared.ApplyLogLevel(r.logger, config.Log.Level); err != nil {
		return err
	}
	r.config = config
	r.build()
	return nil
}

// SetLogger swaps the logger used by the runner and the services it owns.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.build()
}

// stores returns the favorites and theme accessors, opening the database on first use.
func (r *Runner) stores() (*repositories.FavoritesStore, *repositories.ThemeStore, error) {
	if r.kv == nil {
		db, err := shared.OpenDatabase(r.config.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		r.db = db
		r.kv = repositories.NewPreferenceRepository(db)
	}
	return repositories.NewFavoritesStore(r.kv, r.logger), repositories.NewThemeStore(r.kv), nil
}

// Close releases the database, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db, r.kv = nil, nil
	return err
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		searchCommand, trendingCommand, showCommand, favoritesCommand, configCommand, setupCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// logProgress drains progress updates into the debug log while fn runs.
func (r *Runner) logProgress(fn func(chan<- tasks.ProgressUpdate)) {
	r.streamProgress(fn, func(u tasks.ProgressUpdate) {
		r.logger.Debug(u.Message, "phase", u.Phase, "step", u.Step, "total", u.Total)
	})
}

// streamProgress runs fn with a progress channel and hands every update to handle.
func (r *Runner) streamProgress(fn func(chan<- tasks.ProgressUpdate), handle func(tasks.ProgressUpdate)) {
	progressCh := make(chan tasks.ProgressUpdate, 32)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			handle(update)
		}
	}()

	fn(progressCh)
	close(progressCh)
	<-done
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
