// TVmaze [Catalog] implementation
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/shared"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	defaultTVMazeBaseURL = "https://api.tvmaze.com"
	defaultUserAgent     = "showfinder"
	defaultTimeout       = 15 * time.Second
	maxErrorBodyBytes    = 512
)

// TVMazeOpts contains configuration options for creating a [TVMazeService].
type TVMazeOpts struct {
	BaseURL           string
	UserAgent         string
	HTTPClient        *http.Client
	Timeout           time.Duration
	RequestsPerSecond float64 // zero disables pacing
	Burst             int
	CacheSize         int // zero disables the detail cache
	CacheTTL          time.Duration
	Logger            *log.Logger
}

// TVMazeService implements the [Catalog] interface for the TVmaze API.
type TVMazeService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *expirable.LRU[int, models.Show]
	logger     *log.Logger
}

// NewTVMazeService creates a new TVmaze catalog client.
func NewTVMazeService(opts TVMazeOpts) *TVMazeService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultTVMazeBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.HTTPClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		opts.HTTPClient = &http.Client{Timeout: timeout}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), max(opts.Burst, 1))
	}

	var cache *expirable.LRU[int, models.Show]
	if opts.CacheSize > 0 {
		cache = expirable.NewLRU[int, models.Show](opts.CacheSize, nil, opts.CacheTTL)
	}

	return &TVMazeService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		userAgent:  opts.UserAgent,
		httpClient: opts.HTTPClient,
		limiter:    limiter,
		cache:      cache,
		logger:     opts.Logger,
	}
}

// NewTVMazeServiceFromConfig builds a [TVMazeService] from the [shared.CatalogConfig] section.
func NewTVMazeServiceFromConfig(cfg shared.CatalogConfig, logger *log.Logger) *TVMazeService {
	return NewTVMazeService(TVMazeOpts{
		BaseURL:           cfg.BaseURL,
		UserAgent:         cfg.UserAgent,
		Timeout:           cfg.Timeout(),
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		CacheSize:         cfg.CacheSize,
		CacheTTL:          cfg.CacheTTL(),
		Logger:            logger,
	})
}

// Name returns the service name.
func (t *TVMazeService) Name() string {
	return "TVmaze"
}

// SearchShows searches shows by title.
//
// Calls GET /search/shows?q={query}.
func (t *TVMazeService) SearchShows(ctx context.Context, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query cannot be empty", shared.ErrMissingArgument)
	}

	var results []models.SearchResult
	endpoint := "/search/shows?q=" + url.QueryEscape(query)
	if err := t.doRequest(ctx, endpoint, &results); err != nil {
		return nil, err
	}

	t.logger.Debug("search complete", "query", query, "results", len(results))
	return results, nil
}

// GetShow retrieves a single show by ID.
//
// Calls GET /shows/{id}. Results are cached when a cache size is configured.
func (t *TVMazeService) GetShow(ctx context.Context, id int) (*models.Show, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: show id must be positive, got %d", shared.ErrInvalidArgument, id)
	}

	if t.cache != nil {
		if show, ok := t.cache.Get(id); ok {
			t.logger.Debug("show served from cache", "id", id)
			return &show, nil
		}
	}

	var show models.Show
	err := t.doRequest(ctx, "/shows/"+strconv.Itoa(id), &show)

	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %d", shared.ErrShowNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if t.cache != nil {
		t.cache.Add(id, show)
	}
	return &show, nil
}

// GetShowsPage retrieves one page of the show index.
//
// Calls GET /shows?page={page}.
func (t *TVMazeService) GetShowsPage(ctx context.Context, page int) ([]models.Show, error) {
	if page < 0 {
		return nil, fmt.Errorf("%w: page must not be negative, got %d", shared.ErrInvalidArgument, page)
	}

	var shows []models.Show
	if err := t.doRequest(ctx, "/shows?page="+strconv.Itoa(page), &shows); err != nil {
		return nil, err
	}
	return shows, nil
}

// StatusError carries the status code of a non-2xx catalog response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("catalog returned status %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("catalog returned status %d", e.Code)
}

// Unwrap lets callers match every status failure against [shared.ErrAPIRequest].
func (e *StatusError) Unwrap() error {
	return shared.ErrAPIRequest
}

func (t *TVMazeService) doRequest(ctx context.Context, endpoint string, result any) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	t.logger.Debug("catalog request", "endpoint", endpoint, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Message string `json:"message"`
		}
		statusErr := &StatusError{Code: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			statusErr.Body = truncate(errResp.Message, maxErrorBodyBytes)
		}
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", shared.ErrAPIRequest, err)
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
