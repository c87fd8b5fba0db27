// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/shared"
)

// MockCatalog is a test double for [services.Catalog].
//
// Responses are looked up by query, show ID or page. Block, when set, is waited on
// before answering so tests can hold a request in flight.
type MockCatalog struct {
	Results map[string][]models.SearchResult
	Shows   map[int]models.Show
	Pages   map[int][]models.Show
	Err     error
	Block   chan struct{}

	mu    sync.Mutex
	calls []string
}

func (m *MockCatalog) SearchShows(ctx context.Context, query string) ([]models.SearchResult, error) {
	if err := m.enter(ctx, "search:"+query); err != nil {
		return nil, err
	}
	return m.Results[query], nil
}

func (m *MockCatalog) GetShow(ctx context.Context, id int) (*models.Show, error) {
	if err := m.enter(ctx, "show"); err != nil {
		return nil, err
	}
	show, ok := m.Shows[id]
	if !ok {
		return nil, shared.ErrShowNotFound
	}
	return &show, nil
}

func (m *MockCatalog) GetShowsPage(ctx context.Context, page int) ([]models.Show, error) {
	if err := m.enter(ctx, "page"); err != nil {
		return nil, err
	}
	return m.Pages[page], nil
}

func (m *MockCatalog) Name() string { return "mock" }

// Calls returns the recorded call labels in order.
func (m *MockCatalog) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockCatalog) enter(ctx context.Context, label string) error {
	m.mu.Lock()
	m.calls = append(m.calls, label)
	m.mu.Unlock()

	if m.Block != nil {
		select {
		case <-m.Block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return m.Err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// ShowFixture builds a show with an optional rating and premiere date.
func ShowFixture(id int, name string, rating float64, premiered string, genres ...string) models.Show {
	show := models.Show{ID: id, Name: name, Premiered: premiered, Genres: genres}
	if rating >= 0 {
		show.Rating.Average = &rating
	}
	return show
}
