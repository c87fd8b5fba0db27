// package services defines interface Catalog for reading a remote show catalog over HTTP
//
// TVmaze
package services

import (
	"context"

	"github.com/desertthunder/showfinder/internal/models"
)

// Catalog defines the read-only operations of a remote show catalog.
type Catalog interface {
	// SearchShows searches the catalog by title and returns wrapped results in relevance order.
	SearchShows(ctx context.Context, query string) ([]models.SearchResult, error)

	// GetShow retrieves one detailed show record by identifier.
	GetShow(ctx context.Context, id int) (*models.Show, error)

	// GetShowsPage retrieves one page of the full catalog index.
	GetShowsPage(ctx context.Context, page int) ([]models.Show, error)

	// Name returns the name of the catalog (e.g., "TVmaze")
	Name() string
}
