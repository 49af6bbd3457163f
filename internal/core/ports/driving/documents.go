package driving

import (
	"context"

	"github.com/custodia-labs/fynda-cli/internal/core/domain"
)

// DocumentService exposes read access to stored documents.
type DocumentService interface {
	// List returns documents for a source. An empty sourceID lists all.
	List(ctx context.Context, sourceID string) ([]domain.Document, error)

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if the document does not exist.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// GetContent retrieves the full text content of a document.
	GetContent(ctx context.Context, id string) (string, error)
}
