package driven

import (
	"context"

	"github.com/custodia-labs/fynda-cli/internal/core/domain"
)

// SearchEngine provides full-text search operations.
// Backed by Bleve for keyword search.
type SearchEngine interface {
	// Index adds or updates a document in the search index.
	Index(ctx context.Context, doc domain.Document) error

	// Delete removes a document from the search index.
	Delete(ctx context.Context, documentID string) error

	// Search performs a keyword search and returns matching document IDs with scores.
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)

	// Close releases resources.
	Close() error
}

// SearchHit represents a search result from the engine.
type SearchHit struct {
	// DocumentID is the matched document.
	DocumentID string

	// Score is the relevance score (e.g., TF-IDF).
	Score float64
}
