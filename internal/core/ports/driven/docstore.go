package driven

import (
	"context"

	"github.com/custodia-labs/fynda-cli/internal/core/domain"
)

// DocumentStore persists documents and their metadata.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetDocumentByURI retrieves a document by its original location.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocumentByURI(ctx context.Context, uri string) (*domain.Document, error)

	// DeleteDocument removes a document.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns documents for a source.
	// An empty sourceID lists all documents.
	ListDocuments(ctx context.Context, sourceID string) ([]domain.Document, error)
}
