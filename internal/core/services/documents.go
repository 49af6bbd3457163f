package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/fynda-cli/internal/core/domain"
	"github.com/custodia-labs/fynda-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fynda-cli/internal/core/ports/driving"
)

// Ensure Documents implements the driving port.
var _ driving.DocumentService = (*Documents)(nil)

// Documents provides read access to stored documents.
type Documents struct {
	store driven.DocumentStore
}

// NewDocuments creates a document service backed by the given store.
func NewDocuments(store driven.DocumentStore) *Documents {
	return &Documents{store: store}
}

// List returns documents for a source. An empty sourceID lists all.
func (d *Documents) List(ctx context.Context, sourceID string) ([]domain.Document, error) {
	return d.store.ListDocuments(ctx, sourceID)
}

// Get retrieves a document by ID.
func (d *Documents) Get(ctx context.Context, id string) (*domain.Document, error) {
	return d.store.GetDocument(ctx, id)
}

// GetContent retrieves the full text content of a document.
func (d *Documents) GetContent(ctx context.Context, id string) (string, error) {
	doc, err := d.store.GetDocument(ctx, id)
	if err != nil {
		return "", fmt.Errorf("getting document %s: %w", id, err)
	}
	return doc.Content, nil
}
