package bleve

import (
	"context"
	"errors"
	"fmt"

	"github.com/blevesearch/bleve/v2"

	"github.com/custodia-labs/fynda-cli/internal/core/domain"
	"github.com/custodia-labs/fynda-cli/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

// indexedDocument is the shape stored in the Bleve index.
type indexedDocument struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Engine is a Bleve-backed implementation of driven.SearchEngine.
type Engine struct {
	index bleve.Index
}

// NewEngine opens or creates a Bleve index at the given path.
// An empty path creates an in-memory index.
func NewEngine(path string) (*Engine, error) {
	mapping := bleve.NewIndexMapping()

	if path == "" {
		index, err := bleve.NewMemOnly(mapping)
		if err != nil {
			return nil, fmt.Errorf("creating in-memory index: %w", err)
		}
		return &Engine{index: index}, nil
	}

	index, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		index, err = bleve.New(path, mapping)
	}
	if err != nil {
		return nil, fmt.Errorf("opening index at %s: %w", path, err)
	}

	return &Engine{index: index}, nil
}

// Index adds or updates a document in the search index.
func (e *Engine) Index(_ context.Context, doc domain.Document) error {
	if doc.ID == "" {
		return domain.ErrInvalidInput
	}

	err := e.index.Index(doc.ID, indexedDocument{
		Title:   doc.Title,
		Content: doc.Content,
	})
	if err != nil {
		return fmt.Errorf("indexing document %s: %w", doc.ID, err)
	}
	return nil
}

// Delete removes a document from the search index.
func (e *Engine) Delete(_ context.Context, documentID string) error {
	if err := e.index.Delete(documentID); err != nil {
		return fmt.Errorf("deleting document %s: %w", documentID, err)
	}
	return nil
}

// Search performs a keyword search and returns matching document IDs with scores.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]driven.SearchHit, error) {
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, 0, false)

	res, err := e.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	hits := make([]driven.SearchHit, len(res.Hits))
	for i, hit := range res.Hits {
		hits[i] = driven.SearchHit{
			DocumentID: hit.ID,
			Score:      hit.Score,
		}
	}

	return hits, nil
}

// Close releases index resources.
func (e *Engine) Close() error {
	return e.index.Close()
}
