package driving

import (
	"context"

	"github.com/custodia-labs/fynda-cli/internal/core/domain"
)

// SearchService provides one-shot search to external actors.
type SearchService interface {
	// Search performs keyword search across all indexed documents.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
