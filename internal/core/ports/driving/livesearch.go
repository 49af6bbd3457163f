package driving

import (
	"context"

	"github.com/custodia-labs/fynda-cli/internal/core/domain"
)

// LiveSearchService runs the debounced, latest-wins search pipeline.
//
// Run consumes raw query strings (one per keystroke) and emits one
// SearchEvent per completed lookup. A lookup still in flight when a newer
// query survives the debounce window is abandoned. The returned channel
// closes when queries closes or ctx is cancelled; Run may be called again to
// restart the pipeline.
type LiveSearchService interface {
	// Run starts the pipeline over the given query stream.
	Run(ctx context.Context, queries <-chan string) <-chan domain.SearchEvent

	// Loading reports whether a lookup is currently in flight.
	Loading() bool
}
