package services

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/custodia-labs/fynda-cli/internal/core/domain"
	"github.com/custodia-labs/fynda-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fynda-cli/internal/core/stream"
	"github.com/custodia-labs/fynda-cli/internal/logger"
)

// Ensure LiveSearch implements the interface.
var _ driving.LiveSearchService = (*LiveSearch)(nil)

// LiveSearch runs the debounced, latest-wins search pipeline.
//
// Raw queries flow through five stages: debounce collapses keystroke bursts,
// distinct drops a query equal to its predecessor, a tap raises the loading
// flag, switchmap dispatches the lookup (cancelling any lookup still in
// flight), and a final tap clears the flag once a result batch is delivered.
type LiveSearch struct {
	search  driving.SearchService
	config  domain.PipelineConfig
	loading atomic.Bool
}

// NewLiveSearch creates a live search service over a one-shot search service.
func NewLiveSearch(search driving.SearchService, config domain.PipelineConfig) *LiveSearch {
	return &LiveSearch{
		search: search,
		config: config.Normalise(),
	}
}

// Run starts the pipeline over the given query stream.
// The returned channel closes when queries closes or ctx is cancelled.
func (l *LiveSearch) Run(ctx context.Context, queries <-chan string) <-chan domain.SearchEvent {
	logger.Section("Live Search")
	logger.Debug("Debounce window: %v, limit: %d, min length: %d",
		l.config.DebounceWindow, l.config.Limit, l.config.MinQueryLength)

	debounced := stream.Debounce(ctx, queries, l.config.DebounceWindow)
	distinct := stream.DistinctUntilChanged(ctx, debounced)

	dispatched := stream.Tap(ctx, distinct, func(q string) {
		l.loading.Store(true)
		logger.Debug("Dispatching lookup: %q", q)
	})

	outcomes := stream.SwitchMap(ctx, dispatched, l.lookup)

	events := make(chan domain.SearchEvent)
	go func() {
		defer close(events)
		for o := range outcomes {
			l.loading.Store(false)
			ev := domain.SearchEvent{Query: o.In, Results: o.Value, Err: o.Err}
			if o.Err != nil {
				logger.Warn("Lookup failed: %v", o.Err)
				ev.Results = nil
			} else {
				logger.Debug("Delivered %d results for %q", len(o.Value), o.In)
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events
}

// Loading reports whether a lookup is currently in flight.
func (l *LiveSearch) Loading() bool {
	return l.loading.Load()
}

// lookup runs a single search. Queries shorter than the configured minimum
// clear results without hitting the engine.
func (l *LiveSearch) lookup(ctx context.Context, query string) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < l.config.MinQueryLength {
		return []domain.SearchResult{}, nil
	}

	return l.search.Search(ctx, query, domain.SearchOptions{Limit: l.config.Limit})
}
