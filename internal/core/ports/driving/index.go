package driving

import "context"

// IndexService ingests documents from a connector into the store and index.
type IndexService interface {
	// FullIndex ingests every document the connector produces.
	// Returns a summary of the run.
	FullIndex(ctx context.Context) (*IndexStats, error)

	// Watch applies connector change events until ctx is cancelled.
	Watch(ctx context.Context) error

	// Status reports whether an indexing run is in progress.
	Status() IndexStatus
}

// IndexStats summarises an indexing run.
type IndexStats struct {
	// Indexed is the number of documents stored and indexed.
	Indexed int

	// Deleted is the number of documents removed.
	Deleted int

	// Failed is the number of documents that could not be ingested.
	Failed int
}

// IndexStatus reports the indexer's current state.
type IndexStatus struct {
	// Running indicates an indexing run is in progress.
	Running bool

	// LastStats holds the most recent completed run's summary.
	LastStats *IndexStats

	// LastErr holds the most recent run's failure, if any.
	LastErr error
}
