package domain

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// Offset is the number of results to skip.
	Offset int

	// SourceIDs filters to specific sources.
	SourceIDs []string
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Document is the matched document.
	Document Document

	// Score is the relevance score.
	Score float64

	// Highlights contains snippets with matched terms.
	Highlights []string
}

// SearchEvent is one emission from the live search pipeline.
// Exactly one event is produced per completed (non-abandoned) lookup.
type SearchEvent struct {
	// Query is the query the lookup ran with.
	Query string

	// Results are the lookup's result batch.
	Results []SearchResult

	// Err is the lookup failure, if any. Results is nil when set.
	Err error
}
