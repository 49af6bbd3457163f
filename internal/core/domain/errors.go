package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSearchUnavailable indicates the search engine is not configured.
	// Full-text/keyword search is disabled.
	ErrSearchUnavailable = errors.New("search engine unavailable")

	// ErrStoreUnavailable indicates the document store is not configured.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrUnsupportedType indicates an unrecognised kind, such as an
	// unknown change event type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrIndexInProgress indicates an indexing run is already running.
	ErrIndexInProgress = errors.New("indexing in progress")

	// ErrWatchUnsupported indicates the connector cannot push change events.
	ErrWatchUnsupported = errors.New("watch not supported")
)
