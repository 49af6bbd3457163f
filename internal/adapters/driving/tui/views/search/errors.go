package search

import "errors"

// ErrNoLiveSearchService is returned when no live search service is wired in.
var ErrNoLiveSearchService = errors.New("search view: live search service not configured")
