package tui

import "errors"

// ErrMissingLiveSearchService is returned when the live search service is not provided.
var ErrMissingLiveSearchService = errors.New("tui: live search service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
