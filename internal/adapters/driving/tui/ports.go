// Package tui provides an interactive terminal user interface for fynda.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/fynda-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Live runs the search-as-you-type pipeline.
	Live driving.LiveSearchService

	// Document provides read access to indexed documents.
	Document driving.DocumentService

	// Index reports indexing status.
	Index driving.IndexService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(live driving.LiveSearchService) *Ports {
	return &Ports{
		Live: live,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Live == nil {
		return ErrMissingLiveSearchService
	}
	return nil
}
