package domain

import "time"

// Default live search pipeline settings.
const (
	// DefaultDebounceWindow is the quiescence window for keystroke bursts.
	DefaultDebounceWindow = 400 * time.Millisecond

	// DefaultSearchLimit is the default result batch size.
	DefaultSearchLimit = 20

	// DefaultMinQueryLength is the minimum query length that triggers a lookup.
	DefaultMinQueryLength = 1
)

// PipelineConfig configures the live search pipeline.
type PipelineConfig struct {
	// DebounceWindow suppresses values followed by another within this window.
	DebounceWindow time.Duration

	// Limit is the maximum number of results per lookup.
	Limit int

	// MinQueryLength is the minimum query length that triggers a lookup.
	// Shorter queries clear results without dispatching.
	MinQueryLength int
}

// DefaultPipelineConfig returns the default pipeline configuration.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		DebounceWindow: DefaultDebounceWindow,
		Limit:          DefaultSearchLimit,
		MinQueryLength: DefaultMinQueryLength,
	}
}

// Normalise fills zero values with defaults.
func (c PipelineConfig) Normalise() PipelineConfig {
	if c.DebounceWindow <= 0 {
		c.DebounceWindow = DefaultDebounceWindow
	}
	if c.Limit <= 0 {
		c.Limit = DefaultSearchLimit
	}
	if c.MinQueryLength <= 0 {
		c.MinQueryLength = DefaultMinQueryLength
	}
	return c
}
