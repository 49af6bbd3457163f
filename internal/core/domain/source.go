package domain

import "time"

// Source represents a configured document source.
// fynda currently ships a single connector type (filesystem), but sources
// remain first-class so results can be filtered per source.
type Source struct {
	// ID is the unique identifier for the source.
	ID string

	// Type is the connector type identifier (e.g. "filesystem").
	Type string

	// Name is the human-readable name.
	Name string

	// Config contains connector-specific settings (e.g. root path).
	Config map[string]any

	// CreatedAt is when the source was registered.
	CreatedAt time.Time
}

// RootPath returns the configured root path for filesystem sources.
// Returns an empty string if not configured.
func (s Source) RootPath() string {
	v, ok := s.Config["path"]
	if !ok {
		return ""
	}
	path, _ := v.(string)
	return path
}
