// Package file provides a TOML file-backed configuration store.
// Settings live in ~/.fynda/config.toml with dot-notation keys, e.g.
// pipeline.debounce_ms or search.limit.
package file
