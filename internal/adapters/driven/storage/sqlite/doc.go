// Package sqlite provides SQLite-backed storage for document metadata.
// Uses modernc.org/sqlite (pure Go, no CGO) with WAL mode and embedded
// schema migrations.
package sqlite
