// Package filesystem provides a connector that indexes text files under a
// local root path. Watch mode streams change events via fsnotify so edits
// show up in search without a full re-index.
package filesystem
