package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/fynda-cli/internal/core/domain"
	"github.com/custodia-labs/fynda-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fynda-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// maxFileSize caps how much of a file is ingested. Larger files are skipped.
const maxFileSize = 2 << 20 // 2 MiB

// textExtensions lists the file extensions treated as indexable text.
var textExtensions = map[string]bool{
	".adoc": true, ".c": true, ".cfg": true, ".conf": true, ".cpp": true,
	".css": true, ".csv": true, ".go": true, ".h": true, ".html": true,
	".ini": true, ".java": true, ".js": true, ".json": true, ".log": true,
	".markdown": true, ".md": true, ".py": true, ".rb": true, ".rs": true,
	".rst": true, ".sh": true, ".sql": true, ".toml": true, ".ts": true,
	".txt": true, ".xml": true, ".yaml": true, ".yml": true,
}

// Connector indexes text files under a local root path.
type Connector struct {
	sourceID string
	rootPath string
}

// New creates a filesystem connector for the given source and root path.
func New(sourceID, rootPath string) *Connector {
	return &Connector{
		sourceID: sourceID,
		rootPath: rootPath,
	}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "filesystem"
}

// SourceID returns the configured source ID.
func (c *Connector) SourceID() string {
	return c.sourceID
}

// Capabilities returns what this connector supports.
func (c *Connector) Capabilities() driven.ConnectorCapabilities {
	return driven.ConnectorCapabilities{
		SupportsWatch:      true,
		SupportsBinary:     false,
		SupportsValidation: true,
	}
}

// Validate checks the root path exists and is a readable directory.
func (c *Connector) Validate(_ context.Context) error {
	info, err := os.Stat(c.rootPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", c.rootPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, c.rootPath)
	}
	return nil
}

// FullSync walks the root path and emits a RawDocument per indexable file.
func (c *Connector) FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument)
	errs := make(chan error, 1)

	go func() {
		defer close(docs)
		defer close(errs)

		walkErr := filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if d.IsDir() || !indexable(path) {
				return nil
			}

			raw, err := c.readDocument(path)
			if err != nil {
				logger.Warn("Skipping %s: %v", path, err)
				return nil
			}
			if raw == nil {
				return nil // Skipped (too large).
			}

			select {
			case docs <- *raw:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})

		if walkErr != nil {
			errs <- walkErr
		}
	}()

	return docs, errs
}

// Watch streams filesystem change events for the root path and all
// subdirectories. The returned channel closes when ctx is cancelled.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	// Watch the root and every existing subdirectory.
	err = filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", c.rootPath, err)
	}

	changes := make(chan domain.RawDocumentChange)

	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				c.handleEvent(ctx, watcher, event, changes)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// handleEvent maps a single fsnotify event to a change, if relevant.
func (c *Connector) handleEvent(
	ctx context.Context, watcher *fsnotify.Watcher,
	event fsnotify.Event, changes chan<- domain.RawDocumentChange,
) {
	switch {
	case event.Op.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			// New directories join the watch set.
			if err := watcher.Add(event.Name); err != nil {
				logger.Warn("Watching new directory %s: %v", event.Name, err)
			}
			return
		}
		c.emitChange(ctx, changes, domain.ChangeCreated, event.Name)

	case event.Op.Has(fsnotify.Write):
		c.emitChange(ctx, changes, domain.ChangeUpdated, event.Name)

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		if !indexable(event.Name) {
			return
		}
		select {
		case changes <- domain.RawDocumentChange{
			Type:     domain.ChangeDeleted,
			Document: domain.RawDocument{SourceID: c.sourceID, URI: event.Name},
		}:
		case <-ctx.Done():
		}
	}
}

// emitChange reads the file and sends a create/update change.
func (c *Connector) emitChange(
	ctx context.Context, changes chan<- domain.RawDocumentChange,
	changeType domain.ChangeType, path string,
) {
	if !indexable(path) {
		return
	}

	raw, err := c.readDocument(path)
	if err != nil || raw == nil {
		return
	}

	select {
	case changes <- domain.RawDocumentChange{Type: changeType, Document: *raw}:
	case <-ctx.Done():
	}
}

// Close releases resources.
func (c *Connector) Close() error {
	return nil
}

// readDocument reads a file into a RawDocument.
// Returns nil without error for files over the size cap.
func (c *Connector) readDocument(path string) (*domain.RawDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxFileSize {
		logger.Debug("Skipping %s: %d bytes exceeds cap", path, info.Size())
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "text/plain"
	}

	return &domain.RawDocument{
		SourceID: c.sourceID,
		URI:      path,
		MIMEType: mimeType,
		Content:  content,
		Metadata: map[string]any{
			"ext":      filepath.Ext(path),
			"size":     info.Size(),
			"modified": info.ModTime().UTC().Format("2006-01-02T15:04:05Z"),
		},
	}, nil
}

// indexable reports whether the path has a recognised text extension.
func indexable(path string) bool {
	return textExtensions[strings.ToLower(filepath.Ext(path))]
}
