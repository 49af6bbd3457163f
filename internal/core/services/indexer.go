package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/fynda-cli/internal/core/domain"
	"github.com/custodia-labs/fynda-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fynda-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fynda-cli/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driving.IndexService = (*Indexer)(nil)

// defaultIngestRate caps ingestion throughput so a large tree or a noisy
// watch does not saturate the store and index.
const defaultIngestRate = 200 // documents per second

// Indexer ingests documents from a connector into the store and search index.
type Indexer struct {
	connector driven.Connector
	docStore  driven.DocumentStore
	engine    driven.SearchEngine
	limiter   *rate.Limiter

	mu        sync.Mutex
	running   bool
	lastStats *driving.IndexStats
	lastErr   error
}

// NewIndexer creates an indexer for the given connector.
func NewIndexer(connector driven.Connector, docStore driven.DocumentStore, engine driven.SearchEngine) *Indexer {
	return &Indexer{
		connector: connector,
		docStore:  docStore,
		engine:    engine,
		limiter:   rate.NewLimiter(rate.Limit(defaultIngestRate), defaultIngestRate),
	}
}

// FullIndex ingests every document the connector produces.
func (ix *Indexer) FullIndex(ctx context.Context) (*driving.IndexStats, error) {
	if err := ix.begin(); err != nil {
		return nil, err
	}

	stats := &driving.IndexStats{}
	err := ix.fullIndex(ctx, stats)
	ix.finish(stats, err)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (ix *Indexer) fullIndex(ctx context.Context, stats *driving.IndexStats) error {
	logger.Section("Full Index")
	logger.Info("Source: %s (%s)", ix.connector.SourceID(), ix.connector.Type())

	if err := ix.connector.Validate(ctx); err != nil {
		return fmt.Errorf("validate connector: %w", err)
	}

	docs, errs := ix.connector.FullSync(ctx)

	for docs != nil || errs != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case raw, ok := <-docs:
			if !ok {
				docs = nil
				continue
			}
			if err := ix.ingest(ctx, raw); err != nil {
				logger.Warn("Ingest %s failed: %v", raw.URI, err)
				stats.Failed++
				continue
			}
			stats.Indexed++

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				return fmt.Errorf("connector: %w", err)
			}
		}
	}

	logger.Info("Indexed %d documents (%d failed)", stats.Indexed, stats.Failed)
	return nil
}

// Watch applies connector change events until ctx is cancelled.
func (ix *Indexer) Watch(ctx context.Context) error {
	if !ix.connector.Capabilities().SupportsWatch {
		return domain.ErrWatchUnsupported
	}

	changes, err := ix.connector.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	logger.Section("Watch")
	logger.Info("Watching source %s", ix.connector.SourceID())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			if err := ix.applyChange(ctx, change); err != nil {
				logger.Warn("Apply change for %s failed: %v", change.Document.URI, err)
			}
		}
	}
}

// Status reports the indexer's current state.
func (ix *Indexer) Status() driving.IndexStatus {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return driving.IndexStatus{
		Running:   ix.running,
		LastStats: ix.lastStats,
		LastErr:   ix.lastErr,
	}
}

// begin marks a run as started, rejecting concurrent runs.
func (ix *Indexer) begin() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.running {
		return domain.ErrIndexInProgress
	}
	ix.running = true
	return nil
}

// finish records the run outcome.
func (ix *Indexer) finish(stats *driving.IndexStats, err error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.running = false
	ix.lastStats = stats
	ix.lastErr = err
}

// ingest converts a raw document and writes it to the store and index.
func (ix *Indexer) ingest(ctx context.Context, raw domain.RawDocument) error {
	if err := ix.limiter.Wait(ctx); err != nil {
		return err
	}

	doc, err := ix.toDocument(ctx, raw)
	if err != nil {
		return err
	}

	if err := ix.docStore.SaveDocument(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	if err := ix.engine.Index(ctx, *doc); err != nil {
		return fmt.Errorf("index document: %w", err)
	}

	logger.Debug("Ingested %s as %s", doc.URI, doc.ID)
	return nil
}

// applyChange applies a single watch event.
func (ix *Indexer) applyChange(ctx context.Context, change domain.RawDocumentChange) error {
	switch change.Type {
	case domain.ChangeCreated, domain.ChangeUpdated:
		return ix.ingest(ctx, change.Document)

	case domain.ChangeDeleted:
		doc, err := ix.docStore.GetDocumentByURI(ctx, change.Document.URI)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil // Never indexed, nothing to remove.
			}
			return fmt.Errorf("lookup document: %w", err)
		}
		if err := ix.docStore.DeleteDocument(ctx, doc.ID); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
		if err := ix.engine.Delete(ctx, doc.ID); err != nil {
			return fmt.Errorf("delete from index: %w", err)
		}
		logger.Debug("Removed %s (%s)", doc.URI, doc.ID)
		return nil

	default:
		return fmt.Errorf("%w: change type %s", domain.ErrUnsupportedType, change.Type)
	}
}

// toDocument converts a raw document, reusing the existing ID when the URI
// has been indexed before so updates replace rather than duplicate.
func (ix *Indexer) toDocument(ctx context.Context, raw domain.RawDocument) (*domain.Document, error) {
	now := time.Now().UTC()

	doc := &domain.Document{
		ID:        uuid.NewString(),
		SourceID:  raw.SourceID,
		URI:       raw.URI,
		Title:     titleFromURI(raw.URI),
		Content:   string(raw.Content),
		Metadata:  raw.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	existing, err := ix.docStore.GetDocumentByURI(ctx, raw.URI)
	switch {
	case err == nil:
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
	case errors.Is(err, domain.ErrNotFound):
		// First time seeing this URI.
	default:
		return nil, fmt.Errorf("lookup existing document: %w", err)
	}

	return doc, nil
}

// titleFromURI derives a display title from the document location.
func titleFromURI(uri string) string {
	base := filepath.Base(strings.TrimPrefix(uri, "file://"))
	if base == "." || base == string(filepath.Separator) {
		return uri
	}
	return base
}
