package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/fynda-cli/internal/core/domain"
	"github.com/custodia-labs/fynda-cli/internal/core/ports/driven"
)

// mockSearchEngine is a mock implementation of driven.SearchEngine.
type mockSearchEngine struct {
	mu      sync.Mutex
	hits    []driven.SearchHit
	err     error
	indexed []domain.Document
	deleted []string
	queries []string
}

func (m *mockSearchEngine) Index(_ context.Context, doc domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexed = append(m.indexed, doc)
	return m.err
}

func (m *mockSearchEngine) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockSearchEngine) Search(_ context.Context, query string, _ int) ([]driven.SearchHit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	return m.hits, nil
}

func (m *mockSearchEngine) Close() error {
	return nil
}

func (m *mockSearchEngine) searchedQueries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// fakeConnector emits a fixed set of raw documents.
type fakeConnector struct {
	sourceID     string
	docs         []domain.RawDocument
	syncErr      error
	validateErr  error
	watchErr     error
	watchChanges chan domain.RawDocumentChange
	supportWatch bool

	// release, when set, blocks FullSync until closed.
	release chan struct{}
}

func (f *fakeConnector) Type() string {
	return "fake"
}

func (f *fakeConnector) SourceID() string {
	return f.sourceID
}

func (f *fakeConnector) Capabilities() driven.ConnectorCapabilities {
	return driven.ConnectorCapabilities{
		SupportsWatch:      f.supportWatch,
		SupportsValidation: true,
	}
}

func (f *fakeConnector) Validate(_ context.Context) error {
	return f.validateErr
}

func (f *fakeConnector) FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument)
	errs := make(chan error, 1)

	go func() {
		defer close(docs)
		defer close(errs)

		if f.release != nil {
			select {
			case <-f.release:
			case <-ctx.Done():
				return
			}
		}

		for _, doc := range f.docs {
			select {
			case docs <- doc:
			case <-ctx.Done():
				return
			}
		}

		if f.syncErr != nil {
			errs <- f.syncErr
		}
	}()

	return docs, errs
}

func (f *fakeConnector) Watch(_ context.Context) (<-chan domain.RawDocumentChange, error) {
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	return f.watchChanges, nil
}

func (f *fakeConnector) Close() error {
	return nil
}
