package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/fynda-cli/internal/core/domain"
	"github.com/custodia-labs/fynda-cli/internal/core/ports/driving"
)

// mockSearchService returns a fixed result set.
type mockSearchService struct{}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	_ domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return []domain.SearchResult{
		{
			Document:   domain.Document{ID: "doc-1", Title: "Mock Document", URI: "/mock.txt"},
			Score:      0.9,
			Highlights: []string{"a mock highlight"},
		},
	}, nil
}

// mockSearchServiceError always fails.
type mockSearchServiceError struct{}

func (m *mockSearchServiceError) Search(
	_ context.Context,
	_ string,
	_ domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return nil, errors.New("mock search error")
}

// mockIndexService reports a fixed indexing outcome.
type mockIndexService struct {
	stats    driving.IndexStats
	err      error
	watchErr error
}

func (m *mockIndexService) FullIndex(_ context.Context) (*driving.IndexStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	stats := m.stats
	return &stats, nil
}

func (m *mockIndexService) Watch(_ context.Context) error {
	return m.watchErr
}

func (m *mockIndexService) Status() driving.IndexStatus {
	return driving.IndexStatus{}
}

// setupTestServices wires mock services and returns a restore func.
func setupTestServices() func() {
	oldSearch := searchService
	oldIndex := indexService

	searchService = &mockSearchService{}
	indexService = &mockIndexService{stats: driving.IndexStats{Indexed: 3}}

	return func() {
		searchService = oldSearch
		indexService = oldIndex
	}
}
