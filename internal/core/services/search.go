package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/fynda-cli/internal/core/domain"
	"github.com/custodia-labs/fynda-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fynda-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fynda-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService provides keyword search over indexed documents.
type SearchService struct {
	docStore    driven.DocumentStore
	searchIndex driven.SearchEngine
}

// NewSearchService creates a new search service.
func NewSearchService(docStore driven.DocumentStore, searchIndex driven.SearchEngine) *SearchService {
	return &SearchService{
		docStore:    docStore,
		searchIndex: searchIndex,
	}
}

// Search performs keyword search across all indexed documents.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	// Return empty for empty query
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	if s.searchIndex == nil {
		logger.Warn("Keyword search unavailable: search engine is nil")
		return nil, domain.ErrSearchUnavailable
	}

	// Determine limit (default to 20)
	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	logger.Debug("Limit: %d, Offset: %d", limit, opts.Offset)

	// Request more results internally to account for filtering
	internalLimit := limit + opts.Offset
	if len(opts.SourceIDs) > 0 {
		internalLimit *= 3
		logger.Debug("Source filter: %v", opts.SourceIDs)
	}
	logger.Debug("Internal limit: %d", internalLimit)

	hits, err := s.searchIndex.Search(ctx, query, internalLimit)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Debug("Raw results: %d hits", len(hits))

	// Hydrate results with full document data
	results, err := s.hydrateResults(ctx, hits, query)
	if err != nil {
		return nil, fmt.Errorf("hydrate results: %w", err)
	}
	logger.Debug("Hydrated results: %d documents", len(results))

	// Filter by source IDs if specified
	if len(opts.SourceIDs) > 0 {
		results = filterBySourceIDs(results, opts.SourceIDs)
		logger.Debug("After source filter: %d results", len(results))
	}

	// Apply pagination
	results = applyPagination(results, opts.Offset, limit)
	logger.Info("Final results: %d", len(results))

	return results, nil
}

// hydrateResults converts engine hits to full SearchResult objects.
func (s *SearchService) hydrateResults(
	ctx context.Context, hits []driven.SearchHit, query string,
) ([]domain.SearchResult, error) {
	if s.docStore == nil {
		return nil, domain.ErrStoreUnavailable
	}

	results := make([]domain.SearchResult, 0, len(hits))

	for _, hit := range hits {
		doc, err := s.docStore.GetDocument(ctx, hit.DocumentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Document was deleted after indexing, skip it
				continue
			}
			return nil, fmt.Errorf("get document %s: %w", hit.DocumentID, err)
		}

		results = append(results, domain.SearchResult{
			Document:   *doc,
			Score:      hit.Score,
			Highlights: generateHighlights(doc.Content, query),
		})
	}

	return results, nil
}

// generateHighlights creates text snippets with matched terms.
func generateHighlights(content, query string) []string {
	queryTerms := strings.Fields(strings.ToLower(query))
	if len(queryTerms) == 0 {
		return nil
	}

	var highlights []string

	for _, sentence := range splitSentences(content) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		sentenceLower := strings.ToLower(sentence)
		for _, term := range queryTerms {
			if strings.Contains(sentenceLower, term) {
				highlight := sentence
				if len(highlight) > 200 {
					highlight = highlight[:200] + "..."
				}
				highlights = append(highlights, highlight)
				break
			}
		}

		if len(highlights) >= 3 {
			break // Limit to 3 highlights
		}
	}

	return highlights
}

// splitSentences splits content into sentences.
func splitSentences(content string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range content {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			s := strings.TrimSpace(current.String())
			if s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// filterBySourceIDs filters results to only include specified sources.
func filterBySourceIDs(results []domain.SearchResult, sourceIDs []string) []domain.SearchResult {
	sourceSet := make(map[string]bool)
	for _, id := range sourceIDs {
		sourceSet[id] = true
	}

	filtered := make([]domain.SearchResult, 0)
	for i := range results {
		if sourceSet[results[i].Document.SourceID] {
			filtered = append(filtered, results[i])
		}
	}

	return filtered
}

// applyPagination applies offset and limit to results.
func applyPagination(results []domain.SearchResult, offset, limit int) []domain.SearchResult {
	if offset >= len(results) {
		return []domain.SearchResult{}
	}

	end := offset + limit
	if end > len(results) {
		end = len(results)
	}

	return results[offset:end]
}
