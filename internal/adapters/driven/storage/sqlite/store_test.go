package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fynda-cli/internal/core/domain"
)

// newTestStore creates a store in a temp directory, closed on cleanup.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestNewStore(t *testing.T) {
	t.Run("creates database and runs migrations", func(t *testing.T) {
		store := newTestStore(t)
		assert.NotEmpty(t, store.Path())

		// Migrations are idempotent: reopening the same directory works.
		again, err := NewStore(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, again.Close())
	})
}

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	doc := &domain.Document{
		ID:        "doc-1",
		SourceID:  "src-1",
		URI:       "/notes/roadmap.md",
		Title:     "roadmap.md",
		Content:   "Ship the live search pipeline.",
		Metadata:  map[string]any{"ext": ".md"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	require.NoError(t, docs.SaveDocument(ctx, doc))

	saved, err := docs.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, saved.ID)
	assert.Equal(t, doc.URI, saved.URI)
	assert.Equal(t, doc.Content, saved.Content)
	assert.Equal(t, ".md", saved.Metadata["ext"])
	assert.True(t, saved.CreatedAt.Equal(now))
}

func TestDocumentStore_SaveDocument_Upsert(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &domain.Document{
		ID: "doc-1", SourceID: "src-1", URI: "/a.txt",
		Content: "first", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, docs.SaveDocument(ctx, doc))

	doc.Content = "second"
	doc.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, docs.SaveDocument(ctx, doc))

	saved, err := docs.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "second", saved.Content)
}

func TestDocumentStore_GetDocumentByURI(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &domain.Document{
		ID: "doc-1", SourceID: "src-1", URI: "/b.txt",
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, docs.SaveDocument(ctx, doc))

	found, err := docs.GetDocumentByURI(ctx, "/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", found.ID)

	_, err = docs.GetDocumentByURI(ctx, "/missing.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_Delete(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &domain.Document{
		ID: "doc-1", SourceID: "src-1", URI: "/c.txt",
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, docs.SaveDocument(ctx, doc))
	require.NoError(t, docs.DeleteDocument(ctx, "doc-1"))

	_, err := docs.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting a missing document is not an error
	assert.NoError(t, docs.DeleteDocument(ctx, "doc-1"))
}

func TestDocumentStore_ListDocuments(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	now := time.Now().UTC()
	for _, d := range []*domain.Document{
		{ID: "d1", SourceID: "src-1", URI: "/1", CreatedAt: now, UpdatedAt: now},
		{ID: "d2", SourceID: "src-1", URI: "/2", CreatedAt: now, UpdatedAt: now},
		{ID: "d3", SourceID: "src-2", URI: "/3", CreatedAt: now, UpdatedAt: now},
	} {
		require.NoError(t, docs.SaveDocument(ctx, d))
	}

	t.Run("filters by source", func(t *testing.T) {
		got, err := docs.ListDocuments(ctx, "src-1")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("empty source lists all ordered by URI", func(t *testing.T) {
		got, err := docs.ListDocuments(ctx, "")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "/1", got[0].URI)
		assert.Equal(t, "/3", got[2].URI)
	})
}
