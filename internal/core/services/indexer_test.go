package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fynda-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fynda-cli/internal/core/domain"
)

func rawDoc(uri, content string) domain.RawDocument {
	return domain.RawDocument{
		SourceID: "src-1",
		URI:      uri,
		MIMEType: "text/plain",
		Content:  []byte(content),
	}
}

func TestIndexer_FullIndex(t *testing.T) {
	ctx := context.Background()

	t.Run("ingests every document", func(t *testing.T) {
		store := memory.NewDocumentStore()
		engine := &mockSearchEngine{}
		connector := &fakeConnector{
			sourceID: "src-1",
			docs: []domain.RawDocument{
				rawDoc("/notes.txt", "some notes"),
				rawDoc("/readme.md", "# readme"),
			},
		}

		ix := NewIndexer(connector, store, engine)

		stats, err := ix.FullIndex(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Indexed)
		assert.Equal(t, 0, stats.Failed)

		// Both store and engine saw the documents
		docs, err := store.ListDocuments(ctx, "src-1")
		require.NoError(t, err)
		assert.Len(t, docs, 2)
		assert.Len(t, engine.indexed, 2)
	})

	t.Run("derives title from the URI", func(t *testing.T) {
		store := memory.NewDocumentStore()
		connector := &fakeConnector{sourceID: "src-1", docs: []domain.RawDocument{
			rawDoc("/home/user/notes/todo.txt", "buy milk"),
		}}

		ix := NewIndexer(connector, store, &mockSearchEngine{})

		_, err := ix.FullIndex(ctx)
		require.NoError(t, err)

		doc, err := store.GetDocumentByURI(ctx, "/home/user/notes/todo.txt")
		require.NoError(t, err)
		assert.Equal(t, "todo.txt", doc.Title)
	})

	t.Run("re-index reuses document IDs", func(t *testing.T) {
		store := memory.NewDocumentStore()
		connector := &fakeConnector{sourceID: "src-1", docs: []domain.RawDocument{
			rawDoc("/notes.txt", "first version"),
		}}

		ix := NewIndexer(connector, store, &mockSearchEngine{})

		_, err := ix.FullIndex(ctx)
		require.NoError(t, err)
		original, err := store.GetDocumentByURI(ctx, "/notes.txt")
		require.NoError(t, err)

		connector.docs[0].Content = []byte("second version")
		_, err = ix.FullIndex(ctx)
		require.NoError(t, err)

		updated, err := store.GetDocumentByURI(ctx, "/notes.txt")
		require.NoError(t, err)
		assert.Equal(t, original.ID, updated.ID)
		assert.Equal(t, "second version", updated.Content)

		docs, err := store.ListDocuments(ctx, "")
		require.NoError(t, err)
		assert.Len(t, docs, 1, "updates replace rather than duplicate")
	})

	t.Run("validation failure aborts the run", func(t *testing.T) {
		connector := &fakeConnector{validateErr: errors.New("missing root")}
		ix := NewIndexer(connector, memory.NewDocumentStore(), &mockSearchEngine{})

		_, err := ix.FullIndex(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing root")
	})

	t.Run("connector errors propagate", func(t *testing.T) {
		connector := &fakeConnector{syncErr: errors.New("walk failed")}
		ix := NewIndexer(connector, memory.NewDocumentStore(), &mockSearchEngine{})

		_, err := ix.FullIndex(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "walk failed")
	})

	t.Run("concurrent runs are rejected", func(t *testing.T) {
		release := make(chan struct{})
		connector := &fakeConnector{release: release}
		ix := NewIndexer(connector, memory.NewDocumentStore(), &mockSearchEngine{})

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, err := ix.FullIndex(ctx)
			assert.NoError(t, err)
		}()

		// Wait for the first run to start
		require.Eventually(t, func() bool {
			return ix.Status().Running
		}, 2*time.Second, 5*time.Millisecond)

		_, err := ix.FullIndex(ctx)
		assert.ErrorIs(t, err, domain.ErrIndexInProgress)

		close(release)
		<-done
		assert.False(t, ix.Status().Running)
	})
}

func TestIndexer_Watch(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported connector is rejected", func(t *testing.T) {
		connector := &fakeConnector{supportWatch: false}
		ix := NewIndexer(connector, memory.NewDocumentStore(), &mockSearchEngine{})

		err := ix.Watch(ctx)
		assert.ErrorIs(t, err, domain.ErrWatchUnsupported)
	})

	t.Run("applies create and delete changes", func(t *testing.T) {
		store := memory.NewDocumentStore()
		engine := &mockSearchEngine{}
		changes := make(chan domain.RawDocumentChange)
		connector := &fakeConnector{
			sourceID:     "src-1",
			supportWatch: true,
			watchChanges: changes,
		}

		ix := NewIndexer(connector, store, engine)

		done := make(chan error, 1)
		go func() {
			done <- ix.Watch(ctx)
		}()

		changes <- domain.RawDocumentChange{
			Type:     domain.ChangeCreated,
			Document: rawDoc("/fresh.txt", "brand new"),
		}
		changes <- domain.RawDocumentChange{
			Type:     domain.ChangeDeleted,
			Document: domain.RawDocument{SourceID: "src-1", URI: "/fresh.txt"},
		}
		close(changes)

		require.NoError(t, <-done)

		// Created then deleted leaves nothing behind
		_, err := store.GetDocumentByURI(ctx, "/fresh.txt")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Len(t, engine.deleted, 1)
	})

	t.Run("unknown change type is rejected", func(t *testing.T) {
		ix := NewIndexer(&fakeConnector{}, memory.NewDocumentStore(), &mockSearchEngine{})

		err := ix.applyChange(ctx, domain.RawDocumentChange{Type: domain.ChangeType(99)})
		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})

	t.Run("deleting an unindexed file is a no-op", func(t *testing.T) {
		changes := make(chan domain.RawDocumentChange)
		connector := &fakeConnector{supportWatch: true, watchChanges: changes}
		ix := NewIndexer(connector, memory.NewDocumentStore(), &mockSearchEngine{})

		done := make(chan error, 1)
		go func() {
			done <- ix.Watch(ctx)
		}()

		changes <- domain.RawDocumentChange{
			Type:     domain.ChangeDeleted,
			Document: domain.RawDocument{URI: "/never-seen.txt"},
		}
		close(changes)

		assert.NoError(t, <-done)
	})
}
