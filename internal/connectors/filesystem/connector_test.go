package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fynda-cli/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func drainSync(t *testing.T, docs <-chan domain.RawDocument, errs <-chan error) []domain.RawDocument {
	t.Helper()

	var collected []domain.RawDocument
	for docs != nil || errs != nil {
		select {
		case doc, ok := <-docs:
			if !ok {
				docs = nil
				continue
			}
			collected = append(collected, doc)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out draining sync channels")
		}
	}
	return collected
}

func TestConnector_Metadata(t *testing.T) {
	conn := New("src-1", t.TempDir())

	assert.Equal(t, "filesystem", conn.Type())
	assert.Equal(t, "src-1", conn.SourceID())

	caps := conn.Capabilities()
	assert.True(t, caps.SupportsWatch)
	assert.True(t, caps.SupportsValidation)
	assert.False(t, caps.SupportsBinary)
}

func TestConnector_Validate(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		conn := New("src-1", t.TempDir())
		assert.NoError(t, conn.Validate(context.Background()))
	})

	t.Run("missing path", func(t *testing.T) {
		conn := New("src-1", filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, conn.Validate(context.Background()))
	})

	t.Run("file instead of directory", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "plain.txt", "hello")

		conn := New("src-1", path)
		err := conn.Validate(context.Background())
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestConnector_FullSync(t *testing.T) {
	t.Run("emits text files and skips binaries", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "readme.md", "# hello")
		writeFile(t, dir, "notes.txt", "some notes")
		writeFile(t, dir, "image.png", "not text")
		writeFile(t, dir, "nested/deep.go", "package deep")

		conn := New("src-1", dir)
		docs, errs := conn.FullSync(context.Background())
		collected := drainSync(t, docs, errs)

		require.Len(t, collected, 3)

		byURI := make(map[string]domain.RawDocument)
		for _, doc := range collected {
			byURI[doc.URI] = doc
		}

		readme, ok := byURI[filepath.Join(dir, "readme.md")]
		require.True(t, ok)
		assert.Equal(t, "src-1", readme.SourceID)
		assert.Equal(t, []byte("# hello"), readme.Content)
		assert.Equal(t, ".md", readme.Metadata["ext"])

		_, ok = byURI[filepath.Join(dir, "nested", "deep.go")]
		assert.True(t, ok)
	})

	t.Run("empty directory emits nothing", func(t *testing.T) {
		conn := New("src-1", t.TempDir())
		docs, errs := conn.FullSync(context.Background())
		assert.Empty(t, drainSync(t, docs, errs))
	})

	t.Run("missing root reports error", func(t *testing.T) {
		conn := New("src-1", filepath.Join(t.TempDir(), "gone"))
		docs, errs := conn.FullSync(context.Background())

		for range docs {
		}
		err := <-errs
		assert.Error(t, err)
	})

	t.Run("cancelled context stops the walk", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
			writeFile(t, dir, name, "content")
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		conn := New("src-1", dir)
		docs, errs := conn.FullSync(ctx)

		for range docs {
		}
		err := <-errs
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestConnector_Watch(t *testing.T) {
	waitForChange := func(t *testing.T, changes <-chan domain.RawDocumentChange, wantType domain.ChangeType, wantURI string) domain.RawDocumentChange {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case change, ok := <-changes:
				require.True(t, ok, "change channel closed early")
				// Editors and the OS can interleave extra events; wait for
				// the one we care about.
				if change.Type == wantType && change.Document.URI == wantURI {
					return change
				}
			case <-deadline:
				t.Fatalf("timed out waiting for %s on %s", wantType, wantURI)
			}
		}
	}

	t.Run("emits created for new files", func(t *testing.T) {
		dir := t.TempDir()
		conn := New("src-1", dir)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := conn.Watch(ctx)
		require.NoError(t, err)

		path := writeFile(t, dir, "fresh.txt", "brand new")
		change := waitForChange(t, changes, domain.ChangeCreated, path)
		assert.Equal(t, []byte("brand new"), change.Document.Content)
	})

	t.Run("emits deleted for removed files", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "doomed.txt", "short lived")

		conn := New("src-1", dir)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := conn.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.Remove(path))
		change := waitForChange(t, changes, domain.ChangeDeleted, path)
		assert.Equal(t, "src-1", change.Document.SourceID)
	})

	t.Run("closes channel on cancel", func(t *testing.T) {
		conn := New("src-1", t.TempDir())

		ctx, cancel := context.WithCancel(context.Background())
		changes, err := conn.Watch(ctx)
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-changes:
			assert.False(t, ok)
		case <-time.After(5 * time.Second):
			t.Fatal("change channel did not close after cancel")
		}
	})

	t.Run("missing root fails", func(t *testing.T) {
		conn := New("src-1", filepath.Join(t.TempDir(), "gone"))
		_, err := conn.Watch(context.Background())
		assert.Error(t, err)
	})
}

func TestResolveLocalPath(t *testing.T) {
	assert.Equal(t, "/tmp/notes.txt", ResolveLocalPath("file:///tmp/notes.txt"))
	assert.Equal(t, "/tmp/notes.txt", ResolveLocalPath("/tmp/notes.txt"))
	assert.Equal(t, "relative/path.md", ResolveLocalPath("relative/path.md"))
}
