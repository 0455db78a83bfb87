package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"course-hub-api/internal/domain"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), 50*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	return store
}

func entityAt(id string, offset time.Duration) domain.Entity {
	return domain.Entity{
		ID:        id,
		Title:     "Entity " + id,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).Add(offset),
	}
}

func TestFileStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	coll := newTestStore(t).Entities("resources")

	require.NoError(t, coll.Put(ctx, entityAt("a", 0)))

	got, err := coll.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Entity a", got.Title)

	// Put with the same id replaces
	updated := entityAt("a", 0)
	updated.Title = "Renamed"
	require.NoError(t, coll.Put(ctx, updated))
	got, err = coll.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)

	require.NoError(t, coll.Delete(ctx, "a"))
	_, err = coll.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, coll.Delete(ctx, "a"), ErrNotFound)
}

func TestFileStore_ListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	coll := newTestStore(t).Entities("resources")

	for i, id := range []string{"c", "a", "b"} {
		require.NoError(t, coll.Put(ctx, entityAt(id, time.Duration(i)*time.Minute)))
	}

	recs, err := coll.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "c", recs[0].ID)
	assert.Equal(t, "a", recs[1].ID)
	assert.Equal(t, "b", recs[2].ID)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewFileStore(dir, 0, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Entities("weeks").Put(ctx, entityAt("w1", 0)))

	// A fresh store over the same directory sees the committed document.
	reopened, err := NewFileStore(dir, 0, zap.NewNop())
	require.NoError(t, err)
	got, err := reopened.Entities("weeks").Get(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "Entity w1", got.Title)

	// And the document on disk is the collection file, not a temp file.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "weeks.json", entries[0].Name())
}

func TestFileStore_MalformedDocumentStartsEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "topics.json"), []byte("{not json"), 0o644))

	store, err := NewFileStore(dir, 0, zap.NewNop())
	require.NoError(t, err)

	recs, err := store.Entities("topics").List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs, "a corrupt document reads as an empty collection")

	// Writes still work and replace the corrupt document.
	require.NoError(t, store.Entities("topics").Put(ctx, entityAt("t1", 0)))
	reopened, err := NewFileStore(dir, 0, zap.NewNop())
	require.NoError(t, err)
	recs, err = reopened.Entities("topics").List(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestFileStore_CollectionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Entities("resources").Put(ctx, entityAt("r1", 0)))
	require.NoError(t, store.Entities("assignments").Put(ctx, entityAt("a1", 0)))

	recs, err := store.Entities("resources").List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "r1", recs[0].ID)
}

func TestFileStore_BusyWhenLockHeld(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	coll := openFileCollection[domain.Entity](store, "resources")

	// Hold the collection write lock for longer than the lock wait.
	coll.writer <- struct{}{}
	defer func() { <-coll.writer }()

	err := coll.Put(ctx, entityAt("a", 0))
	assert.ErrorIs(t, err, ErrBusy)

	// Reads are never blocked by a writer.
	recs, err := coll.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestFileStore_CanceledContextIsBusy(t *testing.T) {
	store := newTestStore(t)
	coll := openFileCollection[domain.Entity](store, "resources")

	coll.writer <- struct{}{}
	defer func() { <-coll.writer }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, coll.Put(ctx, entityAt("a", 0)), ErrBusy)
}

func TestFileStore_ConcurrentWritersAllLand(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir(), 5*time.Second, zap.NewNop())
	require.NoError(t, err)
	coll := store.Entities("resources")

	const writers = 16
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = coll.Put(ctx, entityAt(fmt.Sprintf("id-%02d", i), time.Duration(i)*time.Second))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "writer %d", i)
	}
	recs, err := coll.List(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, writers)
}
