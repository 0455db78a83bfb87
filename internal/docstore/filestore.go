package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"course-hub-api/internal/domain"
)

// DefaultLockWait bounds how long a writer waits for a collection lock
// before the operation fails with ErrBusy.
const DefaultLockWait = 2 * time.Second

// FileStore persists each collection as one JSON array document under dir.
// Writers to the same collection are serialized; writers to different
// collections do not interfere. Commits go through a temp file followed by
// a rename on the same volume, so a crash mid-commit leaves the previous
// document intact.
type FileStore struct {
	dir      string
	lockWait time.Duration
	logger   *zap.Logger

	mu    sync.Mutex
	colls map[string]any
}

var _ Provider = (*FileStore)(nil)

// NewFileStore creates the data directory if needed and returns a store.
func NewFileStore(dir string, lockWait time.Duration, logger *zap.Logger) (*FileStore, error) {
	if lockWait <= 0 {
		lockWait = DefaultLockWait
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{
		dir:      dir,
		lockWait: lockWait,
		logger:   logger,
		colls:    make(map[string]any),
	}, nil
}

// Entities returns the entity collection with the given name.
func (s *FileStore) Entities(name string) Collection[domain.Entity] {
	return openFileCollection[domain.Entity](s, name)
}

// Comments returns the comment collection with the given name.
func (s *FileStore) Comments(name string) Collection[domain.Comment] {
	return openFileCollection[domain.Comment](s, name)
}

// openFileCollection returns the singleton collection for name, loading the
// committed document on first open.
func openFileCollection[T Record](s *FileStore, name string) *fileCollection[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.colls[name]; ok {
		return c.(*fileCollection[T])
	}
	c := &fileCollection[T]{
		path:     filepath.Join(s.dir, name+".json"),
		lockWait: s.lockWait,
		logger:   s.logger.With(zap.String("collection", name)),
		writer:   make(chan struct{}, 1),
	}
	c.snapshot = c.loadDocument()
	s.colls[name] = c
	return c
}

// fileCollection is one collection document plus its locking state.
// The writer channel is the collection-scoped mutation lock; snapMu only
// guards the swap of the committed snapshot, so readers never wait out a
// writer's read-mutate-commit cycle.
type fileCollection[T Record] struct {
	path     string
	lockWait time.Duration
	logger   *zap.Logger

	writer chan struct{}

	snapMu   sync.RWMutex
	snapshot []T
}

// loadDocument reads the committed document from disk. A missing file is an
// empty collection; an unreadable one is logged and treated as empty, which
// mirrors how the original system recovered from corrupt documents.
func (c *fileCollection[T]) loadDocument() []T {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("failed to read collection document, starting empty", zap.Error(err))
		}
		return nil
	}
	var recs []T
	if err := json.Unmarshal(data, &recs); err != nil {
		c.logger.Warn("collection document malformed, starting empty", zap.Error(err))
		return nil
	}
	return recs
}

// acquire takes the collection write lock, waiting at most lockWait.
func (c *fileCollection[T]) acquire(ctx context.Context) error {
	timer := time.NewTimer(c.lockWait)
	defer timer.Stop()
	select {
	case c.writer <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrBusy
	case <-ctx.Done():
		return ErrBusy
	}
}

func (c *fileCollection[T]) release() {
	<-c.writer
}

// committed returns the last committed snapshot slice. Callers must not
// mutate the returned records in place.
func (c *fileCollection[T]) committed() []T {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	return c.snapshot
}

func (c *fileCollection[T]) swap(next []T) {
	c.snapMu.Lock()
	c.snapshot = next
	c.snapMu.Unlock()
}

// commit writes next to a temp file in the collection's directory and moves
// it into place. If any step fails the previous document is untouched.
func (c *fileCollection[T]) commit(next []T) error {
	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection document: %w", err)
	}
	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("move document into place: %w", err)
	}
	return nil
}

// List returns the committed records in insertion order.
func (c *fileCollection[T]) List(ctx context.Context) ([]T, error) {
	snap := c.committed()
	out := make([]T, len(snap))
	copy(out, snap)
	return out, nil
}

// Get returns the committed record with the given id.
func (c *fileCollection[T]) Get(ctx context.Context, id string) (T, error) {
	for _, rec := range c.committed() {
		if rec.RecordID() == id {
			return rec, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Put inserts rec or replaces the record sharing its id.
func (c *fileCollection[T]) Put(ctx context.Context, rec T) error {
	if err := c.acquire(ctx); err != nil {
		return err
	}
	defer c.release()

	snap := c.committed()
	next := make([]T, len(snap), len(snap)+1)
	copy(next, snap)

	replaced := false
	for i, existing := range next {
		if existing.RecordID() == rec.RecordID() {
			next[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, rec)
	}

	if err := c.commit(next); err != nil {
		return err
	}
	c.swap(next)
	return nil
}

// Delete removes the record with the given id.
func (c *fileCollection[T]) Delete(ctx context.Context, id string) error {
	if err := c.acquire(ctx); err != nil {
		return err
	}
	defer c.release()

	snap := c.committed()
	next := make([]T, 0, len(snap))
	found := false
	for _, rec := range snap {
		if rec.RecordID() == id {
			found = true
			continue
		}
		next = append(next, rec)
	}
	if !found {
		return ErrNotFound
	}

	if err := c.commit(next); err != nil {
		return err
	}
	c.swap(next)
	return nil
}
