package docstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"course-hub-api/internal/domain"
)

// GormStore maps each collection to a relational table sharing the record's
// schema. The collection lock is the database's own locking plus the
// transaction boundary around every mutation; the bounded lock wait is a
// context deadline on that transaction.
type GormStore struct {
	db       *gorm.DB
	lockWait time.Duration
}

var _ Provider = (*GormStore)(nil)

// NewGormStore wraps an open gorm connection.
func NewGormStore(db *gorm.DB, lockWait time.Duration) *GormStore {
	if lockWait <= 0 {
		lockWait = DefaultLockWait
	}
	return &GormStore{db: db, lockWait: lockWait}
}

// Entities returns the entity collection backed by the named table.
func (s *GormStore) Entities(name string) Collection[domain.Entity] {
	return &gormCollection[domain.Entity]{db: s.db, table: name, lockWait: s.lockWait}
}

// Comments returns the comment collection backed by the named table.
func (s *GormStore) Comments(name string) Collection[domain.Comment] {
	return &gormCollection[domain.Comment]{db: s.db, table: name, lockWait: s.lockWait}
}

type gormCollection[T Record] struct {
	db       *gorm.DB
	table    string
	lockWait time.Duration
}

// List returns all rows ordered by creation time, oldest first, matching
// the file backend's insertion order.
func (c *gormCollection[T]) List(ctx context.Context) ([]T, error) {
	var recs []T
	err := c.db.WithContext(ctx).Table(c.table).Order("created_at ASC").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Get returns the row with the given id.
func (c *gormCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var rec T
	err := c.db.WithContext(ctx).Table(c.table).Where("id = ?", id).First(&rec).Error
	if err != nil {
		var zero T
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return rec, nil
}

// Put upserts rec inside a transaction bounded by the lock wait.
func (c *gormCollection[T]) Put(ctx context.Context, rec T) error {
	ctx, cancel := context.WithTimeout(ctx, c.lockWait)
	defer cancel()

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Table(c.table).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
			Create(&rec).Error
	})
	return translateBusy(err)
}

// Delete removes the row with the given id inside a transaction.
func (c *gormCollection[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, c.lockWait)
	defer cancel()

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zero T
		res := tx.Table(c.table).Where("id = ?", id).Delete(&zero)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return translateBusy(err)
}

// translateBusy maps lock-wait style failures onto ErrBusy so callers see
// the same retryable condition from both backends.
func translateBusy(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrBusy
	}
	msg := err.Error()
	if strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "lock timeout") ||
		strings.Contains(msg, "could not obtain lock") {
		return ErrBusy
	}
	return err
}
