// Package docstore provides the locking read-modify-write abstraction over
// named collections. Two backends implement the same contract: a flat-file
// backend persisting each collection as one JSON document, and a relational
// backend mapping each collection to a table. Callers above this package do
// not know which backend is active.
package docstore

import (
	"context"
	"errors"

	"course-hub-api/internal/domain"
)

// Record is anything the store can persist under a stable id.
type Record interface {
	RecordID() string
}

var (
	// ErrNotFound is returned by Get and Delete when no record has the id.
	ErrNotFound = errors.New("docstore: record not found")
	// ErrBusy is returned when the collection write lock could not be
	// acquired within the configured wait. The operation was not applied;
	// callers should surface a retryable condition, not retry blindly.
	ErrBusy = errors.New("docstore: collection busy")
)

// Collection is one named collection of records.
//
// List and Get return the most recently committed state and never block
// behind a writer. Put and Delete serialize through a collection-scoped
// lock held for the read+mutate+commit span and released on every exit
// path; the commit is atomic, so readers never observe a partially written
// collection. Put is an upsert keyed by RecordID.
type Collection[T Record] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Put(ctx context.Context, rec T) error
	Delete(ctx context.Context, id string) error
}

// Provider hands out collections for the two record shapes the service
// stores. Both backends implement it.
type Provider interface {
	Entities(name string) Collection[domain.Entity]
	Comments(name string) Collection[domain.Comment]
}
