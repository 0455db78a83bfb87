package docstore

import (
	"context"
	"time"

	"course-hub-api/internal/domain"
)

// QueryRecorder receives the timing of every store operation. The metrics
// package satisfies it.
type QueryRecorder interface {
	RecordStoreQuery(operation, collection string, duration time.Duration, err error)
}

// NewInstrumentedProvider wraps a provider so every collection operation is
// timed and reported to the recorder.
func NewInstrumentedProvider(inner Provider, rec QueryRecorder) Provider {
	if rec == nil {
		return inner
	}
	return &instrumentedProvider{inner: inner, rec: rec}
}

type instrumentedProvider struct {
	inner Provider
	rec   QueryRecorder
}

func (p *instrumentedProvider) Entities(name string) Collection[domain.Entity] {
	return &instrumentedCollection[domain.Entity]{inner: p.inner.Entities(name), name: name, rec: p.rec}
}

func (p *instrumentedProvider) Comments(name string) Collection[domain.Comment] {
	return &instrumentedCollection[domain.Comment]{inner: p.inner.Comments(name), name: name, rec: p.rec}
}

type instrumentedCollection[T Record] struct {
	inner Collection[T]
	name  string
	rec   QueryRecorder
}

func (c *instrumentedCollection[T]) List(ctx context.Context) ([]T, error) {
	start := time.Now()
	out, err := c.inner.List(ctx)
	c.rec.RecordStoreQuery("list", c.name, time.Since(start), err)
	return out, err
}

func (c *instrumentedCollection[T]) Get(ctx context.Context, id string) (T, error) {
	start := time.Now()
	out, err := c.inner.Get(ctx, id)
	c.rec.RecordStoreQuery("get", c.name, time.Since(start), err)
	return out, err
}

func (c *instrumentedCollection[T]) Put(ctx context.Context, rec T) error {
	start := time.Now()
	err := c.inner.Put(ctx, rec)
	c.rec.RecordStoreQuery("put", c.name, time.Since(start), err)
	return err
}

func (c *instrumentedCollection[T]) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := c.inner.Delete(ctx, id)
	c.rec.RecordStoreQuery("delete", c.name, time.Since(start), err)
	return err
}
