package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"course-hub-api/internal/domain"
)

func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Table("resources").AutoMigrate(&domain.Entity{}))
	require.NoError(t, db.Table("resource_comments").AutoMigrate(&domain.Comment{}))
	return NewGormStore(db, time.Second)
}

func TestGormStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	coll := newTestGormStore(t).Entities("resources")

	require.NoError(t, coll.Put(ctx, entityAt("a", 0)))

	got, err := coll.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Entity a", got.Title)

	// Put with the same id upserts, no duplicate row
	updated := entityAt("a", 0)
	updated.Title = "Renamed"
	require.NoError(t, coll.Put(ctx, updated))

	recs, err := coll.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Renamed", recs[0].Title)

	require.NoError(t, coll.Delete(ctx, "a"))
	_, err = coll.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, coll.Delete(ctx, "a"), ErrNotFound)
}

func TestGormStore_ListOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	coll := newTestGormStore(t).Entities("resources")

	// Insert out of chronological order
	require.NoError(t, coll.Put(ctx, entityAt("newest", 2*time.Hour)))
	require.NoError(t, coll.Put(ctx, entityAt("oldest", 0)))
	require.NoError(t, coll.Put(ctx, entityAt("middle", time.Hour)))

	recs, err := coll.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "oldest", recs[0].ID)
	assert.Equal(t, "middle", recs[1].ID)
	assert.Equal(t, "newest", recs[2].ID)
}

func TestGormStore_CommentsRoundTrip(t *testing.T) {
	ctx := context.Background()
	coll := newTestGormStore(t).Comments("resource_comments")

	require.NoError(t, coll.Put(ctx, domain.Comment{
		ID:        "c1",
		ParentID:  "r1",
		Author:    "student-1",
		Text:      "looks good",
		CreatedAt: time.Now().UTC(),
	}))

	got, err := coll.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ParentID)
	assert.Equal(t, "student-1", got.Author)
}

func TestTranslateBusy(t *testing.T) {
	assert.NoError(t, translateBusy(nil))
	assert.ErrorIs(t, translateBusy(ErrNotFound), ErrNotFound)
	assert.ErrorIs(t, translateBusy(context.DeadlineExceeded), ErrBusy)
	assert.ErrorIs(t, translateBusy(assert.AnError), assert.AnError)
}
