package repository

import (
	"context"

	"course-hub-api/internal/docstore"
	"course-hub-api/internal/domain"
)

// CommentRepository is data access for one dependent comment collection.
type CommentRepository interface {
	// FindByParent returns the parent's comments in creation order,
	// oldest first. A parent with no comments yields an empty slice.
	FindByParent(ctx context.Context, parentID string) ([]domain.Comment, error)
	// FindAll returns every comment in the collection; used by the
	// orphan sweep.
	FindAll(ctx context.Context) ([]domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	Save(ctx context.Context, c *domain.Comment) error
	Delete(ctx context.Context, id string) error
}

type commentRepository struct {
	coll docstore.Collection[domain.Comment]
}

// NewCommentRepository creates a repository over the definition's comment
// collection.
func NewCommentRepository(store docstore.Provider, def domain.Definition) CommentRepository {
	return &commentRepository{coll: store.Comments(def.CommentCollection)}
}

func (r *commentRepository) FindByParent(ctx context.Context, parentID string) ([]domain.Comment, error) {
	comments, err := r.coll.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Comment, 0, len(comments))
	for _, c := range comments {
		if c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *commentRepository) FindAll(ctx context.Context) ([]domain.Comment, error) {
	return r.coll.List(ctx)
}

func (r *commentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	c, err := r.coll.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) Save(ctx context.Context, c *domain.Comment) error {
	return r.coll.Put(ctx, *c)
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	return r.coll.Delete(ctx, id)
}
