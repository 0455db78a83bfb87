package service

import (
	"context"

	"go.uber.org/zap"

	"course-hub-api/internal/docstore"
	"course-hub-api/internal/domain"
	"course-hub-api/internal/repository"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

// MockEntityRepository is a mock implementation of EntityRepository
type MockEntityRepository struct {
	Def           domain.Definition
	FindAllFunc   func(ctx context.Context, q repository.ListQuery) ([]domain.Entity, error)
	FindByIDFunc  func(ctx context.Context, id string) (*domain.Entity, error)
	FindByKeyFunc func(ctx context.Context, key string) (*domain.Entity, error)
	SaveFunc      func(ctx context.Context, e *domain.Entity) error
	DeleteFunc    func(ctx context.Context, id string) error
}

func (m *MockEntityRepository) Definition() domain.Definition { return m.Def }

func (m *MockEntityRepository) FindAll(ctx context.Context, q repository.ListQuery) ([]domain.Entity, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, q)
	}
	return []domain.Entity{}, nil
}

func (m *MockEntityRepository) FindByID(ctx context.Context, id string) (*domain.Entity, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, docstore.ErrNotFound
}

func (m *MockEntityRepository) FindByKey(ctx context.Context, key string) (*domain.Entity, error) {
	if m.FindByKeyFunc != nil {
		return m.FindByKeyFunc(ctx, key)
	}
	return nil, docstore.ErrNotFound
}

func (m *MockEntityRepository) Save(ctx context.Context, e *domain.Entity) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, e)
	}
	return nil
}

func (m *MockEntityRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	FindByParentFunc func(ctx context.Context, parentID string) ([]domain.Comment, error)
	FindAllFunc      func(ctx context.Context) ([]domain.Comment, error)
	FindByIDFunc     func(ctx context.Context, id string) (*domain.Comment, error)
	SaveFunc         func(ctx context.Context, c *domain.Comment) error
	DeleteFunc       func(ctx context.Context, id string) error
}

func (m *MockCommentRepository) FindByParent(ctx context.Context, parentID string) ([]domain.Comment, error) {
	if m.FindByParentFunc != nil {
		return m.FindByParentFunc(ctx, parentID)
	}
	return []domain.Comment{}, nil
}

func (m *MockCommentRepository) FindAll(ctx context.Context) ([]domain.Comment, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return []domain.Comment{}, nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, docstore.ErrNotFound
}

func (m *MockCommentRepository) Save(ctx context.Context, c *domain.Comment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// newTestEntityService wires an entity service over the given mocks with a
// cascade sharing the same repositories.
func newTestEntityService(entities *MockEntityRepository, comments *MockCommentRepository) EntityService {
	logger := newTestLogger()
	cascade := NewCascade(entities, comments, nil, logger)
	return NewEntityService(entities, cascade, nil, logger)
}
