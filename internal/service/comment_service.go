package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"course-hub-api/internal/docstore"
	"course-hub-api/internal/domain"
	"course-hub-api/internal/dto"
	"course-hub-api/internal/metrics"
	"course-hub-api/internal/policy"
	"course-hub-api/internal/repository"
	"course-hub-api/internal/response"
)

// CommentService defines the business logic for one domain's comment
// thread. A thread under a deleted or unknown entity reads as empty;
// creating a comment under one fails.
type CommentService interface {
	ListByParent(ctx context.Context, parentID string) ([]*dto.CommentResponse, error)
	Create(ctx context.Context, actor domain.Actor, parentID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	Update(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	comments repository.CommentRepository
	entities repository.EntityRepository
	def      domain.Definition
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	comments repository.CommentRepository,
	entities repository.EntityRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		comments: comments,
		entities: entities,
		def:      entities.Definition(),
		metrics:  m,
		logger:   logger,
	}
}

// ListByParent returns the parent's comments oldest first. A parent that
// does not exist reads as an empty thread, which also hides any orphans a
// partially failed cascade left behind.
func (s *commentServiceImpl) ListByParent(ctx context.Context, parentID string) ([]*dto.CommentResponse, error) {
	if _, err := s.entities.FindByID(ctx, parentID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return []*dto.CommentResponse{}, nil
		}
		return nil, storeError(s.metrics, err, notFoundMessage(s.def))
	}

	comments, err := s.comments.FindByParent(ctx, parentID)
	if err != nil {
		return nil, storeError(s.metrics, err, "Comment not found")
	}

	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})

	responses := make([]*dto.CommentResponse, len(comments))
	for i := range comments {
		responses[i] = dto.ToCommentResponse(&comments[i])
	}
	return responses, nil
}

// Create posts a comment under an existing entity. The author is always the
// authenticated actor, never taken from the request body.
func (s *commentServiceImpl) Create(ctx context.Context, actor domain.Actor, parentID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if actor.ID == "" {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Authentication required", "")
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Comment text must not be empty", "")
	}

	if _, err := s.entities.FindByID(ctx, parentID); err != nil {
		return nil, storeError(s.metrics, err, notFoundMessage(s.def))
	}

	comment := &domain.Comment{
		ID:        uuid.NewString(),
		ParentID:  parentID,
		Author:    actor.ID,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, storeError(s.metrics, err, "Comment not found")
	}

	if s.metrics != nil {
		s.metrics.IncrementCommentCreated(s.def.Name)
	}
	s.logger.Info("comment created",
		zap.String("domain", s.def.Name),
		zap.String("parent_id", parentID),
		zap.String("id", comment.ID))

	return dto.ToCommentResponse(comment), nil
}

// Update edits a comment's text. Admins may edit any comment; everyone else
// only their own. Edits are marked with an EditedAt stamp.
func (s *commentServiceImpl) Update(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Comment text must not be empty", "")
	}

	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(s.metrics, err, "Comment not found")
	}

	if !policy.CanMutateComment(actor, *comment) {
		return nil, response.NewAppError(response.ErrCodeForbidden, "You may only edit your own comments", "")
	}

	now := time.Now().UTC()
	comment.Text = req.Text
	comment.EditedAt = &now

	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, storeError(s.metrics, err, "Comment not found")
	}

	return dto.ToCommentResponse(comment), nil
}

// Delete removes a comment, subject to the same ownership rule as Update.
func (s *commentServiceImpl) Delete(ctx context.Context, actor domain.Actor, id string) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return storeError(s.metrics, err, "Comment not found")
	}

	if !policy.CanMutateComment(actor, *comment) {
		return response.NewAppError(response.ErrCodeForbidden, "You may only delete your own comments", "")
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return storeError(s.metrics, err, "Comment not found")
	}
	return nil
}
