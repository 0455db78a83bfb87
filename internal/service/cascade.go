package service

import (
	"context"

	"go.uber.org/zap"

	"course-hub-api/internal/metrics"
	"course-hub-api/internal/repository"
)

// Cascade removes an entity together with its comment thread. The two
// collections cannot be deleted in one transaction when the store is a pair
// of flat files, so the entity goes first: once it is gone its comments are
// unreachable through the API, and any left behind by a partial failure are
// picked up by SweepOrphans.
type Cascade struct {
	entities repository.EntityRepository
	comments repository.CommentRepository
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewCascade creates a cascade for one domain's entity and comment pair.
func NewCascade(
	entities repository.EntityRepository,
	comments repository.CommentRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Cascade {
	return &Cascade{
		entities: entities,
		comments: comments,
		metrics:  m,
		logger:   logger,
	}
}

// DeleteEntityWithComments deletes the entity, then its comments one by one.
// Comment failures are logged and tolerated; the call only fails when the
// entity itself cannot be deleted.
func (c *Cascade) DeleteEntityWithComments(ctx context.Context, entityID string) error {
	def := c.entities.Definition()

	if err := c.entities.Delete(ctx, entityID); err != nil {
		return storeError(c.metrics, err, notFoundMessage(def))
	}

	comments, err := c.comments.FindByParent(ctx, entityID)
	if err != nil {
		c.logger.Warn("failed to list comments for cascade, leaving orphans for sweep",
			zap.String("domain", def.Name),
			zap.String("entity_id", entityID),
			zap.Error(err))
		comments = nil
	}

	for _, comment := range comments {
		if err := c.comments.Delete(ctx, comment.ID); err != nil {
			c.logger.Warn("failed to delete comment during cascade, leaving orphan for sweep",
				zap.String("domain", def.Name),
				zap.String("entity_id", entityID),
				zap.String("comment_id", comment.ID),
				zap.Error(err))
		}
	}

	if c.metrics != nil {
		c.metrics.IncrementCascadeDelete(def.Name)
	}
	c.logger.Info("entity deleted with comment cascade",
		zap.String("domain", def.Name),
		zap.String("entity_id", entityID),
		zap.Int("comments", len(comments)))

	return nil
}

// SweepOrphans deletes comments whose parent entity no longer exists and
// returns how many were removed. It backs the periodic cleanup job.
func (c *Cascade) SweepOrphans(ctx context.Context) (int, error) {
	def := c.entities.Definition()

	entities, err := c.entities.FindAll(ctx, repository.ListQuery{})
	if err != nil {
		return 0, storeError(c.metrics, err, "")
	}
	alive := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		alive[e.ID] = struct{}{}
	}

	comments, err := c.comments.FindAll(ctx)
	if err != nil {
		return 0, storeError(c.metrics, err, "")
	}

	swept := 0
	for _, comment := range comments {
		if _, ok := alive[comment.ParentID]; ok {
			continue
		}
		if err := c.comments.Delete(ctx, comment.ID); err != nil {
			c.logger.Warn("failed to sweep orphaned comment",
				zap.String("domain", def.Name),
				zap.String("comment_id", comment.ID),
				zap.Error(err))
			continue
		}
		swept++
	}

	if swept > 0 {
		if c.metrics != nil {
			c.metrics.AddOrphansSwept(swept)
		}
		c.logger.Info("swept orphaned comments",
			zap.String("domain", def.Name),
			zap.Int("count", swept))
	}

	return swept, nil
}
