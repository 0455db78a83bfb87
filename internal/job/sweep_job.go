package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"course-hub-api/internal/service"
)

// SweepJob removes comments whose parent entity no longer exists. A
// cascade delete tolerates individual comment failures, so over time the
// store can accumulate orphans. The job walks every course domain.
type SweepJob struct {
	cascades []*service.Cascade
	timeout  time.Duration
	logger   *zap.Logger
}

// NewSweepJob creates a new SweepJob instance
func NewSweepJob(cascades []*service.Cascade, logger *zap.Logger) *SweepJob {
	return &SweepJob{
		cascades: cascades,
		timeout:  30 * time.Second,
		logger:   logger,
	}
}

// Run executes one sweep across all domains. Satisfies cron.Job.
func (j *SweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	j.logger.Info("Starting orphaned comment sweep",
		zap.Int("domains", len(j.cascades)),
	)

	total := 0
	failed := 0
	for _, cascade := range j.cascades {
		swept, err := cascade.SweepOrphans(ctx)
		if err != nil {
			// One domain failing should not stop the others.
			j.logger.Error("Sweep failed for domain",
				zap.Error(err),
			)
			failed++
			continue
		}
		total += swept
	}

	j.logger.Info("Orphaned comment sweep completed",
		zap.Int("swept", total),
		zap.Int("failed_domains", failed),
	)
}
