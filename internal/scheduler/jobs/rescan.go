// Package jobs implements the concrete scheduled jobs.
package jobs

import (
	"context"
	"fmt"

	"github.com/moriq/kabuscan/internal/ranking"
	"github.com/moriq/kabuscan/pkg/logger"
)

// RescanJob refreshes the ranking every trading day after the TSE close
// (15:30), so the evening review always sees today's bars.
// ⭐ SSOT: 日次リスキャンのスケジュールはこのJobだけ
type RescanJob struct {
	service *ranking.Service
	logger  *logger.Logger
}

// NewRescanJob creates a new daily rescan job
func NewRescanJob(service *ranking.Service, log *logger.Logger) *RescanJob {
	return &RescanJob{
		service: service,
		logger:  log,
	}
}

// Name returns the job name
func (j *RescanJob) Name() string {
	return "daily_rescan"
}

// Schedule returns the cron schedule (16:00 JST, Mon-Fri)
func (j *RescanJob) Schedule() string {
	return "0 0 16 * * MON-FRI"
}

// Run executes the universe rescan
func (j *RescanJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled universe rescan")

	ranked, started, err := j.service.Rescan(ctx, nil)
	if !started {
		j.logger.Warn("Rescan already running, skipping scheduled run")
		return nil
	}
	if err != nil {
		return fmt.Errorf("universe rescan: %w", err)
	}

	j.logger.WithField("scored", len(ranked)).Info("Scheduled rescan completed")
	return nil
}
