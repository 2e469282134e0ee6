package jobs

import (
	"context"
	"log/slog"
	"time"

	"aidmatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// staleCutoff is the age past which an unclaimed pending request is counted
// as stale in the periodic report.
const staleCutoff = 30 * time.Minute

// PendingPoolReportJob periodically logs the size of the pending pool and how
// many requests have sat unclaimed past the stale cutoff. The job is strictly
// read-only: matching is pull-based, volunteers discover work through the
// nearby-requests query, and no scheduler ever assigns a request.
type PendingPoolReportJob struct {
	requestRepo ports.RequestRepository
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewPendingPoolReportJob creates a job that reports pending pool gauges once a minute.
func NewPendingPoolReportJob(requestRepo ports.RequestRepository, logger *slog.Logger) *PendingPoolReportJob {
	return &PendingPoolReportJob{
		requestRepo: requestRepo,
		cron:        cron.New(),
		logger:      logger.With("component", "pending_pool_report_job"),
	}
}

// Start begins the report job to run every minute.
func (j *PendingPoolReportJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		pending, err := j.requestRepo.CountPending(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending pool report failed", "error", err)
			return
		}

		stale, err := j.requestRepo.CountPendingOlderThan(ctx, time.Now().UTC().Add(-staleCutoff))
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending pool report failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Pending pool report",
			"pending", pending,
			"stale", stale,
			"stale_cutoff", staleCutoff.String(),
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending pool report job started (running every minute)")
	return nil
}

// Stop stops the report job.
func (j *PendingPoolReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending pool report job stopped")
}
