package jobs

import (
	"fmt"
	"log/slog"

	"aidmatch/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	pendingPoolReportJob *PendingPoolReportJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(requestRepo ports.RequestRepository, logger *slog.Logger) *JobManager {
	return &JobManager{
		pendingPoolReportJob: NewPendingPoolReportJob(requestRepo, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.pendingPoolReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start pending pool report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pendingPoolReportJob.Stop()
}
