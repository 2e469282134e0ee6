// Package jobs provides scheduled background tasks for the matching engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PendingPoolReportJob - Runs every minute to log the size of the pending
// pool and the number of requests unclaimed past the stale cutoff
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(requestRepo, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Design Notes
//
// All jobs are read-only. Matching is strictly pull-based: volunteers
// discover work through the nearby-requests query and claim it themselves.
// No background job ever assigns a request to a volunteer.
package jobs
