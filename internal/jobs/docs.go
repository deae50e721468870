// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the dispatch service.
//
// # Available Jobs
//
// 1. DispatchRetryJob - Runs every second to retry driver assignment for orders still in created status
// 2. StaleLocationSweepJob - Runs every minute to evict driver positions older than the staleness window
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(uowFactory, dispatchHandler, tracker, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Retry job ignores expected business outcomes (order already dispatched, order gone, no eligible driver)
// - Sweep job logs pruning failures as they indicate mirror issues
// - Failed job starts will stop any already running jobs
package jobs
