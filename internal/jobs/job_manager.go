package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/services"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dispatchRetryJob      *DispatchRetryJob
	staleLocationSweepJob *StaleLocationSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the dispatch dependencies and the location tracker to wire up job
// execution.
func NewJobManager(
	uowFactory commands.OrderUoWFactory,
	dispatchHandler commands.DispatchOrderCommandHandler,
	tracker *services.LocationTracker,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dispatchRetryJob:      NewDispatchRetryJob(uowFactory, dispatchHandler, logger),
		staleLocationSweepJob: NewStaleLocationSweepJob(tracker, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch retry job: %w", err)
	}

	if err := jm.staleLocationSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.dispatchRetryJob.Stop()
		return fmt.Errorf("failed to start stale location sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleLocationSweepJob.Stop()
	jm.dispatchRetryJob.Stop()
}
