package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// StaleLocationSweepJob periodically evicts stale driver positions from the
// location tracker. Nearby queries already prune lazily; the sweep bounds
// staleness for drivers nobody is querying.
type StaleLocationSweepJob struct {
	tracker *services.LocationTracker
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleLocationSweepJob creates a job that prunes stale locations once
// a minute.
func NewStaleLocationSweepJob(tracker *services.LocationTracker, logger *slog.Logger) *StaleLocationSweepJob {
	return &StaleLocationSweepJob{
		tracker: tracker,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stale_location_sweep_job"),
	}
}

// Start begins the sweep job to run at the top of every minute.
func (j *StaleLocationSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		pruned, err := j.tracker.Prune(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale location sweep failed", "error", err)
			return
		}

		if pruned > 0 {
			j.logger.InfoContext(ctx, "Pruned stale driver locations", "count", pruned)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale location sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *StaleLocationSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale location sweep job stopped")
}
