package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DispatchRetryJob periodically retries assignment for orders still waiting
// for a driver. Orders stay in created status when no eligible driver was
// around at creation time; this job gives them another chance every second.
type DispatchRetryJob struct {
	uowFactory commands.OrderUoWFactory
	handler    commands.DispatchOrderCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewDispatchRetryJob creates a job that sweeps unassigned orders through
// DispatchOrderCommandHandler every second.
func NewDispatchRetryJob(
	uowFactory commands.OrderUoWFactory,
	handler commands.DispatchOrderCommandHandler,
	logger *slog.Logger,
) *DispatchRetryJob {
	return &DispatchRetryJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "dispatch_retry_job"),
	}
}

// Start begins the dispatch retry job to run every second.
func (j *DispatchRetryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Dispatch retry job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch retry job started (running every second)")
	return nil
}

// Stop stops the dispatch retry job.
func (j *DispatchRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch retry job stopped")
}

// run performs one sweep: load the ids of orders waiting for a driver, then
// attempt a dispatch for each. The read uses its own unit of work; each
// dispatch attempt manages its own transaction inside the handler.
func (j *DispatchRetryJob) run(ctx context.Context) error {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.OrderRepository().GetAllInCreatedStatus(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range pending {
		cmd, err := commands.NewDispatchOrderCommand(aggregate.ID())
		if err != nil {
			return err
		}

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			// Expected business scenarios: another dispatcher got there
			// first, or the order vanished between the read and the attempt.
			if errors.Is(err, commands.ErrOrderAlreadyDispatched) || errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			j.logger.ErrorContext(ctx, "Dispatch attempt failed",
				"order_id", aggregate.ID().String(), "error", err)
			continue
		}

		if result.Assigned {
			j.logger.InfoContext(ctx, "Order assigned to driver",
				"order_id", aggregate.ID().String(),
				"driver_id", result.DriverID.String())
		}
	}

	return nil
}
