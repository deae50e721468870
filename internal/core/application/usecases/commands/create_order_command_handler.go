package commands

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// autoDispatchTimeout bounds the lifetime of a fire-and-forget dispatch
// attempt so background work never leaks past shutdown indefinitely.
const autoDispatchTimeout = 30 * time.Second

// OrderDispatcherPort is the dispatch workflow consumed by order creation.
// Satisfied by DispatchOrderCommandHandler.
type OrderDispatcherPort interface {
	Handle(ctx context.Context, cmd DispatchOrderCommand) (DispatchResult, error)
}

// CreateOrderCommandHandler handles the business logic for order creation.
// The order is persisted in created status, then a dispatch attempt runs in
// the background: its failure is logged, never surfaced to the creator, so
// order creation succeeds whenever the order record itself was written.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, dispatchHandler, logger)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created is persisted; assignment happens asynchronously
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher OrderDispatcherPort
	logger     *slog.Logger

	inFlight *sync.WaitGroup
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// Requires an OrderUoWFactory for transactional persistence, the dispatch
// workflow for the automatic post-creation attempt, and a logger serving as
// the background attempt's error sink.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher OrderDispatcherPort,
	logger *slog.Logger,
) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger,
		inFlight:   &sync.WaitGroup{},
	}
}

// Handle persists the new order and kicks off the background dispatch
// attempt. Returns the created aggregate.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.MerchantID(),
		cmd.Pickup(),
		cmd.Dropoff(),
		cmd.Items(),
		cmd.Notes(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.dispatchInBackground(cmd.OrderID())

	return aggregate, nil
}

// Wait blocks until all in-flight background dispatch attempts finish.
// Called during graceful shutdown; each attempt is bounded by
// autoDispatchTimeout so the wait cannot hang indefinitely.
func (h *CreateOrderCommandHandler) Wait() {
	h.inFlight.Wait()
}

// dispatchInBackground runs the automatic dispatch attempt on a detached
// context. The attempt has its own error sink: failures and lost races are
// logged, and a no-drivers outcome leaves the order created for the retry
// job.
func (h *CreateOrderCommandHandler) dispatchInBackground(id kernel.UUID) {
	orderID := id.String()

	dispatchCmd, err := NewDispatchOrderCommand(id)
	if err != nil {
		h.logger.Error("auto dispatch command rejected", "orderID", orderID, "error", err)
		return
	}

	h.inFlight.Add(1)
	go func() {
		defer h.inFlight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), autoDispatchTimeout)
		defer cancel()

		result, err := h.dispatcher.Handle(ctx, dispatchCmd)
		switch {
		case errors.Is(err, ErrOrderAlreadyDispatched):
			h.logger.Info("auto dispatch lost the race", "orderID", orderID)
		case err != nil:
			h.logger.Error("auto dispatch failed", "orderID", orderID, "error", err)
		case !result.Assigned:
			h.logger.Info("no eligible drivers, order stays created", "orderID", orderID)
		default:
			h.logger.Info("order auto dispatched",
				"orderID", orderID, "driverID", result.DriverID.String())
		}
	}()
}
