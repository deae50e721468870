package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ErrOrderAlreadyDispatched is returned when dispatch is attempted on an
// order that is no longer in created status, including the case where a
// concurrent dispatcher won the assignment race.
var ErrOrderAlreadyDispatched = errors.New("order already dispatched")

// DispatchOrderCommandHandler implements the assignment workflow: it derives
// the eligible driver set, resolves fresh positions, ranks candidates by
// distance from the pickup point and performs the exclusive assignment write.
//
// Eligibility is computed per call: the ledger's available set minus the
// driver ids of orders in an active status, read from durable rows. The
// conditional accept on the order row is the only hard exclusivity guarantee;
// a driver turning busy between the eligibility read and the write is an
// accepted best-effort window.
//
// Example:
//
//	handler := NewDispatchOrderCommandHandler(uowFactory, ledger, tracker)
//	cmd, _ := NewDispatchOrderCommand(orderID)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrOrderAlreadyDispatched):
//	    // Someone got there first
//	case err != nil:
//	    // Infrastructure failure
//	case !result.Assigned:
//	    // No eligible drivers; the order stays created
//	default:
//	    log.Printf("assigned to %s", result.DriverID)
//	}
type DispatchOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	ledger     ports.AvailabilityLedger
	tracker    *services.LocationTracker
	dispatcher services.DriverDispatcher
}

// NewDispatchOrderCommandHandler creates a handler for dispatch operations.
func NewDispatchOrderCommandHandler(
	uowFactory OrderUoWFactory,
	ledger ports.AvailabilityLedger,
	tracker *services.LocationTracker,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		tracker:    tracker,
		dispatcher: services.NewDriverDispatcher(),
	}
}

// Handle runs one dispatch attempt.
//
// Outcomes:
//   - order not found: errs.ObjectNotFoundError
//   - order not in created status: ErrOrderAlreadyDispatched
//   - no eligible driver with a fresh position: {Assigned: false}, nil error
//   - lost the conditional write race: ErrOrderAlreadyDispatched
//   - success: {Assigned: true, DriverID: nearest}
func (h DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return DispatchResult{}, err
	}

	if aggregate.Status() != order.Created {
		return DispatchResult{}, ErrOrderAlreadyDispatched
	}

	eligible, err := h.eligibleDrivers(ctx, orderRepo)
	if err != nil {
		return DispatchResult{}, err
	}

	locations := h.resolvePositions(eligible)

	best, err := h.dispatcher.SelectNearest(aggregate.Pickup(), locations)
	if errors.Is(err, services.ErrDriverNotFound) {
		// Normal outcome: the order stays created for a later retry.
		return DispatchResult{Assigned: false}, nil
	}
	if err != nil {
		return DispatchResult{}, err
	}

	driverID := best.Location.DriverID()

	accepted, err := orderRepo.AcceptIfCreated(ctx, aggregate.ID(), driverID)
	if err != nil {
		return DispatchResult{}, err
	}
	if !accepted {
		return DispatchResult{}, ErrOrderAlreadyDispatched
	}

	if err = uow.Commit(ctx); err != nil {
		return DispatchResult{}, err
	}

	return DispatchResult{Assigned: true, DriverID: &driverID}, nil
}

// eligibleDrivers subtracts drivers on active orders from the ledger's
// available set.
func (h DispatchOrderCommandHandler) eligibleDrivers(
	ctx context.Context,
	orderRepo ports.OrderRepository,
) ([]kernel.UUID, error) {
	available, err := h.ledger.AvailableIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, nil
	}

	active, err := orderRepo.ActiveDriverIDs(ctx)
	if err != nil {
		return nil, err
	}

	busy := make(map[kernel.UUID]struct{}, len(active))
	for _, id := range active {
		busy[id] = struct{}{}
	}

	eligible := make([]kernel.UUID, 0, len(available))
	for _, id := range available {
		if _, ok := busy[id]; !ok {
			eligible = append(eligible, id)
		}
	}

	return eligible, nil
}

// resolvePositions looks up fresh positions for the eligible drivers.
// Drivers that never reported, or whose entry went stale, are excluded from
// ranking rather than treated as errors.
func (h DispatchOrderCommandHandler) resolvePositions(eligible []kernel.UUID) []driver.Location {
	locations := make([]driver.Location, 0, len(eligible))
	for _, id := range eligible {
		location, err := h.tracker.Get(id)
		if err != nil {
			continue
		}
		locations = append(locations, location)
	}
	return locations
}
