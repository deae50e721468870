package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// SetAvailabilityCommandHandler persists a driver's dispatch-eligibility flag
// in the availability ledger. When the tracker holds a fresh position for the
// driver it is passed along, so a driver flipping available right after a
// position report is immediately dispatchable.
type SetAvailabilityCommandHandler struct {
	ledger  ports.AvailabilityLedger
	tracker *services.LocationTracker
}

// NewSetAvailabilityCommandHandler creates a handler for availability toggles.
func NewSetAvailabilityCommandHandler(
	ledger ports.AvailabilityLedger,
	tracker *services.LocationTracker,
) SetAvailabilityCommandHandler {
	return SetAvailabilityCommandHandler{
		ledger:  ledger,
		tracker: tracker,
	}
}

// Handle overwrites the driver's availability flag. A missing tracker entry
// is not an error; the ledger just keeps whatever position it had.
func (h SetAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var lastPosition *kernel.GeoPoint
	location, err := h.tracker.Get(cmd.DriverID())
	switch {
	case err == nil:
		position := location.Position()
		lastPosition = &position
	case errors.Is(err, errs.ErrObjectNotFound):
		// No fresh position; fine.
	default:
		return err
	}

	return h.ledger.SetAvailable(ctx, cmd.DriverID(), cmd.Available(), lastPosition)
}
