package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// UpdateLocationCommandHandler records a driver's position in the location
// tracker and mirrors it into the availability ledger, so the ledger's last
// positions stay in step with live reports.
//
// Example:
//
//	handler := NewUpdateLocationCommandHandler(tracker, ledger)
//	cmd, _ := NewUpdateLocationCommand(driverID, 1.0010, 1.0)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("location update failed: %w", err)
//	}
type UpdateLocationCommandHandler struct {
	tracker *services.LocationTracker
	ledger  ports.AvailabilityLedger
}

// NewUpdateLocationCommandHandler creates a handler for position reports.
func NewUpdateLocationCommandHandler(
	tracker *services.LocationTracker,
	ledger ports.AvailabilityLedger,
) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		tracker: tracker,
		ledger:  ledger,
	}
}

// Handle validates the report, upserts it into the tracker (write-through to
// the durable mirror) and mirrors the position to the availability ledger.
// Out-of-range coordinates and mirror failures surface to the caller; nothing
// is silently dropped.
func (h UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	location, err := h.tracker.Upsert(ctx, cmd.DriverID(), cmd.Latitude(), cmd.Longitude())
	if err != nil {
		return err
	}

	return h.ledger.UpdatePosition(ctx, cmd.DriverID(), location.Position())
}
