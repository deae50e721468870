package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// RemoveLocationCommandHandler deletes a driver's position from the tracker
// and its durable mirror when the driver goes offline.
type RemoveLocationCommandHandler struct {
	tracker *services.LocationTracker
}

// NewRemoveLocationCommandHandler creates a handler for offline transitions.
func NewRemoveLocationCommandHandler(tracker *services.LocationTracker) RemoveLocationCommandHandler {
	return RemoveLocationCommandHandler{tracker: tracker}
}

// Handle removes the driver's entry. The operation is idempotent; only
// mirror failures surface as errors.
func (h RemoveLocationCommandHandler) Handle(ctx context.Context, cmd RemoveLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.tracker.Remove(ctx, cmd.DriverID())
	return err
}
