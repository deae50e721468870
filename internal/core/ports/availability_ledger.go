package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// AvailabilityLedger is the durable record of which drivers want to receive
// assignments. Writes are last-writer-wins since the flag reflects live
// operator intent. The ledger stores the availability flag and the last
// position only; "not already on an active order" is derived from order rows
// at dispatch time, never cached here.
type AvailabilityLedger interface {
	// SetAvailable marks a driver eligible or ineligible for future dispatch,
	// overwriting any previous flag. The position, when non-nil, replaces the
	// last position known to the ledger.
	SetAvailable(ctx context.Context, driverID kernel.UUID, available bool, lastPosition *kernel.GeoPoint) error

	// UpdatePosition refreshes the last position for a driver without
	// touching the availability flag. A driver with no record yet gets one
	// with the flag unset.
	UpdatePosition(ctx context.Context, driverID kernel.UUID, position kernel.GeoPoint) error

	// Get retrieves a driver's availability record.
	// Returns errs.ObjectNotFoundError if the driver has no record.
	Get(ctx context.Context, driverID kernel.UUID) (driver.AvailabilityRecord, error)

	// AvailableIDs returns the ids of all drivers whose flag is set.
	AvailableIDs(ctx context.Context) ([]kernel.UUID, error)
}
