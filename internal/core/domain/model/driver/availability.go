package driver

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrAvailabilityIsNotConstructed is returned when attempting to use an
// improperly initialized AvailabilityRecord.
var ErrAvailabilityIsNotConstructed = errs.NewValueIsRequiredError(
	"availability record must be created via NewAvailabilityRecord constructor")

// AvailabilityRecord is a driver's durable dispatch-eligibility flag with the
// last position the ledger saw for them. The flag reflects live operator
// intent and is always overwritten by the latest write; eligibility for an
// actual assignment additionally requires the driver not to be on an active
// order, which is derived at dispatch time rather than cached here.
type AvailabilityRecord struct {
	driverID     kernel.UUID
	isAvailable  bool
	lastPosition *kernel.GeoPoint
	guard        guard.ConstructorGuard
}

// NewAvailabilityRecord creates a new AvailabilityRecord with validation.
//
// Parameters:
//   - driverID: The driver's ID (must be a valid UUID)
//   - isAvailable: Whether the driver wants to receive assignments
//   - lastPosition: The last position known to the ledger (nil if never reported)
//
// Returns:
//   - AvailabilityRecord: A valid record
//   - error: Validation error if any parameter is invalid
func NewAvailabilityRecord(
	driverID kernel.UUID,
	isAvailable bool,
	lastPosition *kernel.GeoPoint,
) (AvailabilityRecord, error) {
	record := AvailabilityRecord{
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		record.setDriverID(driverID),
		record.setLastPosition(lastPosition),
	); err != nil {
		return AvailabilityRecord{}, err
	}

	return record, nil
}

// Validate checks if the record was properly constructed using the constructor.
func (r AvailabilityRecord) Validate() error {
	return r.guard.Validate(ErrAvailabilityIsNotConstructed)
}

// DriverID returns the driver's ID.
func (r AvailabilityRecord) DriverID() kernel.UUID {
	return r.driverID
}

// IsAvailable reports whether the driver wants to receive assignments.
func (r AvailabilityRecord) IsAvailable() bool {
	return r.isAvailable
}

// LastPosition returns the last position known to the ledger.
// Returns nil if the driver never reported one.
func (r AvailabilityRecord) LastPosition() *kernel.GeoPoint {
	return r.lastPosition
}

func (r *AvailabilityRecord) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	r.driverID = driverID
	return nil
}

func (r *AvailabilityRecord) setLastPosition(lastPosition *kernel.GeoPoint) error {
	if lastPosition == nil {
		return nil
	}
	if err := lastPosition.Validate(); err != nil {
		return err
	}
	r.lastPosition = lastPosition
	return nil
}
