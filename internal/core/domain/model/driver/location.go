package driver

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// DefaultStalenessWindow is how long a reported position counts as fresh.
// Positions older than this are excluded from lookups and proximity queries
// and eventually evicted.
const DefaultStalenessWindow = 5 * time.Minute

// ErrLocationIsNotConstructed is returned when attempting to use an improperly
// initialized Location. Locations must be created via the NewLocation constructor.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"driver location must be created via NewLocation constructor")

// Location is a driver's last known position stamped with the wall-clock time
// it was reported. Location is an immutable value object; each new report for
// a driver replaces the previous one wholesale.
type Location struct {
	driverID  kernel.UUID
	position  kernel.GeoPoint
	updatedAt time.Time
	guard     guard.ConstructorGuard
}

// NewLocation creates a new Location with validation.
//
// Parameters:
//   - driverID: The reporting driver's ID (must be a valid UUID)
//   - position: The reported coordinates (must be a valid GeoPoint)
//   - updatedAt: Wall-clock time of the report (must not be zero)
//
// Returns:
//   - Location: A valid position record
//   - error: Validation error if any parameter is invalid
func NewLocation(driverID kernel.UUID, position kernel.GeoPoint, updatedAt time.Time) (Location, error) {
	location := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		location.setDriverID(driverID),
		location.setPosition(position),
		location.setUpdatedAt(updatedAt),
	); err != nil {
		return Location{}, err
	}

	return location, nil
}

// Validate checks if the Location was properly constructed using the constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// DriverID returns the reporting driver's ID.
func (l Location) DriverID() kernel.UUID {
	return l.driverID
}

// Position returns the reported coordinates.
func (l Location) Position() kernel.GeoPoint {
	return l.position
}

// UpdatedAt returns the wall-clock time of the report.
func (l Location) UpdatedAt() time.Time {
	return l.updatedAt
}

// IsFresh reports whether the position was reported within the staleness
// window, measured backwards from now. A position exactly at the window edge
// is stale.
func (l Location) IsFresh(now time.Time, window time.Duration) bool {
	return now.Sub(l.updatedAt) < window
}

func (l *Location) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	l.driverID = driverID
	return nil
}

func (l *Location) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}
	l.position = position
	return nil
}

func (l *Location) setUpdatedAt(updatedAt time.Time) error {
	if updatedAt.IsZero() {
		return errs.NewValueIsRequiredError("updatedAt")
	}
	l.updatedAt = updatedAt
	return nil
}
