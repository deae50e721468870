package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand represents a driver's live position report.
// Coordinate bounds are checked by the location tracker, so an out-of-range
// pair fails the handler, not command construction.
type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	driverID  kernel.UUID
	latitude  float64
	longitude float64

	guard guard.ConstructorGuard
}

// NewUpdateLocationCommand creates a command carrying a position report.
// Validates the driver ID; the coordinates travel as raw degrees.
func NewUpdateLocationCommand(driverID kernel.UUID, latitude, longitude float64) (UpdateLocationCommand, error) {
	command := UpdateLocationCommand{
		latitude:  latitude,
		longitude: longitude,
		guard:     guard.NewConstructorGuard(),
	}

	if err := command.setDriverID(driverID); err != nil {
		return UpdateLocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

// DriverID returns the reporting driver's ID.
func (c UpdateLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Latitude returns the reported latitude in decimal degrees.
func (c UpdateLocationCommand) Latitude() float64 {
	return c.latitude
}

// Longitude returns the reported longitude in decimal degrees.
func (c UpdateLocationCommand) Longitude() float64 {
	return c.longitude
}

func (c *UpdateLocationCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
