package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetAvailabilityCommandIsNotConstructed = errors.New(
	"SetAvailabilityCommand must be created via NewSetAvailabilityCommand constructor",
)

// SetAvailabilityCommand represents a driver toggling their dispatch
// eligibility. The flag reflects live operator intent; the last writer wins.
type SetAvailabilityCommand struct { //nolint:recvcheck //using for validation
	driverID  kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewSetAvailabilityCommand creates a command toggling dispatch eligibility.
func NewSetAvailabilityCommand(driverID kernel.UUID, available bool) (SetAvailabilityCommand, error) {
	command := SetAvailabilityCommand{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := command.setDriverID(driverID); err != nil {
		return SetAvailabilityCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SetAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAvailabilityCommandIsNotConstructed)
}

// DriverID returns the driver toggling availability.
func (c SetAvailabilityCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Available reports whether the driver wants to receive assignments.
func (c SetAvailabilityCommand) Available() bool {
	return c.available
}

func (c *SetAvailabilityCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
