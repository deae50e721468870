package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRemoveLocationCommandIsNotConstructed = errors.New(
	"RemoveLocationCommand must be created via NewRemoveLocationCommand constructor",
)

// RemoveLocationCommand represents a driver going offline: their position is
// deleted from the tracker and its mirror. Removing an absent driver is a
// no-op, so repeated calls are safe.
type RemoveLocationCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveLocationCommand creates a command removing a driver's position.
func NewRemoveLocationCommand(driverID kernel.UUID) (RemoveLocationCommand, error) {
	command := RemoveLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setDriverID(driverID); err != nil {
		return RemoveLocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveLocationCommand) Validate() error {
	return c.guard.Validate(ErrRemoveLocationCommandIsNotConstructed)
}

// DriverID returns the driver going offline.
func (c RemoveLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *RemoveLocationCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
