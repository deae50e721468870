package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities,
// plus the conditional writes that arbitrate concurrent dispatch and
// concurrent status transitions.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInCreatedStatus retrieves orders still waiting for a driver,
	// oldest first. Used by the dispatch retry job.
	GetAllInCreatedStatus(ctx context.Context) ([]*order.Order, error)

	// ActiveDriverIDs returns the driver ids of all orders whose status is
	// active (accepted, preparing or picked_up). Computed over durable rows
	// on every call; dispatch subtracts this set from the available set.
	ActiveDriverIDs(ctx context.Context) ([]kernel.UUID, error)

	// AcceptIfCreated conditionally assigns a driver: it sets the order to
	// accepted with the given driver only if the stored status is still
	// created. Returns true if the write landed, false if a concurrent
	// dispatcher won the race. This is the exclusivity boundary for
	// double-dispatch prevention.
	AcceptIfCreated(ctx context.Context, orderID kernel.UUID, driverID kernel.UUID) (bool, error)

	// UpdateIfStatus conditionally persists the aggregate's current state
	// only if the stored status still equals expected. Returns false when a
	// concurrent transition got there first, so losers fail deterministically
	// instead of clobbering.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) (bool, error)
}
