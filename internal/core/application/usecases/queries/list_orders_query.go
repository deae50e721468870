package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves the orders visible to an actor. Admins see every
// order; customers, merchants and drivers see only orders where they are the
// respective party.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	actor order.Actor

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query to list an actor's orders.
func NewListOrdersQuery(actor order.Actor) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Actor returns the requesting identity.
func (q ListOrdersQuery) Actor() order.Actor {
	return q.actor
}
