package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/order"
)

// UpdateOrderStatusCommandHandler applies a role-gated status transition to
// an order. Serialization per order is achieved with an optimistic guard: the
// persisted write is conditioned on the status the transition was computed
// from, so exactly one of several concurrent attempts lands and the losers
// fail deterministically instead of clobbering.
//
// Example:
//
//	handler := NewUpdateOrderStatusCommandHandler(uowFactory)
//	cmd, _ := NewUpdateOrderStatusCommand(orderID, order.Preparing, merchant)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrActorNotParty):
//	    // 403: not this order's merchant
//	case errors.Is(err, order.ErrRoleForbidden):
//	    // 403: role may not set this status
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // 409: ordering guard, or a concurrent transition won
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{uowFactory: uowFactory}
}

// Handle loads the order, applies the transition through the aggregate and
// persists the result conditioned on the status it was computed from.
// Returns the updated aggregate on success.
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	expected := aggregate.Status()

	if err = aggregate.TransitionTo(cmd.Target(), cmd.Actor()); err != nil {
		return nil, err
	}

	updated, err := orderRepo.UpdateIfStatus(ctx, aggregate, expected)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("%w: concurrent transition won on order %s",
			order.ErrInvalidTransition, cmd.OrderID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
