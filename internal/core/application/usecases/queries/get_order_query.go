// Package queries contains read operations in the CQRS architecture.
// Query handlers read directly from the database or the location index,
// bypassing aggregate repositories, and return plain response structs.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order on behalf of an actor.
// Orders are visible only to their parties (customer, merchant, assigned
// driver) and admins; anyone else gets an access error even when the order
// exists.
//
// Example:
//
//	actor, _ := order.NewActor(userID, order.RoleCustomer)
//	query, _ := NewGetOrderQuery(orderID, actor)
//	response, err := NewGetOrderQueryHandler(db).Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order for an actor.
func NewGetOrderQuery(orderID kernel.UUID, actor order.Actor) (GetOrderQuery, error) {
	query := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(query.setOrderID(orderID), query.setActor(actor)); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the requesting identity.
func (q GetOrderQuery) Actor() order.Actor {
	return q.actor
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

func (q *GetOrderQuery) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}

// OrderItemResponse is one order line in a query response.
type OrderItemResponse struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// OrderResponse is the read model of an order, shared by the single-order
// and list queries.
type OrderResponse struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	MerchantID kernel.UUID
	DriverID   *kernel.UUID
	Pickup     kernel.GeoPoint
	Dropoff    kernel.GeoPoint
	Items      []OrderItemResponse
	Notes      string
	TotalPrice float64
	Status     order.Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
