package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDriverAlreadySet is returned when attempting to assign a driver to an
	// order that already carries one. The driver reference is set exactly once.
	ErrDriverAlreadySet = errors.New("order already has a driver assigned")
)

// Order represents a delivery order in the system. It is the aggregate root that
// manages the order lifecycle from creation through dispatch to completion.
//
// Order follows these invariants:
//   - Must have valid unique identifiers for the order, customer and merchant
//   - Must have valid pickup and dropoff points
//   - Must contain at least one item; total price is the sum of item subtotals
//   - Status transitions follow the lifecycle ordering guard and role table
//   - driver reference is set exactly once, upon acceptance, and is retained
//     for audit when the order is cancelled
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the user who placed the order
	customerID kernel.UUID

	// merchantID identifies the business fulfilling the order
	merchantID kernel.UUID

	// driverID is the assigned driver's ID (nil if unassigned)
	driverID *kernel.UUID

	// pickup is where the driver collects the order
	pickup kernel.GeoPoint

	// dropoff is the delivery destination
	dropoff kernel.GeoPoint

	// items are the order lines; at least one is required
	items []Item

	// notes carries optional free-form delivery instructions
	notes string

	// totalPrice is the sum of item subtotals, fixed at creation
	totalPrice float64

	// status represents the current state in the order lifecycle
	status Status

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order instance with validation. The order starts in
// Created status with no driver assigned, and its total price is computed here
// as the sum of quantity multiplied by unit price over all items.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - customerID: The ordering user's ID (must be a valid UUID)
//   - merchantID: The fulfilling business's ID (must be a valid UUID)
//   - pickup: Collection point (must be a valid GeoPoint)
//   - dropoff: Delivery destination (must be a valid GeoPoint)
//   - items: Order lines (at least one, each constructed via NewItem)
//   - notes: Optional delivery instructions (may be empty)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
//
// Example:
//
//	pickup, _ := kernel.NewGeoPoint(1.0010, 1.0)
//	dropoff, _ := kernel.NewGeoPoint(1.0050, 1.0)
//	item, _ := order.NewItem("ramen", 2, 5.00)
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, merchantID,
//		pickup, dropoff, []order.Item{item}, "")
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	merchantID kernel.UUID,
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	items []Item,
	notes string,
) (*Order, error) {
	now := time.Now().UTC()

	order := &Order{
		status:    Created,
		notes:     notes,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setMerchantID(merchantID),
		order.setPickup(pickup),
		order.setDropoff(dropoff),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	order.totalPrice = 0
	for _, item := range order.items {
		order.totalPrice += item.Subtotal()
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persisted state without re-running
// creation-time defaults. All fields are taken as stored, including the status,
// the driver reference, the total price and the timestamps.
//
// This constructor is intended for the persistence layer only; it still
// validates identifiers, points and items so corrupted rows surface as errors
// rather than invalid aggregates.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	merchantID kernel.UUID,
	driverID *kernel.UUID,
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	items []Item,
	notes string,
	totalPrice float64,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		notes:      notes,
		totalPrice: totalPrice,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setMerchantID(merchantID),
		order.setDriverID(driverID),
		order.setPickup(pickup),
		order.setDropoff(dropoff),
		order.setItems(items),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering user's ID.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// MerchantID returns the fulfilling business's ID.
func (o *Order) MerchantID() kernel.UUID {
	return o.merchantID
}

// Driver returns the assigned driver's ID.
// Returns nil if no driver is assigned.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Pickup returns the collection point.
func (o *Order) Pickup() kernel.GeoPoint {
	return o.pickup
}

// Dropoff returns the delivery destination.
func (o *Order) Dropoff() kernel.GeoPoint {
	return o.dropoff
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Notes returns the optional delivery instructions.
func (o *Order) Notes() string {
	return o.notes
}

// TotalPrice returns the order total, fixed at creation.
func (o *Order) TotalPrice() float64 {
	return o.totalPrice
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last status change.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsParty reports whether the actor is a party to the order: its customer,
// its merchant, its assigned driver, or an admin.
func (o *Order) IsParty(actor Actor) bool {
	if actor.Role() == RoleAdmin {
		return true
	}

	switch actor.Role() {
	case RoleCustomer:
		return actor.ID().IsEqual(o.customerID)
	case RoleMerchant:
		return actor.ID().IsEqual(o.merchantID)
	case RoleDriver:
		return o.driverID != nil && actor.ID().IsEqual(*o.driverID)
	default:
		return false
	}
}

// Accept assigns the order to a driver and moves it to Accepted. This is the
// dispatch path: the driver reference transitions nil -> set exactly once.
//
// This method enforces the following business rules:
//   - The driver ID must be valid
//   - The order must not already carry a driver
//   - The order must be in Created status
//
// Returns:
//   - nil on successful assignment
//   - error if the driver ID is invalid, a driver is already set, or the
//     lifecycle ordering guard rejects the transition
//
// Concurrent dispatch attempts are arbitrated by the persistence layer's
// conditional write on status; this method expresses the same rule in memory.
func (o *Order) Accept(driverID kernel.UUID) error {
	if err := errors.Join(o.Validate(), driverID.Validate()); err != nil {
		return err
	}

	if o.driverID != nil {
		return fmt.Errorf("%w: %s", ErrDriverAlreadySet, o.driverID)
	}

	if err := o.status.CanTransitionTo(Accepted); err != nil {
		return err
	}

	o.status = Accepted
	o.driverID = &driverID
	o.updatedAt = time.Now().UTC()
	return nil
}

// TransitionTo moves the order to the target status on behalf of an actor.
//
// Legality is checked in a fixed sequence:
//  1. party membership — the actor must be the order's customer, merchant,
//     assigned driver, or an admin (ErrActorNotParty)
//  2. role permission — the actor's role must be allowed to set the target
//     status per the static permission table (ErrRoleForbidden)
//  3. ordering guard — the status rank must strictly increase for any
//     non-cancel target, and terminal states permit no exit
//     (ErrInvalidTransition)
//
// The party check runs before the role check, so an outsider with a powerful
// role still fails with ErrActorNotParty. The driver reference is never
// modified here; cancellation retains it for audit.
//
// Example:
//
//	actor, _ := order.NewActor(merchantID, order.RoleMerchant)
//	err := o.TransitionTo(order.Preparing, actor)
//	if err != nil {
//	    // Forbidden, not a party, or illegal ordering
//	}
func (o *Order) TransitionTo(target Status, actor Actor) error {
	if err := errors.Join(o.Validate(), actor.Validate(), target.Validate()); err != nil {
		return err
	}

	if !o.IsParty(actor) {
		return fmt.Errorf("%w: user %s on order %s", ErrActorNotParty, actor.ID(), o.id)
	}

	if err := actor.Role().MaySet(target); err != nil {
		return err
	}

	if err := o.status.CanTransitionTo(target); err != nil {
		return err
	}

	o.status = target
	o.updatedAt = time.Now().UTC()
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("order id: %w", err)
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return fmt.Errorf("customer id: %w", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setMerchantID(merchantID kernel.UUID) error {
	if err := merchantID.Validate(); err != nil {
		return fmt.Errorf("merchant id: %w", err)
	}
	o.merchantID = merchantID
	return nil
}

// setDriverID accepts nil for unassigned orders; a non-nil reference must be
// a valid UUID. Used only when restoring from persistence.
func (o *Order) setDriverID(driverID *kernel.UUID) error {
	if driverID == nil {
		return nil
	}
	if err := driverID.Validate(); err != nil {
		return fmt.Errorf("driver id: %w", err)
	}
	o.driverID = driverID
	return nil
}

func (o *Order) setPickup(pickup kernel.GeoPoint) error {
	if err := pickup.Validate(); err != nil {
		return fmt.Errorf("pickup: %w", err)
	}
	o.pickup = pickup
	return nil
}

func (o *Order) setDropoff(dropoff kernel.GeoPoint) error {
	if err := dropoff.Validate(); err != nil {
		return fmt.Errorf("dropoff: %w", err)
	}
	o.dropoff = dropoff
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	validated := make([]Item, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		validated[i] = item
	}

	o.items = validated
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
