package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a status change violates the lifecycle
// ordering guard: the rank of the target status must strictly increase for any
// non-cancel target, and no transition may leave a terminal status.
var ErrInvalidTransition = errors.New("status transition violates lifecycle ordering")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Created ──> Accepted ──> Preparing ──> PickedUp ──> Delivered
//	    │           │            │             │
//	    └───────────┴────────────┴─────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal; no transition leaves either.
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first placed.
	// Orders in this status are waiting to be dispatched to a driver.
	Created

	// Accepted indicates the order has been accepted and, when set through
	// dispatch, carries the assigned driver.
	Accepted

	// Preparing indicates the merchant is preparing the order.
	Preparing

	// PickedUp indicates the driver has collected the order.
	PickedUp

	// Delivered indicates the order reached its dropoff point.
	// This is a terminal state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was abandoned before delivery.
	// Reachable from any non-terminal state; terminal itself.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Created:   "created",
		Accepted:  "accepted",
		Preparing: "preparing",
		PickedUp:  "picked_up",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "created",
		Accepted:  "accepted",
		Preparing: "preparing",
		PickedUp:  "picked_up",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getStatusRanks returns the numeric ordering of the non-cancel lifecycle.
// The ordering guard requires the rank to strictly increase for any
// non-cancel transition. Cancelled has no rank; it is handled separately.
func getStatusRanks() map[Status]int {
	return map[Status]int{
		Created:   0,
		Accepted:  1,
		Preparing: 2,
		PickedUp:  3,
		Delivered: 4,
	}
}

// StatusFromString parses a Status from its string representation.
// Returns an error for unrecognized values, so invalid external input
// never becomes a usable Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Created, Accepted, Preparing, PickedUp, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
// Delivered and Cancelled are the terminal states.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActive reports whether the order has a driver working on it.
// Active statuses are Accepted, Preparing, and PickedUp; drivers on an
// active order are not eligible for new assignments.
func (s Status) IsActive() bool {
	return s == Accepted || s == Preparing || s == PickedUp
}

// CanTransitionTo checks the ordering guard for a transition to target.
//
// Rules:
//   - no transition may leave a terminal status (Delivered, Cancelled)
//   - Cancelled is reachable from any non-terminal status
//   - for any other target, the rank must strictly increase
//     (created=0, accepted=1, preparing=2, picked_up=3, delivered=4)
//
// Returns nil if the transition is legal, or an error wrapping
// ErrInvalidTransition describing the violated rule.
func (s Status) CanTransitionTo(target Status) error {
	if err := errors.Join(s.Validate(), target.Validate()); err != nil {
		return err
	}

	if s.IsTerminal() {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, s)
	}

	if target == Cancelled {
		return nil
	}

	ranks := getStatusRanks()
	if ranks[target] <= ranks[s] {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}

	return nil
}
