// Package order contains the Order aggregate and its supporting value objects.
//
// The package implements the regulated order lifecycle:
//
//	Created ──> Accepted ──> Preparing ──> PickedUp ──> Delivered
//	    │           │            │             │
//	    └───────────┴────────────┴─────────────┴──> Cancelled
//
// Transition legality is the conjunction of two independent checks: a static
// role permission table (which actor roles may set which target statuses) and
// an ordering guard (the status rank must strictly increase for any non-cancel
// target; cancellation is legal from any non-terminal state). Delivered and
// Cancelled are terminal.
//
// An order references at most one driver; the driver identifier transitions
// nil -> set exactly once upon acceptance and is retained for audit when the
// order is cancelled.
package order
