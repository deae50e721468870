// Package services contains stateless and stateful domain services that
// operate across aggregates and value objects.
//
// DriverDispatcher is the pure candidate-ranking half of dispatch: given a
// pickup point and a set of fresh driver positions it selects the nearest
// driver deterministically. LocationTracker owns the mutable in-memory index
// of driver positions with its durable write-through mirror.
package services
