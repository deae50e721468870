package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// LocationMirror is the durable backing store of the in-memory location index.
// Every successful upsert is written through to the mirror before the
// in-memory commit, so a crash immediately after a successful call never
// loses the latest position.
type LocationMirror interface {
	// Store persists a driver's position record, replacing any prior one.
	Store(ctx context.Context, location driver.Location) error

	// Delete removes a driver's position record. Deleting an absent record
	// is not an error.
	Delete(ctx context.Context, driverID kernel.UUID) error

	// LoadAll returns every persisted position record. Used to warm the
	// in-memory index at startup.
	LoadAll(ctx context.Context) ([]driver.Location, error)
}
