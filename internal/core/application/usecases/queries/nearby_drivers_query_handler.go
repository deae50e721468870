package queries

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// NearbyDriversQueryHandler serves proximity queries from the in-memory
// location index instead of the database. Stale positions are already
// filtered out by the index, so every driver returned reported recently.
type NearbyDriversQueryHandler struct {
	tracker *services.LocationTracker
}

// NewNearbyDriversQueryHandler creates a handler backed by the location
// index.
func NewNearbyDriversQueryHandler(tracker *services.LocationTracker) NearbyDriversQueryHandler {
	return NearbyDriversQueryHandler{tracker: tracker}
}

// Handle returns drivers within the query radius, sorted by distance from
// the center. An empty result is a normal outcome, not an error.
func (h NearbyDriversQueryHandler) Handle(
	ctx context.Context,
	query NearbyDriversQuery,
) ([]NearbyDriverResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	candidates, err := h.tracker.Nearby(ctx, query.Center(), query.RadiusKm())
	if err != nil {
		return nil, err
	}

	drivers := make([]NearbyDriverResponse, 0, len(candidates))
	for _, candidate := range candidates {
		drivers = append(drivers, NearbyDriverResponse{
			DriverID:   candidate.Location.DriverID(),
			Latitude:   candidate.Location.Position().Latitude(),
			Longitude:  candidate.Location.Position().Longitude(),
			DistanceKm: candidate.DistanceKm,
			UpdatedAt:  candidate.Location.UpdatedAt(),
		})
	}

	return drivers, nil
}
