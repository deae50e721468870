package services

import (
	"errors"
	"sort"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// ErrDriverNotFound is returned when no candidate driver is available for
// order dispatch. This occurs when the candidate set is empty, which is a
// normal outcome for the dispatch workflow: the order simply stays waiting.
var ErrDriverNotFound = errors.New("driver not found")

// Candidate pairs a driver's position with its distance from a pickup point.
type Candidate struct {
	Location   driver.Location
	DistanceKm float64
}

// DriverDispatcher is a domain service responsible for selecting the optimal
// driver for a delivery order based on straight-line distance from the pickup
// point.
//
// Business rules:
//   - Candidates are ranked by haversine distance, ascending
//   - Equal distances are broken by driver id, ascending, for determinism
//   - An empty candidate set is reported with ErrDriverNotFound
//
// The dispatcher is pure: it never mutates orders or talks to storage. The
// exclusive assignment write is the caller's responsibility.
//
// Example usage:
//
//	dispatcher := services.NewDriverDispatcher()
//	best, err := dispatcher.SelectNearest(order.Pickup(), locations)
//	if errors.Is(err, services.ErrDriverNotFound) {
//	    // No candidates; the order stays created
//	    return
//	}
type DriverDispatcher struct{}

// NewDriverDispatcher creates a new DriverDispatcher instance.
func NewDriverDispatcher() DriverDispatcher {
	return DriverDispatcher{}
}

// SelectNearest returns the candidate closest to the pickup point.
//
// Parameters:
//   - pickup: The order's collection point (must be a valid GeoPoint)
//   - locations: Fresh driver positions to consider
//
// Returns:
//   - Candidate: The nearest driver with its distance in kilometers
//   - error: ErrDriverNotFound if locations is empty, or validation errors
func (d DriverDispatcher) SelectNearest(
	pickup kernel.GeoPoint,
	locations []driver.Location,
) (Candidate, error) {
	ranked, err := d.Rank(pickup, locations)
	if err != nil {
		return Candidate{}, err
	}

	if len(ranked) == 0 {
		return Candidate{}, ErrDriverNotFound
	}

	return ranked[0], nil
}

// Rank orders all candidates by distance from the pickup point, ascending,
// with ties broken by driver id ascending. The same ranking backs both
// dispatch selection and proximity queries.
func (d DriverDispatcher) Rank(
	pickup kernel.GeoPoint,
	locations []driver.Location,
) ([]Candidate, error) {
	if err := pickup.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(locations))
	for _, location := range locations {
		if err := location.Validate(); err != nil {
			return nil, err
		}

		km, err := pickup.DistanceKmTo(location.Position())
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, Candidate{Location: location, DistanceKm: km})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].DistanceKm != candidates[j].DistanceKm {
			return candidates[i].DistanceKm < candidates[j].DistanceKm
		}
		return candidates[i].Location.DriverID().String() < candidates[j].Location.DriverID().String()
	})

	return candidates, nil
}
