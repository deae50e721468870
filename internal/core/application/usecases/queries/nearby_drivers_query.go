package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrNearbyDriversQueryIsNotConstructed = errors.New(
	"NearbyDriversQuery must be created via NewNearbyDriversQuery constructor",
)

const (
	// DefaultRadiusKm is applied when a caller does not specify a search
	// radius.
	DefaultRadiusKm = 10.0

	// MaxRadiusKm caps the search radius a caller may request.
	MaxRadiusKm = 50.0
)

// NearbyDriversQuery finds drivers with a fresh location within a radius of
// a center point. A zero radius selects DefaultRadiusKm; radii above
// MaxRadiusKm are rejected.
//
// Example:
//
//	query, _ := NewNearbyDriversQuery(1.3521, 103.8198, 5.0)
//	drivers, err := NewNearbyDriversQueryHandler(tracker).Handle(ctx, query)
type NearbyDriversQuery struct { //nolint:recvcheck //using for validation
	center   kernel.GeoPoint
	radiusKm float64

	guard guard.ConstructorGuard
}

// NewNearbyDriversQuery creates a proximity query around the given
// coordinates. Passing radiusKm of zero applies DefaultRadiusKm.
func NewNearbyDriversQuery(latitude, longitude, radiusKm float64) (NearbyDriversQuery, error) {
	center, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return NearbyDriversQuery{}, err
	}

	if radiusKm == 0 {
		radiusKm = DefaultRadiusKm
	}
	if radiusKm < 0 || radiusKm > MaxRadiusKm {
		return NearbyDriversQuery{}, errs.NewValueIsOutOfRangeError(
			"radiusKm", radiusKm, 0, MaxRadiusKm)
	}

	return NearbyDriversQuery{
		center:   center,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q NearbyDriversQuery) Validate() error {
	return q.guard.Validate(ErrNearbyDriversQueryIsNotConstructed)
}

// Center returns the search center.
func (q NearbyDriversQuery) Center() kernel.GeoPoint {
	return q.center
}

// RadiusKm returns the effective search radius.
func (q NearbyDriversQuery) RadiusKm() float64 {
	return q.radiusKm
}

// NearbyDriverResponse is one driver in a proximity query result.
type NearbyDriverResponse struct {
	DriverID   kernel.UUID
	Latitude   float64
	Longitude  float64
	DistanceKm float64
	UpdatedAt  time.Time
}
