package kernel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   bool
	}{
		{
			name:      "valid point",
			latitude:  1.0,
			longitude: 1.0,
			wantErr:   false,
		},
		{
			name:      "valid point at min bounds",
			latitude:  kernel.MinLatitude,
			longitude: kernel.MinLongitude,
			wantErr:   false,
		},
		{
			name:      "valid point at max bounds",
			latitude:  kernel.MaxLatitude,
			longitude: kernel.MaxLongitude,
			wantErr:   false,
		},
		{
			name:      "latitude too small",
			latitude:  -90.0001,
			longitude: 0,
			wantErr:   true,
		},
		{
			name:      "latitude too large",
			latitude:  90.0001,
			longitude: 0,
			wantErr:   true,
		},
		{
			name:      "longitude too small",
			latitude:  0,
			longitude: -180.0001,
			wantErr:   true,
		},
		{
			name:      "longitude too large",
			latitude:  0,
			longitude: 180.0001,
			wantErr:   true,
		},
		{
			name:      "NaN latitude",
			latitude:  math.NaN(),
			longitude: 0,
			wantErr:   true,
		},
		{
			name:      "NaN longitude",
			latitude:  0,
			longitude: math.NaN(),
			wantErr:   true,
		},
		{
			name:      "both coordinates invalid",
			latitude:  -91,
			longitude: 181,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, err := kernel.NewGeoPoint(tt.latitude, tt.longitude)

			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				assert.Zero(t, point)
			} else {
				require.NoError(t, err)
				assert.InDelta(t, tt.latitude, point.Latitude(), 0)
				assert.InDelta(t, tt.longitude, point.Longitude(), 0)
				assert.NoError(t, point.Validate())
			}
		})
	}
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("valid point", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(55.7558, 37.6173)
		require.NoError(t, err)
		assert.NoError(t, point.Validate())
	})

	t.Run("zero value point", func(t *testing.T) {
		var point kernel.GeoPoint
		err := point.Validate()
		assert.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})
}

func TestGeoPoint_String(t *testing.T) {
	point, err := kernel.NewGeoPoint(1.001, -2.5)
	require.NoError(t, err)

	assert.Equal(t, "GeoPoint(1.001000,-2.500000)", point.String())
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal points", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(1.5, 2.5)
		p2, _ := kernel.NewGeoPoint(1.5, 2.5)

		equal, err := p1.IsEqual(p2)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different points", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(1.5, 2.5)
		p2, _ := kernel.NewGeoPoint(1.5, 2.6)

		equal, err := p1.IsEqual(p2)
		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("zero value point fails", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(1.5, 2.5)
		var p2 kernel.GeoPoint

		_, err := p1.IsEqual(p2)
		assert.Error(t, err)
	})
}

func TestGeoPoint_DistanceKmTo(t *testing.T) {
	t.Run("distance to self is zero", func(t *testing.T) {
		point, _ := kernel.NewGeoPoint(1.0, 1.0)

		km, err := point.DistanceKmTo(point)
		require.NoError(t, err)
		assert.InDelta(t, 0, km, 1e-9)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(1.0, 1.0)
		p2, _ := kernel.NewGeoPoint(1.001, 1.0)

		d1, err := p1.DistanceKmTo(p2)
		require.NoError(t, err)
		d2, err := p2.DistanceKmTo(p1)
		require.NoError(t, err)

		assert.InDelta(t, d1, d2, 1e-12)
	})

	t.Run("one thousandth of a degree of latitude", func(t *testing.T) {
		// 0.001° of latitude is about 111 meters anywhere on the sphere.
		p1, _ := kernel.NewGeoPoint(1.0010, 1.0)
		p2, _ := kernel.NewGeoPoint(1.0000, 1.0)

		km, err := p1.DistanceKmTo(p2)
		require.NoError(t, err)
		assert.InDelta(t, 0.1112, km, 0.001)
	})

	t.Run("known reference distance", func(t *testing.T) {
		// Moscow to Saint Petersburg, roughly 633 km great-circle.
		moscow, _ := kernel.NewGeoPoint(55.7558, 37.6173)
		spb, _ := kernel.NewGeoPoint(59.9311, 30.3609)

		km, err := moscow.DistanceKmTo(spb)
		require.NoError(t, err)
		assert.InDelta(t, 633, km, 2)
	})

	t.Run("closer point yields smaller distance", func(t *testing.T) {
		pickup, _ := kernel.NewGeoPoint(1.0, 1.0)
		near, _ := kernel.NewGeoPoint(1.0001, 1.0)
		far, _ := kernel.NewGeoPoint(1.0050, 1.0)

		dNear, err := pickup.DistanceKmTo(near)
		require.NoError(t, err)
		dFar, err := pickup.DistanceKmTo(far)
		require.NoError(t, err)

		assert.Less(t, dNear, dFar)
	})

	t.Run("zero value point fails", func(t *testing.T) {
		point, _ := kernel.NewGeoPoint(1.0, 1.0)
		var zero kernel.GeoPoint

		_, err := point.DistanceKmTo(zero)
		assert.Error(t, err)
	})
}
