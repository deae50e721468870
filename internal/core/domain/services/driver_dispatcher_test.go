package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return point
}

func locationAt(t *testing.T, driverID kernel.UUID, lat, lng float64) driver.Location {
	t.Helper()
	location, err := driver.NewLocation(driverID, mustPoint(t, lat, lng), time.Now())
	require.NoError(t, err)
	return location
}

func TestDriverDispatcher_SelectNearest(t *testing.T) {
	dispatcher := services.NewDriverDispatcher()
	pickup := mustPoint(t, 1.0010, 1.0000)

	t.Run("selects the closest driver", func(t *testing.T) {
		near := kernel.NewUUID()
		far := kernel.NewUUID()
		locations := []driver.Location{
			locationAt(t, far, 1.0050, 1.0000),
			locationAt(t, near, 1.0001, 1.0000),
		}

		best, err := dispatcher.SelectNearest(pickup, locations)

		require.NoError(t, err)
		assert.True(t, best.Location.DriverID().IsEqual(near))
	})

	t.Run("single candidate wins", func(t *testing.T) {
		only := kernel.NewUUID()

		best, err := dispatcher.SelectNearest(pickup, []driver.Location{
			locationAt(t, only, 1.0000, 1.0000),
		})

		require.NoError(t, err)
		assert.True(t, best.Location.DriverID().IsEqual(only))
		assert.InDelta(t, 0.1112, best.DistanceKm, 0.001)
	})

	t.Run("empty candidate set", func(t *testing.T) {
		_, err := dispatcher.SelectNearest(pickup, nil)
		assert.ErrorIs(t, err, services.ErrDriverNotFound)
	})

	t.Run("equal distances break ties by driver id", func(t *testing.T) {
		id1, err := kernel.UUIDFromString("11111111-1111-1111-1111-111111111111")
		require.NoError(t, err)
		id2, err := kernel.UUIDFromString("22222222-2222-2222-2222-222222222222")
		require.NoError(t, err)

		// Same coordinates, so identical distances; ordering of the input
		// slice must not matter.
		locations := []driver.Location{
			locationAt(t, id2, 1.0, 1.0),
			locationAt(t, id1, 1.0, 1.0),
		}

		best, err := dispatcher.SelectNearest(pickup, locations)
		require.NoError(t, err)
		assert.True(t, best.Location.DriverID().IsEqual(id1))
	})

	t.Run("rejects invalid pickup point", func(t *testing.T) {
		var zero kernel.GeoPoint
		_, err := dispatcher.SelectNearest(zero, nil)
		assert.Error(t, err)
	})

	t.Run("rejects unconstructed locations", func(t *testing.T) {
		var raw driver.Location
		_, err := dispatcher.SelectNearest(pickup, []driver.Location{raw})
		assert.Error(t, err)
	})
}

func TestDriverDispatcher_Rank(t *testing.T) {
	dispatcher := services.NewDriverDispatcher()
	pickup := mustPoint(t, 1.0, 1.0)

	t.Run("orders candidates by distance ascending", func(t *testing.T) {
		locations := []driver.Location{
			locationAt(t, kernel.NewUUID(), 1.0050, 1.0),
			locationAt(t, kernel.NewUUID(), 1.0001, 1.0),
			locationAt(t, kernel.NewUUID(), 1.0020, 1.0),
		}

		ranked, err := dispatcher.Rank(pickup, locations)

		require.NoError(t, err)
		require.Len(t, ranked, 3)
		for i := 1; i < len(ranked); i++ {
			assert.LessOrEqual(t, ranked[i-1].DistanceKm, ranked[i].DistanceKm)
		}
	})

	t.Run("empty input yields empty ranking", func(t *testing.T) {
		ranked, err := dispatcher.Rank(pickup, nil)
		require.NoError(t, err)
		assert.Empty(t, ranked)
	})
}
