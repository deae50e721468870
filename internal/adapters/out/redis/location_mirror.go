package redis

import (
	"context"
	"strconv"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
)

const (
	locationKeyPrefix = "driver:location:"
	locationSetKey    = "drivers:located"

	fieldUpdatedAt = "updated_at"
)

// LocationMirror is the Redis-backed durable copy of the in-memory location
// index. The index writes through to the mirror before committing to memory,
// and reloads from it at startup.
type LocationMirror struct {
	client *goredis.Client
}

// NewLocationMirror creates a mirror on the given Redis client.
func NewLocationMirror(client *goredis.Client) *LocationMirror {
	return &LocationMirror{client: client}
}

// Store persists a driver's position record, replacing any prior one.
func (m *LocationMirror) Store(ctx context.Context, location driver.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	key := locationKeyPrefix + location.DriverID().String()

	pipe := m.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		fieldLat:       formatCoord(location.Position().Latitude()),
		fieldLng:       formatCoord(location.Position().Longitude()),
		fieldUpdatedAt: location.UpdatedAt().UTC().Format(time.RFC3339Nano),
	})
	pipe.SAdd(ctx, locationSetKey, location.DriverID().String())

	if _, err := pipe.Exec(ctx); err != nil {
		return errs.NewPersistenceError("store driver location", err)
	}

	return nil
}

// Delete removes a driver's position record. Deleting an absent record is
// not an error.
func (m *LocationMirror) Delete(ctx context.Context, driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	pipe := m.client.TxPipeline()
	pipe.Del(ctx, locationKeyPrefix+driverID.String())
	pipe.SRem(ctx, locationSetKey, driverID.String())

	if _, err := pipe.Exec(ctx); err != nil {
		return errs.NewPersistenceError("delete driver location", err)
	}

	return nil
}

// LoadAll returns every persisted position record. Entries whose hash has
// disappeared since they were indexed are skipped rather than failing the
// whole load.
func (m *LocationMirror) LoadAll(ctx context.Context) ([]driver.Location, error) {
	members, err := m.client.SMembers(ctx, locationSetKey).Result()
	if err != nil {
		return nil, errs.NewPersistenceError("load driver locations", err)
	}

	locations := make([]driver.Location, 0, len(members))
	for _, member := range members {
		driverID, idErr := kernel.UUIDFromString(member)
		if idErr != nil {
			return nil, idErr
		}

		fields, getErr := m.client.HGetAll(ctx, locationKeyPrefix+member).Result()
		if getErr != nil {
			return nil, errs.NewPersistenceError("load driver locations", getErr)
		}
		if len(fields) == 0 {
			continue
		}

		location, parseErr := parseLocation(driverID, fields)
		if parseErr != nil {
			return nil, parseErr
		}
		locations = append(locations, location)
	}

	return locations, nil
}

func parseLocation(driverID kernel.UUID, fields map[string]string) (driver.Location, error) {
	lat, err := strconv.ParseFloat(fields[fieldLat], 64)
	if err != nil {
		return driver.Location{}, errs.NewPersistenceError("load driver locations", err)
	}

	lng, err := strconv.ParseFloat(fields[fieldLng], 64)
	if err != nil {
		return driver.Location{}, errs.NewPersistenceError("load driver locations", err)
	}

	updatedAt, err := time.Parse(time.RFC3339Nano, fields[fieldUpdatedAt])
	if err != nil {
		return driver.Location{}, errs.NewPersistenceError("load driver locations", err)
	}

	position, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return driver.Location{}, err
	}

	return driver.NewLocation(driverID, position, updatedAt)
}
