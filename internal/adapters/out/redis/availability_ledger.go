// Package redis implements the driver-side persistence ports on Redis:
// the availability ledger and the durable mirror of the location index.
// Records are stored as hashes keyed by driver id, with small sets as
// secondary indexes so membership queries never scan the keyspace.
package redis

import (
	"context"
	"strconv"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
)

const (
	availabilityKeyPrefix = "driver:availability:"
	availableSetKey       = "drivers:available"

	fieldAvailable = "available"
	fieldLat       = "lat"
	fieldLng       = "lng"
)

// AvailabilityLedger is the Redis-backed record of which drivers want to
// receive assignments. Every write overwrites the previous flag; the last
// position travels with the record when known.
type AvailabilityLedger struct {
	client *goredis.Client
}

// NewAvailabilityLedger creates a ledger on the given Redis client.
func NewAvailabilityLedger(client *goredis.Client) *AvailabilityLedger {
	return &AvailabilityLedger{client: client}
}

// SetAvailable marks a driver eligible or ineligible for future dispatch.
// The hash write and the index update run in one pipeline so the available
// set never disagrees with the record for long.
func (l *AvailabilityLedger) SetAvailable(
	ctx context.Context,
	driverID kernel.UUID,
	available bool,
	lastPosition *kernel.GeoPoint,
) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	key := availabilityKeyPrefix + driverID.String()

	fields := map[string]any{
		fieldAvailable: strconv.FormatBool(available),
	}
	if lastPosition != nil {
		if err := lastPosition.Validate(); err != nil {
			return err
		}
		fields[fieldLat] = formatCoord(lastPosition.Latitude())
		fields[fieldLng] = formatCoord(lastPosition.Longitude())
	}

	pipe := l.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	if available {
		pipe.SAdd(ctx, availableSetKey, driverID.String())
	} else {
		pipe.SRem(ctx, availableSetKey, driverID.String())
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return errs.NewPersistenceError("set driver availability", err)
	}

	return nil
}

// UpdatePosition refreshes the last position without touching the flag.
// A driver with no record yet gets one with the flag unset.
func (l *AvailabilityLedger) UpdatePosition(
	ctx context.Context,
	driverID kernel.UUID,
	position kernel.GeoPoint,
) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := position.Validate(); err != nil {
		return err
	}

	key := availabilityKeyPrefix + driverID.String()

	pipe := l.client.TxPipeline()
	pipe.HSetNX(ctx, key, fieldAvailable, strconv.FormatBool(false))
	pipe.HSet(ctx, key, map[string]any{
		fieldLat: formatCoord(position.Latitude()),
		fieldLng: formatCoord(position.Longitude()),
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return errs.NewPersistenceError("update driver position", err)
	}

	return nil
}

// Get retrieves a driver's availability record.
// Returns errs.ObjectNotFoundError if the driver has no record.
func (l *AvailabilityLedger) Get(
	ctx context.Context,
	driverID kernel.UUID,
) (driver.AvailabilityRecord, error) {
	if err := driverID.Validate(); err != nil {
		return driver.AvailabilityRecord{}, err
	}

	key := availabilityKeyPrefix + driverID.String()

	fields, err := l.client.HGetAll(ctx, key).Result()
	if err != nil {
		return driver.AvailabilityRecord{}, errs.NewPersistenceError("get driver availability", err)
	}
	if len(fields) == 0 {
		return driver.AvailabilityRecord{}, errs.NewObjectNotFoundError("driverID", driverID.String())
	}

	available, err := strconv.ParseBool(fields[fieldAvailable])
	if err != nil {
		return driver.AvailabilityRecord{}, errs.NewPersistenceError("get driver availability", err)
	}

	var lastPosition *kernel.GeoPoint
	if latRaw, ok := fields[fieldLat]; ok {
		lat, parseErr := strconv.ParseFloat(latRaw, 64)
		if parseErr != nil {
			return driver.AvailabilityRecord{}, errs.NewPersistenceError("get driver availability", parseErr)
		}
		lng, parseErr := strconv.ParseFloat(fields[fieldLng], 64)
		if parseErr != nil {
			return driver.AvailabilityRecord{}, errs.NewPersistenceError("get driver availability", parseErr)
		}

		position, pointErr := kernel.NewGeoPoint(lat, lng)
		if pointErr != nil {
			return driver.AvailabilityRecord{}, pointErr
		}
		lastPosition = &position
	}

	return driver.NewAvailabilityRecord(driverID, available, lastPosition)
}

// AvailableIDs returns the ids of all drivers whose flag is set.
func (l *AvailabilityLedger) AvailableIDs(ctx context.Context) ([]kernel.UUID, error) {
	members, err := l.client.SMembers(ctx, availableSetKey).Result()
	if err != nil {
		return nil, errs.NewPersistenceError("list available drivers", err)
	}

	ids := make([]kernel.UUID, 0, len(members))
	for _, member := range members {
		id, idErr := kernel.UUIDFromString(member)
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
