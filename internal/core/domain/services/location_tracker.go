package services

import (
	"context"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// LocationTracker owns the mutable mapping of driver id to last-known
// position. The in-memory index answers point and proximity lookups; every
// mutation is written through to a durable mirror before the in-memory
// commit, so the mirror always reflects the most recent successful upsert
// for every driver.
//
// Concurrency model: a keyed lock per driver serializes the mirror-write and
// memory-commit pair, so updates for unrelated drivers never contend on I/O.
// A short global read-write mutex guards only the map itself.
//
// Staleness: entries older than the staleness window are reported as absent
// by Get and are pruned from memory and the mirror by Nearby (lazy eviction
// driven by query traffic, not a background timer).
type LocationTracker struct {
	mirror ports.LocationMirror
	window time.Duration
	now    func() time.Time

	mu        sync.RWMutex
	locations map[kernel.UUID]driver.Location

	locksMu sync.Mutex
	locks   map[kernel.UUID]*sync.Mutex
}

// LocationTrackerOption configures a LocationTracker.
type LocationTrackerOption func(*LocationTracker)

// WithStalenessWindow overrides the staleness window.
// The default is driver.DefaultStalenessWindow (5 minutes).
func WithStalenessWindow(window time.Duration) LocationTrackerOption {
	return func(t *LocationTracker) {
		t.window = window
	}
}

// WithClock overrides the wall-clock source. Intended for tests.
func WithClock(now func() time.Time) LocationTrackerOption {
	return func(t *LocationTracker) {
		t.now = now
	}
}

// NewLocationTracker creates a LocationTracker backed by the given mirror.
func NewLocationTracker(mirror ports.LocationMirror, opts ...LocationTrackerOption) (*LocationTracker, error) {
	if mirror == nil {
		return nil, errs.NewValueIsRequiredError("mirror")
	}

	tracker := &LocationTracker{
		mirror:    mirror,
		window:    driver.DefaultStalenessWindow,
		now:       time.Now,
		locations: make(map[kernel.UUID]driver.Location),
		locks:     make(map[kernel.UUID]*sync.Mutex),
	}

	for _, opt := range opts {
		opt(tracker)
	}

	if tracker.window <= 0 {
		return nil, errs.NewValueIsInvalidError("staleness window")
	}

	return tracker, nil
}

// Restore warm-loads the in-memory index from the mirror. Called once at
// startup so positions reported before a restart stay queryable.
func (t *LocationTracker) Restore(ctx context.Context) error {
	stored, err := t.mirror.LoadAll(ctx)
	if err != nil {
		return errs.NewPersistenceError("load driver locations", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, location := range stored {
		current, ok := t.locations[location.DriverID()]
		if ok && current.UpdatedAt().After(location.UpdatedAt()) {
			continue
		}
		t.locations[location.DriverID()] = location
	}

	return nil
}

// Upsert records a driver's position, stamped with the current wall-clock
// time, replacing any prior entry for that driver.
//
// The position is persisted to the mirror before the in-memory commit. If the
// mirror write fails the in-memory index is left unchanged and the error is
// returned as a PersistenceError; the caller must retry or surface it.
//
// Returns the recorded location on success.
func (t *LocationTracker) Upsert(
	ctx context.Context,
	driverID kernel.UUID,
	latitude float64,
	longitude float64,
) (driver.Location, error) {
	position, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return driver.Location{}, err
	}

	location, err := driver.NewLocation(driverID, position, t.now())
	if err != nil {
		return driver.Location{}, err
	}

	lock := t.lockFor(driverID)
	lock.Lock()
	defer lock.Unlock()

	if err := t.mirror.Store(ctx, location); err != nil {
		return driver.Location{}, errs.NewPersistenceError("store driver location", err)
	}

	t.mu.Lock()
	t.locations[driverID] = location
	t.mu.Unlock()

	return location, nil
}

// Remove deletes a driver's entry, returning whether it existed. Removing an
// absent driver is not an error, so the operation is idempotent. The deletion
// is mirrored before the in-memory commit.
func (t *LocationTracker) Remove(ctx context.Context, driverID kernel.UUID) (bool, error) {
	if err := driverID.Validate(); err != nil {
		return false, err
	}

	lock := t.lockFor(driverID)
	lock.Lock()
	defer lock.Unlock()

	t.mu.RLock()
	_, existed := t.locations[driverID]
	t.mu.RUnlock()

	if err := t.mirror.Delete(ctx, driverID); err != nil {
		return false, errs.NewPersistenceError("delete driver location", err)
	}

	t.mu.Lock()
	delete(t.locations, driverID)
	t.mu.Unlock()

	return existed, nil
}

// Get returns a driver's last known position. Entries older than the
// staleness window are reported as absent; eviction of such entries is left
// to Nearby. Returns errs.ObjectNotFoundError when no fresh entry exists.
func (t *LocationTracker) Get(driverID kernel.UUID) (driver.Location, error) {
	if err := driverID.Validate(); err != nil {
		return driver.Location{}, err
	}

	t.mu.RLock()
	location, ok := t.locations[driverID]
	t.mu.RUnlock()

	if !ok || !location.IsFresh(t.now(), t.window) {
		return driver.Location{}, errs.NewObjectNotFoundError("driverID", driverID.String())
	}

	return location, nil
}

// Nearby returns all fresh drivers within radiusKm of center, ordered by
// distance ascending with ties broken by driver id.
//
// Before ranking, entries that went stale are pruned from the in-memory index
// and from the mirror. A pruning failure surfaces as a PersistenceError
// rather than silently leaving durable state inconsistent.
func (t *LocationTracker) Nearby(
	ctx context.Context,
	center kernel.GeoPoint,
	radiusKm float64,
) ([]Candidate, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		return nil, errs.NewValueIsInvalidError("radiusKm")
	}

	now := t.now()

	t.mu.RLock()
	fresh := make([]driver.Location, 0, len(t.locations))
	stale := make([]driver.Location, 0)
	for _, location := range t.locations {
		if location.IsFresh(now, t.window) {
			fresh = append(fresh, location)
		} else {
			stale = append(stale, location)
		}
	}
	t.mu.RUnlock()

	for _, location := range stale {
		if err := t.evict(ctx, location); err != nil {
			return nil, err
		}
	}

	ranked, err := NewDriverDispatcher().Rank(center, fresh)
	if err != nil {
		return nil, err
	}

	inRange := make([]Candidate, 0, len(ranked))
	for _, candidate := range ranked {
		if candidate.DistanceKm > radiusKm {
			break
		}
		inRange = append(inRange, candidate)
	}

	return inRange, nil
}

// Prune evicts every stale entry from the index and the mirror, returning
// the number of entries removed. Nearby prunes lazily as a side effect of
// queries; Prune exists for the periodic sweep so stale entries are bounded
// even on paths nobody is querying.
func (t *LocationTracker) Prune(ctx context.Context) (int, error) {
	now := t.now()

	t.mu.RLock()
	stale := make([]driver.Location, 0)
	for _, location := range t.locations {
		if !location.IsFresh(now, t.window) {
			stale = append(stale, location)
		}
	}
	t.mu.RUnlock()

	pruned := 0
	for _, location := range stale {
		if err := t.evict(ctx, location); err != nil {
			return pruned, err
		}
		pruned++
	}

	return pruned, nil
}

// StalenessWindow returns the configured staleness window.
func (t *LocationTracker) StalenessWindow() time.Duration {
	return t.window
}

// evict removes a stale entry from the mirror and memory. The entry is
// re-read under the driver's lock so an upsert that raced the staleness scan
// is never thrown away.
func (t *LocationTracker) evict(ctx context.Context, stale driver.Location) error {
	lock := t.lockFor(stale.DriverID())
	lock.Lock()
	defer lock.Unlock()

	t.mu.RLock()
	current, ok := t.locations[stale.DriverID()]
	t.mu.RUnlock()

	if !ok || current.UpdatedAt().After(stale.UpdatedAt()) {
		return nil
	}

	if err := t.mirror.Delete(ctx, stale.DriverID()); err != nil {
		return errs.NewPersistenceError("evict driver location", err)
	}

	t.mu.Lock()
	delete(t.locations, stale.DriverID())
	t.mu.Unlock()

	return nil
}

// lockFor returns the mutex serializing mutations for one driver. Locks are
// created on first use and retained; the population is bounded by the driver
// fleet.
func (t *LocationTracker) lockFor(driverID kernel.UUID) *sync.Mutex {
	t.locksMu.Lock()
	defer t.locksMu.Unlock()

	lock, ok := t.locks[driverID]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[driverID] = lock
	}
	return lock
}
