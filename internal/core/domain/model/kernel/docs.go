// Package kernel provides the shared value objects of the dispatch domain model.
//
// It contains the building blocks every other domain package relies on:
//   - UUID: validated entity identifiers backed by github.com/google/uuid
//   - GeoPoint: validated WGS84 coordinates with great-circle distance
//
// All value objects in this package are immutable, constructor-guarded, and safe
// for concurrent use. Zero values are invalid and fail Validate(); instances must
// be created through the provided constructors.
package kernel
