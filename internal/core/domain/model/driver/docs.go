// Package driver contains the value objects describing a driver's live state:
// the last reported position with its freshness rule, and the availability
// record consulted by dispatch.
//
// Neither type is an aggregate. Positions are owned by the location tracking
// service and availability records by the durable ledger; this package only
// defines their shapes and validation.
package driver
