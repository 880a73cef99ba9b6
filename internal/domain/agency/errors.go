package agency

import "errors"

var (
	// ErrAgencyNotFound is returned when no agency matches the lookup key.
	ErrAgencyNotFound = errors.New("agency not found")

	// ErrVersionConflict is returned when an optimistic concurrency check
	// fails; the caller should reload and retry.
	ErrVersionConflict = errors.New("agency was modified concurrently")

	// ErrNoBillingCustomer is returned by flows that require an existing
	// provider customer, e.g. the customer portal.
	ErrNoBillingCustomer = errors.New("agency has no billing customer")
)
