package booking

import "errors"

var (
	// ErrBookingNotFound is returned when no booking matches the lookup key.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrVersionConflict is returned when an optimistic concurrency check
	// fails; the caller should reload and retry.
	ErrVersionConflict = errors.New("booking was modified concurrently")

	// ErrNonPositiveAmount rejects zero or negative payment amounts.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrCabinIndexOutOfRange rejects payments targeting a cabin the booking
	// does not have.
	ErrCabinIndexOutOfRange = errors.New("cabin index out of range")

	// ErrInsufficientGeneralBalance rejects attributing more than the
	// unattributed general balance.
	ErrInsufficientGeneralBalance = errors.New("amount exceeds unattributed general balance")
)
