package usecases

import (
	"context"
	"time"
)

// Transactor runs a function within a database transaction. The payment
// record and the booking's recomputed ledger commit together through it.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CabinInput is the inbound shape for creating or extending a booking.
type CabinInput struct {
	CabinNumber   string
	SubtotalCAD   int64
	GratuitiesCAD int64
	Deadlines     []DeadlineInput
}

// DeadlineInput is one installment threshold on a cabin.
type DeadlineInput struct {
	Label     string
	DueDate   time.Time
	AmountCAD int64
}
