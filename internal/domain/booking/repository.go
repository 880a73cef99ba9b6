package booking

import "context"

// Repository is the persistence contract for bookings. Update must write the
// whole aggregate (cabins included) as one row update guarded by the
// aggregate version; a stale version returns ErrVersionConflict so callers
// can reload and retry.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	Update(ctx context.Context, b *Booking) error
	FindByID(ctx context.Context, id uint) (*Booking, error)
	FindBySID(ctx context.Context, sid string) (*Booking, error)
	ListByAgency(ctx context.Context, agencyID uint, offset, limit int) ([]*Booking, int64, error)
}

// PaymentRepository stores immutable payment records.
type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	ListByBooking(ctx context.Context, bookingID uint) ([]*Payment, error)
}
