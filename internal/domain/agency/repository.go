package agency

import "context"

// Repository is the persistence contract for agencies. Update must apply the
// whole aggregate, including the billing sub-object, as a single write using
// the aggregate's version for optimistic concurrency.
type Repository interface {
	Create(ctx context.Context, a *Agency) error
	Update(ctx context.Context, a *Agency) error
	FindByID(ctx context.Context, id uint) (*Agency, error)
	FindBySID(ctx context.Context, sid string) (*Agency, error)
	FindByStripeCustomerID(ctx context.Context, customerID string) (*Agency, error)
	List(ctx context.Context, offset, limit int) ([]*Agency, int64, error)
}

// WebhookEventStore records processed provider event ids so duplicate webhook
// deliveries become no-ops. MarkProcessed must be atomic with respect to
// concurrent deliveries of the same event: exactly one caller sees fresh=true.
type WebhookEventStore interface {
	MarkProcessed(ctx context.Context, eventID, eventType string) (fresh bool, err error)
}
