package invite

import "context"

// Repository defines persistence operations for team invites.
type Repository interface {
	Create(ctx context.Context, inv *TeamInvite) error
	Update(ctx context.Context, inv *TeamInvite) error
	FindBySID(ctx context.Context, sid string) (*TeamInvite, error)
	FindByTokenHash(ctx context.Context, tokenHash string) (*TeamInvite, error)
	FindPendingByEmail(ctx context.Context, agencyID uint, email string) (*TeamInvite, error)
	ListByAgency(ctx context.Context, agencyID uint, offset, limit int) ([]*TeamInvite, int64, error)
}
