package user

import "context"

// Repository defines persistence operations for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindBySID(ctx context.Context, sid string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ListByAgency(ctx context.Context, agencyID uint, offset, limit int) ([]*User, int64, error)
}
