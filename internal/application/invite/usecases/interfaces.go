package usecases

import (
	"context"
	"time"
)

// InviteMailer delivers the one-time invite link. The plaintext token exists
// only in this email.
type InviteMailer interface {
	SendInvite(ctx context.Context, email, agencyName, role, token string, expiresAt time.Time) error
}

// PasswordHasher hashes credentials for new accounts created through invite
// acceptance.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Transactor runs a function within a database transaction.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
