package invite

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"purser/internal/shared/authorization"
)

// Status is the lifecycle state of a team invite.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRevoked  Status = "revoked"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRevoked:
		return true
	}
	return false
}

// TeamInvite is an invitation for a person to join an agency's team. Only a
// SHA-256 hash of the invite token is stored; the plaintext token exists only
// in the email sent to the invitee.
type TeamInvite struct {
	id         uint
	sid        string
	agencyID   uint
	email      string
	role       authorization.UserRole
	tokenHash  string
	status     Status
	invitedBy  uint
	expiresAt  time.Time
	acceptedAt *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

// NewTeamInvite creates a pending invite and returns it together with the
// plaintext token. The caller must deliver the token to the invitee; it cannot
// be recovered afterwards.
func NewTeamInvite(sid string, agencyID uint, email string, role authorization.UserRole, invitedBy uint, ttl time.Duration) (*TeamInvite, string, error) {
	if sid == "" {
		return nil, "", fmt.Errorf("invite sid is required")
	}
	if agencyID == 0 {
		return nil, "", fmt.Errorf("agency id is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, "", fmt.Errorf("invite email is required")
	}
	if !role.IsValid() {
		return nil, "", fmt.Errorf("invalid role: %s", role)
	}
	if ttl <= 0 {
		return nil, "", fmt.Errorf("invite ttl must be positive")
	}

	token, err := generateToken()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate invite token: %w", err)
	}

	now := time.Now().UTC()
	return &TeamInvite{
		sid:       sid,
		agencyID:  agencyID,
		email:     email,
		role:      role,
		tokenHash: HashToken(token),
		status:    StatusPending,
		invitedBy: invitedBy,
		expiresAt: now.Add(ttl),
		createdAt: now,
		updatedAt: now,
	}, token, nil
}

// ReconstructTeamInvite rebuilds an invite from persisted state.
func ReconstructTeamInvite(
	id uint,
	sid string,
	agencyID uint,
	email string,
	role authorization.UserRole,
	tokenHash string,
	status Status,
	invitedBy uint,
	expiresAt time.Time,
	acceptedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*TeamInvite, error) {
	if id == 0 {
		return nil, fmt.Errorf("invite ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("invite sid is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid invite status: %s", status)
	}

	return &TeamInvite{
		id:         id,
		sid:        sid,
		agencyID:   agencyID,
		email:      email,
		role:       role,
		tokenHash:  tokenHash,
		status:     status,
		invitedBy:  invitedBy,
		expiresAt:  expiresAt,
		acceptedAt: acceptedAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (i *TeamInvite) ID() uint { return i.id }
func (i *TeamInvite) SID() string { return i.sid }
func (i *TeamInvite) AgencyID() uint { return i.agencyID }
func (i *TeamInvite) Email() string { return i.email }
func (i *TeamInvite) Role() authorization.UserRole { return i.role }
func (i *TeamInvite) TokenHash() string { return i.tokenHash }
func (i *TeamInvite) Status() Status { return i.status }
func (i *TeamInvite) InvitedBy() uint { return i.invitedBy }
func (i *TeamInvite) ExpiresAt() time.Time { return i.expiresAt }
func (i *TeamInvite) CreatedAt() time.Time { return i.createdAt }
func (i *TeamInvite) UpdatedAt() time.Time { return i.updatedAt }

func (i *TeamInvite) AcceptedAt() *time.Time {
	if i.acceptedAt == nil {
		return nil
	}
	t := *i.acceptedAt
	return &t
}

// SetID sets the invite ID (only for persistence layer use).
func (i *TeamInvite) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("invite ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("invite ID cannot be zero")
	}
	i.id = id
	return nil
}

// IsExpired reports whether the invite's expiry has passed at now.
func (i *TeamInvite) IsExpired(now time.Time) bool {
	return now.After(i.expiresAt)
}

// Accept transitions a pending, unexpired invite to accepted.
func (i *TeamInvite) Accept(now time.Time) error {
	if i.status == StatusAccepted {
		return ErrInviteAlreadyAccepted
	}
	if i.status == StatusRevoked {
		return ErrInviteRevoked
	}
	if i.IsExpired(now) {
		return ErrInviteExpired
	}

	accepted := now.UTC()
	i.status = StatusAccepted
	i.acceptedAt = &accepted
	i.updatedAt = accepted
	return nil
}

// Revoke marks a pending invite as revoked. Accepted invites cannot be
// revoked.
func (i *TeamInvite) Revoke() error {
	if i.status == StatusAccepted {
		return ErrInviteAlreadyAccepted
	}
	if i.status == StatusRevoked {
		return ErrInviteRevoked
	}

	i.status = StatusRevoked
	i.updatedAt = time.Now().UTC()
	return nil
}

// MatchesToken reports whether the plaintext token hashes to this invite's
// stored hash. The comparison is constant-time.
func (i *TeamInvite) MatchesToken(token string) bool {
	return subtle.ConstantTimeCompare([]byte(HashToken(token)), []byte(i.tokenHash)) == 1
}

// HashToken returns the hex-encoded SHA-256 digest of a plaintext token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// generateToken produces a 256-bit random token, URL-safe base64 encoded.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
