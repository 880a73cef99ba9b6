package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"purser/internal/shared/authorization"
)

// User is a staff account belonging to exactly one agency. The password hash
// is produced by the auth layer; the domain only stores it.
type User struct {
	id           uint
	sid          string
	agencyID     uint
	email        string
	name         string
	passwordHash string
	role         authorization.UserRole
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates an active user with a normalized email.
func NewUser(sid string, agencyID uint, email, name, passwordHash string, role authorization.UserRole) (*User, error) {
	if sid == "" {
		return nil, fmt.Errorf("user sid is required")
	}
	if agencyID == 0 {
		return nil, fmt.Errorf("agency id is required")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := time.Now().UTC()
	return &User{
		sid:          sid,
		agencyID:     agencyID,
		email:        email,
		name:         strings.TrimSpace(name),
		passwordHash: passwordHash,
		role:         role,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a user from persisted state.
func ReconstructUser(
	id uint,
	sid string,
	agencyID uint,
	email, name, passwordHash string,
	role authorization.UserRole,
	active bool,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("user sid is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		id:           id,
		sid:          sid,
		agencyID:     agencyID,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		active:       active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint { return u.id }
func (u *User) SID() string { return u.sid }
func (u *User) AgencyID() uint { return u.agencyID }
func (u *User) Email() string { return u.email }
func (u *User) Name() string { return u.name }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) IsActive() bool { return u.active }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) IsAdmin() bool { return u.role.IsAdmin() }

// SetID sets the user ID (only for persistence layer use).
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// Rename updates the display name.
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	u.name = name
	u.touch()
	return nil
}

// ChangeRole assigns a new role.
func (u *User) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	u.role = role
	u.touch()
	return nil
}

// UpdatePasswordHash replaces the stored credential hash.
func (u *User) UpdatePasswordHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = hash
	u.touch()
	return nil
}

// Deactivate disables the account without deleting it.
func (u *User) Deactivate() {
	u.active = false
	u.touch()
}

func (u *User) Activate() {
	u.active = true
	u.touch()
}

func (u *User) touch() {
	u.updatedAt = time.Now().UTC()
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("invalid email address: %s", email)
	}
	return email, nil
}
