package invite

import "errors"

var (
	ErrInviteNotFound        = errors.New("invite not found")
	ErrInviteExpired         = errors.New("invite has expired")
	ErrInviteRevoked         = errors.New("invite has been revoked")
	ErrInviteAlreadyAccepted = errors.New("invite has already been accepted")
	ErrInvitePending         = errors.New("an invite for this email is already pending")
)
