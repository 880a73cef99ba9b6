package usecases

import (
	"context"
	"errors"
	"time"

	"purser/internal/domain/agency"
	"purser/internal/domain/invite"
	"purser/internal/shared/authorization"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/id"
	"purser/internal/shared/logger"
)

type CreateInviteCommand struct {
	AgencyID  uint
	Email     string
	Role      string
	InvitedBy uint
}

type CreateInviteUseCase struct {
	inviteRepo invite.Repository
	agencyRepo agency.Repository
	mailer     InviteMailer
	ttl        time.Duration
	logger     logger.Interface
}

func NewCreateInviteUseCase(
	inviteRepo invite.Repository,
	agencyRepo agency.Repository,
	mailer InviteMailer,
	ttl time.Duration,
	logger logger.Interface,
) *CreateInviteUseCase {
	return &CreateInviteUseCase{
		inviteRepo: inviteRepo,
		agencyRepo: agencyRepo,
		mailer:     mailer,
		ttl:        ttl,
		logger:     logger,
	}
}

// Execute creates a pending invite and emails its one-time link. A second
// pending invite for the same email within the agency is rejected.
func (uc *CreateInviteUseCase) Execute(ctx context.Context, cmd CreateInviteCommand) (*invite.TeamInvite, error) {
	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, apperrors.NewInvalidArgumentError("invalid role")
	}

	ag, err := uc.agencyRepo.FindByID(ctx, cmd.AgencyID)
	if err != nil {
		if errors.Is(err, agency.ErrAgencyNotFound) {
			return nil, apperrors.NewNotFoundError("agency not found")
		}
		uc.logger.Errorw("failed to get agency", "error", err, "agency_id", cmd.AgencyID)
		return nil, apperrors.NewInternalError("failed to get agency")
	}

	existing, err := uc.inviteRepo.FindPendingByEmail(ctx, cmd.AgencyID, cmd.Email)
	if err != nil && !errors.Is(err, invite.ErrInviteNotFound) {
		uc.logger.Errorw("failed to check pending invites", "error", err, "agency_id", cmd.AgencyID)
		return nil, apperrors.NewInternalError("failed to check pending invites")
	}
	if existing != nil && !existing.IsExpired(time.Now().UTC()) {
		return nil, apperrors.NewConflictError("an invite for this email is already pending")
	}

	sid, err := id.NewInviteID()
	if err != nil {
		uc.logger.Errorw("failed to generate invite id", "error", err)
		return nil, apperrors.NewInternalError("failed to generate invite id")
	}

	inv, token, err := invite.NewTeamInvite(sid, cmd.AgencyID, cmd.Email, role, cmd.InvitedBy, uc.ttl)
	if err != nil {
		return nil, apperrors.NewInvalidArgumentError(err.Error())
	}

	if err := uc.inviteRepo.Create(ctx, inv); err != nil {
		uc.logger.Errorw("failed to create invite", "error", err, "agency_id", cmd.AgencyID)
		return nil, apperrors.NewInternalError("failed to create invite")
	}

	if err := uc.mailer.SendInvite(ctx, inv.Email(), ag.Name(), string(inv.Role()), token, inv.ExpiresAt()); err != nil {
		// The invite stays valid; the admin can resend from the team page.
		uc.logger.Warnw("failed to send invite email", "error", err, "invite_sid", inv.SID())
	}

	uc.logger.Infow("invite created", "invite_sid", inv.SID(), "agency_id", cmd.AgencyID, "role", role)
	return inv, nil
}
