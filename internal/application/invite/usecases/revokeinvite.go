package usecases

import (
	"context"
	"errors"

	"purser/internal/domain/invite"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/logger"
)

type RevokeInviteCommand struct {
	AgencyID  uint
	InviteSID string
}

type RevokeInviteUseCase struct {
	inviteRepo invite.Repository
	logger     logger.Interface
}

func NewRevokeInviteUseCase(inviteRepo invite.Repository, logger logger.Interface) *RevokeInviteUseCase {
	return &RevokeInviteUseCase{
		inviteRepo: inviteRepo,
		logger:     logger,
	}
}

func (uc *RevokeInviteUseCase) Execute(ctx context.Context, cmd RevokeInviteCommand) error {
	inv, err := uc.inviteRepo.FindBySID(ctx, cmd.InviteSID)
	if err != nil {
		if errors.Is(err, invite.ErrInviteNotFound) {
			return apperrors.NewNotFoundError("invite not found")
		}
		uc.logger.Errorw("failed to get invite", "error", err, "invite_sid", cmd.InviteSID)
		return apperrors.NewInternalError("failed to get invite")
	}
	if inv.AgencyID() != cmd.AgencyID {
		return apperrors.NewNotFoundError("invite not found")
	}

	if err := inv.Revoke(); err != nil {
		if errors.Is(err, invite.ErrInviteAlreadyAccepted) {
			return apperrors.NewFailedPreconditionError("invite has already been accepted")
		}
		return apperrors.NewFailedPreconditionError(err.Error())
	}

	if err := uc.inviteRepo.Update(ctx, inv); err != nil {
		uc.logger.Errorw("failed to update invite", "error", err, "invite_sid", cmd.InviteSID)
		return apperrors.NewInternalError("failed to update invite")
	}

	uc.logger.Infow("invite revoked", "invite_sid", cmd.InviteSID, "agency_id", cmd.AgencyID)
	return nil
}
