package usecases

import (
	"context"

	"purser/internal/domain/invite"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/logger"
	"purser/internal/shared/utils"
)

type ListInvitesCommand struct {
	AgencyID   uint
	Pagination utils.Pagination
}

type ListInvitesResult struct {
	Invites []*invite.TeamInvite
	Total   int64
}

type ListInvitesUseCase struct {
	inviteRepo invite.Repository
	logger     logger.Interface
}

func NewListInvitesUseCase(inviteRepo invite.Repository, logger logger.Interface) *ListInvitesUseCase {
	return &ListInvitesUseCase{
		inviteRepo: inviteRepo,
		logger:     logger,
	}
}

func (uc *ListInvitesUseCase) Execute(ctx context.Context, cmd ListInvitesCommand) (*ListInvitesResult, error) {
	p := utils.ValidatePagination(cmd.Pagination.Page, cmd.Pagination.PageSize)

	invites, total, err := uc.inviteRepo.ListByAgency(ctx, cmd.AgencyID, p.Offset(), p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list invites", "error", err, "agency_id", cmd.AgencyID)
		return nil, apperrors.NewInternalError("failed to list invites")
	}

	return &ListInvitesResult{Invites: invites, Total: total}, nil
}
