package usecases

import (
	"context"

	"purser/internal/domain/user"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/logger"
	"purser/internal/shared/utils"
)

type ListTeamMembersCommand struct {
	AgencyID   uint
	Pagination utils.Pagination
}

type ListTeamMembersResult struct {
	Users []*user.User
	Total int64
}

type ListTeamMembersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListTeamMembersUseCase(userRepo user.Repository, logger logger.Interface) *ListTeamMembersUseCase {
	return &ListTeamMembersUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListTeamMembersUseCase) Execute(ctx context.Context, cmd ListTeamMembersCommand) (*ListTeamMembersResult, error) {
	p := utils.ValidatePagination(cmd.Pagination.Page, cmd.Pagination.PageSize)

	users, total, err := uc.userRepo.ListByAgency(ctx, cmd.AgencyID, p.Offset(), p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list team members", "error", err, "agency_id", cmd.AgencyID)
		return nil, apperrors.NewInternalError("failed to list team members")
	}

	return &ListTeamMembersResult{Users: users, Total: total}, nil
}
