package usecases

import (
	"context"
	"errors"

	"purser/internal/domain/agency"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/logger"
)

type GetAgencyCommand struct {
	AgencyID uint
}

type GetAgencyUseCase struct {
	agencyRepo agency.Repository
	logger     logger.Interface
}

func NewGetAgencyUseCase(agencyRepo agency.Repository, logger logger.Interface) *GetAgencyUseCase {
	return &GetAgencyUseCase{
		agencyRepo: agencyRepo,
		logger:     logger,
	}
}

func (uc *GetAgencyUseCase) Execute(ctx context.Context, cmd GetAgencyCommand) (*agency.Agency, error) {
	ag, err := uc.agencyRepo.FindByID(ctx, cmd.AgencyID)
	if err != nil {
		if errors.Is(err, agency.ErrAgencyNotFound) {
			return nil, apperrors.NewNotFoundError("agency not found")
		}
		uc.logger.Errorw("failed to get agency", "error", err, "agency_id", cmd.AgencyID)
		return nil, apperrors.NewInternalError("failed to get agency")
	}
	return ag, nil
}
