package usecases

import (
	"context"
	"errors"

	"purser/internal/domain/agency"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/logger"
)

type UpdateAgencyCommand struct {
	AgencyID     uint
	Name         *string
	ContactEmail *string
	Branding     *agency.Branding
}

type UpdateAgencyUseCase struct {
	agencyRepo agency.Repository
	logger     logger.Interface
}

func NewUpdateAgencyUseCase(agencyRepo agency.Repository, logger logger.Interface) *UpdateAgencyUseCase {
	return &UpdateAgencyUseCase{
		agencyRepo: agencyRepo,
		logger:     logger,
	}
}

// Execute applies partial profile updates. Billing fields are never touched
// here; only checkout and webhook flows mutate them.
func (uc *UpdateAgencyUseCase) Execute(ctx context.Context, cmd UpdateAgencyCommand) (*agency.Agency, error) {
	ag, err := uc.agencyRepo.FindByID(ctx, cmd.AgencyID)
	if err != nil {
		if errors.Is(err, agency.ErrAgencyNotFound) {
			return nil, apperrors.NewNotFoundError("agency not found")
		}
		uc.logger.Errorw("failed to get agency", "error", err, "agency_id", cmd.AgencyID)
		return nil, apperrors.NewInternalError("failed to get agency")
	}

	if cmd.Name != nil {
		if err := ag.Rename(*cmd.Name); err != nil {
			return nil, apperrors.NewInvalidArgumentError(err.Error())
		}
	}
	if cmd.ContactEmail != nil {
		if err := ag.UpdateContactEmail(*cmd.ContactEmail); err != nil {
			return nil, apperrors.NewInvalidArgumentError(err.Error())
		}
	}
	if cmd.Branding != nil {
		ag.UpdateBranding(*cmd.Branding)
	}

	if err := uc.agencyRepo.Update(ctx, ag); err != nil {
		uc.logger.Errorw("failed to update agency", "error", err, "agency_id", cmd.AgencyID)
		return nil, apperrors.NewInternalError("failed to update agency")
	}

	return ag, nil
}
