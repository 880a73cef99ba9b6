package usecases

import (
	"context"
	"errors"

	"purser/internal/domain/agency"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/logger"
)

type CreatePortalSessionCommand struct {
	AgencyID uint
}

type CreatePortalSessionResult struct {
	PortalURL string
}

type CreatePortalSessionUseCase struct {
	agencyRepo agency.Repository
	gateway    BillingGateway
	returnURL  string
	logger     logger.Interface
}

func NewCreatePortalSessionUseCase(
	agencyRepo agency.Repository,
	gateway BillingGateway,
	returnURL string,
	logger logger.Interface,
) *CreatePortalSessionUseCase {
	return &CreatePortalSessionUseCase{
		agencyRepo: agencyRepo,
		gateway:    gateway,
		returnURL:  returnURL,
		logger:     logger,
	}
}

// Execute opens the billing portal for an agency that already has a billing
// customer. Agencies that never started a checkout have nothing to manage.
func (uc *CreatePortalSessionUseCase) Execute(ctx context.Context, cmd CreatePortalSessionCommand) (*CreatePortalSessionResult, error) {
	ag, err := uc.agencyRepo.FindByID(ctx, cmd.AgencyID)
	if err != nil {
		if errors.Is(err, agency.ErrAgencyNotFound) {
			return nil, apperrors.NewFailedPreconditionError("no agency for caller")
		}
		uc.logger.Errorw("failed to get agency", "error", err, "agency_id", cmd.AgencyID)
		return nil, apperrors.NewInternalError("failed to get agency")
	}

	if !ag.Billing().HasCustomer() {
		return nil, apperrors.NewFailedPreconditionError("agency has no billing customer")
	}

	url, err := uc.gateway.CreatePortalSession(ctx, ag.Billing().StripeCustomerID, uc.returnURL)
	if err != nil {
		uc.logger.Errorw("failed to create portal session", "error", err, "agency_id", ag.ID())
		return nil, apperrors.NewInternalError("failed to create portal session")
	}

	return &CreatePortalSessionResult{PortalURL: url}, nil
}
