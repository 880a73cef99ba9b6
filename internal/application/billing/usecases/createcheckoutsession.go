package usecases

import (
	"context"
	"errors"
	"fmt"

	"purser/internal/domain/agency"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/logger"
)

type CreateCheckoutSessionCommand struct {
	AgencyID uint
	PlanKey  string
	Locale   string
}

type CreateCheckoutSessionResult struct {
	SessionID   string
	CheckoutURL string
}

type CreateCheckoutSessionUseCase struct {
	agencyRepo agency.Repository
	gateway    BillingGateway
	catalog    *agency.Catalog
	successURL string
	cancelURL  string
	logger     logger.Interface
}

func NewCreateCheckoutSessionUseCase(
	agencyRepo agency.Repository,
	gateway BillingGateway,
	catalog *agency.Catalog,
	successURL, cancelURL string,
	logger logger.Interface,
) *CreateCheckoutSessionUseCase {
	return &CreateCheckoutSessionUseCase{
		agencyRepo: agencyRepo,
		gateway:    gateway,
		catalog:    catalog,
		successURL: successURL,
		cancelURL:  cancelURL,
		logger:     logger,
	}
}

// Execute starts a subscription checkout for the agency. A billing customer
// is created on first use and persisted immediately, before the checkout
// session is attempted, so a session failure never orphans the customer.
func (uc *CreateCheckoutSessionUseCase) Execute(ctx context.Context, cmd CreateCheckoutSessionCommand) (*CreateCheckoutSessionResult, error) {
	planKey := agency.PlanKey(cmd.PlanKey)
	if !planKey.Purchasable() {
		return nil, apperrors.NewInvalidArgumentError(fmt.Sprintf("plan %q cannot be purchased", cmd.PlanKey))
	}

	priceID, err := uc.catalog.PriceIDForPlan(planKey)
	if err != nil {
		return nil, apperrors.NewInvalidArgumentError(err.Error())
	}

	ag, err := uc.agencyRepo.FindByID(ctx, cmd.AgencyID)
	if err != nil {
		if errors.Is(err, agency.ErrAgencyNotFound) {
			return nil, apperrors.NewFailedPreconditionError("no agency for caller")
		}
		uc.logger.Errorw("failed to get agency", "error", err, "agency_id", cmd.AgencyID)
		return nil, apperrors.NewInternalError("failed to get agency")
	}

	if !ag.Billing().HasCustomer() {
		customerID, err := uc.gateway.CreateCustomer(ctx, ag.Name(), ag.BillingEmail(), ag.SID())
		if err != nil {
			if errors.Is(err, ErrProviderRejected) {
				return nil, apperrors.NewInvalidArgumentError(err.Error())
			}
			uc.logger.Errorw("failed to create billing customer", "error", err, "agency_id", ag.ID())
			return nil, apperrors.NewInternalError("failed to create billing customer")
		}

		if err := ag.AttachBillingCustomer(customerID); err != nil {
			return nil, apperrors.NewInternalError(err.Error())
		}
		if err := uc.agencyRepo.Update(ctx, ag); err != nil {
			uc.logger.Errorw("failed to persist billing customer", "error", err, "agency_id", ag.ID())
			return nil, apperrors.NewInternalError("failed to update agency")
		}

		uc.logger.Infow("billing customer created", "agency_id", ag.ID(), "customer_id", customerID)
	}

	session, err := uc.gateway.CreateCheckoutSession(ctx, CheckoutSessionParams{
		CustomerID: ag.Billing().StripeCustomerID,
		PriceID:    priceID,
		AgencySID:  ag.SID(),
		Locale:     cmd.Locale,
		SuccessURL: uc.successURL,
		CancelURL:  uc.cancelURL,
	})
	if err != nil {
		if errors.Is(err, ErrProviderRejected) {
			return nil, apperrors.NewInvalidArgumentError(err.Error())
		}
		uc.logger.Errorw("failed to create checkout session", "error", err, "agency_id", ag.ID())
		return nil, apperrors.NewInternalError("failed to create checkout session")
	}

	ag.MarkCheckoutPending()
	if err := uc.agencyRepo.Update(ctx, ag); err != nil {
		uc.logger.Errorw("failed to mark checkout pending", "error", err, "agency_id", ag.ID())
		return nil, apperrors.NewInternalError("failed to update agency")
	}

	uc.logger.Infow("checkout session created", "agency_id", ag.ID(), "plan", planKey, "session_id", session.SessionID)
	return &CreateCheckoutSessionResult{SessionID: session.SessionID, CheckoutURL: session.URL}, nil
}
