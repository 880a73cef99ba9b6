package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"purser/internal/domain/agency"
	"purser/internal/infrastructure/persistence/models"
)

func AgencyToModel(a *agency.Agency) (*models.AgencyModel, error) {
	brandingBytes, err := json.Marshal(a.Branding())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal branding: %w", err)
	}

	billing := a.Billing()

	model := &models.AgencyModel{
		ID:               a.ID(),
		SID:              a.SID(),
		Name:             a.Name(),
		BillingEmail:     a.BillingEmail(),
		ContactEmail:     a.ContactEmail(),
		Branding:         datatypes.JSON(brandingBytes),
		BillingStatus:    string(billing.Status),
		PlanKey:          string(billing.PlanKey),
		CurrentPeriodEnd: billing.CurrentPeriodEnd,
		Version:          a.Version(),
		CreatedAt:        a.CreatedAt(),
		UpdatedAt:        a.UpdatedAt(),
	}

	if billing.StripeCustomerID != "" {
		id := billing.StripeCustomerID
		model.StripeCustomerID = &id
	}
	if billing.SubscriptionID != "" {
		id := billing.SubscriptionID
		model.SubscriptionID = &id
	}

	return model, nil
}

func AgencyToDomain(model *models.AgencyModel) (*agency.Agency, error) {
	var branding agency.Branding
	if len(model.Branding) > 0 {
		if err := json.Unmarshal(model.Branding, &branding); err != nil {
			return nil, fmt.Errorf("failed to unmarshal branding: %w", err)
		}
	}

	billing := agency.Billing{
		Status:           agency.BillingStatus(model.BillingStatus),
		PlanKey:          agency.PlanKey(model.PlanKey),
		CurrentPeriodEnd: model.CurrentPeriodEnd,
	}
	if model.StripeCustomerID != nil {
		billing.StripeCustomerID = *model.StripeCustomerID
	}
	if model.SubscriptionID != nil {
		billing.SubscriptionID = *model.SubscriptionID
	}

	return agency.ReconstructAgency(
		model.ID,
		model.SID,
		model.Name,
		model.BillingEmail,
		model.ContactEmail,
		branding,
		billing,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
