package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"purser/internal/domain/agency"
	"purser/internal/infrastructure/persistence/mappers"
	"purser/internal/infrastructure/persistence/models"
	"purser/internal/shared/db"
)

type AgencyRepository struct {
	db *gorm.DB
}

func NewAgencyRepository(db *gorm.DB) *AgencyRepository {
	return &AgencyRepository{db: db}
}

func (r *AgencyRepository) Create(ctx context.Context, a *agency.Agency) error {
	model, err := mappers.AgencyToModel(a)
	if err != nil {
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create agency: %w", err)
	}

	// Write back the auto-generated ID to the domain object
	return a.SetID(model.ID)
}

// Update writes the whole aggregate guarded by the version the aggregate
// carried before mutation. Domain mutations bump the version, so the guard
// matches version-1.
func (r *AgencyRepository) Update(ctx context.Context, a *agency.Agency) error {
	model, err := mappers.AgencyToModel(a)
	if err != nil {
		return err
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.AgencyModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"name":               model.Name,
			"billing_email":      model.BillingEmail,
			"contact_email":      model.ContactEmail,
			"branding":           model.Branding,
			"stripe_customer_id": model.StripeCustomerID,
			"subscription_id":    model.SubscriptionID,
			"billing_status":     model.BillingStatus,
			"plan_key":           model.PlanKey,
			"current_period_end": model.CurrentPeriodEnd,
			"version":            model.Version,
			"updated_at":         model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update agency: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return agency.ErrVersionConflict
	}

	return nil
}

func (r *AgencyRepository) FindByID(ctx context.Context, id uint) (*agency.Agency, error) {
	var model models.AgencyModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, agency.ErrAgencyNotFound
		}
		return nil, fmt.Errorf("failed to find agency: %w", err)
	}

	return mappers.AgencyToDomain(&model)
}

func (r *AgencyRepository) FindBySID(ctx context.Context, sid string) (*agency.Agency, error) {
	var model models.AgencyModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, agency.ErrAgencyNotFound
		}
		return nil, fmt.Errorf("failed to find agency by sid: %w", err)
	}

	return mappers.AgencyToDomain(&model)
}

func (r *AgencyRepository) FindByStripeCustomerID(ctx context.Context, customerID string) (*agency.Agency, error) {
	var model models.AgencyModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("stripe_customer_id = ?", customerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, agency.ErrAgencyNotFound
		}
		return nil, fmt.Errorf("failed to find agency by customer id: %w", err)
	}

	return mappers.AgencyToDomain(&model)
}

func (r *AgencyRepository) List(ctx context.Context, offset, limit int) ([]*agency.Agency, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.AgencyModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count agencies: %w", err)
	}

	var agencyModels []models.AgencyModel
	if err := tx.
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&agencyModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list agencies: %w", err)
	}

	agencies := make([]*agency.Agency, len(agencyModels))
	for i := range agencyModels {
		a, err := mappers.AgencyToDomain(&agencyModels[i])
		if err != nil {
			return nil, 0, err
		}
		agencies[i] = a
	}

	return agencies, total, nil
}
