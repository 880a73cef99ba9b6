package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"purser/internal/domain/booking"
	"purser/internal/infrastructure/persistence/mappers"
	"purser/internal/infrastructure/persistence/models"
	"purser/internal/shared/db"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	model, err := mappers.BookingToModel(b)
	if err != nil {
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	// Write back the auto-generated ID to the domain object
	return b.SetID(model.ID)
}

// Update writes the whole aggregate, cabins included, as a single row update
// guarded by the pre-mutation version.
func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	model, err := mappers.BookingToModel(b)
	if err != nil {
		return err
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.BookingModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"group_name":         model.GroupName,
			"family_name":        model.FamilyName,
			"contact_email":      model.ContactEmail,
			"cabins":             model.Cabins,
			"total_cad_global":   model.TotalCADGlobal,
			"paid_cad_global":    model.PaidCADGlobal,
			"balance_cad_global": model.BalanceCADGlobal,
			"general_paid_cad":   model.GeneralPaidCAD,
			"version":            model.Version,
			"updated_at":         model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return booking.ErrVersionConflict
	}

	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uint) (*booking.Booking, error) {
	var model models.BookingModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return mappers.BookingToDomain(&model)
}

func (r *BookingRepository) FindBySID(ctx context.Context, sid string) (*booking.Booking, error) {
	var model models.BookingModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking by sid: %w", err)
	}

	return mappers.BookingToDomain(&model)
}

func (r *BookingRepository) ListByAgency(ctx context.Context, agencyID uint, offset, limit int) ([]*booking.Booking, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.BookingModel{}).
		Scopes(db.ByAgency(agencyID)).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var bookingModels []models.BookingModel
	if err := tx.
		Scopes(db.ByAgency(agencyID)).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&bookingModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*booking.Booking, len(bookingModels))
	for i := range bookingModels {
		b, err := mappers.BookingToDomain(&bookingModels[i])
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = b
	}

	return bookings, total, nil
}
