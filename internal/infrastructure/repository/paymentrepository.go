package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"purser/internal/domain/booking"
	"purser/internal/infrastructure/persistence/mappers"
	"purser/internal/infrastructure/persistence/models"
	"purser/internal/shared/db"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *booking.Payment) error {
	model := mappers.PaymentToModel(p)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return p.SetID(model.ID)
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID uint) ([]*booking.Payment, error) {
	var paymentModels []models.PaymentModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("booking_id = ?", bookingID).
		Order("received_at ASC, id ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	payments := make([]*booking.Payment, len(paymentModels))
	for i := range paymentModels {
		p, err := mappers.PaymentToDomain(&paymentModels[i])
		if err != nil {
			return nil, err
		}
		payments[i] = p
	}

	return payments, nil
}
