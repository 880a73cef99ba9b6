package mappers

import (
	"purser/internal/domain/booking"
	"purser/internal/infrastructure/persistence/models"
)

func PaymentToModel(p *booking.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:         p.ID(),
		SID:        p.SID(),
		BookingID:  p.BookingID(),
		AgencyID:   p.AgencyID(),
		AmountCAD:  p.AmountCAD(),
		CabinIndex: p.CabinIndex(),
		Method:     p.Method(),
		Note:       p.Note(),
		ReceivedAt: p.ReceivedAt(),
		CreatedAt:  p.CreatedAt(),
	}
}

func PaymentToDomain(model *models.PaymentModel) (*booking.Payment, error) {
	return booking.ReconstructPayment(
		model.ID,
		model.SID,
		model.BookingID,
		model.AgencyID,
		model.AmountCAD,
		model.CabinIndex,
		model.Method,
		model.Note,
		model.ReceivedAt,
		model.CreatedAt,
	)
}
