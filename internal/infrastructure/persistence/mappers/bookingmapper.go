package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"purser/internal/domain/booking"
	"purser/internal/infrastructure/persistence/models"
)

func BookingToModel(b *booking.Booking) (*models.BookingModel, error) {
	cabinsBytes, err := json.Marshal(b.Cabins())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cabins: %w", err)
	}

	return &models.BookingModel{
		ID:               b.ID(),
		SID:              b.SID(),
		AgencyID:         b.AgencyID(),
		GroupName:        b.GroupName(),
		FamilyName:       b.FamilyName(),
		ContactEmail:     b.ContactEmail(),
		Cabins:           datatypes.JSON(cabinsBytes),
		TotalCADGlobal:   b.TotalCADGlobal(),
		PaidCADGlobal:    b.PaidCADGlobal(),
		BalanceCADGlobal: b.BalanceCADGlobal(),
		GeneralPaidCAD:   b.GeneralPaidCAD(),
		Version:          b.Version(),
		CreatedAt:        b.CreatedAt(),
		UpdatedAt:        b.UpdatedAt(),
	}, nil
}

func BookingToDomain(model *models.BookingModel) (*booking.Booking, error) {
	var cabins []booking.CabinAccount
	if len(model.Cabins) > 0 {
		if err := json.Unmarshal(model.Cabins, &cabins); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cabins: %w", err)
		}
	}

	return booking.ReconstructBooking(
		model.ID,
		model.SID,
		model.AgencyID,
		model.GroupName,
		model.FamilyName,
		model.ContactEmail,
		cabins,
		model.TotalCADGlobal,
		model.PaidCADGlobal,
		model.BalanceCADGlobal,
		model.GeneralPaidCAD,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
