package usecases

import (
	"context"

	"purser/internal/domain/booking"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/id"
	"purser/internal/shared/logger"
)

type CreateBookingCommand struct {
	AgencyID     uint
	GroupName    string
	FamilyName   string
	ContactEmail string
	Cabins       []CabinInput
}

type CreateBookingUseCase struct {
	bookingRepo booking.Repository
	logger      logger.Interface
}

func NewCreateBookingUseCase(bookingRepo booking.Repository, logger logger.Interface) *CreateBookingUseCase {
	return &CreateBookingUseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

func (uc *CreateBookingUseCase) Execute(ctx context.Context, cmd CreateBookingCommand) (*booking.Booking, error) {
	if len(cmd.Cabins) == 0 {
		return nil, apperrors.NewInvalidArgumentError("at least one cabin is required")
	}

	sid, err := id.NewBookingID()
	if err != nil {
		uc.logger.Errorw("failed to generate booking id", "error", err)
		return nil, apperrors.NewInternalError("failed to generate booking id")
	}

	cabins := make([]booking.CabinAccount, 0, len(cmd.Cabins))
	for _, in := range cmd.Cabins {
		cabins = append(cabins, toCabinAccount(in))
	}

	b, err := booking.NewBooking(sid, cmd.AgencyID, cmd.GroupName, cmd.FamilyName, cmd.ContactEmail, cabins)
	if err != nil {
		return nil, apperrors.NewInvalidArgumentError(err.Error())
	}

	if err := uc.bookingRepo.Create(ctx, b); err != nil {
		uc.logger.Errorw("failed to create booking", "error", err, "agency_id", cmd.AgencyID)
		return nil, apperrors.NewInternalError("failed to create booking")
	}

	uc.logger.Infow("booking created",
		"booking_sid", b.SID(),
		"agency_id", cmd.AgencyID,
		"cabins", len(cabins),
		"total_cad", b.TotalCADGlobal(),
	)
	return b, nil
}

func toCabinAccount(in CabinInput) booking.CabinAccount {
	deadlines := make([]booking.PaymentDeadline, 0, len(in.Deadlines))
	for _, d := range in.Deadlines {
		deadlines = append(deadlines, booking.PaymentDeadline{
			Label:     d.Label,
			DueDate:   d.DueDate,
			AmountCAD: d.AmountCAD,
		})
	}
	return booking.CabinAccount{
		CabinNumber:      in.CabinNumber,
		SubtotalCAD:      in.SubtotalCAD,
		GratuitiesCAD:    in.GratuitiesCAD,
		PaymentDeadlines: deadlines,
	}
}
