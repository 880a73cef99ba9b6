package usecases

import (
	"context"
	"errors"
	"time"

	"purser/internal/domain/booking"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/logger"
)

type AddCabinCommand struct {
	AgencyID   uint
	BookingSID string
	Cabin      CabinInput
}

type AddCabinUseCase struct {
	bookingRepo booking.Repository
	tx          Transactor
	logger      logger.Interface
}

func NewAddCabinUseCase(bookingRepo booking.Repository, tx Transactor, logger logger.Interface) *AddCabinUseCase {
	return &AddCabinUseCase{
		bookingRepo: bookingRepo,
		tx:          tx,
		logger:      logger,
	}
}

func (uc *AddCabinUseCase) Execute(ctx context.Context, cmd AddCabinCommand) (*booking.Booking, error) {
	var result *booking.Booking

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.FindBySID(txCtx, cmd.BookingSID)
		if err != nil {
			return err
		}
		if b.AgencyID() != cmd.AgencyID {
			return booking.ErrBookingNotFound
		}

		if err := b.AddCabin(toCabinAccount(cmd.Cabin), time.Now().UTC()); err != nil {
			return err
		}
		if err := uc.bookingRepo.Update(txCtx, b); err != nil {
			return err
		}

		result = b
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrBookingNotFound):
			return nil, apperrors.NewNotFoundError("booking not found")
		case errors.Is(err, booking.ErrNonPositiveAmount):
			return nil, apperrors.NewInvalidArgumentError("cabin amounts cannot be negative")
		default:
			uc.logger.Errorw("failed to add cabin", "error", err, "booking_sid", cmd.BookingSID)
			return nil, apperrors.NewInternalError("failed to add cabin")
		}
	}

	uc.logger.Infow("cabin added", "booking_sid", cmd.BookingSID, "cabin_number", cmd.Cabin.CabinNumber)
	return result, nil
}
