package usecases

import (
	"context"
	"errors"
	"time"

	"purser/internal/domain/booking"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/logger"
)

type SetCabinDeadlinesCommand struct {
	AgencyID   uint
	BookingSID string
	CabinIndex int
	Deadlines  []DeadlineInput
}

type SetCabinDeadlinesUseCase struct {
	bookingRepo booking.Repository
	tx          Transactor
	logger      logger.Interface
}

func NewSetCabinDeadlinesUseCase(bookingRepo booking.Repository, tx Transactor, logger logger.Interface) *SetCabinDeadlinesUseCase {
	return &SetCabinDeadlinesUseCase{
		bookingRepo: bookingRepo,
		tx:          tx,
		logger:      logger,
	}
}

// Execute replaces a cabin's payment schedule. Statuses are recomputed
// immediately against the cabin's current paid amount.
func (uc *SetCabinDeadlinesUseCase) Execute(ctx context.Context, cmd SetCabinDeadlinesCommand) (*booking.Booking, error) {
	deadlines := make([]booking.PaymentDeadline, 0, len(cmd.Deadlines))
	for _, d := range cmd.Deadlines {
		if d.AmountCAD <= 0 {
			return nil, apperrors.NewInvalidArgumentError("deadline amounts must be positive")
		}
		deadlines = append(deadlines, booking.PaymentDeadline{
			Label:     d.Label,
			DueDate:   d.DueDate,
			AmountCAD: d.AmountCAD,
		})
	}

	var result *booking.Booking
	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.FindBySID(txCtx, cmd.BookingSID)
		if err != nil {
			return err
		}
		if b.AgencyID() != cmd.AgencyID {
			return booking.ErrBookingNotFound
		}

		if err := b.SetCabinDeadlines(cmd.CabinIndex, deadlines, time.Now().UTC()); err != nil {
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
		case errors.Is(err, booking.ErrCabinIndexOutOfRange):
			return nil, apperrors.NewInvalidArgumentError("cabin index out of range")
		default:
			uc.logger.Errorw("failed to set deadlines", "error", err, "booking_sid", cmd.BookingSID)
			return nil, apperrors.NewInternalError("failed to set deadlines")
		}
	}

	return result, nil
}
