package usecases

import (
	"context"
	"errors"
	"time"

	"purser/internal/domain/booking"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/logger"
)

type AttributeGeneralPaymentCommand struct {
	AgencyID   uint
	BookingSID string
	AmountCAD  int64
	CabinIndex int
}

type AttributeGeneralPaymentUseCase struct {
	bookingRepo booking.Repository
	tx          Transactor
	logger      logger.Interface
}

func NewAttributeGeneralPaymentUseCase(
	bookingRepo booking.Repository,
	tx Transactor,
	logger logger.Interface,
) *AttributeGeneralPaymentUseCase {
	return &AttributeGeneralPaymentUseCase{
		bookingRepo: bookingRepo,
		tx:          tx,
		logger:      logger,
	}
}

// Execute moves part of the booking's general (unattributed) balance into one
// cabin's ledger. The global paid amount is unchanged; only the split between
// the general bucket and the cabin moves. Attribution is always explicit,
// never automatic.
func (uc *AttributeGeneralPaymentUseCase) Execute(ctx context.Context, cmd AttributeGeneralPaymentCommand) (*booking.Booking, error) {
	var result *booking.Booking

	for attempt := 0; ; attempt++ {
		err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
			b, err := uc.bookingRepo.FindBySID(txCtx, cmd.BookingSID)
			if err != nil {
				return err
			}
			if b.AgencyID() != cmd.AgencyID {
				return booking.ErrBookingNotFound
			}

			if err := b.AttributeGeneralPayment(cmd.AmountCAD, cmd.CabinIndex, time.Now().UTC()); err != nil {
				return err
			}
			if err := uc.bookingRepo.Update(txCtx, b); err != nil {
				return err
			}

			result = b
			return nil
		})
		if err == nil {
			break
		}
		if errors.Is(err, booking.ErrVersionConflict) && attempt < maxConflictRetries {
			continue
		}
		return nil, uc.translate(err, cmd)
	}

	uc.logger.Infow("general payment attributed",
		"booking_sid", cmd.BookingSID,
		"amount_cad", cmd.AmountCAD,
		"cabin_index", cmd.CabinIndex,
	)
	return result, nil
}

func (uc *AttributeGeneralPaymentUseCase) translate(err error, cmd AttributeGeneralPaymentCommand) error {
	switch {
	case errors.Is(err, booking.ErrBookingNotFound):
		return apperrors.NewNotFoundError("booking not found")
	case errors.Is(err, booking.ErrInsufficientGeneralBalance):
		return apperrors.NewFailedPreconditionError("general balance is smaller than the attribution amount")
	case errors.Is(err, booking.ErrCabinIndexOutOfRange):
		return apperrors.NewInvalidArgumentError("cabin index out of range")
	case errors.Is(err, booking.ErrNonPositiveAmount):
		return apperrors.NewInvalidArgumentError("attribution amount must be positive")
	case errors.Is(err, booking.ErrVersionConflict):
		return apperrors.NewConflictError("booking was modified concurrently, please retry")
	default:
		uc.logger.Errorw("failed to attribute general payment", "error", err, "booking_sid", cmd.BookingSID)
		return apperrors.NewInternalError("failed to attribute general payment")
	}
}
