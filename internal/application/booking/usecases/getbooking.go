package usecases

import (
	"context"
	"errors"

	"purser/internal/domain/booking"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/logger"
)

type GetBookingCommand struct {
	AgencyID   uint
	BookingSID string
}

type GetBookingUseCase struct {
	bookingRepo booking.Repository
	logger      logger.Interface
}

func NewGetBookingUseCase(bookingRepo booking.Repository, logger logger.Interface) *GetBookingUseCase {
	return &GetBookingUseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute fetches one booking scoped to the caller's agency. A booking owned
// by another agency reports not found rather than revealing its existence.
func (uc *GetBookingUseCase) Execute(ctx context.Context, cmd GetBookingCommand) (*booking.Booking, error) {
	b, err := uc.bookingRepo.FindBySID(ctx, cmd.BookingSID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, apperrors.NewNotFoundError("booking not found")
		}
		uc.logger.Errorw("failed to get booking", "error", err, "booking_sid", cmd.BookingSID)
		return nil, apperrors.NewInternalError("failed to get booking")
	}
	if b.AgencyID() != cmd.AgencyID {
		return nil, apperrors.NewNotFoundError("booking not found")
	}
	return b, nil
}
