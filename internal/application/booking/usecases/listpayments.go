package usecases

import (
	"context"
	"errors"

	"purser/internal/domain/booking"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/logger"
)

type ListPaymentsCommand struct {
	AgencyID   uint
	BookingSID string
}

type ListPaymentsUseCase struct {
	bookingRepo booking.Repository
	paymentRepo booking.PaymentRepository
	logger      logger.Interface
}

func NewListPaymentsUseCase(
	bookingRepo booking.Repository,
	paymentRepo booking.PaymentRepository,
	logger logger.Interface,
) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

func (uc *ListPaymentsUseCase) Execute(ctx context.Context, cmd ListPaymentsCommand) ([]*booking.Payment, error) {
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

	payments, err := uc.paymentRepo.ListByBooking(ctx, b.ID())
	if err != nil {
		uc.logger.Errorw("failed to list payments", "error", err, "booking_sid", cmd.BookingSID)
		return nil, apperrors.NewInternalError("failed to list payments")
	}
	return payments, nil
}
