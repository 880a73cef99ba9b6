package usecases

import (
	"context"
	"errors"
	"time"

	"purser/internal/domain/booking"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/id"
	"purser/internal/shared/logger"
)

// maxConflictRetries bounds how many times a payment is reapplied after an
// optimistic concurrency conflict before giving up.
const maxConflictRetries = 3

type ApplyPaymentCommand struct {
	AgencyID   uint
	BookingSID string
	AmountCAD  int64
	// CabinIndex targets one cabin's ledger; nil records a general payment
	// held at the booking level until attributed.
	CabinIndex *int
	Method     string
	Note       string
	ReceivedAt time.Time
}

type ApplyPaymentUseCase struct {
	bookingRepo booking.Repository
	paymentRepo booking.PaymentRepository
	tx          Transactor
	logger      logger.Interface
}

func NewApplyPaymentUseCase(
	bookingRepo booking.Repository,
	paymentRepo booking.PaymentRepository,
	tx Transactor,
	logger logger.Interface,
) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		tx:          tx,
		logger:      logger,
	}
}

// Execute records a payment and applies it to the booking's ledgers in one
// transaction. Concurrent payments against the same booking serialize via the
// aggregate version; a conflict reloads the booking and reapplies.
func (uc *ApplyPaymentUseCase) Execute(ctx context.Context, cmd ApplyPaymentCommand) (*booking.Booking, error) {
	if cmd.AmountCAD <= 0 {
		return nil, apperrors.NewInvalidArgumentError("payment amount must be positive")
	}

	paymentSID, err := id.NewPaymentID()
	if err != nil {
		uc.logger.Errorw("failed to generate payment id", "error", err)
		return nil, apperrors.NewInternalError("failed to generate payment id")
	}

	receivedAt := cmd.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	var applied *booking.Booking
	for attempt := 0; ; attempt++ {
		applied, err = uc.attempt(ctx, cmd, paymentSID, receivedAt)
		if err == nil {
			break
		}
		if errors.Is(err, booking.ErrVersionConflict) && attempt < maxConflictRetries {
			uc.logger.Warnw("payment application conflicted, retrying",
				"booking_sid", cmd.BookingSID, "attempt", attempt+1)
			continue
		}
		return nil, uc.translate(err, cmd)
	}

	uc.logger.Infow("payment applied",
		"payment_sid", paymentSID,
		"booking_sid", cmd.BookingSID,
		"amount_cad", cmd.AmountCAD,
		"general", cmd.CabinIndex == nil,
	)
	return applied, nil
}

func (uc *ApplyPaymentUseCase) attempt(ctx context.Context, cmd ApplyPaymentCommand, paymentSID string, receivedAt time.Time) (*booking.Booking, error) {
	var result *booking.Booking

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.FindBySID(txCtx, cmd.BookingSID)
		if err != nil {
			return err
		}
		if b.AgencyID() != cmd.AgencyID {
			return booking.ErrBookingNotFound
		}

		if err := b.ApplyPayment(cmd.AmountCAD, cmd.CabinIndex, time.Now().UTC()); err != nil {
			return err
		}

		payment, err := booking.NewPayment(paymentSID, b.ID(), b.AgencyID(), cmd.AmountCAD, cmd.CabinIndex, cmd.Method, cmd.Note, receivedAt)
		if err != nil {
			return err
		}
		if err := uc.paymentRepo.Create(txCtx, payment); err != nil {
			return err
		}
		if err := uc.bookingRepo.Update(txCtx, b); err != nil {
			return err
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *ApplyPaymentUseCase) translate(err error, cmd ApplyPaymentCommand) error {
	switch {
	case errors.Is(err, booking.ErrBookingNotFound):
		return apperrors.NewNotFoundError("booking not found")
	case errors.Is(err, booking.ErrCabinIndexOutOfRange):
		return apperrors.NewInvalidArgumentError("cabin index out of range")
	case errors.Is(err, booking.ErrNonPositiveAmount):
		return apperrors.NewInvalidArgumentError("payment amount must be positive")
	case errors.Is(err, booking.ErrVersionConflict):
		uc.logger.Errorw("payment application exhausted retries", "booking_sid", cmd.BookingSID)
		return apperrors.NewConflictError("booking was modified concurrently, please retry")
	default:
		uc.logger.Errorw("failed to apply payment", "error", err, "booking_sid", cmd.BookingSID)
		return apperrors.NewInternalError("failed to apply payment")
	}
}
