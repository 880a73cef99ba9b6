package usecases

import (
	"context"

	"purser/internal/domain/booking"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/logger"
	"purser/internal/shared/utils"
)

type ListBookingsCommand struct {
	AgencyID   uint
	Pagination utils.Pagination
}

type ListBookingsResult struct {
	Bookings []*booking.Booking
	Total    int64
}

type ListBookingsUseCase struct {
	bookingRepo booking.Repository
	logger      logger.Interface
}

func NewListBookingsUseCase(bookingRepo booking.Repository, logger logger.Interface) *ListBookingsUseCase {
	return &ListBookingsUseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

func (uc *ListBookingsUseCase) Execute(ctx context.Context, cmd ListBookingsCommand) (*ListBookingsResult, error) {
	p := utils.ValidatePagination(cmd.Pagination.Page, cmd.Pagination.PageSize)

	bookings, total, err := uc.bookingRepo.ListByAgency(ctx, cmd.AgencyID, p.Offset(), p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list bookings", "error", err, "agency_id", cmd.AgencyID)
		return nil, apperrors.NewInternalError("failed to list bookings")
	}

	return &ListBookingsResult{Bookings: bookings, Total: total}, nil
}
