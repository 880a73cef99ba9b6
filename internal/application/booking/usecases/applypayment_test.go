package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"purser/internal/domain/booking"
	apperrors "purser/internal/shared/errors"
)

// storedBooking builds a persisted-looking booking with a database ID.
func storedBooking(t *testing.T, agencyID uint) *booking.Booking {
	t.Helper()
	fresh, err := booking.NewBooking("bk_test12345678", agencyID, "Alaska 2026", "Tremblay", "", []booking.CabinAccount{
		{CabinNumber: "7120", SubtotalCAD: 100000, GratuitiesCAD: 10000},
		{CabinNumber: "7122", SubtotalCAD: 250000, GratuitiesCAD: 20000},
	})
	require.NoError(t, err)

	b, err := booking.ReconstructBooking(7, fresh.SID(), agencyID, fresh.GroupName(), fresh.FamilyName(), "",
		fresh.Cabins(), fresh.TotalCADGlobal(), fresh.PaidCADGlobal(), fresh.BalanceCADGlobal(), fresh.GeneralPaidCAD(),
		1, fresh.CreatedAt(), fresh.UpdatedAt())
	require.NoError(t, err)
	return b
}

func newApplyPaymentUseCase(repo *mockBookingRepo, payments *mockPaymentRepo) *ApplyPaymentUseCase {
	return NewApplyPaymentUseCase(repo, payments, passthroughTx{}, newTestLogger())
}

func TestApplyPayment_CabinTargeted(t *testing.T) {
	repo := new(mockBookingRepo)
	payments := new(mockPaymentRepo)
	b := storedBooking(t, 1)
	idx := 0

	repo.On("FindBySID", mock.Anything, b.SID()).Return(b, nil)
	payments.On("Create", mock.Anything, mock.MatchedBy(func(p *booking.Payment) bool {
		return p.BookingID() == 7 && p.AmountCAD() == 50000 && !p.IsGeneral() && *p.CabinIndex() == 0
	})).Return(nil)
	repo.On("Update", mock.Anything, b).Return(nil)

	uc := newApplyPaymentUseCase(repo, payments)
	got, err := uc.Execute(context.Background(), ApplyPaymentCommand{
		AgencyID:   1,
		BookingSID: b.SID(),
		AmountCAD:  50000,
		CabinIndex: &idx,
		Method:     "etransfer",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(50000), got.Cabins()[0].PaidCAD)
	assert.Equal(t, int64(50000), got.PaidCADGlobal())
	payments.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestApplyPayment_General(t *testing.T) {
	repo := new(mockBookingRepo)
	payments := new(mockPaymentRepo)
	b := storedBooking(t, 1)

	repo.On("FindBySID", mock.Anything, b.SID()).Return(b, nil)
	payments.On("Create", mock.Anything, mock.MatchedBy(func(p *booking.Payment) bool {
		return p.IsGeneral() && p.AmountCAD() == 30000
	})).Return(nil)
	repo.On("Update", mock.Anything, b).Return(nil)

	uc := newApplyPaymentUseCase(repo, payments)
	got, err := uc.Execute(context.Background(), ApplyPaymentCommand{
		AgencyID:   1,
		BookingSID: b.SID(),
		AmountCAD:  30000,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(30000), got.GeneralPaidCAD())
	assert.Equal(t, int64(0), got.Cabins()[0].PaidCAD)
}

func TestApplyPayment_RetriesOnVersionConflict(t *testing.T) {
	repo := new(mockBookingRepo)
	payments := new(mockPaymentRepo)
	b := storedBooking(t, 1)

	repo.On("FindBySID", mock.Anything, b.SID()).Return(b, nil)
	payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("Update", mock.Anything, b).Return(booking.ErrVersionConflict).Once()
	repo.On("Update", mock.Anything, b).Return(nil).Once()

	uc := newApplyPaymentUseCase(repo, payments)
	_, err := uc.Execute(context.Background(), ApplyPaymentCommand{
		AgencyID:   1,
		BookingSID: b.SID(),
		AmountCAD:  1000,
	})

	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "Update", 2)
}

func TestApplyPayment_ConflictExhaustsRetries(t *testing.T) {
	repo := new(mockBookingRepo)
	payments := new(mockPaymentRepo)
	b := storedBooking(t, 1)

	repo.On("FindBySID", mock.Anything, b.SID()).Return(b, nil)
	payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("Update", mock.Anything, b).Return(booking.ErrVersionConflict)

	uc := newApplyPaymentUseCase(repo, payments)
	_, err := uc.Execute(context.Background(), ApplyPaymentCommand{
		AgencyID:   1,
		BookingSID: b.SID(),
		AmountCAD:  1000,
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
	repo.AssertNumberOfCalls(t, "Update", maxConflictRetries+1)
}

func TestApplyPayment_NonPositiveAmount(t *testing.T) {
	uc := newApplyPaymentUseCase(new(mockBookingRepo), new(mockPaymentRepo))

	_, err := uc.Execute(context.Background(), ApplyPaymentCommand{AgencyID: 1, BookingSID: "bk_x", AmountCAD: 0})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeInvalidArgument, appErr.Type)
}

func TestApplyPayment_CrossAgencyHidden(t *testing.T) {
	repo := new(mockBookingRepo)
	payments := new(mockPaymentRepo)
	b := storedBooking(t, 2)

	repo.On("FindBySID", mock.Anything, b.SID()).Return(b, nil)

	uc := newApplyPaymentUseCase(repo, payments)
	_, err := uc.Execute(context.Background(), ApplyPaymentCommand{
		AgencyID:   1,
		BookingSID: b.SID(),
		AmountCAD:  1000,
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApplyPayment_RecordCarriesReceivedAt(t *testing.T) {
	repo := new(mockBookingRepo)
	payments := new(mockPaymentRepo)
	b := storedBooking(t, 1)
	receivedAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	repo.On("FindBySID", mock.Anything, b.SID()).Return(b, nil)
	payments.On("Create", mock.Anything, mock.MatchedBy(func(p *booking.Payment) bool {
		return p.ReceivedAt().Equal(receivedAt)
	})).Return(nil)
	repo.On("Update", mock.Anything, b).Return(nil)

	uc := newApplyPaymentUseCase(repo, payments)
	_, err := uc.Execute(context.Background(), ApplyPaymentCommand{
		AgencyID:   1,
		BookingSID: b.SID(),
		AmountCAD:  2500,
		ReceivedAt: receivedAt,
	})

	require.NoError(t, err)
	payments.AssertExpectations(t)
}
