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

func TestAttributeGeneralPayment_MovesBalanceIntoCabin(t *testing.T) {
	repo := new(mockBookingRepo)
	b := storedBooking(t, 1)
	require.NoError(t, b.ApplyPayment(30000, nil, time.Now().UTC()))

	repo.On("FindBySID", mock.Anything, b.SID()).Return(b, nil)
	repo.On("Update", mock.Anything, b).Return(nil)

	uc := NewAttributeGeneralPaymentUseCase(repo, passthroughTx{}, newTestLogger())
	got, err := uc.Execute(context.Background(), AttributeGeneralPaymentCommand{
		AgencyID:   1,
		BookingSID: b.SID(),
		AmountCAD:  20000,
		CabinIndex: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10000), got.GeneralPaidCAD())
	assert.Equal(t, int64(20000), got.Cabins()[1].PaidCAD)
	assert.Equal(t, int64(30000), got.PaidCADGlobal())
}

func TestAttributeGeneralPayment_InsufficientBalance(t *testing.T) {
	repo := new(mockBookingRepo)
	b := storedBooking(t, 1)

	repo.On("FindBySID", mock.Anything, b.SID()).Return(b, nil)

	uc := NewAttributeGeneralPaymentUseCase(repo, passthroughTx{}, newTestLogger())
	_, err := uc.Execute(context.Background(), AttributeGeneralPaymentCommand{
		AgencyID:   1,
		BookingSID: b.SID(),
		AmountCAD:  5000,
		CabinIndex: 0,
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeFailedPrecondition, appErr.Type)
}

func TestAttributeGeneralPayment_NotFound(t *testing.T) {
	repo := new(mockBookingRepo)
	repo.On("FindBySID", mock.Anything, "bk_missing").Return(nil, booking.ErrBookingNotFound)

	uc := NewAttributeGeneralPaymentUseCase(repo, passthroughTx{}, newTestLogger())
	_, err := uc.Execute(context.Background(), AttributeGeneralPaymentCommand{
		AgencyID:   1,
		BookingSID: "bk_missing",
		AmountCAD:  100,
		CabinIndex: 0,
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}
