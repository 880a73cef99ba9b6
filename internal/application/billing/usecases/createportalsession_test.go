package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"purser/internal/domain/agency"
	apperrors "purser/internal/shared/errors"
)

func TestCreatePortalSession(t *testing.T) {
	repo := new(mockAgencyRepo)
	gw := new(mockBillingGateway)
	ag := newCheckoutAgency(t)
	require.NoError(t, ag.AttachBillingCustomer("cus_abc"))

	repo.On("FindByID", mock.Anything, uint(1)).Return(ag, nil)
	gw.On("CreatePortalSession", mock.Anything, "cus_abc", "https://app.example/billing").
		Return("https://portal.example/p/xyz", nil)

	uc := NewCreatePortalSessionUseCase(repo, gw, "https://app.example/billing", newTestLogger())
	res, err := uc.Execute(context.Background(), CreatePortalSessionCommand{AgencyID: 1})

	require.NoError(t, err)
	assert.Equal(t, "https://portal.example/p/xyz", res.PortalURL)
}

func TestCreatePortalSession_NoCustomer(t *testing.T) {
	repo := new(mockAgencyRepo)
	gw := new(mockBillingGateway)
	ag := newCheckoutAgency(t)

	repo.On("FindByID", mock.Anything, uint(1)).Return(ag, nil)

	uc := NewCreatePortalSessionUseCase(repo, gw, "https://app.example/billing", newTestLogger())
	_, err := uc.Execute(context.Background(), CreatePortalSessionCommand{AgencyID: 1})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeFailedPrecondition, appErr.Type)
	gw.AssertNotCalled(t, "CreatePortalSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePortalSession_MissingAgencyIsPreconditionFailure(t *testing.T) {
	repo := new(mockAgencyRepo)
	gw := new(mockBillingGateway)

	repo.On("FindByID", mock.Anything, uint(9)).Return(nil, agency.ErrAgencyNotFound)

	uc := NewCreatePortalSessionUseCase(repo, gw, "https://app.example/billing", newTestLogger())
	_, err := uc.Execute(context.Background(), CreatePortalSessionCommand{AgencyID: 9})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeFailedPrecondition, appErr.Type)
}
