package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"purser/internal/domain/agency"
	"purser/internal/domain/invite"
	"purser/internal/shared/authorization"
	apperrors "purser/internal/shared/errors"
)

func testAgency(t *testing.T) *agency.Agency {
	t.Helper()
	ag, err := agency.NewAgency("ag_test12345678", "Horizon Cruises", "billing@horizon.example", "")
	require.NoError(t, err)
	return ag
}

func TestCreateInvite(t *testing.T) {
	inviteRepo := new(mockInviteRepo)
	agencyRepo := new(mockAgencyRepo)
	mailer := new(mockMailer)
	ag := testAgency(t)

	agencyRepo.On("FindByID", mock.Anything, uint(1)).Return(ag, nil)
	inviteRepo.On("FindPendingByEmail", mock.Anything, uint(1), "new@crew.example").Return(nil, invite.ErrInviteNotFound)
	inviteRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendInvite", mock.Anything, "new@crew.example", "Horizon Cruises", "member",
		mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	uc := NewCreateInviteUseCase(inviteRepo, agencyRepo, mailer, 72*time.Hour, newTestLogger())
	inv, err := uc.Execute(context.Background(), CreateInviteCommand{
		AgencyID:  1,
		Email:     "new@crew.example",
		Role:      "member",
		InvitedBy: 7,
	})

	require.NoError(t, err)
	assert.Equal(t, invite.StatusPending, inv.Status())
	mailer.AssertExpectations(t)

	// The token that went out by email hashes to what was stored.
	sentToken := mailer.Calls[0].Arguments.String(4)
	assert.True(t, inv.MatchesToken(sentToken))
}

func TestCreateInvite_PendingDuplicateRejected(t *testing.T) {
	inviteRepo := new(mockInviteRepo)
	agencyRepo := new(mockAgencyRepo)
	mailer := new(mockMailer)
	ag := testAgency(t)

	existing, _, err := invite.NewTeamInvite("inv_prev12345678", 1, "new@crew.example", authorization.RoleMember, 7, 72*time.Hour)
	require.NoError(t, err)

	agencyRepo.On("FindByID", mock.Anything, uint(1)).Return(ag, nil)
	inviteRepo.On("FindPendingByEmail", mock.Anything, uint(1), "new@crew.example").Return(existing, nil)

	uc := NewCreateInviteUseCase(inviteRepo, agencyRepo, mailer, 72*time.Hour, newTestLogger())
	_, err = uc.Execute(context.Background(), CreateInviteCommand{
		AgencyID: 1,
		Email:    "new@crew.example",
		Role:     "member",
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
	inviteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateInvite_MailFailureKeepsInvite(t *testing.T) {
	inviteRepo := new(mockInviteRepo)
	agencyRepo := new(mockAgencyRepo)
	mailer := new(mockMailer)
	ag := testAgency(t)

	agencyRepo.On("FindByID", mock.Anything, uint(1)).Return(ag, nil)
	inviteRepo.On("FindPendingByEmail", mock.Anything, uint(1), mock.Anything).Return(nil, invite.ErrInviteNotFound)
	inviteRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendInvite", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	uc := NewCreateInviteUseCase(inviteRepo, agencyRepo, mailer, 72*time.Hour, newTestLogger())
	inv, err := uc.Execute(context.Background(), CreateInviteCommand{
		AgencyID: 1,
		Email:    "new@crew.example",
		Role:     "admin",
	})

	require.NoError(t, err)
	assert.Equal(t, invite.StatusPending, inv.Status())
}

func TestAcceptInvite(t *testing.T) {
	inviteRepo := new(mockInviteRepo)
	userRepo := new(mockUserRepo)
	hasher := new(mockHasher)

	inv, token, err := invite.NewTeamInvite("inv_test12345678", 3, "new@crew.example", authorization.RoleAdmin, 7, 72*time.Hour)
	require.NoError(t, err)

	inviteRepo.On("FindByTokenHash", mock.Anything, invite.HashToken(token)).Return(inv, nil)
	hasher.On("Hash", "s3cret-pass").Return("$2a$10$hash", nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	inviteRepo.On("Update", mock.Anything, inv).Return(nil)

	uc := NewAcceptInviteUseCase(inviteRepo, userRepo, hasher, passthroughTx{}, newTestLogger())
	u, err := uc.Execute(context.Background(), AcceptInviteCommand{
		Token:    token,
		Name:     "New Crew",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.Equal(t, invite.StatusAccepted, inv.Status())
	assert.Equal(t, uint(3), u.AgencyID())
	assert.Equal(t, "new@crew.example", u.Email())
	assert.True(t, u.IsAdmin(), "role carried over from the invite")
}

func TestAcceptInvite_UnknownToken(t *testing.T) {
	inviteRepo := new(mockInviteRepo)
	inviteRepo.On("FindByTokenHash", mock.Anything, mock.Anything).Return(nil, invite.ErrInviteNotFound)

	uc := NewAcceptInviteUseCase(inviteRepo, new(mockUserRepo), new(mockHasher), passthroughTx{}, newTestLogger())
	_, err := uc.Execute(context.Background(), AcceptInviteCommand{Token: "bogus", Password: "p"})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestAcceptInvite_Expired(t *testing.T) {
	inviteRepo := new(mockInviteRepo)

	inv, token, err := invite.NewTeamInvite("inv_test12345678", 3, "new@crew.example", authorization.RoleMember, 7, time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	inviteRepo.On("FindByTokenHash", mock.Anything, invite.HashToken(token)).Return(inv, nil)

	uc := NewAcceptInviteUseCase(inviteRepo, new(mockUserRepo), new(mockHasher), passthroughTx{}, newTestLogger())
	_, err = uc.Execute(context.Background(), AcceptInviteCommand{Token: token, Password: "p"})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeFailedPrecondition, appErr.Type)
}

func TestRevokeInvite(t *testing.T) {
	inviteRepo := new(mockInviteRepo)

	inv, _, err := invite.NewTeamInvite("inv_test12345678", 1, "new@crew.example", authorization.RoleMember, 7, 72*time.Hour)
	require.NoError(t, err)

	inviteRepo.On("FindBySID", mock.Anything, inv.SID()).Return(inv, nil)
	inviteRepo.On("Update", mock.Anything, inv).Return(nil)

	uc := NewRevokeInviteUseCase(inviteRepo, newTestLogger())
	err = uc.Execute(context.Background(), RevokeInviteCommand{AgencyID: 1, InviteSID: inv.SID()})

	require.NoError(t, err)
	assert.Equal(t, invite.StatusRevoked, inv.Status())
}

func TestRevokeInvite_CrossAgencyHidden(t *testing.T) {
	inviteRepo := new(mockInviteRepo)

	inv, _, err := invite.NewTeamInvite("inv_test12345678", 2, "new@crew.example", authorization.RoleMember, 7, 72*time.Hour)
	require.NoError(t, err)

	inviteRepo.On("FindBySID", mock.Anything, inv.SID()).Return(inv, nil)

	uc := NewRevokeInviteUseCase(inviteRepo, newTestLogger())
	err = uc.Execute(context.Background(), RevokeInviteCommand{AgencyID: 1, InviteSID: inv.SID()})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	inviteRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
