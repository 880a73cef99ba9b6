package invite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"purser/internal/shared/authorization"
)

func newTestInvite(t *testing.T, ttl time.Duration) (*TeamInvite, string) {
	t.Helper()
	inv, token, err := NewTeamInvite("inv_test12345678", 1, "Crew@Example.com", authorization.RoleMember, 7, ttl)
	require.NoError(t, err)
	return inv, token
}

func TestNewTeamInvite(t *testing.T) {
	inv, token := newTestInvite(t, 72*time.Hour)

	assert.Equal(t, StatusPending, inv.Status())
	assert.Equal(t, "crew@example.com", inv.Email(), "email normalized to lowercase")
	assert.NotEmpty(t, token)
	assert.NotEqual(t, token, inv.TokenHash(), "plaintext token is never stored")
	assert.Len(t, inv.TokenHash(), 64, "hex-encoded SHA-256")
	assert.True(t, inv.MatchesToken(token))
	assert.False(t, inv.MatchesToken(token+"x"))
	assert.Nil(t, inv.AcceptedAt())
}

func TestNewTeamInvite_Validation(t *testing.T) {
	_, _, err := NewTeamInvite("", 1, "a@b.com", authorization.RoleMember, 1, time.Hour)
	assert.Error(t, err)

	_, _, err = NewTeamInvite("inv_x", 0, "a@b.com", authorization.RoleMember, 1, time.Hour)
	assert.Error(t, err)

	_, _, err = NewTeamInvite("inv_x", 1, "  ", authorization.RoleMember, 1, time.Hour)
	assert.Error(t, err)

	_, _, err = NewTeamInvite("inv_x", 1, "a@b.com", authorization.UserRole("owner"), 1, time.Hour)
	assert.Error(t, err)

	_, _, err = NewTeamInvite("inv_x", 1, "a@b.com", authorization.RoleMember, 1, 0)
	assert.Error(t, err)
}

func TestTeamInvite_TokensAreUnique(t *testing.T) {
	_, token1 := newTestInvite(t, time.Hour)
	_, token2 := newTestInvite(t, time.Hour)
	assert.NotEqual(t, token1, token2)
}

func TestTeamInvite_Accept(t *testing.T) {
	inv, _ := newTestInvite(t, 72*time.Hour)
	now := time.Now().UTC()

	require.NoError(t, inv.Accept(now))
	assert.Equal(t, StatusAccepted, inv.Status())
	require.NotNil(t, inv.AcceptedAt())
	assert.WithinDuration(t, now, *inv.AcceptedAt(), time.Second)

	assert.ErrorIs(t, inv.Accept(now), ErrInviteAlreadyAccepted)
}

func TestTeamInvite_Accept_Expired(t *testing.T) {
	inv, _ := newTestInvite(t, time.Hour)

	err := inv.Accept(time.Now().UTC().Add(2 * time.Hour))
	assert.ErrorIs(t, err, ErrInviteExpired)
	assert.Equal(t, StatusPending, inv.Status())
}

func TestTeamInvite_Revoke(t *testing.T) {
	inv, _ := newTestInvite(t, time.Hour)

	require.NoError(t, inv.Revoke())
	assert.Equal(t, StatusRevoked, inv.Status())

	assert.ErrorIs(t, inv.Revoke(), ErrInviteRevoked)
	assert.ErrorIs(t, inv.Accept(time.Now().UTC()), ErrInviteRevoked)
}

func TestTeamInvite_RevokeAccepted(t *testing.T) {
	inv, _ := newTestInvite(t, time.Hour)
	require.NoError(t, inv.Accept(time.Now().UTC()))

	assert.ErrorIs(t, inv.Revoke(), ErrInviteAlreadyAccepted)
}

func TestHashToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
}

func TestReconstructTeamInvite(t *testing.T) {
	now := time.Now().UTC()
	inv, err := ReconstructTeamInvite(9, "inv_test12345678", 1, "crew@example.com",
		authorization.RoleAdmin, HashToken("tok"), StatusPending, 7, now.Add(time.Hour), nil, now, now)
	require.NoError(t, err)
	assert.Equal(t, uint(9), inv.ID())
	assert.True(t, inv.MatchesToken("tok"))

	_, err = ReconstructTeamInvite(0, "inv_x", 1, "a@b.com", authorization.RoleAdmin, "h", StatusPending, 1, now, nil, now, now)
	assert.Error(t, err)

	_, err = ReconstructTeamInvite(1, "inv_x", 1, "a@b.com", authorization.RoleAdmin, "h", Status("bogus"), 1, now, nil, now, now)
	assert.Error(t, err)
}
