package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"purser/internal/domain/invite"
	"purser/internal/domain/user"
	"purser/internal/shared/authorization"
)

func TestInviteRepository_TokenLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInviteRepository(db)
	ctx := context.Background()

	inv, token, err := invite.NewTeamInvite("inv_tok1", 1, "crew@example.com", authorization.RoleMember, 5, 7*24*time.Hour)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, inv))

	found, err := repo.FindByTokenHash(ctx, invite.HashToken(token))
	require.NoError(t, err)
	assert.Equal(t, inv.ID(), found.ID())
	assert.True(t, found.MatchesToken(token))

	_, err = repo.FindByTokenHash(ctx, invite.HashToken("not-the-token"))
	assert.ErrorIs(t, err, invite.ErrInviteNotFound)
}

func TestInviteRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInviteRepository(db)
	ctx := context.Background()

	inv, _, err := invite.NewTeamInvite("inv_acc1", 1, "purser@example.com", authorization.RoleAdmin, 5, 7*24*time.Hour)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, inv))

	require.NoError(t, inv.Accept(time.Now().UTC()))
	require.NoError(t, repo.Update(ctx, inv))

	found, err := repo.FindBySID(ctx, "inv_acc1")
	require.NoError(t, err)
	assert.Equal(t, invite.StatusAccepted, found.Status())
	assert.NotNil(t, found.AcceptedAt())
}

func TestInviteRepository_FindPendingByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInviteRepository(db)
	ctx := context.Background()

	inv, _, err := invite.NewTeamInvite("inv_pend1", 1, "pending@example.com", authorization.RoleMember, 5, 7*24*time.Hour)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, inv))

	found, err := repo.FindPendingByEmail(ctx, 1, "pending@example.com")
	require.NoError(t, err)
	assert.Equal(t, inv.SID(), found.SID())

	// Same email in another tenant is not visible.
	_, err = repo.FindPendingByEmail(ctx, 2, "pending@example.com")
	assert.ErrorIs(t, err, invite.ErrInviteNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u1, err := user.NewUser("usr_dup1", 1, "same@example.com", "First", "hash1", authorization.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u1))

	u2, err := user.NewUser("usr_dup2", 2, "same@example.com", "Second", "hash2", authorization.RoleMember)
	require.NoError(t, err)
	err = repo.Create(ctx, u2)
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u, err := user.NewUser("usr_mail1", 1, "Lookup@Example.com", "Lookup", "hash", authorization.RoleMember)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u))

	// NewUser lowercases the email on the way in.
	found, err := repo.FindByEmail(ctx, "lookup@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID(), found.ID())

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
