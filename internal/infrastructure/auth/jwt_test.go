package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"purser/internal/domain/user"
	"purser/internal/shared/authorization"
)

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 15)

	u, err := user.NewUser("usr_jwt1", 7, "captain@example.com", "Captain", "hash", authorization.RoleAdmin)
	require.NoError(t, err)

	token, err := svc.Issue(u)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "usr_jwt1", claims.UserSID)
	assert.Equal(t, uint(7), claims.AgencyID)
	assert.Equal(t, authorization.RoleAdmin, claims.Role)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService("secret-a", 15)
	other := NewJWTService("secret-b", 15)

	u, err := user.NewUser("usr_jwt2", 1, "member@example.com", "Member", "hash", authorization.RoleMember)
	require.NoError(t, err)

	token, err := svc.Issue(u)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	hasher := NewBcryptPasswordHasher(4)

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, hasher.Verify(hash, "correct horse battery staple"))
	assert.False(t, hasher.Verify(hash, "wrong password"))
	assert.False(t, hasher.Verify("not-a-hash", "anything"))
}
