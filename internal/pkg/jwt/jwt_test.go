package jwt

import (
	"context"
	"testing"

	"github.com/chandra447/dk-stores/internal/domain/auth"
	"github.com/chandra447/dk-stores/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewJWTService("test-secret-key-for-jwt", "1h", "24h")
}

func contextWithToken(t *testing.T, svc Service, tokenStr string) context.Context {
	t.Helper()
	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenStr)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestIdentityFromContext_AccessToken(t *testing.T) {
	svc := newTestService()
	employeeID := "emp-1"
	registerID := "reg-1"

	tokenStr, expiresAt, err := svc.GenerateAccessToken("user-1", "manager@example.com", user.RoleManager, &employeeID, &registerID)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, int64(0))

	identity, err := IdentityFromContext(contextWithToken(t, svc, tokenStr))
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "manager@example.com", identity.Email)
	assert.Equal(t, user.RoleManager, identity.Role)
	require.NotNil(t, identity.EmployeeID)
	assert.Equal(t, "emp-1", *identity.EmployeeID)
	require.NotNil(t, identity.RegisterID)
	assert.Equal(t, "reg-1", *identity.RegisterID)
}

func TestIdentityFromContext_AdminHasNoEmployeeClaims(t *testing.T) {
	svc := newTestService()

	tokenStr, _, err := svc.GenerateAccessToken("user-2", "owner@example.com", user.RoleAdmin, nil, nil)
	require.NoError(t, err)

	identity, err := IdentityFromContext(contextWithToken(t, svc, tokenStr))
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, identity.Role)
	assert.Nil(t, identity.EmployeeID)
	assert.Nil(t, identity.RegisterID)
}

func TestIdentityFromContext_RejectsRefreshToken(t *testing.T) {
	svc := newTestService()

	tokenStr, _, err := svc.GenerateRefreshToken("user-3")
	require.NoError(t, err)

	_, err = IdentityFromContext(contextWithToken(t, svc, tokenStr))
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestIdentityFromContext_MissingToken(t *testing.T) {
	_, err := IdentityFromContext(context.Background())
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService()
	cookie := svc.RefreshTokenCookie("token-value", 1710028800)

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)

	cleared := svc.ClearedRefreshTokenCookie()
	assert.Equal(t, "refresh_token", cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
