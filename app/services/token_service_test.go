package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T, accessTTL time.Duration) TokenService {
	t.Helper()
	svc, err := NewTokenService(accessTTL, 7*24*time.Hour, "yatagarasu-test", "yatagarasu-test-api", testSecret)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService(t *testing.T) {
	_, err := NewTokenService(time.Hour, time.Hour, "issuer", "audience", "")
	assert.Error(t, err)
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService(t, time.Hour)

	access, refresh, err := svc.GenerateTokens(42)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.CustomerID)
	assert.Equal(t, "access", claims.TokenType)
	assert.NotEmpty(t, claims.TokenID)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
}

func TestValidateGarbage(t *testing.T) {
	svc := newTestService(t, time.Hour)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateExpired(t *testing.T) {
	// The constructor refuses non-positive TTLs, so build the service
	// directly to sign an already expired token.
	svc := &TokenServiceImpl{
		accessTokenTTL:  -time.Minute,
		refreshTokenTTL: -time.Minute,
		secretKey:       []byte(testSecret),
		issuer:          "yatagarasu-test",
		audience:        "yatagarasu-test-api",
		revokedTokens:   make(map[string]time.Time),
	}

	access, _, err := svc.GenerateTokens(7)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateWrongKey(t *testing.T) {
	svc := newTestService(t, time.Hour)
	other, err := NewTokenService(time.Hour, time.Hour, "yatagarasu-test", "yatagarasu-test-api", "a-different-secret-0987654321fedcba0987654321fe")
	require.NoError(t, err)

	access, _, err := svc.GenerateTokens(7)
	require.NoError(t, err)

	_, err = other.ValidateToken(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRevokeToken(t *testing.T) {
	svc := newTestService(t, time.Hour)

	access, _, err := svc.GenerateTokens(7)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(access))
	assert.True(t, svc.IsTokenRevoked(claims.TokenID))

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshToken(t *testing.T) {
	svc := newTestService(t, time.Hour)

	access, refresh, err := svc.GenerateTokens(7)
	require.NoError(t, err)

	t.Run("AccessTokenRejected", func(t *testing.T) {
		_, _, err := svc.RefreshToken(access)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("IssuesNewPairAndRevokesOld", func(t *testing.T) {
		newAccess, newRefresh, err := svc.RefreshToken(refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)

		_, err = svc.ValidateToken(refresh)
		assert.ErrorIs(t, err, ErrTokenRevoked)

		_, err = svc.ValidateToken(newAccess)
		assert.NoError(t, err)
	})
}
