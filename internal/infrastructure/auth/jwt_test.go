package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvk/backend/internal/domain/report"
	"github.com/kvk/backend/internal/infrastructure/config"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret: "test-secret-key-for-unit-tests",
		Issuer: "kvk-backend-test",
	})
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := newTestService()
	districtID := uuid.New()
	userID := uuid.New()

	token, err := svc.IssueToken(IssueTokenInput{
		UserID:         userID,
		Name:           "DDO Ludhiana",
		Role:           report.RoleDistrict,
		HomeDistrictID: &districtID,
		Expiration:     time.Hour,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, report.RoleDistrict, claims.Role)
	assert.Equal(t, districtID.String(), claims.HomeDistrictID)

	caller, err := claims.Caller()
	require.NoError(t, err)
	assert.Equal(t, userID, caller.UserID)
	assert.Equal(t, "DDO Ludhiana", caller.Name)
	require.NotNil(t, caller.HomeDistrictID)
	assert.Equal(t, districtID, *caller.HomeDistrictID)
	assert.Nil(t, caller.HomeKvkID)
}

func TestValidateToken(t *testing.T) {
	svc := newTestService()

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		token, err := svc.IssueToken(IssueTokenInput{
			UserID:     uuid.New(),
			Role:       report.RoleAdmin,
			Expiration: time.Nanosecond,
		})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "completely-different-secret", Issuer: "kvk-backend-test"})
		token, err := other.IssueToken(IssueTokenInput{UserID: uuid.New(), Role: report.RoleAdmin})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-for-unit-tests", Issuer: "someone-else"})
		token, err := other.IssueToken(IssueTokenInput{UserID: uuid.New(), Role: report.RoleAdmin})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("rejects missing user id", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "kvk-backend-test",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			Role: report.RoleAdmin,
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("test-secret-key-for-unit-tests"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})
}

func TestClaimsCaller(t *testing.T) {
	t.Run("rejects unknown role", func(t *testing.T) {
		claims := &Claims{UserID: uuid.New().String(), Role: "superuser"}
		_, err := claims.Caller()
		assert.ErrorIs(t, err, ErrUnknownRole)
	})

	t.Run("rejects malformed home id", func(t *testing.T) {
		claims := &Claims{
			UserID:    uuid.New().String(),
			Role:      report.RoleKvk,
			HomeKvkID: "not-a-uuid",
		}
		_, err := claims.Caller()
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}
