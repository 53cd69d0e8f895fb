package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvk/backend/internal/domain/report"
	"github.com/kvk/backend/internal/infrastructure/auth"
	"github.com/kvk/backend/internal/infrastructure/config"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	svc := auth.NewJWTService(config.JWTConfig{Secret: "middleware-test-secret", Issuer: "kvk-backend-test"})

	router := gin.New()
	router.Use(RequestID())
	router.Use(Auth(svc))
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/whoami", func(c *gin.Context) {
		caller, ok := GetCaller(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"role": caller.Role, "name": caller.Name})
	})
	return router, svc
}

func TestAuthMiddleware(t *testing.T) {
	router, svc := newAuthRouter(t)

	t.Run("valid token resolves caller", func(t *testing.T) {
		kvkID := uuid.New()
		token, err := svc.IssueToken(auth.IssueTokenInput{
			UserID:     uuid.New(),
			Name:       "KVK Head",
			Role:       report.RoleKvk,
			HomeKvkID:  &kvkID,
			Expiration: time.Hour,
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"kvk"`)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		token, err := svc.IssueToken(auth.IssueTokenInput{
			UserID:     uuid.New(),
			Role:       "superuser",
			Expiration: time.Hour,
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("health path skips authentication", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
