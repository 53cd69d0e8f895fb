package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kvk/backend/internal/domain/report"
	"github.com/kvk/backend/internal/infrastructure/auth"
	"github.com/kvk/backend/internal/infrastructure/logger"
	"github.com/kvk/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	CallerKey     = "caller"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the authentication middleware.
type AuthConfig struct {
	// JWTService is required for token validation.
	JWTService *auth.JWTService
	// SkipPaths are paths that don't require authentication.
	SkipPaths []string
	// Logger for middleware logging.
	Logger *zap.Logger
}

// DefaultAuthConfig returns default authentication middleware configuration.
func DefaultAuthConfig(jwtService *auth.JWTService) AuthConfig {
	return AuthConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
		},
	}
}

// Auth creates bearer-token authentication middleware. On success the
// resolved caller context is stored in the gin context and the request
// context carries the user id for log correlation.
func Auth(jwtService *auth.JWTService) gin.HandlerFunc {
	return AuthWithConfig(DefaultAuthConfig(jwtService))
}

// AuthWithConfig creates authentication middleware with custom config.
func AuthWithConfig(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, cfg, nil, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, nil, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, cfg, nil, "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Token validation failed")
			return
		}

		caller, err := claims.Caller()
		if err != nil {
			abortUnauthorized(c, cfg, err, "Token claims rejected")
			return
		}

		c.Set(CallerKey, caller)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithUserID(ctx, log, caller.UserID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// abortUnauthorized rejects the request with a 401 and a token error code.
func abortUnauthorized(c *gin.Context, cfg AuthConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := dto.ErrCodeUnauthorized
	switch err {
	case auth.ErrExpiredToken:
		code = dto.ErrCodeTokenExpired
	case auth.ErrInvalidToken, auth.ErrInvalidClaims, auth.ErrTokenNotYetValid,
		auth.ErrMissingUserID, auth.ErrUnknownRole:
		code = dto.ErrCodeTokenInvalid
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetCaller retrieves the authenticated caller from the gin context.
func GetCaller(c *gin.Context) (report.Caller, bool) {
	value, exists := c.Get(CallerKey)
	if !exists {
		return report.Caller{}, false
	}
	caller, ok := value.(report.Caller)
	return caller, ok
}
