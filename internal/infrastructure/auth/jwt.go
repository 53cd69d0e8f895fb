// Package auth verifies bearer tokens issued by the KVK portal and maps
// their claims onto the caller context the report engine consumes.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kvk/backend/internal/domain/report"
	"github.com/kvk/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrUnknownRole      = errors.New("unknown role in claims")
	ErrMissingHomeNode  = errors.New("missing home node for role")
)

// Claims represents the portal-issued JWT claims. Exactly one home id is
// expected to be set for non-admin roles, matching the role's hierarchy
// level.
type Claims struct {
	jwt.RegisteredClaims
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	HomeZoneID     string `json:"home_zone_id,omitempty"`
	HomeStateID    string `json:"home_state_id,omitempty"`
	HomeDistrictID string `json:"home_district_id,omitempty"`
	HomeOrgID      string `json:"home_org_id,omitempty"`
	HomeKvkID      string `json:"home_kvk_id,omitempty"`
}

// Caller converts the claims into the caller context used for scope
// authorization. It validates the role and parses all populated ids.
func (c *Claims) Caller() (report.Caller, error) {
	if c.UserID == "" {
		return report.Caller{}, ErrMissingUserID
	}
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return report.Caller{}, ErrInvalidClaims
	}

	switch c.Role {
	case report.RoleAdmin, report.RoleZone, report.RoleState,
		report.RoleDistrict, report.RoleOrganization, report.RoleKvk:
	default:
		return report.Caller{}, ErrUnknownRole
	}

	caller := report.Caller{
		UserID: userID,
		Name:   c.Name,
		Role:   c.Role,
	}

	if caller.HomeZoneID, err = parseOptionalID(c.HomeZoneID); err != nil {
		return report.Caller{}, err
	}
	if caller.HomeStateID, err = parseOptionalID(c.HomeStateID); err != nil {
		return report.Caller{}, err
	}
	if caller.HomeDistrictID, err = parseOptionalID(c.HomeDistrictID); err != nil {
		return report.Caller{}, err
	}
	if caller.HomeOrgID, err = parseOptionalID(c.HomeOrgID); err != nil {
		return report.Caller{}, err
	}
	if caller.HomeKvkID, err = parseOptionalID(c.HomeKvkID); err != nil {
		return report.Caller{}, err
	}

	return caller, nil
}

func parseOptionalID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, ErrInvalidClaims
	}
	return &id, nil
}

// JWTService validates portal-issued tokens. The report backend does not
// mint tokens for callers; IssueToken exists for development and tests.
type JWTService struct {
	secret []byte
	issuer string
}

// NewJWTService creates a new JWT service.
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

// ValidateToken validates a bearer token and returns its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, ErrInvalidClaims
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}

	return claims, nil
}

// IssueTokenInput contains input for token generation.
type IssueTokenInput struct {
	UserID         uuid.UUID
	Name           string
	Role           string
	HomeZoneID     *uuid.UUID
	HomeStateID    *uuid.UUID
	HomeDistrictID *uuid.UUID
	HomeOrgID      *uuid.UUID
	HomeKvkID      *uuid.UUID
	Expiration     time.Duration
}

// IssueToken mints a signed token carrying the caller context.
func (s *JWTService) IssueToken(input IssueTokenInput) (string, error) {
	now := time.Now()
	expiration := input.Expiration
	if expiration <= 0 {
		expiration = time.Hour
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   input.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:         input.UserID.String(),
		Name:           input.Name,
		Role:           input.Role,
		HomeZoneID:     formatOptionalID(input.HomeZoneID),
		HomeStateID:    formatOptionalID(input.HomeStateID),
		HomeDistrictID: formatOptionalID(input.HomeDistrictID),
		HomeOrgID:      formatOptionalID(input.HomeOrgID),
		HomeKvkID:      formatOptionalID(input.HomeKvkID),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func formatOptionalID(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
