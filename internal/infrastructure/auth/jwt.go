// Package auth verifies session tokens issued by the external auth
// backend. This service never issues tokens; it only validates signatures
// and decodes the claims the visibility layer needs.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaims = errors.New("invalid token claims")
	ErrMissingUserID = errors.New("missing user_id in claims")
)

// Claims represents the session claims this service consumes
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
	RegionID string `json:"region_id,omitempty"`
	Demo     bool   `json:"demo,omitempty"`
}

// Verifier validates tokens and extracts caller identities
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier creates a token verifier
func NewVerifier(cfg config.JWTConfig) *Verifier {
	return &Verifier{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

// Verify parses and validates a token string and returns its claims
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Identity converts validated claims into a caller identity. An
// unrecognized role is surfaced here, before any query runs.
func (c *Claims) Identity() (identity.Identity, error) {
	if c.UserID == "" {
		return identity.Identity{}, ErrMissingUserID
	}
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("%w: bad user_id", ErrInvalidClaims)
	}

	role, err := identity.ParseRole(c.Role)
	if err != nil {
		return identity.Identity{}, err
	}

	id := identity.Identity{
		UserID: userID,
		Role:   role,
		Demo:   c.Demo,
	}
	if c.RegionID != "" {
		regionID, err := uuid.Parse(c.RegionID)
		if err != nil {
			return identity.Identity{}, fmt.Errorf("%w: bad region_id", ErrInvalidClaims)
		}
		id.RegionID = &regionID
	}
	return id, nil
}
