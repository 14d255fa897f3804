package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestVerifier() *Verifier {
	return NewVerifier(config.JWTConfig{Secret: testSecret, Issuer: "crm-backend"})
}

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func validClaims(role string) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "crm-backend",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: uuid.New().String(),
		Role:   role,
	}
}

func TestVerifier_Verify(t *testing.T) {
	t.Run("accepts a valid token", func(t *testing.T) {
		v := newTestVerifier()
		claims := validClaims("admin")

		parsed, err := v.Verify(signToken(t, claims))

		require.NoError(t, err)
		assert.Equal(t, claims.UserID, parsed.UserID)
		assert.Equal(t, "admin", parsed.Role)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		v := newTestVerifier()
		claims := validClaims("admin")
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

		_, err := v.Verify(signToken(t, claims))

		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		v := newTestVerifier()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims("admin"))
		signed, err := token.SignedString([]byte("another-secret-another-secret-xx"))
		require.NoError(t, err)

		_, err = v.Verify(signed)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token with wrong issuer", func(t *testing.T) {
		v := newTestVerifier()
		claims := validClaims("admin")
		claims.Issuer = "someone-else"

		_, err := v.Verify(signToken(t, claims))

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaims_Identity(t *testing.T) {
	t.Run("decodes role, region and demo flag", func(t *testing.T) {
		regionID := uuid.New()
		claims := validClaims("manager")
		claims.RegionID = regionID.String()
		claims.Demo = true

		id, err := claims.Identity()

		require.NoError(t, err)
		assert.Equal(t, identity.RoleManager, id.Role)
		require.NotNil(t, id.RegionID)
		assert.Equal(t, regionID, *id.RegionID)
		assert.True(t, id.Demo)
	})

	t.Run("region is optional", func(t *testing.T) {
		id, err := validClaims("sales").Identity()

		require.NoError(t, err)
		assert.Nil(t, id.RegionID)
		assert.False(t, id.HasRegion())
	})

	t.Run("rejects an unrecognized role", func(t *testing.T) {
		_, err := validClaims("superuser").Identity()

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidRole))
	})

	t.Run("rejects missing user id", func(t *testing.T) {
		claims := validClaims("admin")
		claims.UserID = ""

		_, err := claims.Identity()

		assert.ErrorIs(t, err, ErrMissingUserID)
	})

	t.Run("rejects malformed region id", func(t *testing.T) {
		claims := validClaims("manager")
		claims.RegionID = "not-a-uuid"

		_, err := claims.Identity()

		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}
