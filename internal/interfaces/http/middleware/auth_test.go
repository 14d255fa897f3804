package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-key-for-middleware-tests"
	testIssuer = "crm-auth"
)

func signToken(t *testing.T, claims *auth.Claims) string {
	t.Helper()
	claims.Issuer = testIssuer
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func setupEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	verifier := auth.NewVerifier(config.JWTConfig{Secret: testSecret, Issuer: testIssuer})
	engine := gin.New()
	engine.Use(Identity(AuthConfig{
		Verifier:  verifier,
		SkipPaths: []string{"/health"},
	}))
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/whoami", func(c *gin.Context) {
		caller, ok := CallerIdentity(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"role":          string(caller.Role),
			"demo":          caller.Demo,
			"ctx_user_id":   logger.GetUserID(c.Request.Context()),
			"ctx_region_id": logger.GetRegionID(c.Request.Context()),
		})
	})
	return engine
}

func doRequest(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestIdentityMiddleware(t *testing.T) {
	engine := setupEngine(t)

	t.Run("valid token passes identity to handler", func(t *testing.T) {
		token := signToken(t, &auth.Claims{
			UserID: uuid.New().String(),
			Role:   "manager",
			Demo:   true,
		})
		w := doRequest(engine, "/whoami", token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"manager"`)
		assert.Contains(t, w.Body.String(), `"demo":true`)
	})

	t.Run("caller fields are attached to the request context", func(t *testing.T) {
		userID := uuid.New()
		regionID := uuid.New()
		token := signToken(t, &auth.Claims{
			UserID:   userID.String(),
			Role:     "sales",
			RegionID: regionID.String(),
		})
		w := doRequest(engine, "/whoami", token)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ctx_user_id":"`+userID.String()+`"`)
		assert.Contains(t, w.Body.String(), `"ctx_region_id":"`+regionID.String()+`"`)
	})

	t.Run("missing header returns 401", func(t *testing.T) {
		w := doRequest(engine, "/whoami", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed token returns 401", func(t *testing.T) {
		w := doRequest(engine, "/whoami", "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("expired token returns session expired", func(t *testing.T) {
		token := signToken(t, &auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
			UserID: uuid.New().String(),
			Role:   "sales",
		})
		w := doRequest(engine, "/whoami", token)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_SESSION_EXPIRED")
	})

	t.Run("unrecognized role returns 403", func(t *testing.T) {
		token := signToken(t, &auth.Claims{
			UserID: uuid.New().String(),
			Role:   "superuser",
		})
		w := doRequest(engine, "/whoami", token)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INVALID_ROLE")
	})

	t.Run("skip path bypasses authentication", func(t *testing.T) {
		w := doRequest(engine, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
