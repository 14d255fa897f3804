package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth context keys
const (
	IdentityKey   = "caller_identity"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the identity middleware
type AuthConfig struct {
	// Verifier is required for token validation
	Verifier *auth.Verifier
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
}

// Identity returns a middleware that decodes the bearer token into a
// caller identity and stores it in the request context. Tokens carrying
// an unrecognized role are rejected outright; access is never default-open.
func Identity(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortAuth(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized)
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortAuth(c, http.StatusUnauthorized, dto.ErrCodeTokenInvalid)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)

		claims, err := cfg.Verifier.Verify(tokenString)
		if err != nil {
			code := dto.ErrCodeTokenInvalid
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrCodeSessionExpired
			}
			abortAuth(c, http.StatusUnauthorized, code)
			return
		}

		caller, err := claims.Identity()
		if err != nil {
			if errors.Is(err, shared.ErrInvalidRole) {
				logger.FromContext(c.Request.Context()).Warn("Token carries unrecognized role",
					zap.String("user_id", claims.UserID),
					zap.String("role", claims.Role),
				)
				abortAuth(c, http.StatusForbidden, dto.ErrCodeInvalidRole)
				return
			}
			abortAuth(c, http.StatusUnauthorized, dto.ErrCodeTokenInvalid)
			return
		}

		c.Set(IdentityKey, caller)

		// Carry caller fields down through the request context so logs
		// emitted below the HTTP layer are attributable.
		ctx, reqLogger := logger.WithUserID(c.Request.Context(), logger.FromContext(c.Request.Context()), caller.UserID.String())
		if caller.HasRegion() {
			ctx, reqLogger = logger.WithRegionID(ctx, reqLogger, caller.RegionID.String())
		}
		c.Request = c.Request.WithContext(ctx)
		c.Set("logger", reqLogger)

		c.Next()
	}
}

// CallerIdentity retrieves the decoded caller identity from gin context
func CallerIdentity(c *gin.Context) (identity.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return identity.Identity{}, false
	}
	caller, ok := v.(identity.Identity)
	return caller, ok
}

func abortAuth(c *gin.Context, status int, code string) {
	requestID := c.GetString("request_id")
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, dto.UserMessage(code), requestID))
}
