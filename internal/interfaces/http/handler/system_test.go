package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeFlusher struct {
	calls int
	err   error
}

func (f *fakeFlusher) Invalidate(ctx context.Context) error {
	f.calls++
	return f.err
}

func newSystemEngine(caller identity.Identity, flusher CacheFlusher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	group := engine.Group("/api/v1")
	group.Use(setIdentity(caller))
	NewSystemHandler(nil, nil, flusher, zap.NewNop()).RegisterRoutes(group)
	return engine
}

func postFlush(engine *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/system/cache/flush", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSystemHandlerFlushCache(t *testing.T) {
	admin := identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin}

	t.Run("admin flushes the cache", func(t *testing.T) {
		flusher := &fakeFlusher{}
		w := postFlush(newSystemEngine(admin, flusher))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"flushed":true`)
		assert.Equal(t, 1, flusher.calls)
	})

	t.Run("non-admin is refused without touching the cache", func(t *testing.T) {
		manager := identity.Identity{UserID: uuid.New(), Role: identity.RoleManager}
		flusher := &fakeFlusher{}
		w := postFlush(newSystemEngine(manager, flusher))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
		assert.Zero(t, flusher.calls)
	})

	t.Run("disabled cache reports nothing to flush", func(t *testing.T) {
		w := postFlush(newSystemEngine(admin, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"flushed":false`)
	})
}
