package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheFlusher drops cached dashboard entries so subsequent loads
// recompute from current rows.
type CacheFlusher interface {
	Invalidate(ctx context.Context) error
}

// SystemHandler handles health, readiness and cache maintenance endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	redis   *redis.Client // nil when the dashboard cache is disabled
	flusher CacheFlusher  // nil when the dashboard cache is disabled
	log     *zap.Logger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, redisClient *redis.Client, flusher CacheFlusher, log *zap.Logger) *SystemHandler {
	return &SystemHandler{db: db, redis: redisClient, flusher: flusher, log: log}
}

// RegisterRoutes registers system routes on the given group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/system/ping", h.Ping)
	rg.GET("/system/health", h.Health)
	rg.POST("/system/cache/flush", h.FlushCache)
}

// Ping is a trivial liveness probe
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// HealthStatus reports per-dependency health
type HealthStatus struct {
	Status   string                       `json:"status"`
	Database string                       `json:"database"`
	Cache    string                       `json:"cache"`
	Pool     *persistence.ConnectionStats `json:"pool,omitempty"`
}

// Health checks the database and, when configured, the cache. A failed
// cache check degrades the status but does not fail the probe; a failed
// database check does. A healthy database reports its pool statistics.
func (h *SystemHandler) Health(c *gin.Context) {
	status := HealthStatus{Status: "ok", Database: "ok", Cache: "disabled"}

	if err := h.db.Ping(); err != nil {
		h.log.Warn("Health check: database unreachable", zap.Error(err))
		status.Status = "unavailable"
		status.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}

	if stats, err := h.db.Stats(); err == nil {
		status.Pool = &stats
	}

	if h.redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.redis.Ping(ctx).Err(); err != nil {
			h.log.Warn("Health check: cache unreachable", zap.Error(err))
			status.Status = "degraded"
			status.Cache = "unreachable"
		} else {
			status.Cache = "ok"
		}
	}

	c.JSON(http.StatusOK, status)
}

// FlushCache drops the dashboard cache. Admin only; other roles get 403.
func (h *SystemHandler) FlushCache(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}
	if caller.Role != identity.RoleAdmin {
		h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, dto.UserMessage(dto.ErrCodeForbidden))
		return
	}

	if h.flusher == nil {
		h.Success(c, gin.H{"flushed": false, "cache": "disabled"})
		return
	}

	if err := h.flusher.Invalidate(c.Request.Context()); err != nil {
		h.log.Error("Cache flush failed", zap.Error(err), zap.String("user_id", caller.UserID.String()))
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, dto.UserMessage(dto.ErrCodeInternal))
		return
	}

	h.log.Info("Dashboard cache flushed", zap.String("user_id", caller.UserID.String()))
	h.Success(c, gin.H{"flushed": true})
}
