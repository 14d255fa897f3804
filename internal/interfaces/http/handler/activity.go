package handler

import (
	activityapp "github.com/crm/backend/internal/application/activity"
	"github.com/gin-gonic/gin"
)

// ActivityHandler handles the recent activity feed endpoint
type ActivityHandler struct {
	BaseHandler
	service *activityapp.Service
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(service *activityapp.Service) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// RegisterRoutes registers activity routes on the given group
func (h *ActivityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/activity", h.Recent)
}

// Recent returns the caller's most recent activity entries, newest first
func (h *ActivityHandler) Recent(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	limit := intQuery(c, "limit", 0)

	entries, err := h.service.Recent(c.Request.Context(), caller, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
