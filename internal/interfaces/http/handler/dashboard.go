package handler

import (
	dashboardapp "github.com/crm/backend/internal/application/dashboard"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard API endpoints
type DashboardHandler struct {
	BaseHandler
	service *dashboardapp.Service
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *dashboardapp.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// RegisterRoutes registers dashboard routes on the given group
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/overview", h.Overview)
}

// Overview returns the aggregated dashboard for the caller: monthly
// revenue trend, sales funnel and period-over-period KPIs. Window sizes
// default from configuration when the query omits them.
func (h *DashboardHandler) Overview(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	months := intQuery(c, "months", 0)
	days := intQuery(c, "days", 0)

	overview, err := h.service.Overview(c.Request.Context(), caller, months, days)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, overview)
}
