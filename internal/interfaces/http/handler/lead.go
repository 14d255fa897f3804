package handler

import (
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LeadHandler handles lead-related API endpoints
type LeadHandler struct {
	BaseHandler
	source RepositorySource
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(source RepositorySource) *LeadHandler {
	return &LeadHandler{source: source}
}

// RegisterRoutes registers lead routes on the given group
func (h *LeadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/leads", h.List)
	rg.GET("/leads/:id", h.GetByID)
}

// List returns leads visible to the caller, paginated
func (h *LeadHandler) List(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.source.For(caller).Leads.List(c.Request.Context(), caller, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single lead if the caller is allowed to see it
func (h *LeadHandler) GetByID(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	lead, err := h.source.For(caller).Leads.FindByID(c.Request.Context(), caller, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lead)
}
