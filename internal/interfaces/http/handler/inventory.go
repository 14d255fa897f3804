package handler

import (
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// InventoryHandler handles inventory catalog API endpoints
type InventoryHandler struct {
	BaseHandler
	source RepositorySource
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(source RepositorySource) *InventoryHandler {
	return &InventoryHandler{source: source}
}

// RegisterRoutes registers inventory routes on the given group
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/inventory", h.List)
}

// List returns the inventory catalog, paginated. Inventory is visible to
// every role unscoped.
func (h *InventoryHandler) List(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.source.For(caller).Inventory.List(c.Request.Context(), caller, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
