package handler

import (
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientHandler handles client-related API endpoints
type ClientHandler struct {
	BaseHandler
	source RepositorySource
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(source RepositorySource) *ClientHandler {
	return &ClientHandler{source: source}
}

// RegisterRoutes registers client routes on the given group
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/clients", h.List)
	rg.GET("/clients/:id", h.GetByID)
}

// List returns clients visible to the caller, paginated
func (h *ClientHandler) List(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.source.For(caller).Clients.List(c.Request.Context(), caller, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single client if the caller is allowed to see it
func (h *ClientHandler) GetByID(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.source.For(caller).Clients.FindByID(c.Request.Context(), caller, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}
