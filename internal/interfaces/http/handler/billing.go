package handler

import (
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuoteHandler handles quote-related API endpoints
type QuoteHandler struct {
	BaseHandler
	source RepositorySource
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(source RepositorySource) *QuoteHandler {
	return &QuoteHandler{source: source}
}

// RegisterRoutes registers quote routes on the given group
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quotes", h.List)
	rg.GET("/quotes/:id", h.GetByID)
}

// List returns quotes visible to the caller, paginated
func (h *QuoteHandler) List(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.source.For(caller).Quotes.List(c.Request.Context(), caller, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single quote if the caller is allowed to see it
func (h *QuoteHandler) GetByID(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.source.For(caller).Quotes.FindByID(c.Request.Context(), caller, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}

// InvoiceHandler handles invoice-related API endpoints
type InvoiceHandler struct {
	BaseHandler
	source RepositorySource
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(source RepositorySource) *InvoiceHandler {
	return &InvoiceHandler{source: source}
}

// RegisterRoutes registers invoice routes on the given group
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/invoices", h.List)
	rg.GET("/invoices/:id", h.GetByID)
}

// List returns invoices visible to the caller, paginated
func (h *InvoiceHandler) List(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.source.For(caller).Invoices.List(c.Request.Context(), caller, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single invoice if the caller is allowed to see it
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.source.For(caller).Invoices.FindByID(c.Request.Context(), caller, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}
