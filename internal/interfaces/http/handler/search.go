package handler

import (
	searchapp "github.com/crm/backend/internal/application/search"
	"github.com/crm/backend/internal/domain/search"
	"github.com/gin-gonic/gin"
)

// SearchHandler handles global search API endpoints
type SearchHandler struct {
	BaseHandler
	service *searchapp.Service
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(service *searchapp.Service) *SearchHandler {
	return &SearchHandler{service: service}
}

// RegisterRoutes registers search routes on the given group
func (h *SearchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.Search)
}

// SearchResponse wraps the category results with the list of categories
// whose lookup failed, so clients can flag partial results
type SearchResponse struct {
	search.Results
	Degraded []string `json:"degraded,omitempty"`
}

// Search runs the global search across all entity categories. Categories
// that fail are reported in the degraded list; the rest still return.
func (h *SearchHandler) Search(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	results, err := h.service.Search(c.Request.Context(), caller, c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := SearchResponse{Results: results}
	for kind := range results.Failed {
		resp.Degraded = append(resp.Degraded, string(kind))
	}

	h.Success(c, resp)
}
