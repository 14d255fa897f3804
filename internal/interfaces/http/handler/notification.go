package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationHandler handles notification API endpoints
type NotificationHandler struct {
	BaseHandler
	source RepositorySource
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(source RepositorySource) *NotificationHandler {
	return &NotificationHandler{source: source}
}

// RegisterRoutes registers notification routes on the given group
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.List)
	rg.GET("/notifications/unread-count", h.UnreadCount)
	rg.POST("/notifications/:id/read", h.MarkRead)
	rg.POST("/notifications/read-all", h.MarkAllRead)
}

// CountData represents count data in response
type CountData struct {
	Count int64 `json:"count"`
}

// List returns the caller's notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	onlyUnread := c.Query("unread") == "true"
	limit := intQuery(c, "limit", 20)

	notes, err := h.source.For(caller).Notifications.ListForUser(c.Request.Context(), caller, onlyUnread, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notes)
}

// UnreadCount returns the caller's unread notification count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	count, err := h.source.For(caller).Notifications.CountUnread(c.Request.Context(), caller)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CountData{Count: count})
}

// MarkRead marks a single notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.source.For(caller).Notifications.MarkRead(c.Request.Context(), caller, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// MarkAllRead marks all of the caller's notifications as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	caller, ok := h.getCaller(c)
	if !ok {
		return
	}

	if err := h.source.For(caller).Notifications.MarkAllRead(c.Request.Context(), caller); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
