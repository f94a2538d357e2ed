package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appnotification "github.com/agrilink/backend/internal/application/notification"
	"github.com/agrilink/backend/internal/interfaces/http/dto"
)

// NotificationHandler handles the in-app notification feed
type NotificationHandler struct {
	BaseHandler
	service *appnotification.Service
}

// NewNotificationHandler creates a notification handler
func NewNotificationHandler(service *appnotification.Service, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// List returns the caller organization's notifications, newest first.
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	var req dto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	items, total, err := h.service.List(c.Request.Context(), actor.OrgID, appnotification.ListFilter{
		Page:       req.Page,
		PageSize:   req.PageSize,
		UnreadOnly: req.UnreadOnly,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// MarkRead marks one of the caller's notifications as read.
// POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	item, err := h.service.MarkRead(c.Request.Context(), actor.OrgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}
