package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xaan1506/NSTrack-Backend/internal/apperror"
	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
	"github.com/Xaan1506/NSTrack-Backend/internal/middleware"
	"github.com/Xaan1506/NSTrack-Backend/internal/service"
)

type NotificationHandler struct {
	Notifications *service.NotificationService
}

// UnreadHandler godoc
// @Summary Unread notifications
// @Description Oldest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.NotificationsResponse
// @Router /notifications/unread [get]
func (h *NotificationHandler) UnreadHandler(c *gin.Context) {
	notifications, err := h.Notifications.ListUnread(c.Request.Context(), middleware.CurrentUser(c).Email)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NotificationsResponse{Notifications: notifications})
}

// MarkReadHandler godoc
// @Summary Mark notifications read
// @Description Marks one notification when id is given, otherwise all of them. The body may be omitted.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MarkReadRequest false "Notification id"
// @Success 200 {object} dto.DetailResponse
// @Failure 400 {object} map[string]string
// @Router /notifications/mark-read [post]
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	var body dto.MarkReadRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(apperror.Validation(err.Error()))
		return
	}

	if err := h.Notifications.MarkRead(c.Request.Context(), middleware.CurrentUser(c).Email, body.ID); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.DetailResponse{Detail: "ok"})
}
