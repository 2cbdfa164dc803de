package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Chiesa14/pvms-ne/internal/api/middleware"
	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"
	"github.com/Chiesa14/pvms-ne/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(ns *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

// GET /api/v1/notifications/mine
func (h *NotificationHandler) ListMyNotifications(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Không xác định được người dùng"})
		return
	}

	var filter domain.NotificationFilterDTO
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var q domain.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	q.Normalize()

	notifications, total, err := h.notificationService.ListByUser(c.Request.Context(), userID, filter, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy danh sách thông báo"})
		return
	}
	c.JSON(http.StatusOK, domain.NewPage(total, q.Page, q.Limit, notifications))
}

// PATCH /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Không xác định được người dùng"})
		return
	}

	notificationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Notification ID không hợp lệ"})
		return
	}

	notification, err := h.notificationService.MarkRead(c.Request.Context(), notificationID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy thông báo"})
			return
		}
		if errors.Is(err, service.ErrNotificationNotOwned) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật thông báo"})
		return
	}
	c.JSON(http.StatusOK, notification)
}
