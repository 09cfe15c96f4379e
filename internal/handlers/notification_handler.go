package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/careconnect/clinic-scheduler/internal/httperr"
	"github.com/careconnect/clinic-scheduler/internal/middleware"
	"github.com/careconnect/clinic-scheduler/internal/notification"
)

type NotificationHandler struct {
	service *notification.Service
}

func NewNotificationHandler(service *notification.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List returns the caller's inbox, newest first, with total and unread
// counters.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var isRead *bool
	if v := c.Query("is_read"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeValidationFailure, "Invalid is_read filter.")
			return
		}
		isRead = &b
	}

	result, err := h.service.List(c.Request.Context(), userID, limit, offset, isRead)
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_list_notifications")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidationFailure, "Invalid notification id.")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), uint(id), userID); err != nil {
		httperr.FromBusiness(c, err, "failed_to_mark_read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if err := h.service.MarkAllRead(c.Request.Context(), userID); err != nil {
		httperr.FromBusiness(c, err, "failed_to_mark_all_read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidationFailure, "Invalid notification id.")
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id), userID); err != nil {
		httperr.FromBusiness(c, err, "failed_to_delete_notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
