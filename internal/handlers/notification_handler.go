package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/httpresp"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

func (h *NotificationHandler) List(c *gin.Context) {
	q := h.db.Order("id DESC").Limit(100)

	if c.Query("unread") == "true" {
		q = q.Where("mark_as_read = ?", false)
	}

	var notifications []models.Notification
	if err := q.Find(&notifications).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list notifications")
		return
	}

	httpresp.List(c, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_notification_id", "invalid notification id")
		return
	}

	result := h.db.Model(&models.Notification{}).
		Where("id = ?", uint(id)).
		Update("mark_as_read", true)
	if result.Error != nil {
		httperr.Internal(c, "update_failed", "could not mark notification read")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "notification not found")
		return
	}

	httpresp.OK(c, gin.H{"marked": true})
}
