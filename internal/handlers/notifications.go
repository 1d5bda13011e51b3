package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/miron-alexandru/PlayStyleCompass/internal/database"
	"github.com/miron-alexandru/PlayStyleCompass/internal/models"
	"github.com/miron-alexandru/PlayStyleCompass/internal/realtime"
	"github.com/miron-alexandru/PlayStyleCompass/pkg/logger"
	"gorm.io/gorm"
)

// notificationPayload is the wire shape pushed on the notify channel and
// returned by the list endpoint.
func notificationPayload(n models.Notification) gin.H {
	return gin.H{
		"id":        n.ID,
		"message":   n.Message,
		"is_read":   n.IsRead,
		"is_active": n.IsActive,
		"timestamp": n.CreatedAt,
	}
}

// GetNotifications GET /notifications
// Returns the active feed newest first plus the derived unread count.
func GetNotifications(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var notifications []models.Notification
	if err := database.DB.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at desc").
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	items := make([]gin.H, 0, len(notifications))
	unread := 0
	for _, n := range notifications {
		items = append(items, notificationPayload(n))
		if !n.IsRead {
			unread++
		}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": items, "unread_count": unread})
}

// markNotifications applies updates to one notification, or to all of the
// caller's when id is the "0" wildcard the web client substitutes.
func markNotifications(c *gin.Context, updates map[string]interface{}) {
	userID := c.MustGet("userId").(string)
	id := c.Param("id")

	query := database.DB.Model(&models.Notification{}).Where("user_id = ?", userID)
	if id != "" && id != "0" {
		query = query.Where("id = ?", id)
	}

	result := query.Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}
	if id != "" && id != "0" && result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// MarkNotificationRead POST /notifications/:id/read ("0" = all)
func MarkNotificationRead(c *gin.Context) {
	markNotifications(c, map[string]interface{}{"is_read": true})
}

// MarkNotificationInactive POST /notifications/:id/inactive ("0" = all)
// Inactive notifications disappear from the feed but keep their rows.
func MarkNotificationInactive(c *gin.Context) {
	markNotifications(c, map[string]interface{}{"is_active": false})
}

// DeleteNotification DELETE /notifications/:id
func DeleteNotification(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	id := c.Param("id")

	var notification models.Notification
	if err := database.DB.First(&notification, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	if notification.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	database.DB.Delete(&notification)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetUnreadCount GET /notifications/unread-count
func GetUnreadCount(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var count int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ? AND is_active = ?", userID, false, true).
		Count(&count)

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// CreateNotification persists a notification and pushes it on the user's
// notify channel.
func CreateNotification(tx *gorm.DB, notification models.Notification) error {
	notification.IsActive = true
	if err := tx.Create(&notification).Error; err != nil {
		logger.Error().Err(err).Msg("failed to create notification")
		return err
	}

	if realtime.Notify != nil {
		realtime.Notify.Broadcast(realtime.UserRoomName(notification.UserID), notificationPayload(notification))
	}
	return nil
}
