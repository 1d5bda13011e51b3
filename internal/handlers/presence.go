package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/miron-alexandru/PlayStyleCompass/internal/database"
	"github.com/miron-alexandru/PlayStyleCompass/internal/models"
	"github.com/miron-alexandru/PlayStyleCompass/internal/realtime"
	"github.com/miron-alexandru/PlayStyleCompass/internal/render"
	"github.com/miron-alexandru/PlayStyleCompass/pkg/logger"
)

// SetUserOnline marks the user online and publishes the change to anyone
// watching their status room.
func SetUserOnline(userID string) {
	now := time.Now()
	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"is_online": true, "last_online": now}).Error; err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("failed to mark user online")
		return
	}
	if database.Redis != nil {
		database.SetLastOnline(userID, now)
	}
	broadcastStatus(userID)
}

// SetUserOffline marks the user offline, records last-seen and publishes the
// change.
func SetUserOffline(userID string) {
	now := time.Now()
	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"is_online": false, "last_online": now}).Error; err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("failed to mark user offline")
		return
	}
	if database.Redis != nil {
		database.SetLastOnline(userID, now)
	}
	broadcastStatus(userID)
}

func broadcastStatus(userID string) {
	if realtime.Presence == nil {
		return
	}
	payload, err := statusPayload(userID)
	if err != nil {
		return
	}
	realtime.Presence.Broadcast(realtime.StatusRoomName(userID), payload)
}

// GetUserStatus GET /users/:id/status
func GetUserStatus(c *gin.Context) {
	targetID := c.Param("id")

	var user models.User
	if err := database.DB.Select("id", "is_online", "last_online", "timezone").
		First(&user, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	lastOnline := user.LastOnline
	if cached, ok := database.GetLastOnline(targetID); ok {
		lastOnline = &cached
	}

	var formatted any
	if s := render.FormatLastOnline(lastOnline, user.Timezone); s != "" {
		formatted = s
	}
	c.JSON(http.StatusOK, gin.H{"status": user.IsOnline, "last_online": formatted})
}
