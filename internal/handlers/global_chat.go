package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/miron-alexandru/PlayStyleCompass/internal/database"
	"github.com/miron-alexandru/PlayStyleCompass/internal/models"
	"github.com/miron-alexandru/PlayStyleCompass/internal/realtime"
	"github.com/miron-alexandru/PlayStyleCompass/pkg/logger"
	"github.com/miron-alexandru/PlayStyleCompass/pkg/utils"
)

// Global chat send quota: 8 messages per minute per user, enforced as a
// fixed window in Redis.
const (
	globalChatQuota  = 8
	globalChatWindow = time.Minute
)

// CreateGlobalMessage POST /global-chat/messages
// Over-quota sends get a 429 with the seconds remaining so the client can
// show a countdown and re-enable the input when it hits zero.
func CreateGlobalMessage(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var req struct {
		Content string `json:"content" form:"content"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	content := utils.SanitizeMessageContent(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must write something."})
		return
	}
	if !utils.ValidateMessageLength(content) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message exceeds maximum length"})
		return
	}

	var sender models.User
	if err := database.DB.First(&sender, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	if database.Redis != nil {
		allowed, wait, err := database.CheckMessageQuota(sender.Username, globalChatQuota, globalChatWindow)
		if err != nil {
			logger.Warn().Err(err).Msg("quota check failed, allowing send")
		} else if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"rate_limited": true,
				"wait_seconds": wait,
			})
			return
		}
	}

	msg := models.GlobalChatMessage{
		SenderID: userID,
		Content:  content,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		logger.Error().Err(err).Msg("failed to create global chat message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	if realtime.GlobalChat != nil {
		realtime.GlobalChat.Broadcast(realtime.GlobalRoomName, gin.H{
			"id":                  msg.ID,
			"sender__id":          msg.SenderID,
			"profile_name":        sender.DisplayName(),
			"profile_picture_url": sender.ProfilePicture,
			"content":             msg.Content,
			"created_at":          msg.CreatedAt,
		})
	}

	c.JSON(http.StatusCreated, gin.H{"status": "Message created", "id": msg.ID})
}

// GetGlobalMessages GET /global-chat/messages?offset=&limit=
// Newest first; an empty array marks the end of history.
func GetGlobalMessages(c *gin.Context) {
	offset, limit := pageParams(c)

	var messages []models.GlobalChatMessage
	err := database.DB.Preload("Sender").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	out := make([]gin.H, 0, len(messages))
	for _, m := range messages {
		out = append(out, gin.H{
			"id":                  m.ID,
			"message":             m.Content,
			"created_at":          m.CreatedAt,
			"sender__id":          m.SenderID,
			"profile_name":        m.Sender.DisplayName(),
			"profile_picture_url": m.Sender.ProfilePicture,
		})
	}
	c.JSON(http.StatusOK, out)
}
