package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/miron-alexandru/PlayStyleCompass/internal/database"
	"github.com/miron-alexandru/PlayStyleCompass/internal/models"
	"github.com/miron-alexandru/PlayStyleCompass/internal/realtime"
	"github.com/miron-alexandru/PlayStyleCompass/pkg/logger"
	"github.com/miron-alexandru/PlayStyleCompass/pkg/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// messageFrame is the wire shape pushed on the chat channels when a message
// is created.
func messageFrame(m models.ChatMessage, sender models.User) gin.H {
	return gin.H{
		"id":                  m.ID,
		"sender__id":          m.SenderID,
		"profile_name":        sender.DisplayName(),
		"profile_picture_url": sender.ProfilePicture,
		"content":             m.Content,
		"created_at":          m.CreatedAt,
		"edited":              m.Edited,
		"file":                m.FileURL,
		"file_size":           m.FileSize,
	}
}

// pageParams reads offset/limit, clamping limit to the maximum page size.
func pageParams(c *gin.Context) (int, int) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return offset, limit
}

// CreateMessage POST /chat/messages
func CreateMessage(c *gin.Context) {
	senderID := c.MustGet("userId").(string)

	var req struct {
		RecipientID string `json:"recipient_id" form:"recipient_id" binding:"required"`
		Content     string `json:"content" form:"content"`
		FileURL     string `json:"file_url" form:"file_url"`
		FileSize    int64  `json:"file_size" form:"file_size"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	content := utils.SanitizeMessageContent(req.Content)
	if content == "" && req.FileURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must write something or attach a file."})
		return
	}
	if content != "" && !utils.ValidateMessageLength(content) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message exceeds maximum length"})
		return
	}

	var sender, recipient models.User
	if err := database.DB.First(&sender, "id = ?", senderID).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	if err := database.DB.First(&recipient, "id = ?", req.RecipientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found."})
		return
	}

	// Blocking: the two directions surface different messages so the sender
	// learns nothing about being blocked beyond "unavailable".
	var block models.UserBlock
	if err := database.DB.
		Where("blocker_id = ? AND blocked_id = ?", recipient.ID, senderID).
		First(&block).Error; err == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": recipient.DisplayName() + " is no longer available."})
		return
	}
	if err := database.DB.
		Where("blocker_id = ? AND blocked_id = ?", senderID, recipient.ID).
		First(&block).Error; err == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": recipient.DisplayName() + " is in your block list."})
		return
	}

	msg := models.ChatMessage{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Content:     content,
		FileURL:     req.FileURL,
		FileSize:    req.FileSize,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		logger.Error().Err(err).Msg("failed to create chat message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	if realtime.Chat != nil {
		room := realtime.ChatRoomName(senderID, recipient.ID)
		realtime.Chat.Broadcast(room, messageFrame(msg, sender))
	}

	c.JSON(http.StatusCreated, gin.H{"status": "Message created", "id": msg.ID})
}

// EditMessage POST /chat/messages/:id/edit
// Owner-only; the edit window closes 120 seconds after creation.
func EditMessage(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	messageID := c.Param("id")

	var req struct {
		Content string `json:"content" form:"content"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var msg models.ChatMessage
	if err := database.DB.First(&msg, "id = ? AND sender_id = ?", messageID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	content := utils.SanitizeMessageContent(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must write something."})
		return
	}
	if !msg.Editable(time.Now()) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Message editing time limit exceeded"})
		return
	}

	msg.Content = content
	msg.Edited = true
	if err := database.DB.Save(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	if realtime.Chat != nil {
		room := realtime.ChatRoomName(msg.SenderID, msg.RecipientID)
		realtime.Chat.Broadcast(room, gin.H{
			"message_id":  msg.ID,
			"new_content": msg.Content,
			"sender_id":   userID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": "Message updated"})
}

// GetPrivateMessages GET /chat/messages/:recipientId?offset=&limit=
// Newest first. A page past the end returns an empty array, which is the
// loader's signal to stop asking.
func GetPrivateMessages(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	recipientID := c.Param("recipientId")
	offset, limit := pageParams(c)

	var recipient models.User
	if err := database.DB.First(&recipient, "id = ?", recipientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found."})
		return
	}

	var messages []models.ChatMessage
	err := database.DB.Preload("Sender").
		Where("(sender_id = ? AND recipient_id = ? AND sender_hidden = ?) OR (sender_id = ? AND recipient_id = ? AND recipient_hidden = ?)",
			userID, recipientID, false, recipientID, userID, false).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	pinned := pinnedIDSet(userID, recipientID)

	out := make([]gin.H, 0, len(messages))
	for _, m := range messages {
		out = append(out, gin.H{
			"id":                  m.ID,
			"message":             m.Content,
			"created_at":          m.CreatedAt,
			"sender__id":          m.SenderID,
			"profile_name":        m.Sender.DisplayName(),
			"profile_picture_url": m.Sender.ProfilePicture,
			"edited":              m.Edited,
			"file":                m.FileURL,
			"file_size":           m.FileSize,
			"is_pinned":           pinned[m.ID],
		})
	}
	c.JSON(http.StatusOK, out)
}

// pinnedIDSet returns the IDs of this conversation's messages the viewer has
// pinned. Always fetched as a full snapshot; the client never merges partial
// updates into it.
func pinnedIDSet(userID, recipientID string) map[string]bool {
	var ids []string
	database.DB.Table("message_pins").
		Joins("JOIN chat_messages ON chat_messages.id = message_pins.chat_message_id").
		Where("message_pins.user_id = ?", userID).
		Where("(chat_messages.sender_id = ? AND chat_messages.recipient_id = ?) OR (chat_messages.sender_id = ? AND chat_messages.recipient_id = ?)",
			userID, recipientID, recipientID, userID).
		Pluck("chat_messages.id", &ids)

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// TogglePinMessage POST /chat/messages/:id/pin
func TogglePinMessage(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	messageID := c.Param("id")

	var msg models.ChatMessage
	if err := database.DB.First(&msg, "id = ?", messageID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	if msg.SenderID != userID && msg.RecipientID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var count int64
	database.DB.Table("message_pins").
		Where("chat_message_id = ? AND user_id = ?", messageID, userID).
		Count(&count)

	assoc := database.DB.Model(&msg).Association("PinnedBy")
	if count > 0 {
		if err := assoc.Delete(&user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unpin message"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "action": "unpinned"})
		return
	}

	if err := assoc.Append(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pin message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "action": "pinned"})
}

// LoadPinnedMessages GET /chat/pinned/:recipientId
// Full snapshot of the viewer's pinned set for this conversation. The
// viewer's own messages are labeled "You".
func LoadPinnedMessages(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	recipientID := c.Param("recipientId")

	var recipient models.User
	if err := database.DB.First(&recipient, "id = ?", recipientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found."})
		return
	}

	var messages []models.ChatMessage
	err := database.DB.Preload("Sender").
		Joins("JOIN message_pins ON message_pins.chat_message_id = chat_messages.id").
		Where("message_pins.user_id = ?", userID).
		Where("(chat_messages.sender_id = ? AND chat_messages.recipient_id = ?) OR (chat_messages.sender_id = ? AND chat_messages.recipient_id = ?)",
			userID, recipientID, recipientID, userID).
		Order("chat_messages.created_at asc").
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pinned messages"})
		return
	}

	out := make([]gin.H, 0, len(messages))
	for _, m := range messages {
		// Clearing the chat clears its pins from view too.
		if m.HiddenFor(userID) {
			continue
		}
		name := m.Sender.DisplayName()
		if m.SenderID == userID {
			name = "You"
		}
		out = append(out, gin.H{
			"id":         m.ID,
			"message":    m.Content,
			"created_at": m.CreatedAt,
			"sender__userprofile__profile_name": name,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ClearChat POST /chat/clear/:recipientId
// Hides the conversation for the caller only; the other side keeps their
// history.
func ClearChat(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	recipientID := c.Param("recipientId")

	var recipient models.User
	if err := database.DB.First(&recipient, "id = ?", recipientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found."})
		return
	}

	if err := database.DB.Model(&models.ChatMessage{}).
		Where("sender_id = ? AND recipient_id = ?", userID, recipientID).
		Update("sender_hidden", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear chat"})
		return
	}
	if err := database.DB.Model(&models.ChatMessage{}).
		Where("sender_id = ? AND recipient_id = ?", recipientID, userID).
		Update("recipient_hidden", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear chat"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetConversations GET /chat/conversations
// One entry per chat partner with the latest visible message, newest
// conversations first.
func GetConversations(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var messages []models.ChatMessage
	err := database.DB.
		Where("(sender_id = ? AND sender_hidden = ?) OR (recipient_id = ? AND recipient_hidden = ?)",
			userID, false, userID, false).
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}

	type conversation struct {
		User          models.User `json:"user"`
		LatestMessage string      `json:"latest_message"`
		LatestAt      time.Time   `json:"latest_at"`
	}

	// Messages are newest first, so the first sighting of a partner carries
	// that conversation's latest message.
	seen := make(map[string]bool)
	conversations := make([]conversation, 0)
	for _, m := range messages {
		partnerID := m.SenderID
		if partnerID == userID {
			partnerID = m.RecipientID
		}
		if seen[partnerID] {
			continue
		}
		seen[partnerID] = true

		var partner models.User
		if err := database.DB.First(&partner, "id = ?", partnerID).Error; err != nil {
			continue
		}
		conversations = append(conversations, conversation{
			User:          partner,
			LatestMessage: m.Content,
			LatestAt:      m.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}
