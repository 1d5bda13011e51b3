package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/miron-alexandru/PlayStyleCompass/internal/database"
	"github.com/miron-alexandru/PlayStyleCompass/internal/models"
	"github.com/miron-alexandru/PlayStyleCompass/internal/realtime"
	"github.com/miron-alexandru/PlayStyleCompass/internal/render"
	"github.com/miron-alexandru/PlayStyleCompass/internal/store"
	"github.com/miron-alexandru/PlayStyleCompass/pkg/logger"
	"github.com/miron-alexandru/PlayStyleCompass/pkg/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Typing throttle: track last typing emit per user to prevent spam.
var (
	lastTypingEmit         = make(map[string]time.Time)
	lastTypingMu           sync.Mutex
	typingThrottleDuration = 3 * time.Second
)

// wsAuth validates the handshake token. Browsers cannot set headers on a
// WebSocket upgrade, so the token rides a query parameter.
func wsAuth(c *gin.Context) (string, bool) {
	token := c.Query("token")
	if token == "" {
		token = c.Query("auth_token")
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return "", false
	}
	claims, err := utils.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return "", false
	}
	return claims.UserID, true
}

// chatFrame is the inbound frame shape on the private chat channel.
type chatFrame struct {
	Typing      bool `json:"typing"`
	EditMessage *struct {
		MessageID  string `json:"message_id"`
		NewContent string `json:"new_content"`
	} `json:"edit_message"`
}

// ServeChatSocket handles /ws/chat/:recipientId. Both participants join the
// same conversation room; typing indicators and edit broadcasts flow through
// it. New-message frames are pushed by the create handler, not received here.
func ServeChatSocket(c *gin.Context) {
	userID, ok := wsAuth(c)
	if !ok {
		return
	}
	recipientID := c.Param("recipientId")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error().Err(err).Msg("chat socket upgrade failed")
		return
	}

	room := realtime.ChatRoomName(userID, recipientID)
	client := realtime.NewClient(realtime.Chat, conn, userID)
	realtime.Chat.Join(room, client)

	client.OnMessage(func(data []byte) {
		var frame chatFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			// Malformed frames are dropped, never rendered.
			logger.Warn().Err(err).Str("room", room).Msg("dropping malformed chat frame")
			return
		}

		if frame.EditMessage != nil {
			realtime.Chat.Broadcast(room, gin.H{
				"message_id":  frame.EditMessage.MessageID,
				"new_content": frame.EditMessage.NewContent,
				"sender_id":   userID,
			})
			return
		}

		if throttleTyping(userID) {
			return
		}
		realtime.Chat.Broadcast(room, gin.H{
			"typing":    frame.Typing,
			"sender_id": userID,
		})
	})

	client.Run()
}

func throttleTyping(userID string) bool {
	lastTypingMu.Lock()
	defer lastTypingMu.Unlock()

	if last, ok := lastTypingEmit[userID]; ok && time.Since(last) < typingThrottleDuration {
		return true
	}
	lastTypingEmit[userID] = time.Now()
	return false
}

// ServeGlobalChatSocket handles /ws/global-chat. Push-only: inbound frames
// are ignored, messages arrive via the create endpoint's broadcast.
func ServeGlobalChatSocket(c *gin.Context) {
	userID, ok := wsAuth(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error().Err(err).Msg("global chat socket upgrade failed")
		return
	}

	client := realtime.NewClient(realtime.GlobalChat, conn, userID)
	realtime.GlobalChat.Join(realtime.GlobalRoomName, client)
	client.Run()
}

// ServeNotifySocket handles /ws/notify. On connect every active
// notification is replayed through the feed store (which dedupes by ID)
// before live ones stream in.
func ServeNotifySocket(c *gin.Context) {
	userID, ok := wsAuth(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error().Err(err).Msg("notify socket upgrade failed")
		return
	}

	client := realtime.NewClient(realtime.Notify, conn, userID)
	realtime.Notify.Join(realtime.UserRoomName(userID), client)

	go func() {
		var past []models.Notification
		if err := database.DB.
			Where("user_id = ? AND is_active = ?", userID, true).
			Order("created_at asc").
			Find(&past).Error; err != nil {
			logger.Error().Err(err).Msg("failed to load past notifications")
			return
		}

		feed := store.NewNotificationFeed()
		for _, n := range past {
			feed.Add(n)
		}
		for _, n := range feed.Active() {
			data, err := json.Marshal(notificationPayload(n))
			if err != nil {
				continue
			}
			client.Send(data)
		}
		logger.Debug().Int("count", feed.Len()).Int("unread", feed.Unread()).
			Str("user_id", userID).Msg("replayed notifications")
	}()

	client.Run()
}

// ServeOnlineStatusSocket handles /ws/online-status and
// /ws/online-status/:recipientId. Connecting marks the caller online; when a
// recipient is named, their status is sent immediately and refreshed every
// 15 seconds until disconnect.
func ServeOnlineStatusSocket(c *gin.Context) {
	userID, ok := wsAuth(c)
	if !ok {
		return
	}
	recipientID := c.Param("recipientId")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error().Err(err).Msg("online status socket upgrade failed")
		return
	}

	SetUserOnline(userID)

	client := realtime.NewClient(realtime.Presence, conn, userID)
	if recipientID != "" {
		realtime.Presence.Join(realtime.StatusRoomName(recipientID), client)
	}

	done := make(chan struct{})
	client.OnClose(func() {
		close(done)
		SetUserOffline(userID)
	})

	if recipientID != "" {
		go func() {
			sendStatus := func() {
				payload, err := statusPayload(recipientID)
				if err != nil {
					return
				}
				data, err := json.Marshal(payload)
				if err != nil {
					return
				}
				client.Send(data)
			}

			sendStatus()
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					sendStatus()
				case <-done:
					return
				}
			}
		}()
	}

	client.Run()
}

// statusPayload builds the online-status frame for one user.
func statusPayload(userID string) (gin.H, error) {
	var user models.User
	if err := database.DB.Select("id", "is_online", "last_online", "timezone").
		First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	lastOnline := user.LastOnline
	if cached, ok := database.GetLastOnline(userID); ok {
		lastOnline = &cached
	}

	var formatted any
	if s := render.FormatLastOnline(lastOnline, user.Timezone); s != "" {
		formatted = s
	}
	return gin.H{"status": user.IsOnline, "last_online": formatted}, nil
}
