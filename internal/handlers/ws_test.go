package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/miron-alexandru/PlayStyleCompass/internal/config"
	"github.com/miron-alexandru/PlayStyleCompass/internal/realtime"
	"github.com/miron-alexandru/PlayStyleCompass/pkg/utils"
	"github.com/stretchr/testify/assert"
)

// dialChatSocket connects to the chat channel of a running test server.
func dialChatSocket(t *testing.T, serverURL, recipientID, token string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") +
		"/ws/chat/" + recipientID + "?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err)
	return conn
}

func TestChatSocketDropsMalformedFrames(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
	realtime.Init()

	createTestUser(t, "w1", "wsuser1")
	createTestUser(t, "w2", "wsuser2")

	tokenA, err := utils.GenerateToken("w1")
	assert.NoError(t, err)
	tokenB, err := utils.GenerateToken("w2")
	assert.NoError(t, err)

	r := gin.New()
	r.GET("/ws/chat/:recipientId", ServeChatSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	connA := dialChatSocket(t, srv.URL, "w2", tokenA)
	defer connA.Close()
	connB := dialChatSocket(t, srv.URL, "w1", tokenB)
	defer connB.Close()

	// The dial returns before the server side finishes joining the room.
	room := realtime.ChatRoomName("w1", "w2")
	for i := 0; i < 50 && realtime.Chat.RoomSize(room) < 2; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 2, realtime.Chat.RoomSize(room))

	// A garbage frame followed by a well-formed edit on the same connection.
	// Frames are handled in order, so if the edit comes through first on B's
	// side, the garbage was dropped and the connection survived it.
	assert.NoError(t, connA.WriteMessage(websocket.TextMessage, []byte("{not json")))
	assert.NoError(t, connA.WriteMessage(websocket.TextMessage, []byte(
		`{"edit_message":{"message_id":"em1","new_content":"fixed typo"}}`)))

	connB.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := connB.ReadMessage()
	assert.NoError(t, err)

	var frame map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &frame))
	assert.Equal(t, "em1", frame["message_id"])
	assert.Equal(t, "fixed typo", frame["new_content"])
	assert.Equal(t, "w1", frame["sender_id"])
}
