package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/miron-alexandru/PlayStyleCompass/internal/database"
	"github.com/miron-alexandru/PlayStyleCompass/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestCreateGlobalMessage(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	createTestUser(t, "g1", "globaluser1")

	w, c := testContext(t, "g1", "POST", "/api/global-chat/messages", gin.H{
		"content": "anyone up for co-op?",
	})
	CreateGlobalMessage(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Message created", resp["status"])
	assert.NotEmpty(t, resp["id"])
}

func TestCreateGlobalMessageEmpty(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	createTestUser(t, "g2", "globaluser2")

	w, c := testContext(t, "g2", "POST", "/api/global-chat/messages", gin.H{
		"content": "  ",
	})
	CreateGlobalMessage(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "You must write something.")
}

func TestCreateGlobalMessageStripsScripts(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	createTestUser(t, "g3", "globaluser3")

	w, c := testContext(t, "g3", "POST", "/api/global-chat/messages", gin.H{
		"content": `hello <script>alert(1)</script>world`,
	})
	CreateGlobalMessage(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)

	var msg models.GlobalChatMessage
	database.DB.First(&msg, "id = ?", resp["id"])
	assert.NotContains(t, msg.Content, "<script>")
	assert.Contains(t, msg.Content, "hello")
}

func TestCreateGlobalMessageQuota(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	database.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { database.Redis = nil })

	createTestUser(t, "g5", "globaluser5")

	send := func() *httptest.ResponseRecorder {
		w, c := testContext(t, "g5", "POST", "/api/global-chat/messages", gin.H{
			"content": "spam spam spam",
		})
		CreateGlobalMessage(c)
		return w
	}

	// The full window's worth of sends goes through.
	for i := 0; i < 8; i++ {
		assert.Equal(t, http.StatusCreated, send().Code)
	}

	// The next one trips the quota and carries a countdown.
	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, true, resp["rate_limited"])
	assert.Greater(t, resp["wait_seconds"].(float64), float64(0))

	// Once the window expires the user can send again.
	mr.FastForward(2 * time.Minute)
	assert.Equal(t, http.StatusCreated, send().Code)
}

func TestGetGlobalMessagesPagination(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	createTestUser(t, "g4", "globaluser4")

	base := time.Now()
	for i := 0; i < 4; i++ {
		msg := models.GlobalChatMessage{SenderID: "g4", Content: "hello"}
		database.DB.Create(&msg)
		database.DB.Model(&msg).Update("created_at", base.Add(-time.Duration(i)*time.Minute))
	}

	w, c := testContext(t, "g4", "GET", "/api/global-chat/messages?offset=0&limit=2", nil)
	GetGlobalMessages(c)

	var page []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &page)
	assert.Len(t, page, 2)

	// Exhausted history is an empty array.
	w2, c2 := testContext(t, "g4", "GET", "/api/global-chat/messages?offset=100&limit=2", nil)
	GetGlobalMessages(c2)

	assert.Equal(t, http.StatusOK, w2.Code)
	var empty []map[string]interface{}
	json.Unmarshal(w2.Body.Bytes(), &empty)
	assert.Empty(t, empty)
}
