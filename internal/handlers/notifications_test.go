package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/miron-alexandru/PlayStyleCompass/internal/database"
	"github.com/miron-alexandru/PlayStyleCompass/internal/models"
	"github.com/stretchr/testify/assert"
)

func seedNotifications(t *testing.T, userID string, count int) []models.Notification {
	t.Helper()
	out := make([]models.Notification, 0, count)
	base := time.Now()
	for i := 0; i < count; i++ {
		n := models.Notification{
			UserID:   userID,
			Message:  "something happened",
			IsActive: true,
		}
		assert.NoError(t, database.DB.Create(&n).Error)
		database.DB.Model(&n).Update("created_at", base.Add(-time.Duration(i)*time.Minute))
		out = append(out, n)
	}
	return out
}

func TestGetNotifications(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	createTestUser(t, "n1", "notifuser1")
	seeded := seedNotifications(t, "n1", 3)
	database.DB.Model(&seeded[1]).Update("is_read", true)

	// Inactive entries never reach the feed.
	database.DB.Model(&seeded[2]).Update("is_active", false)

	w, c := testContext(t, "n1", "GET", "/api/notifications", nil)
	GetNotifications(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Notifications []map[string]interface{} `json:"notifications"`
		UnreadCount   int                      `json:"unread_count"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	assert.Len(t, resp.Notifications, 2)
	assert.Equal(t, 1, resp.UnreadCount)
	// Newest first.
	assert.Equal(t, seeded[0].ID, resp.Notifications[0]["id"])
}

func TestMarkSingleNotificationRead(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	createTestUser(t, "n2", "notifuser2")
	seeded := seedNotifications(t, "n2", 2)

	w, c := testContext(t, "n2", "POST", "/api/notifications/"+seeded[0].ID+"/read", nil)
	c.Params = gin.Params{{Key: "id", Value: seeded[0].ID}}
	MarkNotificationRead(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Notification
	database.DB.First(&updated, "id = ?", seeded[0].ID)
	assert.True(t, updated.IsRead)

	var untouched models.Notification
	database.DB.First(&untouched, "id = ?", seeded[1].ID)
	assert.False(t, untouched.IsRead)
}

func TestMarkAllNotificationsReadZeroesUnread(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	createTestUser(t, "n3", "notifuser3")
	seedNotifications(t, "n3", 4)

	// "0" is the mark-everything wildcard.
	w, c := testContext(t, "n3", "POST", "/api/notifications/0/read", nil)
	c.Params = gin.Params{{Key: "id", Value: "0"}}
	MarkNotificationRead(c)

	assert.Equal(t, http.StatusOK, w.Code)

	w2, c2 := testContext(t, "n3", "GET", "/api/notifications/unread-count", nil)
	GetUnreadCount(c2)

	var resp struct {
		Count int `json:"count"`
	}
	json.Unmarshal(w2.Body.Bytes(), &resp)
	assert.Equal(t, 0, resp.Count)
}

func TestMarkNotificationInactiveRemovesFromFeed(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	createTestUser(t, "n4", "notifuser4")
	seeded := seedNotifications(t, "n4", 2)

	w, c := testContext(t, "n4", "POST", "/api/notifications/"+seeded[0].ID+"/inactive", nil)
	c.Params = gin.Params{{Key: "id", Value: seeded[0].ID}}
	MarkNotificationInactive(c)

	assert.Equal(t, http.StatusOK, w.Code)

	w2, c2 := testContext(t, "n4", "GET", "/api/notifications", nil)
	GetNotifications(c2)

	var resp struct {
		Notifications []map[string]interface{} `json:"notifications"`
	}
	json.Unmarshal(w2.Body.Bytes(), &resp)
	assert.Len(t, resp.Notifications, 1)

	// The row itself survives.
	var row models.Notification
	assert.NoError(t, database.DB.First(&row, "id = ?", seeded[0].ID).Error)
	assert.False(t, row.IsActive)
}

func TestMarkMissingNotification(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	createTestUser(t, "n5", "notifuser5")

	w, c := testContext(t, "n5", "POST", "/api/notifications/does-not-exist/read", nil)
	c.Params = gin.Params{{Key: "id", Value: "does-not-exist"}}
	MarkNotificationRead(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteNotificationForbiddenForOthers(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	createTestUser(t, "n6", "notifuser6")
	createTestUser(t, "n7", "notifuser7")
	seeded := seedNotifications(t, "n6", 1)

	w, c := testContext(t, "n7", "DELETE", "/api/notifications/"+seeded[0].ID, nil)
	c.Params = gin.Params{{Key: "id", Value: seeded[0].ID}}
	DeleteNotification(c)

	assert.Equal(t, http.StatusForbidden, w.Code)

	w2, c2 := testContext(t, "n6", "DELETE", "/api/notifications/"+seeded[0].ID, nil)
	c2.Params = gin.Params{{Key: "id", Value: seeded[0].ID}}
	DeleteNotification(c2)

	assert.Equal(t, http.StatusOK, w2.Code)
	var gone models.Notification
	assert.Error(t, database.DB.First(&gone, "id = ?", seeded[0].ID).Error)
}

func TestCreateNotificationPersists(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	createTestUser(t, "n8", "notifuser8")

	err := CreateNotification(database.DB, models.Notification{
		UserID:  "n8",
		Message: "Alice sent you a friend request.",
	})
	assert.NoError(t, err)

	var rows []models.Notification
	database.DB.Where("user_id = ?", "n8").Find(&rows)
	assert.Len(t, rows, 1)
	assert.True(t, rows[0].IsActive)
	assert.False(t, rows[0].IsRead)
}
