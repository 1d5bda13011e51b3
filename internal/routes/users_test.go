package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/miron-alexandru/PlayStyleCompass/internal/config"
	"github.com/miron-alexandru/PlayStyleCompass/internal/database"
	"github.com/miron-alexandru/PlayStyleCompass/internal/models"
	"github.com/miron-alexandru/PlayStyleCompass/pkg/utils"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	database.DB = db
	database.DB.AutoMigrate(&models.User{}, &models.UserBlock{})

	r := gin.New()
	api := r.Group("/api")
	RegisterUserRoutes(api)
	return r
}

func TestProfileReadableWithoutToken(t *testing.T) {
	r := setupUserRouter(t)

	database.DB.Create(&models.User{
		ID: "ru1", Username: "routed1", Email: "ru1@example.com",
		ProfileName: "Nadia",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/users/ru1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Nadia", resp["profile_name"])
	assert.Equal(t, false, resp["is_blocked"])
}

func TestProfileBlockFlagWithToken(t *testing.T) {
	r := setupUserRouter(t)

	database.DB.Create(&models.User{ID: "ru2", Username: "routed2", Email: "ru2@example.com"})
	database.DB.Create(&models.User{ID: "ru3", Username: "routed3", Email: "ru3@example.com"})
	database.DB.Create(&models.UserBlock{ID: "rub1", BlockerID: "ru3", BlockedID: "ru2"})

	token, err := utils.GenerateToken("ru2")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/users/ru3", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, true, resp["is_blocked"])
}

func TestStatusReadableWithoutToken(t *testing.T) {
	r := setupUserRouter(t)

	database.DB.Create(&models.User{
		ID: "ru4", Username: "routed4", Email: "ru4@example.com", IsOnline: true,
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/users/ru4/status", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, true, resp["status"])
}

func TestOwnProfileRequiresToken(t *testing.T) {
	r := setupUserRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/users/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
