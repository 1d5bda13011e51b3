package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/miron-alexandru/PlayStyleCompass/internal/database"
	"github.com/miron-alexandru/PlayStyleCompass/internal/models"
)

// GetMe GET /users/me
func GetMe(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserProfile GET /users/:id
// The static profile fields are cached briefly; online status and the
// viewer-specific block flag are always resolved fresh. Anonymous viewers
// (no token on the request) get the profile with the block flag unset.
func GetUserProfile(c *gin.Context) {
	viewerID := c.GetString("userId")
	targetID := c.Param("id")

	var user models.User
	cacheKey := "profile:" + targetID
	if err := database.CacheGet(cacheKey, &user); err != nil {
		if err := database.DB.First(&user, "id = ?", targetID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		database.CacheSet(cacheKey, user, time.Minute)
	}

	var isOnline bool
	database.DB.Model(&models.User{}).Select("is_online").
		Where("id = ?", targetID).Scan(&isOnline)

	isBlocked := false
	if viewerID != "" {
		isBlocked = models.IsBlockedEitherWay(database.DB, viewerID, targetID)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              user.ID,
		"profile_name":    user.DisplayName(),
		"profile_picture": user.ProfilePicture,
		"bio":             user.Bio,
		"favorite_genres": user.FavoriteGenres,
		"is_online":       isOnline,
		"is_blocked":      isBlocked,
	})
}

type UpdateProfileInput struct {
	ProfileName    *string  `json:"profile_name" binding:"omitempty,max=15"`
	Bio            *string  `json:"bio"`
	Timezone       *string  `json:"timezone"`
	FavoriteGenres []string `json:"favorite_genres"`
}

// UpdateProfile PATCH /users/me
func UpdateProfile(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.ProfileName != nil {
		user.ProfileName = *input.ProfileName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Timezone != nil {
		user.Timezone = *input.Timezone
	}
	if input.FavoriteGenres != nil {
		user.FavoriteGenres = pq.StringArray(input.FavoriteGenres)
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	// Refresh the cached profile so readers see the change immediately.
	database.CacheSet("profile:"+user.ID, user, time.Minute)

	c.JSON(http.StatusOK, user)
}
