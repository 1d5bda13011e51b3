package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/miron-alexandru/PlayStyleCompass/internal/database"
	"github.com/miron-alexandru/PlayStyleCompass/internal/models"
	"gorm.io/gorm"
)

// BlockUser POST /social/block/:id
func BlockUser(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	targetID := c.Param("id")

	if userID == targetID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot block yourself."})
		return
	}

	var target models.User
	if err := database.DB.First(&target, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var existing models.UserBlock
	if err := database.DB.Where("blocker_id = ? AND blocked_id = ?", userID, targetID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "User is already blocked."})
		return
	}

	block := models.UserBlock{BlockerID: userID, BlockedID: targetID}
	if err := database.DB.Create(&block).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to block user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User has been blocked."})
}

// UnblockUser POST /social/unblock/:id
// The client removes the entry from the rendered block list when the
// confirmation string matches.
func UnblockUser(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	targetID := c.Param("id")

	if userID == targetID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot unblock yourself."})
		return
	}

	result := database.DB.
		Where("blocker_id = ? AND blocked_id = ?", userID, targetID).
		Delete(&models.UserBlock{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unblock user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "User was not blocked."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User has been unblocked."})
}

// CheckBlock GET /social/check-block/:id
func CheckBlock(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	targetID := c.Param("id")

	var count int64
	database.DB.Model(&models.UserBlock{}).
		Where("blocker_id = ? AND blocked_id = ?", userID, targetID).
		Count(&count)

	c.JSON(http.StatusOK, gin.H{"is_blocked": count > 0})
}

// GetBlockList GET /social/block-list
func GetBlockList(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var blocks []models.UserBlock
	if err := database.DB.Preload("Blocked").
		Where("blocker_id = ?", userID).
		Order("created_at desc").
		Find(&blocks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch block list"})
		return
	}

	out := make([]gin.H, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, gin.H{
			"id":           b.Blocked.ID,
			"profile_name": b.Blocked.DisplayName(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"blocked_users": out})
}

// SendFriendRequest POST /social/friend-request/:id
func SendFriendRequest(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	targetID := c.Param("id")

	if userID == targetID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot send a friend request to yourself."})
		return
	}

	var target models.User
	if err := database.DB.First(&target, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if models.IsBlockedEitherWay(database.DB, userID, targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot send a friend request to this user"})
		return
	}

	if friendshipExists(userID, targetID) {
		c.JSON(http.StatusOK, gin.H{"message": "You are already friends."})
		return
	}

	var existing models.FriendRequest
	if err := database.DB.
		Where("sender_id = ? AND receiver_id = ? AND status = ?", userID, targetID, models.FriendRequestPending).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Friend request already sent."})
		return
	}

	var sender models.User
	database.DB.First(&sender, "id = ?", userID)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		req := models.FriendRequest{
			SenderID:   userID,
			ReceiverID: targetID,
			Status:     models.FriendRequestPending,
		}
		if err := tx.Create(&req).Error; err != nil {
			return err
		}
		return CreateNotification(tx, models.Notification{
			UserID:  targetID,
			Message: sender.DisplayName() + " sent you a friend request.",
		})
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send friend request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request sent."})
}

// AcceptFriendRequest POST /social/friend-request/:id/accept
func AcceptFriendRequest(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	requestID := c.Param("id")

	var req models.FriendRequest
	if err := database.DB.
		First(&req, "id = ? AND receiver_id = ? AND status = ?", requestID, userID, models.FriendRequestPending).
		Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found"})
		return
	}

	var receiver models.User
	database.DB.First(&receiver, "id = ?", userID)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		req.Status = models.FriendRequestAccepted
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		a, b := req.SenderID, req.ReceiverID
		if a > b {
			a, b = b, a
		}
		friendship := models.Friendship{UserID: a, FriendID: b}
		if err := tx.Create(&friendship).Error; err != nil {
			return err
		}

		return CreateNotification(tx, models.Notification{
			UserID:  req.SenderID,
			Message: receiver.DisplayName() + " accepted your friend request.",
		})
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept friend request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted."})
}

// DeclineFriendRequest POST /social/friend-request/:id/decline
func DeclineFriendRequest(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	requestID := c.Param("id")

	result := database.DB.Model(&models.FriendRequest{}).
		Where("id = ? AND receiver_id = ? AND status = ?", requestID, userID, models.FriendRequestPending).
		Update("status", models.FriendRequestDeclined)
	if result.Error != nil || result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request declined."})
}

// CancelFriendRequest POST /social/friend-request/:id/cancel
func CancelFriendRequest(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	requestID := c.Param("id")

	result := database.DB.
		Where("id = ? AND sender_id = ? AND status = ?", requestID, userID, models.FriendRequestPending).
		Delete(&models.FriendRequest{})
	if result.Error != nil || result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request cancelled."})
}

// RemoveFriend POST /social/friends/:id/remove
func RemoveFriend(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	friendID := c.Param("id")

	a, b := userID, friendID
	if a > b {
		a, b = b, a
	}

	result := database.DB.
		Where("user_id = ? AND friend_id = ?", a, b).
		Delete(&models.Friendship{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove friend"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friend not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend removed."})
}

// GetFriends GET /social/friends
// Friends with their live online status for the friends-list view.
func GetFriends(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var friendships []models.Friendship
	if err := database.DB.
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Find(&friendships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	out := make([]gin.H, 0, len(friendships))
	for _, f := range friendships {
		friendID := f.UserID
		if friendID == userID {
			friendID = f.FriendID
		}
		var friend models.User
		if err := database.DB.First(&friend, "id = ?", friendID).Error; err != nil {
			continue
		}
		out = append(out, gin.H{
			"id":              friend.ID,
			"profile_name":    friend.DisplayName(),
			"profile_picture": friend.ProfilePicture,
			"is_online":       friend.IsOnline,
		})
	}
	c.JSON(http.StatusOK, gin.H{"friends": out})
}

// GetFriendRequests GET /social/friend-requests
func GetFriendRequests(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var requests []models.FriendRequest
	if err := database.DB.Preload("Sender").
		Where("receiver_id = ? AND status = ?", userID, models.FriendRequestPending).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friend requests"})
		return
	}

	out := make([]gin.H, 0, len(requests))
	for _, r := range requests {
		out = append(out, gin.H{
			"id":           r.ID,
			"sender_id":    r.SenderID,
			"profile_name": r.Sender.DisplayName(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"requests": out})
}

func friendshipExists(a, b string) bool {
	if a > b {
		a, b = b, a
	}
	var count int64
	database.DB.Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", a, b).
		Count(&count)
	return count > 0
}
