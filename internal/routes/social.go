package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/miron-alexandru/PlayStyleCompass/internal/handlers"
	"github.com/miron-alexandru/PlayStyleCompass/internal/middleware"
)

func RegisterSocialRoutes(r gin.IRouter) {
	social := r.Group("/social")
	social.Use(middleware.AuthMiddleware())
	{
		social.POST("/block/:id", handlers.BlockUser)
		social.POST("/unblock/:id", handlers.UnblockUser)
		social.GET("/check-block/:id", handlers.CheckBlock)
		social.GET("/block-list", handlers.GetBlockList)

		social.POST("/friend-request/:id", handlers.SendFriendRequest)
		social.POST("/friend-request/:id/accept", handlers.AcceptFriendRequest)
		social.POST("/friend-request/:id/decline", handlers.DeclineFriendRequest)
		social.POST("/friend-request/:id/cancel", handlers.CancelFriendRequest)
		social.GET("/friend-requests", handlers.GetFriendRequests)

		social.GET("/friends", handlers.GetFriends)
		social.POST("/friends/:id/remove", handlers.RemoveFriend)
	}
}
