package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/miron-alexandru/PlayStyleCompass/internal/handlers"
	"github.com/miron-alexandru/PlayStyleCompass/internal/middleware"
)

func RegisterChatRoutes(r gin.IRouter) {
	chat := r.Group("/chat")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.GET("/conversations", handlers.GetConversations)
		chat.GET("/messages/:recipientId", handlers.GetPrivateMessages)
		chat.POST("/messages", middleware.ChatRateLimit(), handlers.CreateMessage)
		chat.POST("/messages/:id/edit", handlers.EditMessage)
		chat.POST("/messages/:id/pin", handlers.TogglePinMessage)
		chat.GET("/pinned/:recipientId", handlers.LoadPinnedMessages)
		chat.POST("/clear/:recipientId", handlers.ClearChat)
		chat.POST("/attachments", middleware.UploadRateLimit(), handlers.UploadChatAttachment)
	}

	global := r.Group("/global-chat")
	global.Use(middleware.AuthMiddleware())
	{
		global.GET("/messages", handlers.GetGlobalMessages)
		global.POST("/messages", handlers.CreateGlobalMessage)
	}
}
