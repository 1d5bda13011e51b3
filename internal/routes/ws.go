package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/miron-alexandru/PlayStyleCompass/internal/handlers"
)

// RegisterWSRoutes mounts the websocket endpoints. Auth happens inside the
// handlers via a query-string token because browsers cannot set headers on
// websocket upgrades.
func RegisterWSRoutes(r gin.IRouter) {
	ws := r.Group("/ws")
	{
		ws.GET("/chat/:recipientId", handlers.ServeChatSocket)
		ws.GET("/global-chat", handlers.ServeGlobalChatSocket)
		ws.GET("/notify", handlers.ServeNotifySocket)
		ws.GET("/online-status", handlers.ServeOnlineStatusSocket)
		ws.GET("/online-status/:recipientId", handlers.ServeOnlineStatusSocket)
	}
}
