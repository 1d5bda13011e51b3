package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/miron-alexandru/PlayStyleCompass/internal/handlers"
	"github.com/miron-alexandru/PlayStyleCompass/internal/middleware"
)

func RegisterNotificationRoutes(r gin.IRouter) {
	notif := r.Group("/notifications")
	notif.Use(middleware.AuthMiddleware())
	{
		notif.GET("", handlers.GetNotifications)
		notif.GET("/unread-count", handlers.GetUnreadCount)
		notif.POST("/:id/read", handlers.MarkNotificationRead)
		notif.POST("/:id/inactive", handlers.MarkNotificationInactive)
		notif.DELETE("/:id", handlers.DeleteNotification)
	}
}
