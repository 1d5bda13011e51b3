package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/miron-alexandru/PlayStyleCompass/internal/handlers"
	"github.com/miron-alexandru/PlayStyleCompass/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	auth := r.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}
}

func RegisterUserRoutes(r gin.IRouter) {
	users := r.Group("/users")

	// Profiles and online status are readable without an account; a token,
	// when present, personalizes the block flag.
	users.GET("/:id", middleware.OptionalAuthMiddleware(), handlers.GetUserProfile)
	users.GET("/:id/status", middleware.OptionalAuthMiddleware(), handlers.GetUserStatus)

	me := users.Group("")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("/me", handlers.GetMe)
		me.PATCH("/me", handlers.UpdateProfile)
		me.POST("/profile-picture", middleware.UploadRateLimit(), handlers.UploadProfilePicture)
	}
}
