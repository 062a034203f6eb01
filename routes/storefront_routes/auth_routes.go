package storefront_routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/controllers/auth_controller"
	"github.com/herbsera/herbsera-backend/middleware"
)

func SetupAuthRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")

	// ════════════════════════════════════════════════════════════
	// Public Routes (stricter limit on credential endpoints)
	// ════════════════════════════════════════════════════════════

	credentials := auth.Group("")
	credentials.Use(middleware.RateLimiter(10, time.Minute))
	{
		credentials.POST("/register", auth_controller.Register)
		credentials.POST("/login", auth_controller.Login)
		credentials.POST("/google/token", auth_controller.GoogleTokenLogin)
	}

	auth.GET("/google", auth_controller.GoogleLogin)
	auth.GET("/google/callback", auth_controller.GoogleCallback)
	auth.POST("/logout", auth_controller.Logout)

	// ════════════════════════════════════════════════════════════
	// Protected Routes (Auth Required)
	// ════════════════════════════════════════════════════════════

	auth.GET("/me", middleware.AuthMiddleware(), auth_controller.Me)
}
