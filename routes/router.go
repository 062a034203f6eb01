package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/routes/admin_routes"
	"github.com/herbsera/herbsera-backend/routes/storefront_routes"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// SetupRouter builds the gin engine with every API route under /api.
func SetupRouter(logger *zap.Logger) *gin.Engine {
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))
	router.Use(cors.New(corsConfig()))

	router.GET("/health", health)

	api := router.Group("/api")
	api.Use(middleware.RateLimiter(100, time.Minute))

	storefront_routes.SetupAuthRoutes(api)
	storefront_routes.SetupProductRoutes(api)
	storefront_routes.SetupCartRoutes(api)
	storefront_routes.SetupOrderRoutes(api)
	storefront_routes.SetupReviewRoutes(api)
	storefront_routes.SetupUserRoutes(api)
	admin_routes.SetupAdminRoutes(api)

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

func corsConfig() cors.Config {
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length", "Retry-After"},
	}
}

func health(c *gin.Context) {
	ctx, cancel := config.WithCustomTimeout(2 * time.Second)
	defer cancel()

	if config.DB != nil {
		if sqlDB, err := config.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Database unavailable"))
			return
		}
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "ok", gin.H{"time": time.Now().UTC()}))
}
