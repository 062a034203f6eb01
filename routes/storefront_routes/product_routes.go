package storefront_routes

import (
	"github.com/gin-gonic/gin"
	admin_product "github.com/herbsera/herbsera-backend/controllers/admin/product_controller"
	"github.com/herbsera/herbsera-backend/controllers/storefront/product_controller"
	"github.com/herbsera/herbsera-backend/middleware"
)

func SetupProductRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")

	// ════════════════════════════════════════════════════════════
	// Public Routes (No Auth Required)
	// ════════════════════════════════════════════════════════════
	products.GET("", product_controller.GetProducts)
	products.GET("/featured", product_controller.GetFeaturedProducts)
	products.GET("/categories", product_controller.GetCategories)
	products.GET("/slug/:slug", product_controller.GetProductBySlug)
	products.GET("/:id", product_controller.GetProduct)

	// ════════════════════════════════════════════════════════════
	// Admin Routes (Auth + Activity Logging)
	// ════════════════════════════════════════════════════════════
	protected := products.Group("")
	protected.Use(
		middleware.AuthMiddleware(),
		middleware.RequireAdmin(),
		middleware.ActivityLoggingMiddleware(),
	)
	{
		protected.POST("", admin_product.CreateProduct)
		protected.PUT("/:id", admin_product.UpdateProduct)
		protected.DELETE("/:id", admin_product.DeleteProduct)
	}
}
