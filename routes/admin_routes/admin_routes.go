package admin_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/controllers/admin/activity_controller"
	"github.com/herbsera/herbsera-backend/controllers/admin/analytics_controller"
	"github.com/herbsera/herbsera-backend/controllers/admin/dashboard_controller"
	"github.com/herbsera/herbsera-backend/controllers/admin/order_controller"
	"github.com/herbsera/herbsera-backend/controllers/admin/product_controller"
	"github.com/herbsera/herbsera-backend/controllers/admin/review_controller"
	"github.com/herbsera/herbsera-backend/controllers/admin/user_controller"
	"github.com/herbsera/herbsera-backend/middleware"
)

// SetupAdminRoutes sets up the admin console API. Every route requires an
// admin account and every write lands in the activity log.
func SetupAdminRoutes(rg *gin.RouterGroup) {
	// ════════════════════════════════════════════════════════════
	// Base Admin Group
	// ════════════════════════════════════════════════════════════

	admin := rg.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireAdmin(),
		middleware.ActivityLoggingMiddleware(),
	)

	// ════════════════════════════════════════════════════════════
	// Overview
	// ════════════════════════════════════════════════════════════

	admin.GET("/dashboard/stats", dashboard_controller.GetDashboardStats)
	admin.GET("/analytics", analytics_controller.GetAnalytics)
	admin.GET("/activity-logs", activity_controller.GetActivityLogs)

	// ════════════════════════════════════════════════════════════
	// Users
	// ════════════════════════════════════════════════════════════

	users := admin.Group("/users")
	{
		users.GET("", user_controller.GetUsers)
		users.PATCH("/:id/role", user_controller.UpdateUserRole)
		users.PATCH("/:id/toggle-status", user_controller.ToggleUserStatus)
	}

	// ════════════════════════════════════════════════════════════
	// Products
	// ════════════════════════════════════════════════════════════

	products := admin.Group("/products")
	{
		products.GET("", product_controller.GetProducts)
		products.POST("", product_controller.CreateProduct)
		products.POST("/upload-image", product_controller.UploadProductImage)
		products.GET("/:id", product_controller.GetProductByID)
		products.PUT("/:id", product_controller.UpdateProduct)
		products.DELETE("/:id", product_controller.DeleteProduct)
	}

	// ════════════════════════════════════════════════════════════
	// Orders
	// ════════════════════════════════════════════════════════════

	orders := admin.Group("/orders")
	{
		orders.GET("", order_controller.GetOrders)
		orders.GET("/:id", order_controller.GetOrderByID)
		orders.PATCH("/:id/status", order_controller.UpdateOrderStatus)
		orders.GET("/:id/invoice", order_controller.DownloadOrderInvoice)
	}

	// ════════════════════════════════════════════════════════════
	// Reviews
	// ════════════════════════════════════════════════════════════

	reviews := admin.Group("/reviews")
	{
		reviews.GET("", review_controller.GetReviews)
		reviews.DELETE("/:id", review_controller.DeleteReview)
	}
}
