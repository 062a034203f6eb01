package storefront_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/controllers/storefront/cart_controller"
	"github.com/herbsera/herbsera-backend/controllers/storefront/order_controller"
	"github.com/herbsera/herbsera-backend/controllers/storefront/review_controller"
	"github.com/herbsera/herbsera-backend/controllers/storefront/user_controller"
	"github.com/herbsera/herbsera-backend/middleware"
)

// SetupCartRoutes registers the signed-in shopper's cart.
func SetupCartRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware())
	{
		cart.GET("", cart_controller.GetCart)
		cart.POST("", cart_controller.AddToCart)
		cart.DELETE("", cart_controller.ClearCart)
		cart.PUT("/:itemId", cart_controller.UpdateCartItem)
		cart.DELETE("/:itemId", cart_controller.RemoveFromCart)
	}
}

func SetupOrderRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.POST("", order_controller.CreateOrder)
		orders.GET("/my-orders", order_controller.GetMyOrders)
		orders.GET("/:id", order_controller.GetOrder)
		orders.PUT("/:id/cancel", order_controller.CancelOrder)
		orders.GET("/:id/invoice", order_controller.DownloadInvoice)
	}
}

func SetupReviewRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews")

	// Public
	reviews.GET("/product/:productId", review_controller.GetProductReviews)

	protected := reviews.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", review_controller.CreateReview)
		protected.PUT("/:id", review_controller.UpdateReview)
		protected.DELETE("/:id", review_controller.DeleteReview)
		protected.POST("/:id/helpful", review_controller.MarkHelpful)
	}
}

func SetupUserRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware())

	// Profile
	users.GET("/profile", user_controller.GetProfile)
	users.PUT("/profile", user_controller.UpdateProfile)

	// Addresses
	users.POST("/addresses", user_controller.AddAddress)
	users.PUT("/addresses/:addressId", user_controller.UpdateAddress)
	users.DELETE("/addresses/:addressId", user_controller.DeleteAddress)

	// Wishlist
	users.GET("/wishlist", user_controller.GetWishlist)
	users.POST("/wishlist", user_controller.AddToWishlist)
	users.DELETE("/wishlist/:productId", user_controller.RemoveFromWishlist)
}
