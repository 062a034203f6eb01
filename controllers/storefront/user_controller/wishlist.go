package user_controller

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func loadWishlist(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := config.DB.WithContext(ctx).Model(&models.User{ID: userID}).
		Where("is_active = ?", true).
		Association("Wishlist").
		Find(&products)
	return products, err
}

// GetWishlist godoc
// @Summary List wishlisted products
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=[]models.Product}
// @Router /users/wishlist [get]
func GetWishlist(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	products, err := loadWishlist(ctx, userID)
	if err != nil {
		zap.L().Error("[users.wishlist] fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch wishlist"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Wishlist fetched successfully", products))
}

// AddToWishlist godoc
// @Summary Add a product to the wishlist
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.WishlistRequest true "Product"
// @Success 200 {object} models.ApiResponse{data=[]models.Product}
// @Failure 404 {object} models.ApiResponse
// @Router /users/wishlist [post]
func AddToWishlist(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "productId is required"))
		return
	}
	productID, err := uuid.Parse(strings.TrimSpace(req.ProductID))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var product models.Product
	if err := config.DB.WithContext(ctx).Where("id = ? AND is_active = ?", productID, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		zap.L().Error("[users.wishlist.add] load product failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update wishlist"))
		return
	}

	// Append is idempotent on the join table's composite key.
	if err := config.DB.WithContext(ctx).Model(&models.User{ID: userID}).
		Association("Wishlist").
		Append(&product); err != nil {
		zap.L().Error("[users.wishlist.add] append failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update wishlist"))
		return
	}

	products, err := loadWishlist(ctx, userID)
	if err != nil {
		zap.L().Error("[users.wishlist.add] reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch wishlist"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Added to wishlist", products))
}

// RemoveFromWishlist godoc
// @Summary Remove a product from the wishlist
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=[]models.Product}
// @Router /users/wishlist/{productId} [delete]
func RemoveFromWishlist(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := config.DB.WithContext(ctx).Model(&models.User{ID: userID}).
		Association("Wishlist").
		Delete(&models.Product{ID: productID}); err != nil {
		zap.L().Error("[users.wishlist.remove] failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update wishlist"))
		return
	}

	products, err := loadWishlist(ctx, userID)
	if err != nil {
		zap.L().Error("[users.wishlist.remove] reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch wishlist"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Removed from wishlist", products))
}
