package cart_controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UpdateCartItem godoc
// @Summary Set the quantity of a cart item
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Cart item ID"
// @Param payload body models.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} models.ApiResponse{data=models.Cart}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /cart/{itemId} [put]
func UpdateCartItem(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid cart item ID"))
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}
	if req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Quantity must be at least 1"))
		return
	}
	if req.Quantity > models.MaxLineQuantity {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, fmt.Sprintf("Quantity cannot exceed %d", models.MaxLineQuantity)))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	cart, err := findOrCreateCart(ctx, userID)
	if err != nil {
		zap.L().Error("[cart.update] cart failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update cart"))
		return
	}

	item, err := findCartItem(ctx, cart.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Cart item not found"))
			return
		}
		zap.L().Error("[cart.update] load item failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update cart"))
		return
	}

	if item.Product == nil || !item.Product.IsActive || item.Product.DeletedAt.Valid {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}
	if req.Quantity > item.Product.Stock {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, fmt.Sprintf("Only %d items in stock", item.Product.Stock)))
		return
	}

	if err := config.DB.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{"quantity": req.Quantity, "price": item.Product.Price}).Error; err != nil {
		zap.L().Error("[cart.update] write failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update cart"))
		return
	}

	updated, err := syncedCart(ctx, userID)
	if err != nil {
		zap.L().Error("[cart.update] reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart updated", updated))
}
