package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
)

// RemoveFromCart godoc
// @Summary Remove an item from the cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Cart item ID"
// @Success 200 {object} models.ApiResponse{data=models.Cart}
// @Failure 404 {object} models.ApiResponse
// @Router /cart/{itemId} [delete]
func RemoveFromCart(c *gin.Context) {
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

	ctx, cancel := config.WithTimeout()
	defer cancel()

	cart, err := findOrCreateCart(ctx, userID)
	if err != nil {
		zap.L().Error("[cart.remove] cart failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update cart"))
		return
	}

	res := config.DB.WithContext(ctx).Where("id = ? AND cart_id = ?", itemID, cart.ID).Delete(&models.CartItem{})
	if res.Error != nil {
		zap.L().Error("[cart.remove] delete failed", zap.Error(res.Error))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update cart"))
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Cart item not found"))
		return
	}

	updated, err := syncedCart(ctx, userID)
	if err != nil {
		zap.L().Error("[cart.remove] reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item removed from cart", updated))
}

// ClearCart godoc
// @Summary Empty the cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.Cart}
// @Router /cart [delete]
func ClearCart(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	cart, err := findOrCreateCart(ctx, userID)
	if err != nil {
		zap.L().Error("[cart.clear] cart failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to clear cart"))
		return
	}

	if err := config.DB.WithContext(ctx).Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		zap.L().Error("[cart.clear] delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to clear cart"))
		return
	}

	cart.Items = nil
	cart.Recalculate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart cleared", cart))
}
