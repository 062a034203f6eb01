package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
)

// GetCart godoc
// @Summary Get the current user's cart
// @Description Creates an empty cart on first access. Item prices are re-synced to the catalog.
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.Cart}
// @Failure 401 {object} models.ApiResponse
// @Router /cart [get]
func GetCart(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	cart, err := syncedCart(ctx, userID)
	if err != nil {
		zap.L().Error("[cart.get] load failed", zap.String("user", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart fetched successfully", cart))
}
