package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/services"
	"go.uber.org/zap"
)

// CreateOrder godoc
// @Summary Place an order
// @Description Prices come from the catalog; any client-sent price is ignored. Stock is reserved and the cart cleared in the same transaction.
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateOrderRequest true "Order"
// @Success 201 {object} models.ApiResponse{data=models.Order}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "Product not found"
// @Failure 409 {object} models.ApiResponse "Stock taken by a concurrent order"
// @Router /orders [post]
func CreateOrder(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Info("[order.create] invalid payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Order must contain items with a product and a quantity of at least 1"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	order, err := services.PlaceOrder(ctx, userID, req)
	if err != nil {
		RespondError(c, "[order.create]", err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Order placed successfully", order))
}
