package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/services"
)

// CancelOrder godoc
// @Summary Cancel an order
// @Description Owner only, while the order is pending or processing. Items are restocked.
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 400 {object} models.ApiResponse "Order can no longer be cancelled"
// @Failure 404 {object} models.ApiResponse
// @Router /orders/{id}/cancel [put]
func CancelOrder(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	order, err := services.CancelOrder(ctx, orderID, userID)
	if err != nil {
		RespondError(c, "[order.cancel]", err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order cancelled successfully", order))
}
