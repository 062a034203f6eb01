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

// GetOrder godoc
// @Summary Get an order
// @Description Visible to the owner and to admins. Anyone else gets 404.
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 404 {object} models.ApiResponse
// @Router /orders/{id} [get]
func GetOrder(c *gin.Context) {
	order, ok := loadVisibleOrder(c, "[order.get]")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order fetched successfully", order))
}

// loadVisibleOrder resolves :id to an order the caller may see, writing the
// error response itself when it cannot.
func loadVisibleOrder(c *gin.Context, tag string) (*models.Order, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return nil, false
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return nil, false
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	order, err := services.LoadOrder(ctx, orderID)
	if err != nil {
		RespondError(c, tag, err)
		return nil, false
	}
	if order.UserID != userID && !middleware.IsAdmin(c) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
		return nil, false
	}
	return order, true
}
