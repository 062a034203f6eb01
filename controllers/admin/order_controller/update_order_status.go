package order_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	storefront "github.com/herbsera/herbsera-backend/controllers/storefront/order_controller"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/services"
)

// UpdateOrderStatus godoc
// @Summary Update order status
// @Description Allowed: pending to processing or cancelled, processing to shipped or cancelled, shipped to delivered, delivered to refunded. Re-sending the current status only updates tracking. Cancelling restocks the items.
// @Tags Admin - Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param payload body models.UpdateOrderStatusRequest true "Status and optional tracking"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 400 {object} models.ApiResponse "Invalid status or transition"
// @Failure 404 {object} models.ApiResponse
// @Router /admin/orders/{id}/status [patch]
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "status is required"))
		return
	}
	req.Status = models.OrderStatus(strings.ToLower(strings.TrimSpace(string(req.Status))))

	ctx, cancel := config.WithTimeout()
	defer cancel()

	order, err := services.UpdateOrderStatus(ctx, orderID, req.Status, req.Tracking())
	if err != nil {
		storefront.RespondError(c, "[admin.orders.status]", err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order updated successfully", order))
}
