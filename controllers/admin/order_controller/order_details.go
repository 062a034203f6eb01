package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	storefront "github.com/herbsera/herbsera-backend/controllers/storefront/order_controller"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/services"
)

func loadOrder(c *gin.Context, tag string) (*models.Order, bool) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return nil, false
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	order, err := services.LoadOrder(ctx, orderID)
	if err != nil {
		storefront.RespondError(c, tag, err)
		return nil, false
	}
	return order, true
}

// GetOrderByID godoc
// @Summary Get an order (admin)
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 404 {object} models.ApiResponse
// @Router /admin/orders/{id} [get]
func GetOrderByID(c *gin.Context) {
	order, ok := loadOrder(c, "[admin.orders.get]")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order fetched successfully", order))
}

// DownloadOrderInvoice godoc
// @Summary Download an order invoice (admin)
// @Tags Admin - Orders
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {file} file
// @Failure 404 {object} models.ApiResponse
// @Router /admin/orders/{id}/invoice [get]
func DownloadOrderInvoice(c *gin.Context) {
	order, ok := loadOrder(c, "[admin.orders.invoice]")
	if !ok {
		return
	}
	storefront.WriteInvoice(c, order)
}
