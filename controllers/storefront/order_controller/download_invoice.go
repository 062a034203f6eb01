package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/services"
	"go.uber.org/zap"
)

// DownloadInvoice godoc
// @Summary Download an order invoice
// @Tags Orders
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {file} file
// @Failure 404 {object} models.ApiResponse
// @Router /orders/{id}/invoice [get]
func DownloadInvoice(c *gin.Context) {
	order, ok := loadVisibleOrder(c, "[order.invoice]")
	if !ok {
		return
	}
	WriteInvoice(c, order)
}

// WriteInvoice renders the order's PDF invoice as an attachment.
func WriteInvoice(c *gin.Context, order *models.Order) {
	buf, err := services.GenerateInvoicePDF(order, order.User, config.Store)
	if err != nil {
		zap.L().Error("[order.invoice] render failed", zap.String("order", order.OrderNumber), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate invoice"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+services.InvoiceFilename(order)+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
