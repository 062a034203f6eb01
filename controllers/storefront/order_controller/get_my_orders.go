package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/utils"
	"go.uber.org/zap"
)

// GetMyOrders godoc
// @Summary List the current user's orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.ApiResponse{data=[]models.Order}
// @Router /orders/my-orders [get]
func GetMyOrders(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	page, limit, offset := utils.ParsePagination(c, 10)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var total int64
	if err := config.DB.WithContext(ctx).Model(&models.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		zap.L().Error("[order.mine] count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	orders := make([]models.Order, 0)
	if err := config.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error; err != nil {
		zap.L().Error("[order.mine] fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Orders fetched successfully", orders,
		models.NewPagination(page, limit, total)))
}
