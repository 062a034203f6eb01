package order_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetOrders godoc
// @Summary List orders (admin)
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Order status" Enums(pending, processing, shipped, delivered, cancelled, refunded)
// @Param search query string false "Order number, customer email or name"
// @Success 200 {object} models.ApiResponse{data=[]models.Order}
// @Failure 400 {object} models.ApiResponse
// @Router /admin/orders [get]
func GetOrders(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c, 20)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := config.DB.WithContext(ctx).Model(&models.Order{})

	if raw := strings.TrimSpace(c.Query("status")); raw != "" && raw != "all" {
		status := models.OrderStatus(strings.ToLower(raw))
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid status filter"))
			return
		}
		query = query.Where("orders.status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := utils.LikePattern(search)
		query = query.
			Joins("LEFT JOIN users ON users.id = orders.user_id").
			Where(`(LOWER(orders.order_number) LIKE ? ESCAPE '\' OR LOWER(users.email) LIKE ? ESCAPE '\' OR LOWER(users.display_name) LIKE ? ESCAPE '\')`,
				pattern, pattern, pattern)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		zap.L().Error("[admin.orders.list] count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	orders := make([]models.Order, 0)
	if err := query.Session(&gorm.Session{}).
		Preload("User").
		Preload("Items").
		Order("orders.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error; err != nil {
		zap.L().Error("[admin.orders.list] fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Orders fetched successfully", orders,
		models.NewPagination(page, limit, total)))
}
