package dashboard_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
)

// GetDashboardStats godoc
// @Summary Admin dashboard statistics
// @Description Totals for users, products, orders and revenue. Revenue excludes cancelled and refunded orders.
// @Tags Admin - Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.DashboardStats}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/dashboard/stats [get]
func GetDashboardStats(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	db := config.DB.WithContext(ctx)
	stats := models.DashboardStats{RecentOrders: make([]models.Order, 0)}

	fail := func(what string, err error) {
		zap.L().Error("[admin.dashboard] "+what+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch dashboard stats"))
	}

	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		fail("count users", err)
		return
	}
	if err := db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		fail("count products", err)
		return
	}
	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		fail("count orders", err)
		return
	}
	if err := db.Model(&models.Order{}).
		Where("status NOT IN ?", []models.OrderStatus{models.OrderStatusCancelled, models.OrderStatusRefunded}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		fail("sum revenue", err)
		return
	}
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		fail("count pending", err)
		return
	}
	if err := db.Model(&models.Product{}).
		Where("is_active = ? AND stock <= ?", true, config.Store.LowStockThreshold).
		Count(&stats.LowStock).Error; err != nil {
		fail("count low stock", err)
		return
	}
	if err := db.Preload("User").
		Preload("Items").
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentOrders).Error; err != nil {
		fail("recent orders", err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Dashboard stats fetched successfully", stats))
}
