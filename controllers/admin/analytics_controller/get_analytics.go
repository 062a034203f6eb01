package analytics_controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/services"
	"go.uber.org/zap"
)

// GetAnalytics godoc
// @Summary Admin analytics
// @Description Sales over the last 30 days, top products, category and status distributions, revenue for the last 12 months and best rated products.
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.Analytics}
// @Failure 503 {object} models.ApiResponse
// @Router /admin/analytics [get]
func GetAnalytics(c *gin.Context) {
	if config.Pool == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Analytics database is not available"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	start := time.Now()
	analytics, err := services.BuildAnalytics(ctx, config.Pool, start)
	if err != nil {
		zap.L().Error("[admin.analytics] failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch analytics"))
		return
	}

	zap.L().Debug("[admin.analytics] built", zap.Duration("took", time.Since(start)))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Analytics fetched successfully", analytics))
}
