package activity_controller

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

// GetActivityLogs godoc
// @Summary Admin activity log
// @Description Audit trail of admin write actions, newest first.
// @Tags Admin - Activity
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param resourceType query string false "product, order, user or review"
// @Param status query string false "success or failed"
// @Success 200 {object} models.ApiResponse{data=[]models.ActivityLog}
// @Router /admin/activity-logs [get]
func GetActivityLogs(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c, 20)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := config.DB.WithContext(ctx).Model(&models.ActivityLog{})
	if rt := strings.TrimSpace(c.Query("resourceType")); rt != "" {
		query = query.Where("resource_type = ?", rt)
	}
	if st := c.Query("status"); st == "success" || st == "failed" {
		query = query.Where("status = ?", st)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		zap.L().Error("[admin.activity] count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch activity logs"))
		return
	}

	logs := make([]models.ActivityLog, 0)
	if err := query.Session(&gorm.Session{}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		zap.L().Error("[admin.activity] fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch activity logs"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Activity logs fetched successfully", logs,
		models.NewPagination(page, limit, total)))
}
