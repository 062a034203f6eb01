package user_controller

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

// GetUsers godoc
// @Summary List users
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search email or display name"
// @Param role query string false "Filter by role" Enums(user, admin)
// @Success 200 {object} models.ApiResponse{data=[]models.User}
// @Router /admin/users [get]
func GetUsers(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c, 20)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := config.DB.WithContext(ctx).Model(&models.User{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := utils.LikePattern(search)
		query = query.Where(`(LOWER(email) LIKE ? ESCAPE '\' OR LOWER(display_name) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if role := c.Query("role"); role == models.RoleUser || role == models.RoleAdmin {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		zap.L().Error("[admin.users.list] count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch users"))
		return
	}

	users := make([]models.User, 0)
	if err := query.Session(&gorm.Session{}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		zap.L().Error("[admin.users.list] fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch users"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Users fetched successfully", users,
		models.NewPagination(page, limit, total)))
}
