package user_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// targetUser resolves :id and refuses when it names the caller.
func targetUser(c *gin.Context, tag string) (*models.User, bool) {
	adminID, _ := middleware.GetUserIDFromContext(c)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid user ID"))
		return nil, false
	}
	if userID == adminID {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "You cannot change your own account"))
		return nil, false
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var user models.User
	if err := config.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "User not found"))
			return nil, false
		}
		zap.L().Error(tag+" fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update user"))
		return nil, false
	}
	return &user, true
}

// UpdateUserRole godoc
// @Summary Change a user's role
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param payload body models.UpdateRoleRequest true "Role"
// @Success 200 {object} models.ApiResponse{data=models.User}
// @Failure 400 {object} models.ApiResponse "Invalid role or own account"
// @Failure 404 {object} models.ApiResponse
// @Router /admin/users/{id}/role [patch]
func UpdateUserRole(c *gin.Context) {
	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Role must be user or admin"))
		return
	}

	user, ok := targetUser(c, "[admin.users.role]")
	if !ok {
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := config.DB.WithContext(ctx).Model(user).Update("role", req.Role).Error; err != nil {
		zap.L().Error("[admin.users.role] update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update role"))
		return
	}
	user.Role = req.Role

	zap.L().Info("[admin.users.role] updated", zap.String("user", user.ID.String()), zap.String("role", req.Role))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "User role updated successfully", user))
}

// ToggleUserStatus godoc
// @Summary Activate or deactivate a user
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.ApiResponse{data=models.User}
// @Failure 400 {object} models.ApiResponse "Own account"
// @Failure 404 {object} models.ApiResponse
// @Router /admin/users/{id}/toggle-status [patch]
func ToggleUserStatus(c *gin.Context) {
	user, ok := targetUser(c, "[admin.users.status]")
	if !ok {
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	next := !user.IsActive
	if err := config.DB.WithContext(ctx).Model(user).Update("is_active", next).Error; err != nil {
		zap.L().Error("[admin.users.status] update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update status"))
		return
	}
	user.IsActive = next

	msg := "User deactivated successfully"
	if next {
		msg = "User activated successfully"
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, msg, user))
}
