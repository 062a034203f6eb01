package user_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetProfile godoc
// @Summary Get the current user's profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.User}
// @Router /users/profile [get]
func GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	user, err := loadProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "User not found"))
			return
		}
		zap.L().Error("[users.profile] fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch profile"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Profile fetched successfully", user))
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.UpdateProfileRequest true "Changed fields"
// @Success 200 {object} models.ApiResponse{data=models.User}
// @Failure 400 {object} models.ApiResponse
// @Router /users/profile [put]
func UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Display name must be 1 to 100 characters"))
		return
	}

	updates := map[string]any{}
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Display name cannot be empty"))
			return
		}
		updates["display_name"] = name
	}
	if req.PhoneNumber != nil {
		phone := strings.TrimSpace(*req.PhoneNumber)
		switch {
		case phone == "":
			updates["phone_number"] = nil
		case !phonePattern.MatchString(phone):
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid phone number"))
			return
		default:
			updates["phone_number"] = phone
		}
	}
	if req.PhotoURL != nil {
		updates["photo_url"] = strings.TrimSpace(*req.PhotoURL)
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if len(updates) > 0 {
		if err := config.DB.WithContext(ctx).Model(&models.User{}).
			Where("id = ?", userID).
			Updates(updates).Error; err != nil {
			zap.L().Error("[users.profile] update failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update profile"))
			return
		}
	}

	user, err := loadProfile(ctx, userID)
	if err != nil {
		zap.L().Error("[users.profile] reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch profile"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Profile updated successfully", user))
}
