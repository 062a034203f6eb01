package auth_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Logout godoc
// @Summary Logout
// @Description Clears the auth cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookie, "", -1, "/", "", isProduction(), true)
	c.SetCookie(oauthStateCookie, "", -1, "/", "", isProduction(), true)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logged out", nil))
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.User}
// @Failure 401 {object} models.ApiResponse
// @Router /auth/me [get]
func Me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var user models.User
	if err := config.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "User not found"))
			return
		}
		zap.L().Error("[auth.me] fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch user"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "User fetched successfully", user))
}
