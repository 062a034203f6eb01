package auth_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register godoc
// @Summary Create a password account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Account"
// @Success 201 {object} models.ApiResponse{data=models.AuthResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse "Email already registered"
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "A valid email, a password of at least 8 characters and a display name are required"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Display name is required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var existing int64
	if err := config.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		zap.L().Error("[auth.register] lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Registration failed"))
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "An account with this email already exists"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("[auth.register] hash failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Registration failed"))
		return
	}

	user := models.User{
		Email:        email,
		DisplayName:  name,
		Role:         models.RoleUser,
		Provider:     models.ProviderPassword,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := config.DB.WithContext(ctx).Create(&user).Error; err != nil {
		zap.L().Error("[auth.register] create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Registration failed"))
		return
	}

	token, err := startSession(c, &user, models.ProviderPassword)
	if err != nil {
		zap.L().Error("[auth.register] token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Registration failed"))
		return
	}

	zap.L().Info("[auth.register] ✅ account created", zap.String("user", user.ID.String()))
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Account created successfully", models.AuthResponse{User: &user, Token: token}))
}

// Login godoc
// @Summary Sign in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} models.ApiResponse{data=models.AuthResponse}
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse "Account deactivated"
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Email and password are required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var user models.User
	err := config.DB.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Error("[auth.login] lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Login failed"))
		return
	}

	if err != nil || user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid email or password"))
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Your account has been deactivated"))
		return
	}

	token, err := startSession(c, &user, models.ProviderPassword)
	if err != nil {
		zap.L().Error("[auth.login] token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Login failed"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Login successful", models.AuthResponse{User: &user, Token: token}))
}
