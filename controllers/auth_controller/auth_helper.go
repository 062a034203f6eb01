package auth_controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const oauthStateCookie = "oauth_state"

var errAccountDisabled = errors.New("account is deactivated")

func isProduction() bool {
	return os.Getenv("APP_ENV") == "production"
}

// upsertGoogleUser finds the user by Google id or email, linking the Google
// account to an existing password account with the same email.
func upsertGoogleUser(ctx context.Context, info *models.GoogleUserInfo, googleID string) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(info.Email))
	if email == "" {
		return nil, fmt.Errorf("google account has no email")
	}

	var user models.User
	err := config.DB.WithContext(ctx).
		Where("google_id = ? OR email = ?", googleID, email).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		name := strings.TrimSpace(info.Name)
		if name == "" {
			name = strings.Split(email, "@")[0]
		}
		user = models.User{
			Email:       email,
			DisplayName: name,
			Provider:    models.ProviderGoogle,
			GoogleID:    &googleID,
			Role:        models.RoleUser,
			IsActive:    true,
		}
		if info.Picture != "" {
			user.PhotoURL = &info.Picture
		}
		if err := config.DB.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return &user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.IsActive {
		return nil, errAccountDisabled
	}

	// Existing user: only fill what is missing
	updates := map[string]any{}
	if user.GoogleID == nil {
		updates["google_id"] = googleID
		user.GoogleID = &googleID
	}
	if user.PhotoURL == nil && info.Picture != "" {
		updates["photo_url"] = info.Picture
		user.PhotoURL = &info.Picture
	}
	if len(updates) > 0 {
		if err := config.DB.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("link google account: %w", err)
		}
	}
	return &user, nil
}

// startSession issues the JWT, sets the auth cookie and records the login.
func startSession(c *gin.Context, user *models.User, method string) (string, error) {
	token, err := utils.GenerateJWT(user.ID, user.Email, user.DisplayName, user.Role)
	if err != nil {
		return "", err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookie, token, int(utils.TokenTTL().Seconds()), "/", "", isProduction(), true)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	now := time.Now()
	if err := config.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("last_login_at", now).Error; err != nil {
		zap.L().Warn("[auth] failed to stamp last login", zap.Error(err))
	}
	user.LastLoginAt = &now

	if err := utils.LogLoginEvent(ctx, utils.LoginEvent{
		UserID:    user.ID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Method:    method,
	}); err != nil {
		zap.L().Warn("[auth] login event not recorded", zap.Error(err))
	}

	return token, nil
}

func redirectToFrontendWithError(c *gin.Context, msg string) {
	target := fmt.Sprintf("%s/auth/error?message=%s", config.GetFrontendURL(), url.QueryEscape(msg))
	c.Redirect(http.StatusTemporaryRedirect, target)
}
