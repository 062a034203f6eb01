package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const AuthCookie = "auth_token"

var errNoToken = errors.New("no token")

// tokenFromRequest reads the auth cookie first, then a Bearer header.
func tokenFromRequest(c *gin.Context) (string, error) {
	if cookieToken, err := c.Cookie(AuthCookie); err == nil && cookieToken != "" {
		return cookieToken, nil
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errNoToken
	}
	return utils.ExtractTokenFromHeader(authHeader)
}

// AuthMiddleware validates the JWT and loads the account behind it.
// Deactivated accounts are rejected with 403.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := tokenFromRequest(c)
		if err != nil {
			msg := "Invalid authorization header format"
			if errors.Is(err, errNoToken) {
				msg = "Authorization header required"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, msg))
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired token"))
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired token"))
			return
		}

		ctx, cancel := config.WithTimeout()
		defer cancel()

		var user models.User
		if err := config.DB.WithContext(ctx).
			Select("id", "email", "display_name", "role", "is_active").
			Where("id = ?", userID).
			First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Account not found"))
				return
			}
			zap.L().Error("[auth] failed to load user", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
			return
		}

		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse(c, "Account is deactivated"))
			return
		}

		// Role comes from the database so promotions and demotions apply
		// without re-login.
		c.Set("userID", user.ID)
		c.Set("userEmail", user.Email)
		c.Set("userName", user.DisplayName)
		c.Set("userRole", user.Role)

		c.Next()
	}
}

// GetUserIDFromContext returns the authenticated user's id.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get("userEmail")
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}

// IsAdmin reports whether the authenticated user has the admin role.
func IsAdmin(c *gin.Context) bool {
	return c.GetString("userRole") == models.RoleAdmin
}
