package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
)

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("userRole")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
			return
		}

		if role != models.RoleAdmin {
			email, _ := GetUserEmailFromContext(c)
			zap.L().Warn("[auth] non-admin attempted admin route",
				zap.String("email", email),
				zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - admin access required"))
			return
		}

		c.Next()
	}
}
