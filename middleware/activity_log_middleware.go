package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
)

// ════════════════════════════════════════════════════════════
// Configuration Maps
// ════════════════════════════════════════════════════════════

// pathToResourceType maps URL segments to resource types
var pathToResourceType = map[string]string{
	"products": models.ResourceTypeProduct,
	"orders":   models.ResourceTypeOrder,
	"users":    models.ResourceTypeUser,
	"reviews":  models.ResourceTypeReview,
}

// methodToActionVerb maps HTTP methods to action verbs
var methodToActionVerb = map[string]string{
	http.MethodPost:   "created",
	http.MethodPatch:  "updated",
	http.MethodPut:    "updated",
	http.MethodDelete: "deleted",
}

// ════════════════════════════════════════════════════════════
// Activity Logging Middleware
// ════════════════════════════════════════════════════════════

// ActivityLoggingMiddleware records admin writes. Must be used after
// AuthMiddleware and RequireAdmin.
func ActivityLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		verb, isWrite := methodToActionVerb[c.Request.Method]
		if !isWrite {
			c.Next()
			return
		}

		c.Next()

		adminID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		adminEmail, _ := GetUserEmailFromContext(c)

		resourceType := ResourceTypeFromPath(c.FullPath())
		if resourceType == "" {
			zap.L().Debug("[activity-logging] no resource type for path", zap.String("path", c.FullPath()))
			return
		}

		status := c.Writer.Status()
		entry := models.ActivityLog{
			AdminID:      adminID,
			AdminEmail:   adminEmail,
			Action:       verb + "_" + resourceType,
			ResourceType: resourceType,
			ResourceID:   c.Param("id"),
			Method:       c.Request.Method,
			Path:         c.Request.URL.Path,
			StatusCode:   status,
			Status:       "success",
			IPAddress:    c.ClientIP(),
			UserAgent:    c.GetHeader("User-Agent"),
		}
		if status >= 400 {
			entry.Status = "failed"
		}

		ctx, cancel := config.WithTimeout()
		defer cancel()

		if err := config.DB.WithContext(ctx).Create(&entry).Error; err != nil {
			zap.L().Error("[activity-logging] failed to write log", zap.Error(err))
			return
		}

		zap.L().Info("[activity-logging] recorded",
			zap.String("action", entry.Action),
			zap.String("admin", adminEmail),
			zap.Int("status", status))
	}
}

// ResourceTypeFromPath finds the last known resource segment of a route,
// e.g. "/api/admin/orders/:id/status" is an order.
func ResourceTypeFromPath(path string) string {
	parts := strings.Split(path, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if rt, ok := pathToResourceType[parts[i]]; ok {
			return rt
		}
	}
	return ""
}
