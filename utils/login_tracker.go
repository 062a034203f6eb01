// ════════════════════════════════════════════════════════════
// Path: utils/login_tracker.go
// Track user login events
// ════════════════════════════════════════════════════════════

package utils

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"go.uber.org/zap"
)

// LoginEvent is what gets written for each successful sign-in.
type LoginEvent struct {
	UserID    uuid.UUID
	IPAddress string
	UserAgent string
	Method    string // google, password
}

const insertLoginEvent = `
		INSERT INTO login_events (
			id, user_id, logged_in_at, ip_address, user_agent,
			device_type, browser, os, method
		) VALUES ($1, $2, NOW(), $3, $4, $5, $6, $7, $8)
	`

// LogLoginEvent records a login event through the raw pool. It is a no-op
// when no pool is configured.
func LogLoginEvent(ctx context.Context, ev LoginEvent) error {
	if config.Pool == nil {
		return nil
	}

	_, err := config.Pool.Exec(ctx, insertLoginEvent,
		uuid.Must(uuid.NewV7()).String(),
		ev.UserID.String(),
		ev.IPAddress,
		ev.UserAgent,
		ParseDeviceType(ev.UserAgent),
		ParseBrowser(ev.UserAgent),
		ParseOS(ev.UserAgent),
		ev.Method,
	)
	if err != nil {
		zap.L().Error("❌ Failed to log login event", zap.Error(err))
		return err
	}

	zap.L().Debug("✅ Login event logged",
		zap.String("user_id", ev.UserID.String()),
		zap.String("ip", ev.IPAddress))
	return nil
}

// ParseDeviceType determines if the request is from mobile, tablet, or desktop
func ParseDeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)

	if strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad") {
		return "tablet"
	}
	if strings.Contains(ua, "mobile") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone") {
		return "mobile"
	}
	return "desktop"
}

// ParseBrowser extracts browser name from user agent
func ParseBrowser(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "edg"):
		return "Edge"
	case strings.Contains(ua, "opr") || strings.Contains(ua, "opera"):
		return "Opera"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "safari"):
		return "Safari"
	}
	return "Other"
}

// ParseOS extracts operating system from user agent
func ParseOS(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad") || strings.Contains(ua, "ios"):
		return "iOS"
	case strings.Contains(ua, "mac os") || strings.Contains(ua, "macintosh"):
		return "macOS"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "linux"):
		return "Linux"
	}
	return "Other"
}
