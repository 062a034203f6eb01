// ════════════════════════════════════════════════════════════
// Path: config/google_oauth.go
// Google OAuth Configuration
// ════════════════════════════════════════════════════════════

package config

import (
	"context"
	"os"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	GoogleOAuthConfig *oauth2.Config
	OIDCVerifier      *oidc.IDTokenVerifier
)

// InitGoogleOAuth initializes Google OAuth configuration. Google sign-in is
// optional: without credentials only password accounts are available.
func InitGoogleOAuth() {
	ctx := context.Background()

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")

	if clientID == "" || clientSecret == "" {
		zap.L().Warn("⚠️  GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET not set, Google sign-in disabled")
		return
	}

	if redirectURL == "" {
		redirectURL = "http://localhost:8080/api/auth/google/callback"
		zap.L().Warn("⚠️  GOOGLE_REDIRECT_URL not set, using default", zap.String("url", redirectURL))
	}

	GoogleOAuthConfig = &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	// ID token verification for the popup / One Tap flow
	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		zap.L().Fatal("❌ Failed to create OIDC provider", zap.Error(err))
	}

	OIDCVerifier = provider.Verifier(&oidc.Config{
		ClientID: clientID,
	})

	zap.L().Info("✅ Google OAuth initialized successfully")
}

// GetFrontendURL returns frontend URL from environment
func GetFrontendURL() string {
	if url := os.Getenv("FRONTEND_URL"); url != "" {
		return url
	}
	return "http://localhost:5173"
}
