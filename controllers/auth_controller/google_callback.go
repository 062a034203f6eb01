package auth_controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleCallback godoc
// @Summary Google OAuth callback
// @Description Verifies the state, exchanges the code, upserts the user, sets the auth cookie and redirects to the storefront.
// @Tags Auth
// @Success 307 "Redirect to the storefront"
// @Router /auth/google/callback [get]
func GoogleCallback(c *gin.Context) {
	if config.GoogleOAuthConfig == nil {
		redirectToFrontendWithError(c, "Google sign-in is not configured")
		return
	}

	state := c.Query("state")
	savedState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != savedState {
		zap.L().Warn("[auth.google] state mismatch")
		redirectToFrontendWithError(c, "Invalid state token")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", isProduction(), true)

	code := c.Query("code")
	if code == "" {
		redirectToFrontendWithError(c, "No authorization code")
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	token, err := config.GoogleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		zap.L().Error("[auth.google] code exchange failed", zap.Error(err))
		redirectToFrontendWithError(c, "Failed to exchange token")
		return
	}

	resp, err := config.GoogleOAuthConfig.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		zap.L().Error("[auth.google] userinfo request failed", zap.Error(err))
		redirectToFrontendWithError(c, "Failed to get user info")
		return
	}
	defer resp.Body.Close()

	var info models.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		zap.L().Error("[auth.google] userinfo decode failed", zap.Error(err))
		redirectToFrontendWithError(c, "Failed to decode user info")
		return
	}

	googleID := info.Sub
	if googleID == "" {
		googleID = info.ID
	}
	if googleID == "" {
		redirectToFrontendWithError(c, "Google ID not found")
		return
	}

	user, err := upsertGoogleUser(ctx, &info, googleID)
	if err != nil {
		if errors.Is(err, errAccountDisabled) {
			redirectToFrontendWithError(c, "Your account has been deactivated")
			return
		}
		zap.L().Error("[auth.google] upsert failed", zap.Error(err))
		redirectToFrontendWithError(c, "Sign-in failed")
		return
	}

	if _, err := startSession(c, user, models.ProviderGoogle); err != nil {
		zap.L().Error("[auth.google] token failed", zap.Error(err))
		redirectToFrontendWithError(c, "Sign-in failed")
		return
	}

	zap.L().Info("[auth.google] ✅ login", zap.String("user", user.ID.String()))
	c.Redirect(http.StatusTemporaryRedirect, config.GetFrontendURL()+"/auth/callback")
}
