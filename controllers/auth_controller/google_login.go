package auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
)

// GoogleLogin godoc
// @Summary Redirect to Google OAuth
// @Description Starts the Google OAuth flow by storing a state token in a cookie and redirecting to the consent page.
// @Tags Auth
// @Success 307 "Redirect to Google"
// @Failure 503 {object} models.ApiResponse "Google sign-in not configured"
// @Router /auth/google [get]
func GoogleLogin(c *gin.Context) {
	if config.GoogleOAuthConfig == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Google sign-in is not configured"))
		return
	}

	state := uuid.NewString()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", isProduction(), true)

	c.Redirect(http.StatusTemporaryRedirect, config.GoogleOAuthConfig.AuthCodeURL(state))
}
