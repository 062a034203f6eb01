package auth_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
)

// GoogleTokenLogin godoc
// @Summary Sign in with a Google ID token
// @Description Verifies the ID token from the Google popup and returns the user and a session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.GoogleTokenRequest true "Google ID token"
// @Success 200 {object} models.ApiResponse{data=models.AuthResponse}
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Router /auth/google/token [post]
func GoogleTokenLogin(c *gin.Context) {
	if config.OIDCVerifier == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Google sign-in is not configured"))
		return
	}

	var req models.GoogleTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "idToken is required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	idToken, err := config.OIDCVerifier.Verify(ctx, req.IDToken)
	if err != nil {
		zap.L().Warn("[auth.google.token] verification failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid Google token"))
		return
	}

	var info models.GoogleUserInfo
	if err := idToken.Claims(&info); err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid Google token claims"))
		return
	}
	if !info.EmailVerified {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Google email is not verified"))
		return
	}

	user, err := upsertGoogleUser(ctx, &info, idToken.Subject)
	if err != nil {
		if errors.Is(err, errAccountDisabled) {
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Your account has been deactivated"))
			return
		}
		zap.L().Error("[auth.google.token] upsert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Sign-in failed"))
		return
	}

	token, err := startSession(c, user, models.ProviderGoogle)
	if err != nil {
		zap.L().Error("[auth.google.token] token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Sign-in failed"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Login successful", models.AuthResponse{User: user, Token: token}))
}
