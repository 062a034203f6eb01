package order_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/services"
	"go.uber.org/zap"
)

// RespondError maps service errors onto HTTP statuses.
func RespondError(c *gin.Context, tag string, err error) {
	var verr *services.ValidationError
	var serr *services.StockError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, verr.Message))
	case errors.As(err, &serr):
		status := http.StatusBadRequest
		if serr.Conflict {
			status = http.StatusConflict
		}
		c.JSON(status, models.ErrorResponse(c, serr.Error()))
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
	case errors.Is(err, services.ErrNotCancellable):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Order can only be cancelled while pending or processing"))
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
	default:
		zap.L().Error(tag+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Something went wrong processing the order"))
	}
}
