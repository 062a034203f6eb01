package review_controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/services"
	"go.uber.org/zap"
)

var errDuplicateReview = errors.New("already reviewed")

func loadReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := config.DB.WithContext(ctx).Preload("User").First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func respondReviewError(c *gin.Context, tag string, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, verr.Message))
	case errors.Is(err, errDuplicateReview):
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "You have already reviewed this product"))
	default:
		zap.L().Error(tag+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to save review"))
	}
}

func reviewImagePublicIDs(r *models.Review) []string {
	ids := make([]string, 0, len(r.Images))
	for _, img := range r.Images {
		if img.PublicID != "" {
			ids = append(ids, img.PublicID)
		}
	}
	return ids
}
