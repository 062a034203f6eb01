package review_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DeleteReview godoc
// @Summary Delete a review
// @Description Allowed for the author and for admins.
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /reviews/{id} [delete]
func DeleteReview(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid review ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	review, err := loadReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Review not found"))
			return
		}
		respondReviewError(c, "[reviews.delete]", err)
		return
	}
	if review.UserID != userID && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, models.ErrorResponse(c, "You can only delete your own reviews"))
		return
	}

	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", review.ID).Delete(&models.ReviewHelpfulVote{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Review{}, "id = ?", review.ID).Error; err != nil {
			return err
		}
		return services.RecomputeProductRating(tx, review.ProductID)
	})
	if err != nil {
		zap.L().Error("[reviews.delete] failed", zap.String("review", review.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete review"))
		return
	}

	services.DeleteImages(ctx, reviewImagePublicIDs(review))

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Review deleted successfully", nil))
}
