package review_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarkHelpful godoc
// @Summary Mark a review as helpful
// @Description Counted once per user; repeat votes return the review unchanged.
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} models.ApiResponse{data=models.Review}
// @Failure 404 {object} models.ApiResponse
// @Router /reviews/{id}/helpful [post]
func MarkHelpful(c *gin.Context) {
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

	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Review{}).Where("id = ?", reviewID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return gorm.ErrRecordNotFound
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.ReviewHelpfulVote{ReviewID: reviewID, UserID: userID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Review{}).
			Where("id = ?", reviewID).
			UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1")).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Review not found"))
			return
		}
		zap.L().Error("[reviews.helpful] failed", zap.String("review", reviewID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to record vote"))
		return
	}

	review, err := loadReview(ctx, reviewID)
	if err != nil {
		respondReviewError(c, "[reviews.helpful]", err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Thanks for your feedback", review))
}
