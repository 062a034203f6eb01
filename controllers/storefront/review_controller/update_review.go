package review_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/services"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UpdateReview godoc
// @Summary Edit your review
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param payload body models.UpdateReviewRequest true "Changed fields"
// @Success 200 {object} models.ApiResponse{data=models.Review}
// @Failure 400 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /reviews/{id} [put]
func UpdateReview(c *gin.Context) {
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

	var req models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
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
		respondReviewError(c, "[reviews.update]", err)
		return
	}
	if review.UserID != userID {
		c.JSON(http.StatusForbidden, models.ErrorResponse(c, "You can only edit your own reviews"))
		return
	}

	// Merge, then validate the result as a whole
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = strings.TrimSpace(*req.Title)
	}
	if req.Comment != nil {
		review.Comment = strings.TrimSpace(*req.Comment)
	}
	if req.Images != nil {
		review.Images = datatypes.JSONSlice[models.ReviewImage](req.Images)
	}
	if err := services.ValidateReview(review.Rating, review.Title, review.Comment); err != nil {
		respondReviewError(c, "[reviews.update]", err)
		return
	}

	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Review{}).Where("id = ?", review.ID).Updates(map[string]any{
			"rating":  review.Rating,
			"title":   review.Title,
			"comment": review.Comment,
			"images":  review.Images,
		}).Error; err != nil {
			return err
		}
		return services.RecomputeProductRating(tx, review.ProductID)
	})
	if err != nil {
		respondReviewError(c, "[reviews.update]", err)
		return
	}

	updated, err := loadReview(ctx, review.ID)
	if err != nil {
		respondReviewError(c, "[reviews.update]", err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Review updated successfully", updated))
}
