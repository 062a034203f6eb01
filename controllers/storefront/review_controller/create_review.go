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
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateReview godoc
// @Summary Review a product
// @Description One review per user and product. Marked as a verified purchase when the user has a delivered order containing the product.
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateReviewRequest true "Review"
// @Success 201 {object} models.ApiResponse{data=models.Review}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "Product not found"
// @Failure 409 {object} models.ApiResponse "Already reviewed"
// @Router /reviews [post]
func CreateReview(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	// Step 1: Validate payload
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "product is required"))
		return
	}

	productID, err := uuid.Parse(strings.TrimSpace(req.Product))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Comment = strings.TrimSpace(req.Comment)
	if err := services.ValidateReview(req.Rating, req.Title, req.Comment); err != nil {
		respondReviewError(c, "[reviews.create]", err)
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Product must exist
	var product models.Product
	if err := config.DB.WithContext(ctx).Where("id = ? AND is_active = ?", productID, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		respondReviewError(c, "[reviews.create]", err)
		return
	}

	review := models.Review{
		ProductID:  productID,
		UserID:     userID,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Comment,
		Images:     datatypes.JSONSlice[models.ReviewImage](req.Images),
		IsApproved: true,
	}

	// Step 3: Write review and refresh the product rating together
	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Review{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errDuplicateReview
		}

		verified, err := services.HasDeliveredPurchase(tx, userID, productID)
		if err != nil {
			return err
		}
		review.IsVerifiedPurchase = verified

		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return services.RecomputeProductRating(tx, productID)
	})
	if err != nil {
		respondReviewError(c, "[reviews.create]", err)
		return
	}

	created, err := loadReview(ctx, review.ID)
	if err != nil {
		respondReviewError(c, "[reviews.create]", err)
		return
	}

	zap.L().Info("[reviews.create] review added",
		zap.String("product", productID.String()),
		zap.Int("rating", review.Rating),
		zap.Bool("verified", review.IsVerifiedPurchase))

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Review submitted successfully", created))
}
