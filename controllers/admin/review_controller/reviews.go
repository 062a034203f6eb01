package review_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	storefront "github.com/herbsera/herbsera-backend/controllers/storefront/review_controller"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetReviews godoc
// @Summary List all reviews (admin)
// @Tags Admin - Reviews
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param productId query string false "Filter by product"
// @Param rating query int false "Filter by rating"
// @Success 200 {object} models.ApiResponse{data=[]models.Review}
// @Router /admin/reviews [get]
func GetReviews(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c, 20)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := config.DB.WithContext(ctx).Model(&models.Review{})
	if raw := c.Query("productId"); raw != "" {
		productID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
			return
		}
		query = query.Where("product_id = ?", productID)
	}
	if rating, err := strconv.Atoi(c.Query("rating")); err == nil && rating >= 1 && rating <= 5 {
		query = query.Where("rating = ?", rating)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		zap.L().Error("[admin.reviews.list] count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch reviews"))
		return
	}

	reviews := make([]models.Review, 0)
	if err := query.Session(&gorm.Session{}).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		zap.L().Error("[admin.reviews.list] fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch reviews"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Reviews fetched successfully", reviews,
		models.NewPagination(page, limit, total)))
}

// DeleteReview godoc
// @Summary Delete a review (admin)
// @Tags Admin - Reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/reviews/{id} [delete]
func DeleteReview(c *gin.Context) {
	storefront.DeleteReview(c)
}
