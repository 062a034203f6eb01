package review_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/utils"
	"go.uber.org/zap"
)

// GetProductReviews godoc
// @Summary List approved reviews for a product
// @Tags Reviews
// @Produce json
// @Param productId path string true "Product ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.ApiResponse{data=[]models.Review}
// @Failure 400 {object} models.ApiResponse
// @Router /reviews/product/{productId} [get]
func GetProductReviews(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	page, limit, offset := utils.ParsePagination(c, 10)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := config.DB.WithContext(ctx).Model(&models.Review{}).
		Where("product_id = ? AND is_approved = ?", productID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		zap.L().Error("[reviews.list] count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch reviews"))
		return
	}

	reviews := make([]models.Review, 0)
	if err := config.DB.WithContext(ctx).
		Preload("User").
		Where("product_id = ? AND is_approved = ?", productID, true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		zap.L().Error("[reviews.list] fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch reviews"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Reviews fetched successfully", reviews,
		models.NewPagination(page, limit, total)))
}
