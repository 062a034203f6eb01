package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalog_cache "github.com/herbsera/herbsera-backend/cache"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
)

// GetFeaturedProducts godoc
// @Summary Featured products
// @Tags Products
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /products/featured [get]
func GetFeaturedProducts(c *gin.Context) {
	if products, ok := catalog_cache.GetFeatured(); ok {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Featured products fetched successfully", products))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	products := make([]models.Product, 0)
	if err := config.DB.WithContext(ctx).
		Where("is_active = ? AND featured = ?", true, true).
		Order("created_at DESC").
		Limit(config.Store.FeaturedLimit).
		Find(&products).Error; err != nil {
		zap.L().Error("[products.featured] fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch featured products"))
		return
	}

	catalog_cache.SetFeatured(products)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Featured products fetched successfully", products))
}
