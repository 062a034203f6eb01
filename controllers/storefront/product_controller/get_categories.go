package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalog_cache "github.com/herbsera/herbsera-backend/cache"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
)

// GetCategories godoc
// @Summary Product categories with active product counts
// @Tags Products
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /products/categories [get]
func GetCategories(c *gin.Context) {
	if data, ok := catalog_cache.GetCategories(); ok {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched successfully", data))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var rows []struct {
		Category string
		Count    int64
	}
	if err := config.DB.WithContext(ctx).
		Model(&models.Product{}).
		Select("category, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("category").
		Scan(&rows).Error; err != nil {
		zap.L().Error("[products.categories] aggregate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch categories"))
		return
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Category] = r.Count
	}

	data := make([]models.CategorySummary, 0, len(config.Store.Categories))
	for _, cat := range config.Store.Categories {
		data = append(data, models.CategorySummary{Slug: cat.Slug, Name: cat.Name, Count: counts[cat.Slug]})
	}

	catalog_cache.SetCategories(data)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched successfully", data))
}
