package product_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetProduct godoc
// @Summary Get a product
// @Description Looks up by id, falling back to slug when the value is not a UUID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID or slug"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /products/{id} [get]
func GetProduct(c *gin.Context) {
	respondWithProduct(c, c.Param("id"))
}

// GetProductBySlug godoc
// @Summary Get a product by slug
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /products/slug/{slug} [get]
func GetProductBySlug(c *gin.Context) {
	respondWithProduct(c, c.Param("slug"))
}

func respondWithProduct(c *gin.Context, idOrSlug string) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	product, err := findActiveProduct(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		zap.L().Error("[products.get] fetch failed", zap.String("key", idOrSlug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch product"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched successfully", product))
}
