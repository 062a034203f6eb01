package product_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalog_cache "github.com/herbsera/herbsera-backend/cache"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UpdateProduct godoc
// @Summary Update a product
// @Description Full replacement edit. Ratings are kept. Images dropped from the list are removed from the media host.
// @Tags Admin - Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body models.ProductRequest true "Product"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse "SKU already in use"
// @Router /admin/products/{id} [put]
func UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Info("[admin.products.update] invalid payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "name, description, price > 0, category and stock >= 0 are required"))
		return
	}
	if msg := validateProductRequest(&req); msg != "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, msg))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var product models.Product
	if err := config.DB.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		zap.L().Error("[admin.products.update] fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update product"))
		return
	}

	if taken, err := skuTaken(ctx, req.SKU, product.ID); err != nil {
		zap.L().Error("[admin.products.update] sku check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update product"))
		return
	} else if taken {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "SKU already in use"))
		return
	}

	if req.Name != product.Name {
		slug, err := uniqueSlug(ctx, req.Name, product.ID)
		if err != nil {
			zap.L().Error("[admin.products.update] slug failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update product"))
			return
		}
		product.Slug = slug
	}

	oldImages := append([]models.ProductImage(nil), product.Images...)
	applyProductRequest(&product, &req)

	if err := config.DB.WithContext(ctx).Save(&product).Error; err != nil {
		zap.L().Error("[admin.products.update] save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update product"))
		return
	}

	catalog_cache.Invalidate()
	services.DeleteImages(ctx, removedImageIDs(oldImages, product.Images))

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product updated successfully", product))
}
