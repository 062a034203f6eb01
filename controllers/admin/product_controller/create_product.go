package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalog_cache "github.com/herbsera/herbsera-backend/cache"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
)

// CreateProduct godoc
// @Summary Create a product
// @Description Image URLs come from the upload-image endpoint. isActive defaults to true.
// @Tags Admin - Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body models.ProductRequest true "Product"
// @Success 201 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse "SKU already in use"
// @Router /admin/products [post]
func CreateProduct(c *gin.Context) {
	// Step 1: Parse and validate
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Info("[admin.products.create] invalid payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "name, description, price > 0, category and stock >= 0 are required"))
		return
	}
	if msg := validateProductRequest(&req); msg != "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, msg))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Uniqueness
	if taken, err := skuTaken(ctx, req.SKU, uuid.Nil); err != nil {
		zap.L().Error("[admin.products.create] sku check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create product"))
		return
	} else if taken {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "SKU already in use"))
		return
	}

	slug, err := uniqueSlug(ctx, req.Name, uuid.Nil)
	if err != nil {
		zap.L().Error("[admin.products.create] slug failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create product"))
		return
	}

	// Step 3: Save
	product := models.Product{Slug: slug, IsActive: true}
	applyProductRequest(&product, &req)

	if err := config.DB.WithContext(ctx).Create(&product).Error; err != nil {
		zap.L().Error("[admin.products.create] insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create product"))
		return
	}

	catalog_cache.Invalidate()
	zap.L().Info("[admin.products.create] ✅ created", zap.String("id", product.ID.String()), zap.String("slug", product.Slug))

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Product created successfully", product))
}
