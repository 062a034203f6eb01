package product_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetProducts godoc
// @Summary List products (admin)
// @Description Includes inactive products.
// @Tags Admin - Products
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search name, slug or SKU"
// @Param category query string false "Category slug"
// @Param status query string false "active or inactive"
// @Success 200 {object} models.ApiResponse{data=[]models.Product}
// @Router /admin/products [get]
func GetProducts(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c, 20)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := config.DB.WithContext(ctx).Model(&models.Product{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := utils.LikePattern(search)
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(slug) LIKE ? ESCAPE '\' OR LOWER(sku) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern)
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}
	switch c.Query("status") {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		zap.L().Error("[admin.products.list] count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	products := make([]models.Product, 0)
	if err := query.Session(&gorm.Session{}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error; err != nil {
		zap.L().Error("[admin.products.list] fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched successfully", products,
		models.NewPagination(page, limit, total)))
}

// GetProductByID godoc
// @Summary Get a product (admin)
// @Tags Admin - Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 404 {object} models.ApiResponse
// @Router /admin/products/{id} [get]
func GetProductByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
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
		zap.L().Error("[admin.products.get] fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch product"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched successfully", product))
}
