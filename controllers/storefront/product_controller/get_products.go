package product_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetProducts godoc
// @Summary List storefront products
// @Description Active products with filtering, search, sorting and pagination
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Param category query string false "Category slug"
// @Param featured query bool false "Only featured products"
// @Param search query string false "Search name and description"
// @Param sort query string false "Sort order" Enums(newest, price_asc, price_desc, rating, name)
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /products [get]
func GetProducts(c *gin.Context) {
	// Step 1: Parse query params
	page, limit, offset := utils.ParsePagination(c, 12)

	minPrice, ok := utils.QueryFloat(c, "minPrice")
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "minPrice must be a non-negative number"))
		return
	}
	maxPrice, ok := utils.QueryFloat(c, "maxPrice")
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "maxPrice must be a non-negative number"))
		return
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "minPrice cannot exceed maxPrice"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Build filters
	query := config.DB.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}
	if featured := utils.QueryBool(c, "featured"); featured != nil {
		query = query.Where("featured = ?", *featured)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := utils.LikePattern(search)
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if minPrice != nil {
		query = query.Where("price >= ?", *minPrice)
	}
	if maxPrice != nil {
		query = query.Where("price <= ?", *maxPrice)
	}

	// Step 3: Count and fetch
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		zap.L().Error("[products.list] count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count products"))
		return
	}

	products := make([]models.Product, 0)
	if err := query.Session(&gorm.Session{}).
		Order(sortClause(c.Query("sort"))).
		Limit(limit).
		Offset(offset).
		Find(&products).Error; err != nil {
		zap.L().Error("[products.list] fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched successfully", products,
		models.NewPagination(page, limit, total)))
}
