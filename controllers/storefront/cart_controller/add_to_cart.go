package cart_controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddToCart godoc
// @Summary Add a product to the cart
// @Description Adds the product or increments its quantity. Quantity defaults to 1.
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.AddToCartRequest true "Product and quantity"
// @Success 200 {object} models.ApiResponse{data=models.Cart}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "Product not found"
// @Router /cart [post]
func AddToCart(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	// Step 1: Validate payload
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "productId is required"))
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Quantity must be at least 1"))
		return
	}
	if quantity > models.MaxLineQuantity {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, fmt.Sprintf("Quantity cannot exceed %d", models.MaxLineQuantity)))
		return
	}

	productID, err := uuid.Parse(strings.TrimSpace(req.ProductID))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Product must be purchasable
	var product models.Product
	if err := config.DB.WithContext(ctx).
		Where("id = ? AND is_active = ?", productID, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		zap.L().Error("[cart.add] load product failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to add to cart"))
		return
	}

	cart, err := findOrCreateCart(ctx, userID)
	if err != nil {
		zap.L().Error("[cart.add] cart failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to add to cart"))
		return
	}

	// Step 3: Add or increment
	var item models.CartItem
	err = config.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).
		First(&item).Error

	switch {
	case err == nil:
		newQty := item.Quantity + quantity
		if newQty > product.Stock || newQty > models.MaxLineQuantity {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, fmt.Sprintf("Only %d items in stock", product.Stock)))
			return
		}
		err = config.DB.WithContext(ctx).Model(&item).
			Updates(map[string]any{"quantity": newQty, "price": product.Price}).Error

	case errors.Is(err, gorm.ErrRecordNotFound):
		if quantity > product.Stock {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, fmt.Sprintf("Only %d items in stock", product.Stock)))
			return
		}
		err = config.DB.WithContext(ctx).Create(&models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.Price,
		}).Error
	}
	if err != nil {
		zap.L().Error("[cart.add] write failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to add to cart"))
		return
	}

	updated, err := syncedCart(ctx, userID)
	if err != nil {
		zap.L().Error("[cart.add] reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item added to cart", updated))
}
