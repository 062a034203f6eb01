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

// DeleteProduct godoc
// @Summary Delete a product
// @Description Soft delete. Past orders keep their snapshots; carts drop the product on next read.
// @Tags Admin - Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/products/{id} [delete]
func DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	res := config.DB.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		zap.L().Error("[admin.products.delete] failed", zap.String("id", id.String()), zap.Error(res.Error))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete product"))
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}

	catalog_cache.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product deleted successfully", gin.H{"id": id}))
}
