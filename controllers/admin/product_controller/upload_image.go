package product_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/services"
	"go.uber.org/zap"
)

const maxImageSize = 5 << 20

// UploadProductImage godoc
// @Summary Upload a product image
// @Description Stores the image on the media host and returns its URL and public id.
// @Tags Admin - Products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image (max 5MB)"
// @Success 201 {object} models.ApiResponse{data=services.UploadedImage}
// @Failure 400 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse "Uploads not configured"
// @Router /admin/products/upload-image [post]
func UploadProductImage(c *gin.Context) {
	if services.Media == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, services.ErrMediaDisabled.Error()))
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "image file is required"))
		return
	}
	if header.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Image must be 5MB or smaller"))
		return
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Only image files are allowed"))
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Could not read image"))
		return
	}
	defer file.Close()

	ctx, cancel := config.WithTimeout()
	defer cancel()

	uploaded, err := services.Media.UploadImage(ctx, file, "herbsera/products")
	if err != nil {
		if errors.Is(err, services.ErrMediaDisabled) {
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, err.Error()))
			return
		}
		zap.L().Error("[admin.products.upload] failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Image upload failed"))
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Image uploaded successfully", uploaded))
}
