package user_controller

import (
	"errors"
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

// AddAddress godoc
// @Summary Add a shipping address
// @Description The first address becomes the default. Setting isDefault clears the other defaults.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.AddAddressRequest true "Address"
// @Success 201 {object} models.ApiResponse{data=models.User}
// @Failure 400 {object} models.ApiResponse
// @Router /users/addresses [post]
func AddAddress(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "name, phone, addressLine1, city, state and pincode are required"))
		return
	}
	if field := blankRequiredField(requiredAddressFields(
		&req.Name, &req.Phone, &req.AddressLine1, &req.City, &req.State, &req.Pincode,
	)); field != "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, field+" cannot be blank"))
		return
	}

	address := models.Address{
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		AddressLine1: strings.TrimSpace(req.AddressLine1),
		AddressLine2: strings.TrimSpace(req.AddressLine2),
		City:         strings.TrimSpace(req.City),
		State:        strings.TrimSpace(req.State),
		Pincode:      strings.TrimSpace(req.Pincode),
		Country:      strings.TrimSpace(req.Country),
		IsDefault:    req.IsDefault,
	}
	if address.Country == "" {
		address.Country = "India"
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			address.IsDefault = true
		}
		if err := tx.Create(&address).Error; err != nil {
			return err
		}
		if address.IsDefault {
			return clearDefaults(tx, userID, address.ID)
		}
		return nil
	})
	if err != nil {
		zap.L().Error("[users.address.add] failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to add address"))
		return
	}

	user, err := loadProfile(ctx, userID)
	if err != nil {
		zap.L().Error("[users.address.add] reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch profile"))
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Address added successfully", user))
}

// UpdateAddress godoc
// @Summary Update a shipping address
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param addressId path string true "Address ID"
// @Param payload body models.UpdateAddressRequest true "Changed fields"
// @Success 200 {object} models.ApiResponse{data=models.User}
// @Failure 404 {object} models.ApiResponse
// @Router /users/addresses/{addressId} [put]
func UpdateAddress(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	addressID, err := uuid.Parse(c.Param("addressId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid address ID"))
		return
	}

	var req models.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}
	if field := blankRequiredField(requiredAddressFields(
		req.Name, req.Phone, req.AddressLine1, req.City, req.State, req.Pincode,
	)); field != "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, field+" cannot be blank"))
		return
	}

	updates := map[string]any{}
	setIf := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	setIf("name", req.Name)
	setIf("phone", req.Phone)
	setIf("address_line1", req.AddressLine1)
	setIf("address_line2", req.AddressLine2)
	setIf("city", req.City)
	setIf("state", req.State)
	setIf("pincode", req.Pincode)
	setIf("country", req.Country)

	// An address cannot be un-defaulted directly; pick another default instead.
	makeDefault := req.IsDefault != nil && *req.IsDefault
	if makeDefault {
		updates["is_default"] = true
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var address models.Address
		if err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&address).Updates(updates).Error; err != nil {
				return err
			}
		}
		if makeDefault {
			return clearDefaults(tx, userID, address.ID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Address not found"))
			return
		}
		zap.L().Error("[users.address.update] failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update address"))
		return
	}

	user, err := loadProfile(ctx, userID)
	if err != nil {
		zap.L().Error("[users.address.update] reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch profile"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Address updated successfully", user))
}

// DeleteAddress godoc
// @Summary Delete a shipping address
// @Description Deleting the default promotes the oldest remaining address.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param addressId path string true "Address ID"
// @Success 200 {object} models.ApiResponse{data=models.User}
// @Failure 404 {object} models.ApiResponse
// @Router /users/addresses/{addressId} [delete]
func DeleteAddress(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	addressID, err := uuid.Parse(c.Param("addressId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid address ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var address models.Address
		if err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
			return err
		}
		if err := tx.Delete(&address).Error; err != nil {
			return err
		}
		if !address.IsDefault {
			return nil
		}

		var next models.Address
		err := tx.Where("user_id = ?", userID).Order("created_at ASC").First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&next).Update("is_default", true).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Address not found"))
			return
		}
		zap.L().Error("[users.address.delete] failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete address"))
		return
	}

	user, err := loadProfile(ctx, userID)
	if err != nil {
		zap.L().Error("[users.address.delete] reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch profile"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Address deleted successfully", user))
}
