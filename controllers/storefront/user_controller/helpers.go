package user_controller

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"gorm.io/gorm"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-\s]{7,20}$`)

// loadProfile returns the user with addresses, oldest first.
func loadProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := config.DB.WithContext(ctx).
		Preload("Addresses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	if user.Addresses == nil {
		user.Addresses = []models.Address{}
	}
	return &user, nil
}

// clearDefaults unsets the default flag on every other address of the user.
func clearDefaults(tx *gorm.DB, userID, keep uuid.UUID) error {
	return tx.Model(&models.Address{}).
		Where("user_id = ? AND id <> ?", userID, keep).
		Update("is_default", false).Error
}

// blankRequiredField names the first required address column that is set
// but empty after trimming. Nil values are skipped so partial updates pass.
func blankRequiredField(fields []addressField) string {
	for _, f := range fields {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return f.name
		}
	}
	return ""
}

type addressField struct {
	name  string
	value *string
}

func requiredAddressFields(name, phone, line1, city, state, pincode *string) []addressField {
	return []addressField{
		{"name", name},
		{"phone", phone},
		{"addressLine1", line1},
		{"city", city},
		{"state", state},
		{"pincode", pincode},
	}
}
