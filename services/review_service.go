package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/pricing"
	"gorm.io/gorm"
)

// ValidateReview checks the user-editable review fields.
func ValidateReview(rating int, title, comment string) error {
	if rating < 1 || rating > 5 {
		return invalid("Rating must be between 1 and 5")
	}
	if strings.TrimSpace(comment) == "" {
		return invalid("Comment is required")
	}
	if utf8.RuneCountInString(title) > models.MaxReviewTitle {
		return invalid("Title cannot exceed %d characters", models.MaxReviewTitle)
	}
	if utf8.RuneCountInString(comment) > models.MaxReviewComment {
		return invalid("Comment cannot exceed %d characters", models.MaxReviewComment)
	}
	return nil
}

// HasDeliveredPurchase reports whether the user has a delivered order that
// contains the product.
func HasDeliveredPurchase(db *gorm.DB, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.product_id = ?",
			userID, models.OrderStatusDelivered, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check purchase: %w", err)
	}
	return count > 0, nil
}

// RecomputeProductRating refreshes the product's rating summary from its
// approved reviews.
func RecomputeProductRating(db *gorm.DB, productID uuid.UUID) error {
	var ratings []int
	if err := db.Model(&models.Review{}).
		Where("product_id = ? AND is_approved = ?", productID, true).
		Pluck("rating", &ratings).Error; err != nil {
		return fmt.Errorf("load ratings: %w", err)
	}

	return db.Unscoped().Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumns(map[string]any{
			"rating_average": pricing.Average(ratings),
			"rating_count":   len(ratings),
		}).Error
}
