package cart_controller

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ─── Helpers ────────────────────────────────────────────────

// findOrCreateCart returns the user's cart, creating an empty one on first use.
func findOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := config.DB.WithContext(ctx).
		Where(models.Cart{UserID: userID}).
		FirstOrCreate(&cart).Error; err != nil {
		return nil, fmt.Errorf("find or create cart: %w", err)
	}
	return &cart, nil
}

// syncedCart loads the cart with its items, drops lines whose product is gone
// or inactive, and re-prices the rest from the catalog.
func syncedCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := findOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := config.DB.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cart.ID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load cart items: %w", err)
	}

	kept := make([]models.CartItem, 0, len(items))
	for _, it := range items {
		if it.Product == nil || !it.Product.IsActive {
			if err := config.DB.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", it.ID).Error; err != nil {
				return nil, fmt.Errorf("drop stale item: %w", err)
			}
			zap.L().Info("[cart.sync] dropped unavailable product",
				zap.String("cart", cart.ID.String()),
				zap.String("product", it.ProductID.String()))
			continue
		}
		if it.Price != it.Product.Price {
			if err := config.DB.WithContext(ctx).Model(&models.CartItem{}).
				Where("id = ?", it.ID).
				Update("price", it.Product.Price).Error; err != nil {
				return nil, fmt.Errorf("reprice item: %w", err)
			}
			it.Price = it.Product.Price
		}
		kept = append(kept, it)
	}

	cart.Items = kept
	cart.Recalculate()
	return cart, nil
}

func findCartItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := config.DB.WithContext(ctx).
		Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}
