package product_controller

import (
	"context"

	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
)

// ─────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────

// sortClause maps the public sort keys to ORDER BY clauses.
func sortClause(sort string) string {
	switch sort {
	case "price_asc":
		return "price ASC, created_at DESC"
	case "price_desc":
		return "price DESC, created_at DESC"
	case "rating":
		return "rating_average DESC, rating_count DESC"
	case "name":
		return "name ASC"
	default:
		return "created_at DESC"
	}
}

// findActiveProduct looks a product up by id, or by slug when the value is
// not a UUID.
func findActiveProduct(ctx context.Context, idOrSlug string) (*models.Product, error) {
	var product models.Product
	query := config.DB.WithContext(ctx).Where("is_active = ?", true)

	if id, err := uuid.Parse(idOrSlug); err == nil {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("slug = ?", idOrSlug)
	}

	if err := query.First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
