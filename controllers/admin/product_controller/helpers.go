package product_controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/utils"
	"gorm.io/datatypes"
)

// ─── Helpers ────────────────────────────────────────────────

// validateProductRequest checks what binding tags cannot express.
func validateProductRequest(req *models.ProductRequest) string {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.ToLower(strings.TrimSpace(req.Category))

	if req.Name == "" {
		return "Product name is required"
	}
	if !config.Store.HasCategory(req.Category) {
		return fmt.Sprintf("Unknown category: %s", req.Category)
	}
	if req.ComparePrice != nil && *req.ComparePrice < req.Price {
		return "comparePrice cannot be lower than price"
	}
	if req.SKU != nil {
		sku := strings.TrimSpace(*req.SKU)
		if sku == "" {
			req.SKU = nil
		} else {
			req.SKU = &sku
		}
	}
	return ""
}

// applyProductRequest copies the payload onto p. The slug is left to the caller.
func applyProductRequest(p *models.Product, req *models.ProductRequest) {
	p.Name = req.Name
	p.Description = req.Description
	p.Benefit = req.Benefit
	p.Price = req.Price
	p.ComparePrice = req.ComparePrice
	p.Images = datatypes.JSONSlice[models.ProductImage](req.Images)
	p.Category = req.Category
	p.Stock = *req.Stock
	p.SKU = req.SKU
	p.Featured = req.Featured
	p.Ingredients = datatypes.JSONSlice[models.Ingredient](req.Ingredients)
	p.Benefits = datatypes.JSONSlice[string](req.Benefits)
	p.Tags = datatypes.JSONSlice[string](req.Tags)
	p.Usage = req.Usage
	if req.Weight != nil {
		p.Weight = *req.Weight
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
}

// uniqueSlug derives a slug from name, suffixing -2, -3... until no other
// product (deleted ones included) holds it.
func uniqueSlug(ctx context.Context, name string, exclude uuid.UUID) (string, error) {
	base := utils.Slugify(name)
	slug := base
	for n := 2; ; n++ {
		var count int64
		if err := config.DB.WithContext(ctx).Unscoped().Model(&models.Product{}).
			Where("slug = ? AND id <> ?", slug, exclude).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

func skuTaken(ctx context.Context, sku *string, exclude uuid.UUID) (bool, error) {
	if sku == nil {
		return false, nil
	}
	var count int64
	err := config.DB.WithContext(ctx).Unscoped().Model(&models.Product{}).
		Where("sku = ? AND id <> ?", *sku, exclude).
		Count(&count).Error
	return count > 0, err
}

func removedImageIDs(before, after []models.ProductImage) []string {
	keep := make(map[string]bool, len(after))
	for _, img := range after {
		keep[img.PublicID] = true
	}
	var ids []string
	for _, img := range before {
		if img.PublicID != "" && !keep[img.PublicID] {
			ids = append(ids, img.PublicID)
		}
	}
	return ids
}
