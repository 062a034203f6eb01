package catalog_cache

import (
	"testing"

	"github.com/herbsera/herbsera-backend/models"
	"github.com/stretchr/testify/assert"
)

func TestFeaturedRoundTripAndInvalidate(t *testing.T) {
	Invalidate()

	_, ok := GetFeatured()
	assert.False(t, ok)

	SetFeatured([]models.Product{{Name: "Rose Toner"}})
	got, ok := GetFeatured()
	assert.True(t, ok)
	assert.Len(t, got, 1)

	SetCategories([]models.CategorySummary{{Slug: "serum", Count: 3}})
	_, ok = GetCategories()
	assert.True(t, ok)

	Invalidate()
	_, ok = GetFeatured()
	assert.False(t, ok)
	_, ok = GetCategories()
	assert.False(t, ok)
}
