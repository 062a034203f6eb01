package catalog_cache

import (
	"sync"
	"time"

	"github.com/herbsera/herbsera-backend/models"
)

const TTL = 5 * time.Minute

// ── Featured products ────────────────────────────────────────────────────────

type featuredEntry struct {
	products  []models.Product
	fetchedAt time.Time
}

var (
	featuredMu    sync.RWMutex
	featuredCache *featuredEntry
)

func GetFeatured() ([]models.Product, bool) {
	featuredMu.RLock()
	defer featuredMu.RUnlock()
	if featuredCache != nil && time.Since(featuredCache.fetchedAt) < TTL {
		return featuredCache.products, true
	}
	return nil, false
}

func SetFeatured(products []models.Product) {
	featuredMu.Lock()
	defer featuredMu.Unlock()
	featuredCache = &featuredEntry{products: products, fetchedAt: time.Now()}
}

// ── Category counts ──────────────────────────────────────────────────────────

type categoryEntry struct {
	data      []models.CategorySummary
	fetchedAt time.Time
}

var (
	categoryMu    sync.RWMutex
	categoryCache *categoryEntry
)

func GetCategories() ([]models.CategorySummary, bool) {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	if categoryCache != nil && time.Since(categoryCache.fetchedAt) < TTL {
		return categoryCache.data, true
	}
	return nil, false
}

func SetCategories(data []models.CategorySummary) {
	categoryMu.Lock()
	defer categoryMu.Unlock()
	categoryCache = &categoryEntry{data: data, fetchedAt: time.Now()}
}

// ── Invalidate everything (call on any product write or stock change) ───────

func Invalidate() {
	featuredMu.Lock()
	featuredCache = nil
	featuredMu.Unlock()

	categoryMu.Lock()
	categoryCache = nil
	categoryMu.Unlock()
}
