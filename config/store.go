package config

import (
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed store.yaml
var defaultStoreYAML []byte

type StoreCategory struct {
	Slug string `yaml:"slug" json:"slug"`
	Name string `yaml:"name" json:"name"`
}

// StoreSettings holds the shop-level knobs that drive pricing and catalog
// behavior.
type StoreSettings struct {
	Name                  string          `yaml:"name"`
	Currency              string          `yaml:"currency"`
	TaxRate               float64         `yaml:"tax_rate"`
	ShippingCost          float64         `yaml:"shipping_cost"`
	FreeShippingThreshold float64         `yaml:"free_shipping_threshold"`
	FeaturedLimit         int             `yaml:"featured_limit"`
	LowStockThreshold     int             `yaml:"low_stock_threshold"`
	CancellableStatuses   []string        `yaml:"cancellable_statuses"`
	Categories            []StoreCategory `yaml:"categories"`
}

// Store is the active settings. Initialised from the embedded defaults so
// packages and tests can read it without calling LoadStore.
var Store = mustParseStore(defaultStoreYAML)

// LoadStore reads STORE_CONFIG when set, otherwise keeps the embedded defaults.
func LoadStore() error {
	path := os.Getenv("STORE_CONFIG")
	if path == "" {
		zap.L().Info("ℹ️ STORE_CONFIG not set, using embedded store settings")
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read store config: %w", err)
	}

	settings, err := ParseStore(raw)
	if err != nil {
		return err
	}
	Store = settings
	zap.L().Info("✅ Store settings loaded", zap.String("path", path))
	return nil
}

// ParseStore decodes settings on top of the embedded defaults, so a partial
// file only overrides what it names.
func ParseStore(raw []byte) (*StoreSettings, error) {
	settings := mustParseStore(defaultStoreYAML)
	if err := yaml.Unmarshal(raw, settings); err != nil {
		return nil, fmt.Errorf("parse store config: %w", err)
	}
	if settings.TaxRate < 0 || settings.TaxRate > 1 {
		return nil, fmt.Errorf("tax_rate must be between 0 and 1, got %v", settings.TaxRate)
	}
	if settings.FeaturedLimit <= 0 {
		settings.FeaturedLimit = 8
	}
	return settings, nil
}

func mustParseStore(raw []byte) *StoreSettings {
	var s StoreSettings
	if err := yaml.Unmarshal(raw, &s); err != nil {
		panic(fmt.Sprintf("embedded store settings: %v", err))
	}
	return &s
}

// IsCancellable reports whether an order in the given status can still be
// cancelled by its owner.
func (s *StoreSettings) IsCancellable(status string) bool {
	for _, st := range s.CancellableStatuses {
		if st == status {
			return true
		}
	}
	return false
}

// HasCategory reports whether slug is a configured category.
func (s *StoreSettings) HasCategory(slug string) bool {
	for _, c := range s.Categories {
		if c.Slug == slug {
			return true
		}
	}
	return false
}
