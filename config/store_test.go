package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStoreDefaults(t *testing.T) {
	assert.Equal(t, 0.18, Store.TaxRate)
	assert.Equal(t, "INR", Store.Currency)
	assert.Equal(t, 8, Store.FeaturedLimit)
	assert.True(t, Store.HasCategory("serum"))
	assert.False(t, Store.HasCategory("shampoo"))
}

func TestParseStoreOverridesOnlyNamedKeys(t *testing.T) {
	settings, err := ParseStore([]byte("tax_rate: 0.05\nshipping_cost: 49\n"))
	require.NoError(t, err)

	assert.Equal(t, 0.05, settings.TaxRate)
	assert.Equal(t, 49.0, settings.ShippingCost)
	assert.Equal(t, "Herbsera", settings.Name)
	assert.NotEmpty(t, settings.Categories)
}

func TestParseStoreRejectsBadTaxRate(t *testing.T) {
	_, err := ParseStore([]byte("tax_rate: 1.5\n"))
	assert.Error(t, err)

	_, err = ParseStore([]byte("tax_rate: [oops"))
	assert.Error(t, err)
}

func TestIsCancellable(t *testing.T) {
	assert.True(t, Store.IsCancellable("pending"))
	assert.True(t, Store.IsCancellable("processing"))
	assert.False(t, Store.IsCancellable("shipped"))
	assert.False(t, Store.IsCancellable("delivered"))
}
