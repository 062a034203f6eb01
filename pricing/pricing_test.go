package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDefaultRules(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		want  Breakdown
	}{
		{
			name:  "empty cart",
			lines: nil,
			want:  Breakdown{},
		},
		{
			name:  "single line",
			lines: []Line{{UnitPrice: 499, Quantity: 2}},
			want:  Breakdown{Subtotal: 998, Tax: 179.64, Total: 1177.64},
		},
		{
			name: "mixed lines round half up",
			lines: []Line{
				{UnitPrice: 349.99, Quantity: 1},
				{UnitPrice: 129.5, Quantity: 3},
			},
			// 349.99 + 388.50 = 738.49; tax 132.9282 -> 132.93
			want: Breakdown{Subtotal: 738.49, Tax: 132.93, Total: 871.42},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.lines, DefaultRules())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotalIsSubtotalTimesOnePointEighteen(t *testing.T) {
	lines := []Line{{UnitPrice: 250, Quantity: 4}, {UnitPrice: 75.25, Quantity: 2}}
	got := Compute(lines, DefaultRules())

	assert.Equal(t, 1150.5, got.Subtotal)
	assert.Equal(t, Round2(1150.5*1.18), got.Total)
}

func TestComputeShippingAndDiscount(t *testing.T) {
	rules := Rules{TaxRate: 0.18, ShippingCost: 49, FreeShippingThreshold: 500, Discount: 10}

	under := Compute([]Line{{UnitPrice: 100, Quantity: 2}}, rules)
	assert.Equal(t, 49.0, under.ShippingCost)
	assert.Equal(t, 200+36+49-10.0, under.Total)

	over := Compute([]Line{{UnitPrice: 300, Quantity: 2}}, rules)
	assert.Equal(t, 0.0, over.ShippingCost)
	assert.Equal(t, 600+108-10.0, over.Total)
}

func TestDiscountNeverExceedsSubtotal(t *testing.T) {
	got := Compute([]Line{{UnitPrice: 10, Quantity: 1}}, Rules{Discount: 50})
	assert.Equal(t, 10.0, got.Discount)
	assert.Equal(t, 0.0, got.Total)
}

func TestItemCount(t *testing.T) {
	assert.Equal(t, 0, ItemCount(nil))
	assert.Equal(t, 6, ItemCount([]Line{{Quantity: 1}, {Quantity: 5}}))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 4.3, Average([]int{5, 4, 4}))
	assert.Equal(t, 3.5, Average([]int{3, 4}))
}

func TestTaxAndLineTotal(t *testing.T) {
	assert.Equal(t, 18.0, Tax(100, 0.18))
	assert.Equal(t, 0.3, LineTotal(Line{UnitPrice: 0.1, Quantity: 3}))
}
