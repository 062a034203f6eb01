// Package pricing holds the money arithmetic shared by carts, orders and the
// client-side display totals. Amounts travel as float64 and are computed
// with decimals, rounded half-up to 2 places.
package pricing

import (
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the GST rate applied at checkout.
const DefaultTaxRate = 0.18

// Line is one priced cart or order line.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Breakdown is the full price of a checkout.
type Breakdown struct {
	Subtotal     float64 `json:"subtotal"`
	Tax          float64 `json:"tax"`
	ShippingCost float64 `json:"shippingCost"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
}

// Rules are the store-level inputs to a breakdown.
type Rules struct {
	TaxRate               float64
	ShippingCost          float64
	FreeShippingThreshold float64
	Discount              float64
}

// DefaultRules charges 18% tax with free shipping and no discount.
func DefaultRules() Rules {
	return Rules{TaxRate: DefaultTaxRate}
}

// Round2 rounds an amount to 2 decimal places.
func Round2(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// LineTotal is unit price times quantity, rounded.
func LineTotal(l Line) float64 {
	return lineTotal(l).Round(2).InexactFloat64()
}

// Subtotal sums the lines.
func Subtotal(lines []Line) float64 {
	return subtotal(lines).Round(2).InexactFloat64()
}

// ItemCount is the number of units across lines, which is what the cart
// badge shows.
func ItemCount(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// Tax returns round2(subtotal * rate).
func Tax(subtotal, rate float64) float64 {
	return decimal.NewFromFloat(subtotal).
		Mul(decimal.NewFromFloat(rate)).
		Round(2).
		InexactFloat64()
}

// Compute prices a set of lines under the given rules.
// total = subtotal + tax + shipping - discount, never below zero.
func Compute(lines []Line, rules Rules) Breakdown {
	sub := subtotal(lines).Round(2)
	tax := sub.Mul(decimal.NewFromFloat(rules.TaxRate)).Round(2)

	shipping := decimal.NewFromFloat(rules.ShippingCost)
	if rules.FreeShippingThreshold > 0 && sub.GreaterThanOrEqual(decimal.NewFromFloat(rules.FreeShippingThreshold)) {
		shipping = decimal.Zero
	}
	if sub.IsZero() {
		shipping = decimal.Zero
	}

	discount := decimal.NewFromFloat(rules.Discount)
	if discount.GreaterThan(sub) {
		discount = sub
	}

	total := sub.Add(tax).Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Breakdown{
		Subtotal:     sub.InexactFloat64(),
		Tax:          tax.InexactFloat64(),
		ShippingCost: shipping.Round(2).InexactFloat64(),
		Discount:     discount.Round(2).InexactFloat64(),
		Total:        total.Round(2).InexactFloat64(),
	}
}

// Average returns the mean of ratings rounded to one decimal, 0 for none.
func Average(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(r)))
	}
	return sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(1).InexactFloat64()
}

func lineTotal(l Line) decimal.Decimal {
	return decimal.NewFromFloat(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(lineTotal(l))
	}
	return sum
}
