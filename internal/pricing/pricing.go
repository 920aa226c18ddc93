// Package pricing derives order amounts from a cart subtotal.
package pricing

import "github.com/shopspring/decimal"

var (
	// FreeShippingThreshold is exclusive: a subtotal must exceed it to ship free.
	FreeShippingThreshold = decimal.NewFromInt(999)
	FlatShipping          = decimal.NewFromInt(99)
	TaxRate               = decimal.RequireFromString("0.18")
)

// Quote is the amount breakdown shown at cart and checkout.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Calculate builds a Quote for subtotal. Tax is rounded to a whole unit, half away from zero.
func Calculate(subtotal decimal.Decimal) Quote {
	shipping := FlatShipping
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate).Round(0)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

// DiscountPercent returns round((price-discountPrice)/price*100), never below zero.
func DiscountPercent(price, discountPrice decimal.Decimal) int {
	if !price.IsPositive() || discountPrice.GreaterThanOrEqual(price) {
		return 0
	}
	pct := price.Sub(discountPrice).Div(price).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}
