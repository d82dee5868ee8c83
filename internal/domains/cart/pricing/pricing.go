package pricing

import (
	"github.com/shopspring/decimal"
)

// =====================================================
// CART PRICING
// =====================================================
// Pure derivation of order totals from a line-item list.
// Recomputed every time the line items change; the result is
// persisted exactly once, at order creation, and never after.

// Item is one cart line: unit price snapshot and quantity.
type Item struct {
	Price    decimal.Decimal
	Quantity int
}

// Quote is the computed price breakdown of a cart.
type Quote struct {
	ItemsPrice    decimal.Decimal
	TaxPrice      decimal.Decimal
	ShippingPrice decimal.Decimal
	TotalPrice    decimal.Decimal
}

// Config carries the pricing business constants.
type Config struct {
	TaxRate               decimal.Decimal // e.g. 0.10
	ShippingFlatFee       decimal.Decimal // charged at or below the threshold
	FreeShippingThreshold decimal.Decimal // strictly-greater subtotal ships free
}

// DefaultConfig returns the storefront defaults: 10% tax, flat 100
// shipping, free shipping when the subtotal exceeds 1000.
func DefaultConfig() Config {
	return Config{
		TaxRate:               decimal.RequireFromString("0.10"),
		ShippingFlatFee:       decimal.NewFromInt(100),
		FreeShippingThreshold: decimal.NewFromInt(1000),
	}
}

// Compute derives the price breakdown:
//
//	itemsPrice = sum(price * qty)
//	taxPrice   = round2(itemsPrice * taxRate)
//	shipping   = 0 if itemsPrice > threshold else flat fee
//	totalPrice = round2(itemsPrice + taxPrice + shipping)
//
// A subtotal exactly at the threshold is still charged shipping.
func Compute(items []Item, cfg Config) Quote {
	itemsPrice := decimal.Zero
	for _, it := range items {
		line := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		itemsPrice = itemsPrice.Add(line)
	}

	taxPrice := itemsPrice.Mul(cfg.TaxRate).Round(2)

	shippingPrice := cfg.ShippingFlatFee
	if itemsPrice.GreaterThan(cfg.FreeShippingThreshold) {
		shippingPrice = decimal.Zero
	}

	totalPrice := itemsPrice.Add(taxPrice).Add(shippingPrice).Round(2)

	return Quote{
		ItemsPrice:    itemsPrice,
		TaxPrice:      taxPrice,
		ShippingPrice: shippingPrice,
		TotalPrice:    totalPrice,
	}
}
