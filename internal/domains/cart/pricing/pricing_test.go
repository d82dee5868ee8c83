package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeEmptyCart(t *testing.T) {
	q := Compute(nil, DefaultConfig())

	assert.True(t, q.ItemsPrice.IsZero())
	assert.True(t, q.TaxPrice.IsZero())
	// Empty cart still quotes the flat fee; callers reject empty carts
	// before ordering, so this is never persisted.
	assert.True(t, q.ShippingPrice.Equal(d("100")))
}

func TestComputeBreakdown(t *testing.T) {
	items := []Item{
		{Price: d("499.99"), Quantity: 2},
		{Price: d("150.00"), Quantity: 1},
	}

	q := Compute(items, DefaultConfig())

	require.True(t, q.ItemsPrice.Equal(d("1149.98")), "subtotal = %s", q.ItemsPrice)
	assert.True(t, q.TaxPrice.Equal(d("115.00")), "tax = %s", q.TaxPrice)
	assert.True(t, q.ShippingPrice.IsZero(), "shipping = %s", q.ShippingPrice)
	assert.True(t, q.TotalPrice.Equal(d("1264.98")), "total = %s", q.TotalPrice)
}

func TestComputeTaxRounding(t *testing.T) {
	// 33.33 * 0.10 = 3.333 -> rounds to 3.33
	q := Compute([]Item{{Price: d("33.33"), Quantity: 1}}, DefaultConfig())

	assert.True(t, q.TaxPrice.Equal(d("3.33")), "tax = %s", q.TaxPrice)
	assert.True(t, q.TotalPrice.Equal(d("136.66")), "total = %s", q.TotalPrice)
}

func TestComputeShippingThresholdBoundary(t *testing.T) {
	// Exactly 1000: shipping still charged
	atThreshold := Compute([]Item{{Price: d("1000"), Quantity: 1}}, DefaultConfig())
	assert.True(t, atThreshold.ShippingPrice.Equal(d("100")))

	// 1000.01: ships free
	aboveThreshold := Compute([]Item{{Price: d("1000.01"), Quantity: 1}}, DefaultConfig())
	assert.True(t, aboveThreshold.ShippingPrice.IsZero())
}

func TestComputeTotalIsExactSum(t *testing.T) {
	cases := [][]Item{
		{{Price: d("0.01"), Quantity: 1}},
		{{Price: d("10"), Quantity: 3}, {Price: d("5.55"), Quantity: 2}},
		{{Price: d("999.99"), Quantity: 1}},
		{{Price: d("250"), Quantity: 4}},
	}

	for _, items := range cases {
		q := Compute(items, DefaultConfig())
		sum := q.ItemsPrice.Add(q.TaxPrice).Add(q.ShippingPrice).Round(2)
		assert.True(t, q.TotalPrice.Equal(sum),
			"total %s != items+tax+shipping %s", q.TotalPrice, sum)
	}
}
