package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceTable(prices map[ProductID]string) func(ProductID) (decimal.Decimal, bool) {
	return func(id ProductID) (decimal.Decimal, bool) {
		s, ok := prices[id]
		if !ok {
			return decimal.Zero, false
		}
		return decimal.RequireFromString(s), true
	}
}

func TestAddLineAccumulatesQuantity(t *testing.T) {
	var c Cart

	for i := 0; i < 5; i++ {
		c.AddLine(1)
	}
	c.AddLine(2)

	require.Len(t, c.Lines, 2)
	assert.Equal(t, CartLine{ProductID: 1, Quantity: 5}, c.Lines[0])
	assert.Equal(t, CartLine{ProductID: 2, Quantity: 1}, c.Lines[1])
}

func TestChangeQuantityFloorsAtOne(t *testing.T) {
	var c Cart
	c.AddLine(1)
	c.AddLine(1)

	c.ChangeQuantity(1, -10)
	assert.Equal(t, 1, c.Lines[0].Quantity)

	c.ChangeQuantity(1, 3)
	assert.Equal(t, 4, c.Lines[0].Quantity)
}

func TestChangeQuantityNeverCreatesLines(t *testing.T) {
	var c Cart

	c.ChangeQuantity(42, 1)
	assert.Empty(t, c.Lines)
}

func TestRemoveThenChangeQuantityDoNotInteract(t *testing.T) {
	var c Cart
	c.AddLine(1)

	c.RemoveLine(1)
	c.ChangeQuantity(1, 1)

	assert.Empty(t, c.Lines, "decrement and delete are separate operations")
}

func TestRemoveAbsentLineIsNoop(t *testing.T) {
	var c Cart
	c.AddLine(1)

	c.RemoveLine(99)
	require.Len(t, c.Lines, 1)
}

func TestTotalReadsCurrentPrices(t *testing.T) {
	var c Cart
	c.AddLine(1)
	c.AddLine(1)
	c.AddLine(2)

	prices := map[ProductID]string{1: "10.50", 2: "3.25"}
	total := c.Total(priceTable(prices))
	assert.True(t, total.Equal(decimal.RequireFromString("24.25")), "got %s", total)

	// Changing a price in the source changes the derived total without
	// touching the cart.
	prices[1] = "20.00"
	total = c.Total(priceTable(prices))
	assert.True(t, total.Equal(decimal.RequireFromString("43.25")), "got %s", total)
}

func TestTotalSkipsUnknownProducts(t *testing.T) {
	var c Cart
	c.AddLine(1)
	c.AddLine(7)

	total := c.Total(priceTable(map[ProductID]string{1: "5.00"}))
	assert.True(t, total.Equal(decimal.RequireFromString("5.00")))
}

func TestApplyCoupon(t *testing.T) {
	var c Cart

	require.NoError(t, c.ApplyCoupon("SAVE10"))
	assert.Equal(t, 10, c.DiscountPercent)
	assert.Equal(t, "SAVE10", c.CouponCode)

	require.NoError(t, c.ApplyCoupon("SAVE20"))
	assert.Equal(t, 20, c.DiscountPercent)

	err := c.ApplyCoupon("anything-else")
	require.ErrorIs(t, err, ErrInvalidCoupon)
	assert.Equal(t, 0, c.DiscountPercent, "invalid coupon resets the discount")

	err = c.ApplyCoupon("")
	require.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestDiscountedTotalRoundsOnce(t *testing.T) {
	var c Cart
	c.AddLine(1)
	c.AddLine(1)
	c.AddLine(1)
	require.NoError(t, c.ApplyCoupon("SAVE10"))

	// 3 x 33.33 = 99.99; 10% off = 89.991, rounded once to 89.99.
	got := c.DiscountedTotal(priceTable(map[ProductID]string{1: "33.33"}))
	assert.Equal(t, "89.99", got.StringFixed(2))
}

func TestClearResetsEverything(t *testing.T) {
	var c Cart
	c.AddLine(1)
	require.NoError(t, c.ApplyCoupon("SAVE20"))

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.DiscountPercent)
	assert.Equal(t, "", c.CouponCode)
}

func TestToggleLikeIndependentOfCart(t *testing.T) {
	s := &Session{}

	s.ToggleLike(3)
	assert.True(t, s.Likes[3])

	s.ToggleLike(3)
	assert.False(t, s.Likes[3])

	assert.Empty(t, s.Cart.Lines)
}
