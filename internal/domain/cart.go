package domain

import "github.com/shopspring/decimal"

// CartLine is one product's quantity within a cart. Quantity is always >= 1;
// a line that should reach zero is removed instead, and only RemoveLine does
// that.
type CartLine struct {
	ProductID ProductID
	Quantity  int
}

// Cart holds the line items and discount state for one shopping session.
// At most one line exists per product id. The cart is cleared only by a
// successful order placement.
type Cart struct {
	Lines           []CartLine
	DiscountPercent int
	CouponCode      string
}

// coupons maps recognized coupon codes to their percentage discount.
var coupons = map[string]int{
	"SAVE10": 10,
	"SAVE20": 20,
}

// AddLine increments the quantity for id, creating the line at quantity 1
// on the first add. It always succeeds.
func (c *Cart) AddLine(id ProductID) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == id {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{ProductID: id, Quantity: 1})
}

// RemoveLine deletes the line for id. Removing an absent line is a no-op.
func (c *Cart) RemoveLine(id ProductID) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == id {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// ChangeQuantity adjusts the line for id by delta, flooring at 1. A negative
// delta can never remove a line; removal is RemoveLine's job, the two
// operations do not interact. Absent line is a no-op.
func (c *Cart) ChangeQuantity(id ProductID, delta int) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == id {
			q := c.Lines[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			c.Lines[i].Quantity = q
			return
		}
	}
}

// ApplyCoupon sets the discount for a recognized code. Any other code
// (including empty) resets the discount to zero and reports
// ErrInvalidCoupon.
func (c *Cart) ApplyCoupon(code string) error {
	pct, ok := coupons[code]
	if !ok {
		c.DiscountPercent = 0
		c.CouponCode = ""
		return ErrInvalidCoupon
	}
	c.DiscountPercent = pct
	c.CouponCode = code
	return nil
}

// Clear empties the cart and resets discount state. Called on successful
// order placement only.
func (c *Cart) Clear() {
	c.Lines = nil
	c.DiscountPercent = 0
	c.CouponCode = ""
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Total derives the undiscounted sum of quantity times current price.
// Prices are read through the lookup at call time, never cached on the
// line. Lines whose product is unknown to the lookup contribute nothing.
func (c *Cart) Total(price func(ProductID) (decimal.Decimal, bool)) decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		p, ok := price(l.ProductID)
		if !ok {
			continue
		}
		total = total.Add(p.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// DiscountedTotal applies the percentage reduction to the exact total and
// rounds to 2 decimal places once, at this reporting boundary.
func (c *Cart) DiscountedTotal(price func(ProductID) (decimal.Decimal, bool)) decimal.Decimal {
	total := c.Total(price)
	if c.DiscountPercent == 0 {
		return total.Round(2)
	}
	factor := decimal.NewFromInt(int64(100 - c.DiscountPercent)).
		Div(decimal.NewFromInt(100))
	return total.Mul(factor).Round(2)
}

// Clone returns an independent copy so callers can read a snapshot without
// holding the session lock.
func (c *Cart) Clone() Cart {
	out := Cart{
		DiscountPercent: c.DiscountPercent,
		CouponCode:      c.CouponCode,
	}
	if len(c.Lines) > 0 {
		out.Lines = make([]CartLine, len(c.Lines))
		copy(out.Lines, c.Lines)
	}
	return out
}
