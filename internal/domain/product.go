package domain

import "github.com/shopspring/decimal"

// Product is a catalog record. Immutable once loaded; owned by the
// catalog source, never by a session.
type Product struct {
	ID    ProductID
	Title string
	Price decimal.Decimal
	Image string
}
