package cart

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trendify/storefront/internal/domain"
	"github.com/trendify/storefront/internal/observability"
)

// Service is the cart engine and order workflow for storefront sessions.
// Every mutation runs through the session store's Mutate, so operations on
// one session never interleave.
type Service struct {
	catalog  domain.CatalogSource
	sessions domain.SessionStore
	now      func() time.Time
}

func NewService(catalog domain.CatalogSource, sessions domain.SessionStore) *Service {
	return &Service{
		catalog:  catalog,
		sessions: sessions,
		now:      time.Now,
	}
}

// Receipt records the discounted total at the moment an order was placed.
// There is no persisted order history; placement is a state reset.
type Receipt struct {
	Total    decimal.Decimal
	PlacedAt time.Time
}

// AddToCart increments the line for productID, creating it at quantity 1 on
// first add. The product must exist in the catalog.
func (s *Service) AddToCart(ctx context.Context, sessionID domain.SessionID, productID domain.ProductID) (domain.Cart, error) {
	if _, err := s.catalog.Get(ctx, productID); err != nil {
		return domain.Cart{}, err
	}
	return s.mutateCart(ctx, sessionID, func(c *domain.Cart) error {
		c.AddLine(productID)
		return nil
	})
}

// RemoveFromCart deletes the line for productID; absent lines are a no-op.
func (s *Service) RemoveFromCart(ctx context.Context, sessionID domain.SessionID, productID domain.ProductID) (domain.Cart, error) {
	return s.mutateCart(ctx, sessionID, func(c *domain.Cart) error {
		c.RemoveLine(productID)
		return nil
	})
}

// ChangeQuantity adjusts an existing line by delta, never below 1 and never
// removing the line.
func (s *Service) ChangeQuantity(ctx context.Context, sessionID domain.SessionID, productID domain.ProductID, delta int) (domain.Cart, error) {
	return s.mutateCart(ctx, sessionID, func(c *domain.Cart) error {
		c.ChangeQuantity(productID, delta)
		return nil
	})
}

// ToggleLike flips the liked flag for productID and reports the new value.
func (s *Service) ToggleLike(ctx context.Context, sessionID domain.SessionID, productID domain.ProductID) (bool, error) {
	var liked bool
	err := s.sessions.Mutate(sessionID, func(sess *domain.Session) error {
		sess.ToggleLike(productID)
		sess.UpdatedAt = s.now()
		liked = sess.Likes[productID]
		return nil
	})
	return liked, err
}

// ApplyCoupon applies a recognized code's discount. Unrecognized codes
// reset the discount to zero and return domain.ErrInvalidCoupon; the reset
// still takes effect.
func (s *Service) ApplyCoupon(ctx context.Context, sessionID domain.SessionID, code string) (domain.Cart, error) {
	var snapshot domain.Cart
	var couponErr error
	err := s.sessions.Mutate(sessionID, func(sess *domain.Session) error {
		couponErr = sess.Cart.ApplyCoupon(code)
		sess.UpdatedAt = s.now()
		snapshot = sess.Cart.Clone()
		return nil
	})
	if err != nil {
		return domain.Cart{}, err
	}
	if couponErr != nil {
		observability.LoggerFromContext(ctx).Warn("invalid coupon",
			"session_id", sessionID, "code", code)
	}
	return snapshot, couponErr
}

// Totals derives the current undiscounted and discounted totals, reading
// product prices from the catalog at call time.
func (s *Service) Totals(ctx context.Context, sessionID domain.SessionID) (total, discounted decimal.Decimal, err error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	price := s.priceOf(ctx)
	return sess.Cart.Total(price), sess.Cart.DiscountedTotal(price), nil
}

// PlaceOrder validates the cart is non-empty, records the discounted total
// at this moment, then clears lines, discount and coupon. An empty cart
// fails with domain.ErrEmptyCart and mutates nothing.
func (s *Service) PlaceOrder(ctx context.Context, sessionID domain.SessionID) (Receipt, error) {
	log := observability.LoggerFromContext(ctx).With("session_id", sessionID)

	var receipt Receipt
	price := s.priceOf(ctx)
	err := s.sessions.Mutate(sessionID, func(sess *domain.Session) error {
		if sess.Cart.IsEmpty() {
			return domain.ErrEmptyCart
		}
		receipt = Receipt{
			Total:    sess.Cart.DiscountedTotal(price),
			PlacedAt: s.now(),
		}
		sess.Cart.Clear()
		sess.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return Receipt{}, err
	}

	log.Info("order placed", "total", receipt.Total)
	return receipt, nil
}

// Session returns a read snapshot of the session state.
func (s *Service) Session(ctx context.Context, sessionID domain.SessionID) (*domain.Session, error) {
	return s.sessions.Get(sessionID)
}

func (s *Service) mutateCart(ctx context.Context, sessionID domain.SessionID, fn func(*domain.Cart) error) (domain.Cart, error) {
	var snapshot domain.Cart
	err := s.sessions.Mutate(sessionID, func(sess *domain.Session) error {
		if err := fn(&sess.Cart); err != nil {
			return err
		}
		sess.UpdatedAt = s.now()
		snapshot = sess.Cart.Clone()
		return nil
	})
	if err != nil {
		return domain.Cart{}, err
	}
	return snapshot, nil
}

func (s *Service) priceOf(ctx context.Context) func(domain.ProductID) (decimal.Decimal, bool) {
	return func(id domain.ProductID) (decimal.Decimal, bool) {
		p, err := s.catalog.Get(ctx, id)
		if err != nil {
			return decimal.Zero, false
		}
		return p.Price, true
	}
}
