package catalog

import (
	"context"

	"github.com/trendify/storefront/internal/domain"
)

// StaticSource serves a fixed product list. Used in tests and as a seed
// catalog when no feed is configured.
type StaticSource struct {
	products []domain.Product
	byID     map[domain.ProductID]domain.Product
}

func NewStaticSource(products []domain.Product) *StaticSource {
	byID := make(map[domain.ProductID]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &StaticSource{products: products, byID: byID}
}

func (s *StaticSource) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *StaticSource) Get(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}
