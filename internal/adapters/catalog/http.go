package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trendify/storefront/internal/domain"
	"github.com/trendify/storefront/internal/observability"
)

// HTTPSource loads the product list from a Fake-Store-style JSON feed. The
// feed is fetched once per process; a failed fetch is logged and leaves the
// catalog empty, which is a valid non-fatal state.
type HTTPSource struct {
	url        string
	limit      int
	httpClient *http.Client

	once     sync.Once
	products []domain.Product
	byID     map[domain.ProductID]domain.Product
}

func NewHTTPSource(url string, limit int) *HTTPSource {
	return &HTTPSource{
		url:   url,
		limit: limit,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type productRecord struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

func (s *HTTPSource) load(ctx context.Context) {
	s.byID = make(map[domain.ProductID]domain.Product)

	records, err := s.fetch(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("catalog fetch failed, serving empty catalog", "err", err)
		return
	}

	for _, r := range records {
		p := domain.Product{
			ID:    domain.ProductID(r.ID),
			Title: r.Title,
			Price: decimal.NewFromFloat(r.Price),
			Image: r.Image,
		}
		s.products = append(s.products, p)
		s.byID[p.ID] = p
	}
}

func (s *HTTPSource) fetch(ctx context.Context) ([]productRecord, error) {
	url := s.url
	if s.limit > 0 {
		url += "?limit=" + strconv.Itoa(s.limit)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching catalog: status %d", res.StatusCode)
	}

	var records []productRecord
	if err := json.NewDecoder(res.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return records, nil
}

func (s *HTTPSource) List(ctx context.Context) ([]domain.Product, error) {
	s.once.Do(func() { s.load(ctx) })

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *HTTPSource) Get(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	s.once.Do(func() { s.load(ctx) })

	p, ok := s.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}
