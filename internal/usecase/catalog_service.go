package usecase

import (
	"context"
	"time"

	"github.com/shelfview/backend/internal/domain"
)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	RetrievalDelay time.Duration
}

// CatalogService answers filter queries against the loaded dataset after a
// fixed artificial delay that stands in for a network round-trip.
type CatalogService struct {
	products domain.ProductRepository
	delay    time.Duration
}

// NewCatalogService creates a new catalog service
func NewCatalogService(products domain.ProductRepository, config CatalogServiceConfig) *CatalogService {
	delay := config.RetrievalDelay
	if delay < 0 {
		delay = 0
	}

	return &CatalogService{
		products: products,
		delay:    delay,
	}
}

// Retrieve waits for the retrieval delay, then returns the products matching
// criteria in dataset order. The only error besides invalid criteria is the
// context ending during the wait.
func (s *CatalogService) Retrieve(ctx context.Context, criteria domain.Criteria) ([]domain.Product, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return FilterProducts(s.products.All(), criteria), nil
}

// Delay returns the configured retrieval delay
func (s *CatalogService) Delay() time.Duration {
	return s.delay
}
