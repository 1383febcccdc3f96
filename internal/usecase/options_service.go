package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shelfview/backend/internal/domain"
)

const (
	defaultOptionsCacheTTL = time.Hour
	defaultPriceStep       = 10
)

// OptionsServiceConfig holds configuration for the options service
type OptionsServiceConfig struct {
	CacheTTL           time.Duration
	PriceStep          float64
	EnableDebugLogging bool
}

// OptionsService derives the selectable filter values from the full,
// unfiltered dataset and memoizes them in the cache.
type OptionsService struct {
	cache     domain.CacheRepository
	products  domain.ProductRepository
	dataset   string
	cacheTTL  time.Duration
	priceStep float64
	debug     bool
}

// NewOptionsService creates a new options service with dependencies
func NewOptionsService(
	cache domain.CacheRepository,
	products domain.ProductRepository,
	config OptionsServiceConfig,
) *OptionsService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = defaultOptionsCacheTTL
	}
	priceStep := config.PriceStep
	if priceStep <= 0 {
		priceStep = defaultPriceStep
	}

	return &OptionsService{
		cache:     cache,
		products:  products,
		dataset:   products.Fingerprint(),
		cacheTTL:  cacheTTL,
		priceStep: priceStep,
		debug:     config.EnableDebugLogging,
	}
}

// GetOptions returns the values and bounds for every filter widget
func (s *OptionsService) GetOptions(ctx context.Context) (*domain.FilterOptions, error) {
	categories, err := s.Values(ctx, domain.FilterCategory)
	if err != nil {
		return nil, err
	}
	brands, err := s.Values(ctx, domain.FilterBrand)
	if err != nil {
		return nil, err
	}

	return &domain.FilterOptions{
		Category: toOptions(categories),
		Brand:    toOptions(brands),
		Price: domain.PriceBounds{
			Min:  0,
			Max:  MaxPrice(s.products.All()),
			Step: s.priceStep,
		},
		Rating: domain.RatingBounds{Max: domain.MaxRating},
	}, nil
}

// Values returns the distinct values of one selectable field.
// Flow: check cache -> derive from dataset -> cache -> return
func (s *OptionsService) Values(ctx context.Context, field domain.FilterKey) ([]string, error) {
	cacheKey := s.cacheKey(field)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		if s.debug {
			log.Printf("[OPTIONS] cache hit for %s", cacheKey)
		}
		return cached, nil
	}

	values, err := DistinctValues(s.products.All(), field)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, values, s.cacheTTL); err != nil {
		// Log but don't fail if caching fails
		log.Printf("[OPTIONS] failed to cache %s: %v", cacheKey, err)
	}

	return values, nil
}

// cacheKey is scoped to the dataset so a shared cache never serves values
// derived from a different catalog.
func (s *OptionsService) cacheKey(field domain.FilterKey) string {
	return fmt.Sprintf("options:%s:%s", s.dataset, field)
}

// getFromCache retrieves a value list from cache. Caches that round-trip
// through JSON hand back []interface{} rather than []string.
func (s *OptionsService) getFromCache(ctx context.Context, key string) ([]string, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case []string:
		return v, nil
	case []interface{}:
		values := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, domain.ErrCacheMiss
			}
			values = append(values, str)
		}
		return values, nil
	default:
		return nil, domain.ErrCacheMiss
	}
}

func toOptions(values []string) []domain.Option {
	options := make([]domain.Option, len(values))
	for i, v := range values {
		options[i] = domain.Option{Value: v}
	}
	return options
}
