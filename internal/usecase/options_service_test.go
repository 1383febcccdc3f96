package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/shelfview/backend/internal/domain"
	"github.com/shelfview/backend/internal/infrastructure/cache"
	"github.com/shelfview/backend/internal/infrastructure/catalog"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data     map[string]interface{}
	getError error
	setError error
	getCalls int
	setCalls int
	lastTTL  time.Duration
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string]interface{}),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	m.getCalls++
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalls++
	m.lastTTL = ttl
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func TestNewOptionsService_Defaults(t *testing.T) {
	service := NewOptionsService(NewMockCacheRepository(), newStaticRepository(nil), OptionsServiceConfig{})

	if service.cacheTTL != defaultOptionsCacheTTL {
		t.Errorf("cacheTTL = %v, want %v", service.cacheTTL, defaultOptionsCacheTTL)
	}
	if service.priceStep != defaultPriceStep {
		t.Errorf("priceStep = %v, want %v", service.priceStep, defaultPriceStep)
	}
}

func TestOptionsService_GetOptions(t *testing.T) {
	mockCache := NewMockCacheRepository()
	service := NewOptionsService(mockCache, newStaticRepository(sampleProducts()), OptionsServiceConfig{CacheTTL: time.Minute})

	opts, err := service.GetOptions(context.Background())
	if err != nil {
		t.Fatalf("GetOptions() error = %v", err)
	}

	wantCategories := []string{"Electronics", "Home Appliances", "Sports"}
	if len(opts.Category) != len(wantCategories) {
		t.Fatalf("Category = %v, want %v", opts.Category, wantCategories)
	}
	for i, want := range wantCategories {
		if opts.Category[i].Value != want {
			t.Errorf("Category[%d] = %q, want %q", i, opts.Category[i].Value, want)
		}
	}
	if len(opts.Brand) != 4 {
		t.Errorf("len(Brand) = %d, want 4", len(opts.Brand))
	}
	if opts.Price.Min != 0 || opts.Price.Max != 999.99 || opts.Price.Step != 10 {
		t.Errorf("Price = %+v, want {0 999.99 10}", opts.Price)
	}
	if opts.Rating.Max != domain.MaxRating {
		t.Errorf("Rating.Max = %d, want %d", opts.Rating.Max, domain.MaxRating)
	}

	if mockCache.setCalls != 2 {
		t.Errorf("cache Set calls = %d, want 2", mockCache.setCalls)
	}
	if mockCache.lastTTL != time.Minute {
		t.Errorf("cache TTL = %v, want 1m", mockCache.lastTTL)
	}
	if _, ok := mockCache.data["options:static:category"]; !ok {
		t.Errorf("expected options:static:category to be cached, have %v", mockCache.data)
	}
}

func TestOptionsService_Values(t *testing.T) {
	t.Run("returns cached string slice", func(t *testing.T) {
		mockCache := NewMockCacheRepository()
		mockCache.data["options:static:brand"] = []string{"Cached Brand"}
		service := NewOptionsService(mockCache, newStaticRepository(sampleProducts()), OptionsServiceConfig{})

		got, err := service.Values(context.Background(), domain.FilterBrand)
		if err != nil {
			t.Fatalf("Values() error = %v", err)
		}
		if len(got) != 1 || got[0] != "Cached Brand" {
			t.Errorf("Values() = %v, want [Cached Brand]", got)
		}
		if mockCache.setCalls != 0 {
			t.Errorf("cache Set calls = %d, want 0 on hit", mockCache.setCalls)
		}
	})

	t.Run("returns JSON-decoded cached values", func(t *testing.T) {
		mockCache := NewMockCacheRepository()
		mockCache.data["options:static:category"] = []interface{}{"A", "B"}
		service := NewOptionsService(mockCache, newStaticRepository(sampleProducts()), OptionsServiceConfig{})

		got, err := service.Values(context.Background(), domain.FilterCategory)
		if err != nil {
			t.Fatalf("Values() error = %v", err)
		}
		if len(got) != 2 || got[0] != "A" || got[1] != "B" {
			t.Errorf("Values() = %v, want [A B]", got)
		}
	})

	t.Run("re-derives when cached value has the wrong shape", func(t *testing.T) {
		mockCache := NewMockCacheRepository()
		mockCache.data["options:static:category"] = []interface{}{"A", 42.0}
		service := NewOptionsService(mockCache, newStaticRepository(sampleProducts()), OptionsServiceConfig{})

		got, err := service.Values(context.Background(), domain.FilterCategory)
		if err != nil {
			t.Fatalf("Values() error = %v", err)
		}
		if len(got) != 3 {
			t.Errorf("Values() = %v, want the 3 derived categories", got)
		}
	})

	t.Run("mockCache failures do not fail the request", func(t *testing.T) {
		mockCache := NewMockCacheRepository()
		mockCache.getError = domain.ErrCacheUnavailable
		mockCache.setError = domain.ErrCacheUnavailable
		service := NewOptionsService(mockCache, newStaticRepository(sampleProducts()), OptionsServiceConfig{})

		got, err := service.Values(context.Background(), domain.FilterBrand)
		if err != nil {
			t.Fatalf("Values() error = %v", err)
		}
		if len(got) != 4 {
			t.Errorf("Values() = %v, want 4 brands", got)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		service := NewOptionsService(NewMockCacheRepository(), newStaticRepository(sampleProducts()), OptionsServiceConfig{})

		_, err := service.Values(context.Background(), domain.FilterRating)
		if !errors.Is(err, domain.ErrUnknownOptionField) {
			t.Errorf("Values() error = %v, want %v", err, domain.ErrUnknownOptionField)
		}
	})
}

func TestOptionsService_SharedRedisKeepsDatasetsApart(t *testing.T) {
	server := miniredis.RunT(t)
	ctx := context.Background()

	shared, err := cache.NewRedisCache(ctx, "redis://"+server.Addr(), "shelfview:")
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}
	defer shared.Close()

	newService := func(products []domain.Product) *OptionsService {
		t.Helper()
		c, err := catalog.NewCatalog(products)
		if err != nil {
			t.Fatalf("NewCatalog() error = %v", err)
		}
		return NewOptionsService(shared, c, OptionsServiceConfig{})
	}

	electronics := newService([]domain.Product{
		{ID: "1", Name: "Cable", Category: "Electronics", Brand: "Brand A", Price: 10},
	})
	garden := newService([]domain.Product{
		{ID: "1", Name: "Rake", Category: "Garden", Brand: "Brand Z", Price: 500},
	})

	first, err := electronics.GetOptions(ctx)
	if err != nil {
		t.Fatalf("GetOptions() error = %v", err)
	}
	second, err := garden.GetOptions(ctx)
	if err != nil {
		t.Fatalf("GetOptions() error = %v", err)
	}

	if len(first.Category) != 1 || first.Category[0].Value != "Electronics" {
		t.Errorf("first Category = %v, want [Electronics]", first.Category)
	}
	if len(second.Category) != 1 || second.Category[0].Value != "Garden" {
		t.Errorf("second Category = %v, want [Garden]", second.Category)
	}
	if len(second.Brand) != 1 || second.Brand[0].Value != "Brand Z" {
		t.Errorf("second Brand = %v, want [Brand Z]", second.Brand)
	}
	if second.Price.Max != 500 {
		t.Errorf("second Price.Max = %v, want 500", second.Price.Max)
	}

	// a restart on the same dataset reuses the cached lists
	again := newService([]domain.Product{
		{ID: "1", Name: "Rake", Category: "Garden", Brand: "Brand Z", Price: 500},
	})
	if again.cacheKey(domain.FilterCategory) != garden.cacheKey(domain.FilterCategory) {
		t.Errorf("cacheKey differs for identical datasets: %s vs %s",
			again.cacheKey(domain.FilterCategory), garden.cacheKey(domain.FilterCategory))
	}
	if len(server.Keys()) != 4 {
		t.Errorf("redis keys = %v, want two fields for each of two datasets", server.Keys())
	}
}
