package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductSource loads the full product dataset once at startup
type ProductSource interface {
	LoadProducts(ctx context.Context) ([]Product, error)
}

// ProductRepository gives read-only access to the loaded dataset.
// Fingerprint identifies the dataset contents and order; values derived from
// the dataset are cached under it.
type ProductRepository interface {
	All() []Product
	Len() int
	Fingerprint() string
}
