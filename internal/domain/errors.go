package domain

import "errors"

var (
	// ErrInvalidCriteria is returned when filter criteria are malformed
	ErrInvalidCriteria = errors.New("invalid filter criteria")

	// ErrUnknownFilterKey is returned when updating a filter key that does not exist
	ErrUnknownFilterKey = errors.New("unknown filter key")

	// ErrUnknownOptionField is returned when deriving options for an unsupported field
	ErrUnknownOptionField = errors.New("unknown option field")

	// ErrInvalidSort is returned for an unsupported sort column or order
	ErrInvalidSort = errors.New("invalid sort parameters")

	// ErrInvalidDataset is returned when the product dataset fails validation
	ErrInvalidDataset = errors.New("invalid product dataset")

	// ErrCatalogNotFound is returned when the remote catalog endpoint does not exist
	ErrCatalogNotFound = errors.New("catalog not found")

	// ErrCatalogUnavailable is returned when the remote catalog request fails
	ErrCatalogUnavailable = errors.New("catalog source unavailable")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
