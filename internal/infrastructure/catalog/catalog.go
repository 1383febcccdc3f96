package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/shelfview/backend/internal/domain"
)

// Catalog is the immutable, validated product dataset
type Catalog struct {
	products    []domain.Product
	fingerprint string
}

// NewCatalog validates products and wraps them in a read-only catalog
func NewCatalog(products []domain.Product) (*Catalog, error) {
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %s", domain.ErrInvalidDataset, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return &Catalog{
		products:    slices.Clone(products),
		fingerprint: Fingerprint(products),
	}, nil
}

// Fingerprint hashes the records in dataset order. Changing, adding or
// reordering any record changes it.
func Fingerprint(products []domain.Product) string {
	h := xxhash.New()
	enc := json.NewEncoder(h)
	for _, p := range products {
		// records decoded from JSON always re-encode
		_ = enc.Encode(p)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// Load reads the dataset from source once and validates it
func Load(ctx context.Context, source domain.ProductSource) (*Catalog, error) {
	products, err := source.LoadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	c, err := NewCatalog(products)
	if err != nil {
		return nil, err
	}

	log.Printf("[CATALOG] Loaded %d products (fingerprint %s)", c.Len(), c.Fingerprint())
	return c, nil
}

// All returns a copy of every product in dataset order
func (c *Catalog) All() []domain.Product {
	return slices.Clone(c.products)
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}

// Fingerprint identifies the loaded dataset
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}
