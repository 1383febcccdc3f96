package usecase

import (
	"slices"

	"github.com/shelfview/backend/internal/domain"
)

// sampleProducts mirrors the bundled five-record dataset
func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Wireless Headphones", Category: "Electronics", Brand: "Brand A", Price: 99.99, Rating: 4.6},
		{ID: "2", Name: "Laptop", Category: "Electronics", Brand: "Brand B", Price: 999.99, Rating: 4.2},
		{ID: "3", Name: "Coffee Maker", Category: "Home Appliances", Brand: "Brand C", Price: 49.99, Rating: 3.8},
		{ID: "4", Name: "Smartphone", Category: "Electronics", Brand: "Brand B", Price: 699.99, Rating: 4.7},
		{ID: "5", Name: "Running Shoes", Category: "Sports", Brand: "Brand D", Price: 149.99, Rating: 3.2},
	}
}

// staticRepository is an in-memory domain.ProductRepository for tests
type staticRepository struct {
	products []domain.Product
}

func newStaticRepository(products []domain.Product) *staticRepository {
	return &staticRepository{products: products}
}

func (r *staticRepository) All() []domain.Product {
	return slices.Clone(r.products)
}

func (r *staticRepository) Len() int {
	return len(r.products)
}

func (r *staticRepository) Fingerprint() string {
	return "static"
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
