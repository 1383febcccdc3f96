package usecase

import (
	"math"
	"slices"
	"strings"

	"github.com/shelfview/backend/internal/domain"
)

// FilterProducts returns the products that satisfy every dimension of the
// criteria, in input order. Unset dimensions never reject a product. A rating
// of 0 counts as unset, so there is no way to ask for 0-star products.
func FilterProducts(products []domain.Product, criteria domain.Criteria) []domain.Product {
	name := strings.ToLower(criteria.Name)
	minPrice, maxPrice, hasPrice := criteria.PriceRange()

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if len(criteria.Category) > 0 && !slices.Contains(criteria.Category, p.Category) {
			continue
		}
		if len(criteria.Brand) > 0 && !slices.Contains(criteria.Brand, p.Brand) {
			continue
		}
		if hasPrice && (p.Price < minPrice || p.Price > maxPrice) {
			continue
		}
		if criteria.Rating != 0 && roundRating(p.Rating) != criteria.Rating {
			continue
		}
		result = append(result, p)
	}

	return result
}

// roundRating rounds half up, so 3.5 counts as 4 stars
func roundRating(rating float64) int {
	return int(math.Floor(rating + 0.5))
}
