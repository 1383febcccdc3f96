package usecase

import (
	"fmt"

	"github.com/shelfview/backend/internal/domain"
)

// DistinctValues returns each distinct value of the given field once, in the
// order it first appears in products. Only category and brand are selectable.
func DistinctValues(products []domain.Product, field domain.FilterKey) ([]string, error) {
	var pick func(domain.Product) string
	switch field {
	case domain.FilterCategory:
		pick = func(p domain.Product) string { return p.Category }
	case domain.FilterBrand:
		pick = func(p domain.Product) string { return p.Brand }
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownOptionField, field)
	}

	seen := make(map[string]struct{}, len(products))
	values := make([]string, 0)
	for _, p := range products {
		v := pick(p)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	return values, nil
}

// MaxPrice returns the highest price in products, or 0 when there are none
func MaxPrice(products []domain.Product) float64 {
	highest := 0.0
	for _, p := range products {
		if p.Price > highest {
			highest = p.Price
		}
	}
	return highest
}
