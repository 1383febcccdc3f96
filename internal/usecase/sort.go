package usecase

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shelfview/backend/internal/domain"
)

// SortColumn is a sortable column of the results table
type SortColumn string

const (
	SortByName     SortColumn = "name"
	SortByCategory SortColumn = "category"
	SortByBrand    SortColumn = "brand"
	SortByPrice    SortColumn = "price"
	SortByRating   SortColumn = "rating"
)

// SortOrder is ascending or descending
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Sorting describes how to order results. The zero value keeps input order.
type Sorting struct {
	Column SortColumn
	Order  SortOrder
}

// ParseSort validates raw sortBy/sortOrder values. An empty column means no sorting.
func ParseSort(column, order string) (Sorting, error) {
	sorting := Sorting{Column: SortColumn(column), Order: SortOrder(order)}
	if sorting.Order == "" {
		sorting.Order = SortAsc
	}

	switch sorting.Column {
	case "", SortByName, SortByCategory, SortByBrand, SortByPrice, SortByRating:
	default:
		return Sorting{}, fmt.Errorf("%w: unknown column %q", domain.ErrInvalidSort, column)
	}
	if sorting.Order != SortAsc && sorting.Order != SortDesc {
		return Sorting{}, fmt.Errorf("%w: unknown order %q", domain.ErrInvalidSort, order)
	}

	return sorting, nil
}

// SortProducts returns a sorted copy of products. Text columns use
// locale-aware ordering, price and rating compare numerically. Ties keep
// their input order.
func SortProducts(products []domain.Product, sorting Sorting) []domain.Product {
	sorted := slices.Clone(products)
	if sorting.Column == "" {
		return sorted
	}

	// Collators keep internal buffers, so each call gets its own.
	col := collate.New(language.English)
	text := func(get func(domain.Product) string) func(a, b domain.Product) int {
		return func(a, b domain.Product) int { return col.CompareString(get(a), get(b)) }
	}

	var compare func(a, b domain.Product) int
	switch sorting.Column {
	case SortByName:
		compare = text(func(p domain.Product) string { return p.Name })
	case SortByCategory:
		compare = text(func(p domain.Product) string { return p.Category })
	case SortByBrand:
		compare = text(func(p domain.Product) string { return p.Brand })
	case SortByPrice:
		compare = func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) }
	case SortByRating:
		compare = func(a, b domain.Product) int { return cmp.Compare(a.Rating, b.Rating) }
	default:
		return sorted
	}

	if sorting.Order == SortDesc {
		asc := compare
		compare = func(a, b domain.Product) int { return asc(b, a) }
	}

	slices.SortStableFunc(sorted, compare)
	return sorted
}
