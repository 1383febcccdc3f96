package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// FilterKey names one dimension of the filter criteria
type FilterKey string

const (
	FilterName     FilterKey = "name"
	FilterCategory FilterKey = "category"
	FilterBrand    FilterKey = "brand"
	FilterPrice    FilterKey = "price"
	FilterRating   FilterKey = "rating"
)

// FilterKeys lists every supported key in form order
var FilterKeys = []FilterKey{FilterName, FilterCategory, FilterBrand, FilterPrice, FilterRating}

// ParseFilterKey converts a raw key into a FilterKey
func ParseFilterKey(raw string) (FilterKey, error) {
	key := FilterKey(raw)
	if !slices.Contains(FilterKeys, key) {
		return "", fmt.Errorf("%w: %q", ErrUnknownFilterKey, raw)
	}
	return key, nil
}

// Criteria holds the user-selected constraints. A zero value in any field
// means "no constraint" for that dimension, so an absent JSON key and an
// empty one behave the same.
type Criteria struct {
	Name     string    `json:"name,omitempty"`
	Category []string  `json:"category,omitempty"`
	Brand    []string  `json:"brand,omitempty"`
	Price    []float64 `json:"price,omitempty"` // empty or [min, max]
	Rating   int       `json:"rating,omitempty"`
}

// Validate rejects criteria that are not well-shaped
func (c Criteria) Validate() error {
	if n := len(c.Price); n != 0 && n != 2 {
		return fmt.Errorf("%w: price must be [min, max], got %d values", ErrInvalidCriteria, n)
	}
	if c.Rating < 0 || c.Rating > MaxRating {
		return fmt.Errorf("%w: rating must be between 0 and %d, got %d", ErrInvalidCriteria, MaxRating, c.Rating)
	}
	return nil
}

// PriceRange returns the inclusive bounds when a price constraint is set
func (c Criteria) PriceRange() (lo, hi float64, ok bool) {
	if len(c.Price) == 0 {
		return 0, 0, false
	}
	if len(c.Price) != 2 {
		panic(fmt.Sprintf("criteria: price range must have 2 values, got %d", len(c.Price)))
	}
	return c.Price[0], c.Price[1], true
}

// IsEmpty reports whether no dimension is constrained
func (c Criteria) IsEmpty() bool {
	return c.Name == "" && len(c.Category) == 0 && len(c.Brand) == 0 &&
		len(c.Price) == 0 && c.Rating == 0
}

// Clone returns a deep copy
func (c Criteria) Clone() Criteria {
	return Criteria{
		Name:     c.Name,
		Category: slices.Clone(c.Category),
		Brand:    slices.Clone(c.Brand),
		Price:    slices.Clone(c.Price),
		Rating:   c.Rating,
	}
}

// Equal compares two criteria, treating nil and empty slices alike
func (c Criteria) Equal(other Criteria) bool {
	return c.Name == other.Name &&
		slices.Equal(c.Category, other.Category) &&
		slices.Equal(c.Brand, other.Brand) &&
		slices.Equal(c.Price, other.Price) &&
		c.Rating == other.Rating
}

// With returns a copy of c with one field replaced by the JSON-encoded value.
// A JSON null clears the field.
func (c Criteria) With(key FilterKey, value json.RawMessage) (Criteria, error) {
	next := c.Clone()
	unset := len(bytes.TrimSpace(value)) == 0 || bytes.Equal(bytes.TrimSpace(value), []byte("null"))

	var err error
	switch key {
	case FilterName:
		next.Name = ""
		if !unset {
			err = json.Unmarshal(value, &next.Name)
		}
	case FilterCategory:
		next.Category = nil
		if !unset {
			err = json.Unmarshal(value, &next.Category)
		}
	case FilterBrand:
		next.Brand = nil
		if !unset {
			err = json.Unmarshal(value, &next.Brand)
		}
	case FilterPrice:
		next.Price = nil
		if !unset {
			err = json.Unmarshal(value, &next.Price)
		}
	case FilterRating:
		next.Rating = 0
		if !unset {
			err = json.Unmarshal(value, &next.Rating)
		}
	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownFilterKey, key)
	}
	if err != nil {
		return c, fmt.Errorf("%w: %s: %v", ErrInvalidCriteria, key, err)
	}

	if err := next.Validate(); err != nil {
		return c, err
	}
	return next, nil
}
