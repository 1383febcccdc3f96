package domain

import "fmt"

// MaxRating is the highest star rating a product can carry
const MaxRating = 5

// Product is one immutable catalog record
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"` // 0-5, may be fractional
}

// Validate checks a single record against the dataset shape
func (p Product) Validate() error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: product without id", ErrInvalidDataset)
	case p.Name == "", p.Category == "", p.Brand == "":
		return fmt.Errorf("%w: product %s has empty name, category or brand", ErrInvalidDataset, p.ID)
	case p.Price < 0:
		return fmt.Errorf("%w: product %s has negative price %v", ErrInvalidDataset, p.ID, p.Price)
	case p.Rating < 0 || p.Rating > MaxRating:
		return fmt.Errorf("%w: product %s has rating %v outside 0-%d", ErrInvalidDataset, p.ID, p.Rating, MaxRating)
	}
	return nil
}

// Option is a single selectable value for a multi-select filter
type Option struct {
	Value string `json:"value"`
}

// PriceBounds describes the range widget for the price filter
type PriceBounds struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// RatingBounds describes the star widget for the rating filter
type RatingBounds struct {
	Max int `json:"max"`
}

// FilterOptions holds everything a client needs to populate its filter form
type FilterOptions struct {
	Category []Option     `json:"category"`
	Brand    []Option     `json:"brand"`
	Price    PriceBounds  `json:"price"`
	Rating   RatingBounds `json:"rating"`
}
