package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shelfview/backend/internal/domain"
)

// Record is a product as it appears in a JSON dataset. Ids may be numbers
// or strings.
type Record struct {
	ID       json.RawMessage `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Brand    string          `json:"brand"`
	Price    float64         `json:"price"`
	Rating   float64         `json:"rating"`
}

// RemoteResponse is the payload served by a remote catalog endpoint
type RemoteResponse struct {
	Products []Record `json:"products"`
	Total    int      `json:"total,omitempty"`
}

// DecodeProducts parses a top-level JSON array of records
func DecodeProducts(data []byte) ([]domain.Product, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDataset, err)
	}
	return MapToProducts(records)
}

// MapToProducts converts dataset records to domain products
func MapToProducts(records []Record) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(records))
	for i, r := range records {
		id, err := normalizeID(r.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", domain.ErrInvalidDataset, i, err)
		}
		products = append(products, domain.Product{
			ID:       id,
			Name:     r.Name,
			Category: r.Category,
			Brand:    r.Brand,
			Price:    r.Price,
			Rating:   r.Rating,
		})
	}
	return products, nil
}

// normalizeID turns a numeric or string JSON id into its string form
func normalizeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("id must be a string or number, got %s", raw)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return "", err
	}
	return n.String(), nil
}
