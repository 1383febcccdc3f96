package domain

import "time"

// FilterSnapshot is the observable state of a filter session
type FilterSnapshot struct {
	Criteria  Criteria  `json:"criteria"`
	Products  []Product `json:"data"`
	Count     int       `json:"count"`
	Loading   bool      `json:"loading"`
	Sequence  uint64    `json:"sequence"`            // latest issued retrieval
	UpdatedAt time.Time `json:"updatedAt,omitzero"` // last applied result
}
