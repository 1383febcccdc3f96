package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/shelfview/backend/internal/domain"
)

//go:embed data.json
var embeddedData []byte

// EmbeddedSource serves the dataset compiled into the binary
type EmbeddedSource struct{}

// LoadProducts decodes the bundled dataset
func (EmbeddedSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	return DecodeProducts(embeddedData)
}

// FileSource reads the dataset from a JSON file on disk
type FileSource struct {
	Path string
}

// LoadProducts reads and decodes the file
func (s FileSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return DecodeProducts(data)
}
