// internal/domain/catalog/loader.go
package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// fileProduct mirrors the on-disk catalog format. JSON files parse too since
// JSON is valid YAML.
type fileProduct struct {
	ID          int      `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Price       float64  `yaml:"price"`
	BottomPrice *float64 `yaml:"bottom_price"`
	Rating      float64  `yaml:"rating"`
	Colors      []string `yaml:"colors"`
	Image       string   `yaml:"image"`
}

// LoadFile reads and validates a catalog file
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load parses a YAML or JSON list of products
func Load(r io.Reader) (*Catalog, error) {
	var entries []fileProduct
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if err == io.EOF {
			return New(nil)
		}
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	products := make([]Product, 0, len(entries))
	for _, e := range entries {
		price := decimal.NewFromFloat(e.Price).Round(2)
		// No floor means any discount is acceptable.
		bottom := decimal.Zero
		if e.BottomPrice != nil {
			bottom = decimal.NewFromFloat(*e.BottomPrice).Round(2)
		}

		products = append(products, Product{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Category:    e.Category,
			Price:       price,
			BottomPrice: bottom,
			Rating:      e.Rating,
			Colors:      e.Colors,
			Image:       e.Image,
		})
	}

	return New(products)
}
