// internal/domain/catalog/catalog.go
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog is the immutable set of products the store sells. Callers always
// receive copies, so nothing outside this package can mutate an entry.
type Catalog struct {
	products []Product
	byID     map[int]int
}

// New validates products and builds a catalog preserving their order.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}

	for i, p := range products {
		if err := Validate(p); err != nil {
			return nil, fmt.Errorf("product at position %d: %w", i, err)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate product ID %d", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p.Clone())
	}

	return c, nil
}

// Validate checks the invariants of a single product
func Validate(p Product) error {
	if p.ID < 1 {
		return fmt.Errorf("product ID must be >= 1, got %d", p.ID)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product %d: name is required", p.ID)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("product %d: price cannot be negative", p.ID)
	}
	if p.BottomPrice.IsNegative() {
		return fmt.Errorf("product %d: bottom_price cannot be negative", p.ID)
	}
	if p.BottomPrice.GreaterThan(p.Price) {
		return fmt.Errorf("product %d: bottom_price %s exceeds price %s", p.ID, p.BottomPrice, p.Price)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("product %d: rating must be between 0 and 5", p.ID)
	}
	return nil
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns a copy of all products in catalog order
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.Clone()
	}
	return out
}

// Get returns a copy of the product with the given ID
func (c *Catalog) Get(id int) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx].Clone(), true
}

// Contains reports whether id is part of the catalog
func (c *Catalog) Contains(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Position returns the catalog order of id, used to keep sorts stable.
func (c *Catalog) Position(id int) int {
	if idx, ok := c.byID[id]; ok {
		return idx
	}
	return len(c.products)
}

// Categories returns the distinct lower-cased categories, sorted
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, p := range c.products {
		cat := strings.ToLower(strings.TrimSpace(p.Category))
		if cat == "" {
			continue
		}
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	return categories
}

