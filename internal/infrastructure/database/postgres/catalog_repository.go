// internal/infrastructure/database/postgres/catalog_repository.go
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/your-org/store-pilot/internal/domain/catalog"
)

// CatalogRepository reads the product catalog from the products table
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Load reads every product ordered by ID and validates them into a catalog
func (r *CatalogRepository) Load(ctx context.Context) (*catalog.Catalog, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	c, err := catalog.New(products)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog in database: %w", err)
	}
	return c, nil
}
