// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/store-pilot/internal/domain/catalog"
	"github.com/your-org/store-pilot/internal/domain/negotiation"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	logger logrus.FieldLogger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger logrus.FieldLogger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("Running database auto-migrations")

	models := []interface{}{
		&catalog.Product{},
		&negotiation.Record{},
	}

	for _, model := range models {
		m.logger.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.Info("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes for the queries the store runs
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_negotiation_records_session_time ON negotiation_records(session_id, timestamp DESC)",
		"CREATE INDEX IF NOT EXISTS idx_negotiation_records_reason ON negotiation_records(reason)",
		"CREATE INDEX IF NOT EXISTS idx_negotiation_records_product ON negotiation_records(product_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.logger.WithError(err).Warn("Failed to create index")
			failCount++
		} else {
			successCount++
		}
	}

	m.logger.Infof("Created %d indexes (%d failed)", successCount, failCount)
	return nil
}

// SeedCatalog inserts c into an empty products table. A table that already
// has rows is left alone.
func (m *Migration) SeedCatalog(ctx context.Context, c *catalog.Catalog) error {
	var count int64
	if err := m.db.WithContext(ctx).Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		m.logger.Debug("Products table already seeded")
		return nil
	}

	products := c.Products()
	if len(products) == 0 {
		return nil
	}
	if err := m.db.WithContext(ctx).Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	m.logger.Infof("Seeded %d products", len(products))
	return nil
}

// DropAllTables drops every table this service owns
func (m *Migration) DropAllTables() error {
	m.logger.Warn("Dropping all tables")

	tables := []string{"negotiation_records", "products"}
	for _, table := range tables {
		if err := m.db.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
