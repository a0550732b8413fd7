// internal/infrastructure/database/postgres/audit_repository.go
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/your-org/store-pilot/internal/domain/negotiation"
)

// AuditRepository stores negotiation records
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record inserts one negotiation record
func (r *AuditRepository) Record(ctx context.Context, rec negotiation.Record) error {
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to save negotiation record: %w", err)
	}
	return nil
}

// ListBySession returns a session's records, oldest first
func (r *AuditRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]negotiation.Record, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var records []negotiation.Record
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve negotiation records: %w", err)
	}
	return records, nil
}
