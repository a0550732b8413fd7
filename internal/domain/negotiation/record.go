// internal/domain/negotiation/record.go
package negotiation

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Record is one entry of the negotiation audit trail. Records are appended,
// never updated.
type Record struct {
	ID                   string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID            string    `gorm:"size:64;index" json:"sessionId,omitempty"`
	Timestamp            time.Time `gorm:"not null;index" json:"timestamp"`
	Request              string    `gorm:"type:text;not null" json:"request"`
	ProductID            int       `gorm:"not null;index" json:"productId"`
	ProductName          string    `gorm:"size:255" json:"productName"`
	Approved             bool      `gorm:"not null" json:"approved"`
	DiscountPercent      int       `gorm:"not null;default:0" json:"discountPercent"`
	PriceIncreasePercent int       `gorm:"not null;default:0" json:"priceIncreasePercent,omitempty"`
	Reason               string    `gorm:"size:50;not null" json:"reason"`
	CouponCode           string    `gorm:"size:50" json:"couponCode,omitempty"`
	PenaltyCouponCode    string    `gorm:"size:50" json:"penaltyCouponCode,omitempty"`
}

// TableName overrides the table name
func (Record) TableName() string {
	return "negotiation_records"
}

// Recorder ships negotiation records somewhere durable
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// MultiRecorder fans a record out to every recorder and joins their errors
type MultiRecorder []Recorder

// Record implements Recorder
func (m MultiRecorder) Record(ctx context.Context, rec Record) error {
	var errs []error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.Record(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MemoryRecorder keeps records in memory
type MemoryRecorder struct {
	mu      sync.Mutex
	records []Record
}

// Record implements Recorder
func (m *MemoryRecorder) Record(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

// Records returns a copy of everything recorded so far
func (m *MemoryRecorder) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}
