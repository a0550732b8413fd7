// internal/domain/catalog/entity.go
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go out as JSON numbers, which is what the chat assistant expects.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a catalog entry. Catalog entries are read-only once loaded.
type Product struct {
	ID          int             `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string          `gorm:"not null;size:255" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"not null;size:100;index" json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	BottomPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"bottom_price"`
	Rating      float64         `gorm:"default:0" json:"rating"`
	Colors      []string        `gorm:"serializer:json" json:"colors"`
	Image       string          `gorm:"size:500" json:"image"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// Clone returns a copy that shares no slices with p
func (p Product) Clone() Product {
	if p.Colors != nil {
		colors := make([]string, len(p.Colors))
		copy(colors, p.Colors)
		p.Colors = colors
	}
	return p
}

// ColorsText returns the product colours joined by spaces
func (p Product) ColorsText() string {
	return strings.Join(p.Colors, " ")
}

// HasCategory reports whether the product belongs to category, ignoring case
// and surrounding whitespace.
func (p Product) HasCategory(category string) bool {
	return strings.EqualFold(strings.TrimSpace(p.Category), strings.TrimSpace(category))
}

// DiscountedPrice returns the price after applying percent off, rounded to cents.
func (p Product) DiscountedPrice(percent int) decimal.Decimal {
	factor := decimal.NewFromInt(100 - int64(percent)).Div(decimal.NewFromInt(100))
	return p.Price.Mul(factor).Round(2)
}

// MaxDiscountPercent returns the largest whole percentage that keeps the
// price at or above the bottom price. Zero or negative means no discount is
// possible.
func (p Product) MaxDiscountPercent() int {
	if !p.Price.IsPositive() {
		return 0
	}
	margin := p.Price.Sub(p.BottomPrice)
	return int(margin.Div(p.Price).Mul(decimal.NewFromInt(100)).Floor().IntPart())
}
