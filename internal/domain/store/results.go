// internal/domain/store/results.go
package store

import (
	"github.com/shopspring/decimal"

	"github.com/your-org/store-pilot/internal/domain/catalog"
	"github.com/your-org/store-pilot/internal/domain/negotiation"
)

// ProductsResult is returned by operations that change the visible products
type ProductsResult struct {
	Outcome
	Query     string            `json:"query,omitempty"`
	Category  string            `json:"category,omitempty"`
	SortOrder SortOrder         `json:"sortOrder,omitempty"`
	Count     int               `json:"count"`
	Products  []catalog.Product `json:"products,omitempty"`
}

// CartResult is returned by cart mutations
type CartResult struct {
	Outcome
	Product *catalog.Product `json:"product,omitempty"`
	Cart    []CartLine       `json:"cartItems"`
	Totals  Totals           `json:"totals"`
}

// CouponResult is returned by coupon mutations
type CouponResult struct {
	Outcome
	Coupon *Coupon `json:"coupon"`
	Totals Totals  `json:"totals"`
}

// NegotiatedProduct describes the product a negotiation was about
type NegotiatedProduct struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	OriginalPrice   decimal.Decimal  `json:"originalPrice"`
	DiscountedPrice *decimal.Decimal `json:"discountedPrice,omitempty"`
}

// NegotiationResult is returned by NegotiateDiscount. A refused negotiation
// is still a successful operation.
type NegotiationResult struct {
	Outcome
	Approved             bool                `json:"approved"`
	DiscountPercent      int                 `json:"discountPercent"`
	PriceIncreasePercent int                 `json:"priceIncreasePercent,omitempty"`
	Reason               string              `json:"reason,omitempty"`
	CouponCode           string              `json:"couponCode,omitempty"`
	PenaltyCouponCode    string              `json:"penaltyCouponCode,omitempty"`
	Product              *NegotiatedProduct  `json:"product,omitempty"`
	Record               *negotiation.Record `json:"record,omitempty"`
}

// NavigationResult is returned by navigation operations
type NavigationResult struct {
	Outcome
	Navigation Navigation       `json:"navigation"`
	Product    *catalog.Product `json:"product,omitempty"`
}

// RecommendationResult is returned by RecommendProducts
type RecommendationResult struct {
	Outcome
	Count    int               `json:"count"`
	Products []catalog.Product `json:"products"`
}

// LookupResult is returned by LookupProduct
type LookupResult struct {
	Outcome
	Product *catalog.Product `json:"product,omitempty"`
}
