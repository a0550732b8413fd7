// internal/domain/store/state.go
package store

import (
	"github.com/shopspring/decimal"

	"github.com/your-org/store-pilot/internal/domain/catalog"
	"github.com/your-org/store-pilot/internal/domain/negotiation"
)

// Page is a storefront screen
type Page string

const (
	PageHome     Page = "home"
	PageProducts Page = "products"
	PageProduct  Page = "product"
	PageCart     Page = "cart"
	PageCheckout Page = "checkout"
)

// Valid reports whether p is a known page
func (p Page) Valid() bool {
	switch p {
	case PageHome, PageProducts, PageProduct, PageCart, PageCheckout:
		return true
	}
	return false
}

// SortOrder orders visible products by price. The zero value keeps the
// current order.
type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// CartLine is a product snapshot and how many of it are in the cart
type CartLine struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// LineTotal returns price times quantity
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Coupon is the active cart modifier. A negative DiscountPercent is a
// penalty surcharge.
type Coupon struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discountPercent"`
}

// IsPenalty reports whether the coupon raises the total
func (c Coupon) IsPenalty() bool {
	return c.DiscountPercent < 0
}

// Navigation is the page the shopper is looking at
type Navigation struct {
	CurrentPage      Page `json:"currentPage"`
	CurrentProductID *int `json:"currentProductId"`
}

// Totals are recomputed from the cart and coupon on every read
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Surcharge decimal.Decimal `json:"surcharge"`
	Total     decimal.Decimal `json:"total"`
	Coupon    *Coupon         `json:"coupon"`
	ItemCount int             `json:"itemCount"`
}

// Snapshot is a read-only copy of the whole store state
type Snapshot struct {
	VisibleProducts    []catalog.Product    `json:"visibleProducts"`
	ActiveCategory     string               `json:"activeCategory,omitempty"`
	ActiveQuery        string               `json:"activeQuery,omitempty"`
	SortOrder          SortOrder            `json:"sortOrder,omitempty"`
	Cart               []CartLine           `json:"cartItems"`
	Coupon             *Coupon              `json:"appliedCoupon"`
	Totals             Totals               `json:"totals"`
	Navigation         Navigation           `json:"navigation"`
	NegotiationHistory []negotiation.Record `json:"negotiationHistory"`
	GeneratedCoupons   []string             `json:"generatedCoupons"`
	RecentlyViewed     []int                `json:"recentlyViewed"`
}

func computeTotals(lines []CartLine, coupon *Coupon) Totals {
	t := Totals{
		Subtotal:  decimal.Zero,
		Discount:  decimal.Zero,
		Surcharge: decimal.Zero,
	}
	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.LineTotal())
		t.ItemCount += l.Quantity
	}
	t.Subtotal = t.Subtotal.Round(2)
	t.Total = t.Subtotal

	if coupon != nil {
		c := *coupon
		t.Coupon = &c

		pct := decimal.NewFromInt(int64(c.DiscountPercent)).Abs().Div(decimal.NewFromInt(100))
		amount := t.Subtotal.Mul(pct).Round(2)
		if c.IsPenalty() {
			t.Surcharge = amount
			t.Total = t.Subtotal.Add(amount)
		} else {
			t.Discount = amount
			t.Total = t.Subtotal.Sub(amount)
		}
	}

	return t
}
