// internal/domain/store/cart.go
package store

import (
	"fmt"
	"strings"

	"github.com/your-org/store-pilot/internal/domain/catalog"
)

// AddToCart adds one unit of a catalog product, merging with an existing line
func (s *Store) AddToCart(productID int) CartResult {
	if productID < 1 {
		return CartResult{Outcome: invalid("Invalid product ID")}
	}
	product, ok := s.catalog.Get(productID)
	if !ok {
		return CartResult{Outcome: notFound("Product not found")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.lineIndex(productID); idx >= 0 {
		s.cart[idx].Quantity++
	} else {
		s.cart = append(s.cart, CartLine{Product: product, Quantity: 1})
	}
	s.persistCartLocked()

	return s.cartResultLocked(fmt.Sprintf("Added %s to cart", product.Name), &product)
}

// RemoveFromCart drops the whole line for productID
func (s *Store) RemoveFromCart(productID int) CartResult {
	if productID < 1 {
		return CartResult{Outcome: invalid("Invalid product ID")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.lineIndex(productID)
	if idx < 0 {
		return CartResult{Outcome: notFound("Product not in cart")}
	}
	product := s.cart[idx].Product
	s.cart = append(s.cart[:idx], s.cart[idx+1:]...)
	s.persistCartLocked()

	return s.cartResultLocked(fmt.Sprintf("Removed %s from cart", product.Name), &product)
}

// SetQuantity changes the quantity of a cart line. Zero removes the line.
func (s *Store) SetQuantity(productID, quantity int) CartResult {
	if productID < 1 {
		return CartResult{Outcome: invalid("Invalid product ID")}
	}
	if quantity < 0 {
		return CartResult{Outcome: invalid("Invalid quantity. Must be zero or more")}
	}
	if quantity == 0 {
		return s.RemoveFromCart(productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.lineIndex(productID)
	if idx < 0 {
		return CartResult{Outcome: notFound("Product not in cart")}
	}
	s.cart[idx].Quantity = quantity
	product := s.cart[idx].Product
	s.persistCartLocked()

	return s.cartResultLocked(fmt.Sprintf("Updated %s quantity to %d", product.Name, quantity), &product)
}

// ClearCart empties the cart. The coupon stays applied.
func (s *Store) ClearCart() CartResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = nil
	s.persistCartLocked()

	return s.cartResultLocked("Cart cleared", nil)
}

// Cart returns a copy of the cart lines
func (s *Store) Cart() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCart(s.cart)
}

// Totals recomputes subtotal and total from the cart and coupon
func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return computeTotals(s.cart, s.coupon)
}

// ApplyCoupon replaces the active coupon. Only discounts between 0 and 100
// percent can be applied directly; penalties come from negotiations.
func (s *Store) ApplyCoupon(code string, discountPercent int) CouponResult {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return CouponResult{Outcome: invalid("Invalid coupon code")}
	}
	if discountPercent < 0 || discountPercent > 100 {
		return CouponResult{Outcome: invalid("Invalid discount percentage. Must be between 0 and 100")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.setCouponLocked(&Coupon{Code: code, DiscountPercent: discountPercent})

	return CouponResult{
		Outcome: succeeded(fmt.Sprintf("Coupon %s applied: %d%% off", code, discountPercent)),
		Coupon:  cloneCoupon(s.coupon),
		Totals:  computeTotals(s.cart, s.coupon),
	}
}

// RemoveCoupon clears the active coupon or penalty
func (s *Store) RemoveCoupon() CouponResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	message := "No coupon was applied"
	if s.coupon != nil {
		message = fmt.Sprintf("Coupon %s removed", s.coupon.Code)
	}
	s.setCouponLocked(nil)

	return CouponResult{
		Outcome: succeeded(message),
		Totals:  computeTotals(s.cart, s.coupon),
	}
}

func (s *Store) setCouponLocked(c *Coupon) {
	s.coupon = c
	s.persistCouponLocked()
}

func (s *Store) lineIndex(productID int) int {
	for i, l := range s.cart {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) cartResultLocked(message string, product *catalog.Product) CartResult {
	return CartResult{
		Outcome: succeeded(message),
		Product: product,
		Cart:    cloneCart(s.cart),
		Totals:  computeTotals(s.cart, s.coupon),
	}
}
