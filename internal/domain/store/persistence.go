// internal/domain/store/persistence.go
package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/your-org/store-pilot/internal/infrastructure/kv"
)

// Persisted keys
const (
	CartKey   = "cart"
	CouponKey = "coupon"
)

// persistedLine is the stored form of a cart line
type persistedLine struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// persistCartLocked writes the cart. Failures are logged and swallowed.
func (s *Store) persistCartLocked() {
	if s.kv == nil {
		return
	}

	lines := make([]persistedLine, 0, len(s.cart))
	for _, l := range s.cart {
		lines = append(lines, persistedLine{ProductID: l.Product.ID, Quantity: l.Quantity})
	}

	data, err := json.Marshal(lines)
	if err != nil {
		s.logger.WithError(err).Warn("failed to encode cart")
		return
	}

	ctx, cancel := persistContext()
	defer cancel()
	if err := s.kv.Set(ctx, CartKey, data); err != nil {
		s.logger.WithError(err).Warn("failed to persist cart")
	}
}

// persistCouponLocked writes the coupon, or removes the key when none is
// applied.
func (s *Store) persistCouponLocked() {
	if s.kv == nil {
		return
	}

	ctx, cancel := persistContext()
	defer cancel()

	if s.coupon == nil {
		if err := s.kv.Remove(ctx, CouponKey); err != nil {
			s.logger.WithError(err).Warn("failed to remove persisted coupon")
		}
		return
	}

	data, err := json.Marshal(s.coupon)
	if err != nil {
		s.logger.WithError(err).Warn("failed to encode coupon")
		return
	}
	if err := s.kv.Set(ctx, CouponKey, data); err != nil {
		s.logger.WithError(err).Warn("failed to persist coupon")
	}
}

// restore loads the persisted cart and coupon. Entries that no longer match
// the catalog are skipped.
func (s *Store) restore(ctx context.Context) {
	if s.kv == nil {
		return
	}

	if data, ok := s.load(ctx, CartKey); ok {
		var lines []persistedLine
		if err := json.Unmarshal(data, &lines); err != nil {
			s.logger.WithError(err).Warn("ignoring unreadable persisted cart")
		} else {
			for _, l := range lines {
				product, found := s.catalog.Get(l.ProductID)
				if !found || l.Quantity < 1 {
					s.logger.WithField("product_id", l.ProductID).Warn("skipping persisted cart line")
					continue
				}
				if idx := s.lineIndex(l.ProductID); idx >= 0 {
					s.cart[idx].Quantity += l.Quantity
					continue
				}
				s.cart = append(s.cart, CartLine{Product: product, Quantity: l.Quantity})
			}
		}
	}

	if data, ok := s.load(ctx, CouponKey); ok {
		var c Coupon
		switch err := json.Unmarshal(data, &c); {
		case err != nil:
			s.logger.WithError(err).Warn("ignoring unreadable persisted coupon")
		case c.Code == "" || c.DiscountPercent < -100 || c.DiscountPercent > 100:
			s.logger.WithField("code", c.Code).Warn("ignoring invalid persisted coupon")
		default:
			s.coupon = &c
		}
	}
}

func (s *Store) load(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.WithError(err).WithField("key", key).Warn("failed to read persisted state")
		}
		return nil, false
	}
	return data, true
}
