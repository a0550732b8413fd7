// internal/domain/store/negotiate.go
package store

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/your-org/store-pilot/internal/domain/catalog"
	"github.com/your-org/store-pilot/internal/domain/negotiation"
)

// NegotiateDiscount haggles over a product. The product is productID when
// given, otherwise one named in the request, then the first cart line, then
// the product being viewed. An approved discount or a penalty replaces the
// active coupon and every attempt is appended to the history.
func (s *Store) NegotiateDiscount(request string, productID *int) NegotiationResult {
	if strings.TrimSpace(request) == "" {
		return NegotiationResult{Outcome: invalid("Invalid negotiation request")}
	}
	if productID != nil && *productID < 1 {
		return NegotiationResult{Outcome: invalid("Invalid product ID")}
	}

	s.mu.Lock()

	product, outcome := s.negotiationTargetLocked(request, productID)
	if !outcome.Success {
		s.mu.Unlock()
		return NegotiationResult{Outcome: outcome}
	}

	decision := s.calculator.Evaluate(request, product)

	record := negotiation.Record{
		ID:                   s.newID(),
		SessionID:            s.sessionID,
		Timestamp:            s.now().UTC(),
		Request:              request,
		ProductID:            product.ID,
		ProductName:          product.Name,
		Approved:             decision.Approved,
		DiscountPercent:      decision.DiscountPercent,
		PriceIncreasePercent: decision.PriceIncreasePercent,
		Reason:               decision.Reason,
		CouponCode:           decision.CouponCode,
		PenaltyCouponCode:    decision.PenaltyCouponCode,
	}
	s.history = append(s.history, record)

	switch {
	case decision.Approved:
		s.markGeneratedLocked(decision.CouponCode)
		s.setCouponLocked(&Coupon{Code: decision.CouponCode, DiscountPercent: decision.DiscountPercent})
	case decision.PenaltyCouponCode != "":
		s.markGeneratedLocked(decision.PenaltyCouponCode)
		s.setCouponLocked(&Coupon{Code: decision.PenaltyCouponCode, DiscountPercent: -decision.PriceIncreasePercent})
	}

	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"product_id": product.ID,
		"approved":   decision.Approved,
		"reason":     decision.Reason,
		"percent":    decision.DiscountPercent,
	}).Info("negotiation evaluated")
	s.record(record)

	result := NegotiationResult{
		Outcome:              succeeded(decision.Message()),
		Approved:             decision.Approved,
		DiscountPercent:      decision.DiscountPercent,
		PriceIncreasePercent: decision.PriceIncreasePercent,
		Reason:               decision.Reason,
		CouponCode:           decision.CouponCode,
		PenaltyCouponCode:    decision.PenaltyCouponCode,
		Product: &NegotiatedProduct{
			ID:            product.ID,
			Name:          product.Name,
			OriginalPrice: product.Price,
		},
		Record: &record,
	}
	if decision.Approved {
		discounted := product.DiscountedPrice(decision.DiscountPercent)
		result.Product.DiscountedPrice = &discounted
	}
	return result
}

// History returns the negotiation records in the order they happened
func (s *Store) History() []negotiation.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneHistory(s.history)
}

// GeneratedCoupons returns every coupon code issued by negotiations
func (s *Store) GeneratedCoupons() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.generated...)
}

func (s *Store) negotiationTargetLocked(request string, productID *int) (catalog.Product, Outcome) {
	if productID != nil {
		p, ok := s.catalog.Get(*productID)
		if !ok {
			return catalog.Product{}, notFound("Product not found")
		}
		return p, succeeded("")
	}
	if p, ok := s.engine.Lookup(request); ok {
		return p, succeeded("")
	}
	if len(s.cart) > 0 {
		return s.cart[0].Product.Clone(), succeeded("")
	}
	if s.nav.CurrentProductID != nil {
		if p, ok := s.catalog.Get(*s.nav.CurrentProductID); ok {
			return p, succeeded("")
		}
	}
	return catalog.Product{}, invalid("No product specified for negotiation")
}

func (s *Store) markGeneratedLocked(code string) {
	for _, c := range s.generated {
		if c == code {
			return
		}
	}
	s.generated = append(s.generated, code)
}

func (s *Store) record(rec negotiation.Record) {
	if s.recorder == nil {
		return
	}
	ctx, cancel := persistContext()
	defer cancel()
	if err := s.recorder.Record(ctx, rec); err != nil {
		s.logger.WithError(err).WithField("record_id", rec.ID).Warn("failed to record negotiation")
	}
}
