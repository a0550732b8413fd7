// internal/domain/negotiation/calculator.go
package negotiation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/your-org/store-pilot/internal/domain/catalog"
)

// Outcome reasons that are not reason types
const (
	ReasonRude             = "rude_behavior"
	ReasonLowball          = "lowball_offer"
	ReasonNone             = "no_reason"
	ReasonBelowBottomPrice = "below_bottom_price"
)

// Percentage ranges, inclusive
const (
	goodReasonMin = 15
	goodReasonMax = 25
	weakReasonMin = 5
	weakReasonMax = 10
	penaltyMin    = 10
	penaltyMax    = 20
)

// PenaltyPrefix starts every penalty coupon code
const PenaltyPrefix = "PENALTY"

var couponPrefixes = map[ReasonType]string{
	ReasonBirthday: "BDAY",
	ReasonMultiple: "DOUBLE",
	ReasonVIP:      "VIP",
	ReasonStudent:  "STUDENT",
	ReasonFirst:    "FIRST",
	ReasonLoyalty:  "LOYAL",
	ReasonDefault:  "SAVE",
}

// Decision is the result of evaluating a discount request
type Decision struct {
	Approved             bool           `json:"approved"`
	DiscountPercent      int            `json:"discountPercent"`
	PriceIncreasePercent int            `json:"priceIncreasePercent,omitempty"`
	Reason               string         `json:"reason"`
	ReasonType           ReasonType     `json:"reasonType"`
	CouponCode           string         `json:"couponCode,omitempty"`
	PenaltyCouponCode    string         `json:"penaltyCouponCode,omitempty"`
	Classification       Classification `json:"classification"`
}

// Calculator turns a classified request into a discount or a penalty. Its
// only source of non-determinism is the injected RandomSource.
type Calculator struct {
	random RandomSource
}

// NewCalculator creates a calculator. A nil source uses DefaultRandom.
func NewCalculator(random RandomSource) *Calculator {
	if random == nil {
		random = DefaultRandom()
	}
	return &Calculator{random: random}
}

// Evaluate decides the outcome of request for product. Rudeness wins over
// every other signal, then lowball offers, then the strength of the reason.
// An approved discount never takes the price below the product's bottom price.
func (c *Calculator) Evaluate(request string, product catalog.Product) Decision {
	cls := Classify(request)
	d := Decision{ReasonType: cls.ReasonType, Classification: cls}

	switch {
	case cls.IsRude:
		d.Reason = ReasonRude
		d.PriceIncreasePercent = c.between(penaltyMin, penaltyMax)
		d.PenaltyCouponCode = CouponCode(PenaltyPrefix, d.PriceIncreasePercent, c.suffix())
		return d
	case cls.IsLowball:
		d.Reason = ReasonLowball
		return d
	case cls.ReasonScore >= 2 || cls.ReasonType == ReasonBirthday || cls.ReasonType == ReasonMultiple:
		d.Approved = true
		d.DiscountPercent = c.between(goodReasonMin, goodReasonMax)
		d.Reason = string(cls.ReasonType)
	case cls.ReasonScore == 1:
		d.Approved = true
		d.DiscountPercent = c.between(weakReasonMin, weakReasonMax)
		d.Reason = string(cls.ReasonType)
	default:
		d.Reason = ReasonNone
		return d
	}

	if belowFloor(product, d.DiscountPercent) {
		maxPercent := product.MaxDiscountPercent()
		if maxPercent <= 0 {
			d.Approved = false
			d.DiscountPercent = 0
			d.Reason = ReasonBelowBottomPrice
			return d
		}
		if d.DiscountPercent > maxPercent {
			d.DiscountPercent = maxPercent
		}
	}

	d.CouponCode = CouponCode(couponPrefix(cls.ReasonType), d.DiscountPercent, c.suffix())
	return d
}

// CouponCode formats PREFIX-PERCENT-NNN
func CouponCode(prefix string, percent, suffix int) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, percent, suffix)
}

func couponPrefix(reason ReasonType) string {
	if prefix, ok := couponPrefixes[reason]; ok {
		return prefix
	}
	return couponPrefixes[ReasonDefault]
}

// belowFloor reports whether percent off would take the exact price under
// the bottom price.
func belowFloor(p catalog.Product, percent int) bool {
	hundred := decimal.NewFromInt(100)
	discounted := p.Price.Mul(hundred.Sub(decimal.NewFromInt(int64(percent)))).Div(hundred)
	return discounted.LessThan(p.BottomPrice)
}

func (c *Calculator) between(lo, hi int) int {
	return lo + c.random.IntN(hi-lo+1)
}

func (c *Calculator) suffix() int {
	return c.random.IntN(1000)
}
