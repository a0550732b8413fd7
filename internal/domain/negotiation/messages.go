// internal/domain/negotiation/messages.go
package negotiation

import "fmt"

// Message returns the shopkeeper's reply for a decision
func (d Decision) Message() string {
	if d.Approved {
		return fmt.Sprintf("Great! I've approved a %d%% discount. Your coupon code %s has been applied to your cart.",
			d.DiscountPercent, d.CouponCode)
	}

	switch d.Reason {
	case ReasonRude:
		msg := "I appreciate your interest, but I can't offer a discount at this time. Is there something specific you'd like to know about the product?"
		if d.PriceIncreasePercent > 0 {
			msg += fmt.Sprintf(" Please note that a %d%% surcharge (%s) now applies to your cart.",
				d.PriceIncreasePercent, d.PenaltyCouponCode)
		}
		return msg
	case ReasonLowball:
		return "I understand you're looking for a deal, but I can't go that low. The best I can do is respect our pricing. Would you like to see similar products at different price points?"
	case ReasonBelowBottomPrice:
		return "I'm sorry, but I can't go below our minimum price for this item. The current price is already competitive."
	default:
		return "I appreciate your interest, but I can't offer a discount right now. However, I'd be happy to help you find something that fits your budget!"
	}
}
