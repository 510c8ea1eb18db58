package domain

import "github.com/shopspring/decimal"

// Pricing is the computed price breakdown of a session. All amounts are
// exact decimals rounded to two places.
type Pricing struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	PaymentCharge  decimal.Decimal `json:"payment_charge"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
}

// ComputePricing derives the price breakdown from the session state. It
// is a pure function of the session: subtotal from the cart, delivery
// charge from the selected option, payment charge from the method
// surcharge, discount from the applied coupon. The total is clamped at
// zero.
func ComputePricing(s *Session) Pricing {
	p := Pricing{
		Subtotal:       s.Cart.Subtotal().Round(2),
		DeliveryCharge: decimal.Zero,
		PaymentCharge:  decimal.Zero,
		Discount:       decimal.Zero,
	}
	if s.DeliveryOption != nil {
		p.DeliveryCharge = s.DeliveryOption.Price.Round(2)
	}
	if s.Payment != nil {
		p.PaymentCharge = SurchargeFor(s.Payment.Method).Round(2)
	}
	if s.AppliedCoupon != nil {
		p.Discount = s.AppliedCoupon.DiscountAmount.Round(2)
		if p.Discount.GreaterThan(p.Subtotal) {
			p.Discount = p.Subtotal
		}
	}
	p.Total = p.Subtotal.Add(p.DeliveryCharge).Add(p.PaymentCharge).Sub(p.Discount)
	if p.Total.IsNegative() {
		p.Total = decimal.Zero
	}
	return p
}
