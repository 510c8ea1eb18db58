package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/07chouthri/flowerschool-storefront/pkg/errors"
)

// Coupon discount types.
const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

// CouponRule is a coupon definition as returned by the coupon
// collaborator. For percentage coupons Value is the percentage (e.g. 10
// for 10%); for fixed coupons it is the discount amount.
type CouponRule struct {
	Code              string          `json:"code"`
	Description       string          `json:"description,omitempty"`
	Type              string          `json:"type"`
	Value             decimal.Decimal `json:"value"`
	MinOrderAmount    decimal.Decimal `json:"min_order_amount"`
	MaxDiscountAmount decimal.Decimal `json:"max_discount_amount"`
	ExpiresAt         *time.Time      `json:"expires_at,omitempty"`
	Active            bool            `json:"active"`
}

// AppliedCoupon records a coupon attached to a session. The rule is
// kept alongside the computed discount so cart mutations can re-check
// eligibility without another collaborator round trip.
type AppliedCoupon struct {
	Rule           CouponRule      `json:"rule"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	AppliedAt      time.Time       `json:"applied_at"`
}

// NormalizeCouponCode canonicalizes user input before lookup: codes are
// case-insensitive and surrounding whitespace is ignored.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Qualifies checks whether the rule can apply to an order of the given
// subtotal, returning a coupon rejection describing the first failed
// condition.
func (r CouponRule) Qualifies(subtotal decimal.Decimal, now time.Time) error {
	if !r.Active {
		return apperrors.CouponRejected(fmt.Sprintf("coupon %s is no longer active", r.Code))
	}
	if r.ExpiresAt != nil && now.After(*r.ExpiresAt) {
		return apperrors.CouponRejected(fmt.Sprintf("coupon %s has expired", r.Code))
	}
	if r.MinOrderAmount.IsPositive() && subtotal.LessThan(r.MinOrderAmount) {
		return apperrors.CouponRejected(
			fmt.Sprintf("order must be at least %s to use coupon %s", r.MinOrderAmount.StringFixed(2), r.Code))
	}
	switch r.Type {
	case CouponTypePercentage, CouponTypeFixed:
	default:
		return apperrors.CouponRejected(fmt.Sprintf("coupon %s has an unrecognized type", r.Code))
	}
	return nil
}

// DiscountFor computes the discount the rule grants on the given
// subtotal. Percentage discounts are capped at MaxDiscountAmount when
// one is set, and no discount ever exceeds the subtotal itself.
func (r CouponRule) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch r.Type {
	case CouponTypePercentage:
		discount = subtotal.Mul(r.Value).Div(decimal.NewFromInt(100))
		if r.MaxDiscountAmount.IsPositive() && discount.GreaterThan(r.MaxDiscountAmount) {
			discount = r.MaxDiscountAmount
		}
	case CouponTypeFixed:
		discount = r.Value
	default:
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount.Round(2)
}

// Apply validates the rule against the subtotal and returns the
// resulting applied coupon.
func (r CouponRule) Apply(subtotal decimal.Decimal, now time.Time) (*AppliedCoupon, error) {
	if err := r.Qualifies(subtotal, now); err != nil {
		return nil, err
	}
	return &AppliedCoupon{
		Rule:           r,
		DiscountAmount: r.DiscountFor(subtotal),
		AppliedAt:      now,
	}, nil
}
