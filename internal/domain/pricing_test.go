package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePricingEmptySession(t *testing.T) {
	s := NewSession("user-1")

	p := ComputePricing(s)
	assert.True(t, p.Subtotal.IsZero())
	assert.True(t, p.Total.IsZero())
}

func TestComputePricingFullBreakdown(t *testing.T) {
	s := readySession(t) // subtotal 998.00, delivery 49, cod fee 40

	rule := CouponRule{
		Code:   "FLAT100",
		Type:   CouponTypeFixed,
		Value:  decimal.NewFromInt(100),
		Active: true,
	}
	applied, err := rule.Apply(s.Cart.Subtotal(), time.Now())
	require.NoError(t, err)
	s.AppliedCoupon = applied

	p := ComputePricing(s)
	assert.True(t, p.Subtotal.Equal(decimal.RequireFromString("998.00")))
	assert.True(t, p.DeliveryCharge.Equal(decimal.NewFromInt(49)))
	assert.True(t, p.PaymentCharge.Equal(decimal.NewFromInt(40)))
	assert.True(t, p.Discount.Equal(decimal.NewFromInt(100)))
	assert.True(t, p.Total.Equal(decimal.RequireFromString("987.00")))
}

func TestComputePricingNoSurchargeForCard(t *testing.T) {
	s := readySession(t)
	s.Payment = &PaymentData{Method: PaymentMethodCard}

	p := ComputePricing(s)
	assert.True(t, p.PaymentCharge.IsZero())
}

func TestComputePricingDiscountClampedToSubtotal(t *testing.T) {
	s := NewSession("user-1")
	require.NoError(t, s.Cart.AddItem(lineItem("p1", "50.00", 1)))
	s.AppliedCoupon = &AppliedCoupon{
		Rule:           CouponRule{Code: "FLAT500", Type: CouponTypeFixed, Value: decimal.NewFromInt(500), Active: true},
		DiscountAmount: decimal.NewFromInt(500),
	}

	p := ComputePricing(s)
	assert.True(t, p.Discount.Equal(decimal.RequireFromString("50.00")))
	assert.False(t, p.Total.IsNegative())
}

func TestComputePricingTotalNeverNegative(t *testing.T) {
	s := NewSession("user-1")
	require.NoError(t, s.Cart.AddItem(lineItem("p1", "10.00", 1)))
	s.AppliedCoupon = &AppliedCoupon{
		Rule:           CouponRule{Code: "X", Type: CouponTypeFixed, Value: decimal.NewFromInt(10), Active: true},
		DiscountAmount: decimal.NewFromInt(10),
	}

	p := ComputePricing(s)
	assert.True(t, p.Total.GreaterThanOrEqual(decimal.Zero))
}
