package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/07chouthri/flowerschool-storefront/pkg/errors"
)

func percentRule(value, maxDiscount string) CouponRule {
	return CouponRule{
		Code:              "BLOOM10",
		Type:              CouponTypePercentage,
		Value:             decimal.RequireFromString(value),
		MaxDiscountAmount: decimal.RequireFromString(maxDiscount),
		Active:            true,
	}
}

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "BLOOM10", NormalizeCouponCode("  bloom10 "))
	assert.Equal(t, "FLAT100", NormalizeCouponCode("Flat100"))
}

func TestPercentageDiscount(t *testing.T) {
	rule := percentRule("10", "0")

	discount := rule.DiscountFor(decimal.RequireFromString("1500.00"))
	assert.True(t, discount.Equal(decimal.RequireFromString("150.00")))
}

func TestPercentageDiscountCapped(t *testing.T) {
	rule := percentRule("10", "100")

	discount := rule.DiscountFor(decimal.RequireFromString("1500.00"))
	assert.True(t, discount.Equal(decimal.RequireFromString("100")))
}

func TestFixedDiscountClampedToSubtotal(t *testing.T) {
	rule := CouponRule{
		Code:   "FLAT500",
		Type:   CouponTypeFixed,
		Value:  decimal.NewFromInt(500),
		Active: true,
	}

	discount := rule.DiscountFor(decimal.RequireFromString("299.00"))
	assert.True(t, discount.Equal(decimal.RequireFromString("299.00")))
}

func TestQualifiesMinOrderAmount(t *testing.T) {
	rule := percentRule("10", "0")
	rule.MinOrderAmount = decimal.NewFromInt(1000)
	now := time.Now()

	require.NoError(t, rule.Qualifies(decimal.NewFromInt(1000), now))

	err := rule.Qualifies(decimal.NewFromInt(999), now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCouponRejected))
}

func TestQualifiesExpiry(t *testing.T) {
	rule := percentRule("10", "0")
	past := time.Now().Add(-time.Hour)
	rule.ExpiresAt = &past

	err := rule.Qualifies(decimal.NewFromInt(2000), time.Now())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "COUPON_REJECTED", appErr.Code)
}

func TestQualifiesInactive(t *testing.T) {
	rule := percentRule("10", "0")
	rule.Active = false

	err := rule.Qualifies(decimal.NewFromInt(2000), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCouponRejected))
}

func TestApply(t *testing.T) {
	rule := percentRule("10", "0")
	now := time.Now()

	applied, err := rule.Apply(decimal.RequireFromString("1500.00"), now)
	require.NoError(t, err)
	assert.Equal(t, "BLOOM10", applied.Rule.Code)
	assert.True(t, applied.DiscountAmount.Equal(decimal.RequireFromString("150.00")))
	assert.Equal(t, now, applied.AppliedAt)
}

func TestApplyRejected(t *testing.T) {
	rule := percentRule("10", "0")
	rule.MinOrderAmount = decimal.NewFromInt(2000)

	applied, err := rule.Apply(decimal.NewFromInt(500), time.Now())
	require.Error(t, err)
	assert.Nil(t, applied)
}
