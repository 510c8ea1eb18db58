package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() *Address {
	return &Address{
		FullName:     "Asha Rao",
		Phone:        "9876543210",
		Email:        "asha@example.com",
		AddressLine1: "12 Koramangala 5th Block",
		City:         "Bengaluru",
		State:        "Karnataka",
		PostalCode:   "560034",
		Country:      "India",
		AddressType:  AddressTypeHome,
	}
}

func standardDelivery() *DeliveryOption {
	return &DeliveryOption{
		ID:            "std",
		Name:          "Standard Delivery",
		Price:         decimal.NewFromInt(49),
		EstimatedDays: 2,
	}
}

func readySession(t *testing.T) *Session {
	t.Helper()
	s := NewSession("user-1")
	require.NoError(t, s.Cart.AddItem(lineItem("p1", "499.00", 2)))
	s.ShippingAddress = validAddress()
	s.DeliveryOption = standardDelivery()
	s.Payment = &PaymentData{Method: PaymentMethodCOD}
	return s
}

func TestNewSessionStartsAtCart(t *testing.T) {
	s := NewSession("user-1")

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, StepCart, s.CurrentStep)
	assert.Empty(t, s.CompletedSteps)
	assert.True(t, s.Cart.IsEmpty())
}

func TestAdvanceBlockedOnEmptyCart(t *testing.T) {
	s := NewSession("user-1")

	err := s.Advance()
	require.Error(t, err)
	assert.Equal(t, StepCart, s.CurrentStep)
	assert.Empty(t, s.CompletedSteps)
}

func TestAdvanceThroughAllSteps(t *testing.T) {
	s := readySession(t)

	require.NoError(t, s.Advance())
	assert.Equal(t, StepShipping, s.CurrentStep)
	assert.True(t, s.IsCompleted(StepCart))

	require.NoError(t, s.Advance())
	assert.Equal(t, StepPayment, s.CurrentStep)

	require.NoError(t, s.Advance())
	assert.Equal(t, StepReview, s.CurrentStep)
	assert.True(t, s.IsCompleted(StepPayment))

	// Review has no forward edge.
	err := s.Advance()
	require.Error(t, err)
	assert.Equal(t, StepReview, s.CurrentStep)
}

func TestReviewHasNoGateOfItsOwn(t *testing.T) {
	s := readySession(t)
	require.NoError(t, s.JumpTo(StepReview))

	assert.True(t, s.CanProceed(StepReview))

	err := s.Advance()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already at final step")
	assert.Equal(t, StepReview, s.CurrentStep)
	assert.False(t, s.IsCompleted(StepReview))
}

func TestAdvanceBlockedWithoutDeliveryOption(t *testing.T) {
	s := readySession(t)
	s.DeliveryOption = nil
	require.NoError(t, s.Advance())

	err := s.Advance()
	require.Error(t, err)
	assert.Equal(t, StepShipping, s.CurrentStep)
}

func TestAdvanceBlockedOnInvalidPayment(t *testing.T) {
	s := readySession(t)
	s.Payment = &PaymentData{Method: "wallet"}
	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())

	err := s.Advance()
	require.Error(t, err)
	assert.Equal(t, StepPayment, s.CurrentStep)
}

func TestRetreatKeepsCompletedSteps(t *testing.T) {
	s := readySession(t)
	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())

	s.Retreat()
	assert.Equal(t, StepShipping, s.CurrentStep)
	assert.True(t, s.IsCompleted(StepCart))
	assert.True(t, s.IsCompleted(StepShipping))

	s.Retreat()
	assert.Equal(t, StepCart, s.CurrentStep)

	// Retreating at the first step stays put.
	s.Retreat()
	assert.Equal(t, StepCart, s.CurrentStep)
}

func TestJumpToSkipsGates(t *testing.T) {
	s := NewSession("user-1")

	require.NoError(t, s.JumpTo(StepReview))
	assert.Equal(t, StepReview, s.CurrentStep)
	assert.Empty(t, s.CompletedSteps)

	err := s.JumpTo(Step("confirm"))
	require.Error(t, err)
	assert.Equal(t, StepReview, s.CurrentStep)
}

func TestCanPlaceOrder(t *testing.T) {
	s := readySession(t)
	assert.False(t, s.CanPlaceOrder(), "only the review step may place an order")

	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())
	assert.True(t, s.CanPlaceOrder())

	s.Cart.Clear()
	assert.False(t, s.CanPlaceOrder())
}

func TestResetAfterOrder(t *testing.T) {
	s := readySession(t)
	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())
	s.PlacingOrder = true

	id := s.ID
	s.ResetAfterOrder()

	assert.Equal(t, id, s.ID)
	assert.True(t, s.Cart.IsEmpty())
	assert.Nil(t, s.ShippingAddress)
	assert.Nil(t, s.Payment)
	assert.Nil(t, s.AppliedCoupon)
	assert.Equal(t, StepCart, s.CurrentStep)
	assert.Empty(t, s.CompletedSteps)
	assert.False(t, s.PlacingOrder)
}

func TestValidStep(t *testing.T) {
	assert.True(t, ValidStep(StepCart))
	assert.True(t, ValidStep(StepReview))
	assert.False(t, ValidStep(Step("confirm")))
}
