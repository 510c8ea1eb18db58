package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/07chouthri/flowerschool-storefront/pkg/errors"
)

// Step is a stage of the checkout flow. Steps are strictly ordered:
// cart, shipping, payment, review.
type Step string

const (
	StepCart     Step = "cart"
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
	StepReview   Step = "review"
)

var stepOrder = []Step{StepCart, StepShipping, StepPayment, StepReview}

// ValidStep reports whether s names a checkout step.
func ValidStep(s Step) bool {
	for _, step := range stepOrder {
		if step == s {
			return true
		}
	}
	return false
}

func stepIndex(s Step) int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Session is the checkout aggregate. All fields are serialized as a
// single JSON document; Version backs the optimistic save in the
// repository and is never mutated here.
type Session struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id,omitempty"`
	Cart            *Cart           `json:"cart"`
	ShippingAddress *Address        `json:"shipping_address,omitempty"`
	DeliveryOption  *DeliveryOption `json:"delivery_option,omitempty"`
	Payment         *PaymentData    `json:"payment,omitempty"`
	AppliedCoupon   *AppliedCoupon  `json:"applied_coupon,omitempty"`
	CouponError     string          `json:"coupon_error,omitempty"`
	CurrentStep     Step            `json:"current_step"`
	CompletedSteps  []Step          `json:"completed_steps"`
	ApplyingCoupon  bool            `json:"applying_coupon"`
	PlacingOrder    bool            `json:"placing_order"`
	Version         int64           `json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewSession returns a fresh session at the cart step.
func NewSession(userID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:             uuid.NewString(),
		UserID:         userID,
		Cart:           NewCart(),
		CurrentStep:    StepCart,
		CompletedSteps: []Step{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsCompleted reports whether the step has been marked complete.
func (s *Session) IsCompleted(step Step) bool {
	for _, done := range s.CompletedSteps {
		if done == step {
			return true
		}
	}
	return false
}

// markCompleted records the step as done. Inserting twice is a no-op.
func (s *Session) markCompleted(step Step) {
	if !s.IsCompleted(step) {
		s.CompletedSteps = append(s.CompletedSteps, step)
	}
}

// CanProceed reports whether the session satisfies the gate for leaving
// the given step.
func (s *Session) CanProceed(step Step) bool {
	switch step {
	case StepCart:
		return !s.Cart.IsEmpty()
	case StepShipping:
		return s.ShippingAddress != nil && s.DeliveryOption != nil
	case StepPayment:
		return s.Payment != nil && ValidatePayment(*s.Payment) == nil
	case StepReview:
		// Review has no gate of its own; its only exit is order placement.
		return true
	default:
		return false
	}
}

// Advance marks the current step complete and moves forward. When the
// gate for the current step is not satisfied the session is left
// untouched.
func (s *Session) Advance() error {
	idx := stepIndex(s.CurrentStep)
	if idx < 0 || idx == len(stepOrder)-1 {
		return apperrors.InvalidInput("already at final step")
	}
	if !s.CanProceed(s.CurrentStep) {
		return apperrors.InvalidInput("cannot proceed from step " + string(s.CurrentStep))
	}
	s.markCompleted(s.CurrentStep)
	s.CurrentStep = stepOrder[idx+1]
	return nil
}

// Retreat moves one step back without any gating. Completed steps stay
// completed; retreating at the first step is a no-op.
func (s *Session) Retreat() {
	idx := stepIndex(s.CurrentStep)
	if idx > 0 {
		s.CurrentStep = stepOrder[idx-1]
	}
}

// JumpTo sets the current step directly. Only the step name is
// validated; gates are not re-checked, matching how a stepper UI lets
// users revisit earlier stages.
func (s *Session) JumpTo(step Step) error {
	if !ValidStep(step) {
		return apperrors.InvalidInput("unknown checkout step: " + string(step))
	}
	s.CurrentStep = step
	return nil
}

// CanPlaceOrder reports whether the session is ready for order
// placement: at the review step with every prior gate still satisfied.
func (s *Session) CanPlaceOrder() bool {
	return s.CurrentStep == StepReview &&
		!s.Cart.IsEmpty() &&
		s.ShippingAddress != nil &&
		s.DeliveryOption != nil &&
		s.Payment != nil &&
		ValidatePayment(*s.Payment) == nil
}

// ResetAfterOrder clears the session back to an empty cart at the first
// step, keeping the session identity.
func (s *Session) ResetAfterOrder() {
	s.Cart = NewCart()
	s.ShippingAddress = nil
	s.DeliveryOption = nil
	s.Payment = nil
	s.AppliedCoupon = nil
	s.CouponError = ""
	s.CurrentStep = StepCart
	s.CompletedSteps = []Step{}
	s.ApplyingCoupon = false
	s.PlacingOrder = false
}
