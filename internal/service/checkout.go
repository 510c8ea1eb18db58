package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/07chouthri/flowerschool-storefront/internal/client"
	"github.com/07chouthri/flowerschool-storefront/internal/domain"
	"github.com/07chouthri/flowerschool-storefront/internal/event"
	"github.com/07chouthri/flowerschool-storefront/internal/repository"
	apperrors "github.com/07chouthri/flowerschool-storefront/pkg/errors"
)

// CheckoutService implements the business logic for the checkout flow:
// cart management, step progression, coupon application and order
// placement. All state lives in the session aggregate; every mutation
// goes through an optimistic save so concurrent writers cannot clobber
// each other.
type CheckoutService struct {
	repo     repository.SessionRepository
	producer *event.Producer
	logger   *slog.Logger
	catalog  *client.CatalogClient
	delivery *client.DeliveryClient
	coupons  *client.CouponClient
	orders   *client.OrderClient
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	repo repository.SessionRepository,
	producer *event.Producer,
	logger *slog.Logger,
	catalog *client.CatalogClient,
	delivery *client.DeliveryClient,
	coupons *client.CouponClient,
	orders *client.OrderClient,
) *CheckoutService {
	return &CheckoutService{
		repo:     repo,
		producer: producer,
		logger:   logger,
		catalog:  catalog,
		delivery: delivery,
		coupons:  coupons,
		orders:   orders,
	}
}

// save persists the session, mapping a lost version race to a conflict
// the caller can retry.
func (s *CheckoutService) save(ctx context.Context, session *domain.Session) error {
	ok, err := s.repo.SaveIfVersion(ctx, session, session.Version)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if !ok {
		return apperrors.Conflict("checkout session was modified concurrently, please retry")
	}
	return nil
}

// GetOrCreateSession returns the session for sessionID, creating a
// fresh one when the ID is empty or the session has expired.
func (s *CheckoutService) GetOrCreateSession(ctx context.Context, sessionID, userID string) (*domain.Session, error) {
	if sessionID != "" {
		session, err := s.repo.Get(ctx, sessionID)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	session := domain.NewSession(userID)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "checkout session created",
		slog.String("session_id", session.ID),
		slog.String("user_id", userID),
	)

	return session, nil
}

// GetSession returns an existing session.
func (s *CheckoutService) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	return s.repo.Get(ctx, sessionID)
}

// revalidateCoupon re-checks the applied coupon against the current
// subtotal after a cart mutation. A coupon that no longer qualifies is
// dropped and the reason surfaced on the session; one that still
// qualifies gets its discount recomputed.
func (s *CheckoutService) revalidateCoupon(ctx context.Context, session *domain.Session) {
	if session.AppliedCoupon == nil {
		return
	}

	subtotal := session.Cart.Subtotal()
	if err := session.AppliedCoupon.Rule.Qualifies(subtotal, time.Now().UTC()); err != nil {
		var appErr *apperrors.AppError
		reason := err.Error()
		if errors.As(err, &appErr) {
			reason = appErr.Message
		}

		s.logger.InfoContext(ctx, "applied coupon dropped after cart change",
			slog.String("session_id", session.ID),
			slog.String("code", session.AppliedCoupon.Rule.Code),
			slog.String("reason", reason),
		)

		session.AppliedCoupon = nil
		session.CouponError = reason
		return
	}

	session.AppliedCoupon.DiscountAmount = session.AppliedCoupon.Rule.DiscountFor(subtotal)
}

// mutateCart loads the session, applies fn to it, re-checks the coupon
// and saves. The cart.updated event is best-effort.
func (s *CheckoutService) mutateCart(ctx context.Context, sessionID string, fn func(*domain.Session) error) (*domain.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PlacingOrder {
		return nil, apperrors.Conflict("order placement is in progress")
	}

	if err := fn(session); err != nil {
		return nil, err
	}

	s.revalidateCoupon(ctx, session)

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	if err := s.producer.PublishCartUpdated(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}

	return session, nil
}

// AddItem adds a product to the cart at its current catalog price.
func (s *CheckoutService) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.Session, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, apperrors.InvalidInput(fmt.Sprintf("product %s is out of stock", product.Name))
	}

	session, err := s.mutateCart(ctx, sessionID, func(session *domain.Session) error {
		return session.Cart.AddItem(domain.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  quantity,
			Category:  product.Category,
			ImageURL:  product.ImageURL,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", session.ID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return session, nil
}

// UpdateQuantity sets the quantity of a line item already in the cart.
func (s *CheckoutService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Session, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	session, err := s.mutateCart(ctx, sessionID, func(session *domain.Session) error {
		return session.Cart.UpdateQuantity(productID, quantity)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("session_id", session.ID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return session, nil
}

// RemoveItem removes a line item from the cart. Removing an absent
// product succeeds without changing anything.
func (s *CheckoutService) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Session, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	session, err := s.mutateCart(ctx, sessionID, func(session *domain.Session) error {
		session.Cart.RemoveItem(productID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", session.ID),
		slog.String("product_id", productID),
	)

	return session, nil
}

// ClearCart empties the cart.
func (s *CheckoutService) ClearCart(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.mutateCart(ctx, sessionID, func(session *domain.Session) error {
		session.Cart.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart cleared", slog.String("session_id", session.ID))

	return session, nil
}

// SetShippingAddress validates and attaches the shipping address. A
// postal code change invalidates any previously selected delivery
// option, since options are quoted per postal code.
func (s *CheckoutService) SetShippingAddress(ctx context.Context, sessionID string, addr *domain.Address) (*domain.Session, error) {
	if addr == nil {
		return nil, apperrors.InvalidInput("shipping address is required")
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PlacingOrder {
		return nil, apperrors.Conflict("order placement is in progress")
	}

	if session.ShippingAddress != nil && session.ShippingAddress.PostalCode != addr.PostalCode {
		session.DeliveryOption = nil
	}
	session.ShippingAddress = addr

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "shipping address set",
		slog.String("session_id", session.ID),
		slog.String("postal_code", addr.PostalCode),
	)

	return session, nil
}

// ListDeliveryOptions returns the delivery options for the session's
// shipping address.
func (s *CheckoutService) ListDeliveryOptions(ctx context.Context, sessionID string) ([]domain.DeliveryOption, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.ShippingAddress == nil {
		return nil, apperrors.InvalidInput("set a shipping address before choosing delivery")
	}

	return s.delivery.ListOptions(ctx, session.ShippingAddress.PostalCode)
}

// SelectDeliveryOption picks a delivery option by ID. The option is
// verified against the delivery service so a stale or fabricated ID
// cannot be stored.
func (s *CheckoutService) SelectDeliveryOption(ctx context.Context, sessionID, optionID string) (*domain.Session, error) {
	if optionID == "" {
		return nil, apperrors.InvalidInput("delivery option id is required")
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PlacingOrder {
		return nil, apperrors.Conflict("order placement is in progress")
	}
	if session.ShippingAddress == nil {
		return nil, apperrors.InvalidInput("set a shipping address before choosing delivery")
	}

	options, err := s.delivery.ListOptions(ctx, session.ShippingAddress.PostalCode)
	if err != nil {
		return nil, err
	}

	var selected *domain.DeliveryOption
	for i := range options {
		if options[i].ID == optionID {
			selected = &options[i]
			break
		}
	}
	if selected == nil {
		return nil, apperrors.NotFound("delivery option", optionID)
	}

	session.DeliveryOption = selected

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "delivery option selected",
		slog.String("session_id", session.ID),
		slog.String("option_id", optionID),
	)

	return session, nil
}

// SetPaymentMethod validates and stores the payment selection.
func (s *CheckoutService) SetPaymentMethod(ctx context.Context, sessionID string, payment *domain.PaymentData) (*domain.Session, error) {
	if payment == nil {
		return nil, apperrors.InvalidInput("payment selection is required")
	}
	if err := domain.ValidatePayment(*payment); err != nil {
		return nil, err
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PlacingOrder {
		return nil, apperrors.Conflict("order placement is in progress")
	}

	session.Payment = payment

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "payment method set",
		slog.String("session_id", session.ID),
		slog.String("method", payment.Method),
	)

	return session, nil
}

// ApplyCoupon looks up and applies a coupon code. A rejection is
// non-fatal: the reason is stored on the session, any previously
// applied coupon is kept, and the rejection is still returned so the
// caller can surface it. Duplicate submissions while one is in flight
// are refused.
func (s *CheckoutService) ApplyCoupon(ctx context.Context, sessionID, code string) (*domain.Session, error) {
	code = domain.NormalizeCouponCode(code)
	if code == "" {
		return nil, apperrors.InvalidInput("coupon code is required")
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.ApplyingCoupon {
		return nil, apperrors.Conflict("a coupon application is already in progress")
	}
	if session.PlacingOrder {
		return nil, apperrors.Conflict("order placement is in progress")
	}
	if session.Cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cannot apply a coupon to an empty cart")
	}

	session.ApplyingCoupon = true
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	rule, err := s.coupons.Lookup(ctx, code)
	if err != nil {
		return s.finishCouponAttempt(ctx, session, nil, err)
	}

	applied, err := rule.Apply(session.Cart.Subtotal(), time.Now().UTC())
	return s.finishCouponAttempt(ctx, session, applied, err)
}

// finishCouponAttempt clears the in-flight flag and records the
// outcome. Rejections keep the previously applied coupon; any other
// failure leaves the coupon state untouched entirely.
func (s *CheckoutService) finishCouponAttempt(ctx context.Context, session *domain.Session, applied *domain.AppliedCoupon, attemptErr error) (*domain.Session, error) {
	session.ApplyingCoupon = false

	switch {
	case attemptErr == nil:
		session.AppliedCoupon = applied
		session.CouponError = ""
	case errors.Is(attemptErr, apperrors.ErrCouponRejected):
		var appErr *apperrors.AppError
		if errors.As(attemptErr, &appErr) {
			session.CouponError = appErr.Message
		} else {
			session.CouponError = attemptErr.Error()
		}
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	if attemptErr != nil {
		return session, attemptErr
	}

	if err := s.producer.PublishCouponApplied(ctx, session, applied); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish coupon.applied event",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "coupon applied",
		slog.String("session_id", session.ID),
		slog.String("code", applied.Rule.Code),
	)

	return session, nil
}

// RemoveCoupon detaches the applied coupon and clears any coupon error.
func (s *CheckoutService) RemoveCoupon(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.AppliedCoupon = nil
	session.CouponError = ""

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "coupon removed", slog.String("session_id", session.ID))

	return session, nil
}

// ClearCouponError dismisses a surfaced coupon rejection message.
func (s *CheckoutService) ClearCouponError(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.CouponError = ""

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Advance moves the checkout one step forward when the current step's
// gate is satisfied.
func (s *CheckoutService) Advance(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.Advance(); err != nil {
		return nil, err
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "checkout advanced",
		slog.String("session_id", session.ID),
		slog.String("step", string(session.CurrentStep)),
	)

	return session, nil
}

// Retreat moves the checkout one step back.
func (s *CheckoutService) Retreat(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Retreat()

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// JumpTo sets the current step directly.
func (s *CheckoutService) JumpTo(ctx context.Context, sessionID string, step domain.Step) (*domain.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.JumpTo(step); err != nil {
		return nil, err
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// PlaceOrderResult pairs the order acknowledgement with the reset
// session.
type PlaceOrderResult struct {
	Order   *client.OrderResult
	Session *domain.Session
}

// PlaceOrder submits the checkout snapshot to the order service. It may
// only run from the review step with every gate satisfied. On failure
// the session keeps its cart, address, payment and coupon so the user
// can retry; on success the session is reset for the next purchase.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string) (*PlaceOrderResult, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PlacingOrder {
		return nil, apperrors.Conflict("order placement is already in progress")
	}
	if !session.CanPlaceOrder() {
		return nil, apperrors.InvalidInput("checkout is not ready for order placement")
	}

	// The coupon may have been applied against an older subtotal.
	s.revalidateCoupon(ctx, session)
	if session.CouponError != "" && session.AppliedCoupon == nil {
		if err := s.save(ctx, session); err != nil {
			return nil, err
		}
		return nil, apperrors.CouponRejected(session.CouponError)
	}

	session.PlacingOrder = true
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	pricing := domain.ComputePricing(session)
	req := &client.PlaceOrderRequest{
		SessionID:       session.ID,
		UserID:          session.UserID,
		Items:           session.Cart.Items,
		ShippingAddress: *session.ShippingAddress,
		DeliveryOption:  *session.DeliveryOption,
		PaymentMethod:   session.Payment.Method,
		Subtotal:        pricing.Subtotal,
		DeliveryCharge:  pricing.DeliveryCharge,
		PaymentCharge:   pricing.PaymentCharge,
		Discount:        pricing.Discount,
		Total:           pricing.Total,
	}
	if session.AppliedCoupon != nil {
		req.CouponCode = session.AppliedCoupon.Rule.Code
	}

	result, err := s.orders.Place(ctx, req)
	if err != nil {
		session.PlacingOrder = false
		if saveErr := s.save(ctx, session); saveErr != nil {
			s.logger.ErrorContext(ctx, "failed to clear order placement flag",
				slog.String("session_id", session.ID),
				slog.String("error", saveErr.Error()),
			)
		}

		s.logger.ErrorContext(ctx, "order placement failed",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Status < 500 {
			return nil, err
		}
		return nil, apperrors.OrderPlacementFailed("the order could not be placed, please try again")
	}

	if err := s.producer.PublishOrderPlaced(ctx, session, result.OrderID, result.OrderNumber, pricing.Total); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("session_id", session.ID),
		slog.String("order_id", result.OrderID),
		slog.String("order_number", result.OrderNumber),
	)

	session.ResetAfterOrder()
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return &PlaceOrderResult{Order: result, Session: session}, nil
}
