package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/07chouthri/flowerschool-storefront/internal/domain"
	"github.com/07chouthri/flowerschool-storefront/internal/service"
	apperrors "github.com/07chouthri/flowerschool-storefront/pkg/errors"
	"github.com/07chouthri/flowerschool-storefront/pkg/httputil"
	pkgvalidator "github.com/07chouthri/flowerschool-storefront/pkg/validator"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=99"`
}

// UpdateQuantityRequest is the JSON request body for changing a line quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1,lte=99"`
}

// ApplyCouponRequest is the JSON request body for applying a coupon code.
type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required,min=2,max=50"`
}

// SetPaymentRequest is the JSON request body for the payment selection.
type SetPaymentRequest struct {
	Method  string            `json:"method" validate:"required,oneof=card upi netbanking cod"`
	Details map[string]string `json:"details"`
}

// SelectDeliveryRequest is the JSON request body for picking a delivery option.
type SelectDeliveryRequest struct {
	OptionID string `json:"option_id" validate:"required"`
}

// JumpToStepRequest is the JSON request body for jumping to a checkout step.
type JumpToStepRequest struct {
	Step string `json:"step" validate:"required,oneof=cart shipping payment review"`
}

// --- Response DTOs ---

// SessionView is a session plus its derived price breakdown. Pricing is
// computed on every read so it can never drift from the cart.
type SessionView struct {
	*domain.Session
	Pricing domain.Pricing `json:"pricing"`
}

func newSessionView(s *domain.Session) SessionView {
	return SessionView{Session: s, Pricing: domain.ComputePricing(s)}
}

// OrderView is the order placement response.
type OrderView struct {
	OrderID     string      `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	Status      string      `json:"status"`
	Session     SessionView `json:"session"`
}

// --- Helpers ---

func (h *CheckoutHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return false
	}
	if err := pkgvalidator.Validate(dst); err != nil {
		httputil.WriteValidationError(w, err)
		return false
	}
	return true
}

func (h *CheckoutHandler) writeSession(w http.ResponseWriter, s *domain.Session) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newSessionView(s)})
}

// --- Handlers ---

// CreateSession handles POST /api/v1/checkout/session. It is idempotent
// for a valid X-Session-ID and mints a new session otherwise.
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get("X-Session-ID")
	userID := r.Header.Get("X-User-ID")

	session, err := h.service.GetOrCreateSession(r.Context(), sessionID, userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// GetSession handles GET /api/v1/checkout/session
func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetSession(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// AddItem handles POST /api/v1/checkout/cart/items
func (h *CheckoutHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.service.AddItem(r.Context(), sessionIDFromContext(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// UpdateQuantity handles PUT /api/v1/checkout/cart/items/{productId}
func (h *CheckoutHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var req UpdateQuantityRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.service.UpdateQuantity(r.Context(), sessionIDFromContext(r.Context()), productID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// RemoveItem handles DELETE /api/v1/checkout/cart/items/{productId}
func (h *CheckoutHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	session, err := h.service.RemoveItem(r.Context(), sessionIDFromContext(r.Context()), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// ClearCart handles DELETE /api/v1/checkout/cart
func (h *CheckoutHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.ClearCart(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// SetShippingAddress handles PUT /api/v1/checkout/shipping-address
func (h *CheckoutHandler) SetShippingAddress(w http.ResponseWriter, r *http.Request) {
	var addr domain.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	session, err := h.service.SetShippingAddress(r.Context(), sessionIDFromContext(r.Context()), &addr)
	if err != nil {
		var valErr *pkgvalidator.ValidationError
		if errors.As(err, &valErr) {
			httputil.WriteValidationError(w, err)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// ListDeliveryOptions handles GET /api/v1/checkout/delivery-options
func (h *CheckoutHandler) ListDeliveryOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.ListDeliveryOptions(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: options})
}

// SelectDeliveryOption handles PUT /api/v1/checkout/delivery-option
func (h *CheckoutHandler) SelectDeliveryOption(w http.ResponseWriter, r *http.Request) {
	var req SelectDeliveryRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.service.SelectDeliveryOption(r.Context(), sessionIDFromContext(r.Context()), req.OptionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// SetPaymentMethod handles PUT /api/v1/checkout/payment
func (h *CheckoutHandler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req SetPaymentRequest
	if !h.decode(w, r, &req) {
		return
	}

	payment := &domain.PaymentData{Method: req.Method, Details: req.Details}
	session, err := h.service.SetPaymentMethod(r.Context(), sessionIDFromContext(r.Context()), payment)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// ApplyCoupon handles POST /api/v1/checkout/coupon. A rejection still
// returns the session state so the UI can show the stored reason.
func (h *CheckoutHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req ApplyCouponRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.service.ApplyCoupon(r.Context(), sessionIDFromContext(r.Context()), req.Code)
	if err != nil {
		if session != nil && errors.Is(err, apperrors.ErrCouponRejected) {
			httputil.WriteJSON(w, http.StatusUnprocessableEntity, httputil.Response{
				Data: newSessionView(session),
				Error: &httputil.ErrorResponse{
					Code:    "COUPON_REJECTED",
					Message: session.CouponError,
				},
			})
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// RemoveCoupon handles DELETE /api/v1/checkout/coupon
func (h *CheckoutHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.RemoveCoupon(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// ClearCouponError handles DELETE /api/v1/checkout/coupon/error
func (h *CheckoutHandler) ClearCouponError(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.ClearCouponError(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// Advance handles POST /api/v1/checkout/advance
func (h *CheckoutHandler) Advance(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Advance(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// Retreat handles POST /api/v1/checkout/retreat
func (h *CheckoutHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Retreat(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// JumpToStep handles POST /api/v1/checkout/step
func (h *CheckoutHandler) JumpToStep(w http.ResponseWriter, r *http.Request) {
	var req JumpToStepRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.service.JumpTo(r.Context(), sessionIDFromContext(r.Context()), domain.Step(req.Step))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// PlaceOrder handles POST /api/v1/checkout/order
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.PlaceOrder(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: OrderView{
		OrderID:     result.Order.OrderID,
		OrderNumber: result.Order.OrderNumber,
		Status:      result.Order.Status,
		Session:     newSessionView(result.Session),
	}})
}
