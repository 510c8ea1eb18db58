package client

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/07chouthri/flowerschool-storefront/internal/domain"
)

// PlaceOrderRequest is the order submission payload. It carries the
// complete checkout snapshot so the order service needs no session
// lookup.
type PlaceOrderRequest struct {
	SessionID       string                `json:"session_id"`
	UserID          string                `json:"user_id,omitempty"`
	Items           []domain.LineItem     `json:"items"`
	ShippingAddress domain.Address        `json:"shipping_address"`
	DeliveryOption  domain.DeliveryOption `json:"delivery_option"`
	PaymentMethod   string                `json:"payment_method"`
	CouponCode      string                `json:"coupon_code,omitempty"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	DeliveryCharge  decimal.Decimal       `json:"delivery_charge"`
	PaymentCharge   decimal.Decimal       `json:"payment_charge"`
	Discount        decimal.Decimal       `json:"discount"`
	Total           decimal.Decimal       `json:"total"`
}

// OrderResult is the order service's acknowledgement.
type OrderResult struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	PlacedAt    time.Time `json:"placed_at"`
}

// OrderClient submits orders to the order service.
type OrderClient struct {
	doer    HTTPDoer
	baseURL string
}

// NewOrderClient creates an order client against baseURL.
func NewOrderClient(doer HTTPDoer, baseURL string) *OrderClient {
	return &OrderClient{doer: doer, baseURL: strings.TrimRight(baseURL, "/")}
}

// Place submits the order. Any non-success response comes back as an
// error and the caller's session must stay untouched.
func (c *OrderClient) Place(ctx context.Context, req *PlaceOrderRequest) (*OrderResult, error) {
	var result OrderResult
	if err := postJSON(ctx, c.doer, c.baseURL+"/api/orders", "order", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
