package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/07chouthri/flowerschool-storefront/internal/domain"
	pkgkafka "github.com/07chouthri/flowerschool-storefront/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated   = "storefront.cart.updated"
	TopicCouponApplied = "storefront.coupon.applied"
	TopicOrderPlaced   = "storefront.order.placed"
)

// Aggregate type constant.
const AggregateTypeSession = "checkout_session"

// Source identifier for events originating from the storefront service.
const SourceStorefront = "storefront-service"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID string          `json:"session_id"`
	UserID    string          `json:"user_id,omitempty"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CouponAppliedData is the payload for a coupon.applied event.
type CouponAppliedData struct {
	SessionID      string          `json:"session_id"`
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	SessionID   string          `json:"session_id"`
	UserID      string          `json:"user_id,omitempty"`
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Total       decimal.Decimal `json:"total"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, session *domain.Session) error {
	data := CartUpdatedData{
		SessionID: session.ID,
		UserID:    session.UserID,
		ItemCount: session.Cart.TotalQuantity(),
		Subtotal:  session.Cart.Subtotal(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, session.ID, AggregateTypeSession, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", session.ID),
		slog.Int("item_count", data.ItemCount),
	)

	return nil
}

// PublishCouponApplied publishes a coupon.applied event.
func (p *Producer) PublishCouponApplied(ctx context.Context, session *domain.Session, applied *domain.AppliedCoupon) error {
	data := CouponAppliedData{
		SessionID:      session.ID,
		Code:           applied.Rule.Code,
		DiscountAmount: applied.DiscountAmount,
	}

	event, err := pkgkafka.NewEvent(TopicCouponApplied, session.ID, AggregateTypeSession, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create coupon.applied event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCouponApplied, event); err != nil {
		return fmt.Errorf("publish coupon.applied event: %w", err)
	}

	p.logger.DebugContext(ctx, "published coupon.applied event",
		slog.String("session_id", session.ID),
		slog.String("code", applied.Rule.Code),
	)

	return nil
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, session *domain.Session, orderID, orderNumber string, total decimal.Decimal) error {
	data := OrderPlacedData{
		SessionID:   session.ID,
		UserID:      session.UserID,
		OrderID:     orderID,
		OrderNumber: orderNumber,
		Total:       total,
	}

	event, err := pkgkafka.NewEvent(TopicOrderPlaced, session.ID, AggregateTypeSession, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPlaced, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.InfoContext(ctx, "published order.placed event",
		slog.String("session_id", session.ID),
		slog.String("order_id", orderID),
	)

	return nil
}
