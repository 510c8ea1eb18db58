package client

import (
	"context"
	"net/url"
	"strings"

	"github.com/07chouthri/flowerschool-storefront/internal/domain"
)

// DeliveryClient reads shipping options from the delivery service.
type DeliveryClient struct {
	doer    HTTPDoer
	baseURL string
}

// NewDeliveryClient creates a delivery client against baseURL.
func NewDeliveryClient(doer HTTPDoer, baseURL string) *DeliveryClient {
	return &DeliveryClient{doer: doer, baseURL: strings.TrimRight(baseURL, "/")}
}

// ListOptions returns the delivery options available for a postal code.
func (c *DeliveryClient) ListOptions(ctx context.Context, postalCode string) ([]domain.DeliveryOption, error) {
	u := c.baseURL + "/api/delivery/options?postal_code=" + url.QueryEscape(postalCode)

	var options []domain.DeliveryOption
	if err := getJSON(ctx, c.doer, u, "delivery", &options); err != nil {
		return nil, err
	}
	return options, nil
}
