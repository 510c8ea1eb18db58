package client

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/07chouthri/flowerschool-storefront/internal/domain"
	apperrors "github.com/07chouthri/flowerschool-storefront/pkg/errors"
)

// CouponClient looks up coupon rules in the coupon service.
type CouponClient struct {
	doer    HTTPDoer
	baseURL string
}

// NewCouponClient creates a coupon client against baseURL.
func NewCouponClient(doer HTTPDoer, baseURL string) *CouponClient {
	return &CouponClient{doer: doer, baseURL: strings.TrimRight(baseURL, "/")}
}

// Lookup fetches the rule for a coupon code. An unknown code surfaces
// as a coupon rejection rather than a bare not-found so callers can
// show it on the coupon form.
func (c *CouponClient) Lookup(ctx context.Context, code string) (*domain.CouponRule, error) {
	code = domain.NormalizeCouponCode(code)

	var rule domain.CouponRule
	err := getJSON(ctx, c.doer, c.baseURL+"/api/coupons/"+url.PathEscape(code), "coupon", &rule)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.CouponRejected("coupon code " + code + " is not recognized")
		}
		return nil, err
	}
	return &rule, nil
}
