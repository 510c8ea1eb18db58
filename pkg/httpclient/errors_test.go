package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/07chouthri/flowerschool-storefront/pkg/errors"
)

func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_StructuredNotFound(t *testing.T) {
	resp := fakeResponse(http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"no such coupon"}}`)

	err := ParseResponseError(resp, "coupon")

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestParseResponseError_StructuredCouponRejected(t *testing.T) {
	resp := fakeResponse(http.StatusUnprocessableEntity, `{"error":{"code":"COUPON_REJECTED","message":"expired"}}`)

	err := ParseResponseError(resp, "coupon")

	assert.True(t, errors.Is(err, apperrors.ErrCouponRejected))
	assert.Contains(t, err.Error(), "expired")
}

func TestParseResponseError_StructuredServiceUnavailable(t *testing.T) {
	resp := fakeResponse(http.StatusServiceUnavailable, `{"error":{"code":"SERVICE_UNAVAILABLE","message":"maintenance"}}`)

	err := ParseResponseError(resp, "order")

	assert.True(t, errors.Is(err, apperrors.ErrServiceUnavail))
}

func TestParseResponseError_UnstructuredBody(t *testing.T) {
	resp := fakeResponse(http.StatusBadGateway, "upstream blew up")

	err := ParseResponseError(resp, "order")

	assert.Contains(t, err.Error(), "order returned status 502")
	assert.Contains(t, err.Error(), "upstream blew up")
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(http.StatusBadRequest))
	assert.True(t, IsClientError(http.StatusUnprocessableEntity))
	assert.False(t, IsClientError(http.StatusOK))
	assert.False(t, IsClientError(http.StatusInternalServerError))
}
