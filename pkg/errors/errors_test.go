package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorString(t *testing.T) {
	err := InvalidQuantity("quantity must be between 1 and 99")
	assert.Equal(t, "INVALID_QUANTITY: quantity must be between 1 and 99", err.Error())
}

func TestAppError_ErrorStringWithWrapped(t *testing.T) {
	inner := errors.New("boom")
	err := &AppError{Code: "INTERNAL_ERROR", Message: "an internal error occurred", Err: inner}
	assert.Contains(t, err.Error(), "boom")
}

func TestAppError_Unwrap(t *testing.T) {
	err := ItemNotFound("rose-bouquet-12")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCouponRejected_IsNonFatalKind(t *testing.T) {
	err := CouponRejected("minimum order amount not met")
	assert.True(t, errors.Is(err, ErrCouponRejected))
	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
}

func TestOrderPlacementFailed_Status(t *testing.T) {
	err := OrderPlacementFailed("order service returned 500")
	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.True(t, errors.Is(err, ErrOrderFailed))
}

func TestHTTPStatus_AppError(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("session modified concurrently")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ItemNotFound("p1")))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(ServiceUnavailable("coupon service down")))
}

func TestHTTPStatus_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("apply coupon: %w", ErrCouponRejected)
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(err))
}

func TestHTTPStatus_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("mystery")))
}
