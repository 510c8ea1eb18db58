package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{PaymentMethodCard, PaymentMethodUPI, PaymentMethodNetbanking, PaymentMethodCOD} {
		assert.True(t, ValidPaymentMethod(m), m)
	}
	assert.False(t, ValidPaymentMethod("wallet"))
}

func TestValidateCardPayment(t *testing.T) {
	p := PaymentData{
		Method: PaymentMethodCard,
		Details: map[string]string{
			"card_number": "4111 1111 1111 1111",
			"expiry":      "09/27",
			"cvv":         "123",
		},
	}
	require.NoError(t, ValidatePayment(p))

	p.Details["expiry"] = "13/27"
	require.Error(t, ValidatePayment(p))

	p.Details["expiry"] = "09/27"
	p.Details["card_number"] = "1234"
	require.Error(t, ValidatePayment(p))
}

func TestValidateUPIPayment(t *testing.T) {
	p := PaymentData{
		Method:  PaymentMethodUPI,
		Details: map[string]string{"vpa": "asha.rao@okbank"},
	}
	require.NoError(t, ValidatePayment(p))

	p.Details["vpa"] = "not a vpa"
	require.Error(t, ValidatePayment(p))
}

func TestValidateNetbankingPayment(t *testing.T) {
	p := PaymentData{
		Method:  PaymentMethodNetbanking,
		Details: map[string]string{"bank": "HDFC"},
	}
	require.NoError(t, ValidatePayment(p))

	p.Details["bank"] = "  "
	require.Error(t, ValidatePayment(p))
}

func TestValidateCODPayment(t *testing.T) {
	require.NoError(t, ValidatePayment(PaymentData{Method: PaymentMethodCOD}))
}

func TestValidateUnknownMethod(t *testing.T) {
	require.Error(t, ValidatePayment(PaymentData{Method: "wallet"}))
}

func TestSurchargeFor(t *testing.T) {
	assert.True(t, SurchargeFor(PaymentMethodCOD).Equal(decimal.NewFromInt(40)))
	assert.True(t, SurchargeFor(PaymentMethodCard).IsZero())
	assert.True(t, SurchargeFor("wallet").IsZero())
}
