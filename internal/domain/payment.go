package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/07chouthri/flowerschool-storefront/pkg/errors"
)

// Supported payment methods.
const (
	PaymentMethodCard       = "card"
	PaymentMethodUPI        = "upi"
	PaymentMethodNetbanking = "netbanking"
	PaymentMethodCOD        = "cod"
)

// PaymentData is the payment selection on a session. Details carries
// method-specific fields (card number, VPA, bank code) keyed by name.
type PaymentData struct {
	Method  string            `json:"method"`
	Details map[string]string `json:"details,omitempty"`
}

type paymentMethod struct {
	validate  func(PaymentData) error
	surcharge decimal.Decimal
}

var (
	cardNumberPattern = regexp.MustCompile(`^\d{13,19}$`)
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCVVPattern    = regexp.MustCompile(`^\d{3,4}$`)
	upiVPAPattern     = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z]+$`)
)

// codSurcharge is the handling fee collected on cash-on-delivery orders.
var codSurcharge = decimal.NewFromInt(40)

var paymentMethods = map[string]paymentMethod{
	PaymentMethodCard: {
		validate: func(p PaymentData) error {
			number := strings.ReplaceAll(p.Details["card_number"], " ", "")
			if !cardNumberPattern.MatchString(number) {
				return apperrors.InvalidInput("card number must be 13 to 19 digits")
			}
			if !cardExpiryPattern.MatchString(p.Details["expiry"]) {
				return apperrors.InvalidInput("card expiry must be in MM/YY format")
			}
			if !cardCVVPattern.MatchString(p.Details["cvv"]) {
				return apperrors.InvalidInput("card cvv must be 3 or 4 digits")
			}
			return nil
		},
		surcharge: decimal.Zero,
	},
	PaymentMethodUPI: {
		validate: func(p PaymentData) error {
			if !upiVPAPattern.MatchString(p.Details["vpa"]) {
				return apperrors.InvalidInput("upi id must look like name@bank")
			}
			return nil
		},
		surcharge: decimal.Zero,
	},
	PaymentMethodNetbanking: {
		validate: func(p PaymentData) error {
			if strings.TrimSpace(p.Details["bank"]) == "" {
				return apperrors.InvalidInput("bank is required for netbanking")
			}
			return nil
		},
		surcharge: decimal.Zero,
	},
	PaymentMethodCOD: {
		validate:  func(PaymentData) error { return nil },
		surcharge: codSurcharge,
	},
}

// ValidPaymentMethod reports whether the method name is supported.
func ValidPaymentMethod(method string) bool {
	_, ok := paymentMethods[method]
	return ok
}

// ValidatePayment checks the payment selection against its method's
// rules. An unknown method is rejected.
func ValidatePayment(p PaymentData) error {
	method, ok := paymentMethods[p.Method]
	if !ok {
		return apperrors.InvalidInput("unsupported payment method: " + p.Method)
	}
	return method.validate(p)
}

// SurchargeFor returns the per-method payment charge. Unknown methods
// carry no surcharge; they are rejected at validation instead.
func SurchargeFor(method string) decimal.Decimal {
	if m, ok := paymentMethods[method]; ok {
		return m.surcharge
	}
	return decimal.Zero
}
