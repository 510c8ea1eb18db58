package domain

import (
	"strings"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/07chouthri/flowerschool-storefront/pkg/validator"
)

// Address types accepted on a shipping address.
const (
	AddressTypeHome   = "Home"
	AddressTypeOffice = "Office"
	AddressTypeOther  = "Other"
)

// Address is a delivery address. PostalCode must fall inside the
// serviceable pincode list; everything else is shape validation.
type Address struct {
	ID           string `json:"id,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	FullName     string `json:"full_name" validate:"required,min=2,max=100"`
	Phone        string `json:"phone" validate:"required,numeric,min=10,max=12"`
	Email        string `json:"email" validate:"required,email"`
	AddressLine1 string `json:"address_line1" validate:"required,min=5,max=200"`
	AddressLine2 string `json:"address_line2,omitempty" validate:"omitempty,max=200"`
	Landmark     string `json:"landmark,omitempty" validate:"omitempty,max=100"`
	City         string `json:"city" validate:"required,min=2,max=50"`
	State        string `json:"state" validate:"required,min=2,max=50"`
	PostalCode   string `json:"postal_code" validate:"required,len=6,numeric,pincode"`
	Country      string `json:"country" validate:"required"`
	AddressType  string `json:"address_type" validate:"required,oneof=Home Office Other"`
	IsDefault    bool   `json:"is_default"`
}

// Validate runs the struct tags and returns field-level errors.
func (a *Address) Validate() error {
	return validator.Validate(a)
}

// serviceablePincodes is the delivery coverage area. Orders outside it
// are refused at address validation rather than at order placement.
var serviceablePincodes = map[string]struct{}{
	"560001": {}, "560002": {}, "560003": {}, "560004": {}, "560005": {},
	"560006": {}, "560007": {}, "560008": {}, "560009": {}, "560010": {},
	"560011": {}, "560012": {}, "560017": {}, "560018": {}, "560020": {},
	"560021": {}, "560025": {}, "560027": {}, "560030": {}, "560032": {},
	"560033": {}, "560034": {}, "560038": {}, "560040": {}, "560041": {},
	"560042": {}, "560043": {}, "560046": {}, "560047": {}, "560066": {},
	"560068": {}, "560071": {}, "560075": {}, "560076": {}, "560078": {},
	"560085": {}, "560095": {}, "560102": {}, "560103": {},
}

// SetServiceablePincodes replaces the coverage list, typically from
// configuration at startup. Blank entries are skipped; a list with no
// usable codes leaves the built-in coverage untouched.
func SetServiceablePincodes(codes []string) {
	next := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code != "" {
			next[code] = struct{}{}
		}
	}
	if len(next) == 0 {
		return
	}
	serviceablePincodes = next
}

// PincodeServiceable reports whether deliveries cover the postal code.
func PincodeServiceable(code string) bool {
	_, ok := serviceablePincodes[code]
	return ok
}

func init() {
	// Registration only fails for a blank tag.
	_ = validator.Register("pincode", func(fl govalidator.FieldLevel) bool {
		return PincodeServiceable(fl.Field().String())
	})
}
