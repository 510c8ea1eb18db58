package validator

import (
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Quantity int    `validate:"gte=1,lte=99"`
	Kind     string `validate:"oneof=Home Office Other"`
}

func validSample() sampleInput {
	return sampleInput{Name: "Rosy", Email: "rosy@example.com", Quantity: 2, Kind: "Home"}
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(validSample()))
}

func TestValidate_MissingRequired(t *testing.T) {
	in := validSample()
	in.Name = ""

	err := Validate(in)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "is required", valErr.Fields()["Name"])
}

func TestValidate_QuantityBounds(t *testing.T) {
	in := validSample()
	in.Quantity = 100

	err := Validate(in)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["Quantity"], "less than or equal to 99")
}

func TestValidate_OneOf(t *testing.T) {
	in := validSample()
	in.Kind = "Warehouse"

	err := Validate(in)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["Kind"], "must be one of")
}

func TestValidationError_ErrorJoinsFields(t *testing.T) {
	err := Validate(sampleInput{})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Error(), "field 'Name'")
}

func TestRegister_CustomRule(t *testing.T) {
	require.NoError(t, Register("evenlen", func(fl govalidator.FieldLevel) bool {
		return len(fl.Field().String())%2 == 0
	}))

	type custom struct {
		Code string `validate:"evenlen"`
	}

	assert.NoError(t, Validate(custom{Code: "ab"}))

	err := Validate(custom{Code: "abc"})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["Code"], "evenlen")
}
