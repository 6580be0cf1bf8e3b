package validate

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// New returns a validator that understands decimal.Decimal fields and the
// "price" tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(PriceValue, decimal.Decimal{})
	_ = v.RegisterValidation("price", ValidatePrice)
	return v
}

// ValidatePrice accepts zero so free experiences can be listed.
func ValidatePrice(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}
	return !d.IsNegative()
}

func PriceValue(v reflect.Value) interface{} {
	n, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	return n.String()
}
