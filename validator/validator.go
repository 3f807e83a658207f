package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vortex-fintech/go-iban/errors"
	"github.com/vortex-fintech/go-iban/iban"
)

var v *validator.Validate

func init() {
	v = validator.New()

	// iban.IBAN fields validate through their electronic format.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if i, ok := field.Interface().(iban.IBAN); ok {
			return i.String()
		}
		return nil
	}, iban.IBAN{})

	mustRegister("iban", validIBAN)
	mustRegister("iban_format", wellFormedIBAN)
	mustRegister("iban_country", supportedIBANCountry)
}

func mustRegister(tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func Instance() *validator.Validate {
	return v
}

// Validate returns failed fields mapped to reason codes, or nil. Nested
// fields are keyed by their path without the root struct name.
func Validate(i any) map[string]string {
	if err := v.Struct(i); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			out := make(map[string]string, len(errs))
			for _, e := range errs {
				out[fieldPath(e)] = mapTagToCode(e.Tag())
			}
			return out
		}
		return map[string]string{"_error": "validation_failed"}
	}
	return nil
}

// Check is Validate with the result rendered as an InvalidArgument error.
func Check(i any) error {
	err := v.Struct(i)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok {
		return errors.FromPlayground(errs, tagMap)
	}
	return errors.InvalidArgument().WithReason("validation_failed")
}

func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 && i+1 < len(ns) {
		return ns[i+1:]
	}
	return e.Field()
}

func validIBAN(fl validator.FieldLevel) bool {
	i, ok := parseField(fl)
	return ok && i.IsValid()
}

func wellFormedIBAN(fl validator.FieldLevel) bool {
	_, ok := parseField(fl)
	return ok
}

func supportedIBANCountry(fl validator.FieldLevel) bool {
	i, ok := parseField(fl)
	return ok && i.Country().Supported()
}

func parseField(fl validator.FieldLevel) (iban.IBAN, bool) {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return iban.IBAN{}, false
	}
	i, err := iban.Parse(f.String())
	return i, err == nil
}
