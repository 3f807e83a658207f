package validator

var tagMap = map[string]string{
	"required":     "required",
	"omitempty":    "optional",
	"iban":         "invalid_iban",
	"iban_format":  "not_an_iban",
	"iban_country": "unsupported_country",
	"eqfield":      "field_mismatch",
	"nefield":      "field_should_differ",
	"max":          "too_long",
	"min":          "too_short",
	"gt":           "too_small",
	"lt":           "too_large",
	"gte":          "too_small_or_equal",
	"lte":          "too_large_or_equal",
	"len":          "invalid_length",
	"oneof":        "invalid_choice",
	"alphanum":     "only_letters_and_digits_allowed",
	"numeric":      "only_numbers_allowed",
}

func mapTagToCode(tag string) string {
	if code, ok := tagMap[tag]; ok {
		return code
	}
	return "invalid"
}
