package logutil

import (
	"maps"
	"strings"
	"unicode"

	"github.com/vortex-fintech/go-iban/piiutil"
)

// Masker rewrites the value of a sensitive field.
type Masker func(value string) string

var defaultSensitiveTokens = map[string]struct{}{
	"iban":    {},
	"bban":    {},
	"account": {},
	"routing": {},
	"swift":   {},
	"bic":     {},
	"input":   {},
	"secret":  {},
	"token":   {},
}

// SanitizeValidationErrors replaces values of sensitive fields with
// replacement ("[REDACTED]" when empty). Development and debug environments
// get an unmodified copy.
func SanitizeValidationErrors(
	fields map[string]string,
	env string,
	replacement string,
	sensitiveKeys ...string,
) map[string]string {
	return sanitize(fields, env, constant(replacement), false, sensitiveKeys...)
}

// SanitizeValidationErrorsStrict always redacts, regardless of environment.
func SanitizeValidationErrorsStrict(
	fields map[string]string,
	replacement string,
	sensitiveKeys ...string,
) map[string]string {
	return sanitize(fields, "", constant(replacement), true, sensitiveKeys...)
}

// MaskAccountFields always masks sensitive values with piiutil.MaskIBAN, so
// the country code and last characters stay readable in logs.
func MaskAccountFields(fields map[string]string, sensitiveKeys ...string) map[string]string {
	return sanitize(fields, "", piiutil.MaskIBAN, true, sensitiveKeys...)
}

func constant(replacement string) Masker {
	if replacement == "" {
		replacement = "[REDACTED]"
	}
	return func(string) string { return replacement }
}

func sanitize(
	fields map[string]string,
	env string,
	mask Masker,
	forceRedact bool,
	sensitiveKeys ...string,
) map[string]string {
	if fields == nil {
		return nil
	}

	e := strings.ToLower(strings.TrimSpace(env))
	if !forceRedact && (e == "development" || e == "debug") {
		out := make(map[string]string, len(fields))
		maps.Copy(out, fields)
		return out
	}

	sensExact := map[string]struct{}{}
	sensTokens := map[string]struct{}{}
	for _, k := range sensitiveKeys {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		sensExact[k] = struct{}{}
		for _, tok := range tokenizeKey(k) {
			sensTokens[tok] = struct{}{}
		}
	}

	out := make(map[string]string, len(fields))
	for field, value := range fields {
		if isSensitiveField(field, sensExact, sensTokens) {
			out[field] = mask(value)
		} else {
			out[field] = value
		}
	}
	return out
}

func isSensitiveField(field string, sensExact, sensTokens map[string]struct{}) bool {
	fieldNorm := strings.ToLower(strings.TrimSpace(field))
	if fieldNorm == "" {
		return false
	}
	if _, ok := sensExact[fieldNorm]; ok {
		return true
	}

	for _, tok := range tokenizeKey(field) {
		if _, ok := defaultSensitiveTokens[tok]; ok {
			return true
		}
		if _, ok := sensTokens[tok]; ok {
			return true
		}
	}
	return false
}

// tokenizeKey splits camelCase, snake_case, dotted and dashed keys into
// lowercase tokens: "payeeIBAN" -> [payee iban], "payee.iban_raw" -> [payee iban raw].
func tokenizeKey(s string) []string {
	if s == "" {
		return nil
	}

	var b strings.Builder
	b.Grow(len(s) + 4)

	var prevLowerOrDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if unicode.IsUpper(r) && prevLowerOrDigit {
				b.WriteByte(' ')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLowerOrDigit = unicode.IsLower(r) || unicode.IsDigit(r)
		default:
			b.WriteByte(' ')
			prevLowerOrDigit = false
		}
	}

	return strings.Fields(b.String())
}
