package errors

import (
	"fmt"
	"strings"

	play "github.com/go-playground/validator/v10"
)

// FromPlayground adapts go-playground/validator errors to InvalidArgument
// with one violation per failed field. Field paths drop the root struct name.
func FromPlayground(err play.ValidationErrors, tagToReason map[string]string) ErrorResponse {
	violations := make([]FieldViolation, 0, len(err))
	for _, fe := range err {
		tag := fe.Tag()
		reason := tagToReason[tag]
		if reason == "" {
			reason = "invalid"
		}

		field := fe.Field()
		if ns := fe.Namespace(); ns != "" {
			if i := strings.Index(ns, "."); i >= 0 && i+1 < len(ns) {
				field = ns[i+1:]
			}
		}

		violations = append(violations, FieldViolation{
			Field:       field,
			Reason:      reason,
			Description: fmt.Sprintf("%s validation failed (%s)", field, tag),
		})
	}
	return ValidationViolations(violations)
}
