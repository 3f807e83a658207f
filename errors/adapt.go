package errors

import (
	"context"
	"errors"

	"github.com/vortex-fintech/go-iban/iban"
)

// DefaultField names the violation produced by ToErrorResponse for IBAN errors.
const DefaultField = "iban"

// FromIBAN maps an error returned by package iban to InvalidArgument with a
// single field violation. Non-IBAN errors go through ToErrorResponse.
func FromIBAN(field string, err error) ErrorResponse {
	reason := iban.Reason(err)
	if reason == "" || reason == "invalid" {
		return ToErrorResponse(err)
	}
	if field == "" {
		field = DefaultField
	}
	return InvalidIBAN().
		WithDetail(field, reason).
		WithViolations([]FieldViolation{{
			Field:       field,
			Reason:      reason,
			Description: err.Error(),
		}})
}

// ToErrorResponse converts any error into ErrorResponse (transport-agnostic).
// Supported inputs:
// - ErrorResponse / *ErrorResponse (direct passthrough)
// - context.Canceled / context.DeadlineExceeded
// - errors from package iban
func ToErrorResponse(err error) ErrorResponse {
	if err == nil {
		return Internal().WithReason("unexpected_error")
	}

	if errors.Is(err, context.Canceled) {
		return Canceled()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return DeadlineExceeded()
	}

	var e ErrorResponse
	if errors.As(err, &e) {
		return e
	}
	var ep *ErrorResponse
	if errors.As(err, &ep) && ep != nil {
		return *ep
	}

	if r := iban.Reason(err); r != "invalid" {
		return FromIBAN(DefaultField, err)
	}
	return Internal().WithReason("unexpected_error")
}
