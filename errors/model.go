package errors

import (
	"encoding/json"
	"sort"

	"google.golang.org/grpc/codes"
)

// Domain is the ErrorInfo domain reported for errors built by this package.
const Domain = "iban"

// Reason is a stable machine-readable code.
type Reason string

type FieldViolation struct {
	Field       string `json:"field"`
	Reason      string `json:"reason,omitempty"`
	Description string `json:"description,omitempty"`
}

// ErrorResponse is a transport-agnostic error body. It never carries raw
// account numbers; details and violations hold field names and reasons only.
type ErrorResponse struct {
	Code       codes.Code        `json:"code"`
	Reason     Reason            `json:"reason,omitempty"`
	Domain     string            `json:"domain,omitempty"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	Violations []FieldViolation  `json:"violations,omitempty"`
}

func New(message string, code codes.Code, details map[string]string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message, Details: cloneDetails(details)}
}

func (e ErrorResponse) WithReason(r string) ErrorResponse { e.Reason = Reason(r); return e }
func (e ErrorResponse) WithDomain(d string) ErrorResponse { e.Domain = d; return e }

// WithDetail and WithDetails copy on write so a preset can be shared.
func (e ErrorResponse) WithDetail(k, v string) ErrorResponse {
	return e.WithDetails(map[string]string{k: v})
}

func (e ErrorResponse) WithDetails(m map[string]string) ErrorResponse {
	if len(m) == 0 {
		return e
	}
	details := make(map[string]string, len(e.Details)+len(m))
	for k, v := range e.Details {
		details[k] = v
	}
	for k, v := range m {
		details[k] = v
	}
	e.Details = details
	return e
}

func (e ErrorResponse) WithViolations(v []FieldViolation) ErrorResponse {
	if len(v) == 0 {
		return e
	}
	e.Violations = append([]FieldViolation(nil), v...)
	return e
}

// wireResponse renders Code by name.
type wireResponse struct {
	Code       string            `json:"code"`
	Reason     Reason            `json:"reason,omitempty"`
	Domain     string            `json:"domain,omitempty"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	Violations []FieldViolation  `json:"violations,omitempty"`
}

func (e ErrorResponse) wire() wireResponse {
	return wireResponse{
		Code:       e.Code.String(),
		Reason:     e.Reason,
		Domain:     e.Domain,
		Message:    e.Message,
		Details:    e.Details,
		Violations: e.Violations,
	}
}

func (e ErrorResponse) ToString() string {
	b, _ := json.Marshal(e.wire())
	return string(b)
}

func (e ErrorResponse) Error() string { return e.ToString() }

// MarshalJSON uses the same body as ToString and ToHTTP.
func (e ErrorResponse) MarshalJSON() ([]byte, error) { return json.Marshal(e.wire()) }

// ViolationsFromMap returns violations ordered by field name.
func ViolationsFromMap(m map[string]string) []FieldViolation {
	if len(m) == 0 {
		return nil
	}
	out := make([]FieldViolation, 0, len(m))
	for f, r := range m {
		out = append(out, FieldViolation{Field: f, Reason: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

func cloneDetails(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
