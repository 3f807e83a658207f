package errors

import "google.golang.org/grpc/codes"

func Unknown() ErrorResponse {
	return New("Unknown error occurred", codes.Unknown, nil).WithReason("unknown")
}
func InvalidArgument() ErrorResponse {
	return New("Invalid argument", codes.InvalidArgument, nil).WithReason("invalid_argument")
}
func Canceled() ErrorResponse {
	return New("Request canceled", codes.Canceled, nil).WithReason("canceled")
}
func DeadlineExceeded() ErrorResponse {
	return New("Deadline exceeded", codes.DeadlineExceeded, nil).WithReason("deadline_exceeded")
}
func Internal() ErrorResponse {
	return New("Internal error", codes.Internal, nil).WithReason("internal")
}

// InvalidIBAN is the preset for any rejected account number.
func InvalidIBAN() ErrorResponse {
	return New("Invalid IBAN", codes.InvalidArgument, nil).WithReason("validation_failed").WithDomain(Domain)
}

func ValidationFields(fields map[string]string) ErrorResponse {
	return InvalidArgument().WithReason("validation_failed").WithDetails(fields).WithViolations(ViolationsFromMap(fields))
}

func ValidationViolations(v []FieldViolation) ErrorResponse {
	return InvalidArgument().WithReason("validation_failed").WithViolations(v)
}
