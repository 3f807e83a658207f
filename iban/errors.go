package iban

import (
	"errors"

	"github.com/oy3o/codec"
)

var (
	// ErrNotAnIBAN indicates a character outside the IBAN alphabet, or a
	// non-ASCII slot found while rendering checked bytes.
	ErrNotAnIBAN = errors.New("iban: input cannot be converted into an iban")

	// ErrWrongSize indicates more than MaxLength characters, or a wire field
	// whose declared length is not MaxLength.
	ErrWrongSize = errors.New("iban: input is too long or too short to be an iban")

	// ErrTruncated indicates that a wire payload ended before the declared
	// field. It is codec.ErrTruncatedData, so either sentinel matches.
	ErrTruncated = codec.ErrTruncatedData

	// ErrTrailingData indicates bytes left over after the wire field. It is
	// codec.ErrTrailingData.
	ErrTrailingData = codec.ErrTrailingData

	// ErrIndexOutOfRange indicates an accessor position outside [0, MaxLength).
	ErrIndexOutOfRange = errors.New("iban: index out of range")

	// ErrGap indicates a write that would leave padding in front of content.
	ErrGap = errors.New("iban: padding cannot precede content")
)

// Validation outcomes returned by Validate.
var (
	ErrTooShort       = errors.New("iban: too short to carry a country code and check digits")
	ErrUnknownCountry = errors.New("iban: unknown country code")
	ErrLengthMismatch = errors.New("iban: length does not match the country")
	ErrChecksum       = errors.New("iban: checksum mismatch")
)

// Reason maps err to a stable machine-readable code. Errors that do not
// originate from this package map to "invalid".
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotAnIBAN):
		return "not_an_iban"
	case errors.Is(err, ErrWrongSize):
		return "wrong_iban_size"
	case errors.Is(err, ErrTruncated):
		return "truncated"
	case errors.Is(err, ErrTrailingData):
		return "trailing_data"
	case errors.Is(err, ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, ErrGap):
		return "gap"
	case errors.Is(err, ErrTooShort):
		return "too_short"
	case errors.Is(err, ErrUnknownCountry):
		return "unknown_country"
	case errors.Is(err, ErrLengthMismatch):
		return "length_mismatch"
	case errors.Is(err, ErrChecksum):
		return "invalid_checksum"
	default:
		return "invalid"
	}
}
