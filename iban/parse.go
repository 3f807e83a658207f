package iban

import (
	"fmt"
	"strings"

	"github.com/vortex-fintech/go-iban/country"
)

// Parse normalizes loosely formatted text into an IBAN.
//
// Every ASCII space is removed and letters are uppercased. The result must
// be at most MaxLength bytes (ErrWrongSize) of [0-9A-Z] (ErrNotAnIBAN).
// Parse does not check the checksum; see Validate.
func Parse(s string) (IBAN, error) {
	norm, err := normalizeText(s, MaxLength)
	if err != nil {
		return IBAN{}, err
	}

	var out IBAN
	copy(out.buf[:], norm)
	out.n = uint8(len(norm))
	return out, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) IBAN {
	i, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return i
}

// FromBytes loads pre-normalized bytes verbatim, without case or space
// folding.
//
// Every byte must be ASCII. A zero byte starts the padding and must only be
// followed by zero bytes, so the output of BytesUnchecked is accepted.
func FromBytes(b []byte) (IBAN, error) {
	if len(b) > MaxLength {
		return IBAN{}, fmt.Errorf("%w: %d bytes", ErrWrongSize, len(b))
	}

	var out IBAN
	n := len(b)
	for k, c := range b {
		if c >= 0x80 {
			return IBAN{}, fmt.Errorf("%w: non-ascii byte at position %d", ErrNotAnIBAN, k)
		}
		if c == 0 {
			if n == len(b) {
				n = k
			}
			continue
		}
		if n != len(b) {
			return IBAN{}, fmt.Errorf("%w: content at position %d after padding at %d", ErrNotAnIBAN, k, n)
		}
		out.buf[k] = c
	}
	out.n = uint8(n)
	return out, nil
}

// FromArray adopts a complete slot array without validation. Content ends
// at the first zero byte; anything after it is discarded.
func FromArray(a [MaxLength]byte) IBAN {
	var out IBAN
	for k, c := range a {
		if c == 0 {
			break
		}
		out.buf[k] = c
		out.n++
	}
	return out
}

// New assembles an IBAN from a country code and a BBAN, computing the check
// digits. The BBAN is normalized like Parse input.
func New(c country.Code, bban string) (IBAN, error) {
	digits, err := ComputeCheckDigits(c, bban)
	if err != nil {
		return IBAN{}, err
	}
	norm, _ := normalizeText(bban, MaxLength-4)
	return Parse(string(c) + digits + norm)
}

// ComputeCheckDigits returns the two MOD 97-10 check digits for c and bban.
func ComputeCheckDigits(c country.Code, bban string) (string, error) {
	if !c.Valid() {
		return "", fmt.Errorf("%w: country code %q", ErrNotAnIBAN, string(c))
	}
	norm, err := normalizeText(bban, MaxLength-4)
	if err != nil {
		return "", err
	}

	var scratch [MaxLength]byte
	k := copy(scratch[:], norm)
	k += copy(scratch[k:], string(c))
	k += copy(scratch[k:], "00")

	r, ok := mod97(scratch[:k])
	if !ok {
		return "", ErrNotAnIBAN
	}
	return fmt.Sprintf("%02d", 98-r), nil
}

func normalizeText(s string, limit int) (string, error) {
	norm := strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	if len(norm) > limit {
		return "", fmt.Errorf("%w: %d characters", ErrWrongSize, len(norm))
	}
	for k := 0; k < len(norm); k++ {
		if !isAlnum(norm[k]) {
			return "", fmt.Errorf("%w: unexpected character at position %d", ErrNotAnIBAN, k)
		}
	}
	return norm, nil
}
