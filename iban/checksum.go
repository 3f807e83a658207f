package iban

import (
	"fmt"

	"github.com/vortex-fintech/go-iban/country"
)

// chunkDigits keeps r*10^9 + chunk well inside uint64 while r < 97.
const chunkDigits = 9

// IsValid reports whether i passes the country length rule and the
// MOD 97-10 checksum.
func (i IBAN) IsValid() bool {
	return i.Validate() == nil
}

// Validate returns nil for a valid IBAN, otherwise one of ErrTooShort,
// ErrUnknownCountry, ErrLengthMismatch, ErrNotAnIBAN or ErrChecksum.
func (i IBAN) Validate() error {
	n := int(i.n)
	if n < 4 {
		return ErrTooShort
	}

	code := country.Code(i.buf[:2])
	want, ok := code.IBANLength()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCountry, string(code))
	}
	if want != n {
		return fmt.Errorf("%w: %s wants %d characters, got %d", ErrLengthMismatch, code, want, n)
	}

	var rearranged [MaxLength]byte
	k := copy(rearranged[:], i.buf[4:n])
	copy(rearranged[k:], i.buf[:4])

	r, ok := mod97(rearranged[:n])
	if !ok {
		return fmt.Errorf("%w: character outside [0-9A-Z]", ErrNotAnIBAN)
	}
	if r != 1 {
		return ErrChecksum
	}
	return nil
}

// mod97 maps s to its decimal digit string (A=10 ... Z=35) and reduces it
// modulo 97 in chunks of at most chunkDigits digits. It reports false when s
// holds a character outside [0-9A-Z].
func mod97(s []byte) (uint64, bool) {
	var digits [2 * MaxLength]byte
	n := 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits[n] = c
			n++
		case c >= 'A' && c <= 'Z':
			v := c - 'A' + 10
			digits[n] = '0' + v/10
			digits[n+1] = '0' + v%10
			n += 2
		default:
			return 0, false
		}
	}

	var r uint64
	for start := 0; start < n; start += chunkDigits {
		end := min(start+chunkDigits, n)
		var part, scale uint64 = 0, 1
		for _, d := range digits[start:end] {
			part = part*10 + uint64(d-'0')
			scale *= 10
		}
		r = (r*scale + part) % 97
	}
	return r, true
}
