// Package iban implements the International Bank Account Number value type:
// normalization of loosely formatted input, ISO 7064 MOD 97-10 validation
// against per-country lengths, and a byte-exact fixed-width codec.
package iban

import (
	"fmt"
	"strings"

	"github.com/vortex-fintech/go-iban/country"
)

// MaxLength is the longest IBAN any country issues.
const MaxLength = 34

// IBAN is a canonical, fixed-capacity IBAN buffer.
//
// Slots [0, Len()) hold content and every slot after it holds the zero byte.
// The zero value is an empty buffer. IBAN values are comparable with ==.
type IBAN struct {
	buf [MaxLength]byte
	n   uint8
}

// Len returns the number of content characters.
func (i IBAN) Len() int { return int(i.n) }

// IsZero reports whether i holds no content.
func (i IBAN) IsZero() bool { return i.n == 0 }

// At returns the slot at pos. Slots past Len() read as zero.
func (i IBAN) At(pos int) (byte, error) {
	if pos < 0 || pos >= MaxLength {
		return 0, fmt.Errorf("%w: %d", ErrIndexOutOfRange, pos)
	}
	return i.buf[pos], nil
}

// Set writes c at pos.
//
// Content bytes must be ASCII alphanumeric (lowercase letters are folded) and
// may overwrite any content slot or append at Len(). Writing the zero byte
// truncates, and is only accepted on the last content slot or past the end.
func (i *IBAN) Set(pos int, c byte) error {
	if pos < 0 || pos >= MaxLength {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, pos)
	}

	n := int(i.n)
	if c == 0 {
		switch {
		case pos >= n:
			return nil
		case pos == n-1:
			i.buf[pos] = 0
			i.n--
			return nil
		default:
			return fmt.Errorf("%w: position %d of %d", ErrGap, pos, n)
		}
	}

	c = toUpperASCII(c)
	if !isAlnum(c) {
		return fmt.Errorf("%w: byte 0x%02x at position %d", ErrNotAnIBAN, c, pos)
	}
	if pos > n {
		return fmt.Errorf("%w: position %d of %d", ErrGap, pos, n)
	}

	i.buf[pos] = c
	if pos == n {
		i.n++
	}
	return nil
}

// SetCountry overwrites the first two slots with c, extending an empty or
// one-character buffer to two characters.
func (i *IBAN) SetCountry(c country.Code) error {
	if !c.Valid() {
		return fmt.Errorf("%w: country code %q", ErrNotAnIBAN, string(c))
	}
	i.buf[0], i.buf[1] = c[0], c[1]
	if i.n < 2 {
		i.n = 2
	}
	return nil
}

// Country returns the first two content characters, or "" when there are
// fewer than two.
func (i IBAN) Country() country.Code {
	if i.n < 2 {
		return ""
	}
	return country.Code(i.buf[:2])
}

// CheckDigits returns characters three and four, or "" when absent.
func (i IBAN) CheckDigits() string {
	if i.n < 4 {
		return ""
	}
	return string(i.buf[2:4])
}

// BBAN returns the basic bank account number that follows the check digits.
func (i IBAN) BBAN() string {
	if i.n <= 4 {
		return ""
	}
	return string(i.buf[4:i.n])
}

// String returns the electronic format: content only, no padding, non-ASCII
// slots dropped.
func (i IBAN) String() string {
	content := i.buf[:i.n]
	for _, c := range content {
		if c >= 0x80 {
			return asciiOnly(content)
		}
	}
	return string(content)
}

// Format returns the paper format, groups of four separated by one space.
func (i IBAN) Format() string {
	s := i.String()
	if len(s) <= 4 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for k := 0; k < len(s); k += 4 {
		if k > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[k:min(k+4, len(s))])
	}
	return b.String()
}

func (i IBAN) GoString() string {
	return fmt.Sprintf("iban.MustParse(%q)", i.String())
}

func asciiOnly(content []byte) string {
	var b strings.Builder
	b.Grow(len(content))
	for _, c := range content {
		if c < 0x80 {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z')
}

func toUpperASCII(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
