package country

import (
	"sort"
	"strings"
)

// Code is an ISO 3166-1 alpha-2 style country code as it appears in the first
// two characters of an IBAN.
//
// Codes outside the IBAN length table are representable: the type does not
// claim the code is assigned, only that it is two uppercase ASCII letters.
type Code string

// Parse trims and uppercases an ASCII two-letter code.
//
// Validation is format-only and does not consult the IBAN length table.
func Parse(code string) (Code, bool) {
	c := strings.TrimSpace(code)
	if len(c) != 2 {
		return "", false
	}

	b0, b1 := c[0], c[1]
	if !isASCIILetter(b0) || !isASCIILetter(b1) {
		return "", false
	}

	return Code([]byte{toUpperASCII(b0), toUpperASCII(b1)}), true
}

// Valid reports whether c is two uppercase ASCII letters.
func (c Code) Valid() bool {
	return len(c) == 2 && isUpperASCII(c[0]) && isUpperASCII(c[1])
}

// IBANLength returns the mandatory total IBAN length for c.
func (c Code) IBANLength() (int, bool) {
	n, ok := ibanLengths[c]
	return n, ok
}

// Supported reports whether c has an entry in the IBAN length table.
func (c Code) Supported() bool {
	_, ok := ibanLengths[c]
	return ok
}

func (c Code) String() string { return string(c) }

// IBANLength looks up the raw two-character key without normalization.
func IBANLength(code string) (int, bool) {
	return Code(code).IBANLength()
}

// Known returns every code of the IBAN length table in lexical order.
func Known() []Code {
	out := make([]Code, 0, len(ibanLengths))
	for c := range ibanLengths {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isUpperASCII(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func toUpperASCII(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
