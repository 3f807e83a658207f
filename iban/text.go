package iban

import "encoding"

var (
	_ encoding.TextMarshaler   = IBAN{}
	_ encoding.TextUnmarshaler = (*IBAN)(nil)
)

// MarshalText returns the electronic format, so JSON renders a plain string.
func (i IBAN) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText parses text with the same rules as Parse.
func (i *IBAN) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
