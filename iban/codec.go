package iban

import (
	"encoding"
	"errors"
	"fmt"
	"io"

	"github.com/oy3o/codec"
)

const (
	lengthPrefixSize = 8

	// WireSize is the encoded size of an IBAN: a uint64 length prefix that is
	// always MaxLength, followed by MaxLength slots including zero padding.
	WireSize = lengthPrefixSize + MaxLength
)

// The prefix is little-endian regardless of codec.Order.
var wireOrder = codec.LE

var (
	_ encoding.BinaryMarshaler   = IBAN{}
	_ encoding.BinaryUnmarshaler = (*IBAN)(nil)
	_ io.WriterTo                = IBAN{}
	_ io.ReaderFrom              = (*IBAN)(nil)
	_ codec.Sizer                = IBAN{}
)

// BytesUnchecked copies every slot, zero padding included, without looking
// at the content. Slots loaded through FromArray are copied as they are,
// non-ASCII included; use Bytes where that matters.
func (i IBAN) BytesUnchecked() [MaxLength]byte {
	return i.buf
}

// Bytes renders all MaxLength slots as an owned slice. It fails with an error
// wrapping ErrNotAnIBAN if a slot is not ASCII.
func (i IBAN) Bytes() ([]byte, error) {
	for k, c := range i.buf {
		if c >= 0x80 {
			return nil, fmt.Errorf("%w: non-ascii byte 0x%02x at position %d", ErrNotAnIBAN, c, k)
		}
	}
	out := make([]byte, MaxLength)
	copy(out, i.buf[:])
	return out, nil
}

// Size returns the encoded size in bytes.
func (i IBAN) Size() int { return WireSize }

// MarshalBinary encodes i as a single length-prefixed string field.
func (i IBAN) MarshalBinary() ([]byte, error) {
	buf := make([]byte, WireSize)
	wireOrder.PutUint64(buf, MaxLength)
	copy(buf[lengthPrefixSize:], i.buf[:])
	return buf, nil
}

// MarshalTo encodes i into p.
func (i IBAN) MarshalTo(p []byte) (int, error) {
	return codec.MarshalToGeneric(i, p)
}

// WriteTo writes the encoded form to w.
func (i IBAN) WriteTo(w io.Writer) (int64, error) {
	return codec.WriteToGeneric(i, w)
}

// UnmarshalBinary decodes exactly one encoded IBAN. The declared length must
// be MaxLength, no bytes may follow the field, and no padding slot may
// precede content.
func (i *IBAN) UnmarshalBinary(data []byte) error {
	if len(data) < lengthPrefixSize {
		return fmt.Errorf("%w: %d bytes, need a %d byte length prefix", ErrTruncated, len(data), lengthPrefixSize)
	}
	if n := wireOrder.Uint64(data); n != MaxLength {
		return fmt.Errorf("%w: declared field length %d, want %d", ErrWrongSize, n, MaxLength)
	}
	if len(data) < WireSize {
		return fmt.Errorf("%w: have %d of %d bytes", ErrTruncated, len(data), WireSize)
	}
	if len(data) > WireSize {
		return fmt.Errorf("%w: %d extra bytes", ErrTrailingData, len(data)-WireSize)
	}

	var slots [MaxLength]byte
	copy(slots[:], data[lengthPrefixSize:])
	decoded, err := fromSlots(slots)
	if err != nil {
		return err
	}
	*i = decoded
	return nil
}

// ReadFrom reads one encoded IBAN from r and leaves the rest of the stream
// unread. A stream that is already exhausted returns io.EOF; a partial field
// returns ErrTruncated.
func (i *IBAN) ReadFrom(r io.Reader) (int64, error) {
	n, err := codec.ReadFromGeneric(i, io.LimitReader(r, WireSize))
	if n == 0 && errors.Is(err, ErrTruncated) {
		return 0, io.EOF
	}
	return n, err
}

// fromSlots loads decoded slots verbatim, rejecting content after padding.
func fromSlots(a [MaxLength]byte) (IBAN, error) {
	out := FromArray(a)
	for k := out.Len(); k < MaxLength; k++ {
		if a[k] != 0 {
			return IBAN{}, fmt.Errorf("%w: content at position %d after padding at %d", ErrNotAnIBAN, k, out.Len())
		}
	}
	return out, nil
}
