package fragments

import (
	"math"
)

// A Reader is the read side of a transport.
//
// Every method checks that the whole field is available before
// consuming any of it, and returns a [*CodecError] otherwise.
type Reader interface {
	Uint8() (uint8, error)
	Uint32() (uint32, error)
	Int32() (int32, error)
	Float32() (float32, error)
	String() (string, error)
	// Offset returns the number of bytes consumed so far.
	Offset() int
}

// A Decoder reads the bottle wire format from a byte slice.
//
// Before copying the bytes of any field, the decoder verifies that
// the read lies within In. Out of range reads fail with
// [ErrOutOfRange] and leave the read cursor where it was.
type Decoder struct {
	// Order is the byte order to use when reading multi-byte values.
	// If nil, LittleEndian is used.
	Order ByteOrder
	// In is the input buffer.
	In []byte

	offset int
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int {
	return d.offset
}

// Remaining returns the number of bytes not yet consumed.
func (d *Decoder) Remaining() int {
	return len(d.In) - d.offset
}

// Read reads n bytes, with no framing. The returned slice aliases In.
func (d *Decoder) Read(n int) ([]byte, error) {
	if n < 0 || n > d.Remaining() {
		return nil, &CodecError{Kind: ErrOutOfRange, Offset: d.offset}
	}
	ret := d.In[d.offset : d.offset+n]
	d.offset += n
	return ret, nil
}

// Uint8 reads a uint8.
func (d *Decoder) Uint8() (uint8, error) {
	bs, err := d.Read(1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

// Uint32 reads a uint32.
func (d *Decoder) Uint32() (uint32, error) {
	bs, err := d.Read(4)
	if err != nil {
		return 0, err
	}
	return orderOrDefault(d.Order).Uint32(bs), nil
}

// Int32 reads an int32.
func (d *Decoder) Int32() (int32, error) {
	u, err := d.Uint32()
	return int32(u), err
}

// Float32 reads an IEEE-754 single precision float.
func (d *Decoder) Float32() (float32, error) {
	u, err := d.Uint32()
	return math.Float32frombits(u), err
}

// String reads a length-prefixed string. The string contents are not
// validated.
func (d *Decoder) String() (string, error) {
	start := d.offset
	ln, err := d.Uint8()
	if err != nil {
		return "", err
	}
	bs, err := d.Read(int(ln))
	if err != nil {
		d.offset = start
		return "", &CodecError{Kind: ErrOutOfRange, Offset: start}
	}
	return string(bs), nil
}
