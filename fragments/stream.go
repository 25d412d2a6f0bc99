package fragments

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// A StreamDecoder reads the bottle wire format from an io.Reader.
//
// Running out of input before a field is complete fails with
// [ErrTruncated]. The returned error also matches [io.EOF] when the
// stream ended cleanly before the first byte of a message, and
// [io.ErrUnexpectedEOF] when it ended partway through one, even on a
// field boundary. A message starts at offset zero, or at the offset
// of the last call to [StreamDecoder.Begin].
type StreamDecoder struct {
	// Order is the byte order to use when reading multi-byte values.
	// If nil, LittleEndian is used.
	Order ByteOrder
	// In is the input stream.
	In io.Reader

	offset  int
	begin   int
	scratch [MaxString]byte
}

// Offset returns the number of bytes consumed so far.
func (d *StreamDecoder) Offset() int {
	return d.offset
}

// Begin marks the current offset as the start of a message, for
// decoders that read several messages from one stream.
func (d *StreamDecoder) Begin() {
	d.begin = d.offset
}

func (d *StreamDecoder) read(bs []byte) error {
	start := d.offset
	n, err := io.ReadFull(d.In, bs)
	d.offset += n
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF) && start > d.begin:
		return &CodecError{Kind: ErrTruncated, Offset: start, Err: io.ErrUnexpectedEOF}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &CodecError{Kind: ErrTruncated, Offset: start, Err: err}
	default:
		return fmt.Errorf("reading bottle stream at offset %d: %w", start, err)
	}
}

// Read reads n bytes, with no framing.
func (d *StreamDecoder) Read(n int) ([]byte, error) {
	bs := make([]byte, n)
	if err := d.read(bs); err != nil {
		return nil, err
	}
	return bs, nil
}

// Uint8 reads a uint8.
func (d *StreamDecoder) Uint8() (uint8, error) {
	if err := d.read(d.scratch[:1]); err != nil {
		return 0, err
	}
	return d.scratch[0], nil
}

// Uint32 reads a uint32.
func (d *StreamDecoder) Uint32() (uint32, error) {
	if err := d.read(d.scratch[:4]); err != nil {
		return 0, err
	}
	return orderOrDefault(d.Order).Uint32(d.scratch[:4]), nil
}

// Int32 reads an int32.
func (d *StreamDecoder) Int32() (int32, error) {
	u, err := d.Uint32()
	return int32(u), err
}

// Float32 reads an IEEE-754 single precision float.
func (d *StreamDecoder) Float32() (float32, error) {
	u, err := d.Uint32()
	return math.Float32frombits(u), err
}

// String reads a length-prefixed string.
func (d *StreamDecoder) String() (string, error) {
	start := d.offset
	ln, err := d.Uint8()
	if err != nil {
		return "", err
	}
	if err := d.read(d.scratch[:ln]); err != nil {
		var ce *CodecError
		if errors.As(err, &ce) {
			ce.Offset = start
			if errors.Is(ce.Err, io.EOF) {
				ce.Err = io.ErrUnexpectedEOF
			}
		}
		return "", err
	}
	return string(d.scratch[:ln]), nil
}
