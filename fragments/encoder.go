package fragments

import (
	"io"
	"math"
)

// MaxString is the longest string, in bytes, that fits behind the
// one byte length prefix.
const MaxString = 255

// A Writer is the write side of a transport.
//
// Writes are unconditional: a Writer either stores every byte or
// records a failure of its own (see [StreamEncoder.Err]).
type Writer interface {
	Uint8(uint8)
	Uint32(uint32)
	Int32(int32)
	Float32(float32)
	String(string)
}

// An Encoder writes the bottle wire format into a byte slice.
//
// Out should be allocated with enough capacity for the whole message,
// as computed by a size pass, so that encoding never reallocates.
type Encoder struct {
	// Order is the byte order to use when encoding multi-byte
	// values. If nil, LittleEndian is used.
	Order ByteOrder
	// Out is the encoded output.
	Out []byte
}

// Write writes bs as-is to the output.
func (e *Encoder) Write(bs []byte) {
	e.Out = append(e.Out, bs...)
}

// Uint8 writes a uint8. Union discriminants are written with Uint8.
func (e *Encoder) Uint8(u8 uint8) {
	e.Out = append(e.Out, u8)
}

// Uint32 writes a uint32. Enum ordinals are written with Uint32.
func (e *Encoder) Uint32(u32 uint32) {
	e.Out = orderOrDefault(e.Order).AppendUint32(e.Out, u32)
}

// Int32 writes an int32 in two's complement.
func (e *Encoder) Int32(i32 int32) {
	e.Uint32(uint32(i32))
}

// Float32 writes an IEEE-754 single precision float.
func (e *Encoder) Float32(f float32) {
	e.Uint32(math.Float32bits(f))
}

// String writes a one byte length prefix followed by the bytes of s.
//
// String panics with a [*LengthError] if s is longer than
// [MaxString]. Use [CheckString] to reject such values before
// encoding.
func (e *Encoder) String(s string) {
	if len(s) > MaxString {
		panic(&LengthError{Len: len(s), Max: MaxString})
	}
	e.Out = append(e.Out, uint8(len(s)))
	e.Out = append(e.Out, s...)
}

// A StreamEncoder writes the bottle wire format to an io.Writer.
//
// Writes are unconditional. The first error returned by Out is
// recorded and reported by [StreamEncoder.Err]; after a failure,
// further writes are discarded.
type StreamEncoder struct {
	// Order is the byte order to use when encoding multi-byte
	// values. If nil, LittleEndian is used.
	Order ByteOrder
	// Out is the output sink.
	Out io.Writer

	scratch [4]byte
	n       int64
	err     error
}

// Err returns the first error reported by the output sink.
func (e *StreamEncoder) Err() error {
	return e.err
}

// Written returns the number of bytes accepted by the output sink.
func (e *StreamEncoder) Written() int64 {
	return e.n
}

// Write writes bs as-is to the output.
func (e *StreamEncoder) Write(bs []byte) {
	if e.err != nil {
		return
	}
	n, err := e.Out.Write(bs)
	e.n += int64(n)
	e.err = err
}

// Uint8 writes a uint8.
func (e *StreamEncoder) Uint8(u8 uint8) {
	e.scratch[0] = u8
	e.Write(e.scratch[:1])
}

// Uint32 writes a uint32.
func (e *StreamEncoder) Uint32(u32 uint32) {
	orderOrDefault(e.Order).PutUint32(e.scratch[:], u32)
	e.Write(e.scratch[:4])
}

// Int32 writes an int32 in two's complement.
func (e *StreamEncoder) Int32(i32 int32) {
	e.Uint32(uint32(i32))
}

// Float32 writes an IEEE-754 single precision float.
func (e *StreamEncoder) Float32(f float32) {
	e.Uint32(math.Float32bits(f))
}

// String writes a one byte length prefix followed by the bytes of
// s. Like [Encoder.String], it panics if s is longer than
// [MaxString].
func (e *StreamEncoder) String(s string) {
	if len(s) > MaxString {
		panic(&LengthError{Len: len(s), Max: MaxString})
	}
	e.Uint8(uint8(len(s)))
	if e.err != nil || len(s) == 0 {
		return
	}
	n, err := io.WriteString(e.Out, s)
	e.n += int64(n)
	e.err = err
}
