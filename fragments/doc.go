// Package fragments provides the low-level encoding and decoding
// primitives of the bottle wire format.
//
// The encoders and decoders know nothing about schemas. Code
// generated by bottle, and the dynamic codec in package bottle, drive
// them field by field in declaration order.
//
// Two transports are provided. [Encoder] and [Decoder] work on an
// in-memory buffer: the decoder checks every read against the end of
// the buffer and fails with [ErrOutOfRange] without reading.
// [StreamEncoder] and [StreamDecoder] work on an [io.Writer] and
// [io.Reader]: reaching the end of the stream partway through a field
// fails with [ErrTruncated], and no partial value is returned.
package fragments
