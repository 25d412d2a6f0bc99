package fragments

import (
	"fmt"
	"strconv"
)

// Error is the kind of a decoding failure. Each kind is itself an
// error, so that callers can test a [CodecError] with [errors.Is]:
//
//	if errors.Is(err, fragments.ErrTruncated) { ... }
type Error uint8

const (
	// ErrTruncated means the stream ended partway through a field.
	ErrTruncated Error = iota + 1
	// ErrOutOfRange means a read would run past the end of the buffer.
	ErrOutOfRange
	// ErrUnknownVariantTag means a union discriminant named no
	// declared variant.
	ErrUnknownVariantTag
	// ErrInvalidEnumValue means an enum ordinal was not smaller than
	// the enum's variant count.
	ErrInvalidEnumValue
)

func (e Error) Error() string {
	switch e {
	case ErrTruncated:
		return "truncated"
	case ErrOutOfRange:
		return "out of range"
	case ErrUnknownVariantTag:
		return "unknown variant tag"
	case ErrInvalidEnumValue:
		return "invalid enum value"
	default:
		return "unknown error " + strconv.Itoa(int(e))
	}
}

// CodecError is the error returned by decoders.
type CodecError struct {
	// Kind is the failure kind.
	Kind Error
	// Offset is the byte offset of the field that failed to decode.
	Offset int
	// Name is the enum or union involved in an ErrUnknownVariantTag
	// or ErrInvalidEnumValue failure.
	Name string
	// Value is the offending tag or ordinal.
	Value uint32
	// Err is the underlying I/O error of a stream failure, if any.
	Err error
}

func (e *CodecError) Error() string {
	switch e.Kind {
	case ErrUnknownVariantTag, ErrInvalidEnumValue:
		return fmt.Sprintf("bottle: %s %d for %s at offset %d", e.Kind, e.Value, e.Name, e.Offset)
	}
	if e.Err != nil {
		return fmt.Sprintf("bottle: %s at offset %d: %v", e.Kind, e.Offset, e.Err)
	}
	return fmt.Sprintf("bottle: %s at offset %d", e.Kind, e.Offset)
}

func (e *CodecError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// LengthError reports a string that cannot be represented on the
// wire, either because it is longer than the 255 bytes a length
// prefix can describe, or longer than the field's declared limit.
type LengthError struct {
	Field string
	Len   int
	Max   int
}

func (e *LengthError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("bottle: string of %d bytes exceeds limit of %d", e.Len, e.Max)
	}
	return fmt.Sprintf("bottle: %s has %d bytes, limit is %d", e.Field, e.Len, e.Max)
}

// CheckError reports a value that would encode to a message its own
// decoder rejects.
type CheckError struct {
	Field  string
	Reason string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("bottle: %s: %s", e.Field, e.Reason)
}
