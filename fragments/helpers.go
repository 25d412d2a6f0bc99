package fragments

import (
	"fmt"
)

// Enum reads an enum ordinal of the enum name, which has n variants.
// Ordinals of n or more fail with [ErrInvalidEnumValue].
func Enum[E ~uint32](r Reader, name string, n uint32) (E, error) {
	at := r.Offset()
	v, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	if v >= n {
		return 0, &CodecError{Kind: ErrInvalidEnumValue, Offset: at, Name: name, Value: v}
	}
	return E(v), nil
}

// Variant reads the discriminant of the union carried by block, which
// declares n variants. The discriminant is the position of the
// variant in the union's declaration order; values of n or more fail
// with [ErrUnknownVariantTag].
func Variant(r Reader, block string, n int) (int, error) {
	at := r.Offset()
	tag, err := r.Uint8()
	if err != nil {
		return 0, err
	}
	if int(tag) >= n {
		return 0, &CodecError{Kind: ErrUnknownVariantTag, Offset: at, Name: block, Value: uint32(tag)}
	}
	return int(tag), nil
}

// CheckString reports whether s fits in field. max is the declared
// length limit of the field, or 0 for the wire format's limit of
// [MaxString].
func CheckString(field, s string, max int) error {
	if max <= 0 || max > MaxString {
		max = MaxString
	}
	if len(s) > max {
		return &LengthError{Field: field, Len: len(s), Max: max}
	}
	return nil
}

// CheckEnum reports whether ordinal is a valid value for an enum
// field with n variants.
func CheckEnum(field string, ordinal, n uint32) error {
	if ordinal >= n {
		return &CheckError{Field: field, Reason: fmt.Sprintf("enum value %d out of range, have %d variants", ordinal, n)}
	}
	return nil
}

// MissingVariant returns the error reported for a union with no
// variant selected.
func MissingVariant(block string) error {
	return &CheckError{Field: block, Reason: "no union variant set"}
}

// EnumString returns the fallback String of an out of range enum
// value.
func EnumString(name string, ordinal uint32) string {
	return fmt.Sprintf("%s(%d)", name, ordinal)
}
