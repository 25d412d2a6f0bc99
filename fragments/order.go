package fragments

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/cpu"
)

// ByteOrder is the byte order of multi-byte integers and floats on
// the wire.
type ByteOrder interface {
	byteOrder
	fmt.Stringer
}

type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

type wrapStd struct {
	byteOrder
}

func (w wrapStd) String() string {
	switch w.byteOrder {
	case binary.BigEndian:
		return "big"
	case binary.LittleEndian:
		return "little"
	case binary.NativeEndian:
		if cpu.IsBigEndian {
			return "big"
		}
		return "little"
	default:
		panic("unknown ByteOrder, how did you manage to make one of those?")
	}
}

var (
	BigEndian    ByteOrder = wrapStd{binary.BigEndian}
	LittleEndian ByteOrder = wrapStd{binary.LittleEndian}
	// NativeEndian is the byte order of the host. Messages written
	// with it are only portable between hosts of the same
	// endianness.
	NativeEndian ByteOrder = wrapStd{binary.NativeEndian}
)

// ParseByteOrder returns the ByteOrder named by s, one of "little",
// "big" or "native". The empty string selects LittleEndian, the
// default of the bottle format.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch s {
	case "", "little", "le":
		return LittleEndian, nil
	case "big", "be":
		return BigEndian, nil
	case "native":
		return NativeEndian, nil
	}
	return nil, fmt.Errorf("unknown byte order %q", s)
}

func orderOrDefault(o ByteOrder) ByteOrder {
	if o == nil {
		return LittleEndian
	}
	return o
}
