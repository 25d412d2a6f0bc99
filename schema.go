package bottle

import (
	"fmt"
	"slices"
	"strings"

	"github.com/creachadair/mds/value"
)

// A Schema is the in-memory form of a schema document: a set of
// enumerations and a set of blocks, each in declaration order.
//
// A Schema is built once, by [Parse] or by hand followed by
// [Validate], and is read-only afterwards.
type Schema struct {
	// Name identifies the generated artifacts.
	Name   string
	Enums  []*Enum
	Blocks []*Block
}

// Enum returns the enum called name, or nil.
func (s *Schema) Enum(name string) *Enum {
	for _, e := range s.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Block returns the top-level block called name, or nil.
func (s *Schema) Block(name string) *Block {
	for _, b := range s.Blocks {
		if b.Name == name {
			return b
		}
	}
	return nil
}

func (s *Schema) String() string {
	var ret strings.Builder
	fmt.Fprintf(&ret, "schema %s {\n", s.Name)
	for _, e := range s.Enums {
		fmt.Fprintf(&ret, "  %s\n", e)
	}
	for _, b := range s.Blocks {
		b.describe(&ret, "  ")
	}
	ret.WriteString("}")
	return ret.String()
}

// An Enum is an enumeration. A variant's position in Variants is its
// ordinal.
type Enum struct {
	Name     string
	Variants []string
}

// Ordinal returns the ordinal of the given variant.
func (e *Enum) Ordinal(variant string) (int, bool) {
	i := slices.Index(e.Variants, variant)
	return i, i >= 0
}

// ZeroWidth reports whether e has no variants. Values of a zero-width
// enum occupy no bytes on the wire.
func (e *Enum) ZeroWidth() bool {
	return len(e.Variants) == 0
}

func (e *Enum) String() string {
	return fmt.Sprintf("enum %s {%s}", e.Name, strings.Join(e.Variants, ", "))
}

// Kind is the kind of a field's type.
type Kind int

const (
	Int Kind = iota + 1
	Float
	String
	EnumRef
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case EnumRef:
		return "enum"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// primitives maps the type tokens of a schema document to their kind.
var primitives = map[string]Kind{
	"int":    Int,
	"float":  Float,
	"string": String,
}

// A Type is the type of a field.
type Type struct {
	Kind Kind
	// Enum is the referenced enum of an EnumRef field.
	Enum *Enum
	// MaxLen is the declared length limit of a String field. The
	// wire format caps every string at 255 bytes regardless.
	MaxLen value.Maybe[int]
}

// Token returns the schema document token for t.
func (t Type) Token() string {
	if t.Kind == EnumRef && t.Enum != nil {
		return t.Enum.Name
	}
	return t.Kind.String()
}

// Width returns the number of bytes a value of t occupies on the
// wire, or -1 if the width depends on the value.
func (t Type) Width() int {
	switch t.Kind {
	case Int, Float:
		return 4
	case EnumRef:
		if t.Enum != nil && t.Enum.ZeroWidth() {
			return 0
		}
		return 4
	default:
		return -1
	}
}

// Limit returns the longest string a String field accepts.
func (t Type) Limit() int {
	if n, ok := t.MaxLen.GetOK(); ok && n > 0 && n < 255 {
		return n
	}
	return 255
}

// A Field is a named, typed member of a block. The order of fields in
// a block is their order on the wire.
type Field struct {
	Name string
	Type Type
}

// A Block is a record type: an ordered list of fields, optionally
// followed by a union of nested blocks.
type Block struct {
	Name   string
	Fields []Field
	Union  *Union
}

// FixedSize returns the number of bytes b's fields occupy on the wire
// regardless of their values, counting the length prefix of strings
// and the union's discriminant, but not the selected variant.
func (b *Block) FixedSize() int {
	n := 0
	for _, f := range b.Fields {
		if w := f.Type.Width(); w >= 0 {
			n += w
		} else {
			n++
		}
	}
	if b.Union != nil && !b.Union.ZeroWidth() {
		n++
	}
	return n
}

func (b *Block) describe(w *strings.Builder, indent string) {
	fmt.Fprintf(w, "%sblock %s {\n", indent, b.Name)
	for _, f := range b.Fields {
		fmt.Fprintf(w, "%s  %s %s\n", indent, f.Name, f.Type.Token())
	}
	if u := b.Union; u != nil {
		fmt.Fprintf(w, "%s  union %s {\n", indent, u.Enum.Name)
		for _, v := range u.Variants {
			v.describe(w, indent+"    ")
		}
		fmt.Fprintf(w, "%s  }\n", indent)
	}
	fmt.Fprintf(w, "%s}\n", indent)
}

// A Union is the discriminated union of a block. Each variant is a
// nested block named after one of the discriminant enum's variants.
//
// The wire tag of a variant is its position in Variants, which need
// not match the ordinal of the variant in Enum.
type Union struct {
	Enum     *Enum
	Variants []*Block
}

// Tag returns the wire tag of the named variant.
func (u *Union) Tag(variant string) (int, bool) {
	i := slices.IndexFunc(u.Variants, func(b *Block) bool { return b.Name == variant })
	return i, i >= 0
}

// ZeroWidth reports whether u has no variants, in which case it has
// no discriminant on the wire.
func (u *Union) ZeroWidth() bool {
	return len(u.Variants) == 0
}
