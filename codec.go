package bottle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/danderson/bottle/fragments"
	"github.com/goccy/go-json"
)

// A Record is a value of a [Block], for use with the schema-driven
// codec. It is the dynamic counterpart of the types generated for
// a block.
type Record struct {
	// Fields holds one value per field of the block, in declaration
	// order: an int32 for Int, a float32 for Float, a string for
	// String, and a uint32 ordinal for an EnumRef. Fields of a
	// zero-width enum hold nil.
	Fields []any
	// Variant is the position of the selected union variant in the
	// union's declaration order, which is also its wire tag.
	Variant int
	// Child is the value of the selected variant. It is nil for
	// blocks without a union, or with a zero-width union.
	Child *Record
}

// Check reports whether r is a value of b that can be encoded and
// decoded back to itself.
//
// Check returns a [TypeError] if r does not have the shape of b, a
// [*fragments.LengthError] for overlong strings, or a
// [*fragments.CheckError] for enum ordinals out of range.
func (b *Block) Check(r *Record) error {
	return b.check(r, b.Name)
}

func (b *Block) check(r *Record, path string) error {
	if r == nil {
		return typeErr(path, "nil record")
	}
	if len(r.Fields) != len(b.Fields) {
		return typeErr(path, "record has %d fields, block %s has %d", len(r.Fields), b.Name, len(b.Fields))
	}
	for i, f := range b.Fields {
		fpath := path + "." + f.Name
		v := r.Fields[i]
		switch f.Type.Kind {
		case Int:
			if _, ok := v.(int32); !ok {
				return typeErr(fpath, "got %T, want int32", v)
			}
		case Float:
			if _, ok := v.(float32); !ok {
				return typeErr(fpath, "got %T, want float32", v)
			}
		case String:
			s, ok := v.(string)
			if !ok {
				return typeErr(fpath, "got %T, want string", v)
			}
			if err := fragments.CheckString(fpath, s, f.Type.Limit()); err != nil {
				return err
			}
		case EnumRef:
			if f.Type.Enum.ZeroWidth() {
				if v != nil {
					return typeErr(fpath, "got %T, want nil for zero-width enum %s", v, f.Type.Enum.Name)
				}
				continue
			}
			o, ok := v.(uint32)
			if !ok {
				return typeErr(fpath, "got %T, want uint32 ordinal of %s", v, f.Type.Enum.Name)
			}
			if err := fragments.CheckEnum(fpath, o, uint32(len(f.Type.Enum.Variants))); err != nil {
				return err
			}
		}
	}
	u := b.Union
	if u == nil || u.ZeroWidth() {
		if r.Child != nil {
			return typeErr(path, "block %s has no union variants, but record has a child", b.Name)
		}
		return nil
	}
	if r.Variant < 0 || r.Variant >= len(u.Variants) {
		return typeErr(path, "variant %d out of range, union has %d variants", r.Variant, len(u.Variants))
	}
	if r.Child == nil {
		return fragments.MissingVariant(path)
	}
	c := u.Variants[r.Variant]
	return c.check(r.Child, path+"."+c.Name)
}

// Size returns the encoded size of r, which must have passed
// [Block.Check].
func (b *Block) Size(r *Record) int {
	n := b.FixedSize()
	for i, f := range b.Fields {
		if f.Type.Kind == String {
			n += len(r.Fields[i].(string))
		}
	}
	if u := b.Union; u != nil && !u.ZeroWidth() {
		n += u.Variants[r.Variant].Size(r.Child)
	}
	return n
}

// Encode writes r to w, following the field order of b. r must have
// passed [Block.Check].
func (b *Block) Encode(w fragments.Writer, r *Record) {
	for i, f := range b.Fields {
		switch f.Type.Kind {
		case Int:
			w.Int32(r.Fields[i].(int32))
		case Float:
			w.Float32(r.Fields[i].(float32))
		case String:
			w.String(r.Fields[i].(string))
		case EnumRef:
			if !f.Type.Enum.ZeroWidth() {
				w.Uint32(r.Fields[i].(uint32))
			}
		}
	}
	if u := b.Union; u != nil && !u.ZeroWidth() {
		w.Uint8(uint8(r.Variant))
		u.Variants[r.Variant].Encode(w, r.Child)
	}
}

// Decode reads a value of b from rd.
func (b *Block) Decode(rd fragments.Reader) (*Record, error) {
	ret := &Record{Fields: make([]any, len(b.Fields))}
	for i, f := range b.Fields {
		var err error
		switch f.Type.Kind {
		case Int:
			ret.Fields[i], err = rd.Int32()
		case Float:
			ret.Fields[i], err = rd.Float32()
		case String:
			ret.Fields[i], err = rd.String()
		case EnumRef:
			if f.Type.Enum.ZeroWidth() {
				continue
			}
			ret.Fields[i], err = fragments.Enum[uint32](rd, f.Type.Enum.Name, uint32(len(f.Type.Enum.Variants)))
		}
		if err != nil {
			return nil, err
		}
	}
	if u := b.Union; u != nil && !u.ZeroWidth() {
		tag, err := fragments.Variant(rd, b.Name, len(u.Variants))
		if err != nil {
			return nil, err
		}
		ret.Variant = tag
		if ret.Child, err = u.Variants[tag].Decode(rd); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// Marshal returns the bounded buffer encoding of r.
func (b *Block) Marshal(r *Record) ([]byte, error) {
	if err := b.Check(r); err != nil {
		return nil, err
	}
	e := fragments.Encoder{Out: make([]byte, 0, b.Size(r))}
	b.Encode(&e, r)
	return e.Out, nil
}

// Unmarshal decodes a value of b from the start of bs. Bytes after
// the value are ignored.
func (b *Block) Unmarshal(bs []byte) (*Record, error) {
	return b.Decode(&fragments.Decoder{In: bs})
}

// Write writes the stream encoding of r to w.
func (b *Block) Write(w io.Writer, r *Record) error {
	if err := b.Check(r); err != nil {
		return err
	}
	e := fragments.StreamEncoder{Out: w}
	b.Encode(&e, r)
	return e.Err()
}

// Read reads one value of b from r.
func (b *Block) Read(r io.Reader) (*Record, error) {
	return b.Decode(&fragments.StreamDecoder{In: r})
}

// Map returns r as a map from field names to values, for display.
// Enum values are variant names, and a union is represented like in
// a schema document, as a "children" entry holding a single-entry map
// from the selected variant's name to its fields.
func (b *Block) Map(r *Record) map[string]any {
	ret := make(map[string]any, len(b.Fields)+1)
	for i, f := range b.Fields {
		v := r.Fields[i]
		if f.Type.Kind == EnumRef {
			if o, ok := v.(uint32); ok {
				if int(o) < len(f.Type.Enum.Variants) {
					v = f.Type.Enum.Variants[o]
				} else {
					v = fragments.EnumString(f.Type.Enum.Name, o)
				}
			}
		}
		ret[f.Name] = v
	}
	if u := b.Union; u != nil && !u.ZeroWidth() && r.Child != nil && r.Variant >= 0 && r.Variant < len(u.Variants) {
		c := u.Variants[r.Variant]
		ret[childrenKey] = map[string]any{c.Name: c.Map(r.Child)}
	}
	return ret
}

// FromMap builds a Record of b from m, the inverse of [Block.Map].
// Numbers may be any Go numeric type or a [json.Number], and enum
// values may be variant names or ordinals. Missing fields take their
// zero value.
func (b *Block) FromMap(m map[string]any) (*Record, error) {
	return b.fromMap(m, b.Name)
}

func (b *Block) fromMap(m map[string]any, path string) (*Record, error) {
	for k := range m {
		if k == childrenKey && b.Union != nil {
			continue
		}
		if !slices.ContainsFunc(b.Fields, func(f Field) bool { return f.Name == k }) {
			return nil, typeErr(path+"."+k, "block %s has no such field", b.Name)
		}
	}

	ret := &Record{Fields: make([]any, len(b.Fields))}
	for i, f := range b.Fields {
		fpath := path + "." + f.Name
		v, err := fieldFromAny(f.Type, m[f.Name])
		if err != nil {
			return nil, TypeError{fpath, err}
		}
		ret.Fields[i] = v
	}

	u := b.Union
	if u == nil || u.ZeroWidth() {
		return ret, nil
	}
	upath := path + "." + childrenKey
	cm, ok := m[childrenKey].(map[string]any)
	if !ok || len(cm) != 1 {
		return nil, typeErr(upath, "want a map holding exactly one variant of %s", u.Enum.Name)
	}
	for name, body := range cm {
		tag, ok := u.Tag(name)
		if !ok {
			return nil, typeErr(upath+"."+name, "not a variant of %s", u.Enum.Name)
		}
		bm, ok := body.(map[string]any)
		if body == nil {
			bm, ok = map[string]any{}, true
		}
		if !ok {
			return nil, typeErr(upath+"."+name, "got %T, want a map", body)
		}
		c := u.Variants[tag]
		child, err := c.fromMap(bm, upath+"."+name)
		if err != nil {
			return nil, err
		}
		ret.Variant, ret.Child = tag, child
	}
	return ret, nil
}

var errNotNumber = errors.New("not a number")

func fieldFromAny(t Type, v any) (any, error) {
	switch t.Kind {
	case Int:
		if v == nil {
			return int32(0), nil
		}
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
			return nil, fmt.Errorf("%v does not fit in an int", v)
		}
		return int32(f), nil
	case Float:
		if v == nil {
			return float32(0), nil
		}
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		return float32(f), nil
	case String:
		if v == nil {
			return "", nil
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("got %T, want string", v)
		}
		return s, nil
	case EnumRef:
		e := t.Enum
		if e.ZeroWidth() {
			if v != nil {
				return nil, fmt.Errorf("enum %s has no variants", e.Name)
			}
			return nil, nil
		}
		if v == nil {
			return uint32(0), nil
		}
		if s, ok := v.(string); ok {
			o, ok := e.Ordinal(s)
			if !ok {
				return nil, fmt.Errorf("%q is not a variant of %s", s, e.Name)
			}
			return uint32(o), nil
		}
		f, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("got %T, want a variant of %s", v, e.Name)
		}
		if f != math.Trunc(f) || f < 0 || f >= float64(len(e.Variants)) {
			return nil, fmt.Errorf("%v is not an ordinal of %s", v, e.Name)
		}
		return uint32(f), nil
	default:
		return nil, fmt.Errorf("unknown kind %v", t.Kind)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	default:
		return 0, errNotNumber
	}
}

// DecodeJSON decodes a JSON object into a Record of b.
func (b *Block) DecodeJSON(bs []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(bs))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return b.FromMap(m)
}
