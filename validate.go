package bottle

import (
	"github.com/creachadair/mds/mapset"
)

// Validate checks the referential integrity of s.
//
// Schemas returned by [Parse] are already valid. Validate is for
// schemas constructed by hand, and is run again by [Generate] before
// any code is emitted. The first violation is returned as a
// [SchemaError].
func Validate(s *Schema) error {
	if s.Name == "" {
		return schemaErr(ErrMissingName, "", "", "schema has no name")
	}
	if !ValidName(s.Name) {
		return schemaErr(ErrMalformedDocument, s.Name, "name", "not a valid name")
	}

	v := validator{
		schema: s,
		enums:  mapset.New[*Enum](),
		blocks: mapset.New[*Block](),
	}

	// Enums and top-level blocks share the namespace of generated
	// type names.
	var types Namespace
	for _, e := range s.Enums {
		if e == nil {
			return schemaErr(ErrMalformedDocument, "", "enums", "nil enum")
		}
		path := "enums." + e.Name
		if !ValidName(e.Name) {
			return schemaErr(ErrMalformedDocument, e.Name, path, "not a valid name")
		}
		if err := types.Declare(e.Name, path); err != nil {
			return err
		}
		var variants Namespace
		for _, vn := range e.Variants {
			if !ValidName(vn) {
				return schemaErr(ErrMalformedDocument, vn, path, "not a valid variant name")
			}
			if err := variants.Declare(vn, path); err != nil {
				return err
			}
		}
		v.enums.Add(e)
	}
	for _, b := range s.Blocks {
		if b == nil {
			return schemaErr(ErrMalformedDocument, "", "blocks", "nil block")
		}
		path := "blocks." + b.Name
		if err := types.Declare(b.Name, path); err != nil {
			return err
		}
		if err := v.block(b, path); err != nil {
			return err
		}
	}
	return nil
}

type validator struct {
	schema *Schema
	enums  mapset.Set[*Enum]
	// blocks tracks every block seen so far, so that a block reused
	// in two places, or containing itself, is caught.
	blocks mapset.Set[*Block]
}

func (v *validator) block(b *Block, path string) error {
	if !ValidName(b.Name) {
		return schemaErr(ErrMalformedDocument, b.Name, path, "not a valid name")
	}
	if v.blocks.Has(b) {
		return schemaErr(ErrDuplicateDefinition, b.Name, path, "block appears more than once in the schema")
	}
	v.blocks.Add(b)

	var fields Namespace
	for _, f := range b.Fields {
		fpath := path + "." + f.Name
		if !ValidName(f.Name) || f.Name == childrenKey {
			return schemaErr(ErrMalformedDocument, f.Name, fpath, "not a valid field name")
		}
		if err := fields.Declare(f.Name, fpath); err != nil {
			return err
		}
		if err := v.fieldType(f.Type, fpath); err != nil {
			return err
		}
	}

	u := b.Union
	if u == nil {
		return nil
	}
	upath := path + "." + childrenKey
	if u.Enum == nil {
		return schemaErr(ErrUnknownEnumReference, "", upath, "union has no enum")
	}
	if !v.enums.Has(u.Enum) {
		return schemaErr(ErrUnknownEnumReference, u.Enum.Name, upath, "enum is not declared in this schema")
	}
	seen := mapset.New[string]()
	for _, c := range u.Variants {
		if c == nil {
			return schemaErr(ErrMalformedDocument, "", upath, "nil variant")
		}
		cpath := upath + "." + c.Name
		if _, ok := u.Enum.Ordinal(c.Name); !ok {
			return schemaErr(ErrUnknownEnumReference, c.Name, cpath, "not a variant of %s", u.Enum.Name)
		}
		if seen.Has(c.Name) {
			return schemaErr(ErrDuplicateDefinition, c.Name, cpath, "variant has two bodies")
		}
		seen.Add(c.Name)
		if err := v.block(c, cpath); err != nil {
			return err
		}
	}
	for _, name := range u.Enum.Variants {
		if !seen.Has(name) {
			return schemaErr(ErrMalformedDocument, name, upath, "union has no body for variant %q of %s", name, u.Enum.Name)
		}
	}
	if len(u.Variants) > 256 {
		return schemaErr(ErrMalformedDocument, u.Enum.Name, upath, "union has %d variants, a discriminant byte holds at most 256", len(u.Variants))
	}
	return nil
}

func (v *validator) fieldType(t Type, path string) error {
	switch t.Kind {
	case Int, Float, String:
	case EnumRef:
		if t.Enum == nil {
			return schemaErr(ErrUnknownFieldType, "", path, "enum field has no enum")
		}
		if !v.enums.Has(t.Enum) {
			return schemaErr(ErrUnknownFieldType, t.Enum.Name, path, "enum is not declared in this schema")
		}
	default:
		return schemaErr(ErrUnknownFieldType, t.Kind.String(), path, "")
	}
	if n, ok := t.MaxLen.GetOK(); ok {
		if t.Kind != String {
			return schemaErr(ErrMalformedDocument, "len", path, "len applies only to strings")
		}
		if n < 1 || n > 255 {
			return schemaErr(ErrMalformedDocument, "len", path, "len must be from 1 to 255, not %d", n)
		}
	}
	return nil
}
