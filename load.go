package bottle

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/creachadair/mds/value"
)

// childrenKey is the reserved block body key that declares a union.
const childrenKey = "children"

// Parse parses and validates a schema document.
//
// The document is JSON if its first non-space character is '{', and
// YAML otherwise. Any error is a [SchemaError]; no Schema is returned
// alongside an error.
func Parse(doc []byte) (*Schema, error) {
	root, err := parseDocument(doc)
	if err != nil {
		return nil, err
	}
	s, err := schemaFromDocument(root)
	if err != nil {
		return nil, err
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads a schema document from r and parses it.
func Load(r io.Reader) (*Schema, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	return Parse(bs)
}

// LoadFile reads and parses the schema document at path.
func LoadFile(path string) (*Schema, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(bs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func schemaFromDocument(root *docNode) (*Schema, error) {
	if root.kind != mappingNode {
		return nil, root.errorf(ErrMalformedDocument, "", "", "document is a %s, not a mapping", root.kind)
	}
	for _, k := range root.keys {
		switch k.value {
		case "name", "enums", "blocks":
		default:
			return nil, k.errorf(ErrMalformedDocument, k.value, "", "unknown top-level key")
		}
	}

	ret := &Schema{}
	name := root.lookup("name")
	if name == nil {
		return nil, root.errorf(ErrMissingName, "", "", "schema has no name")
	}
	if name.kind != scalarNode || !name.str {
		return nil, name.errorf(ErrMalformedDocument, "", "name", "name must be a string")
	}
	if name.value == "" {
		return nil, name.errorf(ErrMissingName, "", "name", "schema name is empty")
	}
	ret.Name = name.value

	// Enums are loaded first so that blocks can refer to them
	// regardless of the order of the top-level keys.
	if enums := root.lookup("enums"); enums != nil {
		if enums.kind != mappingNode {
			return nil, enums.errorf(ErrMalformedDocument, "", "enums", "enums must be a mapping")
		}
		for i, k := range enums.keys {
			e, err := enumFromDocument(k.value, enums.values[i])
			if err != nil {
				return nil, err
			}
			ret.Enums = append(ret.Enums, e)
		}
	}

	if blocks := root.lookup("blocks"); blocks != nil {
		if blocks.kind != mappingNode {
			return nil, blocks.errorf(ErrMalformedDocument, "", "blocks", "blocks must be a mapping")
		}
		for i, k := range blocks.keys {
			b, err := blockFromDocument(ret, k.value, "blocks."+k.value, blocks.values[i])
			if err != nil {
				return nil, err
			}
			ret.Blocks = append(ret.Blocks, b)
		}
	}

	return ret, nil
}

func enumFromDocument(name string, n *docNode) (*Enum, error) {
	path := "enums." + name
	if n.kind != sequenceNode {
		return nil, n.errorf(ErrMalformedDocument, name, path, "enum must be a list of variant names")
	}
	ret := &Enum{Name: name, Variants: []string{}}
	for _, item := range n.items {
		if item.kind != scalarNode || !item.str {
			return nil, item.errorf(ErrMalformedDocument, "", path, "variant names must be strings")
		}
		if _, ok := ret.Ordinal(item.value); ok {
			return nil, item.errorf(ErrDuplicateDefinition, item.value, path, "variant declared twice")
		}
		ret.Variants = append(ret.Variants, item.value)
	}
	return ret, nil
}

func blockFromDocument(s *Schema, name, path string, n *docNode) (*Block, error) {
	if n.kind != mappingNode {
		return nil, n.errorf(ErrMalformedDocument, name, path, "block body must be a mapping, not a %s", n.kind)
	}
	ret := &Block{Name: name}
	for i, k := range n.keys {
		if k.value == childrenKey {
			u, err := unionFromDocument(s, path+"."+childrenKey, n.values[i])
			if err != nil {
				return nil, err
			}
			ret.Union = u
			continue
		}
		t, err := typeFromDocument(s, path+"."+k.value, n.values[i])
		if err != nil {
			return nil, err
		}
		ret.Fields = append(ret.Fields, Field{Name: k.value, Type: t})
	}
	return ret, nil
}

func typeFromDocument(s *Schema, path string, n *docNode) (Type, error) {
	switch n.kind {
	case scalarNode:
		if !n.str {
			return Type{}, n.errorf(ErrUnknownFieldType, n.value, path, "type must be a string")
		}
		return resolveType(s, path, n)
	case mappingNode:
		var (
			ret    Type
			maxLen *docNode
			found  bool
		)
		for i, k := range n.keys {
			v := n.values[i]
			switch k.value {
			case "type":
				if v.kind != scalarNode || !v.str {
					return Type{}, v.errorf(ErrMalformedDocument, "", path, "type must be a string")
				}
				t, err := resolveType(s, path, v)
				if err != nil {
					return Type{}, err
				}
				ret, found = t, true
			case "len":
				maxLen = v
			default:
				return Type{}, k.errorf(ErrMalformedDocument, k.value, path, "unknown field option")
			}
		}
		if !found {
			return Type{}, n.errorf(ErrMalformedDocument, "", path, "field has no type")
		}
		if maxLen != nil {
			if ret.Kind != String {
				return Type{}, maxLen.errorf(ErrMalformedDocument, "len", path, "len applies only to strings")
			}
			l, err := strconv.Atoi(maxLen.value)
			if err != nil || maxLen.kind != scalarNode || maxLen.str || l < 1 || l > 255 {
				return Type{}, maxLen.errorf(ErrMalformedDocument, maxLen.value, path, "len must be an integer from 1 to 255")
			}
			ret.MaxLen = value.Just(l)
		}
		return ret, nil
	default:
		return Type{}, n.errorf(ErrMalformedDocument, "", path, "field must be a type name or a mapping")
	}
}

func resolveType(s *Schema, path string, n *docNode) (Type, error) {
	if k, ok := primitives[n.value]; ok {
		return Type{Kind: k}, nil
	}
	if e := s.Enum(n.value); e != nil {
		return Type{Kind: EnumRef, Enum: e}, nil
	}
	return Type{}, n.errorf(ErrUnknownFieldType, n.value, path, "")
}

func unionFromDocument(s *Schema, path string, n *docNode) (*Union, error) {
	if n.kind != mappingNode {
		return nil, n.errorf(ErrMalformedDocument, "", path, "children must be a mapping")
	}
	en := n.lookup("enum")
	if en == nil {
		return nil, n.errorf(ErrMalformedDocument, "", path, "children has no enum")
	}
	if en.kind != scalarNode || !en.str {
		return nil, en.errorf(ErrMalformedDocument, "", path+".enum", "enum must be a string")
	}
	e := s.Enum(en.value)
	if e == nil {
		return nil, en.errorf(ErrUnknownEnumReference, en.value, path+".enum", "")
	}

	ret := &Union{Enum: e}
	for i, k := range n.keys {
		if k.value == "enum" {
			continue
		}
		vpath := path + "." + k.value
		if _, ok := e.Ordinal(k.value); !ok {
			return nil, k.errorf(ErrUnknownEnumReference, k.value, vpath, "not a variant of %s", e.Name)
		}
		v := n.values[i]
		if v.kind != mappingNode {
			return nil, v.errorf(ErrMalformedDocument, k.value, vpath, "variant must be an inline block body")
		}
		b, err := blockFromDocument(s, k.value, vpath, v)
		if err != nil {
			return nil, err
		}
		ret.Variants = append(ret.Variants, b)
	}
	for _, v := range e.Variants {
		if _, ok := ret.Tag(v); !ok {
			return nil, n.errorf(ErrMalformedDocument, v, path, "union has no body for variant %q of %s", v, e.Name)
		}
	}
	return ret, nil
}
