package bottle

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type nodeKind int

const (
	scalarNode nodeKind = iota + 1
	mappingNode
	sequenceNode
)

func (k nodeKind) String() string {
	switch k {
	case scalarNode:
		return "scalar"
	case mappingNode:
		return "mapping"
	case sequenceNode:
		return "sequence"
	default:
		return "nothing"
	}
}

// docNode is a node of a parsed schema document. Mappings keep their
// keys in document order, which is significant: it is the order of
// enum variants, block fields and union variants.
type docNode struct {
	kind nodeKind

	// scalar
	value string
	str   bool // value was a string, not a number, bool or null

	// mapping
	keys   []*docNode
	values []*docNode

	// sequence
	items []*docNode

	line, col int
}

func (n *docNode) errorf(kind ErrorKind, name, path, detail string, args ...any) error {
	err := schemaErr(kind, name, path, detail, args...).(SchemaError)
	err.Line, err.Column = n.line, n.col
	return err
}

// lookup returns the value of key in mapping n, or nil.
func (n *docNode) lookup(key string) *docNode {
	for i, k := range n.keys {
		if k.value == key {
			return n.values[i]
		}
	}
	return nil
}

// parseDocument parses bs into a document tree. JSON documents are
// recognized by their leading brace, anything else is read as YAML.
func parseDocument(bs []byte) (*docNode, error) {
	trimmed := bytes.TrimLeft(bs, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, schemaErr(ErrMalformedDocument, "", "", "empty document")
	}
	if trimmed[0] == '{' {
		return parseJSON(trimmed)
	}
	return parseYAML(bs)
}

func parseJSON(bs []byte) (*docNode, error) {
	dec := json.NewDecoder(bytes.NewReader(bs))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, malformed(err)
	}
	ret, err := jsonValue(dec, tok, "")
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, schemaErr(ErrMalformedDocument, "", "", "trailing data after document")
	}
	return ret, nil
}

func jsonValue(dec *json.Decoder, tok json.Token, path string) (*docNode, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return jsonObject(dec, path)
		case '[':
			return jsonArray(dec, path)
		default:
			return nil, schemaErr(ErrMalformedDocument, "", path, "unexpected %q", v.String())
		}
	case string:
		return &docNode{kind: scalarNode, value: v, str: true}, nil
	case json.Number:
		return &docNode{kind: scalarNode, value: v.String()}, nil
	case bool:
		return &docNode{kind: scalarNode, value: fmt.Sprint(v)}, nil
	case nil:
		return &docNode{kind: scalarNode, value: "null"}, nil
	default:
		return nil, schemaErr(ErrMalformedDocument, "", path, "unexpected token %v", tok)
	}
}

func jsonObject(dec *json.Decoder, path string) (*docNode, error) {
	ret := &docNode{kind: mappingNode}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, malformed(err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return ret, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, schemaErr(ErrMalformedDocument, "", path, "object key is %v, not a string", tok)
		}
		if ret.lookup(key) != nil {
			return nil, schemaErr(ErrDuplicateDefinition, key, joinPath(path, key), "key appears twice")
		}
		tok, err = dec.Token()
		if err != nil {
			return nil, malformed(err)
		}
		val, err := jsonValue(dec, tok, joinPath(path, key))
		if err != nil {
			return nil, err
		}
		ret.keys = append(ret.keys, &docNode{kind: scalarNode, value: key, str: true})
		ret.values = append(ret.values, val)
	}
}

func jsonArray(dec *json.Decoder, path string) (*docNode, error) {
	ret := &docNode{kind: sequenceNode}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, malformed(err)
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return ret, nil
		}
		item, err := jsonValue(dec, tok, fmt.Sprintf("%s[%d]", path, len(ret.items)))
		if err != nil {
			return nil, err
		}
		ret.items = append(ret.items, item)
	}
}

func parseYAML(bs []byte) (*docNode, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(bs, &doc); err != nil {
		return nil, malformed(err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, schemaErr(ErrMalformedDocument, "", "", "empty document")
	}
	return yamlValue(doc.Content[0], "")
}

func yamlValue(n *yaml.Node, path string) (*docNode, error) {
	for n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	ret := &docNode{line: n.Line, col: n.Column}
	switch n.Kind {
	case yaml.ScalarNode:
		ret.kind = scalarNode
		ret.value = n.Value
		ret.str = n.ShortTag() == "!!str"
	case yaml.SequenceNode:
		ret.kind = sequenceNode
		for i, c := range n.Content {
			item, err := yamlValue(c, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			ret.items = append(ret.items, item)
		}
	case yaml.MappingNode:
		ret.kind = mappingNode
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, ret.errorf(ErrMalformedDocument, "", path, "mapping key is not a scalar")
			}
			if ret.lookup(k.Value) != nil {
				err := schemaErr(ErrDuplicateDefinition, k.Value, joinPath(path, k.Value), "key appears twice").(SchemaError)
				err.Line, err.Column = k.Line, k.Column
				return nil, err
			}
			val, err := yamlValue(v, joinPath(path, k.Value))
			if err != nil {
				return nil, err
			}
			ret.keys = append(ret.keys, &docNode{kind: scalarNode, value: k.Value, str: true, line: k.Line, col: k.Column})
			ret.values = append(ret.values, val)
		}
	default:
		return nil, ret.errorf(ErrMalformedDocument, "", path, "unsupported YAML node")
	}
	return ret, nil
}

func malformed(err error) error {
	return schemaErr(ErrMalformedDocument, "", "", "%v", err)
}

func joinPath(path, elem string) string {
	if path == "" {
		return elem
	}
	return path + "." + elem
}
