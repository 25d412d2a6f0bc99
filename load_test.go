package bottle

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	want := demoSchema()
	for _, tc := range []struct {
		name, doc string
	}{
		{"json", demoJSON},
		{"yaml", demoYAML},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse([]byte(tc.doc))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if diff := cmp.Diff(got, want, schemaCmp...); diff != "" {
				t.Errorf("Parse schema wrong (-got+want):\n%s", diff)
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	// Blocks may appear before the enums they use, and union variants
	// keep their declaration order rather than the enum's.
	s := mustParse(t, `{
  "blocks": {"B": {"children": {"enum": "E", "z": {}, "a": {}, "m": {}}}},
  "enums": {"E": ["a", "m", "z"]},
  "name": "Order"
}`)
	u := mustBlock(t, s, "B").Union
	var got []string
	for _, v := range u.Variants {
		got = append(got, v.Name)
	}
	if diff := cmp.Diff(got, []string{"z", "a", "m"}); diff != "" {
		t.Errorf("union variant order wrong (-got+want):\n%s", diff)
	}
	for name, want := range map[string]int{"z": 0, "a": 1, "m": 2} {
		if tag, ok := u.Tag(name); !ok || tag != want {
			t.Errorf("Tag(%q) = %d, %v, want %d, true", name, tag, ok, want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want ErrorKind
	}{
		{"no name", `{"enums": {}}`, ErrMissingName},
		{"empty name", `{"name": ""}`, ErrMissingName},
		{"yaml no name", "blocks: {}\n", ErrMissingName},
		{"numeric name", `{"name": 12}`, ErrMalformedDocument},
		{"bad name", `{"name": "my-schema"}`, ErrMalformedDocument},
		{"empty", ``, ErrMalformedDocument},
		{"not a mapping", `[1, 2]`, ErrMalformedDocument},
		{"bad json", `{"name": "X"`, ErrMalformedDocument},
		{"bad yaml", "name: [X\n", ErrMalformedDocument},
		{"trailing json", `{"name": "X"} {}`, ErrMalformedDocument},
		{"unknown key", `{"name": "X", "types": {}}`, ErrMalformedDocument},
		{"enum not a list", `{"name": "X", "enums": {"E": "a"}}`, ErrMalformedDocument},
		{"numeric variant", `{"name": "X", "enums": {"E": [1]}}`, ErrMalformedDocument},
		{"duplicate variant", `{"name": "X", "enums": {"E": ["a", "a"]}}`, ErrDuplicateDefinition},
		{"folded duplicate variant", `{"name": "X", "enums": {"E": ["a_b", "aB"]}}`, ErrDuplicateDefinition},
		{"duplicate enum key", `{"name": "X", "enums": {"E": [], "E": []}}`, ErrDuplicateDefinition},
		{"duplicate yaml key", "name: X\nblocks:\n  B: {}\n  B: {}\n", ErrDuplicateDefinition},
		{"enum and block collide", `{"name": "X", "enums": {"Thing": []}, "blocks": {"thing": {}}}`, ErrDuplicateDefinition},
		{"duplicate field", `{"name": "X", "blocks": {"B": {"a_b": "int", "aB": "int"}}}`, ErrDuplicateDefinition},
		{"unknown field type", `{"name": "X", "blocks": {"B": {"a": "double"}}}`, ErrUnknownFieldType},
		{"block as field type", `{"name": "X", "blocks": {"A": {}, "B": {"a": "A"}}}`, ErrUnknownFieldType},
		{"numeric field type", `{"name": "X", "blocks": {"B": {"a": 4}}}`, ErrUnknownFieldType},
		{"unknown type in option form", `{"name": "X", "blocks": {"B": {"a": {"type": "bytes"}}}}`, ErrUnknownFieldType},
		{"option form without type", `{"name": "X", "blocks": {"B": {"a": {"len": 3}}}}`, ErrMalformedDocument},
		{"unknown option", `{"name": "X", "blocks": {"B": {"a": {"type": "string", "max": 3}}}}`, ErrMalformedDocument},
		{"len on int", `{"name": "X", "blocks": {"B": {"a": {"type": "int", "len": 3}}}}`, ErrMalformedDocument},
		{"len too big", `{"name": "X", "blocks": {"B": {"a": {"type": "string", "len": 256}}}}`, ErrMalformedDocument},
		{"len zero", `{"name": "X", "blocks": {"B": {"a": {"type": "string", "len": 0}}}}`, ErrMalformedDocument},
		{"len string", `{"name": "X", "blocks": {"B": {"a": {"type": "string", "len": "3"}}}}`, ErrMalformedDocument},
		{"block not a mapping", `{"name": "X", "blocks": {"B": "int"}}`, ErrMalformedDocument},
		{"children without enum", `{"name": "X", "blocks": {"B": {"children": {}}}}`, ErrMalformedDocument},
		{"children unknown enum", `{"name": "X", "blocks": {"B": {"children": {"enum": "E"}}}}`, ErrUnknownEnumReference},
		{"variant not in enum", `{"name": "X", "enums": {"E": ["a"]}, "blocks": {"B": {"children": {"enum": "E", "a": {}, "b": {}}}}}`, ErrUnknownEnumReference},
		{"variant missing", `{"name": "X", "enums": {"E": ["a", "b"]}, "blocks": {"B": {"children": {"enum": "E", "a": {}}}}}`, ErrMalformedDocument},
		{"variant by name", `{"name": "X", "enums": {"E": ["a"]}, "blocks": {"A": {}, "B": {"children": {"enum": "E", "a": "A"}}}}`, ErrMalformedDocument},
		{"nested error", `{"name": "X", "enums": {"E": ["a"]}, "blocks": {"B": {"children": {"enum": "E", "a": {"f": "nope"}}}}}`, ErrUnknownFieldType},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Parse([]byte(tc.doc))
			if err == nil {
				t.Fatalf("Parse succeeded, want %v error. Schema:\n%s", tc.want, s)
			}
			if s != nil {
				t.Errorf("Parse returned a schema alongside error %v", err)
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("Parse error is %v, want kind %v", err, tc.want)
			}
			var se SchemaError
			if !errors.As(err, &se) {
				t.Errorf("Parse error %v is not a SchemaError", err)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	doc := "name: X\nblocks:\n  B:\n    a: int\n    b: double\n"
	_, err := Parse([]byte(doc))
	var se SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("Parse error %v is not a SchemaError", err)
	}
	if se.Line != 5 || se.Column != 8 {
		t.Errorf("error at %d:%d, want 5:8", se.Line, se.Column)
	}
	if se.Path != "blocks.B.b" || se.Name != "double" {
		t.Errorf("error names %q in %q, want \"double\" in \"blocks.B.b\"", se.Name, se.Path)
	}
	if got := err.Error(); !strings.Contains(got, "at 5:8") {
		t.Errorf("error %q does not mention its position", got)
	}
}

func TestLoad(t *testing.T) {
	s, err := Load(strings.NewReader(demoYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(s, demoSchema(), schemaCmp...); diff != "" {
		t.Errorf("Load schema wrong (-got+want):\n%s", diff)
	}
}
