package bottle

import (
	"testing"

	"github.com/creachadair/mds/value"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// demoJSON exercises every shape the wire format has: scalar fields,
// enum fields, strings with and without a length hint, a union, a union nested
// in a variant and declared out of enum order, and zero-width enums.
const demoJSON = `{
  "name": "Demo",
  "enums": {
    "Color": ["Red", "Green", "Blue"],
    "ShapeKind": ["circle", "square"],
    "Nothing": [],
    "Button": ["left", "right"],
    "EventKind": ["click", "key"]
  },
  "blocks": {
    "Pixel": {"color": "Color", "x": "int", "y": "int"},
    "Shape": {
      "children": {
        "enum": "ShapeKind",
        "circle": {"radius": "float"},
        "square": {"side": "float"}
      }
    },
    "Event": {
      "time": "int",
      "source": {"type": "string", "len": 16},
      "children": {
        "enum": "EventKind",
        "click": {
          "x": "int",
          "y": "int",
          "children": {"enum": "Button", "right": {}, "left": {}}
        },
        "key": {"code": "int", "text": "string"}
      }
    },
    "Void": {"nothing": "Nothing", "children": {"enum": "Nothing"}}
  }
}`

// demoYAML is demoJSON written as YAML.
const demoYAML = `
name: Demo
enums:
  Color: [Red, Green, Blue]
  ShapeKind: [circle, square]
  Nothing: []
  Button: [left, right]
  EventKind: [click, key]
blocks:
  Pixel:
    color: Color
    x: int
    y: int
  Shape:
    children:
      enum: ShapeKind
      circle: {radius: float}
      square: {side: float}
  Event:
    time: int
    source: {type: string, len: 16}
    children:
      enum: EventKind
      click:
        x: int
        y: int
        children:
          enum: Button
          right: {}
          left: {}
      key:
        code: int
        text: string
  Void:
    nothing: Nothing
    children:
      enum: Nothing
`

// demoSchema returns the schema of demoJSON, built by hand.
func demoSchema() *Schema {
	color := &Enum{Name: "Color", Variants: []string{"Red", "Green", "Blue"}}
	shapeKind := &Enum{Name: "ShapeKind", Variants: []string{"circle", "square"}}
	nothing := &Enum{Name: "Nothing", Variants: []string{}}
	button := &Enum{Name: "Button", Variants: []string{"left", "right"}}
	eventKind := &Enum{Name: "EventKind", Variants: []string{"click", "key"}}
	return &Schema{
		Name:  "Demo",
		Enums: []*Enum{color, shapeKind, nothing, button, eventKind},
		Blocks: []*Block{
			{
				Name: "Pixel",
				Fields: []Field{
					{"color", Type{Kind: EnumRef, Enum: color}},
					{"x", Type{Kind: Int}},
					{"y", Type{Kind: Int}},
				},
			},
			{
				Name: "Shape",
				Union: &Union{
					Enum: shapeKind,
					Variants: []*Block{
						{Name: "circle", Fields: []Field{{"radius", Type{Kind: Float}}}},
						{Name: "square", Fields: []Field{{"side", Type{Kind: Float}}}},
					},
				},
			},
			{
				Name: "Event",
				Fields: []Field{
					{"time", Type{Kind: Int}},
					{"source", Type{Kind: String, MaxLen: value.Just(16)}},
				},
				Union: &Union{
					Enum: eventKind,
					Variants: []*Block{
						{
							Name: "click",
							Fields: []Field{
								{"x", Type{Kind: Int}},
								{"y", Type{Kind: Int}},
							},
							Union: &Union{
								Enum: button,
								Variants: []*Block{
									{Name: "right"},
									{Name: "left"},
								},
							},
						},
						{
							Name: "key",
							Fields: []Field{
								{"code", Type{Kind: Int}},
								{"text", Type{Kind: String}},
							},
						},
					},
				},
			},
			{
				Name:   "Void",
				Fields: []Field{{"nothing", Type{Kind: EnumRef, Enum: nothing}}},
				Union:  &Union{Enum: nothing},
			},
		},
	}
}

func mustParse(t *testing.T, doc string) *Schema {
	t.Helper()
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return s
}

func mustBlock(t *testing.T, s *Schema, name string) *Block {
	t.Helper()
	b := s.Block(name)
	if b == nil {
		t.Fatalf("schema %s has no block %s", s.Name, name)
	}
	return b
}

var schemaCmp = []cmp.Option{
	cmp.Comparer(func(a, b value.Maybe[int]) bool {
		av, aok := a.GetOK()
		bv, bok := b.GetOK()
		return aok == bok && av == bv
	}),
	cmpopts.EquateEmpty(),
}
