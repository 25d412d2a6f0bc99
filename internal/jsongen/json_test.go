package jsongen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/creachadair/mds/value"
	"github.com/danderson/bottle"
	"github.com/danderson/bottle/internal/jsongen"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var schemaCmp = []cmp.Option{
	cmp.Comparer(func(a, b value.Maybe[int]) bool {
		av, aok := a.GetOK()
		bv, bok := b.GetOK()
		return aok == bok && av == bv
	}),
	cmpopts.EquateEmpty(),
}

func TestEcho(t *testing.T) {
	want, err := bottle.LoadFile(filepath.Join("..", "demo", "demo.json"))
	if err != nil {
		t.Fatalf("loading demo schema: %v", err)
	}

	for _, style := range []bottle.Style{
		{},
		{Newline: "\r\n", Indent: "    "},
	} {
		out, err := jsongen.Generate(want, style)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		echo := out.File("Demo.json").Bytes()
		got, err := bottle.Parse(echo)
		if err != nil {
			t.Fatalf("parsing echo: %v\n%s", err, echo)
		}
		if diff := cmp.Diff(got, want, schemaCmp...); diff != "" {
			t.Errorf("echo parses to a different schema (-got+want):\n%s", diff)
		}
	}
}

func TestEchoText(t *testing.T) {
	s, err := bottle.Parse([]byte(`
name: Small
enums:
  K: [a, b]
  None: []
blocks:
  B:
    s: {type: string, len: 8}
    children:
      enum: K
      b: {}
      a: {x: float}
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	out, err := jsongen.Generate(s, bottle.Style{Indent: "  "})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	want := `{
  "name": "Small",
  "enums": {
    "K": ["a", "b"],
    "None": []
  },
  "blocks": {
    "B": {
      "s": {"type": "string", "len": 8},
      "children": {
        "enum": "K",
        "b": {},
        "a": {
          "x": "float"
        }
      }
    }
  }
}
`
	if diff := cmp.Diff(string(out.File("Small.json").Bytes()), want); diff != "" {
		t.Errorf("wrong echo (-got+want):\n%s", diff)
	}
}

func TestEchoDemoFile(t *testing.T) {
	// The checked-in demo schema is written in the echo's style, so
	// that it round-trips byte for byte.
	path := filepath.Join("..", "demo", "demo.json")
	bs, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading demo schema: %v", err)
	}
	s, err := bottle.Parse(bs)
	if err != nil {
		t.Fatalf("parsing demo schema: %v", err)
	}
	out, err := jsongen.Generate(s, bottle.Style{Indent: "  "})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if diff := cmp.Diff(string(out.File("Demo.json").Bytes()), string(bs)); diff != "" {
		t.Errorf("echo of %s differs from the file (-got+want):\n%s", path, diff)
	}
}
