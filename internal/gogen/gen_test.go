package gogen_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danderson/bottle"
	"github.com/danderson/bottle/internal/gogen"
	"github.com/google/go-cmp/cmp"
)

func TestGen(t *testing.T) {
	demo := filepath.Join("..", "demo")
	s, err := bottle.LoadFile(filepath.Join(demo, "demo.json"))
	if err != nil {
		t.Fatalf("loading demo schema: %v", err)
	}

	goldenPath := filepath.Join(demo, gogen.FileName(s.Name))
	wantBs, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Errorf("reading golden file %q: %v", goldenPath, err)
		// Deliberately continue with an empty golden, so the
		// expected output still gets written.
	}
	want := string(wantBs)

	out, err := gogen.Generate(s, gogen.Options{Source: "demo.json"})
	if err != nil {
		t.Fatalf("generating demo: %v", err)
	}
	files := out.Files()
	if len(files) != 1 {
		t.Fatalf("generated %d files, want 1", len(files))
	}
	if got, want := files[0].Name, "demo_bottle.go"; got != want {
		t.Errorf("generated file is %q, want %q", got, want)
	}
	got := string(files[0].Bytes())
	if diff := cmp.Diff(strings.Split(got, "\n"), strings.Split(want, "\n")); diff != "" {
		gotPath := filepath.Join(t.TempDir(), "demo_bottle.go.got")
		os.WriteFile(gotPath, []byte(got), 0600)
		t.Errorf("wrong gogen output (-got+want, got file written to %s):\n%s", gotPath, diff)
	}
}

func mustParse(t *testing.T, doc string) *bottle.Schema {
	t.Helper()
	s, err := bottle.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parsing schema: %v", err)
	}
	return s
}

func TestOptions(t *testing.T) {
	s := mustParse(t, `{"name": "net_msg", "blocks": {"Ping": {"seq": "int"}}}`)

	tests := []struct {
		name string
		opts gogen.Options
		want []string
	}{
		{
			"defaults",
			gogen.Options{},
			[]string{
				"// Code generated by bottle from schema net_msg. DO NOT EDIT.",
				"package netmsg",
				"var bottleOrder = fragments.LittleEndian",
			},
		},
		{
			"all set",
			gogen.Options{Package: "wire", Order: "big", Source: "net.yaml"},
			[]string{
				"// Code generated by bottle from net.yaml. DO NOT EDIT.",
				"package wire",
				"var bottleOrder = fragments.BigEndian",
			},
		},
		{
			"native",
			gogen.Options{Order: "native"},
			[]string{"var bottleOrder = fragments.NativeEndian"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := gogen.Generate(s, tc.opts)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			got := string(out.File("netmsg_bottle.go").Bytes())
			for _, line := range tc.want {
				if !strings.Contains(got, line+"\n") {
					t.Errorf("output does not contain %q:\n%s", line, got)
				}
			}
		})
	}

	for _, opts := range []gogen.Options{
		{Order: "middle"},
		{Package: "type"},
		{Package: "two words"},
	} {
		if _, err := gogen.Generate(s, opts); err == nil {
			t.Errorf("Generate with options %+v succeeded, want error", opts)
		}
	}
}

func TestImports(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    []string
		notWant []string
	}{
		{
			"enums only",
			`{"name": "E", "enums": {"Color": ["red"]}}`,
			[]string{`import "github.com/danderson/bottle/fragments"`},
			[]string{`"io"`, "bottleOrder"},
		},
		{
			"zero-width enums only",
			`{"name": "E", "enums": {"Nothing": []}}`,
			[]string{"type Nothing struct{}"},
			[]string{"import", "bottleOrder"},
		},
		{
			"empty",
			`{"name": "E"}`,
			[]string{"package e"},
			[]string{"import"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := gogen.Generate(mustParse(t, tc.doc), gogen.Options{})
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			got := string(out.File("e_bottle.go").Bytes())
			for _, s := range tc.want {
				if !strings.Contains(got, s) {
					t.Errorf("output does not contain %q:\n%s", s, got)
				}
			}
			for _, s := range tc.notWant {
				if strings.Contains(got, s) {
					t.Errorf("output contains %q:\n%s", s, got)
				}
			}
		})
	}
}

func TestCollisions(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			"enum constant and block",
			`{"name": "X", "enums": {"Color": ["red"]}, "blocks": {"ColorRed": {}}}`,
		},
		{
			"variant type and block",
			`{"name": "X", "enums": {"K": ["b"]}, "blocks": {"AB": {}, "A": {"children": {"enum": "K", "b": {}}}}}`,
		},
		{
			"variant interface and block",
			`{"name": "X", "enums": {"K": ["b"]}, "blocks": {"AVariant": {}, "A": {"children": {"enum": "K", "b": {}}}}}`,
		},
		{
			"field and Variant",
			`{"name": "X", "enums": {"K": ["b"]}, "blocks": {"A": {"variant": "int", "children": {"enum": "K", "b": {}}}}}`,
		},
		{
			"field and codec method",
			`{"name": "X", "blocks": {"A": {"marshal_bottle": "int"}}}`,
		},
		{
			"field and tag method",
			`{"name": "X", "enums": {"K": ["b"]}, "blocks": {"A": {"children": {"enum": "K", "b": {"k": "int"}}}}}`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := gogen.Generate(mustParse(t, tc.doc), gogen.Options{})
			if !errors.Is(err, bottle.ErrDuplicateDefinition) {
				t.Errorf("Generate = %v, want duplicate definition error", err)
			}
			if out != nil {
				t.Error("Generate returned output alongside error")
			}
		})
	}
}
