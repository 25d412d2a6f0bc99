package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danderson/bottle"
	"github.com/fatih/color"
)

const demoSchema = "../../internal/demo/demo.json"

func withGenerateArgs(t *testing.T, outDir string, check bool) {
	t.Helper()
	saved := generateArgs
	t.Cleanup(func() { generateArgs = saved })
	generateArgs.Lang = "go"
	generateArgs.Order = "little"
	generateArgs.OutDir = outDir
	generateArgs.Check = check
}

func TestGenerateUpToDate(t *testing.T) {
	withGenerateArgs(t, filepath.Dir(demoSchema), true)
	var report bytes.Buffer
	if err := generateOne(&report, backends["go"], demoSchema, bottle.Style{}); err != nil {
		t.Fatalf("checking generated demo code: %v\n%s", err, report.String())
	}
	if report.Len() != 0 {
		t.Errorf("up to date check printed a diff:\n%s", report.String())
	}
}

func TestGenerateWriteAndCheck(t *testing.T) {
	dir := t.TempDir()
	style, err := bottle.ParseStyle("unix", 2)
	if err != nil {
		t.Fatal(err)
	}

	withGenerateArgs(t, dir, false)
	generateArgs.Lang = "c"
	color.NoColor = true
	if err := generateOne(new(bytes.Buffer), backends["c"], demoSchema, style); err != nil {
		t.Fatalf("generating C code: %v", err)
	}
	for _, name := range []string{"demo.h", "demo.c"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("generated file missing: %v", err)
		}
	}

	generateArgs.Check = true
	var report bytes.Buffer
	if err := generateOne(&report, backends["c"], demoSchema, style); err != nil {
		t.Fatalf("checking fresh C code: %v\n%s", err, report.String())
	}

	hdr := filepath.Join(dir, "demo.h")
	bs, err := os.ReadFile(hdr)
	if err != nil {
		t.Fatal(err)
	}
	stale := strings.Replace(string(bs), "NUM_Color", "NUM_Colour", 1)
	if err := os.WriteFile(hdr, []byte(stale), 0o644); err != nil {
		t.Fatal(err)
	}
	report.Reset()
	if err := generateOne(&report, backends["c"], demoSchema, style); err == nil {
		t.Fatal("checking stale C code succeeded")
	}
	got := report.String()
	for _, want := range []string{"--- " + hdr, "-  NUM_Colour", "+  NUM_Color"} {
		if !strings.Contains(got, want) {
			t.Errorf("diff does not contain %q:\n%s", want, got)
		}
	}
}

func TestIndenter(t *testing.T) {
	var buf bytes.Buffer
	in := indenter{w: &buf}
	in.s("top")
	in.indent(2)
	in.s("a\nb")
	in.f("c=%d", 1)
	want := "top\n    a\n    b\n    c=1\n"
	if got := buf.String(); got != want {
		t.Errorf("indenter wrote %q, want %q", got, want)
	}
}

func TestDuplicateDestinations(t *testing.T) {
	withGenerateArgs(t, t.TempDir(), false)
	var outs []*bottle.Output
	for range 2 {
		out, err := generate(backends["go"], demoSchema, bottle.Style{})
		if err != nil {
			t.Fatal(err)
		}
		outs = append(outs, out)
	}
	err := checkDestinations([]string{"a/demo.json", "b/demo.json"}, outs)
	if err == nil || !strings.Contains(err.Error(), "a/demo.json and b/demo.json both generate") {
		t.Errorf("checkDestinations = %v, want a duplicate file error", err)
	}
	if err := checkDestinations([]string{demoSchema}, outs[:1]); err != nil {
		t.Errorf("checkDestinations of one schema failed: %v", err)
	}
}

func TestWriteFilesAllOrNothing(t *testing.T) {
	dir := t.TempDir()
	out := &bottle.Output{}
	out.File("a.h").Printf("header\n")
	out.File("sub/a.c").Printf("source\n")

	if err := writeFiles(dir, out.Files()); err == nil {
		t.Fatal("writeFiles into a missing directory succeeded")
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ents) != 0 {
		var names []string
		for _, e := range ents {
			names = append(names, e.Name())
		}
		t.Errorf("failed writeFiles left files behind: %v", names)
	}

	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := writeFiles(dir, out.Files()); err != nil {
		t.Fatalf("writeFiles: %v", err)
	}
	for name, want := range map[string]string{"a.h": "header\n", "sub/a.c": "source\n"} {
		bs, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if string(bs) != want {
			t.Errorf("%s = %q, want %q", name, bs, want)
		}
	}
}
