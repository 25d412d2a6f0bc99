// Package jsongen is a bottle backend that echoes a schema back as a
// normalized JSON schema document.
//
// Parsing the output yields a schema equal to the input. The echo is
// useful to convert YAML schemas to JSON, and to inspect what the
// loader made of a document.
package jsongen

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/danderson/bottle"
	"github.com/goccy/go-json"
)

// Backend is a [bottle.Backend] that emits JSON. A Backend generates a
// single schema.
type Backend struct {
	file *bottle.File
	// n counts the entries written in the current mapping, to place
	// separators.
	n int
}

// Generate echoes s as a JSON document, in the given style.
func Generate(s *bottle.Schema, style bottle.Style) (*bottle.Output, error) {
	return bottle.Generate(s, &Backend{}, style)
}

// FileName returns the name of the file generated for the schema
// called name.
func FileName(name string) string {
	return name + ".json"
}

func (g *Backend) out(out *bottle.Output) *bottle.File {
	if g.file == nil {
		g.file = out.File(FileName(out.Schema.Name))
		g.file.Printf("{\n")
		g.file.Indent()
		g.file.Printf("%s: %s", quote("name"), quote(out.Schema.Name))
	}
	return g.file
}

func quote(s string) string {
	bs, err := json.Marshal(s)
	if err != nil {
		// Marshaling a string cannot fail.
		panic(err)
	}
	return string(bs)
}

// entry starts a new entry of the current mapping.
func (g *Backend) entry(f *bottle.File) {
	if g.n > 0 {
		f.Printf(",")
	}
	f.Printf("\n")
	g.n++
}

// open writes the key of a nested mapping and opens it.
func (g *Backend) open(f *bottle.File, key string) {
	g.entry(f)
	f.Printf("%s: {", quote(key))
	f.Indent()
	g.n = 0
}

// close closes a mapping opened with open. The closed mapping is an
// entry of its parent, so the parent's count is at least one.
func (g *Backend) close(f *bottle.File) {
	f.Dedent()
	if g.n > 0 {
		f.Printf("\n")
	}
	f.Printf("}")
	g.n = 1
}

func (g *Backend) EnumSection(out *bottle.Output, emit func() error) error {
	f := g.out(out)
	g.n = 1
	g.open(f, "enums")
	if err := emit(); err != nil {
		return err
	}
	g.close(f)
	return nil
}

func (g *Backend) BlockSection(out *bottle.Output, emit func() error) error {
	f := g.out(out)
	g.n = 1
	g.open(f, "blocks")
	if err := emit(); err != nil {
		return err
	}
	g.close(f)
	return nil
}

func (g *Backend) Enum(out *bottle.Output, e *bottle.Enum) error {
	f := g.out(out)
	g.entry(f)
	f.Printf("%s: [", quote(e.Name))
	for i, v := range e.Variants {
		if i > 0 {
			f.Printf(", ")
		}
		f.Printf("%s", quote(v))
	}
	f.Printf("]")
	return nil
}

func (g *Backend) Block(out *bottle.Output, b *bottle.Block) error {
	g.block(g.out(out), b)
	return nil
}

func (g *Backend) block(f *bottle.File, b *bottle.Block) {
	g.open(f, b.Name)
	for _, fd := range b.Fields {
		g.entry(f)
		f.Printf("%s: %s", quote(fd.Name), fieldType(fd.Type))
	}
	if u := b.Union; u != nil {
		g.open(f, "children")
		g.entry(f)
		f.Printf("%s: %s", quote("enum"), quote(u.Enum.Name))
		for _, v := range u.Variants {
			g.block(f, v)
		}
		g.close(f)
	}
	g.close(f)
}

func fieldType(t bottle.Type) string {
	if n, ok := t.MaxLen.GetOK(); ok {
		return fmt.Sprintf("{%s: %s, %s: %s}", quote("type"), quote(t.Token()), quote("len"), strconv.Itoa(n))
	}
	return quote(t.Token())
}

// Finish closes the document and checks that it is valid JSON.
func (g *Backend) Finish(out *bottle.Output) error {
	f := g.out(out)
	f.Dedent()
	f.Printf("\n}\n")
	if !json.Valid(f.Contents()) {
		return errors.New("generated invalid JSON")
	}
	return nil
}
