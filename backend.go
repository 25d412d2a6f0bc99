package bottle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// A Backend emits code for one target language.
//
// [Generate] drives a Backend through one depth-first walk of a
// validated Schema. Every method receives the Output being
// accumulated; a Backend keeps no other per-run state that outlives
// the walk.
type Backend interface {
	// EnumSection is called once if the schema declares any enums.
	// It must call emit exactly once, which emits every enum in
	// declaration order, and may write a preamble and postamble
	// around it.
	EnumSection(out *Output, emit func() error) error
	// BlockSection is called once if the schema declares any
	// blocks. Like EnumSection, it must call emit exactly once.
	BlockSection(out *Output, emit func() error) error
	// Enum emits the declaration of one enum.
	Enum(out *Output, e *Enum) error
	// Block emits the declaration and codecs of one top-level block,
	// recursing into the variants of its union.
	Block(out *Output, b *Block) error
}

// A Finisher is a Backend that needs a final pass over its Output
// after the walk, for example to format it.
type Finisher interface {
	Finish(out *Output) error
}

// Generate validates s, then walks it with b and returns the
// generated files. If any step fails, Generate returns an error and
// no output: partially generated code is never returned.
func Generate(s *Schema, b Backend, style Style) (*Output, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}

	out := &Output{Schema: s, Style: style}
	if len(s.Enums) > 0 {
		err := section(func(emit func() error) error { return b.EnumSection(out, emit) }, func() error {
			for _, e := range s.Enums {
				if err := b.Enum(out, e); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if len(s.Blocks) > 0 {
		err := section(func(emit func() error) error { return b.BlockSection(out, emit) }, func() error {
			for _, blk := range s.Blocks {
				if err := b.Block(out, blk); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if f, ok := b.(Finisher); ok {
		if err := f.Finish(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// section runs a section callback, and checks that the backend
// emitted the section's contents exactly once.
func section(run func(emit func() error) error, body func() error) error {
	calls := 0
	emit := func() error {
		calls++
		if calls > 1 {
			return errors.New("section contents emitted twice")
		}
		return body()
	}
	if err := run(emit); err != nil {
		return err
	}
	if calls == 0 {
		return errors.New("backend did not emit section contents")
	}
	return nil
}

// Style is the whitespace style of generated files.
type Style struct {
	// Newline is the line terminator. If empty, "\n" is used.
	Newline string
	// Indent is the string written once per indentation level. If
	// empty, a tab is used.
	Indent string
}

// ParseStyle returns the Style for a newline style name ("unix" or
// "dos") and an indent width. An indent of zero or less indents with
// tabs.
func ParseStyle(newline string, indent int) (Style, error) {
	var ret Style
	switch strings.ToLower(newline) {
	case "", "unix", "lf":
		ret.Newline = "\n"
	case "dos", "windows", "crlf":
		ret.Newline = "\r\n"
	default:
		return Style{}, fmt.Errorf("unknown newline style %q", newline)
	}
	if indent > 0 {
		ret.Indent = strings.Repeat(" ", indent)
	} else {
		ret.Indent = "\t"
	}
	return ret, nil
}

func (s Style) newline() string {
	if s.Newline == "" {
		return "\n"
	}
	return s.Newline
}

func (s Style) indent() string {
	if s.Indent == "" {
		return "\t"
	}
	return s.Indent
}

// Output is the set of files produced by one generation run.
type Output struct {
	// Schema is the schema being generated.
	Schema *Schema
	// Style is the whitespace style of every file.
	Style Style

	files []*File
}

// File returns the output file called name, creating it if needed.
func (o *Output) File(name string) *File {
	for _, f := range o.files {
		if f.Name == name {
			return f
		}
	}
	f := &File{Name: name, style: o.Style, indentNext: true}
	o.files = append(o.files, f)
	return f
}

// Files returns the output files in creation order.
func (o *Output) Files() []*File {
	return slices.Clone(o.files)
}

// A File is one generated file. It is an io.Writer that indents
// every line it is given by the current indentation depth.
//
// Text is written with "\n" line endings, which [File.Bytes]
// translates into the Output's newline style.
type File struct {
	Name string

	style      Style
	buf        bytes.Buffer
	depth      int
	prefix     string
	indentNext bool
}

// Write writes bs, inserting the indentation prefix at the start of
// each line.
func (f *File) Write(bs []byte) (int, error) {
	ret := 0
	for len(bs) > 0 {
		var wr []byte
		idx := bytes.IndexByte(bs, '\n')
		if idx >= 0 {
			wr, bs = bs[:idx+1], bs[idx+1:]
		} else {
			wr, bs = bs, nil
		}
		// Blank lines are not indented.
		if f.indentNext && wr[0] != '\n' {
			f.buf.WriteString(f.prefix)
		}
		f.indentNext = idx >= 0
		f.buf.Write(wr)
		ret += len(wr)
	}
	return ret, nil
}

// Printf writes a formatted string.
func (f *File) Printf(msg string, args ...any) {
	fmt.Fprintf(f, msg, args...)
}

// Line writes a formatted string followed by a newline.
func (f *File) Line(msg string, args ...any) {
	fmt.Fprintf(f, msg+"\n", args...)
}

// Blank writes an empty line.
func (f *File) Blank() {
	io.WriteString(f, "\n")
}

// Indent increases the indentation depth by one.
func (f *File) Indent() {
	f.depth++
	f.prefix = strings.Repeat(f.style.indent(), f.depth)
}

// Dedent decreases the indentation depth by one.
func (f *File) Dedent() {
	if f.depth > 0 {
		f.depth--
	}
	f.prefix = strings.Repeat(f.style.indent(), f.depth)
}

// Depth returns the current indentation depth.
func (f *File) Depth() int {
	return f.depth
}

// Contents returns the text written so far, with "\n" line endings.
func (f *File) Contents() []byte {
	return f.buf.Bytes()
}

// Replace replaces the contents of f with bs, which uses "\n" line
// endings. It is meant for Finishers that reformat a file.
func (f *File) Replace(bs []byte) {
	f.buf.Reset()
	f.buf.Write(bs)
	f.indentNext = len(bs) == 0 || bs[len(bs)-1] == '\n'
}

// Bytes returns the contents of f in the Output's newline style.
func (f *File) Bytes() []byte {
	nl := f.style.newline()
	if nl == "\n" {
		return slices.Clone(f.buf.Bytes())
	}
	return bytes.ReplaceAll(f.buf.Bytes(), []byte("\n"), []byte(nl))
}
