// Package gogen is the reference bottle backend. It generates Go
// types for a schema, with buffer and stream codecs built on package
// fragments.
package gogen

import (
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"strings"

	"github.com/danderson/bottle"
	"github.com/danderson/bottle/fragments"
)

// Options configures the generated code.
type Options struct {
	// Package is the package name of the generated file. If empty,
	// the lower-cased schema name is used.
	Package string
	// Order is the byte order of ints, floats and enums: "little"
	// (the default), "big" or "native".
	Order string
	// Source names the schema document in the generated file's
	// header.
	Source string
}

// Generate generates the Go code for s.
func Generate(s *bottle.Schema, opts Options) (*bottle.Output, error) {
	b, err := New(opts)
	if err != nil {
		return nil, err
	}
	return bottle.Generate(s, b, bottle.Style{})
}

// Backend is a [bottle.Backend] that emits Go. A Backend generates a
// single schema.
type Backend struct {
	opts  Options
	order string

	schema string
	file   *bottle.File
	types  bottle.Namespace
}

// New returns a Backend with the given options.
func New(opts Options) (*Backend, error) {
	o, err := fragments.ParseByteOrder(opts.Order)
	if err != nil {
		return nil, err
	}
	ret := &Backend{opts: opts}
	switch o {
	case fragments.BigEndian:
		ret.order = "fragments.BigEndian"
	case fragments.NativeEndian:
		ret.order = "fragments.NativeEndian"
	default:
		ret.order = "fragments.LittleEndian"
	}
	return ret, nil
}

// FileName returns the name of the file generated for the schema
// called name.
func FileName(name string) string {
	return strings.ToLower(bottle.Identifier(name)) + "_bottle.go"
}

// out returns the output file, writing its header on first use.
func (g *Backend) out(out *bottle.Output) (*bottle.File, error) {
	if g.file != nil {
		return g.file, nil
	}
	s := out.Schema
	pkg := g.opts.Package
	if pkg == "" {
		pkg = strings.ToLower(bottle.Identifier(s.Name))
	}
	if !token.IsIdentifier(pkg) || token.IsKeyword(pkg) {
		return nil, fmt.Errorf("%q is not a valid Go package name", pkg)
	}
	src := g.opts.Source
	if src == "" {
		src = "schema " + s.Name
	}

	f := out.File(FileName(s.Name))
	f.Printf("// Code generated by bottle from %s. DO NOT EDIT.\n\npackage %s\n\n", src, pkg)
	switch {
	case len(s.Blocks) > 0:
		f.Printf("import (\n\t\"io\"\n\n\t\"github.com/danderson/bottle/fragments\"\n)\n\n")
		f.Printf("var bottleOrder = %s\n\n", g.order)
	case hasVariants(s.Enums):
		f.Printf("import \"github.com/danderson/bottle/fragments\"\n\n")
	}
	g.schema = s.Name
	g.file = f
	return f, nil
}

func hasVariants(es []*bottle.Enum) bool {
	for _, e := range es {
		if !e.ZeroWidth() {
			return true
		}
	}
	return false
}

func (g *Backend) EnumSection(out *bottle.Output, emit func() error) error {
	if _, err := g.out(out); err != nil {
		return err
	}
	return emit()
}

func (g *Backend) BlockSection(out *bottle.Output, emit func() error) error {
	if _, err := g.out(out); err != nil {
		return err
	}
	return emit()
}

func (g *Backend) Enum(out *bottle.Output, e *bottle.Enum) error {
	f, err := g.out(out)
	if err != nil {
		return err
	}
	name := bottle.Identifier(e.Name)
	path := "enums." + e.Name
	if err := g.types.Declare(e.Name, path); err != nil {
		return err
	}

	if e.ZeroWidth() {
		f.Printf("// %s is an enum with no variants. It occupies no space on the wire.\ntype %s struct{}\n\n", name, name)
		return nil
	}

	f.Printf("// %s is an enum of the %s schema.\ntype %s uint32\n\nconst (\n", name, out.Schema.Name, name)
	for i, v := range e.Variants {
		c := name + bottle.Identifier(v)
		if err := g.types.Declare(c, path+"."+v); err != nil {
			return err
		}
		f.Printf("%s %s = %d\n", c, name, i)
	}
	f.Printf(")\n\n")

	f.Printf("func (v %s) String() string {\nswitch v {\n", name)
	for _, v := range e.Variants {
		f.Printf("case %s%s:\nreturn %q\n", name, bottle.Identifier(v), v)
	}
	f.Printf("default:\nreturn fragments.EnumString(%q, uint32(v))\n}\n}\n\n", e.Name)
	return nil
}

func (g *Backend) Block(out *bottle.Output, b *bottle.Block) error {
	f, err := g.out(out)
	if err != nil {
		return err
	}
	t := &blockType{
		Block:    b,
		name:     bottle.Identifier(b.Name),
		path:     "blocks." + b.Name,
		topLevel: true,
	}
	return g.block(f, t)
}

// blockType is a block, or a union variant, and the Go names derived
// for it.
type blockType struct {
	*bottle.Block
	// name is the Go type name.
	name string
	// path locates the block in the schema, for errors.
	path string
	// topLevel is whether the block is declared at the top level of
	// the schema, and so gets an exported codec API.
	topLevel bool
	// tagEnum is, for a union variant, the enum of the enclosing
	// union.
	tagEnum *bottle.Enum
	// tagVariant is the enum variant a union variant is for.
	tagVariant string
	// parent is the enclosing block of a union variant.
	parent *blockType
}

func (t *blockType) hasUnion() bool {
	return t.Union != nil && !t.Union.ZeroWidth()
}

func (t *blockType) variantInterface() string {
	return t.name + "Variant"
}

func (t *blockType) variants() []*blockType {
	if !t.hasUnion() {
		return nil
	}
	ret := make([]*blockType, len(t.Union.Variants))
	for i, v := range t.Union.Variants {
		ret[i] = &blockType{
			Block:      v,
			name:       t.name + bottle.Identifier(v.Name),
			path:       t.path + ".children." + v.Name,
			tagEnum:    t.Union.Enum,
			tagVariant: v.Name,
			parent:     t,
		}
	}
	return ret
}

// reservedMembers are the exported methods and fields the generator
// adds to block types.
var reservedMembers = []string{"MarshalBottle", "UnmarshalBottle", "WriteBottle", "ReadBottle", "CheckBottle", "Variant"}

// declare reserves the type names of t and checks its members for
// collisions.
func (g *Backend) declare(t *blockType) error {
	if err := g.types.Declare(t.name, t.path); err != nil {
		return err
	}
	if t.hasUnion() {
		if err := g.types.Declare(t.variantInterface(), t.path+".children"); err != nil {
			return err
		}
	}

	var members bottle.Namespace
	for _, r := range reservedMembers {
		members.Declare(r, "")
	}
	if t.tagEnum != nil {
		if err := members.Declare(t.tagEnum.Name, t.path); err != nil {
			return err
		}
	}
	for _, fd := range t.Fields {
		if err := members.Declare(fd.Name, t.path+"."+fd.Name); err != nil {
			return err
		}
	}
	return nil
}

func (g *Backend) block(f *bottle.File, t *blockType) error {
	if err := g.declare(t); err != nil {
		return err
	}

	g.structDecl(f, t)
	vs := t.variants()
	if t.hasUnion() {
		g.unionDecl(f, t, vs)
	}
	if t.tagEnum != nil {
		f.Printf("func (*%s) %s() %s { return %s%s }\n", t.name, bottle.Identifier(t.tagEnum.Name), bottle.Identifier(t.tagEnum.Name), bottle.Identifier(t.tagEnum.Name), bottle.Identifier(t.tagVariant))
		f.Printf("func (*%s) is%s() {}\n\n", t.name, t.parent.variantInterface())
	}

	g.size(f, t, vs)
	for _, tr := range transports {
		g.encode(f, t, vs, tr)
	}
	for _, tr := range transports {
		g.decode(f, t, vs, tr)
	}
	g.check(f, t, vs)
	if t.topLevel {
		g.api(f, t)
	}

	for _, v := range vs {
		if err := g.block(f, v); err != nil {
			return err
		}
	}
	return nil
}

func goType(t bottle.Type) string {
	switch t.Kind {
	case bottle.Int:
		return "int32"
	case bottle.Float:
		return "float32"
	case bottle.String:
		return "string"
	case bottle.EnumRef:
		return bottle.Identifier(t.Enum.Name)
	default:
		panic(fmt.Sprintf("unknown field kind %v", t.Kind))
	}
}

func (g *Backend) structDecl(f *bottle.File, t *blockType) {
	switch {
	case t.parent == nil:
		f.Printf("// %s is the %s block of the %s schema.\n", t.name, t.Name, g.schema)
	default:
		f.Printf("// %s is the %s variant of %s.\n", t.name, t.tagVariant, t.parent.name)
	}
	f.Printf("type %s struct {\n", t.name)
	for _, fd := range t.Fields {
		f.Printf("%s %s\n", bottle.Identifier(fd.Name), goType(fd.Type))
	}
	if t.hasUnion() {
		if len(t.Fields) > 0 {
			f.Printf("\n")
		}
		f.Printf("// Variant is the selected %s variant.\nVariant %s\n", bottle.Identifier(t.Union.Enum.Name), t.variantInterface())
	}
	f.Printf("}\n\n")
}

func (g *Backend) unionDecl(f *bottle.File, t *blockType, vs []*blockType) {
	enum := bottle.Identifier(t.Union.Enum.Name)
	var impls []string
	for _, v := range vs {
		impls = append(impls, "*"+v.name)
	}
	f.Printf("// %s is a variant of %s: one of %s.\n", t.variantInterface(), t.name, strings.Join(impls, ", "))
	f.Printf("type %s interface {\n%s() %s\nis%s()\n}\n\n", t.variantInterface(), enum, enum, t.variantInterface())
}

// A transport is a pair of encoder and decoder types for the same
// medium. The encode and decode methods for every transport are
// generated from the same walk over the block.
type transport struct {
	encMethod, encType string
	decMethod, decType string
}

var transports = []transport{
	{"encodeBottle", "*fragments.Encoder", "decodeBottle", "*fragments.Decoder"},
	{"writeBottle", "*fragments.StreamEncoder", "readBottle", "*fragments.StreamDecoder"},
}

func (g *Backend) size(f *bottle.File, t *blockType, vs []*blockType) {
	f.Printf("func (v *%s) bottleSize() int {\n", t.name)
	f.Printf("n := %d\n", t.FixedSize())
	for _, fd := range t.Fields {
		if fd.Type.Kind == bottle.String {
			f.Printf("n += len(v.%s)\n", bottle.Identifier(fd.Name))
		}
	}
	if len(vs) > 0 {
		f.Printf("switch c := v.Variant.(type) {\n")
		for _, v := range vs {
			f.Printf("case *%s:\nif c != nil {\nn += c.bottleSize()\n}\n", v.name)
		}
		f.Printf("}\n")
	}
	f.Printf("return n\n}\n\n")
}

func (g *Backend) encode(f *bottle.File, t *blockType, vs []*blockType, tr transport) {
	f.Printf("func (v *%s) %s(e %s) {\n", t.name, tr.encMethod, tr.encType)
	for _, fd := range t.Fields {
		name := bottle.Identifier(fd.Name)
		switch fd.Type.Kind {
		case bottle.Int:
			f.Printf("e.Int32(v.%s)\n", name)
		case bottle.Float:
			f.Printf("e.Float32(v.%s)\n", name)
		case bottle.String:
			f.Printf("e.String(v.%s)\n", name)
		case bottle.EnumRef:
			if !fd.Type.Enum.ZeroWidth() {
				f.Printf("e.Uint32(uint32(v.%s))\n", name)
			}
		}
	}
	if len(vs) > 0 {
		f.Printf("switch c := v.Variant.(type) {\n")
		for i, v := range vs {
			f.Printf("case *%s:\nif c == nil {\npanic(fragments.MissingVariant(%q))\n}\ne.Uint8(%d)\nc.%s(e)\n", v.name, t.name, i, tr.encMethod)
		}
		f.Printf("default:\npanic(fragments.MissingVariant(%q))\n}\n", t.name)
	}
	f.Printf("}\n\n")
}

func (g *Backend) decode(f *bottle.File, t *blockType, vs []*blockType, tr transport) {
	f.Printf("func (v *%s) %s(d %s) error {\n", t.name, tr.decMethod, tr.decType)
	declared := false
	for _, fd := range t.Fields {
		if fd.Type.Width() == 0 {
			continue
		}
		if !declared {
			f.Printf("var err error\n")
			declared = true
		}
		name := bottle.Identifier(fd.Name)
		var read string
		switch fd.Type.Kind {
		case bottle.Int:
			read = "d.Int32()"
		case bottle.Float:
			read = "d.Float32()"
		case bottle.String:
			read = "d.String()"
		case bottle.EnumRef:
			e := fd.Type.Enum
			read = fmt.Sprintf("fragments.Enum[%s](d, %q, %d)", bottle.Identifier(e.Name), e.Name, len(e.Variants))
		}
		f.Printf("if v.%s, err = %s; err != nil {\nreturn err\n}\n", name, read)
	}
	if len(vs) > 0 {
		f.Printf("tag, err := fragments.Variant(d, %q, %d)\nif err != nil {\nreturn err\n}\n", t.name, len(vs))
		f.Printf("switch tag {\n")
		for i, v := range vs {
			f.Printf("case %d:\nc := new(%s)\nif err := c.%s(d); err != nil {\nreturn err\n}\nv.Variant = c\n", i, v.name, tr.decMethod)
		}
		f.Printf("}\n")
	}
	f.Printf("return nil\n}\n\n")
}

func (g *Backend) check(f *bottle.File, t *blockType, vs []*blockType) {
	f.Printf("func (v *%s) checkBottle() error {\n", t.name)
	for _, fd := range t.Fields {
		name := bottle.Identifier(fd.Name)
		field := t.name + "." + name
		switch fd.Type.Kind {
		case bottle.String:
			f.Printf("if err := fragments.CheckString(%q, v.%s, %d); err != nil {\nreturn err\n}\n", field, name, fd.Type.Limit())
		case bottle.EnumRef:
			if e := fd.Type.Enum; !e.ZeroWidth() {
				f.Printf("if err := fragments.CheckEnum(%q, uint32(v.%s), %d); err != nil {\nreturn err\n}\n", field, name, len(e.Variants))
			}
		}
	}
	if len(vs) > 0 {
		f.Printf("switch c := v.Variant.(type) {\n")
		for _, v := range vs {
			f.Printf("case *%s:\nif c != nil {\nreturn c.checkBottle()\n}\n", v.name)
		}
		f.Printf("}\nreturn fragments.MissingVariant(%q)\n}\n\n", t.name)
		return
	}
	f.Printf("return nil\n}\n\n")
}

// api emits the exported codec methods of a top-level block.
func (g *Backend) api(f *bottle.File, t *blockType) {
	f.Printf(`// MarshalBottle returns the bottle encoding of v.
//
// MarshalBottle panics if a string is longer than 255 bytes, or if a
// union has no variant. CheckBottle reports these and other values
// that would not decode back to v.
func (v *%[1]s) MarshalBottle() []byte {
	e := fragments.Encoder{Order: bottleOrder, Out: make([]byte, 0, v.bottleSize())}
	v.encodeBottle(&e)
	return e.Out
}

// UnmarshalBottle decodes one %[1]s from the start of bs into v.
// Bytes following the message are ignored. On error, v is unchanged.
func (v *%[1]s) UnmarshalBottle(bs []byte) error {
	var ret %[1]s
	if err := ret.decodeBottle(&fragments.Decoder{Order: bottleOrder, In: bs}); err != nil {
		return err
	}
	*v = ret
	return nil
}

// WriteBottle writes the bottle encoding of v to w. It returns the
// first error reported by w.
func (v *%[1]s) WriteBottle(w io.Writer) error {
	e := fragments.StreamEncoder{Order: bottleOrder, Out: w}
	v.writeBottle(&e)
	return e.Err()
}

// ReadBottle reads one %[1]s from r into v. On error, v is unchanged.
func (v *%[1]s) ReadBottle(r io.Reader) error {
	var ret %[1]s
	if err := ret.readBottle(&fragments.StreamDecoder{Order: bottleOrder, In: r}); err != nil {
		return err
	}
	*v = ret
	return nil
}

// CheckBottle reports whether v can be encoded and decoded back to
// itself.
func (v *%[1]s) CheckBottle() error {
	return v.checkBottle()
}

`, t.name)
}

// Finish formats the generated file.
func (g *Backend) Finish(out *bottle.Output) error {
	f, err := g.out(out)
	if err != nil {
		return err
	}
	bs, err := format.Source(f.Contents())
	if err != nil {
		return errors.Join(errors.New("generated code does not parse"), err)
	}
	f.Replace(bs)
	return nil
}
