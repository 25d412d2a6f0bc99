// Package cgen is a bottle backend that generates C. For a schema
// called Demo it writes demo.h, declaring a struct and codec functions
// per block, and demo.c implementing them.
//
// Every top-level block B gets:
//
//	enum BottleStatus Bottle_LoadBMem(struct BottleB *out, const void *mem, unsigned len);
//	enum BottleStatus Bottle_LoadBFile(struct BottleB *out, FILE *from);
//	enum BottleStatus Bottle_WriteBMem(const struct BottleB *from, void *mem, unsigned len, unsigned *written);
//	enum BottleStatus Bottle_WriteBFile(const struct BottleB *from, FILE *to);
//	enum BottleStatus Bottle_CheckB(const struct BottleB *from);
//	unsigned Bottle_SizeB(const struct BottleB *from);
//	void Bottle_FreeB(struct BottleB *v);
//
// Union variants are inlined in the struct of their parent, as a tag
// member named after the union's enum and a C union of anonymous
// structs.
package cgen

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/mds/mapset"
	"github.com/danderson/bottle"
	"github.com/danderson/bottle/fragments"
)

// Options configures the generated code.
type Options struct {
	// Order is the byte order of ints, floats and enums: "little"
	// (the default), "big" or "native".
	Order string
	// Source names the schema document in the generated files'
	// headers.
	Source string
}

// Generate generates the C header and source for s.
func Generate(s *bottle.Schema, opts Options, style bottle.Style) (*bottle.Output, error) {
	b, err := New(opts)
	if err != nil {
		return nil, err
	}
	return bottle.Generate(s, b, style)
}

// FileNames returns the names of the header and source files
// generated for the schema called name.
func FileNames(name string) (header, source string) {
	base := strings.ToLower(bottle.Identifier(name))
	return base + ".h", base + ".c"
}

// Backend is a [bottle.Backend] that emits C. A Backend generates a
// single schema.
type Backend struct {
	opts  Options
	order fragments.ByteOrder

	h, c   *bottle.File
	guard  string
	consts bottle.Namespace
	// tags holds struct and enum tags, which C keeps in one
	// namespace. funcs holds the exported function names.
	tags, funcs bottle.Namespace
	// preamble is whether the static codec helpers are written.
	preamble bool
}

// New returns a Backend with the given options.
func New(opts Options) (*Backend, error) {
	o, err := fragments.ParseByteOrder(opts.Order)
	if err != nil {
		return nil, err
	}
	ret := &Backend{opts: opts, order: o}
	for _, t := range []string{"BottleString", "BottleStatus"} {
		ret.tags.Declare(t, "")
	}
	ret.funcs.Declare("Bottle_StatusString", "")
	return ret, nil
}

// out returns the header and source files, writing their prologues on
// first use.
func (g *Backend) out(out *bottle.Output) (h, c *bottle.File) {
	if g.h != nil {
		return g.h, g.c
	}
	s := out.Schema
	src := g.opts.Source
	if src == "" {
		src = "schema " + s.Name
	}
	hname, cname := FileNames(s.Name)
	g.guard = "BOTTLE_" + strings.ToUpper(bottle.Identifier(s.Name)) + "_H"

	g.h = out.File(hname)
	g.h.Line("/* Code generated by bottle from %s. DO NOT EDIT. */", src)
	g.h.Blank()
	g.h.Line("#ifndef %s", g.guard)
	g.h.Line("#define %s", g.guard)
	g.h.Blank()
	writeText(g.h, headerPrologue)

	g.c = out.File(cname)
	g.c.Line("/* Code generated by bottle from %s. DO NOT EDIT. */", src)
	g.c.Blank()
	g.c.Line("#include \"%s\"", hname)
	g.c.Blank()
	g.c.Line("#include <stdlib.h>")
	g.c.Line("#include <string.h>")
	g.c.Blank()
	return g.h, g.c
}

// writeText writes text to f. Leading tabs on each line of text become
// indentation levels, so that f's style applies.
func writeText(f *bottle.File, text string) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimLeft(line, "\t")
		n := len(line) - len(body)
		for range n {
			f.Indent()
		}
		io.WriteString(f, body)
		for range n {
			f.Dedent()
		}
	}
}

const headerPrologue = `#include <stdint.h>
#include <stdio.h>

#ifdef __cplusplus
extern "C" {
#endif

#ifndef BOTTLE_COMMON
#define BOTTLE_COMMON

enum BottleStatus {
	BOTTLE_OK,
	BOTTLE_TRUNCATED,
	BOTTLE_OUT_OF_RANGE,
	BOTTLE_UNKNOWN_VARIANT_TAG,
	BOTTLE_INVALID_ENUM_VALUE,
	BOTTLE_STRING_TOO_LONG,
	BOTTLE_IO_ERROR,
	BOTTLE_NO_MEMORY
};

static inline const char *Bottle_StatusString(enum BottleStatus st){
	switch(st){
	case BOTTLE_OK:
		return "ok";
	case BOTTLE_TRUNCATED:
		return "truncated message";
	case BOTTLE_OUT_OF_RANGE:
		return "read or write out of buffer bounds";
	case BOTTLE_UNKNOWN_VARIANT_TAG:
		return "unknown variant tag";
	case BOTTLE_INVALID_ENUM_VALUE:
		return "invalid enum value";
	case BOTTLE_STRING_TOO_LONG:
		return "string too long";
	case BOTTLE_IO_ERROR:
		return "I/O error";
	case BOTTLE_NO_MEMORY:
		return "out of memory";
	}
	return "unknown status";
}

/* Loaded strings are allocated with malloc and NUL-terminated. */
struct BottleString {
	char *str;
	unsigned char len;
};

#endif

`

// The static helpers shared by the codecs of every block. The
// reader and writer work on memory, or on a FILE if file is set.
const sourcePrologue = `struct bottle_reader {
	const unsigned char *mem;
	unsigned len;
	unsigned at;
	FILE *file;
};

struct bottle_writer {
	unsigned char *mem;
	unsigned len;
	unsigned at;
	FILE *file;
};

static enum BottleStatus bottle_read(struct bottle_reader *r, void *to, unsigned n){
	if(n == 0)
		return BOTTLE_OK;
	if(r->file != NULL){
		if(fread(to, 1, n, r->file) != n)
			return BOTTLE_TRUNCATED;
		return BOTTLE_OK;
	}
	if(r->len - r->at < n)
		return BOTTLE_OUT_OF_RANGE;
	memcpy(to, r->mem + r->at, n);
	r->at += n;
	return BOTTLE_OK;
}

static enum BottleStatus bottle_write(struct bottle_writer *w, const void *from, unsigned n){
	if(n == 0)
		return BOTTLE_OK;
	if(w->file != NULL){
		if(fwrite(from, 1, n, w->file) != n)
			return BOTTLE_IO_ERROR;
		return BOTTLE_OK;
	}
	if(w->len - w->at < n)
		return BOTTLE_OUT_OF_RANGE;
	memcpy(w->mem + w->at, from, n);
	w->at += n;
	return BOTTLE_OK;
}

static enum BottleStatus bottle_read_u32(struct bottle_reader *r, uint32_t *to){
	unsigned char b[4];
	enum BottleStatus st = bottle_read(r, b, 4);
	if(st != BOTTLE_OK)
		return st;
%s	return BOTTLE_OK;
}

static enum BottleStatus bottle_write_u32(struct bottle_writer *w, uint32_t v){
	unsigned char b[4];
%s	return bottle_write(w, b, 4);
}

/* Reads an int32_t or a float. */
static enum BottleStatus bottle_read_word(struct bottle_reader *r, void *to){
	uint32_t u;
	enum BottleStatus st = bottle_read_u32(r, &u);
	if(st == BOTTLE_OK)
		memcpy(to, &u, 4);
	return st;
}

static enum BottleStatus bottle_write_word(struct bottle_writer *w, const void *from){
	uint32_t u;
	memcpy(&u, from, 4);
	return bottle_write_u32(w, u);
}

static enum BottleStatus bottle_read_enum(struct bottle_reader *r, uint32_t n, uint32_t *to){
	enum BottleStatus st = bottle_read_u32(r, to);
	if(st == BOTTLE_OK && *to >= n)
		return BOTTLE_INVALID_ENUM_VALUE;
	return st;
}

static enum BottleStatus bottle_read_tag(struct bottle_reader *r, unsigned char *tag){
	return bottle_read(r, tag, 1);
}

static enum BottleStatus bottle_write_tag(struct bottle_writer *w, unsigned char tag){
	return bottle_write(w, &tag, 1);
}

static enum BottleStatus bottle_read_string(struct bottle_reader *r, struct BottleString *to){
	unsigned char n;
	enum BottleStatus st = bottle_read(r, &n, 1);
	if(st != BOTTLE_OK)
		return st;
	to->str = malloc((size_t)n + 1);
	if(to->str == NULL)
		return BOTTLE_NO_MEMORY;
	to->len = n;
	st = bottle_read(r, to->str, n);
	to->str[n] = '\0';
	return st;
}

static enum BottleStatus bottle_write_string(struct bottle_writer *w, const struct BottleString *from){
	enum BottleStatus st = bottle_write(w, &from->len, 1);
	if(st != BOTTLE_OK)
		return st;
	return bottle_write(w, from->str, from->len);
}

`

// orderCode returns the statements of bottle_read_u32 and
// bottle_write_u32 that convert between b and the integer.
func orderCode(o fragments.ByteOrder) (dec, enc string) {
	switch o {
	case fragments.BigEndian:
		return "\t*to = (uint32_t)b[0] << 24 | (uint32_t)b[1] << 16 | (uint32_t)b[2] << 8 | (uint32_t)b[3];\n",
			"\tb[0] = v >> 24;\n\tb[1] = v >> 16 & 0xff;\n\tb[2] = v >> 8 & 0xff;\n\tb[3] = v & 0xff;\n"
	case fragments.NativeEndian:
		return "\tmemcpy(to, b, 4);\n", "\tmemcpy(b, &v, 4);\n"
	default:
		return "\t*to = (uint32_t)b[0] | (uint32_t)b[1] << 8 | (uint32_t)b[2] << 16 | (uint32_t)b[3] << 24;\n",
			"\tb[0] = v & 0xff;\n\tb[1] = v >> 8 & 0xff;\n\tb[2] = v >> 16 & 0xff;\n\tb[3] = v >> 24;\n"
	}
}

// keywords are the C and C++ keywords, which schema names are
// mangled to avoid.
var keywords = mapset.New(
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"inline", "int", "long", "register", "restrict", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
	"unsigned", "void", "volatile", "while",
	"bool", "catch", "class", "delete", "explicit", "friend", "mutable",
	"namespace", "new", "operator", "private", "protected", "public",
	"template", "this", "throw", "try", "virtual",
)

// cName returns the C member name for a field or variant.
func cName(name string) string {
	if keywords.Has(name) {
		return name + "_"
	}
	return name
}

func enumType(e *bottle.Enum) string { return "EnumBottle" + bottle.Identifier(e.Name) }
func numName(e *bottle.Enum) string  { return "NUM_" + bottle.Identifier(e.Name) }

func constName(e *bottle.Enum, variant string) string {
	return "e" + bottle.Identifier(e.Name) + bottle.Identifier(variant)
}

func structType(b *bottle.Block) string { return "Bottle" + bottle.Identifier(b.Name) }

// unionMembers returns the names of the tag and data members that
// hold a union in its parent struct.
func unionMembers(u *bottle.Union) (tag, data string) {
	tag = bottle.Identifier(u.Enum.Name)
	return tag, tag + "Data"
}

func hasUnion(b *bottle.Block) bool {
	return b.Union != nil && !b.Union.ZeroWidth()
}

// empty reports whether b has no members in C.
func empty(b *bottle.Block) bool {
	return len(b.Fields) == 0 && !hasUnion(b)
}

// hasStrings reports whether b or any of its variants has a string
// field.
func hasStrings(b *bottle.Block) bool {
	for _, fd := range b.Fields {
		if fd.Type.Kind == bottle.String {
			return true
		}
	}
	if hasUnion(b) {
		for _, v := range b.Union.Variants {
			if hasStrings(v) {
				return true
			}
		}
	}
	return false
}

func cType(t bottle.Type) string {
	switch t.Kind {
	case bottle.Int:
		return "int32_t"
	case bottle.Float:
		return "float"
	case bottle.String:
		return "struct BottleString"
	case bottle.EnumRef:
		return "enum " + enumType(t.Enum)
	default:
		panic(fmt.Sprintf("unknown field kind %v", t.Kind))
	}
}

func (g *Backend) EnumSection(out *bottle.Output, emit func() error) error {
	g.out(out)
	return emit()
}

func (g *Backend) BlockSection(out *bottle.Output, emit func() error) error {
	_, c := g.out(out)
	if !g.preamble {
		dec, enc := orderCode(g.order)
		writeText(c, fmt.Sprintf(sourcePrologue, dec, enc))
		g.preamble = true
	}
	return emit()
}

// Enum declares e. Enums with no variants still get a C enum, holding
// only their NUM_ constant.
func (g *Backend) Enum(out *bottle.Output, e *bottle.Enum) error {
	h, _ := g.out(out)
	path := "enums." + e.Name
	if err := g.tags.Declare(enumType(e), path); err != nil {
		return err
	}
	var consts []string
	for _, v := range e.Variants {
		c := constName(e, v)
		if err := g.consts.Declare(c, path+"."+v); err != nil {
			return err
		}
		consts = append(consts, c)
	}
	if err := g.consts.Declare(numName(e), path); err != nil {
		return err
	}

	h.Line("enum %s {", enumType(e))
	h.Indent()
	for _, c := range consts {
		h.Line("%s,", c)
	}
	h.Line("%s", numName(e))
	h.Dedent()
	h.Line("};")
	h.Blank()
	return nil
}

func (g *Backend) Block(out *bottle.Output, b *bottle.Block) error {
	path := "blocks." + b.Name
	if err := checkMembers(b, path); err != nil {
		return err
	}
	name := bottle.Identifier(b.Name)
	st := structType(b)
	if err := g.tags.Declare(st, path); err != nil {
		return err
	}
	for _, f := range apiFuncs {
		if err := g.funcs.Declare(fmt.Sprintf(f, name), path); err != nil {
			return err
		}
	}
	h, c := g.out(out)

	h.Line("/* %s is the %s block of the %s schema. */", st, b.Name, out.Schema.Name)
	h.Line("struct %s {", st)
	h.Indent()
	if empty(b) {
		h.Line("char unused;")
	}
	structBody(h, b)
	h.Dedent()
	h.Line("};")
	h.Blank()
	h.Line("enum BottleStatus Bottle_Load%sMem(struct %s *out, const void *mem, unsigned len);", name, st)
	h.Line("enum BottleStatus Bottle_Load%sFile(struct %s *out, FILE *from);", name, st)
	h.Line("enum BottleStatus Bottle_Write%sMem(const struct %s *from, void *mem, unsigned len, unsigned *written);", name, st)
	h.Line("enum BottleStatus Bottle_Write%sFile(const struct %s *from, FILE *to);", name, st)
	h.Line("enum BottleStatus Bottle_Check%s(const struct %s *from);", name, st)
	h.Line("unsigned Bottle_Size%s(const struct %s *from);", name, st)
	h.Line("void Bottle_Free%s(struct %s *v);", name, st)
	h.Blank()

	g.source(c, b)
	return nil
}

// apiFuncs are the exported functions generated for a top-level
// block.
var apiFuncs = []string{
	"Bottle_Load%sMem", "Bottle_Load%sFile",
	"Bottle_Write%sMem", "Bottle_Write%sFile",
	"Bottle_Check%s", "Bottle_Size%s", "Bottle_Free%s",
}

// checkMembers checks that the C members of b, and of its variants,
// do not collide. Union variants share the namespace of the struct
// that holds them.
func checkMembers(b *bottle.Block, path string) error {
	var members bottle.Namespace
	for _, fd := range b.Fields {
		if err := members.Declare(fd.Name, path+"."+fd.Name); err != nil {
			return err
		}
	}
	if !hasUnion(b) {
		return nil
	}
	tag, data := unionMembers(b.Union)
	for _, m := range []string{tag, data} {
		if err := members.Declare(m, path+".children"); err != nil {
			return err
		}
	}
	for _, v := range b.Union.Variants {
		if err := checkMembers(v, path+".children."+v.Name); err != nil {
			return err
		}
	}
	return nil
}

func structBody(h *bottle.File, b *bottle.Block) {
	for _, fd := range b.Fields {
		h.Line("%s %s;", cType(fd.Type), cName(fd.Name))
	}
	if !hasUnion(b) {
		return
	}
	u := b.Union
	tag, data := unionMembers(u)
	h.Line("enum %s %s;", enumType(u.Enum), tag)
	h.Line("union {")
	h.Indent()
	for _, v := range u.Variants {
		if empty(v) {
			h.Line("char %s; /* no fields */", cName(v.Name))
			continue
		}
		h.Line("struct {")
		h.Indent()
		structBody(h, v)
		h.Dedent()
		h.Line("} %s;", cName(v.Name))
	}
	h.Dedent()
	h.Line("} %s;", data)
}

// variantPath returns the member access prefix of the variant v of
// the union in the struct at prefix p.
func variantPath(p string, u *bottle.Union, v *bottle.Block) string {
	_, data := unionMembers(u)
	return p + data + "." + cName(v.Name) + "."
}

// try writes a call that returns its status on failure.
func try(f *bottle.File, call string, args ...any) {
	f.Line("if((st = "+call+") != BOTTLE_OK)", args...)
	f.Indent()
	f.Line("return st;")
	f.Dedent()
}

func (g *Backend) source(c *bottle.File, b *bottle.Block) {
	name := bottle.Identifier(b.Name)
	st := structType(b)
	wire := b.FixedSize() > 0

	c.Line("static enum BottleStatus bottle_load_%s(struct bottle_reader *r, struct %s *out){", name, st)
	c.Indent()
	if wire {
		c.Line("enum BottleStatus st;")
		load(c, b, "out->")
	} else {
		c.Line("(void)r;")
		c.Line("(void)out;")
	}
	c.Line("return BOTTLE_OK;")
	c.Dedent()
	c.Line("}")
	c.Blank()

	c.Line("static enum BottleStatus bottle_write_%s(struct bottle_writer *w, const struct %s *from){", name, st)
	c.Indent()
	if wire {
		c.Line("enum BottleStatus st;")
		write(c, b, "from->")
	} else {
		c.Line("(void)w;")
		c.Line("(void)from;")
	}
	c.Line("return BOTTLE_OK;")
	c.Dedent()
	c.Line("}")
	c.Blank()

	c.Line("enum BottleStatus Bottle_Check%s(const struct %s *from){", name, st)
	c.Indent()
	if !check(c, b, "from->") {
		c.Line("(void)from;")
	}
	c.Line("return BOTTLE_OK;")
	c.Dedent()
	c.Line("}")
	c.Blank()

	c.Line("unsigned Bottle_Size%s(const struct %s *from){", name, st)
	c.Indent()
	c.Line("unsigned n = %d;", b.FixedSize())
	if !size(c, b, "from->") {
		c.Line("(void)from;")
	}
	c.Line("return n;")
	c.Dedent()
	c.Line("}")
	c.Blank()

	c.Line("void Bottle_Free%s(struct %s *v){", name, st)
	c.Indent()
	if hasStrings(b) {
		free(c, b, "v->")
	} else {
		c.Line("(void)v;")
	}
	c.Dedent()
	c.Line("}")
	c.Blank()

	writeText(c, fmt.Sprintf(apiTemplate, name, st))
}

// apiTemplate is the exported codec functions of a top-level block.
// On a failed load, the strings allocated so far are freed and out is
// left zeroed.
const apiTemplate = `enum BottleStatus Bottle_Load%[1]sMem(struct %[2]s *out, const void *mem, unsigned len){
	struct bottle_reader r = {0};
	enum BottleStatus st;
	r.mem = mem;
	r.len = len;
	memset(out, 0, sizeof *out);
	st = bottle_load_%[1]s(&r, out);
	if(st != BOTTLE_OK){
		Bottle_Free%[1]s(out);
		memset(out, 0, sizeof *out);
	}
	return st;
}

enum BottleStatus Bottle_Load%[1]sFile(struct %[2]s *out, FILE *from){
	struct bottle_reader r = {0};
	enum BottleStatus st;
	r.file = from;
	memset(out, 0, sizeof *out);
	st = bottle_load_%[1]s(&r, out);
	if(st != BOTTLE_OK){
		Bottle_Free%[1]s(out);
		memset(out, 0, sizeof *out);
	}
	return st;
}

enum BottleStatus Bottle_Write%[1]sMem(const struct %[2]s *from, void *mem, unsigned len, unsigned *written){
	struct bottle_writer w = {0};
	enum BottleStatus st = Bottle_Check%[1]s(from);
	if(written != NULL)
		*written = 0;
	if(st != BOTTLE_OK)
		return st;
	w.mem = mem;
	w.len = len;
	st = bottle_write_%[1]s(&w, from);
	if(written != NULL)
		*written = w.at;
	return st;
}

enum BottleStatus Bottle_Write%[1]sFile(const struct %[2]s *from, FILE *to){
	struct bottle_writer w = {0};
	enum BottleStatus st = Bottle_Check%[1]s(from);
	if(st != BOTTLE_OK)
		return st;
	w.file = to;
	return bottle_write_%[1]s(&w, from);
}

`

func load(c *bottle.File, b *bottle.Block, p string) {
	for _, fd := range b.Fields {
		m := p + cName(fd.Name)
		switch fd.Type.Kind {
		case bottle.Int, bottle.Float:
			try(c, "bottle_read_word(r, &%s)", m)
		case bottle.String:
			try(c, "bottle_read_string(r, &%s)", m)
		case bottle.EnumRef:
			e := fd.Type.Enum
			if e.ZeroWidth() {
				continue
			}
			c.Line("{")
			c.Indent()
			c.Line("uint32_t u;")
			try(c, "bottle_read_enum(r, %s, &u)", numName(e))
			c.Line("%s = (enum %s)u;", m, enumType(e))
			c.Dedent()
			c.Line("}")
		}
	}
	if !hasUnion(b) {
		return
	}
	u := b.Union
	tag, _ := unionMembers(u)
	c.Line("{")
	c.Indent()
	c.Line("unsigned char tag;")
	try(c, "bottle_read_tag(r, &tag)")
	c.Line("switch(tag){")
	for i, v := range u.Variants {
		c.Line("case %d:", i)
		c.Indent()
		c.Line("%s%s = %s;", p, tag, constName(u.Enum, v.Name))
		load(c, v, variantPath(p, u, v))
		c.Line("break;")
		c.Dedent()
	}
	c.Line("default:")
	c.Indent()
	c.Line("return BOTTLE_UNKNOWN_VARIANT_TAG;")
	c.Dedent()
	c.Line("}")
	c.Dedent()
	c.Line("}")
}

func write(c *bottle.File, b *bottle.Block, p string) {
	for _, fd := range b.Fields {
		m := p + cName(fd.Name)
		switch fd.Type.Kind {
		case bottle.Int, bottle.Float:
			try(c, "bottle_write_word(w, &%s)", m)
		case bottle.String:
			try(c, "bottle_write_string(w, &%s)", m)
		case bottle.EnumRef:
			if !fd.Type.Enum.ZeroWidth() {
				try(c, "bottle_write_u32(w, (uint32_t)%s)", m)
			}
		}
	}
	if !hasUnion(b) {
		return
	}
	u := b.Union
	tag, _ := unionMembers(u)
	c.Line("switch(%s%s){", p, tag)
	for i, v := range u.Variants {
		c.Line("case %s:", constName(u.Enum, v.Name))
		c.Indent()
		try(c, "bottle_write_tag(w, %d)", i)
		write(c, v, variantPath(p, u, v))
		c.Line("break;")
		c.Dedent()
	}
	c.Line("default:")
	c.Indent()
	c.Line("return BOTTLE_INVALID_ENUM_VALUE;")
	c.Dedent()
	c.Line("}")
}

// check writes the checks of b's values, and reports whether it wrote
// anything.
func check(c *bottle.File, b *bottle.Block, p string) bool {
	wrote := false
	for _, fd := range b.Fields {
		m := p + cName(fd.Name)
		switch fd.Type.Kind {
		case bottle.String:
			if n := fd.Type.Limit(); n < 255 {
				c.Line("if(%s.len > %d)", m, n)
				c.Indent()
				c.Line("return BOTTLE_STRING_TOO_LONG;")
				c.Dedent()
				wrote = true
			}
		case bottle.EnumRef:
			if e := fd.Type.Enum; !e.ZeroWidth() {
				c.Line("if((uint32_t)%s >= %s)", m, numName(e))
				c.Indent()
				c.Line("return BOTTLE_INVALID_ENUM_VALUE;")
				c.Dedent()
				wrote = true
			}
		}
	}
	if !hasUnion(b) {
		return wrote
	}
	u := b.Union
	tag, _ := unionMembers(u)
	c.Line("switch(%s%s){", p, tag)
	for _, v := range u.Variants {
		c.Line("case %s:", constName(u.Enum, v.Name))
		c.Indent()
		check(c, v, variantPath(p, u, v))
		c.Line("break;")
		c.Dedent()
	}
	c.Line("default:")
	c.Indent()
	c.Line("return BOTTLE_INVALID_ENUM_VALUE;")
	c.Dedent()
	c.Line("}")
	return true
}

// size writes the variable part of b's size, and reports whether it
// wrote anything.
func size(c *bottle.File, b *bottle.Block, p string) bool {
	wrote := false
	for _, fd := range b.Fields {
		if fd.Type.Kind == bottle.String {
			c.Line("n += %s%s.len;", p, cName(fd.Name))
			wrote = true
		}
	}
	if !hasUnion(b) {
		return wrote
	}
	u := b.Union
	tag, _ := unionMembers(u)
	var sized []*bottle.Block
	for _, v := range u.Variants {
		if v.FixedSize() > 0 || hasStrings(v) {
			sized = append(sized, v)
		}
	}
	if len(sized) == 0 {
		return wrote
	}
	c.Line("switch(%s%s){", p, tag)
	for _, v := range sized {
		c.Line("case %s:", constName(u.Enum, v.Name))
		c.Indent()
		if n := v.FixedSize(); n > 0 {
			c.Line("n += %d;", n)
		}
		size(c, v, variantPath(p, u, v))
		c.Line("break;")
		c.Dedent()
	}
	c.Line("default:")
	c.Indent()
	c.Line("break;")
	c.Dedent()
	c.Line("}")
	return true
}

// free writes the release of b's strings. b must have strings.
func free(c *bottle.File, b *bottle.Block, p string) {
	for _, fd := range b.Fields {
		if fd.Type.Kind != bottle.String {
			continue
		}
		m := p + cName(fd.Name)
		c.Line("free(%s.str);", m)
		c.Line("%s.str = NULL;", m)
		c.Line("%s.len = 0;", m)
	}
	if !hasUnion(b) {
		return
	}
	u := b.Union
	tag, _ := unionMembers(u)
	var owners []*bottle.Block
	for _, v := range u.Variants {
		if hasStrings(v) {
			owners = append(owners, v)
		}
	}
	if len(owners) == 0 {
		return
	}
	c.Line("switch(%s%s){", p, tag)
	for _, v := range owners {
		c.Line("case %s:", constName(u.Enum, v.Name))
		c.Indent()
		free(c, v, variantPath(p, u, v))
		c.Line("break;")
		c.Dedent()
	}
	c.Line("default:")
	c.Indent()
	c.Line("break;")
	c.Dedent()
	c.Line("}")
}

// Finish closes the header.
func (g *Backend) Finish(out *bottle.Output) error {
	h, _ := g.out(out)
	h.Line("#ifdef __cplusplus")
	h.Line("}")
	h.Line("#endif")
	h.Blank()
	h.Line("#endif /* %s */", g.guard)
	return nil
}
