package cgen

import (
	"errors"
	"strings"
	"testing"

	"github.com/danderson/bottle"
)

func demo(t *testing.T) *bottle.Schema {
	t.Helper()
	s, err := bottle.LoadFile("../demo/demo.json")
	if err != nil {
		t.Fatalf("loading demo schema: %v", err)
	}
	return s
}

func files(t *testing.T, s *bottle.Schema, opts Options, style bottle.Style) (h, c string) {
	t.Helper()
	out, err := Generate(s, opts, style)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	fs := out.Files()
	if len(fs) != 2 {
		t.Fatalf("Generate made %d files, want 2", len(fs))
	}
	hname, cname := FileNames(s.Name)
	if fs[0].Name != hname || fs[1].Name != cname {
		t.Fatalf("Generate made files %q and %q, want %q and %q", fs[0].Name, fs[1].Name, hname, cname)
	}
	return string(fs[0].Bytes()), string(fs[1].Bytes())
}

// contains checks that got contains every snippet, after converting
// the snippets' tabs to the indent of the style.
func contains(t *testing.T, file, got string, indent string, snippets ...string) {
	t.Helper()
	for _, want := range snippets {
		want = strings.ReplaceAll(want, "\t", indent)
		if !strings.Contains(got, want) {
			t.Errorf("%s does not contain:\n%s\n\ngot:\n%s", file, want, got)
		}
	}
}

func TestFileNames(t *testing.T) {
	h, c := FileNames("net_msg")
	if h != "netmsg.h" || c != "netmsg.c" {
		t.Errorf("FileNames(net_msg) = %q, %q, want netmsg.h, netmsg.c", h, c)
	}
}

func TestHeader(t *testing.T) {
	h, _ := files(t, demo(t), Options{Source: "demo.json"}, bottle.Style{})
	contains(t, "demo.h", h, "\t",
		"/* Code generated by bottle from demo.json. DO NOT EDIT. */\n\n#ifndef BOTTLE_DEMO_H\n#define BOTTLE_DEMO_H\n",
		`enum EnumBottleColor {
	eColorRed,
	eColorGreen,
	eColorBlue,
	NUM_Color
};
`,
		`enum EnumBottleNothing {
	NUM_Nothing
};
`,
		`struct BottlePixel {
	enum EnumBottleColor color;
	int32_t x;
	int32_t y;
};
`,
		`struct BottleShape {
	enum EnumBottleShapeKind ShapeKind;
	union {
		struct {
			float radius;
		} circle;
		struct {
			float side;
		} square;
	} ShapeKindData;
};
`,
		`struct BottleEvent {
	int32_t time;
	struct BottleString source;
	enum EnumBottleEventKind EventKind;
	union {
		struct {
			int32_t x;
			int32_t y;
			enum EnumBottleButton Button;
			union {
				char right; /* no fields */
				char left; /* no fields */
			} ButtonData;
		} click;
		struct {
			int32_t code;
			struct BottleString text;
		} key;
	} EventKindData;
};
`,
		`struct BottleVoid {
	enum EnumBottleNothing nothing;
};
`,
		"enum BottleStatus Bottle_LoadEventMem(struct BottleEvent *out, const void *mem, unsigned len);\n",
		"enum BottleStatus Bottle_LoadEventFile(struct BottleEvent *out, FILE *from);\n",
		"enum BottleStatus Bottle_WriteEventMem(const struct BottleEvent *from, void *mem, unsigned len, unsigned *written);\n",
		"enum BottleStatus Bottle_WriteEventFile(const struct BottleEvent *from, FILE *to);\n",
		"void Bottle_FreeVoid(struct BottleVoid *v);\n",
		"#endif /* BOTTLE_DEMO_H */\n",
	)
	if !strings.HasSuffix(h, "#endif /* BOTTLE_DEMO_H */\n") {
		t.Errorf("demo.h does not end with its include guard")
	}
}

func TestSource(t *testing.T) {
	_, c := files(t, demo(t), Options{}, bottle.Style{})
	contains(t, "demo.c", c, "\t",
		"/* Code generated by bottle from schema Demo. DO NOT EDIT. */\n\n#include \"demo.h\"\n",
		"\t*to = (uint32_t)b[0] | (uint32_t)b[1] << 8 | (uint32_t)b[2] << 16 | (uint32_t)b[3] << 24;\n",
		`static enum BottleStatus bottle_load_Shape(struct bottle_reader *r, struct BottleShape *out){
	enum BottleStatus st;
	{
		unsigned char tag;
		if((st = bottle_read_tag(r, &tag)) != BOTTLE_OK)
			return st;
		switch(tag){
		case 0:
			out->ShapeKind = eShapeKindCircle;
			if((st = bottle_read_word(r, &out->ShapeKindData.circle.radius)) != BOTTLE_OK)
				return st;
			break;
		case 1:
			out->ShapeKind = eShapeKindSquare;
			if((st = bottle_read_word(r, &out->ShapeKindData.square.side)) != BOTTLE_OK)
				return st;
			break;
		default:
			return BOTTLE_UNKNOWN_VARIANT_TAG;
		}
	}
	return BOTTLE_OK;
}
`,
		`	{
		uint32_t u;
		if((st = bottle_read_enum(r, NUM_Color, &u)) != BOTTLE_OK)
			return st;
		out->color = (enum EnumBottleColor)u;
	}
`,
		`	switch(from->EventKind){
	case eEventKindClick:
		if((st = bottle_write_tag(w, 0)) != BOTTLE_OK)
			return st;
		if((st = bottle_write_word(w, &from->EventKindData.click.x)) != BOTTLE_OK)
			return st;
`,
		`enum BottleStatus Bottle_CheckPixel(const struct BottlePixel *from){
	if((uint32_t)from->color >= NUM_Color)
		return BOTTLE_INVALID_ENUM_VALUE;
	return BOTTLE_OK;
}
`,
		`	if(from->source.len > 16)
		return BOTTLE_STRING_TOO_LONG;
`,
		`unsigned Bottle_SizeEvent(const struct BottleEvent *from){
	unsigned n = 6;
	n += from->source.len;
	switch(from->EventKind){
	case eEventKindClick:
		n += 9;
		break;
	case eEventKindKey:
		n += 5;
		n += from->EventKindData.key.text.len;
		break;
	default:
		break;
	}
	return n;
}
`,
		`void Bottle_FreeEvent(struct BottleEvent *v){
	free(v->source.str);
	v->source.str = NULL;
	v->source.len = 0;
	switch(v->EventKind){
	case eEventKindKey:
		free(v->EventKindData.key.text.str);
		v->EventKindData.key.text.str = NULL;
		v->EventKindData.key.text.len = 0;
		break;
	default:
		break;
	}
}
`,
		`static enum BottleStatus bottle_load_Void(struct bottle_reader *r, struct BottleVoid *out){
	(void)r;
	(void)out;
	return BOTTLE_OK;
}
`,
		`enum BottleStatus Bottle_WriteVoidFile(const struct BottleVoid *from, FILE *to){
	struct bottle_writer w = {0};
	enum BottleStatus st = Bottle_CheckVoid(from);
	if(st != BOTTLE_OK)
		return st;
	w.file = to;
	return bottle_write_Void(&w, from);
}
`,
	)
}

func TestBraces(t *testing.T) {
	h, c := files(t, demo(t), Options{}, bottle.Style{})
	for name, text := range map[string]string{"demo.h": h, "demo.c": c} {
		if o, cl := strings.Count(text, "{"), strings.Count(text, "}"); o != cl {
			t.Errorf("%s has %d opening and %d closing braces", name, o, cl)
		}
	}
}

func TestOrder(t *testing.T) {
	tests := []struct {
		order string
		want  string
	}{
		{"", "(uint32_t)b[3] << 24;"},
		{"little", "(uint32_t)b[3] << 24;"},
		{"big", "*to = (uint32_t)b[0] << 24"},
		{"native", "memcpy(to, b, 4);"},
	}
	for _, tc := range tests {
		_, c := files(t, demo(t), Options{Order: tc.order}, bottle.Style{})
		if !strings.Contains(c, tc.want) {
			t.Errorf("order %q: source does not contain %q", tc.order, tc.want)
		}
	}

	if _, err := New(Options{Order: "middle"}); err == nil {
		t.Error("New with unknown byte order succeeded")
	}
}

func TestStyle(t *testing.T) {
	style, err := bottle.ParseStyle("dos", 4)
	if err != nil {
		t.Fatal(err)
	}
	h, c := files(t, demo(t), Options{}, style)
	contains(t, "demo.h", h, "    ", "enum EnumBottleColor {\r\n\teColorRed,\r\n")
	contains(t, "demo.c", c, "    ", "\tif(n == 0)\r\n\t\treturn BOTTLE_OK;\r\n")
	for name, text := range map[string]string{"demo.h": h, "demo.c": c} {
		if strings.Contains(text, "\t") {
			t.Errorf("%s contains tabs with a space indent style", name)
		}
		if n, crlf := strings.Count(text, "\n"), strings.Count(text, "\r\n"); n != crlf {
			t.Errorf("%s has %d newlines, only %d are CRLF", name, n, crlf)
		}
	}
}

func TestKeywords(t *testing.T) {
	s, err := bottle.Parse([]byte(`
name: K
blocks:
  B:
    int: int
    union: float
`))
	if err != nil {
		t.Fatal(err)
	}
	h, c := files(t, s, Options{}, bottle.Style{})
	contains(t, "k.h", h, "\t", "struct BottleB {\n\tint32_t int_;\n\tfloat union_;\n};\n")
	contains(t, "k.c", c, "\t", "bottle_read_word(r, &out->int_)")
}

func TestEmpty(t *testing.T) {
	s, err := bottle.Parse([]byte(`
name: E
blocks:
  B: {}
`))
	if err != nil {
		t.Fatal(err)
	}
	h, c := files(t, s, Options{}, bottle.Style{})
	contains(t, "e.h", h, "\t", "struct BottleB {\n\tchar unused;\n};\n")
	contains(t, "e.c", c, "\t", "unsigned Bottle_SizeB(const struct BottleB *from){\n\tunsigned n = 0;\n\t(void)from;\n\treturn n;\n}\n")

	s, err = bottle.Parse([]byte(`name: Nil`))
	if err != nil {
		t.Fatal(err)
	}
	h, c = files(t, s, Options{}, bottle.Style{})
	if strings.Contains(c, "bottle_reader") {
		t.Error("source for a schema with no blocks has codec helpers")
	}
	contains(t, "nil.h", h, "\t", "#define BOTTLE_NIL_H\n")
}

func TestCollisions(t *testing.T) {
	tests := []struct {
		name, doc string
	}{
		{
			"field and union tag",
			`
name: C
enums:
  K: [a]
blocks:
  B:
    k: int
    children:
      enum: K
      a: {}
`,
		},
		{
			"field and union data",
			`
name: C
enums:
  K: [a]
blocks:
  B:
    k_data: int
    children:
      enum: K
      a: {}
`,
		},
		{
			"enum constants",
			`
name: C
enums:
  A: [b_c]
  AB: [c]
`,
		},
		{
			"block and string struct",
			`
name: C
blocks:
  string:
    a: int
`,
		},
		{
			"block and status enum",
			`
name: C
blocks:
  status:
    a: int
`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := bottle.Parse([]byte(tc.doc))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			out, err := Generate(s, Options{}, bottle.Style{})
			if !errors.Is(err, bottle.ErrDuplicateDefinition) {
				t.Errorf("Generate error = %v, want %v", err, bottle.ErrDuplicateDefinition)
			}
			if out != nil {
				t.Error("Generate returned output on error")
			}
		})
	}
}
