package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/taskgroup"
	"github.com/danderson/bottle"
	"github.com/danderson/bottle/fragments"
	"github.com/danderson/bottle/internal/cgen"
	"github.com/danderson/bottle/internal/gogen"
	"github.com/danderson/bottle/internal/jsongen"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/kr/pretty"
)

var globalArgs struct {
	Verbose bool `flag:"v,Log progress to stderr"`
}

func main() {
	root := &command.C{
		Name:     "bottle",
		Usage:    "command args...",
		Help:     "Compile bottle schemas into message codecs, and inspect messages.",
		SetFlags: command.Flags(flax.MustBind, &globalArgs),
		Commands: []*command.C{
			{
				Name:  "generate",
				Usage: "generate [flags] schema...",
				Help: `Generate code for schemas.

Each schema is compiled independently, into files named after the
schema in the output directory. Go code is always gofmt-formatted, so
-nl and -tabs only apply to the C and JSON backends.

With -check, nothing is written. Instead, generate compares its output
with the existing files, prints the differences, and fails if any file
is out of date.`,
				SetFlags: command.Flags(flax.MustBind, &generateArgs),
				Run:      runGenerate,
			},
			{
				Name:     "check",
				Usage:    "check [-v] schema...",
				Help:     "Validate schemas without generating code.",
				SetFlags: command.Flags(flax.MustBind, &checkArgs),
				Run:      runCheck,
			},
			{
				Name:  "dump",
				Usage: "dump -schema file -block name [flags] message",
				Help: `Decode a message with a schema and print it.

The message is read from the named file, or from stdin if the name is
"-". With -stream, exactly one message is read and trailing bytes are
left unread. Otherwise the whole input is read and decoded as a
buffer.`,
				SetFlags: command.Flags(flax.MustBind, &dumpArgs),
				Run:      command.Adapt(runDump),
			},
			{
				Name:  "encode",
				Usage: "encode -schema file -block name [flags] value.json",
				Help: `Encode a JSON value as a message.

The value is a JSON object in the format printed by dump -json: enum
values are variant names or ordinals, and a union is a "children"
object holding the selected variant.`,
				SetFlags: command.Flags(flax.MustBind, &encodeArgs),
				Run:      command.Adapt(runEncode),
			},
			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	env := root.NewEnv(nil).SetContext(ctx)
	command.RunOrFail(env, os.Args[1:])
}

var generateArgs struct {
	Lang    string `flag:"lang,default=go,Output language: go or c or json"`
	Newline string `flag:"nl,default=unix,Newline style: unix or dos"`
	Tabs    int    `flag:"tabs,default=4,Indent width in spaces (0 indents with tabs)"`
	OutDir  string `flag:"out,default=.,Output directory"`
	Package string `flag:"package,Go package name (default is the lower-cased schema name)"`
	Order   string `flag:"order,default=little,Byte order: little or big or native"`
	Check   bool   `flag:"check,Compare with existing files instead of writing"`
}

// backends are the code generators, by -lang name.
var backends = map[string]generator{
	"go": func(s *bottle.Schema, source string, _ bottle.Style) (*bottle.Output, error) {
		return gogen.Generate(s, gogen.Options{
			Package: generateArgs.Package,
			Order:   generateArgs.Order,
			Source:  source,
		})
	},
	"c": func(s *bottle.Schema, source string, style bottle.Style) (*bottle.Output, error) {
		return cgen.Generate(s, cgen.Options{Order: generateArgs.Order, Source: source}, style)
	},
	"json": func(s *bottle.Schema, _ string, style bottle.Style) (*bottle.Output, error) {
		return jsongen.Generate(s, style)
	},
}

func runGenerate(env *command.Env) error {
	if len(env.Args) == 0 {
		return env.Usagef("generate requires at least one schema.")
	}
	gen, ok := backends[generateArgs.Lang]
	if !ok {
		return env.Usagef("unknown language %q", generateArgs.Lang)
	}
	style, err := bottle.ParseStyle(generateArgs.Newline, generateArgs.Tabs)
	if err != nil {
		return env.Usagef("%v", err)
	}
	log := logger()
	useColor(os.Stdout)

	// Each schema reports into its own slot, so that output and
	// errors come out in argument order.
	outs := make([]*bottle.Output, len(env.Args))
	reports := make([]bytes.Buffer, len(env.Args))
	errs := make([]error, len(env.Args))
	g := taskgroup.New(nil)
	for i, path := range env.Args {
		g.Go(func() error {
			log.Debug("generating", "schema", path, "lang", generateArgs.Lang)
			outs[i], errs[i] = generate(gen, path, style)
			return nil
		})
	}
	g.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}
	if err := checkDestinations(env.Args, outs); err != nil {
		return err
	}

	g = taskgroup.New(nil)
	for i, path := range env.Args {
		g.Go(func() error {
			errs[i] = emit(&reports[i], path, outs[i])
			return nil
		})
	}
	g.Wait()

	for i := range reports {
		os.Stdout.Write(reports[i].Bytes())
	}
	return errors.Join(errs...)
}

type generator = func(*bottle.Schema, string, bottle.Style) (*bottle.Output, error)

// generateOne generates the code for the schema at path, and writes
// or checks it.
func generateOne(report io.Writer, gen generator, path string, style bottle.Style) error {
	out, err := generate(gen, path, style)
	if err != nil {
		return err
	}
	return emit(report, path, out)
}

func generate(gen generator, path string, style bottle.Style) (*bottle.Output, error) {
	s, err := bottle.LoadFile(path)
	if err != nil {
		return nil, err
	}
	out, err := gen(s, filepath.Base(path), style)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// checkDestinations reports an error if two schemas generate the same
// file.
func checkDestinations(paths []string, outs []*bottle.Output) error {
	owner := map[string]string{}
	var errs []error
	for i, out := range outs {
		for _, f := range out.Files() {
			dst := filepath.Join(generateArgs.OutDir, f.Name)
			if prev, ok := owner[dst]; ok {
				errs = append(errs, fmt.Errorf("%s and %s both generate %s", prev, paths[i], dst))
				continue
			}
			owner[dst] = paths[i]
		}
	}
	return errors.Join(errs...)
}

// emit writes the generated files of out, or in check mode compares
// them with the files on disk.
func emit(report io.Writer, path string, out *bottle.Output) error {
	files := out.Files()
	if !generateArgs.Check {
		if err := writeFiles(generateArgs.OutDir, files); err != nil {
			return fmt.Errorf("writing generated code: %w", err)
		}
		for _, f := range files {
			logger().Info("wrote generated code", "schema", path, "file", filepath.Join(generateArgs.OutDir, f.Name))
		}
		return nil
	}

	var stale []string
	for _, f := range files {
		dst := filepath.Join(generateArgs.OutDir, f.Name)
		want := f.Bytes()
		got, err := os.ReadFile(dst)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading existing code: %w", err)
		}
		if !bytes.Equal(got, want) {
			writeDiff(report, dst, string(got), string(want))
			stale = append(stale, dst)
		}
	}
	if len(stale) > 0 {
		return fmt.Errorf("%s: generated code is out of date in %v", path, stale)
	}
	return nil
}

var checkArgs struct {
	Verbose bool `flag:"v,Print a summary of each valid schema"`
}

func runCheck(env *command.Env) error {
	if len(env.Args) == 0 {
		return env.Usagef("check requires at least one schema.")
	}
	useColor(os.Stdout)
	ok, fail := color.New(color.FgGreen).SprintFunc(), color.New(color.FgRed, color.Bold).SprintFunc()

	bad := 0
	for _, path := range env.Args {
		s, err := bottle.LoadFile(path)
		if err != nil {
			bad++
			fmt.Printf("%s %v\n", fail("FAIL"), err)
			continue
		}
		fmt.Printf("%s   %s\n", ok("ok"), path)
		if checkArgs.Verbose {
			in := indenter{w: os.Stdout}
			in.indent(1)
			in.s(s.String())
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d schemas are invalid", bad, len(env.Args))
	}
	return nil
}

// messageBlock loads a schema, and returns its top-level block called
// name and the byte order named by order.
func messageBlock(env *command.Env, schema, name, order string) (*bottle.Block, fragments.ByteOrder, error) {
	if schema == "" || name == "" {
		return nil, nil, env.Usagef("-schema and -block are required")
	}
	o, err := fragments.ParseByteOrder(order)
	if err != nil {
		return nil, nil, env.Usagef("%v", err)
	}
	s, err := bottle.LoadFile(schema)
	if err != nil {
		return nil, nil, err
	}
	b := s.Block(name)
	if b == nil {
		return nil, nil, fmt.Errorf("schema %s has no block %q", s.Name, name)
	}
	return b, o, nil
}

var dumpArgs struct {
	Schema string `flag:"schema,Schema file"`
	Block  string `flag:"block,Top-level block of the message"`
	Order  string `flag:"order,default=little,Byte order: little or big or native"`
	Stream bool   `flag:"stream,Read one message with the stream codec"`
	JSON   bool   `flag:"json,Print the message as JSON"`
}

func runDump(env *command.Env, message string) error {
	b, order, err := messageBlock(env, dumpArgs.Schema, dumpArgs.Block, dumpArgs.Order)
	if err != nil {
		return err
	}
	in, closeIn, err := openInput(message)
	if err != nil {
		return err
	}
	defer closeIn()

	var rec *bottle.Record
	if dumpArgs.Stream {
		rec, err = b.Decode(&fragments.StreamDecoder{Order: order, In: in})
	} else {
		var bs []byte
		if bs, err = io.ReadAll(in); err != nil {
			return fmt.Errorf("reading message: %w", err)
		}
		logger().Debug("decoding message", "block", b.Name, "bytes", len(bs))
		rec, err = b.Decode(&fragments.Decoder{Order: order, In: bs})
	}
	if err != nil {
		return fmt.Errorf("decoding %s: %w", b.Name, err)
	}

	m := b.Map(rec)
	if dumpArgs.JSON {
		bs, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", bs)
		return nil
	}
	fmt.Printf("%s %# v\n", b.Name, pretty.Formatter(m))
	return nil
}

var encodeArgs struct {
	Schema string `flag:"schema,Schema file"`
	Block  string `flag:"block,Top-level block of the message"`
	Order  string `flag:"order,default=little,Byte order: little or big or native"`
	Stream bool   `flag:"stream,Write with the stream codec"`
	Out    string `flag:"o,default=-,Output file (- for stdout)"`
}

func runEncode(env *command.Env, value string) error {
	b, order, err := messageBlock(env, encodeArgs.Schema, encodeArgs.Block, encodeArgs.Order)
	if err != nil {
		return err
	}
	in, closeIn, err := openInput(value)
	if err != nil {
		return err
	}
	defer closeIn()
	bs, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading value: %w", err)
	}
	rec, err := b.DecodeJSON(bs)
	if err != nil {
		return fmt.Errorf("parsing %s value: %w", b.Name, err)
	}
	if err := b.Check(rec); err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if encodeArgs.Out != "-" {
		f, err := os.Create(encodeArgs.Out)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if encodeArgs.Stream {
		e := fragments.StreamEncoder{Order: order, Out: out}
		b.Encode(&e, rec)
		if err := e.Err(); err != nil {
			return fmt.Errorf("writing message: %w", err)
		}
	} else {
		e := fragments.Encoder{Order: order, Out: make([]byte, 0, b.Size(rec))}
		b.Encode(&e, rec)
		if _, err := out.Write(e.Out); err != nil {
			return fmt.Errorf("writing message: %w", err)
		}
	}
	if f, ok := out.(*os.File); ok && f != os.Stdout {
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing output: %w", err)
		}
	}
	return nil
}
