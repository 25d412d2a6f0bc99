package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/danderson/bottle"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// indenter is an io.Writer that indents every line written through
// it.
type indenter struct {
	w          io.Writer
	prefix     string
	indentNext bool
}

func (i *indenter) s(msg string) {
	io.WriteString(i, msg+"\n")
}

func (i *indenter) f(msg string, args ...any) {
	fmt.Fprintf(i, msg+"\n", args...)
}

func (i *indenter) Write(bs []byte) (int, error) {
	ret := 0
	for len(bs) > 0 {
		if i.indentNext {
			i.indentNext = false
			if _, err := io.WriteString(i.w, i.prefix); err != nil {
				return ret, err
			}
		}

		var wr []byte
		idx := bytes.IndexByte(bs, '\n')
		if idx >= 0 {
			i.indentNext = true
			wr, bs = bs[:idx+1], bs[idx+1:]
		} else {
			wr, bs = bs, nil
		}

		n, err := i.w.Write(wr)
		ret += n
		if err != nil {
			return ret, err
		}
	}
	return ret, nil
}

func (i *indenter) indent(n int) {
	i.prefix = strings.Repeat("  ", n)
	i.indentNext = true
}

var logger = sync.OnceValue(func() *slog.Logger {
	level := slog.LevelWarn
	if globalArgs.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
})

// useColor enables color output if f is a terminal.
func useColor(f *os.File) {
	color.NoColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// openInput opens the named file, or stdin for "-".
func openInput(name string) (io.Reader, func(), error) {
	if name == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// writeDiff writes a line diff from got to want, the current and
// generated contents of the file called name.
func writeDiff(w io.Writer, name, got, want string) {
	del, ins := color.New(color.FgRed).SprintFunc(), color.New(color.FgGreen).SprintFunc()

	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(got, want)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	out := indenter{w: w}
	out.f("--- %s", name)
	out.f("+++ %s (generated)", name)
	for _, d := range diffs {
		var mark string
		var paint func(...any) string
		switch d.Type {
		case diffpatch.DiffDelete:
			mark, paint = "-", del
		case diffpatch.DiffInsert:
			mark, paint = "+", ins
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			io.WriteString(&out, paint(mark+strings.TrimRight(line, "\r\n"))+"\n")
		}
	}
}

// writeFiles writes files into dir. Each file is first written to a
// temporary file beside its destination. The temporaries are renamed
// into place once all of them are complete, so a failed write leaves
// the existing files untouched.
func writeFiles(dir string, files []*bottle.File) error {
	var tmps []string
	defer func() {
		for _, tmp := range tmps {
			os.Remove(tmp)
		}
	}()
	for _, f := range files {
		dst := filepath.Join(dir, f.Name)
		tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
		if err != nil {
			return err
		}
		tmps = append(tmps, tmp.Name())
		_, werr := tmp.Write(f.Bytes())
		if err := errors.Join(werr, tmp.Close()); err != nil {
			return err
		}
		if err := os.Chmod(tmp.Name(), 0o644); err != nil {
			return err
		}
	}
	for i, f := range files {
		if err := os.Rename(tmps[i], filepath.Join(dir, f.Name)); err != nil {
			return err
		}
	}
	tmps = nil
	return nil
}
