package bottle

import (
	"fmt"
	"strings"
)

// ErrorKind is the kind of a [SchemaError]. Each kind is itself an
// error, for use with [errors.Is].
type ErrorKind int

const (
	// ErrMissingName means the schema document has no name.
	ErrMissingName ErrorKind = iota + 1
	// ErrUnknownFieldType means a field's type token is neither a
	// primitive nor a declared enum.
	ErrUnknownFieldType
	// ErrUnknownEnumReference means a union names an enum, or a
	// variant, that was not declared.
	ErrUnknownEnumReference
	// ErrDuplicateDefinition means two definitions share a name,
	// possibly only after folding with [Identifier].
	ErrDuplicateDefinition
	// ErrMalformedDocument means the document does not have the
	// shape of a schema.
	ErrMalformedDocument
)

func (k ErrorKind) Error() string {
	switch k {
	case ErrMissingName:
		return "missing name"
	case ErrUnknownFieldType:
		return "unknown field type"
	case ErrUnknownEnumReference:
		return "unknown enum reference"
	case ErrDuplicateDefinition:
		return "duplicate definition"
	case ErrMalformedDocument:
		return "malformed document"
	default:
		return fmt.Sprintf("schema error %d", int(k))
	}
}

// SchemaError is the error returned when a schema document cannot be
// loaded, or a Schema fails validation. Schema errors are fatal: no
// code may be generated from a schema that produced one.
type SchemaError struct {
	Kind ErrorKind
	// Name is the offending name or type token, if any.
	Name string
	// Path locates the error in the schema, e.g. "blocks.Shape.color".
	Path string
	// Line and Column locate the error in the source document, when
	// known. They are 1-based; zero means unknown.
	Line, Column int
	// Detail is an optional further explanation.
	Detail string
}

func (e SchemaError) Error() string {
	var ret strings.Builder
	ret.WriteString("bottle: ")
	ret.WriteString(e.Kind.Error())
	if e.Name != "" {
		fmt.Fprintf(&ret, " %q", e.Name)
	}
	if e.Path != "" {
		fmt.Fprintf(&ret, " in %s", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&ret, " at %d:%d", e.Line, e.Column)
	}
	if e.Detail != "" {
		ret.WriteString(": ")
		ret.WriteString(e.Detail)
	}
	return ret.String()
}

func (e SchemaError) Unwrap() error {
	return e.Kind
}

func schemaErr(kind ErrorKind, name, path string, detail string, args ...any) error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return SchemaError{Kind: kind, Name: name, Path: path, Detail: detail}
}

// TypeError is the error returned by the dynamic codec when a
// [Record] does not have the shape of its [Block].
type TypeError struct {
	// Path is the field that caused the error.
	Path string
	// Reason is an explanation of the mismatch.
	Reason error
}

func (e TypeError) Error() string {
	return fmt.Sprintf("bottle cannot encode %s: %s", e.Path, e.Reason)
}

func (e TypeError) Unwrap() error {
	return e.Reason
}

func typeErr(path, reason string, args ...any) error {
	return TypeError{path, fmt.Errorf(reason, args...)}
}
