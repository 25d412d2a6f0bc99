package bottle

import "github.com/creachadair/mds/mapset"

// A Namespace is a set of generated identifiers. Names are compared
// after folding with [Identifier], so "shape_kind" and "ShapeKind"
// collide.
//
// The zero Namespace is empty and ready for use.
type Namespace struct {
	folded mapset.Set[string]
}

// Declare adds the identifier derived from name to the namespace. It
// reports a [SchemaError] of kind [ErrDuplicateDefinition] if the
// identifier is already taken. path locates name in the schema for
// the error message.
func (n *Namespace) Declare(name, path string) error {
	id := Identifier(name)
	if n.folded.Has(id) {
		return schemaErr(ErrDuplicateDefinition, name, path, "identifier %s is already defined", id)
	}
	if n.folded == nil {
		n.folded = mapset.New[string]()
	}
	n.folded.Add(id)
	return nil
}

// Has reports whether the identifier derived from name is taken.
func (n *Namespace) Has(name string) bool {
	return n.folded.Has(Identifier(name))
}
