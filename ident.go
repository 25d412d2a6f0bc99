package bottle

import (
	"regexp"
	"strings"
	"unicode"
)

// Identifier folds name into the identifier used in generated code:
// the first letter and every letter following a run of underscores
// are upper-cased, and the underscores are dropped.
//
//	Identifier("shape_kind") == "ShapeKind"
//	Identifier("x__y_")      == "XY"
//
// Two schema names that fold to the same identifier collide.
func Identifier(name string) string {
	var ret strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' && ret.Len() > 0 {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		ret.WriteRune(r)
	}
	return ret.String()
}

var validName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidName reports whether name can be used for a schema, enum,
// variant, block or field.
func ValidName(name string) bool {
	return validName.MatchString(name)
}
