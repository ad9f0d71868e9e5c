package deeplinks

import (
	"fmt"
	"strings"

	"github.com/BrandonKowalski/deeplinks/pkg/deeplinks/constants"
)

// PathKind selects how a Path is turned into a match pattern.
type PathKind int

const (
	PathKindPaths      PathKind = iota // Declarative paths with parameter markers
	PathKindExpression                 // Raw regular expression used as is
)

// Path identifies the URLs a deeplink answers to. It is either a list of
// declarative paths such as "item/{id}" and "search?{q?}", or a raw regular
// expression. Paths are values and are never mutated after registration.
type Path struct {
	kind       PathKind
	paths      []string
	expression string
}

// Paths builds a declarative path. A URL matches if it matches any entry.
// A Path without entries fails to compile.
func Paths(paths ...string) Path {
	return Path{kind: PathKindPaths, paths: append([]string(nil), paths...)}
}

// Expression builds a path from a raw regular expression.
func Expression(expr string) Path {
	return Path{kind: PathKindExpression, expression: expr}
}

func (p Path) Kind() PathKind {
	return p.kind
}

// Entries returns a copy of the declarative paths. Empty for expressions.
func (p Path) Entries() []string {
	return append([]string(nil), p.paths...)
}

// Expr returns the raw expression. Empty for declarative paths.
func (p Path) Expr() string {
	return p.expression
}

// Equal reports whether both paths are of the same kind with the same content.
func (p Path) Equal(other Path) bool {
	if p.kind != other.kind || p.expression != other.expression || len(p.paths) != len(other.paths) {
		return false
	}
	for i := range p.paths {
		if p.paths[i] != other.paths[i] {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	if p.kind == PathKindExpression {
		return fmt.Sprintf("expression(%q)", p.expression)
	}
	quoted := make([]string, len(p.paths))
	for i, path := range p.paths {
		quoted[i] = fmt.Sprintf("%q", path)
	}
	return "paths(" + strings.Join(quoted, ", ") + ")"
}

// Syntax configures the characters marking parameters in declarative paths.
type Syntax struct {
	Begin    rune // Opens a parameter, '{' by default
	End      rune // Closes a parameter, '}' by default
	Optional rune // Placed before End to make a parameter optional, '?' by default
}

// DefaultSyntax returns the {name} / {name?} syntax.
func DefaultSyntax() Syntax {
	return Syntax{
		Begin:    constants.DefaultBeginSymbol,
		End:      constants.DefaultEndSymbol,
		Optional: constants.DefaultOptionalSymbol,
	}
}

func (s Syntax) String() string {
	return string([]rune{s.Begin, s.End, s.Optional})
}
