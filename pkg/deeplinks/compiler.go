package deeplinks

import (
	"errors"
	"regexp"
	"strings"
)

// Building blocks of compiled declarative paths.
const (
	pathItemStart       = '/'
	queryStart          = '?'
	nextQueryItemStart  = '&'
	parameterAsPath     = `([^=&?/]+)`
	parameterAsPathItem = `(/[^=&?/]+)`
	parameterAsQuery    = `(\?[^&/]+=[^&/]+)`
	parameterAsNextItem = `(&[^&/]+=[^&/]+)`
	quantifierOptional  = `?`
	quantifierExactly   = `{1}`
)

var errNoPaths = errors.New("no paths declared")

// literalEscapes lists the only characters escaped in literal path text.
// Other regular expression metacharacters in literal text keep their meaning.
var literalEscapes = strings.NewReplacer("_", `\_`, "?", `\?`)

// parameterRange is an inclusive rune range covering one parameter marker,
// from its begin symbol to its end symbol.
type parameterRange struct {
	from, to int
}

// Compile turns a Path into an anchored regular expression.
//
// Expressions are compiled as given. Declarative paths are translated by
// PatternText first. A misplaced parameter yields a KindParameterPosition
// error; an expression rejected by the regexp engine yields KindPatternInvalid.
func Compile(path Path, syntax Syntax) (*regexp.Regexp, error) {
	text, err := PatternText(path, syntax)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(text)
	if err != nil {
		return nil, newPatternInvalid(path, err)
	}
	return re, nil
}

// PatternText returns the regular expression source a Path compiles to,
// without compiling it.
func PatternText(path Path, syntax Syntax) (string, error) {
	if path.Kind() == PathKindExpression {
		return path.Expr(), nil
	}

	if len(path.paths) == 0 {
		return "", newPatternInvalid(path, errNoPaths)
	}

	texts := make([]string, 0, len(path.paths))
	for _, p := range path.paths {
		text, err := pathPattern(p, syntax)
		if err != nil {
			return "", err
		}
		texts = append(texts, text)
	}

	if len(texts) == 1 {
		return texts[0], nil
	}

	var b strings.Builder
	for i, text := range texts {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteByte('(')
		b.WriteString(text)
		b.WriteByte(')')
	}
	return b.String(), nil
}

func pathPattern(path string, syntax Syntax) (string, error) {
	if !strings.ContainsRune(path, syntax.Begin) {
		return "^" + path + "$", nil
	}

	runes := []rune(path)

	var b strings.Builder
	b.WriteByte('^')

	start := 0
	for _, r := range parameterRanges(runes, syntax) {
		before := runes[start:r.from]
		prefix := ""
		if len(before) > 0 {
			prefix = string(before[len(before)-1])
			before = before[:len(before)-1]
		}

		expr, err := parameterPattern(prefix+string(runes[r.from:r.to+1]), syntax)
		if err != nil {
			return "", err
		}

		b.WriteString(literalEscapes.Replace(string(before)))
		b.WriteString(expr)

		start = r.to + 1
	}

	if start < len(runes) {
		b.WriteString(literalEscapes.Replace(string(runes[start:])))
	}

	b.WriteByte('$')
	return b.String(), nil
}

// parameterRanges finds the parameter markers in a single left to right scan.
// A second begin symbol replaces an open one, an end symbol without an open
// marker is ignored and a marker still open at the end is dropped.
func parameterRanges(runes []rune, syntax Syntax) []parameterRange {
	var ranges []parameterRange
	open := -1

	for i, c := range runes {
		switch c {
		case syntax.Begin:
			open = i
		case syntax.End:
			if open >= 0 {
				ranges = append(ranges, parameterRange{from: open, to: i})
			}
			open = -1
		}
	}

	return ranges
}

// parameterPattern converts a token, the parameter marker prefixed by the
// character preceding it, into its regular expression.
func parameterPattern(token string, syntax Syntax) (string, error) {
	runes := []rune(token)

	quantifier := quantifierExactly
	if len(runes) >= 2 && runes[len(runes)-2] == syntax.Optional {
		quantifier = quantifierOptional
	}

	var expr string
	switch runes[0] {
	case pathItemStart:
		expr = parameterAsPathItem
	case queryStart:
		expr = parameterAsQuery
	case nextQueryItemStart:
		expr = parameterAsNextItem
	case syntax.Begin:
		expr = parameterAsPath
	default:
		return "", newParameterPosition(token)
	}

	return expr + quantifier, nil
}
