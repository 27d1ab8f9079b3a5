// Package catalog holds the REPL/CLI's fixed set of built-in named
// patterns. There is no textual pattern-description language here
// (no parsing source text into a live combinator graph), so "building
// a pattern" means picking one of these Go-constructed entries by
// name rather than typing an expression — the same spirit as a worked
// tutorial's examples, translated into fixed catalog entries instead
// of a parser.
package catalog

import (
	"fmt"
	"sort"

	"github.com/hgweller/gopatmat/internal/charset"
	"github.com/hgweller/gopatmat/internal/pattern"
)

// CatalogEntry pairs a buildable Pattern with the human-readable
// combinator expression it corresponds to, the latter stored only as
// display/documentation text (never parsed back into a pattern).
type CatalogEntry struct {
	Name        string
	Description string
	Source      string
	Build       func() *pattern.Pattern
}

var entries = map[string]CatalogEntry{
	"digits": {
		Name:        "digits",
		Description: "one or more decimal digits",
		Source:      `Span(Digit())`,
		Build: func() *pattern.Pattern {
			return pattern.Span(charset.Digit())
		},
	},
	"word": {
		Name:        "word",
		Description: "one or more alphabetic characters",
		Source:      `Span(Alpha())`,
		Build: func() *pattern.Pattern {
			return pattern.Span(charset.Alpha())
		},
	},
	"line-number": {
		Name:        "line-number",
		Description: "a leading line number followed by '.' and blanks, anchored at the start",
		Source:      `Pos(0) & Span(Digit()) & Char('.') & Span(' ')`,
		Build: func() *pattern.Pattern {
			digs := pattern.Span(charset.Digit())
			return pattern.Concat(
				pattern.Concat(
					pattern.Concat(pattern.Pos(0), digs),
					pattern.Char('.'),
				),
				pattern.Span(charset.FromChar(' ')),
			)
		},
	},
	"balanced-parens": {
		Name:        "balanced-parens",
		Description: "a parenthesised group balanced on '(' and ')'",
		Source:      `Char('(') & Bal('(', ')') & Char(')')`,
		Build: func() *pattern.Pattern {
			return pattern.Concat(
				pattern.Concat(pattern.Char('('), pattern.Bal('(', ')')),
				pattern.Char(')'),
			)
		},
	},
	"underscored-hex": {
		Name:        "underscored-hex",
		Description: "digits or hex digits optionally broken up by underscores, double-hashed",
		Source:      `Span(Digit()) & Arbno(Char('_') & Span(Digit())) & Char('#') & Span(Xdigit()) & Arbno(Char('_') & Span(Xdigit())) & Char('#')`,
		Build: func() *pattern.Pattern {
			digs := pattern.Span(charset.Digit())
			uDigs := pattern.Concat(digs, pattern.Arbno(pattern.Concat(pattern.Char('_'), pattern.Span(charset.Digit()))))
			edig := pattern.Span(charset.Xdigit())
			uEdig := pattern.Concat(edig, pattern.Arbno(pattern.Concat(pattern.Char('_'), pattern.Span(charset.Xdigit()))))
			return pattern.Concat(
				pattern.Concat(pattern.Concat(uDigs, pattern.Char('#')), uEdig),
				pattern.Char('#'),
			)
		},
	},
	"blank-separated-pair": {
		Name:        "blank-separated-pair",
		Description: "two digit runs separated by blanks and a comma",
		Source:      `NSpan(' ') & Span(Digit()) & Span(" ,") & Span(Digit())`,
		Build: func() *pattern.Pattern {
			num := pattern.Span(charset.Digit())
			sep := pattern.Span(charset.FromString(" ,"))
			return pattern.Concat(
				pattern.Concat(pattern.Concat(pattern.NSpan(charset.FromChar(' ')), num), sep),
				pattern.Span(charset.Digit()),
			)
		},
	},
}

// Names returns every catalog entry's name, sorted, for help text and
// the REPL's ":list" command.
func Names() []string {
	names := make([]string, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves name to its entry or reports every valid name in
// the error, since there is no parser to fall back to.
func Lookup(name string) (CatalogEntry, error) {
	e, ok := entries[name]
	if !ok {
		return CatalogEntry{}, fmt.Errorf("no such built-in pattern %q (known: %v)", name, Names())
	}
	return e, nil
}
