// Package regex compiles a small POSIX-flavored pattern language to a
// non-deterministic automaton and answers boolean unanchored-search queries
// against it, optionally through a lazy DFA overlay.
//
// Supported syntax: literals, '.', character classes ([abc], [^abc]),
// alternation (|), grouping with (...), the quantifiers ? + *, and the
// anchors ^ $. There are no capturing groups, no backreferences, no
// lookaround, no {m,n} repetition counts, and matching reports only whether
// a match exists — never where.
package regex

import (
	"github.com/go-regex/core/internal/dfa"
	"github.com/go-regex/core/internal/graph"
	"github.com/go-regex/core/internal/nfa"
	"github.com/go-regex/core/internal/parser"
)

// Regexp is a compiled pattern, ready to be walked against any number of
// haystacks with either engine.
type Regexp struct {
	g       *graph.Graph
	matcher *dfa.Matcher
}

// Parse compiles pattern into a Regexp. It returns a *ParseError on any of
// the error kinds a malformed pattern can produce (unmatched parens, bad
// escapes, misplaced quantifiers, malformed character classes).
func Parse(pattern string) (*Regexp, error) {
	g, pos, err := parser.Parse(pattern)
	if err != nil {
		return nil, newParseError(pos, err)
	}
	return &Regexp{g: g}, nil
}

// Walk reports whether r matches anywhere in haystack, using the NFA engine
// directly.
func (r *Regexp) Walk(haystack string) bool {
	return nfa.Walk(r.g, haystack)
}

// WalkDFA reports whether r matches anywhere in haystack, using r's lazy DFA
// overlay. The overlay is built on first use and reused by subsequent calls,
// so repeated WalkDFA calls on the same Regexp amortize state construction.
func (r *Regexp) WalkDFA(haystack string) bool {
	if r.matcher == nil {
		r.matcher = dfa.New(r.g)
	}
	return r.matcher.Walk(haystack)
}

// Check compiles pattern and reports whether it matches anywhere in
// haystack, using the NFA engine. It is the one-shot convenience that
// mirrors a single pattern/haystack pair without retaining the compiled
// Regexp.
func Check(pattern, haystack string) (bool, error) {
	r, err := Parse(pattern)
	if err != nil {
		return false, err
	}
	return r.Walk(haystack), nil
}
