// Package parser implements the hand-written recursive-descent compiler
// from a pattern string to an *graph.Graph NFA fragment.
//
// The grammar is right-recursive on '|' and threads a single
// caller-supplied terminator (stopAt) through every recursive call, so that
// groups are parsed by recursing with stopAt=')' and the top level recurses
// with no terminator at all. There is no separate tokenizer: parseInner
// both tokenizes and emits graph edges in the same pass.
package parser

import (
	"github.com/pkg/errors"
	"github.com/projectdiscovery/gologger"

	"github.com/go-regex/core/internal/graph"
)

// escapable lists the characters that may follow a backslash outside a
// character class.
var escapable = []rune{'\\', '+', '*', '(', ')', '[', ']', '.', '?'}

// Parse compiles pattern into an NFA fragment. The returned graph always
// has node 0 as its designated entry and a single final node reachable
// through it; it carries the self-loop Dot edge on node 0 that realizes
// unanchored search. On error, pos is the rune offset the parser had reached
// when it failed.
func Parse(pattern string) (g *graph.Graph, pos int, err error) {
	g, pos, err = parseInner([]rune(pattern), nil)
	if err != nil {
		return nil, pos, err
	}
	return g, -1, nil
}

// parseInner parses pattern starting at rune index 0 until it either
// consumes stopAt (when non-nil), reaches EOF with stopAt==nil, or hits a
// structural error. It returns the graph built so far and the number of
// runes of pattern it consumed.
func parseInner(pattern []rune, stopAt *rune) (*graph.Graph, int, error) {
	g := graph.New(0)
	if stopAt == nil {
		g.AddEdge(0, graph.Arrow{Kind: graph.Dot}, 0)
	}

	previousNode := 0
	i := 0

	for i < len(pattern) {
		step := 1
		finalNode := g.FinalNode
		c := pattern[i]

		if stopAt != nil && c == *stopAt {
			i++
			return g, i, nil
		}

		switch c {
		case '.':
			g.AddEdge(finalNode, graph.Arrow{Kind: graph.Dot}, finalNode+1)
			g.FinalNode = finalNode + 1
			previousNode = finalNode

		case '^':
			g.AddEdge(finalNode, graph.Arrow{Kind: graph.LineStart}, finalNode+1)
			g.FinalNode = finalNode + 1
			previousNode = finalNode

		case '$':
			g.AddEdge(finalNode, graph.Arrow{Kind: graph.LineEnd}, finalNode+1)
			g.FinalNode = finalNode + 1
			previousNode = finalNode

		case '\\':
			if i+1 >= len(pattern) {
				return nil, i, errors.New("escape character at EOL")
			}
			esc := pattern[i+1]
			if !isEscapable(esc) {
				return nil, i, errors.Errorf("Unexpected character escaped: %c", esc)
			}
			g.AddEdge(finalNode, graph.Arrow{Kind: graph.Char, Ch: esc}, finalNode+1)
			g.FinalNode = finalNode + 1
			previousNode = finalNode
			step++

		case '|':
			right, consumed, err := parseInner(pattern[i+1:], stopAt)
			if err != nil {
				return nil, i + 1 + consumed, err
			}
			if len(right.Edges) == 0 {
				g.AddEdge(0, graph.Arrow{Kind: graph.Epsilon}, finalNode)
			} else {
				g.AttachParallel(right, 0, finalNode)
			}
			return g, i + step + consumed, nil

		case '?':
			if !canApplyQuantifier(pattern, i) {
				return nil, i, errors.New("Can not apply '?'")
			}
			g.AddEdge(previousNode, graph.Arrow{Kind: graph.Epsilon}, finalNode)

		case '+':
			if !canApplyQuantifier(pattern, i) {
				return nil, i, errors.New("Can not apply '+'")
			}
			g.AddEdge(finalNode, graph.Arrow{Kind: graph.Epsilon}, previousNode)

		case '*':
			if !canApplyQuantifier(pattern, i) {
				return nil, i, errors.New("Can not apply '*'")
			}
			g.AddEdge(previousNode, graph.Arrow{Kind: graph.Epsilon}, finalNode)
			g.AddEdge(finalNode, graph.Arrow{Kind: graph.Epsilon}, previousNode)

		case '(':
			closeParen := ')'
			inner, consumed, err := parseInner(pattern[i+1:], &closeParen)
			if err != nil {
				return nil, i + 1 + consumed, err
			}
			step += consumed
			g.Concat(inner)
			previousNode = finalNode

		case '[':
			arrow, consumed, err := parseCharacterClass(pattern[i+1:])
			if err != nil {
				return nil, i + 1 + consumed, err
			}
			g.AddEdge(finalNode, arrow, finalNode+1)
			step += consumed
			g.FinalNode = finalNode + 1
			previousNode = finalNode

		case ')':
			return nil, i, errors.New("unexpected character: )")

		default:
			g.AddEdge(finalNode, graph.Arrow{Kind: graph.Char, Ch: c}, finalNode+1)
			g.FinalNode = finalNode + 1
			previousNode = finalNode
		}

		i += step
	}

	if stopAt == nil {
		return g, i, nil
	}
	return nil, i, errors.Errorf("Expected %c got end of line", *stopAt)
}

// parseCharacterClass scans a "[...]" body starting immediately after the
// '['. It returns the compiled arrow and the number of pattern runes
// consumed, including the closing ']'.
func parseCharacterClass(body []rune) (graph.Arrow, int, error) {
	var chars []rune
	exclusive := false

	j := 0
	for {
		if j >= len(body) {
			return graph.Arrow{}, j, errors.New("Unexpected EOL")
		}
		c := body[j]
		switch {
		case c == '\\':
			if j+1 >= len(body) {
				return graph.Arrow{}, j, errors.New("Unexpected EOL")
			}
			chars = append(chars, body[j+1])
			j++
		case c == '^' && j == 0:
			exclusive = true
		case c == ']' && (j == 0 || (exclusive && j == 1)):
			chars = append(chars, ']')
		case c == ']':
			goto done
		default:
			chars = append(chars, c)
		}
		j++
	}

done:
	if len(chars) == 0 {
		return graph.Arrow{}, j, errors.New("Empty character class")
	}
	gologger.Debug().Msgf("parsed character class: exclusive=%v chars=%q", exclusive, chars)
	kind := graph.OneOf
	if exclusive {
		kind = graph.NotOneOf
	}
	return graph.Arrow{Kind: kind, Set: chars}, j + 1, nil
}

func isEscapable(c rune) bool {
	for _, e := range escapable {
		if e == c {
			return true
		}
	}
	return false
}

// canApplyQuantifier reports whether a '?'/'+'/'*' at pattern[i] may be
// applied. It looks at the raw previous rune of pattern, not the previously
// parsed token: pattern[i-1] being itself a quantifier char rejects a second
// one even when that quantifier char arrived as part of an escape sequence
// (e.g. the literal '+' in "a\\+*" still blocks the trailing '*').
func canApplyQuantifier(pattern []rune, i int) bool {
	if i == 0 {
		return false
	}
	return !isQuantifierChar(pattern[i-1])
}

func isQuantifierChar(c rune) bool {
	return c == '*' || c == '+' || c == '?'
}
