package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-regex/core/internal/graph"
	"github.com/go-regex/core/internal/nfa"
)

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantMsg string
	}{
		{"trailing backslash", `a\`, "escape character at EOL"},
		{"bad escape", `a\d`, "Unexpected character escaped: d"},
		{"leading quantifier", `*a`, "Can not apply '*'"},
		{"quantifier after quantifier", `a**`, "Can not apply '*'"},
		{"unmatched close paren", `abc)`, "unexpected character: )"},
		{"unclosed group", `(abc`, "Expected ) got end of line"},
		{"unclosed class", `a[`, "Unexpected EOL"},
		{"empty class", `a[]b`, "Unexpected EOL"},
		{"quantifier at start of group", `(*)b`, "Can not apply '*'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.pattern)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseAcceptsQuantifierAfterEscapedParen(t *testing.T) {
	// The guard inspects the raw previous pattern rune, not the previously
	// parsed token: "\(*" ends in a literal '(' rune (the escape target),
	// not a quantifier, so the trailing '*' is legal.
	_, _, err := Parse(`a\(*b`)
	require.NoError(t, err)
}

func TestParseRejectsQuantifierAfterEscapedQuantifierChar(t *testing.T) {
	// Here the escape target itself is '+', so the raw previous rune is a
	// quantifier char and a following '*' must be rejected even though the
	// previously parsed token is just a literal '+'.
	_, _, err := Parse(`a\+*`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can not apply '*'")
}

func TestParseEmptyPatternProducesOnlyBootstrap(t *testing.T) {
	g, _, err := Parse("")
	require.NoError(t, err)
	require.Equal(t, 0, g.FinalNode)
	require.Contains(t, g.Edges[0], graph.Edge{Label: graph.Arrow{Kind: graph.Dot}, To: 0})
}

func TestParseCharacterClassLiteralCaret(t *testing.T) {
	// '^' only negates a character class at position 0; elsewhere in the
	// class body it's a literal member.
	g, _, err := Parse(`a[b^c]d`)
	require.NoError(t, err)
	require.True(t, nfa.Walk(g, "a^d"))
	require.True(t, nfa.Walk(g, "abd"))
}

func TestParseAlternationRightRecursive(t *testing.T) {
	// "a|b+" means a|(b+), not (a|b)+: grouping is required for the latter.
	g, _, err := Parse("a|b+")
	require.NoError(t, err)
	require.True(t, nfa.Walk(g, "bbbb"))
	require.True(t, nfa.Walk(g, "a"))
}
