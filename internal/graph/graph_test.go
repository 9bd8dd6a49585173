package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddEdgeDedup(t *testing.T) {
	g := New(0)
	g.AddEdge(0, Arrow{Kind: Char, Ch: 'a'}, 1)
	g.AddEdge(0, Arrow{Kind: Char, Ch: 'a'}, 1)

	require.Len(t, g.Edges[0], 1)
	require.Equal(t, 2, g.NodeCount)
}

func TestAddEdgeDistinguishesLabels(t *testing.T) {
	g := New(0)
	g.AddEdge(0, Arrow{Kind: Char, Ch: 'a'}, 1)
	g.AddEdge(0, Arrow{Kind: Char, Ch: 'b'}, 1)

	require.Len(t, g.Edges[0], 2)
}

func TestConcat(t *testing.T) {
	// "a" concatenated with "b": node 0 -a-> 1, then 1 -b-> 2.
	a := New(1)
	a.AddEdge(0, Arrow{Kind: Char, Ch: 'a'}, 1)

	b := New(1)
	b.AddEdge(0, Arrow{Kind: Char, Ch: 'b'}, 1)

	a.Concat(b)

	require.Equal(t, 2, a.FinalNode)
	require.ElementsMatch(t, []Edge{{Label: Arrow{Kind: Char, Ch: 'a'}, To: 1}}, a.Edges[0])
	require.ElementsMatch(t, []Edge{{Label: Arrow{Kind: Char, Ch: 'b'}, To: 2}}, a.Edges[1])
}

func TestConcatWithEmptyGraph(t *testing.T) {
	a := New(1)
	a.AddEdge(0, Arrow{Kind: Char, Ch: 'a'}, 1)

	empty := New(0)
	a.Concat(empty)

	require.Equal(t, 1, a.FinalNode)
	require.ElementsMatch(t, []Edge{{Label: Arrow{Kind: Char, Ch: 'a'}, To: 1}}, a.Edges[0])
}

func TestAttachParallel(t *testing.T) {
	// "a" with "b" attached in parallel between node 0 and node 1: both
	// Char('a') and Char('b') go from 0 to 1.
	g := New(1)
	g.AddEdge(0, Arrow{Kind: Char, Ch: 'a'}, 1)

	other := New(1)
	other.AddEdge(0, Arrow{Kind: Char, Ch: 'b'}, 1)

	g.AttachParallel(other, 0, 1)

	require.Equal(t, 1, g.FinalNode)
	require.ElementsMatch(t, []Edge{
		{Label: Arrow{Kind: Char, Ch: 'a'}, To: 1},
		{Label: Arrow{Kind: Char, Ch: 'b'}, To: 1},
	}, g.Edges[0])
}

func TestAttachParallelCanCollapseSelfLoop(t *testing.T) {
	// Attaching a single-node fragment (node 0 == final node) between from
	// and to where from == to produces a self-loop.
	g := New(0)
	other := New(0)
	other.AddEdge(0, Arrow{Kind: Epsilon}, 0)

	g.AttachParallel(other, 0, 0)

	require.Contains(t, g.Edges[0], Edge{Label: Arrow{Kind: Epsilon}, To: 0})
}

func TestArrowMatchesChar(t *testing.T) {
	tests := []struct {
		name  string
		arrow Arrow
		input rune
		want  bool
	}{
		{"char match", Arrow{Kind: Char, Ch: 'a'}, 'a', true},
		{"char mismatch", Arrow{Kind: Char, Ch: 'a'}, 'b', false},
		{"dot matches anything", Arrow{Kind: Dot}, '\n', true},
		{"one of contains", Arrow{Kind: OneOf, Set: []rune{'a', 'b', 'c'}}, 'b', true},
		{"one of excludes", Arrow{Kind: OneOf, Set: []rune{'a', 'b', 'c'}}, 'z', false},
		{"not one of excludes", Arrow{Kind: NotOneOf, Set: []rune{'a', 'b', 'c'}}, 'z', true},
		{"not one of contains", Arrow{Kind: NotOneOf, Set: []rune{'a', 'b', 'c'}}, 'a', false},
		{"epsilon never consumes", Arrow{Kind: Epsilon}, 'a', false},
		{"line start never consumes", Arrow{Kind: LineStart}, 'a', false},
		{"line end never consumes", Arrow{Kind: LineEnd}, 'a', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.arrow.MatchesChar(tt.input))
		})
	}
}

func TestArrowEqualOrderSensitive(t *testing.T) {
	a := Arrow{Kind: OneOf, Set: []rune{'a', 'b'}}
	b := Arrow{Kind: OneOf, Set: []rune{'b', 'a'}}

	require.False(t, a.Equal(b))
	require.True(t, a.Equal(Arrow{Kind: OneOf, Set: []rune{'a', 'b'}}))
}
