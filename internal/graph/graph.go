// Package graph implements the labeled directed multigraph that the parser
// emits and the NFA/DFA engines walk.
//
// A Graph has a single entry node (id 0) and a single designated final
// node. Edges are deduplicated on insertion so that the three algebra
// operations (AddEdge, Concat, AttachParallel) can be composed freely
// without ever producing duplicate transitions, even when renumbering
// folds several source nodes onto the same target.
package graph

import "slices"

// Node is a dense, non-negative integer identifier into a Graph's
// adjacency table. Node 0 is always the entry node.
type Node = int

// ArrowKind tags the variant of an Edge's label.
type ArrowKind int

const (
	Epsilon ArrowKind = iota
	Char
	Dot
	OneOf
	NotOneOf
	LineStart
	LineEnd
)

// Arrow is the tagged union of edge labels the parser emits. Ch is only
// meaningful for Char; Set is only meaningful for OneOf/NotOneOf.
type Arrow struct {
	Kind ArrowKind
	Ch   rune
	Set  []rune
}

// Equal reports structural equality, order-sensitive for Set per the
// parser's deterministic construction order.
func (a Arrow) Equal(b Arrow) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Char:
		return a.Ch == b.Ch
	case OneOf, NotOneOf:
		return slices.Equal(a.Set, b.Set)
	default:
		return true
	}
}

// MatchesChar reports whether the arrow consumes the rune c. Epsilon,
// LineStart and LineEnd never consume and always report false here.
func (a Arrow) MatchesChar(c rune) bool {
	switch a.Kind {
	case Char:
		return a.Ch == c
	case Dot:
		return true
	case OneOf:
		return slices.Contains(a.Set, c)
	case NotOneOf:
		return !slices.Contains(a.Set, c)
	default:
		return false
	}
}

// Edge is a (label, target) pair stored in the source node's adjacency
// list.
type Edge struct {
	Label Arrow
	To    Node
}

// Graph is a labeled directed multigraph with a dense node-id space.
// Edges is keyed by source node id; NodeCount tracks max(id)+1 so that
// fresh ids can be allocated without scanning.
type Graph struct {
	Edges     map[Node][]Edge
	NodeCount int
	FinalNode Node
}

// New returns a graph with no edges yet whose final node is finalNode, so
// NodeCount is finalNode+1.
func New(finalNode Node) *Graph {
	return &Graph{
		Edges:     make(map[Node][]Edge),
		NodeCount: finalNode + 1,
		FinalNode: finalNode,
	}
}

func (g *Graph) grow(n int) {
	if n+1 > g.NodeCount {
		g.NodeCount = n + 1
	}
}

// AddEdge appends (label, to) to from's adjacency list if it is not already
// present, and extends NodeCount to cover both endpoints. It mutates g and
// returns it, mirroring the move-through style of Concat/AttachParallel.
func (g *Graph) AddEdge(from Node, label Arrow, to Node) *Graph {
	edges := g.Edges[from]
	for _, e := range edges {
		if e.To == to && e.Label.Equal(label) {
			return g
		}
	}
	g.Edges[from] = append(edges, Edge{Label: label, To: to})
	g.grow(from)
	g.grow(to)
	return g
}

// Concat appends other onto g so that g's final node is identified with
// other's node 0. The result's final node is other.FinalNode shifted by
// the offset; g's own node 0 remains the result's entry node.
func (g *Graph) Concat(other *Graph) *Graph {
	offset := g.NodeCount - 1

	// Ranging over other.Edges while g.AddEdge mutates g.Edges (a distinct
	// map) is safe. g's final node, the target other's node 0 is identified
	// with, is read once before any remapping.
	finalNode := g.FinalNode
	for from, edges := range other.Edges {
		mappedFrom := remap(from, other.FinalNode, finalNode, -1, offset)
		for _, e := range edges {
			mappedTo := remap(e.To, other.FinalNode, finalNode, -1, offset)
			g.AddEdge(mappedFrom, e.Label, mappedTo)
		}
	}

	g.FinalNode = other.FinalNode + offset
	return g
}

// AttachParallel grafts other as a parallel branch between g's existing
// nodes from and to: other's node 0 maps to from, other's final node maps
// to to, and every other node is shifted by offset. g's own final node is
// unchanged.
func (g *Graph) AttachParallel(other *Graph, from, to Node) *Graph {
	offset := g.NodeCount - 1

	for src, edges := range other.Edges {
		mappedFrom := remap(src, other.FinalNode, from, to, offset)
		for _, e := range edges {
			mappedTo := remap(e.To, other.FinalNode, from, to, offset)
			g.AddEdge(mappedFrom, e.Label, mappedTo)
		}
	}

	return g
}

// remap implements the endpoint renumbering shared by Concat (finalTarget==-1,
// i.e. only node 0 is special-cased) and AttachParallel (both 0 and
// otherFinal are special-cased).
func remap(x, otherFinal, zeroTarget, finalTarget, offset int) Node {
	switch {
	case x == 0:
		return zeroTarget
	case finalTarget >= 0 && x == otherFinal:
		return finalTarget
	default:
		return x + offset
	}
}
