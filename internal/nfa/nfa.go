// Package nfa simulates a compiled *graph.Graph as a non-deterministic
// automaton: a boolean walk over the current set of live node ids,
// re-closing over Epsilon edges after every step.
package nfa

import (
	"github.com/projectdiscovery/gologger"

	"github.com/go-regex/core/internal/graph"
)

// State is the set of node ids the automaton could currently be in.
type State map[graph.Node]struct{}

func newState(ids ...graph.Node) State {
	s := make(State, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is a member of state s.
func (s State) Has(id graph.Node) bool {
	_, ok := s[id]
	return ok
}

func (s State) clone() State {
	out := make(State, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// InitialState is node 0 closed over a leading LineStart step and then over
// Epsilon edges, matching the automaton's state before any input is read.
func InitialState(g *graph.Graph) State {
	state := newState(0)
	for id := range Step(g, state, func(a graph.Arrow) bool { return a.Kind == graph.LineStart }) {
		state[id] = struct{}{}
	}
	return FollowEmpty(g, state)
}

// Step returns the set of nodes reachable from state by following exactly
// one edge whose label satisfies predicate.
func Step(g *graph.Graph, state State, predicate func(graph.Arrow) bool) State {
	out := make(State)
	for id := range state {
		for _, e := range g.Edges[id] {
			if predicate(e.Label) {
				out[e.To] = struct{}{}
			}
		}
	}
	return out
}

// FollowEmpty closes state under Epsilon edges until a fixpoint is reached.
func FollowEmpty(g *graph.Graph, state State) State {
	state = state.clone()
	for {
		empty := Step(g, state, func(a graph.Arrow) bool { return a.Kind == graph.Epsilon })
		grew := false
		for id := range empty {
			if !state.Has(id) {
				state[id] = struct{}{}
				grew = true
			}
		}
		if !grew {
			return state
		}
	}
}

// Walk reports whether g matches haystack anywhere, per the unanchored
// self-loop parser.Parse installs on node 0. LineEnd is applied at the last
// character's step and, per the empty-haystack correction, also when
// haystack is empty so that patterns like "$" and "a*$" behave consistently
// with a non-empty walk that reaches its last character.
func Walk(g *graph.Graph, haystack string) bool {
	state := InitialState(g)
	runes := []rune(haystack)

	if len(runes) == 0 {
		state = FollowEmpty(g, lineEndClose(g, state))
		return state.Has(g.FinalNode)
	}

	for i, c := range runes {
		if state.Has(g.FinalNode) {
			return true
		}

		state = Step(g, state, func(a graph.Arrow) bool { return a.MatchesChar(c) })
		if len(state) == 0 {
			return false
		}

		if i == len(runes)-1 {
			state = lineEndClose(g, state)
		}

		state = FollowEmpty(g, state)
	}

	return state.Has(g.FinalNode)
}

func lineEndClose(g *graph.Graph, state State) State {
	out := state.clone()
	for id := range Step(g, state, func(a graph.Arrow) bool { return a.Kind == graph.LineEnd }) {
		out[id] = struct{}{}
	}
	gologger.Debug().Msgf("nfa: closed %d states over LineEnd", len(out)-len(state))
	return out
}
