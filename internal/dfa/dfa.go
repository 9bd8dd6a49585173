// Package dfa overlays lazy subset construction on top of internal/nfa: each
// distinct (source DFA state, input rune, whether that rune is the haystack's
// last) combination is memoized as a transition to a newly materialized DFA
// state the first time it's seen, so repeated
// matches against the same compiled graph reuse prior work.
package dfa

import (
	"github.com/projectdiscovery/gologger"

	"github.com/go-regex/core/internal/graph"
	"github.com/go-regex/core/internal/nfa"
)

// dstate is one node of the lazily-built DFA: the NFA state-set it
// represents, and the per-rune transitions discovered so far.
type dstate struct {
	nfaStates nfa.State
	next      map[rune]int
}

// Matcher is a persistent DFA overlay over a single compiled graph. It
// amortizes state construction across repeated Walk calls on different
// haystacks, matching the stateful design of the originating DFA type this
// package is modeled on: states and current sit on the Matcher, not on a
// per-call stack frame.
type Matcher struct {
	g      *graph.Graph
	states []dstate
	cur    int
}

// New builds a Matcher seeded with g's initial NFA state-set as DFA state 0.
// No further states are materialized until Walk demands them.
func New(g *graph.Graph) *Matcher {
	return &Matcher{
		g: g,
		states: []dstate{{
			nfaStates: nfa.InitialState(g),
			next:      make(map[rune]int),
		}},
		cur: 0,
	}
}

// Walk reports whether the compiled graph matches haystack, reusing any DFA
// states previously materialized by earlier calls to Walk on this Matcher.
func (m *Matcher) Walk(haystack string) bool {
	m.cur = 0
	runes := []rune(haystack)

	if len(runes) == 0 {
		return m.states[m.cur].nfaStates.Has(m.g.FinalNode) || m.hasFinalAfterLineEnd()
	}

	for i, c := range runes {
		if m.states[m.cur].nfaStates.Has(m.g.FinalNode) {
			return true
		}

		m.advance(c, i == len(runes)-1)

		if len(m.states[m.cur].nfaStates) == 0 {
			return false
		}
	}

	return m.states[m.cur].nfaStates.Has(m.g.FinalNode)
}

// hasFinalAfterLineEnd applies the same empty-haystack LineEnd correction
// internal/nfa.Walk applies, materializing the resulting state as a new DFA
// node under the reserved key -1 (never an input rune) so a later
// empty-haystack Walk reuses it.
func (m *Matcher) hasFinalAfterLineEnd() bool {
	const emptyInputKey = rune(-1)
	cur := &m.states[m.cur]
	if next, ok := cur.next[emptyInputKey]; ok {
		m.cur = next
		return m.states[m.cur].nfaStates.Has(m.g.FinalNode)
	}

	closed := nfa.FollowEmpty(m.g, nfa.Step(m.g, cur.nfaStates, func(a graph.Arrow) bool { return a.Kind == graph.LineEnd }))
	for id := range cur.nfaStates {
		closed[id] = struct{}{}
	}

	nextIdx := len(m.states)
	m.states = append(m.states, dstate{nfaStates: closed, next: make(map[rune]int)})
	m.states[m.cur].next[emptyInputKey] = nextIdx
	m.cur = nextIdx
	return closed.Has(m.g.FinalNode)
}

// advance transitions m.cur on c, materializing a new DFA state the first
// time (source state, c, isLast) is seen.
func (m *Matcher) advance(c rune, isLast bool) {
	// A step on the haystack's last rune also fires LineEnd, so it is
	// memoized under its own key (-2-c, never a real rune nor emptyInputKey).
	key := c
	if isLast {
		key = -2 - c
	}

	cur := &m.states[m.cur]
	if next, ok := cur.next[key]; ok {
		m.cur = next
		return
	}

	matched := nfa.Step(m.g, cur.nfaStates, func(a graph.Arrow) bool { return a.MatchesChar(c) })
	if isLast {
		for id := range nfa.Step(m.g, matched, func(a graph.Arrow) bool { return a.Kind == graph.LineEnd }) {
			matched[id] = struct{}{}
		}
	}
	matched = nfa.FollowEmpty(m.g, matched)

	nextIdx := len(m.states)
	gologger.Debug().Msgf("dfa: materializing state %d on rune %q from state %d", nextIdx, c, m.cur)
	m.states = append(m.states, dstate{nfaStates: matched, next: make(map[rune]int)})
	cur.next[key] = nextIdx
	m.cur = nextIdx
}

// Walk compiles nothing new: it builds a throwaway Matcher for the one-shot
// case where no state needs to survive past a single haystack.
func Walk(g *graph.Graph, haystack string) bool {
	return New(g).Walk(haystack)
}
