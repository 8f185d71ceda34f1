package dfalex

import "sort"

// dfaRangeEdge is one outgoing transition of a minimized DFA state. Edges
// within a state are kept sorted and disjoint by construction, so lookups
// can binary-search them.
type dfaRangeEdge struct {
	Range CharRange
	To    int
}

type dfaStateData[L comparable] struct {
	ranges    []dfaRangeEdge
	accept    L
	hasAccept bool
}

// RawDfa is the un-minimized result of subset construction: a list of
// states plus the indices of the requested start states, in request
// order. It is an intermediate artifact; callers consume a MinimizedDfa.
type RawDfa[L comparable] struct {
	States      []dfaStateData[L]
	StartStates []int
}

// MinimizedDfa is an immutable, minimized DFA shared across every start
// state that was requested together. It is safe for concurrent read
// access once built.
type MinimizedDfa[L comparable] struct {
	states      []dfaStateData[L]
	startStates []int
}

// StartStates returns one DfaState per start state requested of the
// build that produced this DFA, in the order requested.
func (d *MinimizedDfa[L]) StartStates() []*DfaState[L] {
	out := make([]*DfaState[L], len(d.startStates))
	for i, idx := range d.startStates {
		out[i] = &DfaState[L]{dfa: d, index: idx}
	}
	return out
}

// NumStates returns the number of states in the minimized DFA.
func (d *MinimizedDfa[L]) NumStates() int {
	return len(d.states)
}

func (d *MinimizedDfa[L]) transition(state int, c uint16) (int, bool) {
	edges := d.states[state].ranges
	i := sort.Search(len(edges), func(i int) bool { return edges[i].Range.Last >= c })
	if i < len(edges) && edges[i].Range.contains(c) {
		return edges[i].To, true
	}
	return 0, false
}

func (d *MinimizedDfa[L]) match(state int) (L, bool) {
	st := d.states[state]
	return st.accept, st.hasAccept
}

// DfaState is one state of a built, minimized DFA: an immutable handle
// that knows how to advance on a code unit and what it accepts, if
// anything, at this point. The zero value is not usable; DfaState values
// are only produced by Builder/MinimizedDfa.
type DfaState[L comparable] struct {
	dfa   *MinimizedDfa[L]
	index int
}

// NextState returns the state reached by consuming c, or nil if there is
// no such transition (the DFA rejects any string passing through here
// with c next).
func (s *DfaState[L]) NextState(c uint16) *DfaState[L] {
	to, ok := s.dfa.transition(s.index, c)
	if !ok {
		return nil
	}
	return &DfaState[L]{dfa: s.dfa, index: to}
}

// Match returns the label this state accepts and true, or the zero value
// and false if this state is not an accept state.
func (s *DfaState[L]) Match() (L, bool) {
	return s.dfa.match(s.index)
}
