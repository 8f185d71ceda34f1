package dfalex

import "testing"

// TestMinimizeKeepsDifferentlyLabeledPathsApart builds two literals with
// the same "at" tail ("bat"/"cat") but different labels, so no tail state
// can be shared, and checks the minimized DFA is non-empty and still
// reports the right label for each literal.
func TestMinimizeKeepsDifferentlyLabeledPathsApart(t *testing.T) {
	b := NewBuilder[testLabel]()
	b.AddPattern(Str("bat"), "BAT")
	b.AddPattern(Str("cat"), "CAT")

	start, err := b.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	dfa := start.dfa
	// start -[b]-> s1 -[a]-> s2 -[t]-> accept(BAT)
	// start -[c]-> s1'-[a]-> s2'-[t]-> accept(CAT)
	// "a" and "t" steps cannot merge across BAT/CAT since they lead to
	// differently-labeled accepts, but minimization must still collapse
	// any states that really are equivalent; just assert it doesn't
	// explode and both patterns still match correctly end to end.
	if dfa.NumStates() == 0 {
		t.Fatalf("expected a non-trivial dfa")
	}

	for s, want := range map[string]testLabel{"bat": "BAT", "cat": "CAT"} {
		label, ok := runDFA(start, s)
		if !ok || label != want {
			t.Fatalf("runDFA(%q) = (%v, %v), want (%v, true)", s, label, ok, want)
		}
	}
}

// TestMinimizeSharesEquivalentTails checks the textbook minimization
// case directly: two independent start states whose "a" branch both
// reach accepting states for the same label must collapse to a single
// shared successor state once minimized.
func TestMinimizeSharesEquivalentTails(t *testing.T) {
	nfa := NewNfa()
	acceptA := nfa.AddState(testLabel("X"))
	s1 := nfa.AddState(nil)
	nfa.AddRange(s1, CharRange{First: 'a', Last: 'a'}, acceptA)

	acceptB := nfa.AddState(testLabel("X"))
	s2 := nfa.AddState(nil)
	nfa.AddRange(s2, CharRange{First: 'a', Last: 'a'}, acceptB)

	dfa, err := BuildFromNfa[testLabel](nfa, []int{s1, s2}, nil)
	if err != nil {
		t.Fatalf("BuildFromNfa: %v", err)
	}

	// Both start states behave identically (accept "a" with label X,
	// reject everything else), so after minimization they must be the
	// very same state.
	starts := dfa.StartStates()
	if starts[0].index != starts[1].index {
		t.Fatalf("expected equivalent start states to collapse to one state, got %d and %d",
			starts[0].index, starts[1].index)
	}
}

func TestMinimizeUnreachableStatesPruned(t *testing.T) {
	nfa := NewNfa()
	accept := nfa.AddState(testLabel("X"))
	start := nfa.AddState(nil)
	nfa.AddRange(start, CharRange{First: 'a', Last: 'a'}, accept)

	// an NFA state that no start state can ever reach
	stray := nfa.AddState(testLabel("Y"))
	strayAccept := nfa.AddState(testLabel("Y"))
	nfa.AddRange(stray, CharRange{First: 'z', Last: 'z'}, strayAccept)

	dfa, err := BuildFromNfa[testLabel](nfa, []int{start}, nil)
	if err != nil {
		t.Fatalf("BuildFromNfa: %v", err)
	}
	for i := 0; i < dfa.NumStates(); i++ {
		if label, ok := dfa.match(i); ok && label == "Y" {
			t.Fatalf("unreachable label Y leaked into the minimized dfa")
		}
	}
}
