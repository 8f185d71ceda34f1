package dfalex

import "github.com/bikallem/dfalex/internal/buildlog"

// BuildFromNfa runs subset construction and minimization directly over
// an already-assembled Nfa, given the NFA states to use as DFA start
// states. It is the primitive both Builder.Build and
// Builder.BuildReverseFinder are built on (spec.md §4.6), and is exported
// so callers that assemble their own Nfa graphs (outside the pattern
// accumulator) can still reach a minimized DFA.
func BuildFromNfa[L comparable](nfa *Nfa, nfaStartStates []int, resolver AmbiguityResolver[L]) (*MinimizedDfa[L], error) {
	if resolver == nil {
		resolver = defaultAmbiguityResolver[L]
	}
	raw, err := subsetConstruct[L](nfa, nfaStartStates, resolver)
	if err != nil {
		return nil, err
	}
	dfa := minimize[L](raw)
	buildlog.Debugf("dfalex: minimized %d raw states to %d states across %d start states",
		len(raw.States), dfa.NumStates(), len(nfaStartStates))
	return dfa, nil
}

// BuildFromNfaCached is BuildFromNfa plus a cache consulted and
// populated under a key computed from the Nfa graph itself (spec.md
// §10.3) rather than from a pattern accumulator — for callers that
// assemble their own Nfa graphs directly and still want build results
// cached. A nil cache makes this identical to BuildFromNfa.
func BuildFromNfaCached[L comparable](nfa *Nfa, nfaStartStates []int, resolver AmbiguityResolver[L], cache BuilderCache) (*MinimizedDfa[L], error) {
	if resolver == nil {
		resolver = defaultAmbiguityResolver[L]
	}
	if cache == nil {
		return BuildFromNfa[L](nfa, nfaStartStates, resolver)
	}

	key, keyErr := nfaCacheKey[L](nfa, nfaStartStates, resolver)
	if keyErr == nil {
		if cached, ok := cache.Get(key); ok {
			if dfa, decErr := decodeCachedDfa[L](cached); decErr == nil {
				buildlog.Debugf("dfalex: nfa-level cache hit for key %s", key)
				return dfa, nil
			}
			buildlog.Debugf("dfalex: ignoring unreadable nfa-level cache entry for key %s", key)
		}
	} else {
		buildlog.Debugf("dfalex: not consulting nfa-level cache, cannot compute a key: %v", keyErr)
	}

	dfa, err := BuildFromNfa[L](nfa, nfaStartStates, resolver)
	if err != nil {
		return nil, err
	}
	if keyErr == nil {
		if encoded, encErr := encodeCachedDfa(dfa); encErr == nil {
			cache.Put(key, encoded)
		}
	}
	return dfa, nil
}

// subsetConstruct performs the powerset construction: starting from the
// epsilon-closures of the requested NFA start states, it repeatedly
// splits each DFA state's outgoing ranges into the maximal pieces on
// which the target NFA-state set is constant (disjointCover), and
// interns each resulting closure by its canonical (sorted) member list so
// identical closures collapse to one DFA state.
func subsetConstruct[L comparable](nfa *Nfa, starts []int, resolver AmbiguityResolver[L]) (*RawDfa[L], error) {
	indexOf := map[string]int{}
	var states []dfaStateData[L]
	var closures [][]int
	var worklist []int

	addState := func(closure []int) (int, error) {
		key := closureKey(closure)
		if idx, ok := indexOf[key]; ok {
			return idx, nil
		}
		label, hasAccept, err := resolveAccept[L](nfa, closure, resolver)
		if err != nil {
			return 0, err
		}
		idx := len(states)
		states = append(states, dfaStateData[L]{accept: label, hasAccept: hasAccept})
		closures = append(closures, closure)
		indexOf[key] = idx
		worklist = append(worklist, idx)
		return idx, nil
	}

	startIdx := make([]int, len(starts))
	for i, s := range starts {
		idx, err := addState(epsilonClosure(nfa, []int{s}))
		if err != nil {
			return nil, err
		}
		startIdx[i] = idx
	}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		closure := closures[cur]

		var allRanges []CharRange
		for _, nstate := range closure {
			for _, e := range nfa.states[nstate].ranges {
				allRanges = append(allRanges, e.Range)
			}
		}
		pieces := disjointCover(allRanges)

		for _, piece := range pieces {
			var targets []int
			for _, nstate := range closure {
				for _, e := range nfa.states[nstate].ranges {
					if e.Range.First <= piece.First && piece.Last <= e.Range.Last {
						targets = append(targets, e.To)
					}
				}
			}
			if len(targets) == 0 {
				continue
			}
			toIdx, err := addState(epsilonClosure(nfa, targets))
			if err != nil {
				return nil, err
			}
			// Extend the previous edge instead when this piece abuts it and
			// leads to the same DFA state, so every edge stays maximal.
			if edges := states[cur].ranges; len(edges) > 0 {
				last := &edges[len(edges)-1]
				if last.To == toIdx && int32(last.Range.Last)+1 == int32(piece.First) {
					last.Range.Last = piece.Last
					continue
				}
			}
			states[cur].ranges = append(states[cur].ranges, dfaRangeEdge{Range: piece, To: toIdx})
		}
	}

	return &RawDfa[L]{States: states, StartStates: startIdx}, nil
}

func closureKey(closure []int) string {
	buf := make([]byte, 0, len(closure)*4)
	for _, s := range closure {
		buf = appendUint32(buf, uint32(s))
	}
	return string(buf)
}

func resolveAccept[L comparable](nfa *Nfa, closure []int, resolver AmbiguityResolver[L]) (L, bool, error) {
	var zero L
	var labels map[L]struct{}
	for _, s := range closure {
		if acc := nfa.states[s].accept; acc != nil {
			if labels == nil {
				labels = map[L]struct{}{}
			}
			labels[acc.(L)] = struct{}{}
		}
	}
	switch len(labels) {
	case 0:
		return zero, false, nil
	case 1:
		for l := range labels {
			return l, true, nil
		}
	}
	label, err := resolver(labels)
	if err != nil {
		return zero, false, err
	}
	return label, true, nil
}
