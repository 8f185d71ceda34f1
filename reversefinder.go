package dfalex

import "fmt"

// BuildReverseFinder builds a reverse finder DFA over every pattern
// added so far: a DFA meant to be run backward from the end of a match
// candidate, whose accept states mark where a match could have started.
func (b *Builder[L]) BuildReverseFinder() (*DfaState[bool], error) {
	states, err := b.BuildReverseFinders([][]L{b.Order()})
	if err != nil {
		return nil, err
	}
	return states[0], nil
}

// BuildReverseFinderLanguage is like BuildReverseFinder, restricted to
// the patterns whose label appears in language.
func (b *Builder[L]) BuildReverseFinderLanguage(language []L) (*DfaState[bool], error) {
	states, err := b.BuildReverseFinders([][]L{language})
	if err != nil {
		return nil, err
	}
	return states[0], nil
}

// BuildReverseFinders builds one reverse finder DFA shared across every
// language, returning one start state per entry of languages.
func (b *Builder[L]) BuildReverseFinders(languages [][]L) ([]*DfaState[bool], error) {
	if len(languages) == 0 {
		return nil, nil
	}

	var cacheKey string
	if b.cache != nil {
		key, err := accumulatorCacheKey[L](dfaTypeReverseFinder, b.order, b.patterns, languages, nil)
		if err == nil {
			cacheKey = key
			if cached, ok := b.cache.Get(cacheKey); ok {
				if dfa, decErr := decodeCachedDfa[bool](cached); decErr == nil {
					return dfa.StartStates(), nil
				}
			}
		}
	}

	dfa, err := b.buildReverseFinder(languages)
	if err != nil {
		return nil, err
	}

	if b.cache != nil && cacheKey != "" {
		if encoded, encErr := encodeCachedDfa(dfa); encErr == nil {
			b.cache.Put(cacheKey, encoded)
		}
	}
	return dfa.StartStates(), nil
}

// buildReverseFinder assembles the reverse-finder NFA (spec.md §4.5):
// every pattern's reversed form is epsilon-tied to one shared end state,
// the resulting start is disemptified so it no longer accepts the empty
// string, and a ".*" prefix is added so the finder can be dropped in
// anywhere and scan backward to the nearest match start. All reachable
// accept states carry the same label, true, so ambiguity between them is
// not actually possible; the resolver here only guards against a
// construction bug that would make it so.
func (b *Builder[L]) buildReverseFinder(languages [][]L) (*MinimizedDfa[bool], error) {
	nfa := NewNfa()
	end := nfa.AddState(true)
	start := nfa.AddState(nil)

	for _, label := range b.order {
		patList := b.patterns[label]
		if len(patList) == 0 {
			continue
		}
		included := false
		for _, language := range languages {
			if containsLabel(language, label) {
				included = true
				break
			}
		}
		if !included {
			continue
		}
		for _, pat := range patList {
			nfa.AddEpsilon(start, pat.Reversed().AddToNFA(nfa, end))
		}
	}

	start = disemptify(nfa, start, end)
	start = MaybeRepeat(CharClass(AllChars)).AddToNFA(nfa, start)

	return BuildFromNfa[bool](nfa, []int{start}, panicOnAmbiguity)
}

// disemptify rebuilds start so that it no longer accepts the empty
// string (end is not in its own epsilon-closure) while still accepting
// every string of length >= 1 that the original start accepted. It does
// this by epsilon-closing start and, if that closure reaches end,
// replacing start with a fresh state carrying direct copies of every
// range-edge any member of the closure has — which has the same
// non-empty-length behavior (whatever a later subset construction's own
// epsilon-closing of the targets produces is unchanged) but whose own
// closure is just itself, excluding end.
func disemptify(nfa *Nfa, start, end int) int {
	closure := epsilonClosure(nfa, []int{start})
	acceptsEmpty := false
	for _, s := range closure {
		if s == end {
			acceptsEmpty = true
			break
		}
	}
	if !acceptsEmpty {
		return start
	}

	fresh := nfa.AddState(nil)
	for _, s := range closure {
		for _, e := range nfa.states[s].ranges {
			nfa.AddRange(fresh, e.Range, e.To)
		}
	}
	return fresh
}

func panicOnAmbiguity(conflicts map[bool]struct{}) (bool, error) {
	panic(fmt.Sprintf("dfalex: reverse finder reached an impossible ambiguous state: %v", conflicts))
}
