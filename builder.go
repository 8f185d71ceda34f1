package dfalex

import "github.com/bikallem/dfalex/internal/buildlog"

// BuilderCache stores built DFAs keyed by a content fingerprint, so a
// Builder with an equivalent set of patterns, languages, and resolver
// can skip NFA assembly and minimization entirely. Get reports whether
// key was present; Put may evict older entries at its own discretion.
// Implementations must be safe for concurrent use (spec.md §5).
type BuilderCache interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte)
}

// Builder accumulates labeled patterns and builds minimized DFAs from
// them. The zero value is not usable; construct one with NewBuilder or
// NewBuilderWithCache.
//
// Patterns and labels are cheap to add and contribute no algorithmic
// work until Build/BuildReverseFinder(s) is called. A Builder is not
// safe for concurrent mutation; callers adding patterns from multiple
// goroutines must synchronize externally.
type Builder[L comparable] struct {
	patterns map[L][]Pattern
	order    []L
	cache    BuilderCache
}

// NewBuilder returns an empty, uncached Builder.
func NewBuilder[L comparable]() *Builder[L] {
	return &Builder[L]{patterns: make(map[L][]Pattern)}
}

// NewBuilderWithCache returns an empty Builder that consults cache before
// doing NFA assembly and minimization, and populates it afterward.
func NewBuilderWithCache[L comparable](cache BuilderCache) *Builder[L] {
	b := NewBuilder[L]()
	b.cache = cache
	return b
}

// AddPattern registers pat as matching label. A label may have more than
// one pattern; they are unioned together when a DFA is built.
func (b *Builder[L]) AddPattern(pat Pattern, label L) {
	if _, ok := b.patterns[label]; !ok {
		b.order = append(b.order, label)
	}
	b.patterns[label] = append(b.patterns[label], pat)
}

// Clear discards every pattern added so far, restoring the Builder to
// its state right after construction. The cache, if any, is unaffected.
func (b *Builder[L]) Clear() {
	b.patterns = make(map[L][]Pattern)
	b.order = nil
}

// Order returns the labels added so far, in first-insertion order. It is
// mainly useful for constructing a FirstResolver.
func (b *Builder[L]) Order() []L {
	out := make([]L, len(b.order))
	copy(out, b.order)
	return out
}

// Build builds a DFA matching every pattern added so far, with resolver
// breaking ties between labels that can match the same input
// simultaneously. A nil resolver fails on any such ambiguity.
func (b *Builder[L]) Build(resolver AmbiguityResolver[L]) (*DfaState[L], error) {
	states, err := b.BuildLanguages([][]L{b.Order()}, resolver)
	if err != nil {
		return nil, err
	}
	return states[0], nil
}

// BuildLanguage is like Build, but restricted to the patterns whose
// label appears in language.
func (b *Builder[L]) BuildLanguage(language []L, resolver AmbiguityResolver[L]) (*DfaState[L], error) {
	states, err := b.BuildLanguages([][]L{language}, resolver)
	if err != nil {
		return nil, err
	}
	return states[0], nil
}

// BuildLanguages builds one DFA shared across every language, returning
// one start state per entry of languages, in the same order. Building
// several languages together lets their DFAs share minimized states
// wherever the languages' matching behavior coincides.
func (b *Builder[L]) BuildLanguages(languages [][]L, resolver AmbiguityResolver[L]) ([]*DfaState[L], error) {
	if len(languages) == 0 {
		return nil, nil
	}
	if resolver == nil {
		resolver = defaultAmbiguityResolver[L]
	}

	var cacheKey string
	if b.cache != nil {
		key, err := accumulatorCacheKey(dfaTypeMatcher, b.order, b.patterns, languages, resolver)
		if err != nil {
			buildlog.Debugf("dfalex: not consulting cache, cannot compute a key: %v", err)
		} else {
			cacheKey = key
			if cached, ok := b.cache.Get(cacheKey); ok {
				if dfa, decErr := decodeCachedDfa[L](cached); decErr == nil {
					buildlog.Debugf("dfalex: cache hit for key %s", cacheKey)
					return dfa.StartStates(), nil
				}
				buildlog.Debugf("dfalex: ignoring unreadable cache entry for key %s", cacheKey)
			}
		}
	}

	dfa, err := b.build(languages, resolver)
	if err != nil {
		return nil, err
	}

	if b.cache != nil && cacheKey != "" {
		if encoded, encErr := encodeCachedDfa(dfa); encErr == nil {
			b.cache.Put(cacheKey, encoded)
		} else {
			buildlog.Debugf("dfalex: not caching build result: %v", encErr)
		}
	}

	return dfa.StartStates(), nil
}

func (b *Builder[L]) build(languages [][]L, resolver AmbiguityResolver[L]) (*MinimizedDfa[L], error) {
	nfa := NewNfa()
	nfaStartStates := make([]int, len(languages))
	for i := range languages {
		nfaStartStates[i] = nfa.AddState(nil)
	}

	// One accept state (and entry fragment) per label, built once and
	// epsilon-tied into every requested language that includes it, so a
	// label shared across languages shares its NFA fragment too.
	for _, label := range b.order {
		patList := b.patterns[label]
		if len(patList) == 0 {
			continue
		}
		entry := -1
		for i, language := range languages {
			if !containsLabel(language, label) {
				continue
			}
			if entry < 0 {
				accept := nfa.AddState(label)
				if len(patList) > 1 {
					union := nfa.AddState(nil)
					for _, pat := range patList {
						nfa.AddEpsilon(union, pat.AddToNFA(nfa, accept))
					}
					entry = union
				} else {
					entry = patList[0].AddToNFA(nfa, accept)
				}
			}
			nfa.AddEpsilon(nfaStartStates[i], entry)
		}
	}

	buildlog.Debugf("dfalex: assembled nfa with %d states for %d language(s)", nfa.NumStates(), len(languages))
	return BuildFromNfa[L](nfa, nfaStartStates, resolver)
}

func containsLabel[L comparable](set []L, label L) bool {
	for _, s := range set {
		if s == label {
			return true
		}
	}
	return false
}

// SearchPair bundles a forward matcher DFA with its reverse finder,
// exactly the pair the original's buildStringSearcher assembles for an
// external, out-of-scope matcher component to drive.
type SearchPair[L comparable] struct {
	Matcher *DfaState[L]
	Finder  *DfaState[bool]
}

// BuildSearchPair builds the forward matcher for every pattern added so
// far plus its reverse finder, as a convenience for callers that need
// both (spec.md §10.1).
func (b *Builder[L]) BuildSearchPair(resolver AmbiguityResolver[L]) (*SearchPair[L], error) {
	matcher, err := b.Build(resolver)
	if err != nil {
		return nil, err
	}
	finder, err := b.BuildReverseFinder()
	if err != nil {
		return nil, err
	}
	return &SearchPair[L]{Matcher: matcher, Finder: finder}, nil
}
