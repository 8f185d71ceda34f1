// Package dfalex builds minimized deterministic finite automata (DFAs)
// from sets of labeled regular-language patterns.
//
// Given patterns with result labels, a Builder assembles an NFA, converts
// it to a DFA via subset construction, and minimizes it with a
// hash-partition refinement that globally shares states across every
// start state requested in one batch. A second pipeline builds a reverse
// finder DFA, used to locate match start positions by scanning backward
// from end-of-input.
//
// The pattern surface syntax (literal/union/repetition/character-class
// grammar parsing), the runtime state-walking matcher, and command-line
// tooling are not part of this package; it exposes only the capability
// contracts those collaborators need (Pattern, AmbiguityResolver,
// BuilderCache, DfaState).
package dfalex
