package dfalex

import (
	"encoding/binary"
	"unicode/utf16"
)

// Pattern is a regular-language descriptor that knows how to add itself
// to an Nfa (producing the entry state for a given accept state), how to
// build the pattern matching its reverse language, and how to produce a
// deterministic fingerprint of itself for cache-key computation. It is
// the Go analog of the original's Matchable+Serializable pair.
type Pattern interface {
	AddToNFA(nfa *Nfa, accept int) int
	Reversed() Pattern
	Fingerprint() []byte
}

const (
	fpTagClass = iota
	fpTagConcat
	fpTagUnion
	fpTagStar
	fpTagEmpty
)

// classPattern matches a single code unit drawn from a set of ranges.
type classPattern struct {
	ranges []CharRange
}

// Char returns a pattern matching exactly the code unit c.
func Char(c uint16) Pattern {
	return classPattern{ranges: []CharRange{{First: c, Last: c}}}
}

// CharClass returns a pattern matching any code unit in one of ranges.
func CharClass(ranges ...CharRange) Pattern {
	cp := make([]CharRange, len(ranges))
	copy(cp, ranges)
	return classPattern{ranges: disjointCover(cp)}
}

func (p classPattern) AddToNFA(nfa *Nfa, accept int) int {
	entry := nfa.AddState(nil)
	for _, r := range p.ranges {
		nfa.AddRange(entry, r, accept)
	}
	return entry
}

func (p classPattern) Reversed() Pattern { return p }

func (p classPattern) Fingerprint() []byte {
	buf := []byte{fpTagClass}
	for _, r := range p.ranges {
		buf = appendUint16(buf, r.First)
		buf = appendUint16(buf, r.Last)
	}
	return buf
}

// concatPattern matches a followed immediately by b.
type concatPattern struct {
	a, b Pattern
}

// Concat returns a pattern matching p0 followed by p1, ..., followed by pn.
// With no arguments it returns the empty-string pattern.
func Concat(parts ...Pattern) Pattern {
	if len(parts) == 0 {
		return emptyPattern{}
	}
	result := parts[0]
	for _, p := range parts[1:] {
		result = concatPattern{a: result, b: p}
	}
	return result
}

// Str returns a pattern matching the literal string s, encoded as the
// 16-bit code units the matcher operates on.
func Str(s string) Pattern {
	units := utf16.Encode([]rune(s))
	parts := make([]Pattern, len(units))
	for i, u := range units {
		parts[i] = Char(u)
	}
	return Concat(parts...)
}

func (p concatPattern) AddToNFA(nfa *Nfa, accept int) int {
	mid := p.b.AddToNFA(nfa, accept)
	return p.a.AddToNFA(nfa, mid)
}

func (p concatPattern) Reversed() Pattern {
	return concatPattern{a: p.b.Reversed(), b: p.a.Reversed()}
}

func (p concatPattern) Fingerprint() []byte {
	buf := []byte{fpTagConcat}
	buf = appendFramed(buf, p.a.Fingerprint())
	buf = appendFramed(buf, p.b.Fingerprint())
	return buf
}

// unionPattern matches whichever of its alternatives matches.
type unionPattern struct {
	alts []Pattern
}

// Union returns a pattern matching any one of alts.
func Union(alts ...Pattern) Pattern {
	if len(alts) == 1 {
		return alts[0]
	}
	flat := make([]Pattern, 0, len(alts))
	for _, a := range alts {
		if u, ok := a.(unionPattern); ok {
			flat = append(flat, u.alts...)
		} else {
			flat = append(flat, a)
		}
	}
	return unionPattern{alts: flat}
}

func (p unionPattern) AddToNFA(nfa *Nfa, accept int) int {
	entry := nfa.AddState(nil)
	for _, alt := range p.alts {
		nfa.AddEpsilon(entry, alt.AddToNFA(nfa, accept))
	}
	return entry
}

func (p unionPattern) Reversed() Pattern {
	rev := make([]Pattern, len(p.alts))
	for i, a := range p.alts {
		rev[i] = a.Reversed()
	}
	return unionPattern{alts: rev}
}

func (p unionPattern) Fingerprint() []byte {
	buf := []byte{fpTagUnion}
	buf = appendUint32(buf, uint32(len(p.alts)))
	for _, a := range p.alts {
		buf = appendFramed(buf, a.Fingerprint())
	}
	return buf
}

// starPattern matches zero or more repetitions of its operand.
type starPattern struct {
	body Pattern
}

// MaybeRepeat returns a pattern matching zero or more repetitions of p
// (the Kleene star).
func MaybeRepeat(p Pattern) Pattern {
	return starPattern{body: p}
}

// Plus returns a pattern matching one or more repetitions of p.
func Plus(p Pattern) Pattern {
	return Concat(p, MaybeRepeat(p))
}

// Optional returns a pattern matching p or the empty string.
func Optional(p Pattern) Pattern {
	return Union(p, emptyPattern{})
}

// Repeat returns a pattern matching between min and max repetitions of p,
// inclusive. max < 0 means unbounded.
func Repeat(p Pattern, min, max int) Pattern {
	if min < 0 {
		min = 0
	}
	parts := make([]Pattern, 0, min+1)
	for i := 0; i < min; i++ {
		parts = append(parts, p)
	}
	switch {
	case max < 0:
		parts = append(parts, MaybeRepeat(p))
	case max > min:
		tail := Pattern(emptyPattern{})
		for i := 0; i < max-min; i++ {
			tail = Optional(Concat(p, tail))
		}
		parts = append(parts, tail)
	}
	return Concat(parts...)
}

func (p starPattern) AddToNFA(nfa *Nfa, accept int) int {
	entry := nfa.AddState(nil)
	nfa.AddEpsilon(entry, accept)
	loopBack := p.body.AddToNFA(nfa, entry)
	nfa.AddEpsilon(entry, loopBack)
	return entry
}

func (p starPattern) Reversed() Pattern {
	return starPattern{body: p.body.Reversed()}
}

func (p starPattern) Fingerprint() []byte {
	return appendFramed([]byte{fpTagStar}, p.body.Fingerprint())
}

// emptyPattern matches only the empty string.
type emptyPattern struct{}

func (p emptyPattern) AddToNFA(nfa *Nfa, accept int) int {
	entry := nfa.AddState(nil)
	nfa.AddEpsilon(entry, accept)
	return entry
}

func (p emptyPattern) Reversed() Pattern { return p }

func (p emptyPattern) Fingerprint() []byte { return []byte{fpTagEmpty} }

func appendUint16(buf []byte, v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}

func appendUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendFramed(buf, data []byte) []byte {
	buf = appendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}
