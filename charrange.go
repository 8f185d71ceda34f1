package dfalex

import "sort"

// CharRange is an inclusive range of 16-bit code units, the alphabet this
// package matches over (spec.md's "16-bit code units", mirroring Java
// char semantics for the patterns this core was distilled from).
type CharRange struct {
	First, Last uint16
}

// AllChars is the range covering every 16-bit code unit, used to build the
// ".*" prefix of a reverse finder.
var AllChars = CharRange{First: 0, Last: 0xFFFF}

func (r CharRange) contains(c uint16) bool {
	return r.First <= c && c <= r.Last
}

// disjointCover splits a set of possibly-overlapping ranges into
// disjoint sub-ranges on which the input set's membership cannot change:
// every breakpoint in the result is a First or Last+1 boundary of some
// input range, so no output piece straddles where an input range starts
// or ends. Gaps covered by no input range are omitted. The result is
// sorted by First.
//
// Breakpoints are never merged across, even when two adjacent input
// ranges happen to abut with nothing between them (one ending where
// another begins): callers rely on every piece having a single,
// unambiguous set of covering input ranges, and two abutting ranges
// generally cover different targets downstream.
func disjointCover(ranges []CharRange) []CharRange {
	if len(ranges) == 0 {
		return nil
	}
	ptSet := map[int32]bool{}
	for _, r := range ranges {
		ptSet[int32(r.First)] = true
		ptSet[int32(r.Last)+1] = true
	}
	pts := make([]int32, 0, len(ptSet))
	for p := range ptSet {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i] < pts[j] })

	var out []CharRange
	for i := 0; i+1 < len(pts); i++ {
		lo, hiExclusive := pts[i], pts[i+1]
		for _, r := range ranges {
			if int32(r.First) <= lo && hiExclusive-1 <= int32(r.Last) {
				out = append(out, CharRange{First: uint16(lo), Last: uint16(hiExclusive - 1)})
				break
			}
		}
	}
	return out
}
