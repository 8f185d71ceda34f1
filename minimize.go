package dfalex

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// minimize refines raw's states into the coarsest partition consistent
// with accept labels and transitions (Hopcroft-style: an initial split by
// accept label, then repeated signature refinement until a pass produces
// no new split), then rewrites the DFA in terms of one representative
// state per final block, dropping anything unreachable from a start
// state. Unlike a pointer-walking Hopcroft worklist, each pass recomputes
// every state's signature and buckets it by a 64-bit xxhash of that
// signature purely to order/group work quickly; correctness never rests
// on the hash, since states only ever land in the same block when their
// full signature strings are equal.
func minimize[L comparable](raw *RawDfa[L]) *MinimizedDfa[L] {
	n := len(raw.States)
	if n == 0 {
		return &MinimizedDfa[L]{}
	}

	block := initialPartition(raw)
	for pass := 0; ; pass++ {
		newBlock, numGroups := refinePartition(raw, block)
		if numGroups == countDistinct(block) {
			block = newBlock
			break
		}
		block = newBlock
	}
	return reconstruct(raw, block)
}

func initialPartition[L comparable](raw *RawDfa[L]) []int {
	n := len(raw.States)
	block := make([]int, n)
	labelBlock := map[L]int{}
	next := 1 // block 0 is reserved for non-accepting states
	for i, st := range raw.States {
		if !st.hasAccept {
			block[i] = 0
			continue
		}
		b, ok := labelBlock[st.accept]
		if !ok {
			b = next
			next++
			labelBlock[st.accept] = b
		}
		block[i] = b
	}
	return block
}

func countDistinct(block []int) int {
	seen := map[int]bool{}
	for _, b := range block {
		seen[b] = true
	}
	return len(seen)
}

// refinePartition computes, for every state, a signature of (current
// block, sorted outgoing ranges retargeted to current blocks), then
// assigns fresh block ids so that two states share a new block iff they
// shared an old block and have identical signatures. Because this is
// always at least as fine as the input partition, equal group counts
// between input and output means the partition has reached a fixed
// point.
func refinePartition[L comparable](raw *RawDfa[L], block []int) ([]int, int) {
	n := len(raw.States)
	type keyed struct {
		state int
		sig   string
	}
	buckets := map[uint64][]keyed{}
	for i := 0; i < n; i++ {
		sig := stateSignature(raw, block, i)
		h := xxhash.Sum64String(sig)
		buckets[h] = append(buckets[h], keyed{state: i, sig: sig})
	}

	hashes := make([]uint64, 0, len(buckets))
	for h := range buckets {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })

	newBlock := make([]int, n)
	next := 0
	for _, h := range hashes {
		entries := buckets[h]
		sort.Slice(entries, func(i, j int) bool { return entries[i].state < entries[j].state })
		sigID := map[string]int{}
		for _, e := range entries {
			id, ok := sigID[e.sig]
			if !ok {
				id = next
				next++
				sigID[e.sig] = id
			}
			newBlock[e.state] = id
		}
	}
	return newBlock, next
}

func stateSignature[L comparable](raw *RawDfa[L], block []int, i int) string {
	edges := append([]dfaRangeEdge(nil), raw.States[i].ranges...)
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].Range.First != edges[b].Range.First {
			return edges[a].Range.First < edges[b].Range.First
		}
		return edges[a].Range.Last < edges[b].Range.Last
	})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d|", block[i])
	// Abutting edges into the same block are written as one range, so two
	// states that split a range differently but behave alike still get
	// equal signatures.
	for j := 0; j < len(edges); {
		first, last, to := edges[j].Range.First, edges[j].Range.Last, block[edges[j].To]
		j++
		for j < len(edges) && block[edges[j].To] == to && int32(edges[j].Range.First) == int32(last)+1 {
			last = edges[j].Range.Last
			j++
		}
		fmt.Fprintf(&buf, "%d-%d:%d,", first, last, to)
	}
	return buf.String()
}

// reconstruct builds the minimized DFA: one state per block reachable
// from a start state, using an arbitrary member of each block as the
// template for its outgoing edges (any member works, since refinement
// guarantees all members of a block agree on retargeted transitions).
func reconstruct[L comparable](raw *RawDfa[L], block []int) *MinimizedDfa[L] {
	numBlocks := 0
	for _, b := range block {
		if b+1 > numBlocks {
			numBlocks = b + 1
		}
	}

	rep := make([]int, numBlocks)
	seen := make([]bool, numBlocks)
	for i, b := range block {
		if !seen[b] {
			seen[b] = true
			rep[b] = i
		}
	}

	reachable := make([]bool, numBlocks)
	var queue []int
	for _, s := range raw.StartStates {
		b := block[s]
		if !reachable[b] {
			reachable[b] = true
			queue = append(queue, b)
		}
	}
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		for _, e := range raw.States[rep[b]].ranges {
			tb := block[e.To]
			if !reachable[tb] {
				reachable[tb] = true
				queue = append(queue, tb)
			}
		}
	}

	newID := make(map[int]int, numBlocks)
	var ordered []int
	for b := 0; b < numBlocks; b++ {
		if reachable[b] {
			newID[b] = len(ordered)
			ordered = append(ordered, b)
		}
	}

	states := make([]dfaStateData[L], len(ordered))
	for i, b := range ordered {
		old := raw.States[rep[b]]
		ns := dfaStateData[L]{accept: old.accept, hasAccept: old.hasAccept}
		for _, e := range old.ranges {
			ns.ranges = append(ns.ranges, dfaRangeEdge{Range: e.Range, To: newID[block[e.To]]})
		}
		states[i] = ns
	}

	startStates := make([]int, len(raw.StartStates))
	for i, s := range raw.StartStates {
		startStates[i] = newID[block[s]]
	}

	return &MinimizedDfa[L]{states: states, startStates: startStates}
}
