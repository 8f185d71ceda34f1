package dfalex

import (
	"bytes"
	"crypto/sha1"
	"encoding"
	"encoding/base32"
	"fmt"
)

const (
	dfaTypeMatcher       = 0
	dfaTypeReverseFinder = 1
)

var cacheKeyEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// fingerprintable is the optional interface an AmbiguityResolver's
// concrete type can implement to contribute its own bytes to a cache
// key, for callers who want cache hits to distinguish between different
// resolver behaviors. Ordinary function values have no accessible
// identity to fingerprint, so without this a resolver's presence or
// absence is all that is recorded.
type fingerprintable interface {
	Fingerprint() []byte
}

// accumulatorCacheKey mirrors the original's _getCacheKey byte layout
// exactly: dfa type, number of languages, then for every label with at
// least one pattern that appears in some language: pattern count,
// (if more than one language) a run of 32-bit big-endian words
// bit-packing which languages include the label, each pattern's own
// fingerprint, and the label's own marshaled bytes; a zero-length sentinel
// word closes the label list, and (matcher DFAs only) the resolver's
// fingerprint bytes follow.
func accumulatorCacheKey[L comparable](dfaType int, order []L, patterns map[L][]Pattern, languages [][]L, resolver AmbiguityResolver[L]) (string, error) {
	var buf bytes.Buffer
	writeUint32(&buf, uint32(dfaType))
	numLangs := len(languages)
	writeUint32(&buf, uint32(numLangs))

	for _, label := range order {
		patList := patterns[label]
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

		writeUint32(&buf, uint32(len(patList)))
		if numLangs > 1 {
			bits := uint32(0)
			for i, language := range languages {
				if i > 0 && i%32 == 0 {
					writeUint32(&buf, bits)
					bits = 0
				}
				if containsLabel(language, label) {
					bits |= 1 << uint(i%32)
				}
			}
			writeUint32(&buf, bits)
		}

		for _, pat := range patList {
			writeBytesFramed(&buf, pat.Fingerprint())
		}
		labelBytes, err := marshalLabel(label)
		if err != nil {
			return "", err
		}
		writeBytesFramed(&buf, labelBytes)
	}
	writeUint32(&buf, 0)

	if dfaType == dfaTypeMatcher {
		writeBytesFramed(&buf, resolverFingerprint(resolver))
	}

	return digestKey(buf.Bytes()), nil
}

func digestKey(data []byte) string {
	sum := sha1.Sum(data)
	return cacheKeyEncoding.EncodeToString(sum[:])
}

// nfaCacheKey computes the independent cache key BuildFromNfaCached uses,
// covering the NFA graph itself plus the requested start states and
// resolver. This is distinct from accumulatorCacheKey: the original
// exposes two separate key derivations, one for the pattern accumulator
// and one for a caller-assembled Nfa passed straight to buildFromNfa,
// and this mirrors the latter.
func nfaCacheKey[L comparable](nfa *Nfa, starts []int, resolver AmbiguityResolver[L]) (string, error) {
	var buf bytes.Buffer
	writeUint32(&buf, uint32(len(starts)))
	for _, s := range starts {
		writeUint32(&buf, uint32(s))
	}
	writeUint32(&buf, uint32(len(nfa.states)))
	for _, st := range nfa.states {
		if st.accept != nil {
			buf.WriteByte(1)
			labelBytes, err := marshalLabel(st.accept.(L))
			if err != nil {
				return "", err
			}
			writeBytesFramed(&buf, labelBytes)
		} else {
			buf.WriteByte(0)
		}
		writeUint32(&buf, uint32(len(st.ranges)))
		for _, e := range st.ranges {
			writeUint16(&buf, e.Range.First)
			writeUint16(&buf, e.Range.Last)
			writeUint32(&buf, uint32(e.To))
		}
		writeUint32(&buf, uint32(len(st.epsilon)))
		for _, e := range st.epsilon {
			writeUint32(&buf, uint32(e))
		}
	}
	writeBytesFramed(&buf, resolverFingerprint(resolver))
	return digestKey(buf.Bytes()), nil
}

func resolverFingerprint[L comparable](resolver AmbiguityResolver[L]) []byte {
	if resolver == nil {
		return []byte{0}
	}
	if fp, ok := any(resolver).(fingerprintable); ok {
		return append([]byte{1}, fp.Fingerprint()...)
	}
	return []byte{2}
}

func marshalLabel[L comparable](label L) ([]byte, error) {
	m, ok := any(label).(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("dfalex: label type %T does not implement encoding.BinaryMarshaler; cannot compute a cache key for it", label)
	}
	return m.MarshalBinary()
}

func unmarshalLabel[L comparable](dst *L, data []byte) error {
	u, ok := any(dst).(encoding.BinaryUnmarshaler)
	if !ok {
		return fmt.Errorf("dfalex: label type %T does not implement encoding.BinaryUnmarshaler; cannot decode a cached DFA for it", *dst)
	}
	return u.UnmarshalBinary(data)
}
