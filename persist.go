package dfalex

import (
	"bytes"

	"github.com/bikallem/dfalex/serialize"
)

// encodeCachedDfa serializes dfa into the format a BuilderCache stores:
// a vector dump of states (transition-range table plus accept-label, one
// entry per state) wrapped by serialize.Pack's versioned, zstd-compressed
// framing (spec.md §10.4).
func encodeCachedDfa[L comparable](dfa *MinimizedDfa[L]) ([]byte, error) {
	var buf bytes.Buffer
	writeUint32(&buf, uint32(len(dfa.states)))
	writeUint32(&buf, uint32(len(dfa.startStates)))
	for _, s := range dfa.startStates {
		writeUint32(&buf, uint32(s))
	}
	for _, st := range dfa.states {
		if st.hasAccept {
			buf.WriteByte(1)
			labelBytes, err := marshalLabel(st.accept)
			if err != nil {
				return nil, err
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
	}
	return serialize.Pack(buf.Bytes())
}

func decodeCachedDfa[L comparable](blob []byte) (*MinimizedDfa[L], error) {
	payload, err := serialize.Unpack(blob)
	if err != nil {
		return nil, err
	}
	r := &byteReader{data: payload}

	numStates, err := r.uint32()
	if err != nil {
		return nil, err
	}
	numStarts, err := r.uint32()
	if err != nil {
		return nil, err
	}
	startStates := make([]int, numStarts)
	for i := range startStates {
		v, err := r.uint32()
		if err != nil {
			return nil, err
		}
		startStates[i] = int(v)
	}

	states := make([]dfaStateData[L], numStates)
	for i := range states {
		flag, err := r.readByte()
		if err != nil {
			return nil, err
		}
		if flag == 1 {
			labelBytes, err := r.bytesFramed()
			if err != nil {
				return nil, err
			}
			var label L
			if err := unmarshalLabel(&label, labelBytes); err != nil {
				return nil, err
			}
			states[i].accept = label
			states[i].hasAccept = true
		}
		numRanges, err := r.uint32()
		if err != nil {
			return nil, err
		}
		states[i].ranges = make([]dfaRangeEdge, numRanges)
		for j := range states[i].ranges {
			first, err := r.uint16()
			if err != nil {
				return nil, err
			}
			last, err := r.uint16()
			if err != nil {
				return nil, err
			}
			to, err := r.uint32()
			if err != nil {
				return nil, err
			}
			states[i].ranges[j] = dfaRangeEdge{Range: CharRange{First: first, Last: last}, To: int(to)}
		}
	}

	return &MinimizedDfa[L]{states: states, startStates: startStates}, nil
}
