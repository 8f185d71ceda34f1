// Package serialize wraps a caller-supplied payload in a small versioned
// header and compresses it with zstd, for persisting built DFAs across
// process restarts or cache backends. It knows nothing about DFAs; it
// operates purely on bytes, so the structural encoding lives with the
// types that know what the bytes mean.
package serialize

import (
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

const (
	magic         = uint32(0x44464158) // "DFAX"
	formatVersion = uint16(1)
	headerSize    = 4 + 2
)

// Pack compresses payload and prefixes it with a magic number and format
// version, so Unpack can reject data from an incompatible version
// instead of silently misreading it.
func Pack(payload []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("serialize: create zstd encoder: %w", err)
	}
	defer enc.Close()

	out := make([]byte, headerSize)
	binary.BigEndian.PutUint32(out[0:4], magic)
	binary.BigEndian.PutUint16(out[4:6], formatVersion)
	return enc.EncodeAll(payload, out), nil
}

// Unpack validates the header written by Pack and returns the
// decompressed payload.
func Unpack(blob []byte) ([]byte, error) {
	if len(blob) < headerSize {
		return nil, fmt.Errorf("serialize: blob too short to contain a header")
	}
	if got := binary.BigEndian.Uint32(blob[0:4]); got != magic {
		return nil, fmt.Errorf("serialize: bad magic header %#x", got)
	}
	if version := binary.BigEndian.Uint16(blob[4:6]); version != formatVersion {
		return nil, fmt.Errorf("serialize: unsupported format version %d", version)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("serialize: create zstd decoder: %w", err)
	}
	defer dec.Close()
	return dec.DecodeAll(blob[headerSize:], nil)
}
