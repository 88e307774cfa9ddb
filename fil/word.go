// Package fil implements the low-level framing and record-decoding layer
// for an Abaqus-style .fil results stream: it turns a raw byte stream into
// an ordered sequence of 8-byte words (Reader), then groups those words
// into typed records with zero-copy bodies (Decoder).
package fil

import (
	"strings"

	"github.com/opencae/fil2ensight/endian"
)

// WordSize is the width, in bytes, of one word in the .fil wire format.
const WordSize = 8

var le = endian.GetLittleEndianEngine()

// Word is one 8-byte unit of the logical word stream. It is reinterpretable
// as a signed 64-bit integer, an IEEE-754 double, eight ASCII characters, or
// (lower half only) a signed 32-bit flag — all little-endian (spec §3, §6.1).
type Word [WordSize]byte

// AsInt64 reinterprets the word as a signed 64-bit little-endian integer.
func (w Word) AsInt64() int64 {
	return int64(le.Uint64(w[:]))
}

// AsF64 reinterprets the word as an IEEE-754 double, little-endian.
func (w Word) AsF64() float64 {
	return bitsToFloat64(le.Uint64(w[:]))
}

// AsA8 reinterprets the word as 8 ASCII characters with trailing spaces
// trimmed.
func (w Word) AsA8() string {
	return strings.TrimRight(string(w[:]), " ")
}

// AsFlag reinterprets the low 32 bits of the word as a signed 32-bit
// little-endian integer.
func (w Word) AsFlag() int32 {
	return int32(le.Uint32(w[:4])) //nolint: gosec
}

// reshapeWords splits a raw byte slice, already stripped of block padding and
// sized to a multiple of WordSize, into a slice of Word values. Each Word
// copies its own 8 bytes: the source buffer is reused across batches by the
// frame reader, so the words it produces must not alias it.
func reshapeWords(raw []byte) []Word {
	n := len(raw) / WordSize
	words := make([]Word, n)
	for i := range words {
		copy(words[i][:], raw[i*WordSize:(i+1)*WordSize])
	}
	return words
}
