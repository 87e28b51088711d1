// Package memory implements the Sigma16 flat 64Ki-word memory: words are
// held in host order, converted from the big-endian disk image when it is
// loaded.
package memory

import "encoding/binary"

// WordCount is the number of addressable words in Sigma16 memory.
const WordCount = 1 << 16

// MaxImageBytes is the largest binary image LoadImage will accept: one byte
// pair per word of memory.
const MaxImageBytes = WordCount * 2

// Memory is a flat, word-addressed store. The zero value is a ready-to-use,
// all-zero 64Ki-word memory. Memory is owned exclusively by one VM instance;
// it is not safe for concurrent use.
type Memory struct {
	words [WordCount]uint16
}

// ReadWord returns the host-endian value at word address a. Addresses wrap
// modulo WordCount.
func (m *Memory) ReadWord(a uint16) uint16 {
	return m.words[a]
}

// WriteWord unconditionally stores v at word address a.
func (m *Memory) WriteWord(a uint16, v uint16) {
	m.words[a] = v
}

// RawSlice returns a copy of memory as a big-endian byte image. Writes to
// the returned slice do not change memory; filling memory from a byte
// image goes through LoadBytes.
func (m *Memory) RawSlice() []byte {
	buf := make([]byte, MaxImageBytes)
	for i := 0; i < WordCount; i++ {
		binary.BigEndian.PutUint16(buf[2*i:], m.words[i])
	}
	return buf
}

// LoadBytes interprets b as a contiguous big-endian stream of 16-bit words
// and stores them starting at word address 0. It is the loader's entry
// point into memory and performs the only direct (non ReadWord/WriteWord)
// access to the backing array besides RawSlice.
func (m *Memory) LoadBytes(b []byte) {
	n := len(b) / 2
	for i := 0; i < n; i++ {
		m.words[i] = binary.BigEndian.Uint16(b[2*i:])
	}
	if len(b)%2 == 1 {
		// Odd trailing byte: treat as the high byte of one more word.
		m.words[n] = uint16(b[len(b)-1]) << 8
	}
}
