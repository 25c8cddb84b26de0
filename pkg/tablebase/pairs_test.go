package tablebase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This file tests internals the package does not export (byteStream, pairsData, the symbol-length
// memoisation), so it stays in package tablebase rather than tablebase_test.

func TestCreatePairsConstantStream(t *testing.T) {
	buf := []byte{0x80, 0x02} // flags with bit 7 set (constant), constant value 2 (Draw).
	s := newByteStream(buf)

	pd, err := createPairs(s, 1000, buf)
	require.NoError(t, err)

	indexLen, sizeLen, dataLen := pd.sizes()
	assert.Zero(t, indexLen)
	assert.Zero(t, sizeLen)
	assert.Zero(t, dataLen)

	for _, idx := range []uint64{0, 1, 999} {
		b, err := pd.lookup(idx)
		require.NoError(t, err)
		assert.Equal(t, byte(2), b)
	}
}

func TestComputeSymLensLiteralsAndPairs(t *testing.T) {
	// Symbol 0 and 1 are literals (top 12 bits == 0xFFF); symbol 2 combines them.
	lit := func(b byte) [3]byte {
		// w = b | (0xFFF << 12); low byte = b, next byte = 0xF0 | (b>>8 irrelevant), top byte = 0xFF.
		w := uint32(0xFFF)<<12 | uint32(b)
		return [3]byte{byte(w), byte(w >> 8), byte(w >> 16)}
	}
	pair := func(s1, s2 int) [3]byte {
		w := uint32(s2)<<12 | uint32(s1)
		return [3]byte{byte(w), byte(w >> 8), byte(w >> 16)}
	}

	var pat []byte
	l0 := lit(0xAA)
	l1 := lit(0xBB)
	p2 := pair(0, 1)
	pat = append(pat, l0[:]...)
	pat = append(pat, l1[:]...)
	pat = append(pat, p2[:]...)

	symlen := computeSymLens(pat, 3)
	assert.Equal(t, uint16(0), symlen[0])
	assert.Equal(t, uint16(0), symlen[1])
	assert.Equal(t, uint16(1), symlen[2]) // two literals, minus one.
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, uint64(1), ceilDiv(1, 8))
	assert.Equal(t, uint64(1), ceilDiv(8, 8))
	assert.Equal(t, uint64(2), ceilDiv(9, 8))
}

func TestByteStreamAlignAndReads(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	s := newByteStream(buf)

	v, err := s.readU8()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), v)

	u16, err := s.readU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0302), u16)

	require.NoError(t, s.alignTo(4))
	assert.Equal(t, 4, s.consumed)

	u32, err := s.readU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x08070605), u32)
}
