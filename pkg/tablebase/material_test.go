package tablebase_test

import (
	"testing"

	"github.com/herohde/tbprobe/pkg/board"
	"github.com/herohde/tbprobe/pkg/tablebase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialParseFormatRoundTrip(t *testing.T) {
	tests := []string{
		"KQvKR",
		"KRRvKR",
		"KPvKP",
		"KQRBNPvK",
		"KvK",
	}
	for _, tt := range tests {
		m, err := tablebase.ParseMaterial(tt)
		require.NoError(t, err, tt)
		assert.Equal(t, tt, m.String())
	}
}

func TestMaterialParseRejectsUnknownLetters(t *testing.T) {
	_, err := tablebase.ParseMaterial("KXvK")
	assert.Error(t, err)

	_, err = tablebase.ParseMaterial("KQKR")
	assert.Error(t, err)
}

func TestMaterialFlipInvolution(t *testing.T) {
	m, err := tablebase.ParseMaterial("KQRvKNP")
	require.NoError(t, err)

	assert.Equal(t, m, m.Flip().Flip())
	assert.Equal(t, m.Total(), m.Flip().Total())
}

func TestMaterialEitherOrientationIsCanonical(t *testing.T) {
	tests := []string{"KQvKR", "KRvKQ", "KPvKP", "KQRvKN", "KvK"}
	for _, tt := range tests {
		m, err := tablebase.ParseMaterial(tt)
		require.NoError(t, err, tt)

		assert.True(t, m.IsCanonical() || m.Flip().IsCanonical(), tt)
	}
}

func TestMaterialIsSymmetricImpliesCanonical(t *testing.T) {
	m, err := tablebase.ParseMaterial("KPvKP")
	require.NoError(t, err)

	assert.True(t, m.IsSymmetric())
	assert.True(t, m.IsCanonical())
}

func TestMaterialCountsAndPawns(t *testing.T) {
	m, err := tablebase.ParseMaterial("KQPvKRP")
	require.NoError(t, err)

	assert.Equal(t, 1, m.Count(board.White, board.Queen))
	assert.Equal(t, 1, m.Count(board.Black, board.Rook))
	assert.Equal(t, 2, m.Pawns())
	assert.Equal(t, 4, m.Total())
}

func TestDecodeColoredPieceRejectsInvalidCodes(t *testing.T) {
	for _, code := range []uint8{0x0, 0x7, 0x8, 0xF} {
		_, _, err := tablebase.DecodeColoredPiece(code)
		assert.Error(t, err, code)
	}
}

func TestDecodeColoredPieceRoundTrip(t *testing.T) {
	c, p, err := tablebase.DecodeColoredPiece(0x5) // white queen
	require.NoError(t, err)
	assert.Equal(t, board.White, c)
	assert.Equal(t, board.Queen, p)

	c, p, err = tablebase.DecodeColoredPiece(0xE) // black king (0x8 | 0x6)
	require.NoError(t, err)
	assert.Equal(t, board.Black, c)
	assert.Equal(t, board.King, p)
}
