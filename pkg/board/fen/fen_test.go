package fen_test

import (
	"testing"

	"github.com/herohde/tbprobe/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"8/8/8/8/4k3/8/4P3/4K3 w - - 0 1",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
	}

	for _, tt := range tests {
		p, np, fm, err := fen.Decode(tt)
		require.NoError(t, err)

		assert.Equal(t, tt, fen.Encode(p, np, fm))
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []string{
		"",
		"8/8/8/8/8/8/8/8 w - - 0 1",             // no kings
		"k7/8/8/8/8/8/8/K6k w - - 0 1",           // two black kings
		"kK6/8/8/8/8/8/8/8 w - - 0 1",            // adjacent kings
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1", // only seven ranks
	}

	for _, tt := range tests {
		_, _, _, err := fen.Decode(tt)
		assert.Error(t, err, tt)
	}
}
