package board_test

import (
	"testing"

	"github.com/herohde/tbprobe/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardPlacements() []board.Placement {
	back := []board.Piece{board.Rook, board.Knight, board.Bishop, board.Queen, board.King, board.Bishop, board.Knight, board.Rook}

	var ret []board.Placement
	for f := board.ZeroFile; f < board.NumFiles; f++ {
		ret = append(ret,
			board.Placement{Square: board.NewSquare(f, board.Rank1), Color: board.White, Piece: back[f]},
			board.Placement{Square: board.NewSquare(f, board.Rank2), Color: board.White, Piece: board.Pawn},
			board.Placement{Square: board.NewSquare(f, board.Rank7), Color: board.Black, Piece: board.Pawn},
			board.Placement{Square: board.NewSquare(f, board.Rank8), Color: board.Black, Piece: back[f]},
		)
	}
	return ret
}

func TestNewPositionRejectsBadKingCounts(t *testing.T) {
	placements := []board.Placement{
		{Square: board.A1, Color: board.White, Piece: board.King},
	}
	_, err := board.NewPosition(placements, board.White, 0, 0, false)
	assert.Error(t, err, "missing black king")

	placements = append(placements, board.Placement{Square: board.H8, Color: board.Black, Piece: board.King})
	placements = append(placements, board.Placement{Square: board.A8, Color: board.Black, Piece: board.King})
	_, err = board.NewPosition(placements, board.White, 0, 0, false)
	assert.Error(t, err, "two black kings")
}

func TestNewPositionRejectsAdjacentKings(t *testing.T) {
	placements := []board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E2, Color: board.Black, Piece: board.King},
	}
	_, err := board.NewPosition(placements, board.White, 0, 0, false)
	assert.Error(t, err)
}

func TestNewPositionRejectsDuplicatePlacement(t *testing.T) {
	placements := []board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E1, Color: board.Black, Piece: board.Queen},
		{Square: board.E8, Color: board.Black, Piece: board.King},
	}
	_, err := board.NewPosition(placements, board.White, 0, 0, false)
	assert.Error(t, err)
}

func TestGenerateMovesStandardStartHasTwentyMoves(t *testing.T) {
	p, err := board.NewPosition(standardPlacements(), board.White, 0, 0, false)
	require.NoError(t, err)

	moves := p.GenerateMoves()
	assert.Len(t, moves, 20)
}

func TestPlayClearsEnPassantAndSetsItOnDoublePush(t *testing.T) {
	placements := []board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E8, Color: board.Black, Piece: board.King},
		{Square: board.E2, Color: board.White, Piece: board.Pawn},
	}
	p, err := board.NewPosition(placements, board.White, 0, 0, false)
	require.NoError(t, err)

	next := p.Play(board.Move{From: board.E2, To: board.E4, Piece: board.Pawn})

	ep, ok := next.EnPassant()
	require.True(t, ok)
	assert.Equal(t, board.E3, ep)
	assert.Equal(t, board.Black, next.SideToMove())
}

func TestPlayEnPassantCaptureRemovesCapturedPawn(t *testing.T) {
	placements := []board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E8, Color: board.Black, Piece: board.King},
		{Square: board.D5, Color: board.White, Piece: board.Pawn},
		{Square: board.E5, Color: board.Black, Piece: board.Pawn},
	}
	p, err := board.NewPosition(placements, board.White, 0, board.E6, true)
	require.NoError(t, err)

	next := p.Play(board.Move{From: board.D5, To: board.E6, Piece: board.Pawn, Capture: board.Pawn, EnPassant: true})

	_, _, ok := next.Square(board.E5)
	assert.False(t, ok, "captured pawn should be removed")
	_, piece, ok := next.Square(board.E6)
	require.True(t, ok)
	assert.Equal(t, board.Pawn, piece)
}
