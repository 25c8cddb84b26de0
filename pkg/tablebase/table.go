package tablebase

import (
	"encoding/binary"
	"fmt"

	"github.com/herohde/tbprobe/pkg/board"
)

// syzygyMagic is the 4-byte little-endian magic every WDL table file begins with.
const syzygyMagic uint32 = 0x5D23E871

// matchPieces assigns each storage-order slot in want a distinct square from have, matching by
// (side after colour-flip, piece type). Each have entry is consumed at most once; duplicate
// piece types (e.g. two rooks) are matched in have's order, which the caller arranges to be
// square-ascending so the result is deterministic.
func matchPieces(have []placedPiece, want []coloredEntry, colorFlip bool) ([]board.Square, error) {
	used := make([]bool, len(have))
	squares := make([]board.Square, len(want))

	for i, w := range want {
		side := w.side
		if colorFlip {
			side = 1 - side
		}
		found := false
		for j, h := range have {
			if used[j] || h.color != side || board.Piece(h.piece) != w.piece {
				continue
			}
			squares[i] = board.Square(h.square)
			used[j] = true
			found = true
			break
		}
		if !found {
			return nil, fmt.Errorf("tablebase: piece placement does not match table's material key")
		}
	}
	return squares, nil
}

// wdlTable is the parsed, read-only view of one material key's table file: either a pawnless or
// a pawnful variant, dispatched on the material's pawn count.
type wdlTable struct {
	pawnless *pawnlessTable
	pawnful  *pawnfulTable
}

// loadTable parses buf (a whole table file's bytes) for the given material key.
func loadTable(buf []byte, material Material) (*wdlTable, error) {
	if len(buf) < 4 {
		return nil, ErrNotSyzygy
	}
	if binary.LittleEndian.Uint32(buf[:4]) != syzygyMagic {
		return nil, ErrNotSyzygy
	}

	s := newByteStream(buf[4:])
	if material.Pawns() == 0 {
		t, err := parsePawnless(s, buf, material)
		if err != nil {
			return nil, err
		}
		return &wdlTable{pawnless: t}, nil
	}

	t, err := parsePawnful(s, buf, material)
	if err != nil {
		return nil, err
	}
	return &wdlTable{pawnful: t}, nil
}

// read returns the WDL value stored for the given piece placement (already canonicalised by the
// Tablebase), under the given colour-flip and side-to-move.
func (t *wdlTable) read(squares []placedPiece, colorFlip bool, blackToMove bool) (WDL, error) {
	if t.pawnless != nil {
		return t.pawnless.read(squares, colorFlip, blackToMove)
	}
	return t.pawnful.read(squares, colorFlip, blackToMove)
}

// placedPiece is a square together with the coloured piece occupying it, already expressed from
// the canonicalised (possibly colour-flipped) perspective.
type placedPiece struct {
	square int // 0..63, A1=0 convention.
	color  int // 0 = the table-relative "white" (first side in the material key), 1 = other.
	piece  int // board.Piece value.
}

// subfactor computes n(n-1)...(n-k+1) / k!, the number of ways to place k indistinguishable items
// among n ordered slots, used to size each successive piece-group's contribution to the index.
func subfactor(k, n int) uint64 {
	if k == 0 {
		return 1
	}
	var f, l uint64 = 1, 1
	for i := 0; i < k; i++ {
		f *= uint64(n - i)
		l *= uint64(i + 1)
	}
	return f / l
}

// decodeMenNibbles decodes wn+bn worth of nibble-packed coloured-piece codes out of men, one
// byte per index i = 0..max(wn,bn)-1: the low nibble is white's i-th piece (kings included, as
// piece index 0), the high nibble is black's.
func decodeMenNibbles(men []byte, wn, bn int) (wPieces, bPieces []int, err error) {
	n := wn
	if bn > n {
		n = bn
	}
	if len(men) < n {
		return nil, nil, fmt.Errorf("%w: short men bytes", ErrTruncated)
	}

	wPieces = make([]int, 0, wn)
	bPieces = make([]int, 0, bn)
	for i := 0; i < n; i++ {
		b := men[i]
		if i < wn {
			_, piece, derr := DecodeColoredPiece(b & 0xF)
			if derr != nil {
				return nil, nil, fmt.Errorf("tablebase: %v", derr)
			}
			wPieces = append(wPieces, int(piece))
		}
		if i < bn {
			_, piece, derr := DecodeColoredPiece(b >> 4)
			if derr != nil {
				return nil, nil, fmt.Errorf("tablebase: %v", derr)
			}
			bPieces = append(bPieces, int(piece))
		}
	}
	return wPieces, bPieces, nil
}
