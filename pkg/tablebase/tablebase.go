package tablebase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/herohde/tbprobe/pkg/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Position is the read-only view of a chess position a probe needs: piece placement, side to
// move, castling rights and en passant target, plus a pseudo-legal move generator. board.Position
// satisfies this directly; it is expressed as an interface here so callers can supply any board
// representation, matching the "external collaborator" treatment of chess rules (see spec's
// out-of-scope list: this package never generates moves itself beyond the capture search it
// performs against whatever generator the caller's Position provides).
type Position interface {
	SideToMove() board.Color
	Castling() board.Castling
	Pieces(c board.Color, piece board.Piece) board.Bitboard
	GenerateMoves() []board.Move
	GenerateCaptures() []board.Move
	Play(m board.Move) *board.Position
}

// Tablebase is an immutable-after-load, read-only, reentrant collection of WDL tables keyed by
// material. Probing is safe for concurrent use; Load is not and must be serialised externally or
// completed before probing begins (§5).
type Tablebase struct {
	tables    map[string]*wdlTable
	maxPieces int
}

// NewTablebase returns an empty Tablebase.
func NewTablebase() *Tablebase {
	return &Tablebase{tables: make(map[string]*wdlTable)}
}

// MaxPieces returns the largest total piece count (including kings) across all loaded tables.
func (tb *Tablebase) MaxPieces() int {
	return tb.maxPieces
}

// LoadFile loads a single WDL table file from path. The material key is derived from the
// filename stem (e.g. "KQvKR.rtbw" -> "KQvKR"). Loading a key already present is a no-op.
func (tb *Tablebase) LoadFile(ctx context.Context, path string) error {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	material, err := ParseMaterial(stem)
	if err != nil {
		return err
	}
	if _, ok := tb.tables[material.String()]; ok {
		return nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tablebase: reading %v: %w", path, err)
	}
	return tb.LoadBytes(ctx, material, buf)
}

// LoadBytes loads a WDL table already resident in memory (e.g. memory-mapped or embedded),
// associating it with the given material key explicitly rather than deriving one from a path.
func (tb *Tablebase) LoadBytes(ctx context.Context, material Material, buf []byte) error {
	if _, ok := tb.tables[material.String()]; ok {
		return nil
	}

	t, err := loadTable(buf, material)
	if err != nil {
		return fmt.Errorf("tablebase: loading %v: %w", material, err)
	}

	tb.tables[material.String()] = t
	if n := material.Total() + 2; n > tb.maxPieces {
		tb.maxPieces = n
	}

	logw.Infof(ctx, "tablebase: loaded %v (%d bytes)", material, len(buf))
	return nil
}

// ProbeWDL returns the WDL value from the side-to-move's perspective, plus whether the best move
// is a capture (or en passant capture), or false if no table covers this position.
func (tb *Tablebase) ProbeWDL(ctx context.Context, p Position) (WDL, bool, bool) {
	v, ok := tb.readWDL(p)
	if !ok {
		return 0, false, false
	}

	captures := p.GenerateCaptures()
	epCount := 0
	for _, m := range captures {
		if m.EnPassant {
			epCount++
		}
	}

	// "moves without en-passant" = every pseudo-legal move (quiet or capturing) except en
	// passant captures. If that count is zero but en-passant captures exist, the only legal
	// move is an en-passant capture the table doesn't know about: its Draw verdict is spurious.
	movesWithoutEP := len(nonEPMoves(p))
	falseStalemate := epCount > 0 && movesWithoutEP == 0

	alpha := Draw.Min(v)
	if falseStalemate {
		alpha = Loss
	}

	bestIsCapture := false
	bestIsEP := false

	for _, m := range captures {
		next := p.Play(m)
		score, ok := tb.probeAlphaBeta(ctx, next, Loss, alpha.Negate())
		if !ok {
			return 0, false, false
		}
		score = score.Negate()

		if score > alpha {
			alpha = score
			bestIsCapture = score > Draw
			bestIsEP = m.EnPassant
		}
		if v == Win {
			return Win, true, true
		}
	}

	if !falseStalemate && v > alpha {
		return v, false, true
	}
	return alpha, bestIsCapture || bestIsEP || falseStalemate, true
}

// probeAlphaBeta is a fail-soft alpha-beta search restricted to captures, used to recover the
// true WDL value (and thus the "is best move a capture" flag) from the coarser value a direct
// table lookup returns. Captures strictly reduce material, so termination is guaranteed without
// a depth limit; ctx is still checked at each level so a caller's deadline can cut a pathological
// capture chain short.
func (tb *Tablebase) probeAlphaBeta(ctx context.Context, p Position, alpha, beta WDL) (WDL, bool) {
	if contextx.IsCancelled(ctx) {
		return 0, false
	}

	v, ok := tb.readWDL(p)
	if !ok {
		return 0, false
	}

	if v > alpha {
		if v >= beta {
			return v, true
		}
		alpha = v
	}

	for _, m := range p.GenerateCaptures() {
		if m.EnPassant {
			continue // any capture clears the en passant square; recursion never sees one.
		}
		next := p.Play(m)
		score, ok := tb.probeAlphaBeta(ctx, next, beta.Negate(), alpha.Negate())
		if !ok {
			return 0, false
		}
		score = score.Negate()
		if score > alpha {
			if score >= beta {
				return score, true
			}
			alpha = score
		}
	}

	return alpha, true
}

// readWDL returns the raw table value for p, without the capture-search refinement.
func (tb *Tablebase) readWDL(p Position) (WDL, bool) {
	if !p.Castling().IsEmpty() {
		return 0, false
	}

	material, placements := materialOf(p)
	if material.Total() == 0 {
		return Draw, true
	}

	colorFlip := !material.IsCanonical() || (material.IsSymmetric() && p.SideToMove() == board.Black)
	lookup := material
	if colorFlip {
		lookup = material.Flip()
	}

	t, ok := tb.tables[lookup.String()]
	if !ok {
		return 0, false
	}

	v, err := t.read(placements, colorFlip, p.SideToMove() == board.Black)
	if err != nil {
		return 0, false
	}
	return v, true
}

// materialOf extracts the non-king material and full piece placement (kings included) of p,
// expressed with side 0 = White, side 1 = Black (the table's read method applies colorFlip).
func materialOf(p Position) (Material, []placedPiece) {
	var counts [board.NumColors][5]uint8
	var placements []placedPiece

	for c := board.ZeroColor; c < board.NumColors; c++ {
		for piece := board.Pawn; piece < board.NumPieces; piece++ {
			bb := p.Pieces(c, piece)
			for _, sq := range bb.Squares() {
				placements = append(placements, placedPiece{square: int(sq), color: int(c), piece: int(piece)})
			}
			if idx, ok := pieceOrderIndex(piece); ok {
				counts[c][idx] = uint8(bb.PopCount())
			}
		}
	}

	return Material{counts: counts}, placements
}

// nonEPMoves returns every pseudo-legal move (quiet or capturing) except en passant captures,
// used only to detect the "only legal move is en passant" false-stalemate case.
func nonEPMoves(p Position) []board.Move {
	var ret []board.Move
	for _, m := range p.GenerateMoves() {
		if !m.EnPassant {
			ret = append(ret, m)
		}
	}
	return ret
}
