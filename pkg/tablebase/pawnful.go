package tablebase

import "github.com/herohde/tbprobe/pkg/board"

// pawnfulFileTable is one of up to four file subtables (file 0..3, after folding by
// FileToFile) a pawnful material key's table is split into.
type pawnfulFileTable struct {
	wtmPair *pairsData
	btmPair *pairsData // nil unless split.

	norm    [6]uint8
	factors [6]uint64
	pieces  []coloredEntry

	wp, bp int // white/black pawn counts, post pawn-count-convention swap.

	tbSize uint64
}

// pawnfulTable is a parsed table file for a material key with at least one pawn.
type pawnfulTable struct {
	split     bool
	fourFiles bool
	swapped   bool // true iff the white/black roles were swapped to satisfy the pawn-count convention.

	files [4]*pawnfulFileTable // only files[0] valid unless fourFiles.
}

func parsePawnful(s *byteStream, buf []byte, material Material) (*pawnfulTable, error) {
	flags, err := s.readU8()
	if err != nil {
		return nil, err
	}
	split := flags&1 != 0
	fourFiles := flags&2 != 0

	numFiles := 1
	if fourFiles {
		numFiles = 4
	}

	wp := material.Count(White, board.Pawn)
	bp := material.Count(Black, board.Pawn)
	swapped := wp == 0 || (bp != 0 && bp < wp)

	t := &pawnfulTable{split: split, fourFiles: fourFiles, swapped: swapped}
	if swapped {
		wp, bp = bp, wp
	}

	wNonPawn := material.Count(White, board.Queen) + material.Count(White, board.Rook) + material.Count(White, board.Bishop) + material.Count(White, board.Knight)
	bNonPawn := material.Count(Black, board.Queen) + material.Count(Black, board.Rook) + material.Count(Black, board.Bishop) + material.Count(Black, board.Knight)
	if swapped {
		wNonPawn, bNonPawn = bNonPawn, wNonPawn
	}
	wn := 1 + wp + wNonPawn // +1 king.
	bn := 1 + bp + bNonPawn

	var headers [4]struct {
		order, order2 int
		men           []byte
	}
	n := wn
	if bn > n {
		n = bn
	}

	for f := 0; f < numFiles; f++ {
		orderByte, err := s.readU8()
		if err != nil {
			return nil, err
		}
		headers[f].order = int(orderByte & 0xF)

		order2 := 0xF
		if bp > 0 {
			o2, err := s.readU8()
			if err != nil {
				return nil, err
			}
			order2 = int(o2) & 0xF
		}
		headers[f].order2 = order2

		men, err := s.take(n)
		if err != nil {
			return nil, err
		}
		headers[f].men = append([]byte(nil), men...)
	}

	if numFiles == 1 {
		// A single-file table's layout still reserves the header space three further file
		// subtables would have occupied.
		skip := 3 * (n + 1) // each subtable's order byte plus its men bytes.
		if bp > 0 {
			skip += 3 // the order2 byte each of those subtables would also have carried.
		}
		if _, err := s.take(skip); err != nil {
			return nil, err
		}
	}

	if err := s.alignTo(2); err != nil {
		return nil, err
	}

	for f := 0; f < numFiles; f++ {
		wPieces, bPieces, err := decodeMenNibbles(headers[f].men, wn, bn)
		if err != nil {
			return nil, err
		}

		ft := &pawnfulFileTable{wp: wp, bp: bp}
		ft.pieces = make([]coloredEntry, 0, wn+bn)
		for _, p := range wPieces {
			ft.pieces = append(ft.pieces, coloredEntry{side: 0, piece: board.Piece(p)})
		}
		for _, p := range bPieces {
			ft.pieces = append(ft.pieces, coloredEntry{side: 1, piece: board.Piece(p)})
		}

		ft.norm = calculatePawnNorm(wp, bp, ft.pieces)
		ft.factors, ft.tbSize = calculatePawnFactors(ft.norm, len(ft.pieces), headers[f].order, headers[f].order2, f)

		t.files[f] = ft
	}

	for f := 0; f < numFiles; f++ {
		ft := t.files[f]
		wtmPair, err := createPairs(s, ft.tbSize, buf)
		if err != nil {
			return nil, err
		}
		ft.wtmPair = wtmPair
		if split {
			btmPair, err := createPairs(s, ft.tbSize, buf)
			if err != nil {
				return nil, err
			}
			ft.btmPair = btmPair
		}
	}

	var streams []*pairsData
	for f := 0; f < numFiles; f++ {
		streams = append(streams, t.files[f].wtmPair)
		if split {
			streams = append(streams, t.files[f].btmPair)
		}
	}
	if err := layoutSections(s, 4, streams); err != nil {
		return nil, err
	}

	return t, nil
}

// calculatePawnNorm groups the pawnful piece list: norm[0] = wp (the white/lead pawns), norm[wp]
// = bp if any black pawns, then consecutive equal (side, piece) runs over the remaining pieces.
func calculatePawnNorm(wp, bp int, pieces []coloredEntry) [6]uint8 {
	var norm [6]uint8
	norm[0] = uint8(wp)
	start := wp
	if bp > 0 {
		norm[wp] = uint8(bp)
		start = wp + bp
	}

	for i := start; i < len(pieces); {
		j := i
		for j < len(pieces) && pieces[j] == pieces[i] {
			j++
		}
		norm[i] = uint8(j - i)
		i = j
	}
	return norm
}

// calculatePawnFactors assigns each group's multiplier, honoring order and order2 as the sequence
// positions at which the white- and black-pawn group factors are interleaved with the remaining
// piece groups, exactly as the table's header bytes direct: order2 == 0xF means there are no
// black pawns to place a pivot for.
func calculatePawnFactors(norm [6]uint8, numPieces, order, order2, file int) ([6]uint64, uint64) {
	var factors [6]uint64
	wp := int(norm[0])

	i := wp
	if order2 < 0xF {
		i += int(norm[i])
	}

	f := uint64(1)
	for k := 0; ; k++ {
		switch {
		case k == order:
			factors[0] = f
			f *= PawnFactor[wp-1][file]
		case k == order2:
			factors[wp] = f
			f *= subfactor(int(norm[wp]), 48-wp)
		case i < numPieces:
			factors[i] = f
			f *= subfactor(int(norm[i]), 64-i)
			i += int(norm[i])
		default:
			return factors, f
		}
	}
}

// index computes the canonical table index for a pawnful file subtable, given the piece
// placement already mirrored so the lead pawn's file is <= D (FileToFile has already selected
// this file subtable).
func (ft *pawnfulFileTable) index(squares []board.Square) uint64 {
	// Bubble-sort the white pawns by PawnTwist so the canonical lead pawn (picked by pawnFile,
	// before this call) sorts consistently against the rest. The reference's inner bound is the
	// black pawn count, not the white one -- reproduced verbatim even though it looks uneven.
	for i := 1; i < ft.wp; i++ {
		for j := i + 1; j < ft.bp; j++ {
			if PawnTwist[squares[i]] < PawnTwist[squares[j]] {
				squares[i], squares[j] = squares[j], squares[i]
			}
		}
	}

	t := ft.wp - 1
	idx := PawnIndex[t][Flap[squares[0]]]
	for i := t - 1; i >= 0; i-- {
		idx += Binomial[t-1][PawnTwist[squares[i]]]
	}
	idx *= ft.factors[0]

	if ft.bp > 0 {
		bStart := ft.wp
		group := append([]board.Square(nil), squares[bStart:bStart+ft.bp]...)
		sortSquares(group)

		var s uint64
		for k, sq := range group {
			less := 0
			for _, prior := range squares[:bStart] {
				if prior < sq {
					less++
				}
			}
			s += Binomial[k][int(sq)-less-8]
		}
		idx += s * ft.factors[ft.wp]
	}

	i := ft.wp
	if ft.bp > 0 {
		i += ft.bp
	}
	for i < len(squares) {
		group := append([]board.Square(nil), squares[i:i+int(ft.norm[i])]...)
		sortSquares(group)

		var s uint64
		for k, sq := range group {
			less := 0
			for _, prior := range squares[:i] {
				if prior < sq {
					less++
				}
			}
			s += Binomial[k][int(sq)-less]
		}
		idx += s * ft.factors[i]
		i += int(ft.norm[i])
	}

	return idx
}

// pawnFile selects, among the first wp entries of squares, the one with the minimum Flap value,
// swaps it to index 0, and returns the file subtable index (0..3) it determines. This follows
// the reference implementation's actual comparison (a running-minimum selection), which the
// English spec prose describes as picking the maximum; see DESIGN.md for the resolution.
func pawnFile(squares []board.Square, wp int) int {
	for i := 0; i < wp; i++ {
		if Flap[squares[0]] > Flap[squares[i]] {
			squares[0], squares[i] = squares[i], squares[0]
		}
	}
	return int(FileToFile[squares[0].File()])
}

func (t *pawnfulTable) read(pieces []placedPiece, colorFlip bool, blackToMove bool) (WDL, error) {
	// The file subtable depends on the lead pawn's square, which in turn depends on the pawn
	// placements only -- resolve it against file 0's piece list (pawn identity is the same
	// across every file subtable; only the index tables differ).
	flip := colorFlip != t.swapped

	probe := t.files[0]
	squares, err := matchPieces(pieces, probe.pieces, flip)
	if err != nil {
		return 0, err
	}
	if flip {
		for i := range squares {
			squares[i] = squares[i].FlipRank()
		}
	}

	if squares[0].File() > 3 {
		for i := range squares {
			squares[i] = squares[i].FlipFile()
		}
	}

	file := pawnFile(squares, probe.wp)
	ft := probe
	if t.fourFiles {
		ft = t.files[file]
		squares, err = matchPieces(pieces, ft.pieces, flip)
		if err != nil {
			return 0, err
		}
		if flip {
			for i := range squares {
				squares[i] = squares[i].FlipRank()
			}
		}
		if squares[0].File() > 3 {
			for i := range squares {
				squares[i] = squares[i].FlipFile()
			}
		}
		pawnFile(squares, ft.wp)
	}

	// pawnFile may have swapped a different pawn into index 0: mirror on the final lead pawn.
	if squares[0].File() > board.FileD {
		for i := range squares {
			squares[i] = squares[i].FlipFile()
		}
	}

	idx := ft.index(squares)

	useBtm := blackToMove != flip
	pd := ft.wtmPair
	if t.split && useBtm {
		pd = ft.btmPair
	}
	b, err := pd.lookup(idx)
	if err != nil {
		return 0, err
	}
	return wdlFromByte(b), nil
}
