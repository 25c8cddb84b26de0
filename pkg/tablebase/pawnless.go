package tablebase

import "github.com/herohde/tbprobe/pkg/board"

// encodingType selects which canonical indexing scheme a pawnless table's leading pieces use.
type encodingType int

const (
	// encodingZero is used when some non-king piece type appears with multiplicity one: the
	// king pair plus that singleton piece are jointly indexed via the KKK+1 triangle scheme.
	encodingZero encodingType = iota
	// encodingTwo is used otherwise: only the two kings are jointly indexed, via KKIndex.
	encodingTwo
)

// coloredEntry is one piece slot in a table's storage order: a side (0 = the material key's
// first/white side, 1 = second/black) and a board.Piece type.
type coloredEntry struct {
	side  int
	piece board.Piece
}

// pawnlessTable is a parsed table file for a material key with no pawns.
type pawnlessTable struct {
	encType encodingType
	split   bool

	wtmPair *pairsData
	btmPair *pairsData // nil unless split.

	norm    [6]uint8
	factors [6]uint64
	pieces  []coloredEntry // storage order: side0's pieces (incl. king) then side1's.

	tbSize uint64
}

func parsePawnless(s *byteStream, buf []byte, material Material) (*pawnlessTable, error) {
	flags, err := s.readU8()
	if err != nil {
		return nil, err
	}
	split := flags&1 != 0

	orderByte, err := s.readU8()
	if err != nil {
		return nil, err
	}
	wtmOrder := int(orderByte & 0xF)

	wn := material.Count(White, board.Queen) + material.Count(White, board.Rook) + material.Count(White, board.Bishop) +
		material.Count(White, board.Knight) + material.Count(White, board.Pawn) + 1
	bn := material.Count(Black, board.Queen) + material.Count(Black, board.Rook) + material.Count(Black, board.Bishop) +
		material.Count(Black, board.Knight) + material.Count(Black, board.Pawn) + 1

	n := wn
	if bn > n {
		n = bn
	}
	men, err := s.take(n)
	if err != nil {
		return nil, err
	}
	wPieces, bPieces, err := decodeMenNibbles(men, wn, bn)
	if err != nil {
		return nil, err
	}

	if err := s.alignTo(2); err != nil {
		return nil, err
	}

	t := &pawnlessTable{split: split}
	t.pieces = make([]coloredEntry, 0, wn+bn)
	for _, p := range wPieces {
		t.pieces = append(t.pieces, coloredEntry{side: 0, piece: board.Piece(p)})
	}
	for _, p := range bPieces {
		t.pieces = append(t.pieces, coloredEntry{side: 1, piece: board.Piece(p)})
	}

	t.encType = encodingTwo
	for _, e := range t.pieces[1:] { // skip the leading king; the two kings count 2 together.
		if countOfType(t.pieces, e) == 1 {
			t.encType = encodingZero
			break
		}
	}

	t.norm = calculateNorm(t.pieces, t.encType)
	t.factors, t.tbSize = calculateFactors(t.norm, len(t.pieces), wtmOrder)

	wtmPair, err := createPairs(s, t.tbSize, buf)
	if err != nil {
		return nil, err
	}
	t.wtmPair = wtmPair

	streams := []*pairsData{wtmPair}
	if split {
		btmPair, err := createPairs(s, t.tbSize, buf)
		if err != nil {
			return nil, err
		}
		t.btmPair = btmPair
		streams = append(streams, btmPair)
	}

	if err := layoutSections(s, 4, streams); err != nil {
		return nil, err
	}

	return t, nil
}

func countOfType(pieces []coloredEntry, target coloredEntry) int {
	n := 0
	for _, e := range pieces {
		if e.piece == target.piece {
			n++
		}
	}
	return n
}

// calculateNorm groups pieces.pieces into runs of consecutive identical (side, piece) entries
// starting right after the leading group (size 2 for encodingTwo, 3 for encodingZero).
func calculateNorm(pieces []coloredEntry, enc encodingType) [6]uint8 {
	var norm [6]uint8
	pivot := 2
	if enc == encodingZero {
		pivot = 3
	}
	norm[0] = uint8(pivot)

	for i := pivot; i < len(pieces); {
		j := i
		for j < len(pieces) && pieces[j] == pieces[i] {
			j++
		}
		norm[i] = uint8(j - i)
		i = j
	}
	return norm
}

// calculateFactors assigns each group's multiplier: the pivot group gets the KK-pair count
// (31332 for encodingZero, 462 for encodingTwo), placed at index `order`; every other group
// gets subfactor(norm[i], 64-i), placed in storage order.
func calculateFactors(norm [6]uint8, numPieces int, order int) ([6]uint64, uint64) {
	var factors [6]uint64
	pivfac := uint64(462)
	if norm[0] == 3 {
		pivfac = 31332
	}

	numGroups := 1
	for p := int(norm[0]); p < numPieces; p += int(norm[p]) {
		numGroups++
	}

	f := uint64(1)
	i := int(norm[0])
	for k := 0; k < numGroups; k++ {
		if k == order {
			factors[0] = f
			f *= pivfac
			continue
		}
		factors[i] = f
		f *= subfactor(int(norm[i]), 64-i)
		i += int(norm[i])
	}
	return factors, f
}

// index computes the canonical table index for the given piece placement (already mirrored by
// the caller so that the leading king's file is <= D), using this table's encoding type.
func (t *pawnlessTable) index(squares []board.Square) uint64 {
	sq0, sq1 := squares[0], squares[1]

	if sq0.Rank() > board.Rank4 {
		sq0 = sq0.FlipRank()
		sq1 = sq1.FlipRank()
		for i := range squares {
			squares[i] = squares[i].FlipRank()
		}
	}

	toCheck := 2
	if t.encType == encodingZero {
		toCheck = 3
	}
	for i := 0; i < toCheck; i++ {
		if OffDiagonal[squares[i]] > 0 {
			for j := range squares {
				squares[j] = FlipDiagonalSquares[squares[j]]
			}
			break
		}
		if OffDiagonal[squares[i]] < 0 {
			break
		}
	}
	sq0, sq1 = squares[0], squares[1]

	var idx uint64
	if t.encType == encodingTwo {
		idx = uint64(KKIndex[Triangle[sq0]][sq1])
	} else {
		// The KKK+1 triangle scheme splits into four disjoint cases depending on which of the
		// three leading squares (if any) is off the main diagonal, each with its own base offset
		// reaching up to the 31332 total the order-pivot factor (pivfac) assumes.
		sq2 := squares[2]

		var i uint64
		if sq1 > sq0 {
			i = 1
		}
		var j uint64
		if sq2 > sq0 {
			j++
		}
		if sq2 > sq1 {
			j++
		}

		switch {
		case OffDiagonal[sq0] != 0:
			idx = 62*63*uint64(Triangle[sq0]) + 62*(uint64(sq1)-i) + (uint64(sq2) - j)
		case OffDiagonal[sq1] != 0:
			idx = 62*63*6 + 62*28*uint64(Diagonal[sq0]) + 62*uint64(Lower[sq1]) + (uint64(sq2) - j)
		case OffDiagonal[sq2] != 0:
			idx = 62*63*6 + 62*28*4 + 28*7*uint64(Diagonal[sq0]) + 28*(uint64(Diagonal[sq1])-i) + uint64(Lower[sq2])
		default:
			idx = 62*63*6 + 62*28*4 + 28*7*4 + 6*7*uint64(Diagonal[sq0]) + 6*(uint64(Diagonal[sq1])-i) + (uint64(Diagonal[sq2]) - j)
		}
	}
	idx *= t.factors[0]

	i := int(t.norm[0])
	j := i
	for i < len(squares) {
		group := append([]board.Square(nil), squares[i:i+int(t.norm[i])]...)
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
		idx += s * t.factors[i]
		j = i + int(t.norm[i])
		i = j
	}

	return idx
}

func sortSquares(s []board.Square) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// read looks up the WDL byte for the given piece placement under the given colour-flip.
func (t *pawnlessTable) read(pieces []placedPiece, colorFlip bool, blackToMove bool) (WDL, error) {
	squares, err := matchPieces(pieces, t.pieces, colorFlip)
	if err != nil {
		return 0, err
	}
	if squares[0].File() > board.FileD {
		for i := range squares {
			squares[i] = squares[i].FlipFile()
		}
	}

	idx := t.index(squares)

	useBtm := blackToMove != colorFlip
	pd := t.wtmPair
	if t.split && useBtm {
		pd = t.btmPair
	}
	b, err := pd.lookup(idx)
	if err != nil {
		return 0, err
	}
	return wdlFromByte(b), nil
}
