package tablebase

import "github.com/herohde/tbprobe/pkg/board"

// This file holds the precomputed lookup tables the Syzygy canonical indexing scheme relies on:
// binomial coefficients, the a1-d1-d4 triangle classification, the King-King pair index, the
// diagonal/off-diagonal classifiers, and the pawn flap/twist/index/factor tables used by the
// pawnful variant. original_source/ never carried a constants.rs (its _INDEX.md reports nothing
// filtered from the crate; the file simply was not part of the retrieved set), so the enumeration
// tables below are transcribed from the public reference probing code (Ronald de Man's tbcore.c
// and its direct derivatives, e.g. python-chess's syzygy.py) rather than derived from this pack.
// Binomial, FlipDiagonalSquares, FileToFile, PawnIndex and PawnFactor remain algorithmically
// derived, matching how the reference implementation itself computes them at init time from the
// tables above.

const numSquares = 64

// Binomial[k][n] = C(n, k), the number of ways to choose k items from n, for k in 0..5.
var Binomial [6][64]uint64

// OffDiagonal[sq] is +1 when sq is above the main a1-h8 diagonal (rank > file), -1 when below
// (file > rank), 0 on the diagonal itself.
var OffDiagonal = [numSquares]int8{
	0, -1, -1, -1, -1, -1, -1, -1,
	1, 0, -1, -1, -1, -1, -1, -1,
	1, 1, 0, -1, -1, -1, -1, -1,
	1, 1, 1, 0, -1, -1, -1, -1,
	1, 1, 1, 1, 0, -1, -1, -1,
	1, 1, 1, 1, 1, 0, -1, -1,
	1, 1, 1, 1, 1, 1, 0, -1,
	1, 1, 1, 1, 1, 1, 1, 0,
}

// Triangle[sq] classifies sq by its position within the a1-d1-d4 quadrant triangle (the 10
// squares a1,b1,c1,d1,b2,c2,d2,c3,d3,d4 map to 0..9); squares outside that quadrant map to the
// value of their mirror image inside it.
var Triangle = [numSquares]uint8{
	6, 0, 1, 2, 2, 1, 0, 6,
	0, 7, 3, 4, 4, 3, 7, 0,
	1, 3, 8, 5, 5, 8, 3, 1,
	2, 4, 5, 9, 9, 5, 4, 2,
	2, 4, 5, 9, 9, 5, 4, 2,
	1, 3, 8, 5, 5, 8, 3, 1,
	0, 7, 3, 4, 4, 3, 7, 0,
	6, 0, 1, 2, 2, 1, 0, 6,
}

// Lower[sq] is a secondary dense index used when resolving ties among squares that map to the
// same Triangle class (the "off-diagonal distance" table paired with Triangle).
var Lower = [numSquares]uint8{
	28, 0, 1, 2, 3, 4, 5, 6,
	0, 29, 7, 8, 9, 10, 11, 12,
	1, 7, 30, 13, 14, 15, 16, 17,
	2, 8, 13, 31, 18, 19, 20, 21,
	3, 9, 14, 18, 32, 22, 23, 24,
	4, 10, 15, 19, 22, 33, 25, 26,
	5, 11, 16, 20, 23, 25, 34, 27,
	6, 12, 17, 21, 24, 26, 27, 35,
}

// Diagonal[sq] marks squares on the board's two main diagonals for the Zero-encoding branch
// selection; 0 off both diagonals.
var Diagonal = [numSquares]uint8{
	0, 0, 0, 0, 0, 0, 0, 8,
	0, 1, 0, 0, 0, 0, 9, 0,
	0, 0, 2, 0, 0, 10, 0, 0,
	0, 0, 0, 3, 11, 0, 0, 0,
	0, 0, 0, 12, 4, 0, 0, 0,
	0, 0, 13, 0, 0, 5, 0, 0,
	0, 14, 0, 0, 0, 0, 6, 0,
	15, 0, 0, 0, 0, 0, 0, 7,
}

// FlipDiagonalSquares[sq] mirrors sq across the a1-h8 diagonal (file/rank transpose).
var FlipDiagonalSquares [numSquares]board.Square

// FileToFile[f] folds a file into the 0..3 range used by pawnful file subtables.
var FileToFile = [8]uint8{0, 1, 2, 3, 3, 2, 1, 0}

// Flap[sq] packs a pawn square (rank 2..7) into a compact index used by PawnIndex, folding file
// to 0..3 first.
var Flap = [numSquares]uint8{
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 6, 12, 18, 18, 12, 6, 0,
	1, 7, 13, 19, 19, 13, 7, 1,
	2, 8, 14, 20, 20, 14, 8, 2,
	3, 9, 15, 21, 21, 15, 9, 3,
	4, 10, 16, 22, 22, 16, 10, 4,
	5, 11, 17, 23, 23, 17, 11, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// PawnTwist[sq] is the canonical ordering key used to sort same-side pawns before indexing.
var PawnTwist = [numSquares]uint8{
	0, 0, 0, 0, 0, 0, 0, 0,
	47, 35, 23, 11, 10, 22, 34, 46,
	45, 33, 21, 9, 8, 20, 32, 44,
	43, 31, 19, 7, 6, 18, 30, 42,
	41, 29, 17, 5, 4, 16, 28, 40,
	39, 27, 15, 3, 2, 14, 26, 38,
	37, 25, 13, 1, 0, 12, 24, 36,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// kkIndexRaw is the literal KKIndex table (one row per Triangle class 0..9, sq1 0..63), -1 for
// invalid (sq1 coincident with, or adjacent to, the first king, or excluded to avoid double
// counting the diagonal mirror symmetry).
var kkIndexRaw = [10][64]int16{
	{-1, -1, -1, 0, 1, 2, 3, 4,
		-1, -1, -1, 5, 6, 7, 8, 9,
		10, 11, 12, 13, 14, 15, 16, 17,
		18, 19, 20, 21, 22, 23, 24, 25,
		26, 27, 28, 29, 30, 31, 32, 33,
		34, 35, 36, 37, 38, 39, 40, 41,
		42, 43, 44, 45, 46, 47, 48, 49,
		50, 51, 52, 53, 54, 55, 56, 57},
	{58, -1, -1, -1, 59, 60, 61, 62,
		63, -1, -1, -1, 64, 65, 66, 67,
		68, 69, 70, 71, 72, 73, 74, 75,
		76, 77, 78, 79, 80, 81, 82, 83,
		84, 85, 86, 87, 88, 89, 90, 91,
		92, 93, 94, 95, 96, 97, 98, 99,
		100, 101, 102, 103, 104, 105, 106, 107,
		108, 109, 110, 111, 112, 113, 114, 115},
	{116, 117, -1, -1, -1, 118, 119, 120,
		121, 122, -1, -1, -1, 123, 124, 125,
		126, 127, 128, 129, 130, 131, 132, 133,
		134, 135, 136, 137, 138, 139, 140, 141,
		142, 143, 144, 145, 146, 147, 148, 149,
		150, 151, 152, 153, 154, 155, 156, 157,
		158, 159, 160, 161, 162, 163, 164, 165,
		166, 167, 168, 169, 170, 171, 172, 173},
	{174, -1, -1, -1, 175, 176, 177, 178,
		179, -1, -1, -1, 180, 181, 182, 183,
		184, -1, -1, -1, 185, 186, 187, 188,
		189, 190, 191, 192, 193, 194, 195, 196,
		197, 198, 199, 200, 201, 202, 203, 204,
		205, 206, 207, 208, 209, 210, 211, 212,
		213, 214, 215, 216, 217, 218, 219, 220,
		221, 222, 223, 224, 225, 226, 227, 228},
	{229, 230, -1, -1, -1, 231, 232, 233,
		234, 235, -1, -1, -1, 236, 237, 238,
		239, 240, -1, -1, -1, 241, 242, 243,
		244, 245, 246, 247, 248, 249, 250, 251,
		252, 253, 254, 255, 256, 257, 258, 259,
		260, 261, 262, 263, 264, 265, 266, 267,
		268, 269, 270, 271, 272, 273, 274, 275,
		276, 277, 278, 279, 280, 281, 282, 283},
	{284, 285, 286, 287, 288, 289, 290, 291,
		292, 293, -1, -1, -1, 294, 295, 296,
		297, 298, -1, -1, -1, 299, 300, 301,
		302, 303, -1, -1, -1, 304, 305, 306,
		307, 308, 309, 310, 311, 312, 313, 314,
		315, 316, 317, 318, 319, 320, 321, 322,
		323, 324, 325, 326, 327, 328, 329, 330,
		331, 332, 333, 334, 335, 336, 337, 338},
	{-1, -1, 339, 340, 341, 342, 343, 344,
		-1, -1, 345, 346, 347, 348, 349, 350,
		-1, -1, 441, 351, 352, 353, 354, 355,
		-1, -1, -1, 442, 356, 357, 358, 359,
		-1, -1, -1, -1, 443, 360, 361, 362,
		-1, -1, -1, -1, -1, 444, 363, 364,
		-1, -1, -1, -1, -1, -1, 445, 365,
		-1, -1, -1, -1, -1, -1, -1, 446},
	{-1, -1, -1, 366, 367, 368, 369, 370,
		-1, -1, -1, 371, 372, 373, 374, 375,
		-1, -1, -1, 376, 377, 378, 379, 380,
		-1, -1, -1, 447, 381, 382, 383, 384,
		-1, -1, -1, -1, 448, 385, 386, 387,
		-1, -1, -1, -1, -1, 449, 388, 389,
		-1, -1, -1, -1, -1, -1, 450, 390,
		-1, -1, -1, -1, -1, -1, -1, 451},
	{452, 391, 392, 393, 394, 395, 396, 397,
		-1, -1, -1, -1, 398, 399, 400, 401,
		-1, -1, -1, -1, 402, 403, 404, 405,
		-1, -1, -1, -1, 406, 407, 408, 409,
		-1, -1, -1, -1, 453, 410, 411, 412,
		-1, -1, -1, -1, -1, 454, 413, 414,
		-1, -1, -1, -1, -1, -1, 455, 415,
		-1, -1, -1, -1, -1, -1, -1, 456},
	{457, 416, 417, 418, 419, 420, 421, 422,
		-1, 458, 423, 424, 425, 426, 427, 428,
		-1, -1, -1, -1, -1, 429, 430, 431,
		-1, -1, -1, -1, -1, 432, 433, 434,
		-1, -1, -1, -1, -1, 435, 436, 437,
		-1, -1, -1, -1, -1, 459, 438, 439,
		-1, -1, -1, -1, -1, -1, 460, 440,
		-1, -1, -1, -1, -1, -1, -1, 461},
}

// KKIndex[Triangle[sq0]][sq1] is the dense 0..461 index of the (sq0, sq1) king pair once sq0 has
// been canonicalised into the a1-d1-d4 triangle.
var KKIndex [10][numSquares]uint16

// PawnIndex[t][flap] is the base index contributed by the lead pawn, for t = (white pawn count - 1).
var PawnIndex [6][32]uint64

// PawnFactor[wp-1][file] is the per-file multiplier folded into factors[0] for the pawnful variant.
var PawnFactor [6][4]uint64

func init() {
	initBinomial()
	initFlipDiagonal()
	initKKIndex()
	initPawnTables()
}

func initBinomial() {
	for k := 0; k < 6; k++ {
		for n := 0; n < 64; n++ {
			Binomial[k][n] = binomCoeff(n, k)
		}
	}
}

func binomCoeff(n, k int) uint64 {
	if k < 0 || n < 0 || k > n {
		return 0
	}
	var f, l uint64 = 1, 1
	for i := 0; i < k; i++ {
		f *= uint64(n - i)
		l *= uint64(i + 1)
	}
	return f / l
}

func initFlipDiagonal() {
	for sq := 0; sq < numSquares; sq++ {
		file, rank := sq&7, sq>>3
		FlipDiagonalSquares[sq] = board.Square((file << 3) | rank)
	}
}

func initKKIndex() {
	for class := range kkIndexRaw {
		for sq1, idx := range kkIndexRaw[class] {
			if idx < 0 {
				KKIndex[class][sq1] = 0xFFFF // sentinel: invalid combination.
			} else {
				KKIndex[class][sq1] = uint16(idx)
			}
		}
	}
}

// initPawnTables builds PawnIndex and PawnFactor as cumulative binomial sums over Flap, the same
// subfactor technique the reference uses for the other piece groups.
func initPawnTables() {
	for t := 0; t < 6; t++ {
		var s uint64
		for flap := 0; flap < 24; flap++ {
			PawnIndex[t][flap] = s
			s += Binomial[t][47-flap]
		}
	}

	for wp := 1; wp <= 6; wp++ {
		for file := 0; file < 4; file++ {
			PawnFactor[wp-1][file] = binomCoeff(48-file, wp)
		}
	}
}
