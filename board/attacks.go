package board

import "math/bits"

var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard
)

// ray directions, index order matches rookDirs/bishopDirs below
const (
	dirNorth = iota
	dirSouth
	dirEast
	dirWest
	dirNE
	dirNW
	dirSE
	dirSW
)

var rookDirs = [4]int{dirNorth, dirSouth, dirEast, dirWest}
var bishopDirs = [4]int{dirNE, dirNW, dirSE, dirSW}

// rays[dir][sq] is every square reachable from sq in that direction on an
// empty board, not including sq itself.
var rays [8][64]Bitboard

func init() {
	initLeaperAttacks()
	initRays()
	initMagics()
}

func initLeaperAttacks() {
	knightOffsets := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets := [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

	for sq := 0; sq < 64; sq++ {
		f, r := Square(sq).File(), Square(sq).Rank()

		var n Bitboard
		for _, d := range knightOffsets {
			nf, nr := f+d[0], r+d[1]
			if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
				n |= bit(squareOf(nf, nr))
			}
		}
		knightAttacks[sq] = n

		var k Bitboard
		for _, d := range kingOffsets {
			nf, nr := f+d[0], r+d[1]
			if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
				k |= bit(squareOf(nf, nr))
			}
		}
		kingAttacks[sq] = k

		if r < 7 {
			if f > 0 {
				pawnAttacks[White][sq] |= bit(squareOf(f-1, r+1))
			}
			if f < 7 {
				pawnAttacks[White][sq] |= bit(squareOf(f+1, r+1))
			}
		}
		if r > 0 {
			if f > 0 {
				pawnAttacks[Black][sq] |= bit(squareOf(f-1, r-1))
			}
			if f < 7 {
				pawnAttacks[Black][sq] |= bit(squareOf(f+1, r-1))
			}
		}
	}
}

func initRays() {
	for sq := 0; sq < 64; sq++ {
		f, r := Square(sq).File(), Square(sq).Rank()
		rays[dirNorth][sq] = rayBB(f, r, 0, 1)
		rays[dirSouth][sq] = rayBB(f, r, 0, -1)
		rays[dirEast][sq] = rayBB(f, r, 1, 0)
		rays[dirWest][sq] = rayBB(f, r, -1, 0)
		rays[dirNE][sq] = rayBB(f, r, 1, 1)
		rays[dirNW][sq] = rayBB(f, r, -1, 1)
		rays[dirSE][sq] = rayBB(f, r, 1, -1)
		rays[dirSW][sq] = rayBB(f, r, -1, -1)
	}
}

func rayBB(f, r, df, dr int) Bitboard {
	var b Bitboard
	f, r = f+df, r+dr
	for f >= 0 && f < 8 && r >= 0 && r < 8 {
		b |= bit(squareOf(f, r))
		f += df
		r += dr
	}
	return b
}

// rayAttacks walks a single direction from sq until it hits the nearest set
// bit in occ (inclusive of that blocker) or the board edge.
func rayAttacks(sq Square, dir int, occ Bitboard) Bitboard {
	full := rays[dir][sq]
	blockers := full & occ
	if blockers == 0 {
		return full
	}
	var blocker Square
	switch dir {
	case dirNorth, dirEast, dirNE, dirNW:
		blocker = Square(bits.TrailingZeros64(uint64(blockers)))
	default:
		blocker = Square(63 - bits.LeadingZeros64(uint64(blockers)))
	}
	return full &^ rays[dir][blocker]
}

func bit(sq Square) Bitboard { return Bitboard(1) << uint(sq) }

func (b Bitboard) popLSB() (Square, Bitboard) {
	sq := Square(bits.TrailingZeros64(uint64(b)))
	return sq, b & (b - 1)
}

func (b Bitboard) count() int { return bits.OnesCount64(uint64(b)) }

// PopLSB returns the least-significant set square and the bitboard with that
// bit cleared, for external packages walking a piece bitboard square by square.
func (b Bitboard) PopLSB() (Square, Bitboard) { return b.popLSB() }

// Count returns the number of set bits.
func (b Bitboard) Count() int { return b.count() }
