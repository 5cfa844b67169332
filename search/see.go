package search

import "chess-engine/board"

// seeValue is a simplified material scale for the exchange swap-off, distinct
// from the tapered eval tables above: SEE only needs relative ordering of
// piece values, not positional nuance.
var seeValue = [7]int32{
	board.NoPieceType: 0,
	board.Pawn:        100,
	board.Knight:      320,
	board.Bishop:      330,
	board.Rook:         500,
	board.Queen:        900,
	board.King:        20000,
}

// SEE performs a static exchange evaluation of the capture sequence on m's
// destination square, returning the net material gain in centipawns for the
// side to move if all pieces attacking that square trade off in ascending
// value order. Grounded on the teacher's see.go swap-off algorithm, rewritten
// against board.Board's attack/occupancy primitives instead of per-piece
// scans. Non-captures and en-passant are scored as simple material gain
// without running the swap loop (en-passant's capture square differs from
// its destination, which the swap-off below does not model).
func SEE(b *board.Board, m board.Move) int32 {
	if m.Flag() == board.FlagEnPassant {
		return seeValue[board.Pawn]
	}
	to := m.To()
	if !m.IsCapture() {
		return 0
	}

	gain := make([]int32, 0, 32)
	gain = append(gain, seeValue[m.CapturedPiece().Type()])

	occ := b.Occupied()
	occ &^= bitFor(m.From())
	attackerValue := seeValue[m.MovedPiece().Type()]
	side := m.MovedPiece().Color().Opponent()

	for {
		attackerSq, attackerPT, ok := leastValuableAttacker(b, occ, to, side)
		if !ok {
			break
		}
		gain = append(gain, attackerValue-gain[len(gain)-1])
		occ &^= bitFor(attackerSq)
		attackerValue = seeValue[attackerPT]
		side = side.Opponent()
	}

	for i := len(gain) - 2; i >= 0; i-- {
		if -gain[i+1] < gain[i] {
			gain[i] = -gain[i+1]
		}
	}
	return gain[0]
}

func bitFor(sq board.Square) board.Bitboard { return board.Bitboard(1) << uint(sq) }

// leastValuableAttacker finds the cheapest remaining piece of side attacking
// sq given the (possibly already-thinned) occupancy occ, consulting the
// board's magic attack generation so sliding-piece attackers update
// correctly as blockers are removed mid swap-off.
func leastValuableAttacker(b *board.Board, occ board.Bitboard, sq board.Square, side board.Color) (board.Square, board.PieceType, bool) {
	if bb := board.PawnAttackersTo(sq, side) & b.PieceBB(side, board.Pawn) & occ; bb != 0 {
		s, _ := bb.PopLSB()
		return s, board.Pawn, true
	}
	if bb := board.KnightAttacksFrom(sq) & b.PieceBB(side, board.Knight) & occ; bb != 0 {
		s, _ := bb.PopLSB()
		return s, board.Knight, true
	}
	if bb := board.BishopAttacksFrom(sq, occ) & b.PieceBB(side, board.Bishop) & occ; bb != 0 {
		s, _ := bb.PopLSB()
		return s, board.Bishop, true
	}
	if bb := board.RookAttacksFrom(sq, occ) & b.PieceBB(side, board.Rook) & occ; bb != 0 {
		s, _ := bb.PopLSB()
		return s, board.Rook, true
	}
	if bb := (board.BishopAttacksFrom(sq, occ) | board.RookAttacksFrom(sq, occ)) & b.PieceBB(side, board.Queen) & occ; bb != 0 {
		s, _ := bb.PopLSB()
		return s, board.Queen, true
	}
	if bb := board.KingAttacksFrom(sq) & b.PieceBB(side, board.King) & occ; bb != 0 {
		s, _ := bb.PopLSB()
		return s, board.King, true
	}
	return board.NoSquare, board.NoPieceType, false
}
