package board

// Legal move generation works in four passes per spec: find checkers and
// the check-evasion mask, find absolute pins and their permitted ray, then
// walk each piece type applying both masks, and finally layer on castling
// and en-passant legality (which need their own discovered-check checks).

const allSquares Bitboard = ^Bitboard(0)

type checkInfo struct {
	inCheck     bool
	doubleCheck bool
	checkMask   Bitboard // squares a non-king move must land on while in check
	pinMask     [64]Bitboard
}

func (b *Board) computeCheckInfo(side Color) checkInfo {
	var ci checkInfo
	them := side.Opponent()
	occ := b.Occupied()
	ksq := b.KingSquare(side)

	var checkers Bitboard
	checkers |= pawnAttacks[side][ksq] & b.byType[them][Pawn]
	checkers |= knightAttacks[ksq] & b.byType[them][Knight]
	diag := bishopAttacks(ksq, occ)
	checkers |= diag & (b.byType[them][Bishop] | b.byType[them][Queen])
	ortho := rookAttacks(ksq, occ)
	checkers |= ortho & (b.byType[them][Rook] | b.byType[them][Queen])

	ci.inCheck = checkers != 0
	ci.doubleCheck = ci.inCheck && (checkers&(checkers-1)) != 0

	if ci.inCheck && !ci.doubleCheck {
		c, _ := checkers.popLSB()
		switch b.pieces[c].Type() {
		case Rook:
			ci.checkMask = rayBetween(ksq, c, rookDirs[:])
		case Bishop:
			ci.checkMask = rayBetween(ksq, c, bishopDirs[:])
		case Queen:
			if m := rayBetween(ksq, c, rookDirs[:]); m != 0 {
				ci.checkMask = m
			} else {
				ci.checkMask = rayBetween(ksq, c, bishopDirs[:])
			}
		default:
			ci.checkMask = bit(c)
		}
	}

	computePins(&ci, ksq, side, them, occ, rookDirs[:], b, true)
	computePins(&ci, ksq, side, them, occ, bishopDirs[:], b, false)

	return ci
}

// rayBetween finds, among the four directions in dirs, the one connecting
// ksq to checker and returns the squares strictly between them plus the
// checker square itself (the set of squares that capture or block the
// check).
func rayBetween(ksq, checker Square, dirs []int) Bitboard {
	cbb := bit(checker)
	for _, d := range dirs {
		if rays[d][ksq]&cbb != 0 {
			return rays[d][ksq] &^ rays[d][checker]
		}
	}
	return 0
}

func computePins(ci *checkInfo, ksq Square, us, them Color, occ Bitboard, dirs []int, b *Board, orthogonal bool) {
	for _, d := range dirs {
		increasing := d == dirNorth || d == dirEast || d == dirNE || d == dirNW
		ray := rays[d][ksq]
		blockers := ray & occ
		if blockers == 0 {
			continue
		}
		var first Square
		if increasing {
			first, _ = blockers.popLSB()
		} else {
			first = highestSquare(blockers)
		}
		if bit(first)&b.occupancy[us] == 0 {
			continue
		}
		beyond := rays[d][first] & occ
		if beyond == 0 {
			continue
		}
		var next Square
		if increasing {
			next, _ = beyond.popLSB()
		} else {
			next = highestSquare(beyond)
		}
		p := b.pieces[next]
		if p.Color() != them {
			continue
		}
		isPinner := false
		if orthogonal {
			isPinner = p.Type() == Rook || p.Type() == Queen
		} else {
			isPinner = p.Type() == Bishop || p.Type() == Queen
		}
		if isPinner {
			ci.pinMask[first] = rays[d][ksq] &^ rays[d][next]
		}
	}
}

func highestSquare(b Bitboard) Square {
	sq, _ := b.popLSB()
	best := sq
	for b != 0 {
		sq, b = b.popLSB()
		best = sq
	}
	return best
}

// allowedMask returns the set of destination squares a piece on `from` may
// legally move to given the current check/pin state (ignoring king moves,
// which aren't pinned and use their own evasion logic).
func (ci *checkInfo) allowedMask(from Square) Bitboard {
	mask := allSquares
	if ci.inCheck {
		mask &= ci.checkMask
	}
	if pin := ci.pinMask[from]; pin != 0 {
		mask &= pin
	}
	return mask
}

// GenerateLegalMoves returns every fully legal move in the position.
func (b *Board) GenerateLegalMoves() []Move {
	return b.generateInto(make([]Move, 0, 64), true, true)
}

// GenerateCaptures returns captures, en-passant, and queen promotions
// (including quiet ones), for quiescence per spec.md §4.7.8.
func (b *Board) GenerateCaptures() []Move {
	dst := b.generateInto(make([]Move, 0, 32), true, false)
	return appendQuietQueenPromotions(dst, b)
}

// appendQuietQueenPromotions adds quiet (non-capturing) pawn pushes that
// promote to a queen, which generateInto(true, false) skips since it only
// emits moves landing on an opponent-occupied square.
func appendQuietQueenPromotions(dst []Move, b *Board) []Move {
	us := b.sideToMove
	ci := b.computeCheckInfo(us)
	if ci.doubleCheck {
		return dst
	}
	p := MakePiece(us, Pawn)
	pawns := b.byType[us][Pawn]
	var forward Square
	var promoRank int
	if us == White {
		forward, promoRank = 8, 7
	} else {
		forward, promoRank = -8, 0
	}
	for bb := pawns; bb != 0; {
		from, rest := bb.popLSB()
		bb = rest
		to := from + forward
		if to < 0 || to >= 64 || to.Rank() != promoRank {
			continue
		}
		if b.pieces[to] != NoPiece {
			continue
		}
		if bit(to)&ci.allowedMask(from) == 0 {
			continue
		}
		dst = append(dst, NewMove(from, to, p, NoPiece, MakePiece(us, Queen), FlagNone))
	}
	return dst
}

// GenerateQuiets returns only non-capturing moves, including castling and
// quiet pawn pushes that promote (all four promotion pieces).
func (b *Board) GenerateQuiets() []Move {
	return b.generateInto(make([]Move, 0, 64), false, true)
}

func (b *Board) generateInto(dst []Move, captures, quiets bool) []Move {
	us := b.sideToMove
	them := us.Opponent()
	occ := b.Occupied()
	ci := b.computeCheckInfo(us)

	ksq := b.KingSquare(us)
	dst = b.genKingMoves(dst, ksq, us, them, occ, captures, quiets)

	if ci.doubleCheck {
		return dst // only king moves are legal when in double check
	}

	dst = b.genPawnMoves(dst, us, them, occ, &ci, captures, quiets)
	dst = b.genPieceMoves(dst, Knight, us, occ, &ci, captures, quiets, func(sq Square, _ Bitboard) Bitboard { return knightAttacks[sq] })
	dst = b.genPieceMoves(dst, Bishop, us, occ, &ci, captures, quiets, bishopAttacks)
	dst = b.genPieceMoves(dst, Rook, us, occ, &ci, captures, quiets, rookAttacks)
	dst = b.genPieceMoves(dst, Queen, us, occ, &ci, captures, quiets, queenAttacks)

	if quiets && !ci.inCheck {
		dst = b.genCastling(dst, us)
	}

	return dst
}

func (b *Board) genPieceMoves(dst []Move, pt PieceType, us Color, occ Bitboard, ci *checkInfo, captures, quiets bool, attacksFn func(Square, Bitboard) Bitboard) []Move {
	pieces := b.byType[us][pt]
	p := MakePiece(us, pt)
	for pieces != 0 {
		from, rest := pieces.popLSB()
		pieces = rest
		targets := attacksFn(from, occ) &^ b.occupancy[us]
		targets &= ci.allowedMask(from)

		var wanted Bitboard
		if captures {
			wanted |= targets & b.occupancy[us.Opponent()]
		}
		if quiets {
			wanted |= targets &^ b.occupancy[us.Opponent()]
		}
		for wanted != 0 {
			to, rest2 := wanted.popLSB()
			wanted = rest2
			captured := b.pieces[to]
			dst = append(dst, NewMove(from, to, p, captured, NoPiece, FlagNone))
		}
	}
	return dst
}

func (b *Board) genKingMoves(dst []Move, ksq Square, us, them Color, occ Bitboard, captures, quiets bool) []Move {
	p := MakePiece(us, King)
	targets := kingAttacks[ksq] &^ b.occupancy[us]
	occWithoutKing := occ &^ bit(ksq)
	for targets != 0 {
		to, rest := targets.popLSB()
		targets = rest
		captured := b.pieces[to]
		isCapture := captured != NoPiece
		if isCapture && !captures {
			continue
		}
		if !isCapture && !quiets {
			continue
		}
		if b.isSquareAttackedExcludingKing(to, them, occWithoutKing) {
			continue
		}
		dst = append(dst, NewMove(ksq, to, p, captured, NoPiece, FlagNone))
	}
	return dst
}

// isSquareAttackedExcludingKing checks attacks against an occupancy with the
// moving king removed, so a king can't "hide" behind its own square when
// stepping straight back from a slider.
func (b *Board) isSquareAttackedExcludingKing(sq Square, by Color, occ Bitboard) bool {
	if pawnAttacks[by.Opponent()][sq]&b.byType[by][Pawn] != 0 {
		return true
	}
	if knightAttacks[sq]&b.byType[by][Knight] != 0 {
		return true
	}
	if kingAttacks[sq]&b.byType[by][King] != 0 {
		return true
	}
	if bishopAttacks(sq, occ)&(b.byType[by][Bishop]|b.byType[by][Queen]) != 0 {
		return true
	}
	if rookAttacks(sq, occ)&(b.byType[by][Rook]|b.byType[by][Queen]) != 0 {
		return true
	}
	return false
}

var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

func (b *Board) genPawnMoves(dst []Move, us, them Color, occ Bitboard, ci *checkInfo, captures, quiets bool) []Move {
	p := MakePiece(us, Pawn)
	pawns := b.byType[us][Pawn]
	var forward Square
	var startRank, promoRank int
	if us == White {
		forward = 8
		startRank, promoRank = 1, 7
	} else {
		forward = -8
		startRank, promoRank = 6, 0
	}

	for bb := pawns; bb != 0; {
		from, rest := bb.popLSB()
		bb = rest
		allowed := ci.allowedMask(from)

		if quiets {
			one := from + Square(forward)
			if one >= 0 && one < 64 && b.pieces[one] == NoPiece {
				if bit(one)&allowed != 0 {
					dst = appendPawnMove(dst, p, us, from, one, NoPiece, FlagNone, promoRank)
				}
				if from.Rank() == startRank {
					two := one + Square(forward)
					if b.pieces[two] == NoPiece && bit(two)&allowed != 0 {
						dst = append(dst, NewMove(from, two, p, NoPiece, NoPiece, FlagDoublePawnPush))
					}
				}
			}
		}

		if captures {
			atk := pawnAttacks[us][from] & b.occupancy[them] & allowed
			for atk != 0 {
				to, r2 := atk.popLSB()
				atk = r2
				captured := b.pieces[to]
				dst = appendPawnMove(dst, p, us, from, to, captured, FlagNone, promoRank)
			}

			if b.enPassantSquare != NoSquare {
				epTargets := pawnAttacks[us][from] & bit(b.enPassantSquare)
				if epTargets != 0 && b.enPassantIsLegal(from, us, them) {
					dst = append(dst, NewMove(from, b.enPassantSquare, p, MakePiece(them, Pawn), NoPiece, FlagEnPassant))
				}
			}
		}
	}
	return dst
}

// appendPawnMove appends a single pawn move, fanning out into four
// promotion moves (queen, rook, bishop, knight) when `to` lands on the
// promotion rank.
func appendPawnMove(dst []Move, p Piece, us Color, from, to Square, captured Piece, flag uint8, promoRank int) []Move {
	if to.Rank() != promoRank {
		return append(dst, NewMove(from, to, p, captured, NoPiece, flag))
	}
	for _, pt := range promotionTypes {
		dst = append(dst, NewMove(from, to, p, captured, MakePiece(us, pt), flag))
	}
	return dst
}

// enPassantIsLegal simulates the en-passant capture (removing both pawns,
// placing the capturing pawn on the ep square) and verifies it doesn't
// leave the mover's king in check -- this is the classic "discovered check
// along the rank" edge case en-passant is famous for.
func (b *Board) enPassantIsLegal(from Square, us, them Color) bool {
	ep := b.enPassantSquare
	var capSq Square
	if us == White {
		capSq = ep - 8
	} else {
		capSq = ep + 8
	}
	occ := b.Occupied()
	occ &^= bit(from)
	occ &^= bit(capSq)
	occ |= bit(ep)

	ksq := b.KingSquare(us)
	if ksq == from {
		ksq = ep
	}
	rooksQueens := b.byType[them][Rook] | b.byType[them][Queen]
	if rookAttacks(ksq, occ)&rooksQueens != 0 {
		return false
	}
	bishopsQueens := b.byType[them][Bishop] | b.byType[them][Queen]
	if bishopAttacks(ksq, occ)&bishopsQueens != 0 {
		return false
	}
	if knightAttacks[ksq]&b.byType[them][Knight] != 0 {
		return false
	}
	return true
}

func (b *Board) genCastling(dst []Move, us Color) []Move {
	them := us.Opponent()
	if us == White {
		if b.castlingRights&CastleWhiteKingside != 0 &&
			b.pieces[5] == NoPiece && b.pieces[6] == NoPiece &&
			!b.IsSquareAttacked(4, them) && !b.IsSquareAttacked(5, them) && !b.IsSquareAttacked(6, them) {
			dst = append(dst, NewMove(4, 6, WhiteKing, NoPiece, NoPiece, FlagCastle))
		}
		if b.castlingRights&CastleWhiteQueenside != 0 &&
			b.pieces[1] == NoPiece && b.pieces[2] == NoPiece && b.pieces[3] == NoPiece &&
			!b.IsSquareAttacked(4, them) && !b.IsSquareAttacked(3, them) && !b.IsSquareAttacked(2, them) {
			dst = append(dst, NewMove(4, 2, WhiteKing, NoPiece, NoPiece, FlagCastle))
		}
	} else {
		if b.castlingRights&CastleBlackKingside != 0 &&
			b.pieces[61] == NoPiece && b.pieces[62] == NoPiece &&
			!b.IsSquareAttacked(60, them) && !b.IsSquareAttacked(61, them) && !b.IsSquareAttacked(62, them) {
			dst = append(dst, NewMove(60, 62, BlackKing, NoPiece, NoPiece, FlagCastle))
		}
		if b.castlingRights&CastleBlackQueenside != 0 &&
			b.pieces[57] == NoPiece && b.pieces[58] == NoPiece && b.pieces[59] == NoPiece &&
			!b.IsSquareAttacked(60, them) && !b.IsSquareAttacked(59, them) && !b.IsSquareAttacked(58, them) {
			dst = append(dst, NewMove(60, 58, BlackKing, NoPiece, NoPiece, FlagCastle))
		}
	}
	return dst
}

// HasLegalMoves reports whether the side to move has at least one legal
// move, used for checkmate/stalemate detection. It builds the full legal
// move list and checks that it is non-empty.
func (b *Board) HasLegalMoves() bool {
	return len(b.GenerateLegalMoves()) > 0
}

func (b *Board) InCheckmate() bool { return b.InCheck(b.sideToMove) && !b.HasLegalMoves() }
func (b *Board) InStalemate() bool { return !b.InCheck(b.sideToMove) && !b.HasLegalMoves() }
