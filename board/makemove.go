package board

// MoveState holds what MakeMove needs to exactly undo a move, including a
// snapshot of the zobrist key so UnmakeMove can restore it bit-for-bit
// rather than re-deriving it from reversed XORs.
type MoveState struct {
	move          Move
	captured      Piece
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
	rookFrom      Square
	rookTo        Square
}

// NullState undoes MakeNullMove.
type NullState struct {
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
	prevSide      Color
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// MakeMove applies m to the board and reports whether the result is legal
// (the mover's own king is not left in check); on an illegal move the
// board is restored before returning.
func (b *Board) MakeMove(m Move) (legal bool, st MoveState) {
	st.move = m
	st.prevCastling = b.castlingRights
	st.prevEnPassant = b.enPassantSquare
	st.prevHalfmove = b.halfmoveClock
	st.prevFullmove = b.fullmoveNumber
	st.prevZobrist = b.zobristKey
	st.rookFrom, st.rookTo = NoSquare, NoSquare
	st.captured = NoPiece

	from, to := m.From(), m.To()
	moved := m.MovedPiece()
	promo := m.PromotionPiece()
	flag := m.Flag()
	us := b.sideToMove
	them := us.Opponent()

	if b.enPassantSquare != NoSquare && b.enPassantCaptureExists() {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
	}
	b.enPassantSquare = NoSquare

	switch {
	case flag == FlagEnPassant:
		var capSq Square
		if us == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		st.captured = b.pieces[capSq]
		b.clearPiece(capSq)
		b.movePiece(from, to)
	case m.IsCapture():
		st.captured = b.pieces[to]
		b.clearPiece(to)
		b.movePiece(from, to)
	default:
		b.movePiece(from, to)
	}

	if promo != NoPiece {
		b.clearPiece(to)
		b.setPiece(to, promo)
	}

	if flag == FlagCastle {
		switch to {
		case 6: // g1
			b.movePiece(7, 5)
			st.rookFrom, st.rookTo = 7, 5
		case 2: // c1
			b.movePiece(0, 3)
			st.rookFrom, st.rookTo = 0, 3
		case 62: // g8
			b.movePiece(63, 61)
			st.rookFrom, st.rookTo = 63, 61
		case 58: // c8
			b.movePiece(56, 59)
			st.rookFrom, st.rookTo = 56, 59
		}
	}

	newCR := b.castlingRights
	switch moved {
	case WhiteKing:
		newCR &^= CastleWhiteKingside | CastleWhiteQueenside
	case BlackKing:
		newCR &^= CastleBlackKingside | CastleBlackQueenside
	}
	if moved == WhiteRook {
		switch from {
		case 0:
			newCR &^= CastleWhiteQueenside
		case 7:
			newCR &^= CastleWhiteKingside
		}
	} else if moved == BlackRook {
		switch from {
		case 56:
			newCR &^= CastleBlackQueenside
		case 63:
			newCR &^= CastleBlackKingside
		}
	}
	if st.captured.Type() == Rook {
		switch to {
		case 0:
			newCR &^= CastleWhiteQueenside
		case 7:
			newCR &^= CastleWhiteKingside
		case 56:
			newCR &^= CastleBlackQueenside
		case 63:
			newCR &^= CastleBlackKingside
		}
	}
	if newCR != b.castlingRights {
		b.zobristKey ^= zobristCastling[b.castlingRights]
		b.zobristKey ^= zobristCastling[newCR]
		b.castlingRights = newCR
	}

	if moved.Type() == Pawn && absInt(to.Rank()-from.Rank()) == 2 {
		if us == White {
			b.enPassantSquare = from + 8
		} else {
			b.enPassantSquare = from - 8
		}
	}

	b.sideToMove = them
	b.zobristKey ^= zobristSideToMove
	if b.enPassantSquare != NoSquare && b.enPassantCaptureExists() {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
	}

	kingSq := b.KingSquare(us)
	if b.IsSquareAttacked(kingSq, them) {
		b.UnmakeMove(m, st)
		return false, st
	}

	if moved.Type() == Pawn || st.captured != NoPiece {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if us == Black {
		b.fullmoveNumber++
	}

	return true, st
}

// UnmakeMove restores the board to exactly the state before m was made.
func (b *Board) UnmakeMove(m Move, st MoveState) {
	from, to := m.From(), m.To()
	moved := m.MovedPiece()
	promo := m.PromotionPiece()
	flag := m.Flag()

	b.sideToMove = moved.Color()
	us := b.sideToMove
	them := us.Opponent()

	if flag == FlagCastle {
		if st.rookFrom != NoSquare {
			b.movePiece(st.rookTo, st.rookFrom)
		}
	}

	if promo != NoPiece {
		b.clearPiece(to)
		b.setPiece(from, moved)
	} else {
		b.movePiece(to, from)
	}

	if st.captured != NoPiece {
		if flag == FlagEnPassant {
			var capSq Square
			if us == White {
				capSq = to - 8
			} else {
				capSq = to + 8
			}
			b.setPiece(capSq, st.captured)
		} else {
			b.setPiece(to, st.captured)
		}
	}

	_ = them
	b.castlingRights = st.prevCastling
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove
	b.zobristKey = st.prevZobrist
}

// MakeNullMove passes the turn without moving a piece, used by null-move
// pruning in search.
func (b *Board) MakeNullMove() (st NullState) {
	st.prevEnPassant = b.enPassantSquare
	st.prevHalfmove = b.halfmoveClock
	st.prevFullmove = b.fullmoveNumber
	st.prevZobrist = b.zobristKey
	st.prevSide = b.sideToMove

	if b.enPassantSquare != NoSquare && b.enPassantCaptureExists() {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
	}
	b.enPassantSquare = NoSquare
	b.halfmoveClock++
	b.sideToMove = st.prevSide.Opponent()
	b.zobristKey ^= zobristSideToMove
	if st.prevSide == Black {
		b.fullmoveNumber++
	}
	return st
}

// UnmakeNullMove reverses MakeNullMove.
func (b *Board) UnmakeNullMove(st NullState) {
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove
	b.sideToMove = st.prevSide
	b.zobristKey = st.prevZobrist
}
