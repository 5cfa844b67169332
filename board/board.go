package board

// Board is the full mutable chess position: per-piece-type bitboards
// split by color, a mailbox for O(1) piece-at-square lookups, and the
// incidental state (side to move, castling rights, en-passant square,
// clocks, and the running Zobrist key) needed to make/unmake moves and
// detect draws.
type Board struct {
	byType [2][7]Bitboard // byType[color][PieceType]
	occupancy [2]Bitboard
	pieces [64]Piece

	sideToMove      Color
	castlingRights  CastlingRights
	enPassantSquare Square
	halfmoveClock   int
	fullmoveNumber  int
	zobristKey      uint64

	history []uint64 // zobrist keys of prior positions, for repetition detection
}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		panic("board: malformed built-in start FEN: " + err.Error())
	}
	return b
}

func (b *Board) SideToMove() Color           { return b.sideToMove }
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }
func (b *Board) EnPassantSquare() Square      { return b.enPassantSquare }
func (b *Board) HalfmoveClock() int           { return b.halfmoveClock }
func (b *Board) FullmoveNumber() int          { return b.fullmoveNumber }
func (b *Board) Hash() uint64                 { return b.zobristKey }
func (b *Board) PieceAt(sq Square) Piece      { return b.pieces[sq] }

// Occupied returns the union of every piece on the board.
func (b *Board) Occupied() Bitboard { return b.occupancy[White] | b.occupancy[Black] }

// ColorBB returns every square occupied by pieces of the given color.
func (b *Board) ColorBB(c Color) Bitboard { return b.occupancy[c] }

// PieceBB returns every square occupied by a piece of the given color+kind.
func (b *Board) PieceBB(c Color, pt PieceType) Bitboard { return b.byType[c][pt] }

// KingSquare returns the square of the given color's king.
func (b *Board) KingSquare(c Color) Square {
	bb := b.byType[c][King]
	sq, _ := bb.popLSB()
	return sq
}

func (b *Board) setPiece(sq Square, p Piece) {
	if p == NoPiece {
		return
	}
	c := p.Color()
	t := p.Type()
	m := bit(sq)
	b.byType[c][t] |= m
	b.occupancy[c] |= m
	b.pieces[sq] = p
	b.zobristKey ^= zobristPiece[p][sq]
}

func (b *Board) clearPiece(sq Square) {
	p := b.pieces[sq]
	if p == NoPiece {
		return
	}
	c := p.Color()
	t := p.Type()
	m := ^bit(sq)
	b.byType[c][t] &= m
	b.occupancy[c] &= m
	b.pieces[sq] = NoPiece
	b.zobristKey ^= zobristPiece[p][sq]
}

// movePiece relocates a piece, updating bitboards/mailbox/zobrist. The
// destination must already be empty (captures clear it first).
func (b *Board) movePiece(from, to Square) {
	p := b.pieces[from]
	b.clearPiece(from)
	b.setPiece(to, p)
}

// Clone returns a deep copy, used by GivesCheck to try a move on a scratch
// board and by the UCI session to hand each search its own position.
func (b *Board) Clone() *Board {
	nb := *b
	nb.history = append([]uint64(nil), b.history...)
	return &nb
}

// IsSquareAttacked reports whether sq is attacked by any piece of color
// `by`, given the current occupancy.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	occ := b.Occupied()
	if pawnAttacks[by.Opponent()][sq]&b.byType[by][Pawn] != 0 {
		return true
	}
	if knightAttacks[sq]&b.byType[by][Knight] != 0 {
		return true
	}
	if kingAttacks[sq]&b.byType[by][King] != 0 {
		return true
	}
	bishopsQueens := b.byType[by][Bishop] | b.byType[by][Queen]
	if bishopAttacks(sq, occ)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := b.byType[by][Rook] | b.byType[by][Queen]
	if rookAttacks(sq, occ)&rooksQueens != 0 {
		return true
	}
	return false
}

// InCheck reports whether the given side's king is currently attacked.
func (b *Board) InCheck(c Color) bool {
	return b.IsSquareAttacked(b.KingSquare(c), c.Opponent())
}

// IsDrawByFiftyMoves reports the fifty-move (100-halfmove) rule.
func (b *Board) IsDrawByFiftyMoves() bool { return b.halfmoveClock >= 100 }

// IsDrawByRepetition reports a threefold repetition: the current position's
// key occurs at least three times in the recorded history, which includes
// the current position once PushHistory has been called for it.
func (b *Board) IsDrawByRepetition() bool {
	matches := 0
	for _, h := range b.history {
		if h == b.zobristKey {
			matches++
			if matches >= 3 {
				return true
			}
		}
	}
	return false
}

// PushHistory records the current key, called after every make-move by the
// search/UCI driver so repetition detection sees the full game history.
func (b *Board) PushHistory() { b.history = append(b.history, b.zobristKey) }

// PopHistory removes the most recently recorded key, called in lockstep
// with UnmakeMove so a search tree's repetition window exactly mirrors the
// moves currently made on the board.
func (b *Board) PopHistory() {
	if n := len(b.history); n > 0 {
		b.history = b.history[:n-1]
	}
}

// ResetHistory clears recorded history.
func (b *Board) ResetHistory() { b.history = b.history[:0] }

// History exposes the recorded key history for callers that need to seed
// a search-local repetition window (e.g. from `position ... moves ...`).
func (b *Board) History() []uint64 { return b.history }

// IsDraw reports any of the three automatic draw conditions: the fifty-move
// rule, threefold repetition, or insufficient mating material.
func (b *Board) IsDraw() bool {
	return b.IsDrawByFiftyMoves() || b.IsDrawByRepetition() || b.IsInsufficientMaterial()
}

// IsInsufficientMaterial reports K vs K, K+minor vs K, or K+N+N vs K with no
// other material on the board -- positions where neither side can force
// checkmate regardless of play.
func (b *Board) IsInsufficientMaterial() bool {
	if b.byType[White][Pawn] != 0 || b.byType[Black][Pawn] != 0 {
		return false
	}
	if b.byType[White][Rook] != 0 || b.byType[Black][Rook] != 0 ||
		b.byType[White][Queen] != 0 || b.byType[Black][Queen] != 0 {
		return false
	}
	wMinors := b.byType[White][Knight].count() + b.byType[White][Bishop].count()
	bMinors := b.byType[Black][Knight].count() + b.byType[Black][Bishop].count()
	wBishops := b.byType[White][Bishop].count()
	bBishops := b.byType[Black][Bishop].count()

	switch {
	case wMinors == 0 && bMinors == 0:
		return true // K vs K
	case wMinors == 1 && bMinors == 0, wMinors == 0 && bMinors == 1:
		return true // K+minor vs K
	case wMinors == 2 && bMinors == 0 && wBishops == 0:
		return true // K+N+N vs K (two knights can't force mate)
	case bMinors == 2 && wMinors == 0 && bBishops == 0:
		return true
	default:
		return false
	}
}
