package board

import (
	"fmt"
	"strings"
)

// Move packs a chess move into a single 32-bit value: from/to squares plus
// the moved and captured piece and any promotion, so move ordering, SEE and
// check detection can all work from the move alone without re-deriving
// piece identity from the board.
type Move uint32

const (
	moveFromShift    = 0
	moveToShift      = 6
	movePieceShift   = 12
	moveCaptureShift = 16
	movePromoteShift = 20
	moveFlagShift    = 24
)

// Special move classes that aren't implied by promotion alone.
const (
	FlagNone uint8 = iota
	FlagCastle
	FlagEnPassant
	FlagDoublePawnPush
)

// NewMove packs a move's components into a Move value.
func NewMove(from, to Square, piece, captured, promotion Piece, flag uint8) Move {
	return Move(uint32(from&0x3F) |
		(uint32(to&0x3F) << moveToShift) |
		(uint32(piece&0xF) << movePieceShift) |
		(uint32(captured&0xF) << moveCaptureShift) |
		(uint32(promotion&0xF) << movePromoteShift) |
		(uint32(flag&0x7) << moveFlagShift))
}

func (m Move) From() Square             { return Square((uint32(m) >> moveFromShift) & 0x3F) }
func (m Move) To() Square               { return Square((uint32(m) >> moveToShift) & 0x3F) }
func (m Move) MovedPiece() Piece        { return Piece((uint32(m) >> movePieceShift) & 0xF) }
func (m Move) CapturedPiece() Piece     { return Piece((uint32(m) >> moveCaptureShift) & 0xF) }
func (m Move) PromotionPiece() Piece    { return Piece((uint32(m) >> movePromoteShift) & 0xF) }
func (m Move) PromotionType() PieceType { return m.PromotionPiece().Type() }
func (m Move) Flag() uint8              { return uint8((uint32(m) >> moveFlagShift) & 0x7) }
func (m Move) IsCapture() bool          { return m.CapturedPiece() != NoPiece }
func (m Move) IsPromotion() bool        { return m.PromotionPiece() != NoPiece }
func (m Move) IsCastle() bool           { return m.Flag() == FlagCastle }
func (m Move) IsEnPassant() bool        { return m.Flag() == FlagEnPassant }

// NullMove is the zero value and never a legal move; used as a TT/ordering
// sentinel for "no move".
const NullMove Move = 0

// String renders the move in long algebraic notation, e.g. "e2e4", "e7e8q".
func (m Move) String() string {
	from, to := m.From(), m.To()
	s := strings.Builder{}
	s.WriteByte('a' + byte(from.File()))
	s.WriteByte('1' + byte(from.Rank()))
	s.WriteByte('a' + byte(to.File()))
	s.WriteByte('1' + byte(to.Rank()))
	if promo := m.PromotionPiece(); promo != NoPiece {
		s.WriteString(strings.ToLower(pieceLetter(promo)))
	}
	return s.String()
}

// GivesCheck reports whether playing m (assumed pseudo-legal for the side
// to move) would leave the opponent's king in check. It works against a
// scratch copy rather than mutating the receiver.
func (b *Board) GivesCheck(m Move) bool {
	scratch := b.Clone()
	scratch.MakeMove(m)
	them := m.MovedPiece().Color().Opponent()
	return scratch.InCheck(them)
}

var promoLetters = map[byte]PieceType{'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight}

// ParseMove resolves a long-algebraic UCI move string (e2e4, e7e8q) against
// the legal moves available in the current position. Moves are never
// constructed from the string alone: the board supplies flags, the captured
// piece, and which of the four promotion choices was meant.
func (b *Board) ParseMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NullMove, fmt.Errorf("board: malformed UCI move %q", s)
	}
	from, err := parseSquareName(s[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("board: invalid from-square in move %q: %w", s, err)
	}
	to, err := parseSquareName(s[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("board: invalid to-square in move %q: %w", s, err)
	}
	var wantPromo PieceType
	if len(s) == 5 {
		pt, ok := promoLetters[s[4]]
		if !ok {
			return NullMove, fmt.Errorf("board: invalid promotion letter in move %q", s)
		}
		wantPromo = pt
	}
	for _, m := range b.GenerateLegalMoves() {
		if m.From() != from || m.To() != to {
			continue
		}
		if m.PromotionType() != wantPromo {
			continue
		}
		return m, nil
	}
	return NullMove, fmt.Errorf("board: %q is not a legal move in this position", s)
}
