package board

import (
	"fmt"
	"strconv"
	"strings"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceChars = map[rune]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop, 'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop, 'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

func pieceLetter(p Piece) string {
	for ch, pc := range pieceChars {
		if pc == p {
			return string(ch)
		}
	}
	return "?"
}

// ParseFEN builds a Board from a Forsyth-Edwards string.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("board: FEN needs at least 4 fields, got %d", len(fields))
	}

	b := &Board{enPassantSquare: NoSquare}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("board: FEN piece placement must have 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			switch {
			case ch >= '1' && ch <= '8':
				file += int(ch - '0')
			default:
				p, ok := pieceChars[ch]
				if !ok {
					return nil, fmt.Errorf("board: unrecognized FEN piece char %q", ch)
				}
				if file >= 8 {
					return nil, fmt.Errorf("board: too many squares on rank %d", rank+1)
				}
				b.setPiece(squareOf(file, rank), p)
				file++
			}
		}
		if file != 8 {
			return nil, fmt.Errorf("board: rank %d does not sum to 8 files", rank+1)
		}
	}

	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return nil, fmt.Errorf("board: side to move must be w or b, got %q", fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				b.castlingRights |= CastleWhiteKingside
			case 'Q':
				b.castlingRights |= CastleWhiteQueenside
			case 'k':
				b.castlingRights |= CastleBlackKingside
			case 'q':
				b.castlingRights |= CastleBlackQueenside
			default:
				return nil, fmt.Errorf("board: unrecognized castling char %q", ch)
			}
		}
	}

	if fields[3] != "-" {
		sq, err := parseSquareName(fields[3])
		if err != nil {
			return nil, fmt.Errorf("board: invalid en-passant square: %w", err)
		}
		b.enPassantSquare = sq
	}

	b.halfmoveClock = 0
	b.fullmoveNumber = 1
	if len(fields) >= 5 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			b.halfmoveClock = n
		}
	}
	if len(fields) >= 6 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			b.fullmoveNumber = n
		}
	}

	b.zobristKey = b.computeZobrist()
	return b, nil
}

func parseSquareName(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("square %q must be 2 characters", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("square %q out of range", s)
	}
	return squareOf(file, rank), nil
}

// ToFEN renders the current position as a FEN string.
func (b *Board) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.pieces[squareOf(file, rank)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pieceLetter(p))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if b.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if b.castlingRights&CastleWhiteKingside != 0 {
			sb.WriteByte('K')
		}
		if b.castlingRights&CastleWhiteQueenside != 0 {
			sb.WriteByte('Q')
		}
		if b.castlingRights&CastleBlackKingside != 0 {
			sb.WriteByte('k')
		}
		if b.castlingRights&CastleBlackQueenside != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	if b.enPassantSquare == NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteByte('a' + byte(b.enPassantSquare.File()))
		sb.WriteByte('1' + byte(b.enPassantSquare.Rank()))
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}
