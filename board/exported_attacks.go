package board

// The functions below expose the package's internal attack tables to other
// packages (search's static-exchange evaluation recomputes attackers against
// a hypothetically-thinned occupancy as a capture sequence is swapped off,
// which needs the same per-piece-type attack primitives movegen.go uses
// internally).

// PawnAttackersTo returns the squares from which a pawn of color by would
// attack sq -- the reverse of a pawn's own attack set, found by looking up
// the opposite color's attack pattern at sq (the same trick IsSquareAttacked
// uses internally).
func PawnAttackersTo(sq Square, by Color) Bitboard { return pawnAttacks[by.Opponent()][sq] }

// KnightAttacksFrom returns the squares a knight on sq attacks.
func KnightAttacksFrom(sq Square) Bitboard { return knightAttacks[sq] }

// KingAttacksFrom returns the squares a king on sq attacks.
func KingAttacksFrom(sq Square) Bitboard { return kingAttacks[sq] }

// BishopAttacksFrom returns a bishop's attack set from sq given occupancy occ.
func BishopAttacksFrom(sq Square, occ Bitboard) Bitboard { return bishopAttacks(sq, occ) }

// RookAttacksFrom returns a rook's attack set from sq given occupancy occ.
func RookAttacksFrom(sq Square, occ Bitboard) Bitboard { return rookAttacks(sq, occ) }
