package search

import "strconv"

// IsMateScore reports whether score encodes a forced mate rather than a
// centipawn evaluation.
func IsMateScore(score int32) bool { return abs32(score) >= Mate-int32(MaxPly) }

// MateDistancePlies returns the number of plies to the encoded mate, positive
// if the side to move delivers it, negative if it is delivered against them.
// Only meaningful when IsMateScore(score) is true.
func MateDistancePlies(score int32) int {
	if score > 0 {
		return int(Mate - score)
	}
	return -int(Mate + score)
}

// UCIScore renders score as a UCI "score" info-string token, grounded on the
// teacher's searchutil.go getMateOrCPScore: "cp N" for ordinary evaluations,
// "mate N" (in full moves, not plies, rounding toward the mating side) for
// forced mates.
func UCIScore(score int32) string {
	if !IsMateScore(score) {
		return "cp " + strconv.Itoa(int(score))
	}
	plies := MateDistancePlies(score)
	moves := (plies + 1) / 2
	if plies < 0 {
		moves = -((-plies + 1) / 2)
	}
	return "mate " + strconv.Itoa(moves)
}
