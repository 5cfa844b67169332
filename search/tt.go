package search

import (
	"sync/atomic"

	"chess-engine/board"
)

// Bound records which side of the search window a stored score came from,
// grounded on the teacher's transposition.go EXACT/ALPHA/BETA tags.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower // fail-high: score is at least this good (beta cutoff)
	BoundUpper // fail-low: score is at most this good (alpha never raised)
)

// ttEntry is one transposition slot of 24 bytes in memory (19 bytes of
// fields plus padding; the move is a 32-bit value). age distinguishes entries
// from the current search versus a stale prior one (REDESIGN: the teacher's
// transposition table had no generation counter and so aged-out good entries
// competed on depth alone against fresher shallow ones; here age always wins
// replacement ties against an older generation regardless of depth).
type ttEntry struct {
	key   uint64
	move  board.Move
	score int32
	depth int8
	bound Bound
	age   uint8
}

// Table is a fixed-size, directly-indexed transposition table. One entry per
// bucket (no multi-way set-associativity, matching the teacher's design);
// collisions are resolved by a depth-and-age replacement policy.
type Table struct {
	entries []ttEntry
	mask    uint64
	age     uint8
	hits    atomic.Uint64
	probes  atomic.Uint64
}

// NewTable allocates a table sized to hold roughly sizeMB megabytes of
// entries, rounded down to a power of two slot count so key-to-index is a
// mask instead of a modulo.
func NewTable(sizeMB int) *Table {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	const entrySize = 24 // approximate in-memory size of ttEntry incl. padding
	slots := (sizeMB * 1024 * 1024) / entrySize
	if slots < 1024 {
		slots = 1024
	}
	pow := 1
	for pow*2 <= slots {
		pow *= 2
	}
	return &Table{entries: make([]ttEntry, pow), mask: uint64(pow - 1)}
}

// Clear zeroes every slot and resets the generation counter, used by
// ucinewgame so no position from a prior game can leak into this one.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = ttEntry{}
	}
	t.age = 0
	t.hits.Store(0)
	t.probes.Store(0)
}

// NewSearch bumps the generation counter at the start of each top-level
// search (not each ucinewgame), so entries from an earlier search in the same
// game are preferred for replacement over entries just written this search.
func (t *Table) NewSearch() {
	t.age++
}

func (t *Table) index(key uint64) uint64 { return key & t.mask }

// Probe looks up key and reports whether a usable entry was found, along
// with its stored move (zero value if none), score, depth and bound.
func (t *Table) Probe(key uint64) (found bool, move board.Move, score int32, depth int, bound Bound) {
	t.probes.Add(1)
	e := &t.entries[t.index(key)]
	if e.key != key || e.bound == BoundNone {
		return false, board.NullMove, 0, 0, BoundNone
	}
	t.hits.Add(1)
	return true, e.move, e.score, int(e.depth), e.bound
}

// Store writes an entry, replacing the current occupant of its slot unless
// the occupant is from the same search generation and searched deeper
// (depth-preferred replacement within a generation, always-replace across
// generations and into empty slots).
func (t *Table) Store(key uint64, move board.Move, score int32, depth int, bound Bound) {
	idx := t.index(key)
	e := &t.entries[idx]
	if e.bound != BoundNone && e.age == t.age && int(e.depth) > depth {
		return
	}
	e.key = key
	e.move = move
	e.score = score
	e.depth = int8(depth)
	e.bound = bound
	e.age = t.age
}

// HashfullPermille estimates table occupancy in parts-per-thousand for the
// UCI "info hashfull" field, sampling the first 1000 slots as the teacher's
// transposition.go does.
func (t *Table) HashfullPermille() int {
	n := len(t.entries)
	if n == 0 {
		return 0
	}
	sample := 1000
	if sample > n {
		sample = n
	}
	var used int
	for i := 0; i < sample; i++ {
		if t.entries[i].bound != BoundNone && t.entries[i].age == t.age {
			used++
		}
	}
	return used * 1000 / sample
}

// ScoreToTT converts a search score (mate distance measured from the root)
// to a storage score (mate distance measured from the current node), so a
// mate score found deep in one branch still reads correctly when retrieved
// from a different ply (spec.md §4.6's ply-relative mate encoding).
func ScoreToTT(score int32, ply int) int32 {
	if score >= Mate-int32(MaxPly) {
		return score + int32(ply)
	}
	if score <= -Mate+int32(MaxPly) {
		return score - int32(ply)
	}
	return score
}

// ScoreFromTT is ScoreToTT's inverse, applied when reading a stored score
// back into the current node's ply-relative frame.
func ScoreFromTT(score int32, ply int) int32 {
	if score >= Mate-int32(MaxPly) {
		return score - int32(ply)
	}
	if score <= -Mate+int32(MaxPly) {
		return score + int32(ply)
	}
	return score
}
