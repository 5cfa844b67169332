package search

import "chess-engine/board"

// Move-ordering tiers, highest first, grounded on the teacher's
// moveordering.go offsets. Each tier's scores occupy a disjoint numeric band
// so a single int32 score total-orders every move in one sort.
const (
	scoreTTMove      int32 = 2_000_000_000
	scoreGoodCapture int32 = 1_000_000_000
	scorePromotion   int32 = 900_000_000
	scoreKiller      int32 = 800_000_000
	scoreCounter     int32 = 700_000_000
	scoreBadCapture  int32 = -1_000_000_000
)

// mvvLvaTable[victim][attacker] ranks captures by most-valuable-victim,
// least-valuable-attacker, grounded on the teacher's MVV-LVA table shape.
var mvvLvaTable = [7][7]int32{
	board.Pawn:   {0, 15, 14, 13, 12, 11, 10},
	board.Knight: {0, 25, 24, 23, 22, 21, 20},
	board.Bishop: {0, 35, 34, 33, 32, 31, 30},
	board.Rook:   {0, 45, 44, 43, 42, 41, 40},
	board.Queen:  {0, 55, 54, 53, 52, 51, 50},
	board.King:   {0, 0, 0, 0, 0, 0, 0},
}

const historyMax int32 = 16384 // history-gravity cap, spec.md §4.7.5

// killerTable holds two killer-move slots per ply, moves that caused a beta
// cutoff without being captures -- cheap substitutes for full SEE ordering on
// quiet moves that tend to refute sibling positions too.
type killerTable struct {
	moves [MaxPly][2]board.Move
}

func (k *killerTable) Add(ply int, m board.Move) {
	if ply >= MaxPly {
		return
	}
	if k.moves[ply][0] == m {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

func (k *killerTable) Probe(ply int) (board.Move, board.Move) {
	if ply >= MaxPly {
		return board.NullMove, board.NullMove
	}
	return k.moves[ply][0], k.moves[ply][1]
}

// historyTable scores quiet moves by how often they have raised alpha or
// caused a cutoff, indexed by [color][from][to] (the "butterfly" layout).
// Updated with gravity per spec.md §4.7.5 so a move's score decays toward
// its recent behavior rather than accumulating without bound.
type historyTable struct {
	scores [2][64][64]int32
}

func (h *historyTable) Get(c board.Color, from, to board.Square) int32 {
	return h.scores[c][from][to]
}

// Update applies the gravity formula h += delta - h*|delta|/cap to one
// cell: the step shrinks as the score approaches ±cap, so repeated bonuses
// (or maluses) saturate instead of growing without bound (the teacher's
// searchutil.go applies the same decaying-update shape).
func (h *historyTable) Update(c board.Color, from, to board.Square, delta int32) {
	cur := &h.scores[c][from][to]
	*cur += delta - (*cur)*abs32(delta)/historyMax
}

// counterMoveTable records, for each (piece, to-square) that was just played,
// the quiet move that most recently refuted it -- a cheap proxy for "what
// beats this move" without per-position search.
type counterMoveTable struct {
	moves [2][7][64]board.Move
}

func (c *counterMoveTable) Set(lastMoved board.Piece, lastTo board.Square, reply board.Move) {
	c.moves[lastMoved.Color()][lastMoved.Type()][lastTo] = reply
}

func (c *counterMoveTable) Get(lastMoved board.Piece, lastTo board.Square) board.Move {
	return c.moves[lastMoved.Color()][lastMoved.Type()][lastTo]
}

// orderMoves scores every move in place for later incremental selection.
// ttMove (if legal) always sorts first; captures are scored by MVV-LVA with
// SEE-losing captures demoted below quiets; killers and the counter-move to
// the previous ply's move slot in above ordinary history-scored quiets.
func (e *Engine) orderMoves(b *board.Board, moves []board.Move, ttMove board.Move, ply int, prevMove board.Move) []int32 {
	scores := make([]int32, len(moves))
	k1, k2 := e.killers.Probe(ply)
	var counter board.Move
	if prevMove != board.NullMove {
		counter = e.counters.Get(prevMove.MovedPiece(), prevMove.To())
	}
	side := b.SideToMove()

	for i, m := range moves {
		switch {
		case m == ttMove:
			scores[i] = scoreTTMove
		case m.CapturedPiece() != board.NoPiece:
			mvvLva := mvvLvaTable[m.CapturedPiece().Type()][m.MovedPiece().Type()]
			if SEE(b, m) >= 0 {
				scores[i] = scoreGoodCapture + mvvLva
			} else {
				scores[i] = scoreBadCapture + mvvLva
			}
		case m.PromotionType() != board.NoPieceType:
			scores[i] = scorePromotion + int32(m.PromotionType())
		case m == k1:
			scores[i] = scoreKiller + 1
		case m == k2:
			scores[i] = scoreKiller
		case counter != board.NullMove && m == counter:
			scores[i] = scoreCounter
		default:
			scores[i] = e.history.Get(side, m.From(), m.To())
		}
	}
	return scores
}

// pickBest selects the highest-scoring move remaining at or after idx and
// swaps it into place, an in-place selection sort that avoids scoring or
// sorting moves the search ends up pruning before it reaches them.
func pickBest(moves []board.Move, scores []int32, idx int) {
	best := idx
	for i := idx + 1; i < len(moves); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	if best != idx {
		moves[idx], moves[best] = moves[best], moves[idx]
		scores[idx], scores[best] = scores[best], scores[idx]
	}
}
