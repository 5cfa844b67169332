package search

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"

	"chess-engine/board"
)

// Pruning/reduction constants, kept at the teacher's searchutil.go values per
// the decision recorded in the grounding ledger: these are empirically-tuned
// numbers, not derivable from the spec, and the teacher's own values are a
// conservative, already-battle-tested starting point.
const (
	rfpMaxDepth      = 8
	rfpMarginPerPly  = 75
	nmpMinDepth      = 3
	nmpBaseReduction = 3
	iirMinDepth      = 4
	lmpBaseCount     = 3
	futilityMaxDepth = 6
	futilityMargin   = 120
	aspirationDelta  = 25
)

// Info is one iterative-deepening iteration's result, handed to the
// front end for UCI "info" output.
type Info struct {
	Depth    int
	SelDepth int
	Score    int32
	Nodes    uint64
	Elapsed  time.Duration
	PV       PVLine
}

// Engine owns everything one search needs across its lifetime: the
// transposition table and move-ordering heuristics (both kept across
// searches until NewGame), and the cooperative stop signal a front end
// uses to interrupt a search in progress.
type Engine struct {
	TT  *Table
	Log logr.Logger

	killers  killerTable
	history  historyTable
	counters counterMoveTable

	nodes   atomic.Uint64
	stop    atomic.Bool
	tm      *TimeManager
	limits  Limits
	rootPos *board.Board

	selDepth int
	onInfo   func(Info)
}

// NewEngine constructs an Engine backed by a hash table of hashMB megabytes.
func NewEngine(hashMB int, log logr.Logger) *Engine {
	return &Engine{TT: NewTable(hashMB), Log: log}
}

// Resize replaces the transposition table with one of a new size, as the UCI
// "setoption name Hash" command requires.
func (e *Engine) Resize(hashMB int) { e.TT = NewTable(hashMB) }

// NewGame clears all state that must not leak across games: the
// transposition table and move-ordering heuristics alike.
func (e *Engine) NewGame() {
	e.TT.Clear()
	e.killers = killerTable{}
	e.history = historyTable{}
	e.counters = counterMoveTable{}
}

// Stop requests that an in-progress search return as soon as it next polls,
// safe to call concurrently with Search from another goroutine.
func (e *Engine) Stop() { e.stop.Store(true) }

// Nodes returns the node count of the most recent (or in-progress) search.
func (e *Engine) Nodes() uint64 { return e.nodes.Load() }

// Search runs iterative deepening from pos under limits, invoking onInfo
// after each completed iteration and returning the best move found. pos is
// used read-only in the sense that every recursive call restores it via
// UnmakeMove/UnmakeNullMove before returning; the caller's board is
// unchanged once Search returns.
func (e *Engine) Search(pos *board.Board, limits Limits, onInfo func(Info)) board.Move {
	e.stop.Store(false)
	e.nodes.Store(0)
	e.limits = limits
	e.rootPos = pos
	e.onInfo = onInfo
	e.tm = NewTimeManager(time.Now(), limits, pos.SideToMove())
	e.TT.NewSearch()

	moves := pos.GenerateLegalMoves()
	if len(moves) == 0 {
		return board.NullMove
	}
	best := moves[0]
	var bestScore int32
	var pv PVLine

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	alpha, beta := -MaxScore, MaxScore
	for depth := 1; depth <= maxDepth; depth++ {
		e.selDepth = depth
		if depth >= 4 {
			alpha = bestScore - aspirationDelta
			beta = bestScore + aspirationDelta
		} else {
			alpha, beta = -MaxScore, MaxScore
		}

		var score int32
		var line PVLine
		delta := int32(aspirationDelta)
		for {
			line.Clear()
			score = e.negamax(pos, depth, 0, alpha, beta, &line, board.NullMove)
			if e.stop.Load() {
				break
			}
			if score <= alpha {
				delta *= 2
				alpha -= delta
				if alpha < -MaxScore {
					alpha = -MaxScore
				}
				continue
			}
			if score >= beta {
				delta *= 2
				beta += delta
				if beta > MaxScore {
					beta = MaxScore
				}
				continue
			}
			break
		}

		if e.stop.Load() && depth > 1 {
			break
		}
		if len(line.Moves) > 0 {
			best = line.Moves[0]
			bestScore = score
			pv = line.Clone()
		}

		if onInfo != nil {
			onInfo(Info{
				Depth:    depth,
				SelDepth: e.selDepth,
				Score:    bestScore,
				Nodes:    e.nodes.Load(),
				Elapsed:  e.tm.Elapsed(),
				PV:       pv,
			})
		}

		if e.tm.ShouldStopHard() {
			break
		}
		if !limits.Infinite && limits.Nodes == 0 && !e.tm.ShouldStartNewIteration() {
			break
		}
		if IsMateScore(bestScore) && MateDistancePlies(bestScore) > 0 && MateDistancePlies(bestScore) <= depth {
			break
		}
	}

	return best
}

// checkStop polls the cooperative stop conditions: an explicit Stop() call,
// the hard time budget, or a node-count limit. Called periodically rather
// than every node since time.Now()/atomic loads are not free.
func (e *Engine) checkStop() bool {
	if e.stop.Load() {
		return true
	}
	if e.limits.Nodes > 0 && e.nodes.Load() >= e.limits.Nodes {
		e.stop.Store(true)
		return true
	}
	if e.tm.HasDeadline() && e.nodes.Load()%2048 == 0 && e.tm.ShouldStopHard() {
		e.stop.Store(true)
		return true
	}
	return false
}

// negamax is principal-variation search over pos: full-window search for the
// first move tried at each node, null-window scout search for the rest, with
// a re-search at full width when a scout search claims to have improved
// alpha. Grounded on the teacher's search.go control flow, rewritten for
// board.Board/board.Move.
func (e *Engine) negamax(pos *board.Board, depth, ply int, alpha, beta int32, pv *PVLine, prevMove board.Move) int32 {
	pv.Clear()
	if ply > e.selDepth {
		e.selDepth = ply
	}

	if ply > 0 && (pos.IsDraw()) {
		return DrawScore
	}
	if ply >= MaxPly {
		return Evaluate(pos)
	}

	e.nodes.Add(1)
	if e.nodes.Load()%1024 == 0 && e.checkStop() {
		return 0
	}

	inCheck := pos.InCheck(pos.SideToMove())
	pvNode := beta-alpha > 1

	if depth <= 0 {
		if inCheck {
			depth = 1 // never drop straight to quiescence while in check
		} else {
			return e.quiescence(pos, ply, alpha, beta)
		}
	}

	origAlpha := alpha
	key := pos.Hash()
	var ttMove board.Move
	if found, m, score, ttDepth, bound := e.TT.Probe(key); found {
		ttMove = m
		if !pvNode && ttDepth >= depth {
			adj := ScoreFromTT(score, ply)
			switch bound {
			case BoundExact:
				return adj
			case BoundLower:
				if adj >= beta {
					return adj
				}
			case BoundUpper:
				if adj <= alpha {
					return adj
				}
			}
		}
	}

	// Internal iterative reduction: with no TT move to try first, a
	// sufficiently deep node is searched one ply shallower, since its move
	// ordering is likely to be poor.
	if ttMove == board.NullMove && depth >= iirMinDepth && !inCheck {
		depth--
	}

	staticEval := Evaluate(pos)

	if !pvNode && !inCheck {
		// Reverse futility pruning: if the static eval already beats beta by
		// more than this depth's margin, assume a full search would too.
		if depth <= rfpMaxDepth && staticEval-int32(rfpMarginPerPly*depth) >= beta {
			return staticEval
		}

		// Null-move pruning: if passing the move entirely still leaves us
		// above beta, the position is so good a real move will too, unless
		// we are in an endgame with only king+pawns where zugzwang makes the
		// null move's assumption unsound.
		if depth >= nmpMinDepth && staticEval >= beta && hasNonPawnMaterial(pos, pos.SideToMove()) {
			st := pos.MakeNullMove()
			var childPV PVLine
			reduction := nmpBaseReduction + depth/4
			score := -e.negamax(pos, depth-1-reduction, ply+1, -beta, -beta+1, &childPV, board.NullMove)
			pos.UnmakeNullMove(st)
			if e.stop.Load() {
				return 0
			}
			if score >= beta {
				return beta
			}
		}
	}

	moves := pos.GenerateLegalMoves()
	if len(moves) == 0 {
		if inCheck {
			return -Mate + int32(ply)
		}
		return DrawScore
	}

	scores := e.orderMoves(pos, moves, ttMove, ply, prevMove)

	var best board.Move
	bestScore := -MaxScore
	legalTried := 0
	var childPV PVLine
	var quietsTried []board.Move

	for i := range moves {
		pickBest(moves, scores, i)
		m := moves[i]

		isQuiet := m.CapturedPiece() == board.NoPiece && m.PromotionType() == board.NoPieceType

		// Late move pruning: at shallow depth, once lmpBaseCount+depth²
		// moves have already been tried, skip the remaining quiet moves --
		// move ordering has almost certainly already surfaced anything
		// worth playing.
		if !pvNode && !inCheck && isQuiet && depth <= 8 && legalTried >= lmpBaseCount+depth*depth {
			continue
		}

		// Futility pruning: a quiet move at a shallow, non-PV, non-check
		// node that cannot plausibly reach alpha even with a generous
		// margin is skipped without being searched.
		if !pvNode && !inCheck && isQuiet && depth <= futilityMaxDepth &&
			staticEval+int32(futilityMargin*depth) <= alpha && legalTried > 0 {
			continue
		}

		ok, st := pos.MakeMove(m)
		if !ok {
			continue
		}
		pos.PushHistory()
		legalTried++
		if isQuiet {
			quietsTried = append(quietsTried, m)
		}
		givesCheck := pos.InCheck(pos.SideToMove())

		var score int32
		newDepth := depth - 1

		if legalTried == 1 {
			score = -e.negamax(pos, newDepth, ply+1, -beta, -alpha, &childPV, m)
		} else {
			reduction := 0
			if depth >= 3 && isQuiet && !inCheck && !givesCheck && legalTried > 3 {
				reduction = lmrReduction(depth, legalTried)
			}
			score = -e.negamax(pos, newDepth-reduction, ply+1, -alpha-1, -alpha, &childPV, m)
			if score > alpha && (reduction > 0 || score < beta) {
				score = -e.negamax(pos, newDepth, ply+1, -beta, -alpha, &childPV, m)
			}
		}

		pos.PopHistory()
		pos.UnmakeMove(m, st)

		if e.stop.Load() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			best = m
			pv.Update(m, childPV)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if isQuiet {
				e.killers.Add(ply, m)
				e.history.Update(pos.SideToMove(), m.From(), m.To(), int32(depth*depth))
				if prevMove != board.NullMove {
					e.counters.Set(prevMove.MovedPiece(), prevMove.To(), m)
				}
				for _, q := range quietsTried[:len(quietsTried)-1] {
					e.history.Update(pos.SideToMove(), q.From(), q.To(), -int32(depth*depth))
				}
			}
			break
		}
	}

	if legalTried == 0 {
		if inCheck {
			return -Mate + int32(ply)
		}
		return DrawScore
	}

	bound := BoundExact
	switch {
	case bestScore <= origAlpha:
		bound = BoundUpper
	case bestScore >= beta:
		bound = BoundLower
	}
	e.TT.Store(key, best, ScoreToTT(bestScore, ply), depth, bound)

	return bestScore
}

// quiescence extends the search along capture sequences past the nominal
// depth limit, so the static evaluation is never trusted in a position where
// a piece is hanging mid-exchange (the horizon effect).
func (e *Engine) quiescence(pos *board.Board, ply int, alpha, beta int32) int32 {
	if ply > e.selDepth {
		e.selDepth = ply
	}
	e.nodes.Add(1)
	if e.nodes.Load()%1024 == 0 && e.checkStop() {
		return 0
	}
	if ply >= MaxPly {
		return Evaluate(pos)
	}

	standPat := Evaluate(pos)
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	captures := pos.GenerateCaptures()
	scores := make([]int32, len(captures))
	for i, m := range captures {
		scores[i] = int32(mvvLvaTable[m.CapturedPiece().Type()][m.MovedPiece().Type()])
	}

	for i := range captures {
		pickBest(captures, scores, i)
		m := captures[i]

		// Delta pruning: a capture that cannot possibly close the gap to
		// alpha even counting the captured piece's full value plus a safety
		// margin is not worth searching.
		if standPat+int32(seeValue[m.CapturedPiece().Type()])+200 <= alpha {
			continue
		}
		if SEE(pos, m) < 0 {
			continue
		}

		ok, st := pos.MakeMove(m)
		if !ok {
			continue
		}
		pos.PushHistory()
		score := -e.quiescence(pos, ply+1, -beta, -alpha)
		pos.PopHistory()
		pos.UnmakeMove(m, st)

		if e.stop.Load() {
			return 0
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			return alpha
		}
	}

	return alpha
}

// hasNonPawnMaterial reports whether c has any piece besides king and pawns,
// the condition under which null-move pruning's "a free tempo still loses"
// assumption holds; in pure king-and-pawn endgames zugzwang can make passing
// the only losing option, so null-move pruning is skipped there.
func hasNonPawnMaterial(b *board.Board, c board.Color) bool {
	return b.PieceBB(c, board.Knight) != 0 || b.PieceBB(c, board.Bishop) != 0 ||
		b.PieceBB(c, board.Rook) != 0 || b.PieceBB(c, board.Queen) != 0
}

// lmrReduction returns the late-move-reduction ply count for the moveIndex'th
// move searched at depth, grounded on the logarithmic shape of the teacher's
// searchutil.go computeLMRReduction (and cross-checked against
// original_source/engine/src/lmr.rs, which uses the same log(depth)*log(move)
// family of formulas).
func lmrReduction(depth, moveIndex int) int {
	r := 0.2 + math.Log(float64(depth))*math.Log(float64(moveIndex))/2.5
	red := int(r)
	if red < 0 {
		red = 0
	}
	if red > depth-2 {
		red = depth - 2
	}
	if red < 0 {
		red = 0
	}
	return red
}
