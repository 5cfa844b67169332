package search

import (
	"time"

	"chess-engine/board"
)

// overheadMs is subtracted from the clock to leave room for process
// scheduling and UCI I/O latency between the engine deciding to stop and the
// GUI actually seeing "bestmove", grounded on the teacher's
// time_management.go safety margin.
const overheadMs = 30

// TimeManager computes soft and hard search-time budgets from the `go`
// command's clock parameters, redesigned to the closed-form formulas of
// spec.md §4.8 in place of the teacher's time_management.go, whose
// move-counter-based adjustments produced budgets inconsistent across
// otherwise-identical clock states.
type TimeManager struct {
	start time.Time
	soft  time.Duration
	hard  time.Duration
	fixed bool // true for go movetime: only hard matters, soft == hard
}

// NewTimeManager derives soft/hard budgets for the side to move from limits,
// started at `start` (normally the instant the `go` command was received).
// When neither a clock nor movetime is given (e.g. go infinite), or when
// go depth / go nodes is given without movetime (the clock is then
// ignored), the manager imposes no deadline and Elapsed-based checks never
// fire. A given movetime or clock always yields a deadline of at least 1ms.
func NewTimeManager(start time.Time, limits Limits, us board.Color) *TimeManager {
	tm := &TimeManager{start: start}

	if limits.MoveTime > 0 {
		tm.fixed = true
		tm.hard = time.Duration(limits.MoveTime-overheadMs) * time.Millisecond
		if tm.hard < time.Millisecond {
			tm.hard = time.Millisecond
		}
		tm.soft = tm.hard
		return tm
	}
	if limits.Depth > 0 || limits.Nodes > 0 {
		return tm
	}

	remaining := limits.WTimeMs
	inc := limits.WIncMs
	if us == board.Black {
		remaining = limits.BTimeMs
		inc = limits.BIncMs
	}
	if remaining <= 0 {
		return tm // no clock given: go infinite
	}

	movesToGo := limits.MovesToGo
	if movesToGo < 30 {
		movesToGo = 30
	}

	remainingF := float64(remaining - overheadMs)
	if remainingF < 0 {
		remainingF = 0
	}
	base := remainingF/float64(movesToGo) + float64(inc)*0.75

	hardCap := remainingF - overheadMs
	hardMs := base * 3
	if hardMs > hardCap {
		hardMs = hardCap
	}
	if hardMs < 1 {
		hardMs = 1
	}
	if base < 0 {
		base = 0
	}

	tm.soft = time.Duration(base) * time.Millisecond
	tm.hard = time.Duration(hardMs) * time.Millisecond
	return tm
}

// Elapsed reports time spent searching so far.
func (tm *TimeManager) Elapsed() time.Duration { return time.Since(tm.start) }

// HasDeadline reports whether this manager imposes any time limit at all.
func (tm *TimeManager) HasDeadline() bool { return tm.hard > 0 }

// ShouldStopHard reports whether the hard budget, past which the search must
// abort mid-iteration rather than return a possibly-incomplete move, has
// been exceeded.
func (tm *TimeManager) ShouldStopHard() bool {
	return tm.HasDeadline() && tm.Elapsed() >= tm.hard
}

// ShouldStartNewIteration reports whether there is enough of the soft budget
// left to be worth starting another iterative-deepening iteration. Each
// iteration costs roughly as much as all previous ones combined, so the
// remaining soft budget should comfortably exceed a fraction of what has
// elapsed, not merely be nonzero.
func (tm *TimeManager) ShouldStartNewIteration() bool {
	if !tm.HasDeadline() {
		return true
	}
	if tm.fixed {
		return tm.Elapsed() < tm.soft
	}
	return tm.Elapsed() < tm.soft/2
}
