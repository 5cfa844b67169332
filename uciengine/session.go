// Package uciengine coordinates one running engine instance: the board, the
// search.Engine, and the cooperative concurrency between a front end reading
// UCI commands and a search running on its own goroutine.
package uciengine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"chess-engine/board"
	"chess-engine/search"
)

const (
	defaultHashMB = 16
	minHashMB     = 1
	maxHashMB     = 1024
)

// Options holds the UCI-configurable engine parameters exposed via
// "setoption".
type Options struct {
	HashMB  int
	Threads int // accepted for UCI compatibility; search stays single-threaded (spec.md §5)
}

// DefaultOptions returns the engine's out-of-the-box option values.
func DefaultOptions() Options { return Options{HashMB: defaultHashMB, Threads: 1} }

// Session is one UCI engine instance: a position, a search.Engine, and the
// plumbing that lets "stop" interrupt a "go" running on another goroutine.
// One Session per running engine process.
type Session struct {
	log    logr.Logger
	opts   Options
	engine *search.Engine
	pos    *board.Board

	mu        sync.Mutex
	searching atomic.Bool
	group     *errgroup.Group
	cancel    context.CancelFunc
}

// NewSession constructs a Session with default options and the standard
// starting position, logging ambient (non-protocol) events through log.
func NewSession(log logr.Logger) *Session {
	opts := DefaultOptions()
	return &Session{
		log:    log,
		opts:   opts,
		engine: search.NewEngine(opts.HashMB, log),
		pos:    board.NewBoard(),
	}
}

// SetOption applies one UCI "setoption name X value Y" command. Unknown
// option names are logged and otherwise ignored, matching UCI's requirement
// that engines tolerate options they don't implement.
func (s *Session) SetOption(name, value string) error {
	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("uciengine: invalid Hash value %q: %w", value, err)
		}
		if mb < minHashMB {
			mb = minHashMB
		}
		if mb > maxHashMB {
			mb = maxHashMB
		}
		s.opts.HashMB = mb
		s.engine.Resize(mb)
	case "threads":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("uciengine: invalid Threads value %q: %w", value, err)
		}
		s.opts.Threads = n
	default:
		s.log.V(1).Info("ignoring unknown UCI option", "name", name, "value", value)
	}
	return nil
}

// Options returns the session's current option values.
func (s *Session) Options() Options { return s.opts }

// NewGame resets all state that must not survive across games: the
// transposition table and move-ordering history, and the position.
func (s *Session) NewGame() {
	s.engine.NewGame()
	s.pos = board.NewBoard()
}

// SetPosition replaces the current position with fen (or the standard
// starting position if fen is empty) and replays moves on top of it,
// recording each intermediate position for repetition detection.
func (s *Session) SetPosition(fen string, moves []string) error {
	var b *board.Board
	var err error
	if fen == "" {
		b = board.NewBoard()
	} else {
		b, err = board.ParseFEN(fen)
		if err != nil {
			return fmt.Errorf("uciengine: %w", err)
		}
	}
	b.PushHistory()
	for _, uci := range moves {
		m, err := b.ParseMove(uci)
		if err != nil {
			return fmt.Errorf("uciengine: replaying move %q: %w", uci, err)
		}
		ok, _ := b.MakeMove(m)
		if !ok {
			return fmt.Errorf("uciengine: move %q rejected as illegal", uci)
		}
		b.PushHistory()
	}
	s.pos = b
	return nil
}

// Go starts a search under limits on a background goroutine, calling onInfo
// after every completed iteration and onBestMove exactly once when the
// search concludes, whether by running out of time or depth or by an
// explicit Stop. Go returns immediately; callers must not call Go again
// before onBestMove fires.
func (s *Session) Go(limits search.Limits, onInfo func(search.Info), onBestMove func(board.Move)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searching.Load() {
		s.log.Info("go received while a search is already running, ignoring")
		return
	}
	s.searching.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	g, ctx := errgroup.WithContext(ctx)
	s.group = g

	pos := s.pos.Clone()
	searchID := uuid.New()

	g.Go(func() error {
		defer s.searching.Store(false)
		log := s.log.WithValues("searchID", searchID.String())
		log.V(1).Info("search started", "depth", limits.Depth, "movetime", limits.MoveTime)

		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				s.engine.Stop()
			case <-done:
			}
		}()

		best := s.engine.Search(pos, limits, onInfo)
		log.V(1).Info("search finished", "nodes", s.engine.Nodes(), "bestmove", best.String())
		if onBestMove != nil {
			onBestMove(best)
		}
		return nil
	})
}

// Stop requests that the in-progress search, if any, return its best move
// immediately.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Wait blocks until the current search (if any) has finished and invoked its
// onBestMove callback, used on "quit" before process exit to avoid leaking
// the search goroutine.
func (s *Session) Wait() {
	s.mu.Lock()
	g := s.group
	s.mu.Unlock()
	if g != nil {
		g.Wait()
	}
}

// IsSearching reports whether a search is currently running.
func (s *Session) IsSearching() bool { return s.searching.Load() }

// Position exposes the current board for read-only inspection (debug
// printing, perft-from-position) outside of Go/SetPosition.
func (s *Session) Position() *board.Board { return s.pos }
