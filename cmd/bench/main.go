// Command bench is a fixed-position node-count benchmark over the
// iterative-deepening search, grounded on the teacher's cmd/searchbench but
// trimmed to the in-scope search only (no eval-only/move-ordering-only
// debug modes, no HCE tuner options).
package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/go-logr/stdr"

	"chess-engine/board"
	"chess-engine/search"
)

// benchPositions mirrors the standard perft-validation FENs used elsewhere in
// the module (board/perft_test.go), giving the benchmark tactical and quiet
// positions alike rather than just the opening position.
var benchPositions = []string{
	"",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
}

func main() {
	depth := flag.Int("depth", 10, "search depth in plies")
	hashMB := flag.Int("hash", 16, "transposition table size in MB")
	cpuProfile := flag.String("cpuprofile", "", "write a CPU profile to this file")
	memProfile := flag.String("memprofile", "", "write a heap profile to this file after the run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "starting cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer pprof.StopCPUProfile()
	}

	log := stdr.New(stdlog.New(os.Stderr, "", stdlog.LstdFlags))
	limits := search.Limits{Depth: *depth}

	var totalNodes uint64
	start := time.Now()
	for i, fen := range benchPositions {
		pos := board.NewBoard()
		var err error
		if fen != "" {
			pos, err = board.ParseFEN(fen)
			if err != nil {
				fmt.Fprintf(os.Stderr, "position %d: parsing FEN: %v\n", i, err)
				os.Exit(2)
			}
		}

		eng := search.NewEngine(*hashMB, log)
		iterStart := time.Now()
		best := eng.Search(pos, limits, nil)
		iterElapsed := time.Since(iterStart)

		fmt.Printf("position %d: bestmove %s nodes %d time %s\n", i, best.String(), eng.Nodes(), iterElapsed)
		totalNodes += eng.Nodes()
	}
	totalElapsed := time.Since(start)
	nps := float64(totalNodes) / totalElapsed.Seconds()
	fmt.Printf("total: nodes %d time %s nps %.0f\n", totalNodes, totalElapsed, nps)

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "writing memprofile: %v\n", err)
			os.Exit(2)
		}
	}
}
