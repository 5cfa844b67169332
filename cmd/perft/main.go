// Command perft is the move-generator validator spec.md §1 places outside
// the core: it drives board.Board.Perft/PerftDivide from a FEN and reports
// node counts, grounded on the teacher's cmd/perft.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"chess-engine/board"
)

func main() {
	fen := flag.String("fen", "", "FEN string (defaults to the starting position)")
	depth := flag.Int("depth", 0, "perft depth (required, > 0)")
	divide := flag.Bool("divide", false, "print per-root-move node counts instead of the total")
	repeat := flag.Int("repeat", 1, "repeat the run N times and report aggregate timing")
	label := flag.String("label", "", "optional label prefix for the one-line timing output")
	cpuProfile := flag.String("cpuprofile", "", "write a CPU profile to this file during the run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	var b *board.Board
	var err error
	if *fen == "" {
		b = board.NewBoard()
	} else {
		b, err = board.ParseFEN(*fen)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "parsing FEN: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := b.PerftDivide(*depth)
		type kv struct {
			move string
			n    uint64
		}
		entries := make([]kv, 0, len(div))
		var total uint64
		for move, n := range div {
			entries = append(entries, kv{move, n})
			total += n
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].move < entries[j].move })
		for _, e := range entries {
			fmt.Printf("%s: %d\n", e.move, e.n)
		}
		fmt.Printf("Total: %d\n", total)
		return
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

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += b.Perft(*depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()
	fmt.Printf("%s\tdepth %d\tnodes %d\ttime %s\tnps %.0f\n", *label, *depth, totalNodes, elapsed, nps)
}
