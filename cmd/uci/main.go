// Command uci is a minimal line-oriented UCI front end wired to
// chess-engine/uciengine. It owns the protocol surface spec.md §1 and §6
// place outside the core: tokenizing a command line and dispatching to a
// uciengine.Session method is all it does. It is deliberately thin, kept for
// the same reason the teacher keeps a root uci.go: so the module is runnable
// end-to-end without pulling in the parser/dispatcher complexity spec.md
// declares out-of-scope.
package main

import (
	"bufio"
	"fmt"
	stdlog "log"
	"os"
	"strconv"
	"strings"

	"github.com/go-logr/stdr"

	"chess-engine/board"
	"chess-engine/search"
	"chess-engine/uciengine"
)

func main() {
	log := stdr.New(stdlog.New(os.Stderr, "", stdlog.LstdFlags))
	sess := uciengine.NewSession(log)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tokens := strings.Fields(line)
		switch strings.ToLower(tokens[0]) {
		case "uci":
			handleUCI()
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			sess.NewGame()
		case "setoption":
			handleSetOption(sess, tokens)
		case "position":
			handlePosition(sess, tokens)
		case "go":
			handleGo(sess, tokens)
		case "stop":
			sess.Stop()
		case "quit":
			sess.Stop()
			sess.Wait()
			return
		default:
			fmt.Println("info string unknown command:", tokens[0])
		}
	}
}

func handleUCI() {
	fmt.Println("id name chess-engine")
	fmt.Println("id author the module author")
	fmt.Println("option name Hash type spin default 16 min 1 max 1024")
	fmt.Println("option name Threads type spin default 1 min 1 max 1")
	fmt.Println("uciok")
}

func handleSetOption(sess *uciengine.Session, tokens []string) {
	// "setoption name <name> value <value>"
	var name, value strings.Builder
	mode := ""
	for _, tok := range tokens[1:] {
		switch strings.ToLower(tok) {
		case "name":
			mode = "name"
			continue
		case "value":
			mode = "value"
			continue
		}
		switch mode {
		case "name":
			if name.Len() > 0 {
				name.WriteByte(' ')
			}
			name.WriteString(tok)
		case "value":
			if value.Len() > 0 {
				value.WriteByte(' ')
			}
			value.WriteString(tok)
		}
	}
	if err := sess.SetOption(name.String(), value.String()); err != nil {
		fmt.Println("info string", err)
	}
}

func handlePosition(sess *uciengine.Session, tokens []string) {
	if len(tokens) < 2 {
		fmt.Println("info string malformed position command")
		return
	}
	rest := tokens[1:]
	fen := ""
	var moveTokens []string
	switch strings.ToLower(rest[0]) {
	case "startpos":
		rest = rest[1:]
	case "fen":
		rest = rest[1:]
		i := 0
		for i < len(rest) && strings.ToLower(rest[i]) != "moves" {
			i++
		}
		fen = strings.Join(rest[:i], " ")
		rest = rest[i:]
	default:
		fmt.Println("info string invalid position subcommand:", rest[0])
		return
	}
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		moveTokens = rest[1:]
	}
	if err := sess.SetPosition(fen, moveTokens); err != nil {
		fmt.Println("info string", err)
	}
}

func handleGo(sess *uciengine.Session, tokens []string) {
	limits := search.Limits{}
	args := tokens[1:]
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "infinite":
			limits.Infinite = true
		case "depth":
			i++
			if v, err := parseIntArg(args, i); err == nil {
				limits.Depth = v
			}
		case "nodes":
			i++
			if v, err := parseIntArg(args, i); err == nil {
				limits.Nodes = uint64(v)
			}
		case "movetime":
			i++
			if v, err := parseIntArg(args, i); err == nil {
				limits.MoveTime = int64(v)
			}
		case "wtime":
			i++
			if v, err := parseIntArg(args, i); err == nil {
				limits.WTimeMs = int64(v)
			}
		case "btime":
			i++
			if v, err := parseIntArg(args, i); err == nil {
				limits.BTimeMs = int64(v)
			}
		case "winc":
			i++
			if v, err := parseIntArg(args, i); err == nil {
				limits.WIncMs = int64(v)
			}
		case "binc":
			i++
			if v, err := parseIntArg(args, i); err == nil {
				limits.BIncMs = int64(v)
			}
		case "movestogo":
			i++
			if v, err := parseIntArg(args, i); err == nil {
				limits.MovesToGo = v
			}
		case "ponder":
			// accepted, not implemented: search runs as if non-ponder.
		default:
			fmt.Println("info string unknown go subcommand:", args[i])
		}
	}

	onInfo := func(info search.Info) {
		nps := uint64(0)
		if info.Elapsed > 0 {
			nps = uint64(float64(info.Nodes) / info.Elapsed.Seconds())
		}
		fmt.Printf("info depth %d seldepth %d score %s nodes %d nps %d time %d pv%s\n",
			info.Depth, info.SelDepth, search.UCIScore(info.Score), info.Nodes, nps,
			info.Elapsed.Milliseconds(), info.PV.String())
	}
	onBestMove := func(m board.Move) {
		if m == board.NullMove {
			fmt.Println("bestmove 0000")
			return
		}
		fmt.Println("bestmove", m.String())
	}
	sess.Go(limits, onInfo, onBestMove)
}

func parseIntArg(args []string, i int) (int, error) {
	if i < 0 || i >= len(args) {
		return 0, fmt.Errorf("missing value")
	}
	return strconv.Atoi(args[i])
}
