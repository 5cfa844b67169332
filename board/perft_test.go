package board

import "testing"

// The six standard perft positions from the Chess Programming Wiki, used to
// validate the legal move generator against canonical node counts.
func TestPerftStartpos(t *testing.T) {
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		{5, 4865609},
		{6, 119060324},
	}
	for _, c := range cases {
		b := NewBoard()
		if got := b.Perft(c.depth); got != c.want {
			t.Errorf("startpos depth %d: got %d want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
		{4, 4085603},
		{5, 193690690},
	}
	for _, c := range cases {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN: %v", err)
		}
		if got := b.Perft(c.depth); got != c.want {
			t.Errorf("kiwipete depth %d: got %d want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPosition3(t *testing.T) {
	fen := "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
		{5, 674624},
	}
	for _, c := range cases {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN: %v", err)
		}
		if got := b.Perft(c.depth); got != c.want {
			t.Errorf("position3 depth %d: got %d want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPosition4(t *testing.T) {
	fen := "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 6},
		{2, 264},
		{3, 9467},
		{4, 422333},
	}
	for _, c := range cases {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN: %v", err)
		}
		if got := b.Perft(c.depth); got != c.want {
			t.Errorf("position4 depth %d: got %d want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPosition5(t *testing.T) {
	fen := "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 44},
		{2, 1486},
		{3, 62379},
		{4, 2103487},
	}
	for _, c := range cases {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN: %v", err)
		}
		if got := b.Perft(c.depth); got != c.want {
			t.Errorf("position5 depth %d: got %d want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPosition6(t *testing.T) {
	fen := "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10"
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 46},
		{2, 2079},
		{3, 89890},
		{4, 3894594},
	}
	for _, c := range cases {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN: %v", err)
		}
		if got := b.Perft(c.depth); got != c.want {
			t.Errorf("position6 depth %d: got %d want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	b := NewBoard()
	div := b.PerftDivide(3)
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if want := b.Perft(3); sum != want {
		t.Errorf("divide sum %d != perft %d", sum, want)
	}
}
