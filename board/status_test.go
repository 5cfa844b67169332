package board

import "testing"

func TestCheckmate_FoolsMate(t *testing.T) {
	fen := "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !b.InCheck(White) {
		t.Fatalf("expected White to be in check")
	}
	if b.HasLegalMoves() {
		t.Fatalf("expected no legal moves for White in mate")
	}
	if !b.InCheckmate() {
		t.Fatalf("expected checkmate for White")
	}
	if b.InStalemate() {
		t.Fatalf("not stalemate in mate position")
	}
}

func TestStalemate_Basic(t *testing.T) {
	// Classic minimal stalemate: Black king h8, White king f7, White queen g6.
	fen := "7k/5K2/6Q1/8/8/8/8/8 b - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if b.InCheck(Black) {
		t.Fatalf("expected Black not in check")
	}
	if b.HasLegalMoves() {
		t.Fatalf("expected no legal moves for Black")
	}
	if !b.InStalemate() {
		t.Fatalf("expected stalemate")
	}
	if b.InCheckmate() {
		t.Fatalf("not checkmate in stalemate position")
	}
}

func TestInsufficientMaterial_KingsOnly(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsInsufficientMaterial() {
		t.Fatalf("K vs K should be insufficient material")
	}
}

func TestInsufficientMaterial_KingAndMinorVsKing(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/8/8/8/3NK3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsInsufficientMaterial() {
		t.Fatalf("K+N vs K should be insufficient material")
	}
}

func TestInsufficientMaterial_KingTwoKnightsVsKing(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/8/8/8/2NNK3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsInsufficientMaterial() {
		t.Fatalf("K+N+N vs K should be insufficient material")
	}
}

func TestInsufficientMaterial_NotWithRook(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if b.IsInsufficientMaterial() {
		t.Fatalf("K+R vs K has mating material")
	}
}

func TestDrawByFiftyMoves(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 100 60")
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsDrawByFiftyMoves() {
		t.Fatalf("halfmove clock at 100 should trigger the fifty-move rule")
	}
	if !b.IsDraw() {
		t.Fatalf("IsDraw should report true on the fifty-move rule")
	}
}

func TestThreefoldRepetition_KnightShuffle(t *testing.T) {
	b := NewBoard()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	b.PushHistory()
	// Repeat the shuffle three times; the position after the third repeat
	// (back at the start position, knights home) must be a draw.
	for rep := 0; rep < 3; rep++ {
		for _, uci := range shuffle {
			m, err := b.ParseMove(uci)
			if err != nil {
				t.Fatalf("ParseMove(%q): %v", uci, err)
			}
			ok, _ := b.MakeMove(m)
			if !ok {
				t.Fatalf("MakeMove(%q) rejected", uci)
			}
			b.PushHistory()
		}
	}
	if !b.IsDrawByRepetition() {
		t.Fatalf("expected threefold repetition after three knight shuffles")
	}
}

func TestIsSquareAttacked_RookOnFile(t *testing.T) {
	b, err := ParseFEN("4r3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !b.InCheck(White) {
		t.Fatalf("expected White in check from rook on e-file")
	}
	if !b.IsSquareAttacked(4, Black) {
		t.Fatalf("expected e1 attacked by Black")
	}
}

func TestIsSquareAttacked_KnightAndPawn(t *testing.T) {
	b, err := ParseFEN("8/8/8/8/8/5n2/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsSquareAttacked(4, Black) {
		t.Fatalf("expected e1 attacked by knight on f3")
	}
}
