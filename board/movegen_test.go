package board

import "testing"

func TestGenerateLegalMoves_InitialPositionCount(t *testing.T) {
	b := NewBoard()
	moves := b.GenerateLegalMoves()
	if len(moves) != 20 {
		t.Errorf("initial position: expected 20 legal moves, got %d", len(moves))
	}
}

func TestGenerateCaptures_InitialPositionEmpty(t *testing.T) {
	b := NewBoard()
	if got := b.GenerateCaptures(); len(got) != 0 {
		t.Errorf("initial position: expected 0 captures, got %d", len(got))
	}
}

func TestGenerateCaptures_EnPassantIncluded(t *testing.T) {
	b, err := ParseFEN("k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	if err != nil {
		t.Fatal(err)
	}
	var epCount int
	for _, m := range b.GenerateCaptures() {
		if m.Flag() == FlagEnPassant {
			epCount++
		}
	}
	if epCount != 1 {
		t.Errorf("expected exactly 1 en-passant capture, got %d", epCount)
	}
}

// Every move the generator returns must pass a from-scratch legality check:
// the mover's own king must not be in check afterward.
func TestLegalMoveClosure_GeneratedMovesAreLegal(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		for _, m := range b.GenerateLegalMoves() {
			ok, st := b.MakeMove(m)
			if !ok {
				t.Errorf("fen %q: generated move %s failed legality check in MakeMove", fen, m)
				continue
			}
			b.UnmakeMove(m, st)
		}
	}
}

// Every pseudo-legal piece move and pawn capture accepted by MakeMove must
// also appear in the legal move list (the other half of legal-move closure).
// Pawn pushes, en passant and castling carry special flags and are not
// enumerated here; the position has no pawn that can promote.
func TestLegalMoveClosure_AcceptedMovesAreGenerated(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	legal := b.GenerateLegalMoves()
	set := make(map[Move]bool, len(legal))
	for _, m := range legal {
		set[m] = true
	}
	us := b.SideToMove()
	occ := b.Occupied()
	for from := Square(0); from < 64; from++ {
		p := b.PieceAt(from)
		if p == NoPiece || p.Color() != us {
			continue
		}
		var targets Bitboard
		switch p.Type() {
		case Pawn:
			targets = pawnAttacks[us][from] & b.ColorBB(us.Opponent())
		case Knight:
			targets = knightAttacks[from]
		case Bishop:
			targets = bishopAttacks(from, occ)
		case Rook:
			targets = rookAttacks(from, occ)
		case Queen:
			targets = queenAttacks(from, occ)
		case King:
			targets = kingAttacks[from]
		}
		for targets &^= b.ColorBB(us); targets != 0; {
			var to Square
			to, targets = targets.popLSB()
			m := NewMove(from, to, p, b.PieceAt(to), NoPiece, FlagNone)
			ok, st := b.MakeMove(m)
			if !ok {
				continue
			}
			b.UnmakeMove(m, st)
			if !set[m] {
				t.Errorf("move %s accepted by MakeMove but missing from the generated legal moves", m)
			}
		}
	}
}

func TestCastling_IllegalWhileInCheck(t *testing.T) {
	// Black rook on e8 attacks e1; white king may not castle out of check
	// even though f1/g1 themselves are not attacked.
	b, err := ParseFEN("4r3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range b.GenerateLegalMoves() {
		if m.IsCastle() {
			t.Fatalf("castling should be illegal while king is in check")
		}
	}
}

func TestEnPassant_DiscoveredCheckAlongRankIsIllegal(t *testing.T) {
	// Classic pinned-en-passant: capturing exposes the white king to the
	// black rook along the 5th rank once both pawns vanish.
	fen := "8/8/8/K2pP2r/8/8/8/8 w - d6 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range b.GenerateLegalMoves() {
		if m.Flag() == FlagEnPassant {
			t.Fatalf("en-passant capture should be illegal: it discovers check along the rank")
		}
	}
}

// TestPin_SouthRayPinIsDetected covers the direction-parity bug where South
// (a "decreasing" square-index direction) was misclassified as increasing,
// so the nearest-blocker scan ran from the wrong end and the pin was never
// recorded. White Ke4, Ne2, Black Re1: the knight is absolutely pinned
// along the e-file, and a knight can never move and stay on its pin ray, so
// it must have zero legal moves.
func TestPin_SouthRayPinIsDetected(t *testing.T) {
	fen := "8/8/8/8/4K3/8/4N3/4r3 w - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range b.GenerateLegalMoves() {
		if m.From() == squareOf(4, 1) { // e2
			t.Errorf("knight pinned against the king by a rook on the e-file should have no legal moves, got %s", m)
		}
	}
}

// TestPin_EastRayPinIsDetected mirrors the South case for East, which
// shares the same (previously broken) misclassification the other way
// around (East was treated as decreasing).
func TestPin_EastRayPinIsDetected(t *testing.T) {
	fen := "8/8/8/8/K2N3q/8/8/8 w - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range b.GenerateLegalMoves() {
		if m.From() == squareOf(3, 3) { // d4
			t.Errorf("knight pinned against the king by a queen on the 4th rank should have no legal moves, got %s", m)
		}
	}
}

func TestGenerateCaptures_QuietQueenPromotionIncluded(t *testing.T) {
	b, err := ParseFEN("k7/4P3/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, m := range b.GenerateCaptures() {
		if m.From() == squareOf(4, 6) && m.To() == squareOf(4, 7) && m.PromotionType() == Queen {
			found = true
		}
		if m.IsPromotion() && m.PromotionType() != Queen {
			t.Errorf("quiescence capture generation should only emit queen promotions, got %s", m)
		}
	}
	if !found {
		t.Errorf("expected quiet e7e8q queen promotion in quiescence move list")
	}
}

func TestDoubleCheck_OnlyKingMovesLegal(t *testing.T) {
	// Rook checks along the e-file, knight checks from f3: both simultaneously,
	// so every legal move must be a king move.
	fen := "4r3/8/8/8/8/5n2/8/4K3 w - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	if !b.InCheck(White) {
		t.Fatalf("fixture should place White in check")
	}
	for _, m := range b.GenerateLegalMoves() {
		if m.MovedPiece().Type() != King {
			t.Errorf("double check: non-king move %s should not be legal", m)
		}
	}
}
