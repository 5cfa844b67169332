package board

import "testing"

func TestMakeUnmakeRoundTrip_NormalMove(t *testing.T) {
	b := NewBoard()
	startFEN := b.ToFEN()
	startZ := b.computeZobrist()

	from, to := Square(12), Square(28) // e2e4
	m := NewMove(from, to, WhitePawn, NoPiece, NoPiece, FlagDoublePawnPush)
	ok, st := b.MakeMove(m)
	if !ok {
		t.Fatalf("MakeMove rejected a legal pawn push")
	}
	if b.zobristKey != b.computeZobrist() {
		t.Fatalf("incremental zobrist drifted from scratch computation after make")
	}

	b.UnmakeMove(m, st)
	if b.ToFEN() != startFEN {
		t.Fatalf("FEN mismatch after unmake: got %q want %q", b.ToFEN(), startFEN)
	}
	if b.zobristKey != startZ {
		t.Fatalf("zobrist mismatch after unmake: got %d want %d", b.zobristKey, startZ)
	}
	if len(b.history) != 0 {
		t.Fatalf("history stack depth changed across make/unmake")
	}
}

func TestMakeUnmakeRoundTrip_AllLegalMovesFromKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	startFEN := b.ToFEN()
	startZ := b.zobristKey

	for _, m := range b.GenerateLegalMoves() {
		ok, st := b.MakeMove(m)
		if !ok {
			t.Fatalf("move %s returned by generator was rejected by MakeMove as illegal", m)
		}
		if b.zobristKey != b.computeZobrist() {
			t.Fatalf("move %s: incremental zobrist != recomputed zobrist", m)
		}
		b.UnmakeMove(m, st)
		if b.ToFEN() != startFEN {
			t.Fatalf("move %s: FEN mismatch after unmake: got %q want %q", m, b.ToFEN(), startFEN)
		}
		if b.zobristKey != startZ {
			t.Fatalf("move %s: zobrist mismatch after unmake", m)
		}
	}
}

func TestMakeUnmake_Castling(t *testing.T) {
	b, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	startFEN := b.ToFEN()
	m := NewMove(4, 6, WhiteKing, NoPiece, NoPiece, FlagCastle)
	ok, st := b.MakeMove(m)
	if !ok {
		t.Fatalf("kingside castle rejected")
	}
	if b.PieceAt(5) != WhiteRook || b.PieceAt(6) != WhiteKing {
		t.Fatalf("castle did not relocate king/rook correctly")
	}
	if b.castlingRights&(CastleWhiteKingside|CastleWhiteQueenside) != 0 {
		t.Fatalf("white castling rights should be cleared after castling")
	}
	b.UnmakeMove(m, st)
	if b.ToFEN() != startFEN {
		t.Fatalf("FEN mismatch after unmaking castle")
	}
}

func TestMakeUnmake_EnPassant(t *testing.T) {
	b, err := ParseFEN("k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	if err != nil {
		t.Fatal(err)
	}
	startFEN := b.ToFEN()
	m := NewMove(36, 43, WhitePawn, BlackPawn, NoPiece, FlagEnPassant) // e5xd6
	ok, st := b.MakeMove(m)
	if !ok {
		t.Fatalf("en-passant capture rejected")
	}
	if b.PieceAt(35) != NoPiece {
		t.Fatalf("captured pawn not removed from d5")
	}
	b.UnmakeMove(m, st)
	if b.ToFEN() != startFEN {
		t.Fatalf("FEN mismatch after unmaking en-passant")
	}
}

func TestMakeUnmake_Promotion(t *testing.T) {
	b, err := ParseFEN("8/P7/8/8/8/8/8/k6K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	startFEN := b.ToFEN()
	m := NewMove(48, 56, WhitePawn, NoPiece, WhiteQueen, FlagNone)
	ok, st := b.MakeMove(m)
	if !ok {
		t.Fatalf("promotion rejected")
	}
	if b.PieceAt(56) != WhiteQueen {
		t.Fatalf("promotion did not place a queen")
	}
	b.UnmakeMove(m, st)
	if b.ToFEN() != startFEN {
		t.Fatalf("FEN mismatch after unmaking promotion")
	}
}

func TestMakeMove_IllegalLeavesKingInCheckIsRejected(t *testing.T) {
	// White rook pinned to its king; moving it off the pin ray must fail.
	b, err := ParseFEN("4r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m := NewMove(12, 13, WhiteRook, NoPiece, NoPiece, FlagNone) // e2->f2, off the e-file pin
	ok, _ := b.MakeMove(m)
	if ok {
		t.Fatalf("MakeMove accepted a move that exposes the king to check")
	}
}

func TestZobristIncrementalMatchesFromScratch(t *testing.T) {
	b := NewBoard()
	for _, uci := range []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5"} {
		m, err := b.ParseMove(uci)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", uci, err)
		}
		ok, _ := b.MakeMove(m)
		if !ok {
			t.Fatalf("MakeMove(%q) rejected", uci)
		}
		if b.zobristKey != b.computeZobrist() {
			t.Fatalf("after %q: incremental zobrist %d != scratch %d", uci, b.zobristKey, b.computeZobrist())
		}
	}
}
