package common

import "testing"

func TestNaitouSquares(t *testing.T) {
	if NaitouSquares[0] != SQ91 || NaitouSquares[1] != SQ81 || NaitouSquares[8] != SQ11 {
		t.Error("scan must start 91, 81, ..., 11")
	}
	if NaitouSquares[9] != SQ92 || NaitouSquares[80] != SQ19 {
		t.Error("scan must proceed row by row and end on 19")
	}

	var seen [81]bool
	for _, sq := range NaitouSquares {
		if seen[sq] {
			t.Fatalf("square %v listed twice", SquareName(sq))
		}
		seen[sq] = true
	}
}

func TestGenerateMovesComOrder(t *testing.T) {
	// Lone COM king on 5a with a pawn in hand. Scanning 91, 81, ... the
	// first blanks take pawn drops, the king square yields its walks in the
	// fixed direction order, and ninth-row blanks take nothing.
	var pos = positionFromSFEN(t, "sfen 4k4/9/9/9/9/9/9/9/4K4 w p 1")

	var mvs = GenerateMovesCom(nil, pos)

	// Rows one through eight have 71 blanks for pawn drops, plus 5 king
	// moves. The ninth row allows no pawn drop.
	if len(mvs) != 76 {
		t.Fatalf("expected 76 moves, got %d", len(mvs))
	}

	var expectedHead = []Move{
		NewDrop(Pawn, SQ91),
		NewDrop(Pawn, SQ81),
		NewDrop(Pawn, SQ71),
		NewDrop(Pawn, SQ61),
		// King on 5a: melee walks in order RD, D, LD, R, L.
		NewWalk(SQ51, SQ42),
		NewWalk(SQ51, SQ52),
		NewWalk(SQ51, SQ62),
		NewWalk(SQ51, SQ41),
		NewWalk(SQ51, SQ61),
		NewDrop(Pawn, SQ41),
	}
	for i, expected := range expectedHead {
		if mvs[i] != expected {
			t.Errorf("move %d: expected %v, got %v", i, expected, mvs[i])
		}
	}
}

func TestGenerateMovesComAlwaysPromotes(t *testing.T) {
	// COM pawn on 5f moving to 5g must promote; a silver already in the
	// zone promotes on any move.
	var pos = positionFromSFEN(t, "sfen 4k4/9/9/9/9/4p4/9/4s4/4K3L w - 1")

	var mvs = GenerateMovesCom(nil, pos)

	var sawPawn, sawSilver bool
	for _, mv := range mvs {
		if mv.IsDrop() {
			continue
		}
		if mv.Src() == SQ56 {
			sawPawn = true
			if !mv.IsPromotion() {
				t.Errorf("pawn move %v should promote", mv)
			}
		}
		if mv.Src() == SQ58 {
			sawSilver = true
			if !mv.IsPromotion() {
				t.Errorf("silver move %v should promote", mv)
			}
		}
	}
	if !sawPawn || !sawSilver {
		t.Error("expected pawn and silver moves")
	}
}

func TestGenerateMovesStartpos(t *testing.T) {
	var pos = NewPosition(HUM, StartposBoard(), Hands{})
	if mvs := GenerateMoves(nil, pos); len(mvs) != 30 {
		t.Errorf("expected 30 moves, got %d", len(mvs))
	}
}

func TestGenerateMovesMaxMoves(t *testing.T) {
	var pos = positionFromSFEN(t, "sfen R8/2K1S1SSk/4B4/9/9/9/9/9/1L1L1L3 b RBGSNLP3g3n17p 1")
	if mvs := GenerateMoves(nil, pos); len(mvs) != 593 {
		t.Errorf("expected 593 moves, got %d", len(mvs))
	}
}

func TestGenerateCapturesOnlyCaptures(t *testing.T) {
	var pos = positionFromSFEN(t, "startpos")
	if mvs := GenerateCaptures(nil, pos); len(mvs) != 0 {
		t.Errorf("no captures at startpos, got %d", len(mvs))
	}

	// After 7g7f 3c3d only the bishops see each other.
	_, _, _, mvs, err := DecodeSFEN("startpos moves 7g7f 3c3d")
	if err != nil {
		t.Fatal(err)
	}
	pos = NewPosition(HUM, StartposBoard(), Hands{})
	for _, mv := range mvs {
		pos.DoMove(mv)
	}

	var captures = GenerateCaptures(nil, pos)
	for _, mv := range captures {
		if pos.Board()[mv.Dst()].Side() != COM || pos.Board()[mv.Dst()] == NoPiece {
			t.Errorf("%v does not capture", mv)
		}
	}
	if len(captures) != 2 || captures[0] != NewWalkPromotion(SQ88, SQ22) ||
		captures[1] != NewWalk(SQ88, SQ22) {
		t.Errorf("expected 8h2b+ and 8h2b, got %v", captures)
	}
}
