package common

import "testing"

func TestNewPositionStartpos(t *testing.T) {
	var pos = NewPosition(HUM, StartposBoard(), Hands{})

	if pos.SideToMove() != HUM || pos.Ply() != 1 {
		t.Error("side to move or ply is wrong")
	}
	if pos.KingSquare(HUM) != SQ59 || pos.KingSquare(COM) != SQ51 {
		t.Error("king squares are wrong")
	}
	if pos.ComNonkingCount() != 19 {
		t.Errorf("expected 19 COM non-king pieces, got %d", pos.ComNonkingCount())
	}
	if pos.IsChecked(HUM) || pos.IsChecked(COM) {
		t.Error("startpos has no check")
	}
	if pos.BBOccupied().CountOnes() != 40 {
		t.Error("startpos has 40 pieces on the board")
	}
}

// Plays a line and checks after every do and undo that the incrementally
// maintained effect information matches a from-scratch recomputation.
func TestPositionDoUndoEffects(t *testing.T) {
	var lines = []string{
		"startpos moves 7g7f 3c3d 8h2b+ 3a2b B*4e 5a4b 4e3d 2b3c 3d6a+",
		"startpos moves 2g2f 8c8d 2f2e 8d8e 2e2d 2c2d 2h2d P*2c 2d2h",
		"startpos moves 5g5f 5c5d 5i5h 5a5b 5h5g 5b5c",
	}

	for _, line := range lines {
		sideToMove, board, hands, mvs, err := DecodeSFEN(line)
		if err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}

		var pos = NewPosition(sideToMove, board, hands)
		var umvs []UndoableMove

		var check = func(step string) {
			var fresh = NewPosition(pos.sideToMove, pos.board, pos.hands)
			if pos.effectCounts != fresh.effectCounts {
				t.Errorf("%q %s: effect counts diverged\nhave HUM:\n%v\nwant HUM:\n%v\nhave COM:\n%v\nwant COM:\n%v",
					line, step,
					pos.effectCounts[HUM], fresh.effectCounts[HUM],
					pos.effectCounts[COM], fresh.effectCounts[COM])
			}
			if pos.rangedEffects != fresh.rangedEffects {
				t.Errorf("%q %s: ranged effects diverged", line, step)
			}
			if pos.occupied != fresh.occupied || pos.occupiedSide != fresh.occupiedSide ||
				pos.byKind != fresh.byKind || pos.kingSq != fresh.kingSq {
				t.Errorf("%q %s: bitboards diverged", line, step)
			}
		}

		for _, mv := range mvs {
			umvs = append(umvs, pos.DoMove(mv))
			check("after " + mv.String())
		}
		for i := len(umvs) - 1; i >= 0; i-- {
			pos.UndoMove(umvs[i])
			check("after undoing " + umvs[i].String())
		}

		if pos.Ply() != 1 || pos.SideToMove() != sideToMove {
			t.Errorf("%q: undo did not restore ply or side", line)
		}
	}
}

func TestPositionCaptureUpdatesHandsAndCount(t *testing.T) {
	_, _, _, mvs, err := DecodeSFEN("startpos moves 7g7f 3c3d 8h2b+")
	if err != nil {
		t.Fatal(err)
	}

	var pos = NewPosition(HUM, StartposBoard(), Hands{})
	var umvs []UndoableMove
	for _, mv := range mvs {
		umvs = append(umvs, pos.DoMove(mv))
	}

	if pos.Hand(HUM).Count(Bishop) != 1 {
		t.Error("HUM should hold the captured bishop")
	}
	if pos.ComNonkingCount() != 18 {
		t.Errorf("expected 18 COM non-king pieces, got %d", pos.ComNonkingCount())
	}
	if pos.Board()[SQ22] != HHorse {
		t.Errorf("expected a HUM horse on 22, got %v", pos.Board()[SQ22])
	}

	for i := len(umvs) - 1; i >= 0; i-- {
		pos.UndoMove(umvs[i])
	}
	if pos.ComNonkingCount() != 19 || !pos.Hand(HUM).IsEmpty() {
		t.Error("undo did not restore the capture")
	}
}

func TestIsCheckmated(t *testing.T) {
	// HUM king on 5i, COM gold on 5h backed by a lance on 5a: mate.
	var pos = positionFromSFEN(t, "sfen 4l4/9/9/9/9/9/9/4g4/4K4 b - 1")
	if !pos.IsChecked(HUM) {
		t.Fatal("HUM should be in check")
	}
	if !pos.IsCheckmated() {
		t.Error("position should be mate")
	}

	// Without the lance the king just takes the gold.
	pos = positionFromSFEN(t, "sfen 9/9/9/9/9/9/9/4g4/4K4 b - 1")
	if !pos.IsChecked(HUM) {
		t.Fatal("HUM should be in check")
	}
	if pos.IsCheckmated() {
		t.Error("position should not be mate")
	}
}

func TestIsCheckmatedPawnDrop(t *testing.T) {
	// A hand pawn that can be interposed refutes the mate.
	var pos = positionFromSFEN(t, "sfen 4l4/9/9/9/9/9/9/9/4K4 b P 1")
	if !pos.IsChecked(HUM) {
		t.Fatal("HUM should be in check")
	}
	if pos.IsCheckmated() {
		t.Error("a pawn interposition should refute the mate")
	}
}
