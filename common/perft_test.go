package common

import "testing"

type perftStats struct {
	all       int
	capture   int
	promote   int
	check     int
	checkmate int
}

func doPerft(pos *Position, depth int) perftStats {
	var stats perftStats

	Perft(pos, depth, func(leaf *PerftLeafNode) {
		stats.all++

		if umv := leaf.PreviousMove(); umv != UndoableMoveNone && !umv.IsDrop() {
			if umv.PieceCaptured() != NoPiece {
				stats.capture++
			}
			if umv.IsPromotion() {
				stats.promote++
			}
		}

		if leaf.IsChecked() {
			stats.check++
		}
		if leaf.IsCheckmated() {
			stats.checkmate++
		}
	})

	return stats
}

func positionFromSFEN(t *testing.T, sfen string) *Position {
	t.Helper()
	sideToMove, board, hands, err := DecodeSFENPosition(sfen)
	if err != nil {
		t.Fatalf("decode %q: %v", sfen, err)
	}
	return NewPosition(sideToMove, board, hands)
}

// Known results from https://qiita.com/ak11/items/8bd5f2bb0f5b014143c8
func TestPerftStartpos(t *testing.T) {
	if testing.Short() {
		t.Skip("slow")
	}

	var pos = positionFromSFEN(t, "startpos")

	var tests = []struct {
		depth int
		stats perftStats
	}{
		{1, perftStats{30, 0, 0, 0, 0}},
		{2, perftStats{900, 0, 0, 0, 0}},
		{3, perftStats{25470, 59, 30, 48, 0}},
		{4, perftStats{719731, 1803, 842, 1121, 0}},
	}
	for _, test := range tests {
		if stats := doPerft(pos, test.depth); stats != test.stats {
			t.Errorf("depth %d: expected %+v, got %+v", test.depth, test.stats, stats)
		}
	}
}

func TestPerftMaxMoves(t *testing.T) {
	if testing.Short() {
		t.Skip("slow")
	}

	var pos = positionFromSFEN(t, "sfen R8/2K1S1SSk/4B4/9/9/9/9/9/1L1L1L3 b RBGSNLP3g3n17p 1")

	var tests = []struct {
		depth int
		stats perftStats
	}{
		{1, perftStats{593, 0, 52, 40, 6}},
		{2, perftStats{105677, 538, 0, 3802, 0}},
	}
	for _, test := range tests {
		if stats := doPerft(pos, test.depth); stats != test.stats {
			t.Errorf("depth %d: expected %+v, got %+v", test.depth, test.stats, stats)
		}
	}
}

func perftCaptures(pos *Position, depth int) int {
	var us = pos.SideToMove()
	var them = us.Inv()

	if pos.IsChecked(them) {
		return 0
	}

	if depth == 0 {
		return 1
	}

	// At remaining depth one only captures are generated; deeper nodes use
	// the normal generators.
	var buf [MaxMoves]Move
	var mvs []Move
	switch {
	case depth == 1:
		mvs = GenerateCaptures(buf[:0], pos)
	case pos.IsChecked(us):
		mvs = GenerateEvasions(buf[:0], pos)
	default:
		mvs = GenerateMoves(buf[:0], pos)
	}

	var res = 0
	for _, mv := range mvs {
		var umv = pos.DoMove(mv)
		res += perftCaptures(pos, depth-1)
		pos.UndoMove(umv)
	}
	return res
}

func TestGenerateCapturesStartpos(t *testing.T) {
	if testing.Short() {
		t.Skip("slow")
	}

	var pos = positionFromSFEN(t, "startpos")

	var expected = []int{0, 0, 0, 59, 1803, 113680}
	for depth := 1; depth < len(expected); depth++ {
		if n := perftCaptures(pos, depth); n != expected[depth] {
			t.Errorf("depth %d: expected %d captures, got %d", depth, expected[depth], n)
		}
	}
}
