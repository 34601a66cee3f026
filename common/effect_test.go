package common

import "testing"

func TestDirectionInv(t *testing.T) {
	var pairs = [][2]Direction{
		{DirectionRU, DirectionLD},
		{DirectionRRight, DirectionLeft},
		{DirectionRD, DirectionLU},
		{DirectionUp, DirectionDown},
	}
	for _, pair := range pairs {
		if pair[0].Inv() != pair[1] || pair[1].Inv() != pair[0] {
			t.Errorf("%v and %v should be inverses", pair[0], pair[1])
		}
	}
}

func TestDirectionSqwwDelta(t *testing.T) {
	var sqww = SquareToWall(SQ55)
	var tests = []struct {
		dir Direction
		sq  int
	}{
		{DirectionRU, SQ44},
		{DirectionRRight, SQ45},
		{DirectionRD, SQ46},
		{DirectionUp, SQ54},
		{DirectionDown, SQ56},
		{DirectionLU, SQ64},
		{DirectionLeft, SQ65},
		{DirectionLD, SQ66},
	}
	for _, test := range tests {
		var dst = sqww + test.dir.SqwwDelta()
		if !dst.IsOnBoard() || dst.Square() != test.sq {
			t.Errorf("SQ55 + %v: expected %v, got %v",
				test.dir, SquareName(test.sq), dst)
		}
	}
}

func TestDirectionSetFromSquares(t *testing.T) {
	var tests = []struct {
		dst  int
		dirs DirectionSet
	}{
		{SQ15, DirSetR},
		{SQ95, DirSetL},
		{SQ51, DirSetU},
		{SQ59, DirSetD},
		{SQ11, DirSetRU},
		{SQ19, DirSetRD},
		{SQ91, DirSetLU},
		{SQ99, DirSetLD},
		{SQ43, 0},
		{SQ55, 0},
	}
	for _, test := range tests {
		if dirs := DirectionSetFromSquares(SQ55, test.dst); dirs != test.dirs {
			t.Errorf("SQ55 -> %v: expected %#x, got %#x",
				SquareName(test.dst), test.dirs, dirs)
		}
	}
}

func TestDirectionSetOps(t *testing.T) {
	var ds = DirSetU | DirSetL
	if ds.IsEmpty() {
		t.Error("set should not be empty")
	}
	if !ds.Contains(DirectionUp) || ds.Contains(DirectionDown) {
		t.Error("Contains is wrong")
	}
	if !ds.IsDisjoint(DirSetRU | DirSetD) {
		t.Error("should be disjoint")
	}
	if ds.IsDisjoint(DirSetU) {
		t.Error("should not be disjoint")
	}
	if !ds.IsSubset(DirSetAll) || !DirSetAll.IsSuperset(ds) {
		t.Error("subset check is wrong")
	}
	if ds.IsSubset(DirSetU) {
		t.Error("should not be a subset")
	}
}

func TestDirectionSetPopLeast(t *testing.T) {
	var ds = DirSetRD | DirSetU | DirSetLD
	var expected = []Direction{DirectionRD, DirectionUp, DirectionLD}
	var got []Direction
	ds.ForEach(func(dir Direction) {
		got = append(got, dir)
	})
	if len(got) != len(expected) {
		t.Fatalf("expected %d directions, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("position %d: expected %v, got %v", i, expected[i], got[i])
		}
	}
}

func TestDirectionSetPairBasic(t *testing.T) {
	var dsp = MakeDirectionSetPair(DirSetU|DirSetL, DirSetRD)
	if dsp.IsEmpty() {
		t.Error("pair should not be empty")
	}
	if dsp.Get(HUM) != DirSetU|DirSetL {
		t.Errorf("HUM part is wrong: %#x", dsp.Get(HUM))
	}
	if dsp.Get(COM) != DirSetRD {
		t.Errorf("COM part is wrong: %#x", dsp.Get(COM))
	}

	var humOnly = DirectionSetPairFromPart(HUM, DirSetD)
	if humOnly.Get(HUM) != DirSetD || humOnly.Get(COM) != 0 {
		t.Error("FromPart HUM is wrong")
	}
	var comOnly = DirectionSetPairFromPart(COM, DirSetD)
	if comOnly.Get(HUM) != 0 || comOnly.Get(COM) != DirSetD {
		t.Error("FromPart COM is wrong")
	}
}

func TestDirectionSetPairPop(t *testing.T) {
	var dsp = MakeDirectionSetPair(DirSetU|DirSetL, DirSetRD|DirSetU)

	dir, part := dsp.Pop()
	if dir != DirectionUp {
		t.Errorf("expected U first, got %v", dir)
	}
	if part != MakeDirectionSetPair(DirSetU, DirSetU) {
		t.Errorf("expected both sides' U, got %#x", part)
	}

	dir, part = dsp.Pop()
	if dir != DirectionLeft || part != MakeDirectionSetPair(DirSetL, 0) {
		t.Errorf("expected HUM L, got %v %#x", dir, part)
	}

	dir, part = dsp.Pop()
	if dir != DirectionRD || part != MakeDirectionSetPair(0, DirSetRD) {
		t.Errorf("expected COM RD, got %v %#x", dir, part)
	}

	if !dsp.IsEmpty() {
		t.Error("pair should be empty after three pops")
	}
}

func TestRangedDirections(t *testing.T) {
	if RangedDirections(HLance) != DirectionSetPairFromPart(HUM, DirSetU) {
		t.Error("HUM lance is wrong")
	}
	if RangedDirections(CLance) != DirectionSetPairFromPart(COM, DirSetD) {
		t.Error("COM lance is wrong")
	}
	if RangedDirections(HRook) != DirectionSetPairFromPart(HUM, rookDirs) {
		t.Error("HUM rook is wrong")
	}
	if RangedDirections(CHorse) != DirectionSetPairFromPart(COM, bishopDirs) {
		t.Error("COM horse is wrong")
	}
	for _, pc := range []Piece{NoPiece, HPawn, HKnight, HSilver, HGold, HKing, HProPawn, CKing} {
		if !RangedDirections(pc).IsEmpty() {
			t.Errorf("%v should have no ranged directions", pc)
		}
	}
}

func TestSupportedDirections(t *testing.T) {
	if SupportedDirections(HPawn) != DirSetU {
		t.Error("HUM pawn is wrong")
	}
	if SupportedDirections(CPawn) != DirSetD {
		t.Error("COM pawn is wrong")
	}
	if SupportedDirections(HGold) != SupportedDirections(HProSilver) {
		t.Error("gold and promoted silver should support the same directions")
	}
	if SupportedDirections(HHorse) != DirSetAll || SupportedDirections(CDragon) != DirSetAll {
		t.Error("horse and dragon should support all directions")
	}
	if SupportedDirections(HKnight) != 0 || SupportedDirections(HKing) != 0 {
		t.Error("knight and king should support nothing")
	}
}
