package common

import "testing"

func TestPawnEffect(t *testing.T) {
	if got, want := PawnEffect(HUM, SQ79), SquareBB(SQ78); got != want {
		t.Errorf("PawnEffect(HUM, 7i):\n%v", got)
	}
	if got, want := PawnEffect(COM, SQ81), SquareBB(SQ82); got != want {
		t.Errorf("PawnEffect(COM, 8a):\n%v", got)
	}
}

func TestLanceStepEffect(t *testing.T) {
	if got, want := LanceStepEffect(HUM, SQ89),
		bbFromSqs(SQ88, SQ87, SQ86, SQ85, SQ84, SQ83, SQ82, SQ81); got != want {
		t.Errorf("LanceStepEffect(HUM, 8i):\n%v", got)
	}
	if got, want := LanceStepEffect(HUM, SQ45), bbFromSqs(SQ44, SQ43, SQ42, SQ41); got != want {
		t.Errorf("LanceStepEffect(HUM, 4e):\n%v", got)
	}
	if got, want := LanceStepEffect(COM, SQ71),
		bbFromSqs(SQ72, SQ73, SQ74, SQ75, SQ76, SQ77, SQ78, SQ79); got != want {
		t.Errorf("LanceStepEffect(COM, 7a):\n%v", got)
	}
	if got, want := LanceStepEffect(COM, SQ18), bbFromSqs(SQ19); got != want {
		t.Errorf("LanceStepEffect(COM, 1h):\n%v", got)
	}
}

func TestLanceEffect(t *testing.T) {
	occ := bbFromSqs(SQ77, SQ74, SQ71)
	if got, want := LanceEffect(HUM, SQ76, occ), bbFromSqs(SQ75, SQ74); got != want {
		t.Errorf("LanceEffect(HUM, 7f):\n%v", got)
	}
	if got, want := LanceEffect(COM, SQ75, occ), bbFromSqs(SQ76, SQ77); got != want {
		t.Errorf("LanceEffect(COM, 7e):\n%v", got)
	}

	occ = bbFromSqs(SQ82, SQ88)
	if got, want := LanceEffect(HUM, SQ86, occ), bbFromSqs(SQ85, SQ84, SQ83, SQ82); got != want {
		t.Errorf("LanceEffect(HUM, 8f):\n%v", got)
	}
	if got, want := LanceEffect(COM, SQ81, occ), bbFromSqs(SQ82); got != want {
		t.Errorf("LanceEffect(COM, 8a):\n%v", got)
	}
}

func TestRookEffect(t *testing.T) {
	occ := bbFromSqs(SQ25, SQ61, SQ85, SQ67)
	want := bbFromSqs(
		SQ55, SQ45, SQ35, SQ25, SQ64, SQ63, SQ62, SQ61, SQ66, SQ67, SQ75, SQ85)

	if got := RookEffect(SQ65, occ); got != want {
		t.Errorf("RookEffect(6e):\n%v", got)
	}
}

func TestBishopEffect(t *testing.T) {
	occ := bbFromSqs(SQ23, SQ81, SQ67, SQ36)
	want := bbFromSqs(SQ34, SQ23, SQ36, SQ54, SQ63, SQ72, SQ81, SQ56, SQ67)

	if got := BishopEffect(SQ45, occ); got != want {
		t.Errorf("BishopEffect(4e):\n%v", got)
	}
}

func TestKingEffect(t *testing.T) {
	if got, want := KingEffect(SQ85),
		bbFromSqs(SQ74, SQ75, SQ76, SQ84, SQ86, SQ94, SQ95, SQ96); got != want {
		t.Errorf("KingEffect(8e):\n%v", got)
	}
	if got, want := KingEffect(SQ79), bbFromSqs(SQ68, SQ69, SQ78, SQ88, SQ89); got != want {
		t.Errorf("KingEffect(7i):\n%v", got)
	}
	if got, want := KingEffect(SQ81), bbFromSqs(SQ71, SQ72, SQ82, SQ91, SQ92); got != want {
		t.Errorf("KingEffect(8a):\n%v", got)
	}
}

func TestGoldEffect(t *testing.T) {
	if got, want := GoldEffect(HUM, SQ85),
		bbFromSqs(SQ74, SQ75, SQ84, SQ86, SQ94, SQ95); got != want {
		t.Errorf("GoldEffect(HUM, 8e):\n%v", got)
	}
	if got, want := GoldEffect(COM, SQ85),
		bbFromSqs(SQ75, SQ76, SQ84, SQ86, SQ95, SQ96); got != want {
		t.Errorf("GoldEffect(COM, 8e):\n%v", got)
	}
	if got, want := GoldEffect(HUM, SQ11), bbFromSqs(SQ12, SQ21); got != want {
		t.Errorf("GoldEffect(HUM, 1a):\n%v", got)
	}
	if got, want := GoldEffect(COM, SQ99), bbFromSqs(SQ89, SQ98); got != want {
		t.Errorf("GoldEffect(COM, 9i):\n%v", got)
	}
}

func TestSilverEffect(t *testing.T) {
	if got, want := SilverEffect(HUM, SQ85),
		bbFromSqs(SQ74, SQ76, SQ84, SQ94, SQ96); got != want {
		t.Errorf("SilverEffect(HUM, 8e):\n%v", got)
	}
	if got, want := SilverEffect(COM, SQ85),
		bbFromSqs(SQ74, SQ76, SQ86, SQ94, SQ96); got != want {
		t.Errorf("SilverEffect(COM, 8e):\n%v", got)
	}
	if got, want := SilverEffect(HUM, SQ11), bbFromSqs(SQ22); got != want {
		t.Errorf("SilverEffect(HUM, 1a):\n%v", got)
	}
	if got, want := SilverEffect(COM, SQ99), bbFromSqs(SQ88); got != want {
		t.Errorf("SilverEffect(COM, 9i):\n%v", got)
	}
}

func TestKnightEffect(t *testing.T) {
	if got, want := KnightEffect(HUM, SQ85), bbFromSqs(SQ73, SQ93); got != want {
		t.Errorf("KnightEffect(HUM, 8e):\n%v", got)
	}
	if got, want := KnightEffect(COM, SQ85), bbFromSqs(SQ77, SQ97); got != want {
		t.Errorf("KnightEffect(COM, 8e):\n%v", got)
	}
	if got, want := KnightEffect(HUM, SQ13), bbFromSqs(SQ21); got != want {
		t.Errorf("KnightEffect(HUM, 1c):\n%v", got)
	}
	if got, want := KnightEffect(COM, SQ97), bbFromSqs(SQ89); got != want {
		t.Errorf("KnightEffect(COM, 9g):\n%v", got)
	}
}

func TestEffectCounts(t *testing.T) {
	kinds := []PieceKind{
		Pawn, Lance, Knight, Silver, Bishop, Rook, Gold, King,
		ProPawn, ProLance, ProKnight, ProSilver, Horse, Dragon,
	}

	// Effect counts for each kind dropped on 5e, on an empty board and on a
	// fully occupied board.
	countsEmpty := []int{1, 4, 2, 5, 16, 16, 6, 8, 6, 6, 6, 6, 20, 20}
	countsFull := []int{1, 1, 2, 5, 4, 4, 6, 8, 6, 6, 6, 6, 8, 8}

	for side := HUM; side <= COM; side++ {
		for i, pk := range kinds {
			pc := MakePiece(side, pk)

			if got := Effect(pc, SQ55, Bitboard{}).CountOnes(); got != countsEmpty[i] {
				t.Errorf("Effect(%v %v, empty) = %d squares, want %d", side, pk, got, countsEmpty[i])
			}
			if got := Effect(pc, SQ55, AllSquaresBB()).CountOnes(); got != countsFull[i] {
				t.Errorf("Effect(%v %v, full) = %d squares, want %d", side, pk, got, countsFull[i])
			}
		}
	}
}

func TestPawnBBEffect(t *testing.T) {
	if got, want := PawnBBEffect(HUM, bbFromSqs(SQ14, SQ35, SQ79, SQ82)),
		bbFromSqs(SQ13, SQ34, SQ78, SQ81); got != want {
		t.Errorf("PawnBBEffect(HUM):\n%v", got)
	}
	if got, want := PawnBBEffect(COM, bbFromSqs(SQ14, SQ35, SQ78, SQ81)),
		bbFromSqs(SQ15, SQ36, SQ79, SQ82); got != want {
		t.Errorf("PawnBBEffect(COM):\n%v", got)
	}
}

func TestPawnDropMask(t *testing.T) {
	colRange := func(from, to int) Bitboard {
		var bb Bitboard
		for sq := from; sq <= to; sq++ {
			bb = bb.Or(SquareBB(sq))
		}
		return bb
	}

	pawns := bbFromSqs(SQ14, SQ32, SQ59, SQ77, SQ83, SQ95)
	want := colRange(SQ22, SQ29).Or(colRange(SQ42, SQ49)).Or(colRange(SQ62, SQ69))
	if got := PawnDropMask(HUM, pawns); got != want {
		t.Errorf("PawnDropMask(HUM):\n%v", got)
	}

	pawns = bbFromSqs(SQ23, SQ37, SQ41, SQ52, SQ73)
	want = colRange(SQ11, SQ18).Or(colRange(SQ61, SQ68)).
		Or(colRange(SQ81, SQ88)).Or(colRange(SQ91, SQ98))
	if got := PawnDropMask(COM, pawns); got != want {
		t.Errorf("PawnDropMask(COM):\n%v", got)
	}
}

func TestAround25(t *testing.T) {
	if got, want := Around25(SQ78), bbFromSqs(
		SQ56, SQ57, SQ58, SQ59, SQ66, SQ67, SQ68, SQ69, SQ76, SQ77, SQ78, SQ79,
		SQ86, SQ87, SQ88, SQ89, SQ96, SQ97, SQ98, SQ99); got != want {
		t.Errorf("Around25(7h):\n%v", got)
	}

	if got, want := Around25(SQ63), bbFromSqs(
		SQ41, SQ42, SQ43, SQ44, SQ45, SQ51, SQ52, SQ53, SQ54, SQ55, SQ61, SQ62,
		SQ63, SQ64, SQ65, SQ71, SQ72, SQ73, SQ74, SQ75, SQ81, SQ82, SQ83, SQ84,
		SQ85); got != want {
		t.Errorf("Around25(6c):\n%v", got)
	}
}

func TestSquareWithWall(t *testing.T) {
	if got := SquareToWall(SQ11).Square(); got != SQ11 {
		t.Errorf("round trip 1a = %v", SquareName(got))
	}
	if got := SquareToWall(SQ99).Square(); got != SQ99 {
		t.Errorf("round trip 9i = %v", SquareName(got))
	}

	// Walking off any edge must hit the wall.
	if ww := SquareToWall(SQ11) + DirWWR; ww.IsOnBoard() {
		t.Errorf("right of 1a is on board")
	}
	if ww := SquareToWall(SQ11) + DirWWU; ww.IsOnBoard() {
		t.Errorf("up of 1a is on board")
	}
	if ww := SquareToWall(SQ99) + DirWWL; ww.IsOnBoard() {
		t.Errorf("left of 9i is on board")
	}
	if ww := SquareToWall(SQ99) + DirWWD; ww.IsOnBoard() {
		t.Errorf("down of 9i is on board")
	}

	if ww := SquareToWall(SQ55) + DirWWLU; !ww.IsOnBoard() || ww.Square() != SQ64 {
		t.Errorf("left-up of 5e = %v", SquareName(ww.Square()))
	}
}
