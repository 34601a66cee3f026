package common

// Effect tables. Everything is built eagerly in init(); the build order
// matters because later tables are derived from the sliding effects.
//
// Sliding effects use the Qugiy algorithm. See:
// https://yaneuraou.yaneu.com/2021/12/03/qugiys-jumpy-effect-code-complete-guide/

var (
	colBBTable            [9]Bitboard
	rowBBTable            [9]Bitboard
	squareBBTable         [81]Bitboard
	forwardRowsTable      [2][9]Bitboard
	promotionZoneTable    [2]Bitboard
	qugiyRookMask         [81][2]Bitboard
	qugiyBishopMask       [81][2]Bitboard2
	pawnEffectTable       [81][2]Bitboard
	lanceStepEffectTable  [81][2]Bitboard
	kingEffectTable       [81]Bitboard
	rookStepEffectTable   [81]Bitboard
	bishopStepEffectTable [81]Bitboard
	goldEffectTable       [81][2]Bitboard
	silverEffectTable     [81][2]Bitboard
	knightEffectTable     [81][2]Bitboard
	around25Table         [81]Bitboard
)

// ColBB returns the bitboard of the given column.
func ColBB(col int) Bitboard {
	return colBBTable[col]
}

// RowBB returns the bitboard of the given row.
func RowBB(row int) Bitboard {
	return rowBBTable[row]
}

// ForwardRowsBB returns the rows strictly beyond row from side's point of view.
func ForwardRowsBB(side Side, row int) Bitboard {
	return forwardRowsTable[side][row]
}

// PromotionZoneBB returns the enemy camp of side.
func PromotionZoneBB(side Side) Bitboard {
	return promotionZoneTable[side]
}

func PawnEffect(side Side, sq int) Bitboard {
	return pawnEffectTable[sq][side]
}

// LanceStepEffect returns the lance effect on an empty board.
func LanceStepEffect(side Side, sq int) Bitboard {
	return lanceStepEffectTable[sq][side]
}

func LanceEffect(side Side, sq int, occ Bitboard) Bitboard {
	if side == HUM {
		return lanceEffectHum(sq, occ)
	}
	return lanceEffectCom(sq, occ)
}

func lanceEffectHum(sq int, occ Bitboard) Bitboard {
	effect := func(stepEff, occ uint64) uint64 {
		// Only pieces on the step effect influence the result. The effect
		// stops at the first piece, which is reachable, so smear the blocker
		// downward by one.
		mask := stepEff & occ
		mask |= mask >> 1
		mask |= mask >> 2
		mask |= mask >> 4
		mask >>= 1
		return stepEff &^ mask
	}

	stepEff := LanceStepEffect(HUM, sq)
	if SquareIsPart0(sq) {
		return Bitboard{effect(stepEff.Part0(), occ.Part0()), 0}
	}
	return Bitboard{0, effect(stepEff.Part1(), occ.Part1())}
}

func lanceEffectCom(sq int, occ Bitboard) Bitboard {
	effect := func(stepEff, occ uint64) uint64 {
		// x^(x-1) turns the lowest set bit and everything below it to ones
		// (all ones when x is zero).
		mask := stepEff & occ
		return (mask ^ (mask - 1)) & stepEff
	}

	stepEff := LanceStepEffect(COM, sq)
	if SquareIsPart0(sq) {
		return Bitboard{effect(stepEff.Part0(), occ.Part0()), 0}
	}
	return Bitboard{0, effect(stepEff.Part1(), occ.Part1())}
}

func RookEffect(sq int, occ Bitboard) Bitboard {
	return rookColEffect(sq, occ).Or(rookRowEffect(sq, occ))
}

func rookColEffect(sq int, occ Bitboard) Bitboard {
	return lanceEffectHum(sq, occ).Or(lanceEffectCom(sq, occ))
}

func rookRowEffect(sq int, occ Bitboard) Bitboard {
	qrmLo := qugiyRookMask[sq][0]
	qrmHi := qugiyRookMask[sq][1]

	// The rightward mask is stored byte-reversed, so the occupancy needs the
	// same treatment.
	occRev := occ.ByteReverse()
	occUnpLo, occUnpHi := UnpackPair(occ, occRev)

	maskLo := qrmLo.And(occUnpLo)
	maskHi := qrmHi.And(occUnpHi)

	// Decrementing finds the effect, like x^(x-1) for the lance.
	maskLoDec, maskHiDec := DecrementUnpackedPair(maskLo, maskHi)
	effUnpLo := maskLo.Xor(maskLoDec).And(qrmLo)
	effUnpHi := maskHi.Xor(maskHiDec).And(qrmHi)

	// Unpack once more to restore the layout, then undo the byte reversal of
	// the rightward half.
	effLeft, effRightRev := UnpackPair(effUnpLo, effUnpHi)
	effRight := effRightRev.ByteReverse()

	return effLeft.Or(effRight)
}

func BishopEffect(sq int, occ Bitboard) Bitboard {
	qbmLo := qugiyBishopMask[sq][0]
	qbmHi := qugiyBishopMask[sq][1]

	// All four directions are processed at once, so double up the occupancy.
	// The right-up/right-down masks are stored byte-reversed.
	occ2 := BroadcastBitboard2(occ)
	occ2Rev := BroadcastBitboard2(occ.ByteReverse())

	occ2UnpLo, occ2UnpHi := UnpackPair2(occ2, occ2Rev)

	maskLo := qbmLo.And(occ2UnpLo)
	maskHi := qbmHi.And(occ2UnpHi)

	maskLoDec, maskHiDec := DecrementUnpackedPair2(maskLo, maskHi)
	effUnpLo := maskLo.Xor(maskLoDec).And(qbmLo)
	effUnpHi := maskHi.Xor(maskHiDec).And(qbmHi)

	effLeft, effRightRev := UnpackPair2(effUnpLo, effUnpHi)
	effRight := effRightRev.ByteReverse()

	return effLeft.Or(effRight).Merge()
}

func KingEffect(sq int) Bitboard {
	return kingEffectTable[sq]
}

// RookStepEffect returns the rook effect on an empty board.
func RookStepEffect(sq int) Bitboard {
	return rookStepEffectTable[sq]
}

// BishopStepEffect returns the bishop effect on an empty board.
func BishopStepEffect(sq int) Bitboard {
	return bishopStepEffectTable[sq]
}

func GoldEffect(side Side, sq int) Bitboard {
	return goldEffectTable[sq][side]
}

func SilverEffect(side Side, sq int) Bitboard {
	return silverEffectTable[sq][side]
}

func KnightEffect(side Side, sq int) Bitboard {
	return knightEffectTable[sq][side]
}

func DragonEffect(sq int, occ Bitboard) Bitboard {
	return RookEffect(sq, occ).Or(KingEffect(sq))
}

func HorseEffect(sq int, occ Bitboard) Bitboard {
	return BishopEffect(sq, occ).Or(KingEffect(sq))
}

// AxisCrossEffect returns the length-1 vertical/horizontal cross around sq.
func AxisCrossEffect(sq int) Bitboard {
	return RookStepEffect(sq).And(KingEffect(sq))
}

// DiagonalCrossEffect returns the length-1 diagonal cross around sq.
func DiagonalCrossEffect(sq int) Bitboard {
	return BishopStepEffect(sq).And(KingEffect(sq))
}

func QueenEffect(sq int, occ Bitboard) Bitboard {
	return BishopEffect(sq, occ).Or(RookEffect(sq, occ))
}

// Around25 returns the squares within Chebyshev distance 2 of sq.
func Around25(sq int) Bitboard {
	return around25Table[sq]
}

// Effect returns the effect of piece pc placed on sq given occupancy occ.
// pc must be an actual piece.
func Effect(pc Piece, sq int, occ Bitboard) Bitboard {
	side := pc.Side()
	switch pc.Kind() {
	case Pawn:
		return PawnEffect(side, sq)
	case Lance:
		return LanceEffect(side, sq, occ)
	case Knight:
		return KnightEffect(side, sq)
	case Silver:
		return SilverEffect(side, sq)
	case Gold, ProPawn, ProLance, ProKnight, ProSilver:
		return GoldEffect(side, sq)
	case Bishop:
		return BishopEffect(sq, occ)
	case Rook:
		return RookEffect(sq, occ)
	case Horse:
		return HorseEffect(sq, occ)
	case Dragon:
		return DragonEffect(sq, occ)
	case King:
		return KingEffect(sq)
	}
	panic("common.Effect: not a piece")
}

// EffectMelee returns the non-sliding part of the effect of pc on sq.
// Lances, bishops and rooks have none.
func EffectMelee(pc Piece, sq int) Bitboard {
	side := pc.Side()
	switch pc.Kind() {
	case Pawn:
		return PawnEffect(side, sq)
	case Knight:
		return KnightEffect(side, sq)
	case Silver:
		return SilverEffect(side, sq)
	case Gold, ProPawn, ProLance, ProKnight, ProSilver:
		return GoldEffect(side, sq)
	case Horse:
		return AxisCrossEffect(sq)
	case Dragon:
		return DiagonalCrossEffect(sq)
	case King:
		return KingEffect(sq)
	case Lance, Bishop, Rook:
		return Bitboard{}
	}
	panic("common.EffectMelee: not a piece")
}

// PawnBBEffect maps a bitboard of side's pawns to the bitboard of their
// effects. A HUM pawn on the first row spills into row 9 of the next column.
func PawnBBEffect(side Side, bb Bitboard) Bitboard {
	if side == HUM {
		return bb.ShiftRightParts(1)
	}
	return bb.ShiftLeftParts(1)
}

// PawnDropMask returns the squares where side may drop a pawn, given the
// bitboard of side's own pawns.
//
// The subtraction trick comes from the WCSC31 Qugiy appeal document: with a
// constant holding row 9 of every column, left - pawns marks the pawn-free
// columns on row 9, and a second subtraction spreads that to whole columns.
func PawnDropMask(side Side, pawns Bitboard) Bitboard {
	left := Bitboard{
		1<<8 | 1<<17 | 1<<26 | 1<<35 | 1<<44 | 1<<53 | 1<<62,
		1<<8 | 1<<17,
	}

	t1 := left.SubParts(pawns)

	if side == HUM {
		// Shift to row 2 instead of row 1: a pawn may not be dropped on the
		// last row it could move from.
		t2 := t1.And(left).ShiftRightParts(7)
		return left.Xor(left.SubParts(t2))
	}
	t2 := t1.And(left).ShiftRightParts(8)
	return left.AndNot(left.SubParts(t2))
}

func init() {
	initColRowSquare()
	initForwardRows()
	initPromotionZone()
	initQugiyRookMask()
	initQugiyBishopMask()
	initPawnEffect()
	initLanceStepEffect()

	// From here on LanceEffect, RookEffect and BishopEffect work; the
	// remaining tables are derived from them.
	initKingEffect()
	initRookStepEffect()
	initBishopStepEffect()
	initGoldEffect()
	initSilverEffect()
	initKnightEffect()
	initAround25()
}

func initColRowSquare() {
	for col := Col1; col <= Col9; col++ {
		if col <= Col7 {
			colBBTable[col] = Bitboard{0x1FF << (9 * uint(col)), 0}
		} else {
			colBBTable[col] = Bitboard{0, 0x1FF << (9 * uint(col-Col8))}
		}
	}

	for row := Row1; row <= Row9; row++ {
		rowBBTable[row] = Bitboard{0x40201008040201 << uint(row), 0x201 << uint(row)}
	}

	for sq := SQ11; sq <= SQ99; sq++ {
		col, row := SquareCol(sq), SquareRow(sq)
		if col <= Col7 {
			squareBBTable[sq] = Bitboard{1 << uint(9*col+row), 0}
		} else {
			squareBBTable[sq] = Bitboard{0, 1 << uint(9*(col-Col8)+row)}
		}
	}
}

func initForwardRows() {
	for row := Row1; row <= Row9; row++ {
		var bbHum, bbCom Bitboard
		for r := Row1; r < row; r++ {
			bbHum = bbHum.Or(rowBBTable[r])
		}
		for r := row + 1; r <= Row9; r++ {
			bbCom = bbCom.Or(rowBBTable[r])
		}
		forwardRowsTable[HUM][row] = bbHum
		forwardRowsTable[COM][row] = bbCom
	}
}

func initPromotionZone() {
	promotionZoneTable[HUM] = rowBBTable[Row1].Or(rowBBTable[Row2]).Or(rowBBTable[Row3])
	promotionZoneTable[COM] = rowBBTable[Row7].Or(rowBBTable[Row8]).Or(rowBBTable[Row9])
}

func initQugiyRookMask() {
	for sq := SQ11; sq <= SQ99; sq++ {
		col, row := SquareCol(sq), SquareRow(sq)

		var left, right Bitboard
		for c := col + 1; c <= Col9; c++ {
			left = left.Or(squareBBTable[MakeSquare(c, row)])
		}
		for c := Col1; c < col; c++ {
			right = right.Or(squareBBTable[MakeSquare(c, row)])
		}

		// Byte-reverse the rightward half so its effect bits ascend.
		lo, hi := UnpackPair(left, right.ByteReverse())
		qugiyRookMask[sq][0] = lo
		qugiyRookMask[sq][1] = hi
	}
}

func initQugiyBishopMask() {
	dirs := [4]SquareWithWall{DirWWLU, DirWWLD, DirWWRU, DirWWRD}

	for sq := SQ11; sq <= SQ99; sq++ {
		var stepEffs [4]Bitboard
		for i, dir := range dirs {
			for ww := SquareToWall(sq) + dir; ww.IsOnBoard(); ww += dir {
				stepEffs[i] = stepEffs[i].Or(squareBBTable[ww.Square()])
			}
		}

		// Byte-reverse the right-up/right-down halves so their bits ascend.
		stepEffs[2] = stepEffs[2].ByteReverse()
		stepEffs[3] = stepEffs[3].ByteReverse()

		for i := 0; i < 2; i++ {
			qugiyBishopMask[sq][i] = Bitboard2From(
				Bitboard{stepEffs[0].Part(i), stepEffs[2].Part(i)},
				Bitboard{stepEffs[1].Part(i), stepEffs[3].Part(i)},
			)
		}
	}
}

func initPawnEffect() {
	for sq := SQ11; sq <= SQ99; sq++ {
		for side := HUM; side <= COM; side++ {
			row := SquareRow(sq)
			if side == HUM {
				row--
			} else {
				row++
			}
			if RowIsOnBoard(row) {
				pawnEffectTable[sq][side] = squareBBTable[MakeSquare(SquareCol(sq), row)]
			}
		}
	}
}

func initLanceStepEffect() {
	for sq := SQ11; sq <= SQ99; sq++ {
		for side := HUM; side <= COM; side++ {
			lanceStepEffectTable[sq][side] =
				colBBTable[SquareCol(sq)].And(forwardRowsTable[side][SquareRow(sq)])
		}
	}
}

func initKingEffect() {
	for sq := SQ11; sq <= SQ99; sq++ {
		// The king effect is the rook and bishop effects on a fully occupied
		// board combined.
		kingEffectTable[sq] =
			RookEffect(sq, AllSquaresBB()).Or(BishopEffect(sq, AllSquaresBB()))
	}
}

func initRookStepEffect() {
	for sq := SQ11; sq <= SQ99; sq++ {
		rookStepEffectTable[sq] = RookEffect(sq, Bitboard{})
	}
}

func initBishopStepEffect() {
	for sq := SQ11; sq <= SQ99; sq++ {
		bishopStepEffectTable[sq] = BishopEffect(sq, Bitboard{})
	}
}

func initGoldEffect() {
	for sq := SQ11; sq <= SQ99; sq++ {
		for side := HUM; side <= COM; side++ {
			// On a fully occupied board, combine the rook effect with the
			// forward half of the bishop effect. The backward half is masked
			// off using the row attacked by an enemy pawn on sq.
			effEnemyPawn := LanceEffect(side.Inv(), sq, AllSquaresBB())

			var mask Bitboard
			if !effEnemyPawn.IsZero() {
				mask = rowBBTable[SquareRow(effEnemyPawn.GetLeastSquare())]
			}

			effRook := RookEffect(sq, AllSquaresBB())
			effBishopFwd := BishopEffect(sq, AllSquaresBB()).And(mask.Not())

			goldEffectTable[sq][side] = effRook.Or(effBishopFwd)
		}
	}
}

func initSilverEffect() {
	for sq := SQ11; sq <= SQ99; sq++ {
		for side := HUM; side <= COM; side++ {
			// Length-1 bishop effect plus length-1 lance effect.
			effBishop := BishopEffect(sq, AllSquaresBB())
			effLance := LanceEffect(side, sq, AllSquaresBB())

			silverEffectTable[sq][side] = effBishop.Or(effLance)
		}
	}
}

func initKnightEffect() {
	for sq := SQ11; sq <= SQ99; sq++ {
		for side := HUM; side <= COM; side++ {
			// Step one row forward with a length-1 lance effect, then take
			// the forward half of the length-1 bishop effect from there.
			var eff Bitboard

			effPawn := LanceEffect(side, sq, AllSquaresBB())
			if !effPawn.IsZero() {
				sq2 := effPawn.GetLeastSquare()
				eff2Pawn := LanceEffect(side, sq2, AllSquaresBB())
				if !eff2Pawn.IsZero() {
					r := SquareRow(eff2Pawn.GetLeastSquare())
					eff = BishopEffect(sq2, AllSquaresBB()).And(rowBBTable[r])
				}
			}

			knightEffectTable[sq][side] = eff
		}
	}
}

func initAround25() {
	for sq := SQ11; sq <= SQ99; sq++ {
		for col := SquareCol(sq) - 2; col <= SquareCol(sq)+2; col++ {
			if !ColIsOnBoard(col) {
				continue
			}
			for row := SquareRow(sq) - 2; row <= SquareRow(sq)+2; row++ {
				if !RowIsOnBoard(row) {
					continue
				}
				around25Table[sq] = around25Table[sq].Or(squareBBTable[MakeSquare(col, row)])
			}
		}
	}
}
