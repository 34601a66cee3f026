package common

import "strings"

// Position holds the board, hands, side to move and incrementally maintained
// effect information.
//
// The effect bookkeeping follows the long effect library idea: per side a
// count of effects on every square, plus per square the set of ranged effect
// directions of both sides. Ranged effects resting on a friendly piece that
// supports the same direction are extended one square further (the shadow
// effect); those extensions are included in the counts.
type Position struct {
	occupied     Bitboard
	occupiedSide [2]Bitboard
	byKind       [15]Bitboard

	effectCounts  [2]EffectCountBoard
	rangedEffects RangedEffectBoard

	board      Board
	hands      Hands
	sideToMove Side
	ply        int

	kingSq [2]int

	comNonkingCount int
}

// NewPosition builds a position from a side to move, board and hands. No
// legality checking is done; both kings are assumed to be present.
func NewPosition(sideToMove Side, board Board, hands Hands) *Position {
	var p = &Position{
		board:      board,
		hands:      hands,
		sideToMove: sideToMove,
		ply:        1,
	}

	for sq := SQ11; sq <= SQ99; sq++ {
		var pc = board[sq]
		if !pc.IsPiece() {
			continue
		}

		var bb = SquareBB(sq)
		p.occupied = p.occupied.Or(bb)
		p.occupiedSide[pc.Side()] = p.occupiedSide[pc.Side()].Or(bb)
		p.byKind[pc.Kind()] = p.byKind[pc.Kind()].Or(bb)

		if pc.Kind() == King {
			p.kingSq[pc.Side()] = sq
		}
	}

	p.comNonkingCount = p.occupiedSide[COM].CountOnes() - 1
	for pk := Pawn; pk <= Gold; pk++ {
		p.comNonkingCount += hands[COM].Count(pk)
	}

	p.effectCounts, p.rangedEffects = calcEffect(p)

	return p
}

func (p *Position) Ply() int {
	return p.ply
}

func (p *Position) SideToMove() Side {
	return p.sideToMove
}

func (p *Position) Board() *Board {
	return &p.board
}

func (p *Position) Hands() *Hands {
	return &p.hands
}

func (p *Position) Hand(side Side) *Hand {
	return &p.hands[side]
}

func (p *Position) BBOccupied() Bitboard {
	return p.occupied
}

func (p *Position) BBOccupiedSide(side Side) Bitboard {
	return p.occupiedSide[side]
}

// BBPieceKind returns the bitboard of pk for both sides combined.
func (p *Position) BBPieceKind(pk PieceKind) Bitboard {
	return p.byKind[pk]
}

func (p *Position) BBPiece(side Side, pk PieceKind) Bitboard {
	return p.occupiedSide[side].And(p.byKind[pk])
}

func (p *Position) BBBlank() Bitboard {
	return p.occupied.Not()
}

func (p *Position) EffectBoard(side Side) *EffectCountBoard {
	return &p.effectCounts[side]
}

func (p *Position) KingSquare(side Side) int {
	return p.kingSq[side]
}

// ComNonkingCount returns the number of COM pieces other than the king, on
// the board and in hand combined.
func (p *Position) ComNonkingCount() int {
	return p.comNonkingCount
}

// IsChecked reports whether us is in check.
func (p *Position) IsChecked(us Side) bool {
	return p.effectCounts[us.Inv()][p.kingSq[us]] > 0
}

// DoMove plays mv, which must be at least pseudo-legal and must not capture
// a king, and returns the move in undoable form.
func (p *Position) DoMove(mv Move) UndoableMove {
	var umv UndoableMove
	if mv.IsDrop() {
		umv = p.doMoveDrop(mv)
	} else {
		umv = p.doMoveWalk(mv)
	}

	p.sideToMove = p.sideToMove.Inv()
	p.ply++

	return umv
}

func (p *Position) doMoveWalk(mv Move) UndoableMove {
	var us = p.sideToMove
	var src = mv.Src()
	var dst = mv.Dst()

	var pcSrc = p.board[src]
	var pcCaptured = p.board[dst]

	var pcDst = pcSrc
	if mv.IsPromotion() {
		pcDst = pcSrc.Promoted()
	}

	if pcCaptured == NoPiece {
		// The effect update needs the pre-move board, so move pieces after.
		p.updateEffectByNoncapture(src, dst, pcSrc, pcDst)
	} else {
		p.updateEffectByCapture(src, dst, pcSrc, pcDst, pcCaptured)

		p.hands[us].Add(pcCaptured.RawKind(), 1)
		p.removePiece(dst)

		if us == HUM {
			p.comNonkingCount--
		} else {
			p.comNonkingCount++
		}
	}

	p.removePiece(src)
	p.putPiece(dst, pcDst)

	if pcSrc.Kind() == King {
		p.kingSq[us] = dst
	}

	return MakeUndoableWalk(mv, pcSrc, pcCaptured)
}

// updateEffectByCapture updates the effect information for a capturing walk
// move. The board still holds the pre-move state when called.
//
// Ordering matters: shadow effects must be computed against the ranged
// effects of the right moment. Since dst was occupied, placing the moved
// piece there blocks nothing.
func (p *Position) updateEffectByCapture(src, dst int, pcSrc, pcDst, pcCaptured Piece) {
	var us = p.sideToMove
	var them = us.Inv()

	// Melee effects of the moved piece: squares covered both before and
	// after the move keep their count, so mask the overlap out.
	{
		var bbDec = EffectMelee(pcSrc, src)
		var bbInc = EffectMelee(pcDst, dst)

		var bbIntersect = bbDec.And(bbInc)
		bbDec = bbDec.Xor(bbIntersect)
		bbInc = bbInc.Xor(bbIntersect)

		bbDec.ForEachSquare(func(sq int) {
			p.effectCounts[us][sq]--
		})
		bbInc.ForEachSquare(func(sq int) {
			p.effectCounts[us][sq]++
		})
	}

	// Melee effects of the captured piece.
	EffectMelee(pcCaptured, dst).ForEachSquare(func(sq int) {
		p.effectCounts[them][sq]--
	})

	// Shadow effects supported by the moved piece at src.
	{
		var srcWW = SquareToWall(src)
		var dirs = SupportedDirections(pcSrc) & p.rangedEffects[src].Get(us)
		dirs.ForEach(func(dir Direction) {
			if sqww := srcWW + dir.SqwwDelta(); sqww.IsOnBoard() {
				p.effectCounts[us][sqww.Square()]--
			}
		})
	}

	// Shadow effects supported by the captured piece.
	{
		var dstWW = SquareToWall(dst)
		var dirs = SupportedDirections(pcCaptured) & p.rangedEffects[dst].Get(them)
		dirs.ForEach(func(dir Direction) {
			if sqww := dstWW + dir.SqwwDelta(); sqww.IsOnBoard() {
				p.effectCounts[them][sqww.Square()]--
			}
		})
	}

	// Ranged effects at src. If the piece moved along a ray, the effects in
	// the opposite direction are unchanged for both sides.
	{
		var mvDirs = DirectionSetFromSquares(src, dst)
		var dspMask = DirSetPairAll
		if !mvDirs.IsEmpty() {
			var inv = MakeDirectionSet(mvDirs.GetLeast().Inv())
			dspMask = ^MakeDirectionSetPair(inv, inv)
		}

		var dspUs = RangedDirections(pcSrc) & dspMask
		var dspOthers = p.rangedEffects[src] & dspMask

		// The captured piece is still on the board; a ranged effect opened
		// onto it would produce a bogus shadow effect. Temporarily turn it
		// into a knight, which supports no direction.
		var pcCapturedOrig = p.board[dst]
		p.board[dst] = HKnight
		p.updateEffectRanged(src, dspUs, dspOthers, false)
		p.board[dst] = pcCapturedOrig
	}

	// Shadow effects supported by the moved piece at dst.
	{
		var dstWW = SquareToWall(dst)
		var dirs = SupportedDirections(pcDst) & p.rangedEffects[dst].Get(us)
		dirs.ForEach(func(dir Direction) {
			if sqww := dstWW + dir.SqwwDelta(); sqww.IsOnBoard() {
				p.effectCounts[us][sqww.Square()]++
			}
		})
	}

	// Ranged effects at dst. No blocking happens here.
	{
		var dspUs = RangedDirections(pcDst)
		var dspOthers = RangedDirections(pcCaptured)

		// The moved piece is still at src; hide it the same way to avoid a
		// bogus shadow effect onto the vacated square.
		var pcSrcOrig = p.board[src]
		p.board[src] = HKnight
		p.updateEffectRanged(dst, dspUs, dspOthers, true)
		p.board[src] = pcSrcOrig
	}
}

// updateEffectByNoncapture updates the effect information for a quiet walk
// move. The board still holds the pre-move state when called.
func (p *Position) updateEffectByNoncapture(src, dst int, pcSrc, pcDst Piece) {
	var us = p.sideToMove

	{
		var bbDec = EffectMelee(pcSrc, src)
		var bbInc = EffectMelee(pcDst, dst)

		var bbIntersect = bbDec.And(bbInc)
		bbDec = bbDec.Xor(bbIntersect)
		bbInc = bbInc.Xor(bbIntersect)

		bbDec.ForEachSquare(func(sq int) {
			p.effectCounts[us][sq]--
		})
		bbInc.ForEachSquare(func(sq int) {
			p.effectCounts[us][sq]++
		})
	}

	// Shadow effects supported by the moved piece at src.
	{
		var srcWW = SquareToWall(src)
		var dirs = SupportedDirections(pcSrc) & p.rangedEffects[src].Get(us)
		dirs.ForEach(func(dir Direction) {
			if sqww := srcWW + dir.SqwwDelta(); sqww.IsOnBoard() {
				p.effectCounts[us][sqww.Square()]--
			}
		})
	}

	// Ranged effects at src.
	{
		var mvDirs = DirectionSetFromSquares(src, dst)
		var dspMask = DirSetPairAll
		if !mvDirs.IsEmpty() {
			var inv = MakeDirectionSet(mvDirs.GetLeast().Inv())
			dspMask = ^MakeDirectionSetPair(inv, inv)
		}

		var dspUs = RangedDirections(pcSrc) & dspMask
		var dspOthers = p.rangedEffects[src] & dspMask

		p.updateEffectRanged(src, dspUs, dspOthers, false)
	}

	// Shadow effects supported by the moved piece at dst.
	{
		var dstWW = SquareToWall(dst)
		var dirs = SupportedDirections(pcDst) & p.rangedEffects[dst].Get(us)
		dirs.ForEach(func(dir Direction) {
			if sqww := dstWW + dir.SqwwDelta(); sqww.IsOnBoard() {
				p.effectCounts[us][sqww.Square()]++
			}
		})
	}

	// Ranged effects at dst: the moved piece blocks what passed through.
	{
		var dspUs = RangedDirections(pcDst)
		var dspOthers = p.rangedEffects[dst]

		var pcSrcOrig = p.board[src]
		p.board[src] = HKnight
		p.updateEffectRanged(dst, dspUs, dspOthers, true)
		p.board[src] = pcSrcOrig
	}
}

func (p *Position) doMoveDrop(mv Move) UndoableMove {
	var us = p.sideToMove
	var pk = mv.DroppedPieceKind()
	var dst = mv.Dst()

	p.hands[us].Add(pk, -1)
	p.putPiece(dst, MakePiece(us, pk))

	p.updateEffectByDrop(pk, dst)

	return MakeUndoableDrop(mv)
}

func (p *Position) updateEffectByDrop(pk PieceKind, dst int) {
	var us = p.sideToMove
	var pc = MakePiece(us, pk)

	EffectMelee(pc, dst).ForEachSquare(func(sq int) {
		p.effectCounts[us][sq]++
	})

	// Shadow effects supported by the dropped piece.
	{
		var dstWW = SquareToWall(dst)
		var dirs = SupportedDirections(pc) & p.rangedEffects[dst].Get(us)
		dirs.ForEach(func(dir Direction) {
			if sqww := dstWW + dir.SqwwDelta(); sqww.IsOnBoard() {
				p.effectCounts[us][sqww.Square()]++
			}
		})
	}

	p.updateEffectRanged(dst, RangedDirections(pc), p.rangedEffects[dst], true)
}

// updateEffectRanged propagates ranged effect changes away from sq after the
// side to move put a piece on it (put true) or removed one (put false). Both
// sides are handled in one pass.
//
// dspUs holds the ranged directions of the placed or removed piece itself
// (its other side is empty); dspOthers holds the pre-existing ranged effects
// at sq that the operation blocks or opens, both sides mixed.
func (p *Position) updateEffectRanged(sq int, dspUs, dspOthers DirectionSetPair, put bool) {
	var us = p.sideToMove
	var them = us.Inv()
	var sqWW = SquareToWall(sq)

	var eSign int8 = -1
	if put {
		eSign = 1
	}

	// For us, the piece's own effect and a pre-existing effect through sq
	// cancel out; for them both must be visited. XOR expresses both at once
	// since dspUs has nothing on them's side.
	var dsp = dspUs ^ dspOthers

	for !dsp.IsEmpty() {
		dir, dspDir := dsp.Pop()

		// For us: the piece's own effect appears or disappears with the
		// piece; a foreign effect through sq is blocked by a put and opened
		// by a removal, the opposite sign.
		var eUs int8
		if !dspDir.Get(us).IsEmpty() {
			if (dspUs & dspDir).IsEmpty() {
				eUs = -eSign
			} else {
				eUs = eSign
			}
		}

		// For them only blocking and opening can happen.
		var eThem int8
		if !dspDir.Get(them).IsEmpty() {
			eThem = -eSign
		}

		var delta = dir.SqwwDelta()
		for dstWW := sqWW + delta; dstWW.IsOnBoard(); dstWW += delta {
			var dst = dstWW.Square()
			p.effectCounts[us][dst] += uint8(eUs)
			p.effectCounts[them][dst] += uint8(eThem)
			p.rangedEffects[dst] ^= dspDir

			var pcDst = p.board[dst]
			if pcDst == NoPiece {
				continue
			}

			// Hit a piece: adjust the shadow effect one square beyond it if
			// the piece supports this direction, then stop.
			if dst2WW := dstWW + delta; dst2WW.IsOnBoard() {
				var dst2 = dst2WW.Square()
				var dirsPcDst = SupportedDirections(pcDst)
				if pcDst.Side() == us && !dirsPcDst.IsDisjoint(dspDir.Get(us)) {
					p.effectCounts[us][dst2] += uint8(eUs)
				} else if pcDst.Side() == them && !dirsPcDst.IsDisjoint(dspDir.Get(them)) {
					p.effectCounts[them][dst2] += uint8(eThem)
				}
			}
			break
		}
	}
}

// UndoMove takes back umv, which must be the last move played.
func (p *Position) UndoMove(umv UndoableMove) {
	p.sideToMove = p.sideToMove.Inv()
	p.ply--

	if umv.IsDrop() {
		p.undoMoveDrop(umv)
	} else {
		p.undoMoveWalk(umv)
	}
}

func (p *Position) undoMoveWalk(umv UndoableMove) {
	var us = p.sideToMove

	var src = umv.Src()
	var dst = umv.Dst()
	var pcSrc = umv.PieceSrc()
	var pcDst = umv.PieceDst()
	var pcCaptured = umv.PieceCaptured()

	p.removePiece(dst)
	p.putPiece(src, pcSrc)

	if pcCaptured == NoPiece {
		p.revertEffectByNoncapture(src, dst, pcSrc, pcDst)
	} else {
		p.putPiece(dst, pcCaptured)
		p.hands[us].Add(pcCaptured.RawKind(), -1)

		p.revertEffectByCapture(src, dst, pcSrc, pcDst, pcCaptured)

		if us == HUM {
			p.comNonkingCount++
		} else {
			p.comNonkingCount--
		}
	}

	if pcSrc.Kind() == King {
		p.kingSq[us] = src
	}
}

// revertEffectByCapture restores the effect information after undoing a
// capturing walk move. The board already holds the pre-move state when
// called. Apart from the melee effects this runs the update steps in
// reverse order.
func (p *Position) revertEffectByCapture(src, dst int, pcSrc, pcDst, pcCaptured Piece) {
	var us = p.sideToMove
	var them = us.Inv()

	{
		var bbDec = EffectMelee(pcSrc, src)
		var bbInc = EffectMelee(pcDst, dst)

		var bbIntersect = bbDec.And(bbInc)
		bbDec = bbDec.Xor(bbIntersect)
		bbInc = bbInc.Xor(bbIntersect)

		bbDec.ForEachSquare(func(sq int) {
			p.effectCounts[us][sq]++
		})
		bbInc.ForEachSquare(func(sq int) {
			p.effectCounts[us][sq]--
		})
	}

	EffectMelee(pcCaptured, dst).ForEachSquare(func(sq int) {
		p.effectCounts[them][sq]++
	})

	// Ranged effects at dst.
	{
		var dspUs = RangedDirections(pcDst)
		var dspOthers = RangedDirections(pcCaptured)

		var pcSrcOrig = p.board[src]
		p.board[src] = HKnight
		p.updateEffectRanged(dst, dspUs, dspOthers, false)
		p.board[src] = pcSrcOrig
	}

	// Shadow effects supported by the moved piece at dst.
	{
		var dstWW = SquareToWall(dst)
		var dirs = SupportedDirections(pcDst) & p.rangedEffects[dst].Get(us)
		dirs.ForEach(func(dir Direction) {
			if sqww := dstWW + dir.SqwwDelta(); sqww.IsOnBoard() {
				p.effectCounts[us][sqww.Square()]--
			}
		})
	}

	// Ranged effects at src.
	{
		var mvDirs = DirectionSetFromSquares(src, dst)
		var dspMask = DirSetPairAll
		if !mvDirs.IsEmpty() {
			var inv = MakeDirectionSet(mvDirs.GetLeast().Inv())
			dspMask = ^MakeDirectionSetPair(inv, inv)
		}

		var dspUs = RangedDirections(pcSrc) & dspMask
		var dspOthers = p.rangedEffects[src] & dspMask

		var pcCapturedOrig = p.board[dst]
		p.board[dst] = HKnight
		p.updateEffectRanged(src, dspUs, dspOthers, true)
		p.board[dst] = pcCapturedOrig
	}

	// Shadow effects supported by the moved piece at src.
	{
		var srcWW = SquareToWall(src)
		var dirs = SupportedDirections(pcSrc) & p.rangedEffects[src].Get(us)
		dirs.ForEach(func(dir Direction) {
			if sqww := srcWW + dir.SqwwDelta(); sqww.IsOnBoard() {
				p.effectCounts[us][sqww.Square()]++
			}
		})
	}

	// Shadow effects supported by the captured piece.
	{
		var dstWW = SquareToWall(dst)
		var dirs = SupportedDirections(pcCaptured) & p.rangedEffects[dst].Get(them)
		dirs.ForEach(func(dir Direction) {
			if sqww := dstWW + dir.SqwwDelta(); sqww.IsOnBoard() {
				p.effectCounts[them][sqww.Square()]++
			}
		})
	}
}

// revertEffectByNoncapture restores the effect information after undoing a
// quiet walk move. The board already holds the pre-move state when called.
func (p *Position) revertEffectByNoncapture(src, dst int, pcSrc, pcDst Piece) {
	var us = p.sideToMove

	{
		var bbDec = EffectMelee(pcSrc, src)
		var bbInc = EffectMelee(pcDst, dst)

		var bbIntersect = bbDec.And(bbInc)
		bbDec = bbDec.Xor(bbIntersect)
		bbInc = bbInc.Xor(bbIntersect)

		bbDec.ForEachSquare(func(sq int) {
			p.effectCounts[us][sq]++
		})
		bbInc.ForEachSquare(func(sq int) {
			p.effectCounts[us][sq]--
		})
	}

	// Ranged effects at dst.
	{
		var dspUs = RangedDirections(pcDst)
		var dspOthers = p.rangedEffects[dst]

		var pcSrcOrig = p.board[src]
		p.board[src] = HKnight
		p.updateEffectRanged(dst, dspUs, dspOthers, false)
		p.board[src] = pcSrcOrig
	}

	// Shadow effects supported by the moved piece at dst.
	{
		var dstWW = SquareToWall(dst)
		var dirs = SupportedDirections(pcDst) & p.rangedEffects[dst].Get(us)
		dirs.ForEach(func(dir Direction) {
			if sqww := dstWW + dir.SqwwDelta(); sqww.IsOnBoard() {
				p.effectCounts[us][sqww.Square()]--
			}
		})
	}

	// Ranged effects at src.
	{
		var mvDirs = DirectionSetFromSquares(src, dst)
		var dspMask = DirSetPairAll
		if !mvDirs.IsEmpty() {
			var inv = MakeDirectionSet(mvDirs.GetLeast().Inv())
			dspMask = ^MakeDirectionSetPair(inv, inv)
		}

		var dspUs = RangedDirections(pcSrc) & dspMask
		var dspOthers = p.rangedEffects[src] & dspMask

		p.updateEffectRanged(src, dspUs, dspOthers, true)
	}

	// Shadow effects supported by the moved piece at src.
	{
		var srcWW = SquareToWall(src)
		var dirs = SupportedDirections(pcSrc) & p.rangedEffects[src].Get(us)
		dirs.ForEach(func(dir Direction) {
			if sqww := srcWW + dir.SqwwDelta(); sqww.IsOnBoard() {
				p.effectCounts[us][sqww.Square()]++
			}
		})
	}
}

func (p *Position) undoMoveDrop(umv UndoableMove) {
	var us = p.sideToMove
	var pk = umv.DroppedPieceKind()
	var dst = umv.Dst()

	p.removePiece(dst)
	p.hands[us].Add(pk, 1)

	p.revertEffectByDrop(pk, dst)
}

func (p *Position) revertEffectByDrop(pk PieceKind, dst int) {
	var us = p.sideToMove
	var pc = MakePiece(us, pk)

	EffectMelee(pc, dst).ForEachSquare(func(sq int) {
		p.effectCounts[us][sq]--
	})

	p.updateEffectRanged(dst, RangedDirections(pc), p.rangedEffects[dst], false)

	// Shadow effects supported by the dropped piece.
	{
		var dstWW = SquareToWall(dst)
		var dirs = SupportedDirections(pc) & p.rangedEffects[dst].Get(us)
		dirs.ForEach(func(dir Direction) {
			if sqww := dstWW + dir.SqwwDelta(); sqww.IsOnBoard() {
				p.effectCounts[us][sqww.Square()]--
			}
		})
	}
}

func (p *Position) putPiece(sq int, pc Piece) {
	p.board[sq] = pc
	p.xorPiece(sq, pc)
}

func (p *Position) removePiece(sq int) {
	var pc = p.board[sq]
	p.board[sq] = NoPiece
	p.xorPiece(sq, pc)
}

func (p *Position) xorPiece(sq int, pc Piece) {
	var bb = SquareBB(sq)
	p.occupied = p.occupied.Xor(bb)
	p.occupiedSide[pc.Side()] = p.occupiedSide[pc.Side()].Xor(bb)
	p.byKind[pc.Kind()] = p.byKind[pc.Kind()].Xor(bb)
}

func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("COM hand: ")
	sb.WriteString(p.hands[COM].String())
	sb.WriteByte('\n')
	sb.WriteString(p.board.String())
	sb.WriteString("HUM hand: ")
	sb.WriteString(p.hands[HUM].String())
	sb.WriteByte('\n')
	sb.WriteString("side to move: ")
	sb.WriteString(p.sideToMove.String())
	sb.WriteByte('\n')
	return sb.String()
}

// calcEffect computes the effect information from scratch. Only used when a
// position is created; after that everything is maintained incrementally.
func calcEffect(p *Position) (effectCounts [2]EffectCountBoard, rangedEffects RangedEffectBoard) {
	p.occupied.ForEachSquare(func(src int) {
		var pc = p.board[src]
		var side = pc.Side()
		var eff = Effect(pc, src, p.occupied)

		// Lances, bishops and rooks have no melee effect; horses and
		// dragons have a fixed one; everything else is all melee.
		var effMelee Bitboard
		switch pc.Kind() {
		case Lance, Bishop, Rook:
		case Horse:
			effMelee = AxisCrossEffect(src)
		case Dragon:
			effMelee = DiagonalCrossEffect(src)
		default:
			effMelee = eff
		}
		effMelee.ForEachSquare(func(dst int) {
			effectCounts[side][dst]++
		})

		var effRanged Bitboard
		switch pc.Kind() {
		case Lance, Bishop, Rook:
			effRanged = eff
		case Horse:
			effRanged = AxisCrossEffect(src).AndNot(eff)
		case Dragon:
			effRanged = DiagonalCrossEffect(src).AndNot(eff)
		default:
			return
		}
		effRanged.ForEachSquare(func(dst int) {
			effectCounts[side][dst]++
			var dirs = DirectionSetFromSquares(src, dst)
			// Same-side same-direction ranged effects never overlap, so
			// XOR works and catches bookkeeping bugs that OR would hide.
			rangedEffects[dst] ^= DirectionSetPairFromPart(side, dirs)
		})

		// Shadow effects: a ranged effect resting on a friendly piece other
		// than a knight or king extends one square if the piece supports
		// the direction.
		var bbSupport = p.byKind[Knight].AndNot(
			p.byKind[King].AndNot(effRanged.And(p.occupiedSide[side])))
		bbSupport.ForEachSquare(func(dst int) {
			var pcDst = p.board[dst]
			var dirsEff = DirectionSetFromSquares(src, dst)
			if !dirsEff.IsDisjoint(SupportedDirections(pcDst)) {
				var sqww = SquareToWall(dst) + dirsEff.GetLeast().SqwwDelta()
				if sqww.IsOnBoard() {
					effectCounts[side][sqww.Square()]++
				}
			}
		})
	})

	return
}
