package common

// GenerateMoves appends to mvs every pseudo-legal move in p and returns the
// result. The order is unspecified.
//
// Pseudo-legal means suicides, pawn-drop mates and perpetual-check
// repetitions are included.
func GenerateMoves(mvs []Move, p *Position) []Move {
	var us = p.sideToMove

	// Walk destinations are any square without an own piece.
	var bbTarget = p.occupiedSide[us].Not()

	mvs = generateMovesWalkPawn(mvs, p, bbTarget)

	mvs = generateMovesWalk(mvs, p, bbTarget, Lance)
	mvs = generateMovesWalk(mvs, p, bbTarget, Knight)
	mvs = generateMovesWalk(mvs, p, bbTarget, Silver)
	mvs = generateMovesWalk(mvs, p, bbTarget, Bishop)
	mvs = generateMovesWalk(mvs, p, bbTarget, Rook)

	mvs = generateMovesWalk(mvs, p, bbTarget, Gold)
	mvs = generateMovesWalk(mvs, p, bbTarget, King)
	mvs = generateMovesWalk(mvs, p, bbTarget, ProPawn)
	mvs = generateMovesWalk(mvs, p, bbTarget, ProLance)
	mvs = generateMovesWalk(mvs, p, bbTarget, ProKnight)
	mvs = generateMovesWalk(mvs, p, bbTarget, ProSilver)
	mvs = generateMovesWalk(mvs, p, bbTarget, Horse)
	mvs = generateMovesWalk(mvs, p, bbTarget, Dragon)

	// Only blank squares can take a drop.
	mvs = generateMovesDrop(mvs, p, p.BBBlank())

	return mvs
}

// GenerateCaptures appends to mvs every pseudo-legal move in p that captures
// an enemy piece and returns the result. Drops never capture, so none are
// generated.
func GenerateCaptures(mvs []Move, p *Position) []Move {
	var us = p.sideToMove

	var bbTarget = p.occupiedSide[us.Inv()]

	mvs = generateMovesWalkPawn(mvs, p, bbTarget)

	mvs = generateMovesWalk(mvs, p, bbTarget, Lance)
	mvs = generateMovesWalk(mvs, p, bbTarget, Knight)
	mvs = generateMovesWalk(mvs, p, bbTarget, Silver)
	mvs = generateMovesWalk(mvs, p, bbTarget, Bishop)
	mvs = generateMovesWalk(mvs, p, bbTarget, Rook)

	mvs = generateMovesWalk(mvs, p, bbTarget, Gold)
	mvs = generateMovesWalk(mvs, p, bbTarget, King)
	mvs = generateMovesWalk(mvs, p, bbTarget, ProPawn)
	mvs = generateMovesWalk(mvs, p, bbTarget, ProLance)
	mvs = generateMovesWalk(mvs, p, bbTarget, ProKnight)
	mvs = generateMovesWalk(mvs, p, bbTarget, ProSilver)
	mvs = generateMovesWalk(mvs, p, bbTarget, Horse)
	mvs = generateMovesWalk(mvs, p, bbTarget, Dragon)

	return mvs
}

// Pawn walks: every pawn effect is computed at once and used directly as the
// destination set. A pawn on the enemy back row is assumed not to exist.
func generateMovesWalkPawn(mvs []Move, p *Position, bbTarget Bitboard) []Move {
	var us = p.sideToMove

	var bbPawn = p.BBPiece(us, Pawn)
	var bbDst = bbTarget.And(PawnBBEffect(us, bbPawn))

	var dirBack = DirD
	var rowDeadend = Row1
	if us == COM {
		dirBack = DirU
		rowDeadend = Row9
	}

	bbDst.ForEachSquare(func(dst int) {
		var src = dst + dirBack

		if SquareIsPromotionZone(dst, us) {
			// In the zone promotion is always possible; staying unpromoted
			// is possible except on the back row.
			mvs = append(mvs, NewWalkPromotion(src, dst))
			if SquareRow(dst) != rowDeadend {
				mvs = append(mvs, NewWalk(src, dst))
			}
		} else {
			mvs = append(mvs, NewWalk(src, dst))
		}
	})

	return mvs
}

func generateMovesWalk(mvs []Move, p *Position, bbTarget Bitboard, pk PieceKind) []Move {
	var us = p.sideToMove

	var bbOcc = p.occupied
	var bbPc = p.BBPiece(us, pk)

	bbPc.ForEachSquare(func(src int) {
		var bbDst = bbTarget.And(Effect(MakePiece(us, pk), src, bbOcc))

		switch pk {
		case Lance:
			mvs = generateWalkLance(mvs, us, src, bbDst)
		case Knight:
			mvs = generateWalkKnight(mvs, us, src, bbDst)
		case Silver, Bishop, Rook:
			mvs = generateWalkPromotable(mvs, us, src, bbDst)
		default:
			bbDst.ForEachSquare(func(dst int) {
				mvs = append(mvs, NewWalk(src, dst))
			})
		}
	})

	return mvs
}

func generateWalkLance(mvs []Move, us Side, src int, bbDst Bitboard) []Move {
	// Promotions: any zone destination. A lance can never leave the zone.
	bbDst.And(PromotionZoneBB(us)).ForEachSquare(func(dst int) {
		mvs = append(mvs, NewWalkPromotion(src, dst))
	})

	// Non-promotions: anywhere except the enemy back row.
	var bbMask Bitboard
	if us == HUM {
		bbMask = ForwardRowsBB(COM, Row1)
	} else {
		bbMask = ForwardRowsBB(HUM, Row9)
	}
	bbDst.And(bbMask).ForEachSquare(func(dst int) {
		mvs = append(mvs, NewWalk(src, dst))
	})

	return mvs
}

func generateWalkKnight(mvs []Move, us Side, src int, bbDst Bitboard) []Move {
	var rowNonpromo = Row3
	if us == COM {
		rowNonpromo = Row7
	}

	bbDst.ForEachSquare(func(dst int) {
		if SquareIsPromotionZone(dst, us) {
			// Unpromoted is only possible on the third zone row.
			mvs = append(mvs, NewWalkPromotion(src, dst))
			if SquareRow(dst) == rowNonpromo {
				mvs = append(mvs, NewWalk(src, dst))
			}
		} else {
			mvs = append(mvs, NewWalk(src, dst))
		}
	})

	return mvs
}

// Silver, bishop and rook: no dead-end squares to worry about.
func generateWalkPromotable(mvs []Move, us Side, src int, bbDst Bitboard) []Move {
	if SquareIsPromotionZone(src, us) {
		bbDst.ForEachSquare(func(dst int) {
			mvs = append(mvs, NewWalkPromotion(src, dst))
			mvs = append(mvs, NewWalk(src, dst))
		})
		return mvs
	}

	bbDst.And(PromotionZoneBB(us)).ForEachSquare(func(dst int) {
		mvs = append(mvs, NewWalkPromotion(src, dst))
		mvs = append(mvs, NewWalk(src, dst))
	})
	PromotionZoneBB(us).AndNot(bbDst).ForEachSquare(func(dst int) {
		mvs = append(mvs, NewWalk(src, dst))
	})

	return mvs
}

func generateMovesDrop(mvs []Move, p *Position, bbTarget Bitboard) []Move {
	var us = p.sideToMove
	var hand = p.hands[us]

	if hand.Count(Pawn) > 0 {
		// No doubled pawns, no enemy back row.
		var bbDst = bbTarget.And(PawnDropMask(us, p.BBPiece(us, Pawn)))
		bbDst.ForEachSquare(func(dst int) {
			mvs = append(mvs, NewDrop(Pawn, dst))
		})
	}

	if hand.Count(Lance) > 0 {
		var bbMask Bitboard
		if us == HUM {
			bbMask = ForwardRowsBB(COM, Row1)
		} else {
			bbMask = ForwardRowsBB(HUM, Row9)
		}
		bbTarget.And(bbMask).ForEachSquare(func(dst int) {
			mvs = append(mvs, NewDrop(Lance, dst))
		})
	}

	if hand.Count(Knight) > 0 {
		var bbMask Bitboard
		if us == HUM {
			bbMask = ForwardRowsBB(COM, Row2)
		} else {
			bbMask = ForwardRowsBB(HUM, Row8)
		}
		bbTarget.And(bbMask).ForEachSquare(func(dst int) {
			mvs = append(mvs, NewDrop(Knight, dst))
		})
	}

	for _, pk := range [...]PieceKind{Silver, Gold, Bishop, Rook} {
		if hand.Count(pk) == 0 {
			continue
		}
		bbTarget.ForEachSquare(func(dst int) {
			mvs = append(mvs, NewDrop(pk, dst))
		})
	}

	return mvs
}

// GenerateEvasions appends to mvs pseudo check evasions (they do not
// necessarily evade) and returns the result. The side to move is assumed to
// be in check.
//
// For the exact behavior of the original opponent use
// GenerateEvasionsNaitou.
func GenerateEvasions(mvs []Move, p *Position) []Move {
	return generateEvasions(mvs, p, p.BBBlank())
}

// GenerateEvasionsNaitou is GenerateEvasions restricted the way the
// original program restricts it: drops only target the eight squares around
// the HUM king. The position must have HUM to move with the HUM king in
// check.
func GenerateEvasionsNaitou(mvs []Move, p *Position) []Move {
	var bbDropTarget = p.BBBlank().And(KingEffect(p.kingSq[HUM]))
	return generateEvasions(mvs, p, bbDropTarget)
}

// generateEvasions cuts corners rather than generating exact evasions:
//
//   - King moves onto squares the enemy has an effect on are skipped, but an
//     effect coming from behind the king along the movement ray is missed.
//   - Non-king candidates target the checking knight's square, or failing a
//     knight check, the queen effect seen from the own king.
func generateEvasions(mvs []Move, p *Position, bbDropTarget Bitboard) []Move {
	var us = p.sideToMove
	var them = us.Inv()
	var sqKing = p.kingSq[us]

	// King moves first.
	var bbDstKing = p.occupiedSide[us].Not().And(KingEffect(sqKing))
	bbDstKing.ForEachSquare(func(dst int) {
		if p.effectCounts[them][dst] > 0 {
			return
		}
		mvs = append(mvs, NewWalk(sqKing, dst))
	})

	// Checked by a knight?
	var bbKnight = p.BBPiece(them, Knight).And(KnightEffect(us, sqKing))

	var bbTarget Bitboard
	if bbKnight.IsZero() {
		bbTarget = p.occupiedSide[us].Not().And(QueenEffect(sqKing, p.occupied))
	} else {
		bbTarget = bbKnight
	}

	mvs = generateMovesWalkPawn(mvs, p, bbTarget)

	mvs = generateMovesWalk(mvs, p, bbTarget, Lance)
	mvs = generateMovesWalk(mvs, p, bbTarget, Knight)
	mvs = generateMovesWalk(mvs, p, bbTarget, Silver)
	mvs = generateMovesWalk(mvs, p, bbTarget, Bishop)
	mvs = generateMovesWalk(mvs, p, bbTarget, Rook)

	mvs = generateMovesWalk(mvs, p, bbTarget, Gold)
	mvs = generateMovesWalk(mvs, p, bbTarget, ProPawn)
	mvs = generateMovesWalk(mvs, p, bbTarget, ProLance)
	mvs = generateMovesWalk(mvs, p, bbTarget, ProKnight)
	mvs = generateMovesWalk(mvs, p, bbTarget, ProSilver)
	mvs = generateMovesWalk(mvs, p, bbTarget, Horse)
	mvs = generateMovesWalk(mvs, p, bbTarget, Dragon)

	// Drops against a knight check are pointless, hence the AND.
	mvs = generateMovesDrop(mvs, p, bbTarget.And(bbDropTarget))

	return mvs
}

// IsCheckmated reports whether the side to move is checkmated, pawn-drop
// mates included. The side to move is assumed to be in check. The position
// is unchanged on return.
func (p *Position) IsCheckmated() bool {
	return p.isCheckmated(p.BBBlank())
}

// IsCheckmatedNaitou is the original program's mate check: drops only target
// the eight squares around the HUM king. The position must have HUM to move
// with the HUM king in check.
//
// This is not strictly correct: a HUM king deep in enemy territory can be
// reported mated when it is not.
func (p *Position) IsCheckmatedNaitou() bool {
	var bbDropTarget = p.BBBlank().And(KingEffect(p.kingSq[HUM]))
	return p.isCheckmated(bbDropTarget)
}

func (p *Position) isCheckmated(bbDropTarget Bitboard) bool {
	return !(p.evadeByKing() || p.evadeByNonking(bbDropTarget))
}

func (p *Position) evadeByKing() bool {
	var us = p.sideToMove
	var them = us.Inv()
	var sqKing = p.kingSq[us]

	var bbDst = p.occupiedSide[us].Not().And(KingEffect(sqKing))

	for !bbDst.IsZero() {
		var dst = bbDst.PopLeastSquare()

		if p.effectCounts[them][dst] > 0 {
			continue
		}

		if p.tryEvade(NewWalk(sqKing, dst)) {
			return true
		}
	}

	return false
}

func (p *Position) evadeByNonking(bbDropTarget Bitboard) bool {
	var us = p.sideToMove
	var them = us.Inv()
	var sqKing = p.kingSq[us]

	var bbKnight = p.BBPiece(them, Knight).And(KnightEffect(us, sqKing))

	var bbTarget Bitboard
	if bbKnight.IsZero() {
		bbTarget = p.occupiedSide[us].Not().And(QueenEffect(sqKing, p.occupied))
	} else {
		bbTarget = bbKnight
	}

	var buf [MaxMoves]Move
	var tryAll = func(mvs []Move) bool {
		for _, mv := range mvs {
			if p.tryEvade(mv) {
				return true
			}
		}
		return false
	}

	if tryAll(generateMovesWalkPawn(buf[:0], p, bbTarget)) {
		return true
	}
	for _, pk := range [...]PieceKind{
		Lance, Knight, Silver, Bishop, Rook,
		Gold, ProPawn, ProLance, ProKnight, ProSilver, Horse, Dragon,
	} {
		if tryAll(generateMovesWalk(buf[:0], p, bbTarget, pk)) {
			return true
		}
	}

	return tryAll(generateMovesDrop(buf[:0], p, bbTarget.And(bbDropTarget)))
}

func (p *Position) tryEvade(mv Move) bool {
	var us = p.sideToMove

	var umv = p.DoMove(mv)
	var res = !p.IsChecked(us)
	p.UndoMove(umv)

	return res
}
