package common

// The original opponent scans the squares 91, 81, ..., 19 and, per square,
// generates drops onto a blank square or moves of a COM piece found there.
// Drops come in the order pawn, lance, knight, silver, gold, bishop, rook.
// Walks follow fixed per-kind direction orders, and promote whenever
// possible.

// NaitouSquares lists all squares in the original scan order.
var NaitouSquares = func() (sqs [81]int) {
	var i int
	for row := Row1; row <= Row9; row++ {
		for col := Col9; col >= Col1; col-- {
			sqs[i] = MakeSquare(col, row)
			i++
		}
	}
	return
}()

// GenerateMovesCom appends to mvs every COM move in the original program's
// order and returns the result. Illegal moves are included; suicide
// filtering is the thinking routine's job (and not always correct there).
// The position must have COM to move.
func GenerateMovesCom(mvs []Move, p *Position) []Move {
	var bbWalkTarget = p.occupiedSide[COM].Not()
	var bbPawnDrop = PawnDropMask(COM, p.BBPiece(COM, Pawn))

	for _, sq := range NaitouSquares {
		var pc = p.board[sq]
		switch {
		case pc == NoPiece:
			mvs = generateMovesComDrop(mvs, p, sq, bbPawnDrop)
		case pc.Side() == COM:
			mvs = generateMovesComWalk(mvs, p, sq, pc.Kind(), bbWalkTarget)
		}
	}

	return mvs
}

func generateMovesComWalk(mvs []Move, p *Position, src int, pk PieceKind, bbTarget Bitboard) []Move {
	var srcWW = SquareToWall(src)

	// Ranged effects first.
	for _, delta := range comEffectRanged[pk] {
		for dstWW := srcWW + delta; dstWW.IsOnBoard(); dstWW += delta {
			var dst = dstWW.Square()
			if !bbTarget.TestSquare(dst) {
				break
			}
			mvs = appendComWalk(mvs, pk, src, dst)

			// Stop the ray on the first HUM piece.
			if p.board[dst] != NoPiece {
				break
			}
		}
	}

	// Then melee effects.
	for _, delta := range comEffectMelee[pk] {
		var dstWW = srcWW + delta
		if dstWW.IsOnBoard() && bbTarget.TestSquare(dstWW.Square()) {
			mvs = appendComWalk(mvs, pk, src, dstWW.Square())
		}
	}

	return mvs
}

// appendComWalk adds the move pk src-dst, promoting whenever possible.
func appendComWalk(mvs []Move, pk PieceKind, src, dst int) []Move {
	var promo = pk.IsPromotable() &&
		(SquareIsPromotionZone(src, COM) || SquareIsPromotionZone(dst, COM))

	if promo {
		return append(mvs, NewWalkPromotion(src, dst))
	}
	return append(mvs, NewWalk(src, dst))
}

var comEffGold = []SquareWithWall{
	DirWWRD, DirWWD, DirWWLD, DirWWR, DirWWL, DirWWU,
}

// Per-kind melee effect directions, in the original scan order, seen from
// COM's side of the board.
var comEffectMelee = [15][]SquareWithWall{
	Pawn:   {DirWWD},
	Knight: {DirWWRDD, DirWWLDD},
	Silver: {DirWWRD, DirWWD, DirWWLD, DirWWRU, DirWWLU},
	Gold:   comEffGold,
	King: {
		DirWWRD, DirWWD, DirWWLD, DirWWR, DirWWL, DirWWRU, DirWWU, DirWWLU,
	},
	ProPawn:   comEffGold,
	ProLance:  comEffGold,
	ProKnight: comEffGold,
	ProSilver: comEffGold,
	Horse:     {DirWWD, DirWWR, DirWWL, DirWWU},
	Dragon:    {DirWWRD, DirWWLD, DirWWRU, DirWWLU},
}

var comEffBishop = []SquareWithWall{DirWWLU, DirWWRU, DirWWLD, DirWWRD}
var comEffRook = []SquareWithWall{DirWWU, DirWWD, DirWWL, DirWWR}

// Per-kind ranged effect directions, in the original scan order.
var comEffectRanged = [15][]SquareWithWall{
	Lance:  {DirWWD},
	Bishop: comEffBishop,
	Rook:   comEffRook,
	Horse:  comEffBishop,
	Dragon: comEffRook,
}

func generateMovesComDrop(mvs []Move, p *Position, dst int, bbPawnDrop Bitboard) []Move {
	var hand = p.hands[COM]

	if hand.Count(Pawn) > 0 && bbPawnDrop.TestSquare(dst) {
		mvs = append(mvs, NewDrop(Pawn, dst))
	}

	if hand.Count(Lance) > 0 && SquareRow(dst) != Row9 {
		mvs = append(mvs, NewDrop(Lance, dst))
	}

	if hand.Count(Knight) > 0 && SquareRow(dst) <= Row7 {
		mvs = append(mvs, NewDrop(Knight, dst))
	}

	if hand.Count(Silver) > 0 {
		mvs = append(mvs, NewDrop(Silver, dst))
	}
	if hand.Count(Gold) > 0 {
		mvs = append(mvs, NewDrop(Gold, dst))
	}
	if hand.Count(Bishop) > 0 {
		mvs = append(mvs, NewDrop(Bishop, dst))
	}
	if hand.Count(Rook) > 0 {
		mvs = append(mvs, NewDrop(Rook, dst))
	}

	return mvs
}
