package engine

import (
	"errors"

	. "github.com/shogihack/naitou/common"
)

// The replica keeps the original's quirks, including the places where
// u8 arithmetic wraps. Score fields therefore stay uint8 and rely on
// Go's wrapping unsigned arithmetic.

// ErrSuicideMove is returned by DoStep when the HUM move leaves the HUM
// king in check. A HUM pawn-drop mate is allowed, as in the original.
var ErrSuicideMove = errors.New("suicide move")

// ResponseKind classifies the engine's reply to a HUM move.
type ResponseKind int

const (
	// ResponseMove: a normal COM move.
	ResponseMove ResponseKind = iota

	// ResponseHumWin: the engine resigns. No COM move.
	ResponseHumWin

	// ResponseHumSuicide: COM wins because HUM played a suicide move.
	// No COM move.
	ResponseHumSuicide

	// ResponseComWin: the COM move checkmates the HUM king.
	ResponseComWin
)

// Response is the engine's reply to one DoStep, including what UndoStep
// needs to restore the previous state.
type Response struct {
	kind   ResponseKind
	umvCom UndoableMove
	undo   engineUndoInfo
}

func (r *Response) Kind() ResponseKind {
	return r.kind
}

// MoveCom returns the COM move if the response contains one.
func (r *Response) MoveCom() (UndoableMove, bool) {
	if r.kind == ResponseMove || r.kind == ResponseComWin {
		return r.umvCom, true
	}
	return UndoableMoveNone, false
}

// engineUndoInfo snapshots the engine state before a step.
type engineUndoInfo struct {
	umvHum           UndoableMove
	progressPly      int
	progressLevel    int
	progressLevelSub int
	bookState        BookState
	bestSrcValue     uint8
}

// responseRaw is a think result before the COM move is applied.
type responseRaw struct {
	kind            ResponseKind // ResponseMove, ResponseHumWin or ResponseHumSuicide
	bestMv          Move
	quiet           bool // no gain/loss square at the root and the best move is not a capture
	forceSkipBook   bool
	humIsCheckmated bool // the best move checkmates the HUM king
}

// RootEvaluation is the evaluation of the think-start position.
type RootEvaluation struct {
	// Value of the HUM piece on the best gain square.
	AdvPrice uint8

	// Value of the COM piece on the worst loss square.
	DisadvPrice uint8

	// Per side: 8*(rook+bishop in hand + promoted on board) +
	// 4*(gold+silver in hand) + 2*(knight+lance in hand) + pawns in
	// hand + ply factor.
	PowerHum uint8
	PowerCom uint8

	// COM rooks and bishops in hand plus promoted COM pieces.
	RbpCom uint8

	// King squares of both sides, reused by the leaf evaluation.
	KingSq [2]int
}

// LeafEvaluation is the evaluation of a position after a candidate
// move.
type LeafEvaluation struct {
	// Value of the captured piece (0 for a non-capture), revised.
	CapturePrice uint8

	// Value of the HUM piece on the best gain square, revised.
	AdvPrice uint8

	// Best gain square, SquareNone if none.
	AdvSq int

	// Value of the COM piece on the worst loss square, revised.
	DisadvPrice uint8

	// Worst loss square, SquareNone if none.
	DisadvSq int

	// Sum of HUM piece values over all gain squares, revised.
	ScorePosi uint8

	// Sum of COM piece values over all loss squares, revised.
	ScoreNega uint8

	// COM effect counts summed over squares within distance 2 of the
	// root HUM king square.
	HumKingThreatAround25 uint8

	// COM and HUM effect counts summed over squares within distance 2
	// of the root COM king square.
	ComKingSafetyAround25 uint8
	ComKingThreatAround25 uint8

	// HUM effect counts summed over squares at distance exactly 1 of
	// the root COM king square, and the number of those squares where
	// the HUM count is not below the COM count.
	ComKingThreatAround8     uint8
	ComKingChokeCountAround8 uint8

	// Distance from the move source (destination for a drop) to the
	// root COM king square.
	SrcToComKing uint8

	// Distance from the move destination to the root HUM king square.
	DstToHumKing uint8

	// A HUM dangling pawn or lance exists.
	HumHanging bool

	// Promoted COM pieces on the board.
	ComPromoCount uint8

	// Unprotected COM pieces, pawns/lances/knights/king excluded.
	ComLooseCount uint8

	// The HUM king is checkmated.
	HumIsCheckmated bool

	// The COM move left the COM king in check. Not part of the
	// original evaluation; it guards against the exchange-flag
	// corrections letting a suicide move through.
	IsSuicide bool
}

func newLeafEvaluation() LeafEvaluation {
	return LeafEvaluation{AdvSq: SquareNone, DisadvSq: SquareNone}
}

// worstLeafEvaluation is the initial best so far; any accepted
// candidate compares better.
func worstLeafEvaluation() LeafEvaluation {
	return LeafEvaluation{
		AdvSq:                    SquareNone,
		DisadvPrice:              99,
		DisadvSq:                 SquareNone,
		ScoreNega:                99,
		ComKingThreatAround25:    99,
		ComKingThreatAround8:     99,
		ComKingChokeCountAround8: 99,
		DstToHumKing:             99,
		HumHanging:               true,
		ComLooseCount:            99,
	}
}

// Engine replicates the original think routine. Between steps it holds
// a position with HUM to move, except after a resignation or a HUM
// suicide move.
type Engine struct {
	pos              *Position
	progressPly      int // 0..=100
	progressLevel    int // 0..=3
	progressLevelSub int // 0..=5, used only at progress level 0
	bookState        BookState

	// Needed when comparing a drop candidate against the best move.
	// The original never resets this per position, so it carries over.
	bestSrcValue uint8
}

// NewEngine creates an engine for the given handicap. When COM moves
// first its first move is played immediately and returned; otherwise
// the returned move is UndoableMoveNone.
func NewEngine(handicap Handicap) (*Engine, UndoableMove) {
	sideToMove, board, hands := handicap.Startpos()

	e := &Engine{
		pos:       NewPosition(sideToMove, board, hands),
		bookState: NewBookState(FormationFromHandicap(handicap)),
	}

	if e.pos.SideToMove() == HUM {
		return e, UndoableMoveNone
	}

	raw := e.think(MoveNone)
	if raw.kind != ResponseMove {
		panic("the first move should be a normal move")
	}
	traceResponseMove(raw.bestMv)
	traceThinkEnd()
	return e, e.doMoveCom(raw.bestMv)
}

// NewEngineFromPosition creates an engine on a bare diagram with HUM
// to move, for tsume-style problems that do not start from a game
// opening. The opening book is out of play and the progress counters
// start at zero.
func NewEngineFromPosition(sideToMove Side, board Board, hands Hands) (*Engine, error) {
	if sideToMove != HUM {
		return nil, errors.New("a diagram needs HUM to move")
	}
	return &Engine{
		pos:       NewPosition(sideToMove, board, hands),
		bookState: BookState{formation: FormationNothing},
	}, nil
}

// Clone returns an independent deep copy.
func (e *Engine) Clone() *Engine {
	clone := *e
	pos := *e.pos
	clone.pos = &pos
	return &clone
}

func (e *Engine) Position() *Position {
	return e.pos
}

func (e *Engine) ProgressPly() int {
	return e.progressPly
}

func (e *Engine) ProgressLevel() int {
	return e.progressLevel
}

func (e *Engine) ProgressLevelSub() int {
	return e.progressLevelSub
}

func (e *Engine) BookState() *BookState {
	return &e.bookState
}

// DoStep advances the game by the HUM move and the COM reply, if any.
// mvHum must be at least pseudo-legal; ErrSuicideMove is returned if it
// leaves the HUM king in check. The held position must have HUM to
// move.
//
// A matta-flagged move first runs a throwaway think pass on the same
// move: the board and book are restored afterwards, but the progress
// level bookkeeping keeps its update, which is the takeback trick's
// entire effect on the engine.
func (e *Engine) DoStep(mvHum Move) (*Response, error) {
	undo := engineUndoInfo{
		progressPly:      e.progressPly,
		progressLevel:    e.progressLevel,
		progressLevelSub: e.progressLevelSub,
		bookState:        e.bookState,
		bestSrcValue:     e.bestSrcValue,
	}

	if mvHum.IsMatta() {
		mvHum = mvHum.WithoutMatta()
		if err := e.thinkMatta(mvHum); err != nil {
			e.progressLevel = undo.progressLevel
			e.progressLevelSub = undo.progressLevelSub
			return nil, err
		}
	}

	umvHum, err := e.doMoveHum(mvHum)
	if err != nil {
		e.progressLevel = undo.progressLevel
		e.progressLevelSub = undo.progressLevelSub
		return nil, err
	}
	undo.umvHum = umvHum

	raw := e.think(mvHum)

	var resp *Response
	switch raw.kind {
	case ResponseMove:
		mvCom := raw.bestMv
		umvCom := e.doMoveCom(mvCom)
		if raw.humIsCheckmated {
			traceResponseComWin(mvCom)
			resp = &Response{kind: ResponseComWin, umvCom: umvCom, undo: undo}
		} else {
			traceResponseMove(mvCom)
			resp = &Response{kind: ResponseMove, umvCom: umvCom, undo: undo}
		}
	case ResponseHumWin:
		traceResponseHumWin()
		resp = &Response{kind: ResponseHumWin, undo: undo}
	case ResponseHumSuicide:
		traceResponseHumSuicide()
		resp = &Response{kind: ResponseHumSuicide, undo: undo}
	}

	traceThinkEnd()

	return resp, nil
}

// UndoStep reverts a DoStep, restoring position and engine state.
func (e *Engine) UndoStep(resp *Response) {
	if umvCom, ok := resp.MoveCom(); ok {
		e.pos.UndoMove(umvCom)
	}

	e.pos.UndoMove(resp.undo.umvHum)
	e.progressPly = resp.undo.progressPly
	e.progressLevel = resp.undo.progressLevel
	e.progressLevelSub = resp.undo.progressLevelSub
	e.bookState = resp.undo.bookState
	e.bestSrcValue = resp.undo.bestSrcValue
}

// thinkMatta runs the extra think pass of a takeback: the HUM move is
// played, the search runs, and everything except the progress level
// bookkeeping is rolled back.
func (e *Engine) thinkMatta(mvHum Move) error {
	umv := e.pos.DoMove(mvHum)
	if e.pos.IsChecked(HUM) {
		e.pos.UndoMove(umv)
		return ErrSuicideMove
	}

	bookState := e.bookState
	bestSrcValue := e.bestSrcValue

	rootEval := e.evaluateRoot()
	raw := e.thinkSearch(&rootEval)
	if raw.kind == ResponseMove && e.progressLevel == 0 && !raw.quiet {
		e.progressLevelSub++
		if e.progressLevelSub >= 5 {
			e.progressLevel = 1
		}
	}

	e.bookState = bookState
	e.bestSrcValue = bestSrcValue
	e.pos.UndoMove(umv)
	return nil
}

// think evaluates the COM-to-move position and picks a reply. The
// position is not advanced. mvHum is MoveNone for COM's first move.
func (e *Engine) think(mvHum Move) responseRaw {
	traceThinkStart(e.pos.Ply())
	tracePosition(e.pos)
	traceProgress(e.progressPly, e.progressLevel, e.progressLevelSub)
	traceFormation(e.bookState.Formation())

	rootEval := e.evaluateRoot()
	traceRootEval(&rootEval)

	raw := e.thinkSearch(&rootEval)

	// The book is consulted regardless of the search result when the
	// HUM move went to 22, 45 or 56 within the first progress plies.
	// The original allows ignoring a check this way; HUM suicide moves
	// never reach this point here.
	if mvHum != MoveNone {
		dst := mvHum.Dst()
		if e.progressPly <= 6 && (dst == SQ22 || dst == SQ45 || dst == SQ56) && e.progressLevel == 0 {
			if bookMv, ok := e.thinkBook(mvHum); ok {
				return responseRaw{kind: ResponseMove, bestMv: bookMv}
			}
			// Out of book; the book is never consulted again.
			e.progressLevel = 1
		}
	}

	if raw.kind == ResponseMove {
		// At progress level 0 every non-quiet reply bumps the sub
		// level; at 5 the progress level moves to 1.
		if e.progressLevel == 0 && !raw.quiet {
			e.progressLevelSub++
			if e.progressLevelSub >= 5 {
				e.progressLevel = 1
			}
		}

		if e.progressLevel == 0 && raw.quiet && !raw.forceSkipBook {
			if bookMv, ok := e.thinkBook(mvHum); ok {
				return responseRaw{kind: ResponseMove, bestMv: bookMv}
			}
			e.progressLevel = 1
		}
	}

	return raw
}

// thinkSearch picks a move by the one-ply candidate scan, without the
// book.
func (e *Engine) thinkSearch(rootEval *RootEvaluation) responseRaw {
	// A root gain score past the threshold means the HUM king could be
	// captured, i.e. HUM played a suicide move.
	if rootEval.AdvPrice >= 30 {
		return responseRaw{kind: ResponseHumSuicide}
	}

	bestMv := MoveNone
	bestEval := worstLeafEvaluation()

	var buf [MaxMoves]Move
	mvs := GenerateMovesCom(buf[:0], e.pos)

	done := false
	for _, mv := range mvs {
		umv := e.pos.DoMove(mv)

		traceCandStart(mv)

		leafEval, accepted := e.evaluateLeaf(rootEval, umv)
		if accepted {
			e.reviseLeafEvaluation(rootEval, umv, &leafEval)
			traceLeafEval("revised", &leafEval)

			if leafEval.HumIsCheckmated {
				traceHumIsCheckmated()
			}

			if leafEval.HumIsCheckmated || e.canImproveBest(rootEval, &bestEval, &leafEval, umv) {
				bestMv = mv
				bestEval = leafEval
				// Only drop-vs-best comparisons need this value, so a
				// walk can store 0 (the original stores its own source
				// encoding).
				if umv.IsDrop() {
					e.bestSrcValue = comDropSrcValue(umv.DroppedPieceKind())
				} else {
					e.bestSrcValue = 0
				}
			}

			if leafEval.HumIsCheckmated {
				done = true
			}
		}

		traceBest(bestMv, &bestEval)
		traceCandEnd()

		e.pos.UndoMove(umv)

		if done {
			break
		}
	}

	// If even the best move loses the COM king, resign. The suicide
	// flag covers the rare case where exchange-flag corrections push
	// DisadvPrice under the threshold with the COM king still en prise.
	if bestEval.DisadvPrice >= 31 || bestEval.IsSuicide {
		return responseRaw{kind: ResponseHumWin}
	}

	if bestMv == MoveNone {
		panic("at least 1 move should be accepted")
	}

	quiet := rootEval.AdvPrice == 0 && rootEval.DisadvPrice == 0 && bestEval.CapturePrice == 0

	// Skip the book when several promising gain squares seem to exist.
	forceSkipBook := bestEval.ScorePosi != bestEval.AdvPrice && bestEval.ScorePosi >= 8

	return responseRaw{
		kind:            ResponseMove,
		bestMv:          bestMv,
		quiet:           quiet,
		forceSkipBook:   forceSkipBook,
		humIsCheckmated: bestEval.HumIsCheckmated,
	}
}

// evaluateRoot evaluates the think-start position.
func (e *Engine) evaluateRoot() RootEvaluation {
	var advPrice uint8
	e.forEachAdvantageSquare(func(sq int, pk PieceKind) {
		if piecePriceB[pk] > advPrice {
			advPrice = piecePriceB[pk]
		}
	})

	// The exchange flag can shave the maximum afterwards; the max is
	// taken first, so this cannot underflow.
	var disadvPrice uint8
	e.forEachDisadvantageSquare(func(sq int, pk PieceKind, exchange bool) {
		if piecePriceD[pk] > disadvPrice {
			disadvPrice = piecePriceD[pk]
		}
		if exchange {
			disadvPrice--
		}
	})

	bbPromo := e.pos.BBPieceKind(ProPawn).
		Or(e.pos.BBPieceKind(ProLance)).
		Or(e.pos.BBPieceKind(ProKnight)).
		Or(e.pos.BBPieceKind(ProSilver)).
		Or(e.pos.BBPieceKind(Horse)).
		Or(e.pos.BBPieceKind(Dragon))
	humPromoCount := bbPromo.And(e.pos.BBOccupiedSide(HUM)).CountOnes()
	comPromoCount := bbPromo.And(e.pos.BBOccupiedSide(COM)).CountOnes()

	handHum := e.pos.Hand(HUM)
	handCom := e.pos.Hand(COM)

	// Ply factor, doubled from move 77 on.
	plyFactor := e.progressPly / 11
	if plyFactor >= 7 {
		plyFactor *= 2
	}

	// The power sums can exceed a u8; the original wraps here too.
	powerHum := uint8(8*(humPromoCount+handHum.Count(Rook)+handHum.Count(Bishop)) +
		4*(handHum.Count(Gold)+handHum.Count(Silver)) +
		2*(handHum.Count(Knight)+handHum.Count(Lance)) +
		handHum.Count(Pawn) +
		plyFactor)

	rbpCom := uint8(comPromoCount + handCom.Count(Rook) + handCom.Count(Bishop))

	powerCom := uint8(8*int(rbpCom) +
		4*(handCom.Count(Gold)+handCom.Count(Silver)) +
		2*(handCom.Count(Knight)+handCom.Count(Lance)) +
		handCom.Count(Pawn) +
		plyFactor)

	return RootEvaluation{
		AdvPrice:    advPrice,
		DisadvPrice: disadvPrice,
		PowerHum:    powerHum,
		PowerCom:    powerCom,
		RbpCom:      rbpCom,
		KingSq:      [2]int{e.pos.KingSquare(HUM), e.pos.KingSquare(COM)},
	}
}

// evaluateLeaf evaluates the position after a candidate move. The
// second return value is false when the candidate is rejected: a
// pawn-drop mate, or a sacrifice (destination on a loss square without
// a capture) that neither answers a check nor mates.
func (e *Engine) evaluateLeaf(rootEval *RootEvaluation, umv UndoableMove) (LeafEvaluation, bool) {
	humKingSq := rootEval.KingSq[HUM]
	comKingSq := rootEval.KingSq[COM]

	leafEval := newLeafEvaluation()
	sacrifice := false

	if pc := umv.PieceCaptured(); pc != NoPiece {
		leafEval.CapturePrice = piecePriceA[pc.Kind()]
	}

	e.forEachAdvantageSquare(func(sq int, pk PieceKind) {
		price := piecePriceB[pk]
		leafEval.ScorePosi += price
		if price > leafEval.AdvPrice {
			leafEval.AdvPrice = price
			leafEval.AdvSq = sq
		}
	})

	e.forEachDisadvantageSquare(func(sq int, pk PieceKind, exchange bool) {
		if umv.Dst() == sq && leafEval.CapturePrice == 0 {
			sacrifice = true
		}

		price := piecePriceD[pk]
		leafEval.ScoreNega += price
		if price > leafEval.DisadvPrice {
			leafEval.DisadvPrice = price
			leafEval.DisadvSq = sq
		}

		if exchange {
			leafEval.ScoreNega--
			leafEval.DisadvPrice--
		}
	})

	// The mate check requires: COM king not capturable, HUM king in
	// check, and the move destination close to the HUM king. A distant
	// check can therefore miss a real mate, which only postpones the
	// end by one HUM suicide move.
	leafEval.HumIsCheckmated = leafEval.DisadvPrice < 30 &&
		leafEval.AdvPrice >= 30 &&
		SquareDistance(umv.Dst(), humKingSq) < 3 &&
		e.pos.IsCheckmatedNaitou()
	if leafEval.HumIsCheckmated {
		if umv.IsDrop() && umv.DroppedPieceKind() == Pawn {
			traceCandReject("drop pawn mate")
			return leafEval, false
		}
		// Pin the evaluation so no later candidate overrides a mate.
		leafEval.AdvPrice = 60
		leafEval.CapturePrice = 60
		leafEval.DisadvPrice = 0
	}

	if sacrifice && rootEval.DisadvPrice < 30 && !leafEval.HumIsCheckmated {
		traceCandReject("sacrifice")
		return leafEval, false
	}

	// King safety terms use the root king squares, as the original
	// does.
	effHum := e.pos.EffectBoard(HUM)
	effCom := e.pos.EffectBoard(COM)

	Around25(humKingSq).ForEachSquare(func(sq int) {
		leafEval.HumKingThreatAround25 += effCom[sq]
	})

	Around25(comKingSq).ForEachSquare(func(sq int) {
		leafEval.ComKingSafetyAround25 += effCom[sq]
		leafEval.ComKingThreatAround25 += effHum[sq]
	})
	KingEffect(comKingSq).ForEachSquare(func(sq int) {
		leafEval.ComKingThreatAround8 += effHum[sq]
		if effHum[sq] >= effCom[sq] {
			leafEval.ComKingChokeCountAround8++
		}
	})

	if umv.IsDrop() {
		leafEval.SrcToComKing = uint8(SquareDistance(umv.Dst(), comKingSq))
	} else {
		leafEval.SrcToComKing = uint8(SquareDistance(umv.Src(), comKingSq))
	}
	leafEval.DstToHumKing = uint8(SquareDistance(umv.Dst(), humKingSq))

	// A HUM pawn/lance within the front four rows whose square above is
	// losing the effect fight counts as a dangling pawn/lance. A
	// pawn/lance on the last enemy row is assumed not to exist.
	bbPawnLance := ForwardRowsBB(HUM, Row5).
		And(e.pos.BBOccupiedSide(HUM)).
		And(e.pos.BBPieceKind(Pawn).Or(e.pos.BBPieceKind(Lance)))
	bb := bbPawnLance.ShiftRightParts(1)
	for !bb.IsZero() {
		sq := bb.PopLeastSquare()
		if effHum[sq] > effCom[sq] {
			leafEval.HumHanging = true
			break
		}
	}

	// Loose COM pieces; pawns, lances, knights and the king do not
	// count.
	bbLoose := e.pos.BBPieceKind(Pawn).
		Or(e.pos.BBPieceKind(Lance)).
		Or(e.pos.BBPieceKind(Knight)).
		Or(e.pos.BBPieceKind(King)).
		AndNot(e.pos.BBOccupiedSide(COM))
	bbLoose.ForEachSquare(func(sq int) {
		if effCom[sq] == 0 {
			leafEval.ComLooseCount++
		}
	})

	bbPromo := e.pos.BBPieceKind(ProPawn).
		Or(e.pos.BBPieceKind(ProLance)).
		Or(e.pos.BBPieceKind(ProKnight)).
		Or(e.pos.BBPieceKind(ProSilver)).
		Or(e.pos.BBPieceKind(Horse)).
		Or(e.pos.BBPieceKind(Dragon))
	leafEval.ComPromoCount = uint8(e.pos.BBOccupiedSide(COM).And(bbPromo).CountOnes())

	leafEval.IsSuicide = e.pos.IsChecked(COM)

	return leafEval, true
}

// reviseLeafEvaluation applies the original's pile of ad-hoc
// corrections to a leaf evaluation.
func (e *Engine) reviseLeafEvaluation(rootEval *RootEvaluation, umv UndoableMove, leafEval *LeafEvaluation) {
	humKingSq := rootEval.KingSq[HUM]
	comKingSq := rootEval.KingSq[COM]

	dstToComKing := uint8(SquareDistance(umv.Dst(), comKingSq))

	// Kind of the arriving piece, drop or walk.
	var pkDst PieceKind
	if umv.IsDrop() {
		pkDst = umv.DroppedPieceKind()
	} else {
		pkDst = umv.PieceDst().Kind()
	}

	// Favor capturing with an unpromoted pawn while king, dragon and
	// horse are safe.
	if leafEval.DisadvPrice < 20 && leafEval.CapturePrice > 0 && pkDst == Pawn {
		traceRevise("capture by pawn")
		leafEval.ScoreNega--
	}

	traceLeafEval("initial", leafEval)

	if leafEval.HumHanging {
		traceRevise("hum hanging")
		leafEval.ScoreNega += 4
	}

	// From the midgame on, losing a pawn far from the COM king is a
	// don't-care.
	if (rootEval.PowerHum >= 15 || rootEval.PowerCom >= 15) && leafEval.ScoreNega < 3 {
		if leafEval.DisadvSq != SquareNone && SquareDistance(comKingSq, leafEval.DisadvSq) >= 4 {
			traceRevise("midgame attacked pawn")
			leafEval.ScoreNega -= leafEval.DisadvPrice
		}
	}

	// Endgame corrections.
	if rootEval.PowerHum >= 25 || rootEval.PowerCom >= 25 {
		// A best gain square far from both kings does not matter.
		if leafEval.AdvSq != SquareNone &&
			SquareDistance(humKingSq, leafEval.AdvSq) >= 4 &&
			SquareDistance(comKingSq, leafEval.AdvSq) >= 3 {
			traceRevise("endgame unimportant adv sq")
			leafEval.ScorePosi -= leafEval.AdvPrice
		}

		// Neither does losing a cheap piece far from both kings.
		if leafEval.DisadvSq != SquareNone &&
			leafEval.DisadvPrice < 7 &&
			SquareDistance(humKingSq, leafEval.DisadvSq) >= 3 &&
			SquareDistance(comKingSq, leafEval.DisadvSq) >= 3 {
			traceRevise("endgame unimportant cheap disadv sq")
			leafEval.ScoreNega -= leafEval.DisadvPrice
		}

		if leafEval.CapturePrice > 0 {
			if leafEval.DstToHumKing <= 2 {
				traceRevise("endgame capture near hum king")
				leafEval.CapturePrice += 2
			} else if leafEval.DstToHumKing >= 4 && dstToComKing >= 4 {
				traceRevise("endgame unimportant capture")
				leafEval.CapturePrice -= 3
			}
		}
	}

	// No pointless checks while an attack cannot succeed, except for
	// a check that also forks something.
	if leafEval.AdvPrice >= 30 &&
		leafEval.HumKingThreatAround25 < 12 &&
		rootEval.RbpCom < 4 &&
		rootEval.PowerCom < 35 &&
		leafEval.ScorePosi-leafEval.AdvPrice < 3 {
		traceRevise("useless check")
		leafEval.ScorePosi -= leafEval.AdvPrice
	}

	// Dropping a valuable piece on the own half far from both kings is
	// bad, unless it blocks a check.
	if umv.IsDrop() &&
		Silver <= pkDst && pkDst <= Gold &&
		SquareRow(umv.Dst()) <= Row5 &&
		rootEval.DisadvPrice < 30 &&
		leafEval.DstToHumKing >= 3 &&
		dstToComKing >= 3 {
		traceRevise("useless drop")
		leafEval.ScoreNega += 2
	}

	// With a large hand, captures rate higher.
	if rootEval.PowerCom >= 27 {
		if leafEval.ScorePosi >= 6 {
			traceRevise("increase capture price")
			leafEval.CapturePrice += 4
		} else if leafEval.ScorePosi >= 3 {
			traceRevise("increase capture price")
			leafEval.CapturePrice++
		}
	}

	// A rook or bishop drop rates better the deeper it lands; dropping
	// it as an interposition carries no penalty.
	if umv.IsDrop() && (pkDst == Bishop || pkDst == Rook) {
		row := SquareRow(umv.Dst())
		if row >= Row8 {
			traceRevise("good rook/bishop drop")
			leafEval.ScorePosi += 2
			leafEval.ScoreNega -= 2
		} else if rootEval.DisadvPrice < 30 {
			traceRevise("bad rook/bishop drop")
			leafEval.ScorePosi -= 2
			leafEval.ScoreNega += 2
			if row <= Row4 {
				leafEval.ScoreNega += 2
			}
		}
	}

	// Prefer capturing with anything but the king. The original
	// subtracts even for a non-capture king move.
	if pkDst == King {
		traceRevise("capture by king")
		leafEval.CapturePrice--
		leafEval.ScorePosi -= 2
	}

	// With plenty of material and the HUM king under pressure, cheap
	// gain squares near the king still count. The original applies
	// this even without a gain square.
	if rootEval.PowerCom >= 31 &&
		leafEval.AdvPrice < 4 &&
		leafEval.DisadvPrice == 0 &&
		leafEval.HumKingThreatAround25 >= 7 &&
		squareDistanceFrom(leafEval.AdvSq, comKingSq) <= 2 {
		traceRevise("cheap adv sq near hum king")
		leafEval.ScorePosi += (leafEval.HumKingThreatAround25 - 7) / 2
	}

	// Avoid initiating a bishop exchange.
	if leafEval.AdvPrice == 16 && pkDst == Bishop {
		traceRevise("inhibit bishop exchange")
		leafEval.ScorePosi -= leafEval.AdvPrice
		leafEval.AdvPrice = 0
	}

	// With plenty of material, hoarding a rook/bishop in hand costs
	// more the more squeezed the COM king is.
	if rootEval.PowerCom >= 27 && !(umv.IsDrop() && (pkDst == Bishop || pkDst == Rook)) {
		traceRevise("keep rook/bishop in emergency")
		penalty := 4 * leafEval.ComKingChokeCountAround8
		leafEval.ScorePosi -= penalty
		leafEval.ScoreNega += penalty
	}

	// While winning, capturing a valuable piece near the HUM king is
	// worth a loss elsewhere.
	if leafEval.CapturePrice >= 8 &&
		HSilver <= umv.PieceCaptured() && umv.PieceCaptured() <= HKing &&
		(leafEval.AdvPrice >= 30 || squareDistanceFrom(leafEval.AdvSq, humKingSq) < 3) &&
		rootEval.PowerCom >= 30 &&
		leafEval.HumKingThreatAround25 >= 7 &&
		rootEval.RbpCom >= 4 {
		traceRevise("capture near hum king")
		leafEval.ScorePosi += 2
		if 8 <= leafEval.DisadvPrice && leafEval.DisadvPrice < 30 {
			leafEval.ScoreNega = 8
			leafEval.DisadvPrice = 8
		}
	}

	// A king capture is worthless while the COM king is in danger. The
	// original reads out of bounds here for drops; that part is not
	// reproduced.
	if leafEval.ComKingThreatAround8 >= 5 && pkDst == King {
		traceRevise("capture by king in emergency")
		leafEval.CapturePrice = 0
	}

	// With plenty of material, favor capturing checks.
	if rootEval.PowerCom >= 35 && leafEval.AdvPrice >= 30 && leafEval.CapturePrice >= 2 {
		traceRevise("capturing check")
		leafEval.ScoreNega -= 2
	}

	// With some material, pad a small capture price from the gain
	// score.
	if rootEval.PowerCom >= 20 && leafEval.CapturePrice < 2 {
		if leafEval.ScorePosi >= 5 {
			traceRevise("cheap capture price")
		}
		switch {
		case leafEval.ScorePosi >= 20:
			leafEval.CapturePrice += 3
		case leafEval.ScorePosi >= 10:
			leafEval.CapturePrice += 2
		case leafEval.ScorePosi >= 5:
			leafEval.CapturePrice++
		}
	}

	// A rook or bishop dropped outside the enemy camp rates lower.
	if umv.IsDrop() && (pkDst == Bishop || pkDst == Rook) && SquareRow(umv.Dst()) <= Row6 {
		traceRevise("bad rook/bishop drop 2")
		leafEval.ScorePosi -= 3
		leafEval.ScoreNega += 3
	}

	// Moving a promoted piece toward the HUM king rates higher.
	if !umv.IsDrop() && umv.PieceSrc().Kind().IsPromoted() {
		traceRevise("promoted walk")
		value := uint8(SquareDistance(umv.Src(), humKingSq)) - uint8(SquareDistance(umv.Dst(), humKingSq))
		leafEval.ScorePosi += value
	}

	// With plenty of material, checks rate higher.
	if rootEval.PowerCom >= 25 && leafEval.AdvPrice >= 30 {
		traceRevise("check with power")
		leafEval.ScorePosi += 4
		leafEval.CapturePrice++
		leafEval.ScoreNega -= 2
	}

	// A check that also captures a valuable piece rates higher still.
	if leafEval.AdvPrice >= 30 && leafEval.CapturePrice >= 8 {
		traceRevise("good capturing check")
		leafEval.ScoreNega -= 4
	}

	// Negative (wrapped) scores saturate at 0.
	saturateNegative(&leafEval.CapturePrice)
	saturateNegative(&leafEval.ScorePosi)
	saturateNegative(&leafEval.ScoreNega)
}

func saturateNegative(x *uint8) {
	if *x&0x80 != 0 {
		*x = 0
	}
}

// canImproveBest reports whether the candidate beats the current best
// move.
func (e *Engine) canImproveBest(rootEval *RootEvaluation, bestEval, leafEval *LeafEvaluation, umv UndoableMove) bool {
	// A suicide candidate never beats a non-suicide best and vice
	// versa. The threshold is tight: exchange-flag corrections can let
	// a suicide move slip through.
	if leafEval.DisadvPrice >= 40 && bestEval.DisadvPrice < 40 {
		traceCmp("suicide", false)
		return false
	}
	if leafEval.DisadvPrice < 40 && bestEval.DisadvPrice >= 40 {
		traceCmp("suicide", true)
		return true
	}

	// ScoreNega first: what is lost right now outweighs what might be
	// won next.
	switch {
	case leafEval.ScoreNega > bestEval.ScoreNega:
		switch {
		case leafEval.CapturePrice < bestEval.CapturePrice:
			traceCmp("nega worse, capture price worse", false)
			return false
		case leafEval.CapturePrice > bestEval.CapturePrice:
			// Take the candidate if the capture gain covers the extra
			// loss.
			improved := leafEval.CapturePrice-bestEval.CapturePrice >= leafEval.ScoreNega-bestEval.ScoreNega
			traceCmp("nega worse, capture price better", improved)
			return improved
		default:
			// Equal capture price: only a clearly better gain score
			// with some material can justify the extra loss.
			improved := false
			if rootEval.PowerCom >= 18 &&
				leafEval.CapturePrice == 0 &&
				leafEval.ScorePosi > bestEval.ScorePosi {
				improved = leafEval.ScorePosi-bestEval.ScorePosi > leafEval.ScoreNega-bestEval.ScoreNega
			}
			traceCmp("nega worse, capture price equal", improved)
			return improved
		}

	case leafEval.ScoreNega < bestEval.ScoreNega:
		// A hopeless best is replaced outright.
		if 30 <= bestEval.ScoreNega && bestEval.ScoreNega < 80 {
			traceCmp("nega better, extreme", true)
			return true
		}

		switch {
		case leafEval.CapturePrice > bestEval.CapturePrice:
			traceCmp("nega better, capture price better", true)
			return true
		case leafEval.CapturePrice < bestEval.CapturePrice:
			dcapture := bestEval.CapturePrice - leafEval.CapturePrice
			dnega := bestEval.ScoreNega - leafEval.ScoreNega
			if dnega != dcapture {
				improved := dnega > dcapture
				traceCmp("nega better, capture price worse", improved)
				return improved
			}
			// Tie break below.
		default:
			if rootEval.PowerCom >= 18 &&
				leafEval.CapturePrice == 0 &&
				leafEval.ScorePosi < bestEval.ScorePosi {
				dposi := bestEval.ScorePosi - leafEval.ScorePosi
				dnega := bestEval.ScoreNega - leafEval.ScoreNega
				if dnega != dposi {
					improved := dnega > dposi
					traceCmp("nega better, capture price equal", improved)
					return improved
				}
				// Tie break below.
			} else {
				traceCmp("nega better, capture price equal", true)
				return true
			}
		}

	default:
		if leafEval.CapturePrice != bestEval.CapturePrice {
			improved := leafEval.CapturePrice > bestEval.CapturePrice
			traceCmp("nega equal", improved)
			return improved
		}
		// Tie break below.
	}

	// Tie breaks, in order.

	if leafEval.ComPromoCount != bestEval.ComPromoCount {
		improved := leafEval.ComPromoCount > bestEval.ComPromoCount
		traceCmp("com promo count", improved)
		return improved
	}

	if leafEval.ScorePosi != bestEval.ScorePosi {
		improved := leafEval.ScorePosi > bestEval.ScorePosi
		traceCmp("score posi", improved)
		return improved
	}

	if leafEval.AdvPrice != bestEval.AdvPrice {
		improved := leafEval.AdvPrice > bestEval.AdvPrice
		traceCmp("adv price", improved)
		return improved
	}

	if umv.IsDrop() {
		// A walk beats a drop except when interposing; among
		// interpositions the cheaper drop wins. bestSrcValue is never
		// reset per position, so a stale value can leak in here, as in
		// the original.
		if rootEval.DisadvPrice < 30 {
			traceCmp("prefer walk", false)
			return false
		}
		improved := comDropSrcValue(umv.DroppedPieceKind()) < e.bestSrcValue
		traceCmp("drop prefer cheap", improved)
		return improved
	}

	if leafEval.HumKingThreatAround25 != bestEval.HumKingThreatAround25 {
		improved := leafEval.HumKingThreatAround25 > bestEval.HumKingThreatAround25
		traceCmp("walk hum king threat around25", improved)
		return improved
	}

	if leafEval.ComKingSafetyAround25 != bestEval.ComKingSafetyAround25 {
		improved := leafEval.ComKingSafetyAround25 > bestEval.ComKingSafetyAround25
		traceCmp("walk com king safety around25", improved)
		return improved
	}

	if leafEval.ComKingThreatAround25 != bestEval.ComKingThreatAround25 {
		improved := bestEval.ComKingThreatAround25 > leafEval.ComKingThreatAround25
		traceCmp("walk com king threat around25", improved)
		return improved
	}

	if leafEval.ComLooseCount != bestEval.ComLooseCount {
		improved := bestEval.ComLooseCount > leafEval.ComLooseCount
		traceCmp("walk com loose count", improved)
		return improved
	}

	// When the moved piece starts far from the COM king, closer to the
	// HUM king wins.
	if leafEval.SrcToComKing >= 3 && leafEval.DstToHumKing != bestEval.DstToHumKing {
		improved := bestEval.DstToHumKing > leafEval.DstToHumKing
		traceCmp("walk dst to hum king", improved)
		return improved
	}

	// Last resort: keep the pieces around the own king in place.
	improved := leafEval.SrcToComKing > bestEval.SrcToComKing
	traceCmp("walk src to com king", improved)
	return improved
}

// thinkBook returns the next acceptable book move, if any. Rejected
// book moves stay consumed.
func (e *Engine) thinkBook(mvHum Move) (Move, bool) {
	traceBookStart()

	for {
		bookMv, ok := e.bookState.NextMove(e.pos, e.progressPly)
		if !ok {
			return MoveNone, false
		}

		if !e.bookMoveIsLegal(bookMv) {
			continue
		}

		// The destination must be won on effect counts.
		if e.pos.EffectBoard(HUM)[bookMv.Dst()] >= e.pos.EffectBoard(COM)[bookMv.Dst()] {
			continue
		}

		// A book move losing material is rejected, except right after
		// an early HUM move to 45. That exception looks deliberate: it
		// lets the early knight jump break through 53.
		disadvPrice := e.evaluateBookMove(bookMv)
		if disadvPrice > 0 && !(e.progressPly <= 6 && mvHum != MoveNone && mvHum.Dst() == SQ45) {
			continue
		}

		traceBookAccept(bookMv)
		return bookMv, true
	}
}

// bookMoveIsLegal checks a book move against the position. Book moves
// are never drops or promotions.
func (e *Engine) bookMoveIsLegal(mv Move) bool {
	pcDst := e.pos.Board()[mv.Dst()]
	if pcDst != NoPiece && pcDst.Side() == COM {
		return false
	}

	pcSrc := e.pos.Board()[mv.Src()]
	if pcSrc == NoPiece || pcSrc.Side() != COM {
		return false
	}

	if !Effect(pcSrc, mv.Src(), e.pos.BBOccupied()).TestSquare(mv.Dst()) {
		return false
	}

	// A king move into a HUM effect is out. Losing moves are filtered
	// later, which covers the remaining suicide cases.
	if pcSrc == CKing && e.pos.EffectBoard(HUM)[mv.Dst()] != 0 {
		return false
	}

	return true
}

// evaluateBookMove plays the book move and returns the resulting
// disadvantage price.
func (e *Engine) evaluateBookMove(mv Move) uint8 {
	umv := e.pos.DoMove(mv)

	var disadvPrice uint8
	e.forEachDisadvantageSquare(func(sq int, pk PieceKind, exchange bool) {
		if piecePriceD[pk] > disadvPrice {
			disadvPrice = piecePriceD[pk]
		}
		if exchange {
			disadvPrice--
		}
	})

	e.pos.UndoMove(umv)

	return disadvPrice
}

// forEachAdvantageSquare visits the gain squares (HUM piece the COM
// side can win) in the original scan order, with the HUM piece kind.
func (e *Engine) forEachAdvantageSquare(f func(sq int, pk PieceKind)) {
	board := e.pos.Board()
	effHum := e.pos.EffectBoard(HUM)
	effCom := e.pos.EffectBoard(COM)

	for _, sq := range NaitouSquares {
		pc := board[sq]
		if pc == NoPiece || pc.Side() != HUM {
			continue
		}
		pk := pc.Kind()

		if effCom[sq] == 0 {
			continue
		}

		if effHum[sq] == 0 {
			f(sq, pk)
			continue
		}

		// Contested square: compare the HUM piece against the cheapest
		// COM attacker. An equal price counts as a gain once past
		// progress level 0. The original lets HUM check with the king
		// through the latter rule; such moves are never generated
		// here.
		atkCom := Attacker(e.pos, COM, sq)
		pricePcHum := piecePriceB[pk]
		priceAtkCom := piecePriceB[atkCom]
		if priceAtkCom < pricePcHum || (priceAtkCom == pricePcHum && e.progressLevel != 0) {
			f(sq, pk)
		}
	}
}

// forEachDisadvantageSquare visits the loss squares (COM piece the HUM
// side can win) in the original scan order, with the COM piece kind and
// the exchange flag. The flag latches: once a recapture is possible it
// stays set for the rest of the scan.
func (e *Engine) forEachDisadvantageSquare(f func(sq int, pk PieceKind, exchange bool)) {
	board := e.pos.Board()
	effHum := e.pos.EffectBoard(HUM)
	effCom := e.pos.EffectBoard(COM)

	exchange := false

	for _, sq := range NaitouSquares {
		pc := board[sq]
		if pc == NoPiece || pc.Side() != COM {
			continue
		}
		pk := pc.Kind()

		if effHum[sq] == 0 {
			continue
		}

		// A checked COM king is always a loss square.
		if pk == King {
			f(sq, pk, exchange)
			continue
		}

		if effCom[sq] == 0 {
			f(sq, pk, exchange)
			continue
		}

		atkHum := Attacker(e.pos, HUM, sq)
		atkCom := Attacker(e.pos, COM, sq)

		pricePcCom := piecePriceD[pk]
		priceAtkHum := piecePriceC[atkHum]
		priceAtkCom := piecePriceD[atkCom]

		if effCom[sq] < effHum[sq] {
			// Outnumbered: a loss square when piece plus backup are
			// worth at least the HUM attacker.
			if pricePcCom+priceAtkCom >= priceAtkHum {
				f(sq, pk, exchange)
			}
		} else if pricePcCom > priceAtkHum {
			// Not outnumbered, so a recapture is available.
			exchange = true
			f(sq, pk, exchange)
		}
	}
}

// doMoveHum plays the HUM move and advances the progress counters.
func (e *Engine) doMoveHum(mv Move) (UndoableMove, error) {
	umv := e.pos.DoMove(mv)
	if e.pos.IsChecked(HUM) {
		e.pos.UndoMove(umv)
		return UndoableMoveNone, ErrSuicideMove
	}

	e.incrementProgressPly()
	if e.progressPly >= 51 {
		e.progressLevel = Min(e.progressLevel+1, 2)
	}
	if e.progressPly >= 71 {
		e.progressLevel = 3
	}

	return umv, nil
}

// doMoveCom plays the COM move; only the ply counter advances.
func (e *Engine) doMoveCom(mv Move) UndoableMove {
	umv := e.pos.DoMove(mv)
	e.incrementProgressPly()
	return umv
}

func (e *Engine) incrementProgressPly() {
	e.progressPly = Min(e.progressPly+1, 100)
}
