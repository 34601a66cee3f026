package engine

import (
	"testing"

	. "github.com/shogihack/naitou/common"
)

var allHandicaps = []Handicap{
	HumSenteSikenbisha,
	HumSenteNakabisha,
	HumHishaochi,
	HumNimaiochi,
	ComSenteSikenbisha,
	ComSenteNakabisha,
	ComHishaochi,
	ComNimaiochi,
}

func TestHandicapRoundTrip(t *testing.T) {
	for _, h := range allHandicaps {
		got, err := ParseHandicap(h.String())
		if err != nil {
			t.Fatalf("ParseHandicap(%q): %v", h.String(), err)
		}
		if got != h {
			t.Errorf("ParseHandicap(%q) = %v", h.String(), got)
		}
	}
	if _, err := ParseHandicap("humsentesikenbisha"); err != nil {
		t.Errorf("ParseHandicap is case sensitive: %v", err)
	}
	if _, err := ParseHandicap("Yagura"); err == nil {
		t.Errorf("ParseHandicap accepted an unknown name")
	}
}

func TestHandicapFromStartpos(t *testing.T) {
	for _, h := range allHandicaps {
		sideToMove, board, hands := h.Startpos()
		var timelimit = h == HumSenteNakabisha || h == ComSenteNakabisha
		got, err := HandicapFromStartpos(sideToMove, &board, &hands, timelimit)
		if err != nil {
			t.Fatalf("HandicapFromStartpos(%v): %v", h, err)
		}
		if got != h {
			t.Errorf("HandicapFromStartpos(%v) = %v", h, got)
		}
	}
}

func TestHandicapSideToMove(t *testing.T) {
	for _, h := range allHandicaps {
		var want = COM
		switch h {
		case HumSenteSikenbisha, HumSenteNakabisha, HumHishaochi, HumNimaiochi:
			want = HUM
		}
		if h.SideToMove() != want {
			t.Errorf("%v: side to move = %v, want %v", h, h.SideToMove(), want)
		}
	}
}

func TestSquareValue(t *testing.T) {
	var cases = []struct {
		sq   int
		want uint8
	}{
		{SQ11, 20},
		{SQ91, 12},
		{SQ19, 108},
		{SQ99, 100},
		{SQ55, 60},
	}
	for _, c := range cases {
		if got := squareValue(c.sq); got != c.want {
			t.Errorf("squareValue(%s) = %d, want %d", SquareName(c.sq), got, c.want)
		}
	}
}

func TestSquareDistanceFrom(t *testing.T) {
	if got := squareDistanceFrom(SQ11, SQ99); got != 8 {
		t.Errorf("squareDistanceFrom(11, 99) = %d", got)
	}
	// SquareNone counts as the out-of-board point next to 19.
	if got := squareDistanceFrom(SquareNone, SQ99); got != 1 {
		t.Errorf("squareDistanceFrom(none, 99) = %d", got)
	}
	if got := squareDistanceFrom(SquareNone, SQ11); got != 9 {
		t.Errorf("squareDistanceFrom(none, 11) = %d", got)
	}
}

func TestAttacker(t *testing.T) {
	var pos = NewPosition(HumSenteSikenbisha.Startpos())

	// The pawn on 33 is the only COM piece with an effect on 34.
	if got := Attacker(pos, COM, SQ34); got != Pawn {
		t.Errorf("Attacker(COM, 34) = %v", got)
	}

	// 78 is covered by the silver on 79, the gold on 69 and the rook on
	// 28; silver and gold tie on price and the silver sits on the
	// smaller square value.
	if got := Attacker(pos, HUM, SQ78); got != Silver {
		t.Errorf("Attacker(HUM, 78) = %v", got)
	}

	if got := Attacker(pos, HUM, SQ55); got != NoPieceKind {
		t.Errorf("Attacker(HUM, 55) = %v", got)
	}
}

func TestBookStateNextMove(t *testing.T) {
	var pos = NewPosition(HumSenteSikenbisha.Startpos())
	var s = NewBookState(FormationSikenbisha)

	// At progress ply 0 the entry is handed out but not consumed.
	for i := 0; i < 2; i++ {
		mv, ok := s.NextMove(pos, 0)
		if !ok || mv != NewWalk(SQ33, SQ34) {
			t.Fatalf("move %d at ply 0: %v, %v", i, mv, ok)
		}
	}

	var want = []Move{
		NewWalk(SQ33, SQ34),
		NewWalk(SQ43, SQ44),
		NewWalk(SQ31, SQ32),
	}
	for i, w := range want {
		mv, ok := s.NextMove(pos, i+1)
		if !ok || mv != w {
			t.Fatalf("move %d: got %v, want %v", i, mv, w)
		}
	}
}

func TestBookStateFormationChange(t *testing.T) {
	_, board, hands := HumSenteSikenbisha.Startpos()
	// A HUM bishop on 22 early in the game switches the plan.
	board[SQ22] = HBishop
	var pos = NewPosition(COM, board, hands)

	var s = NewBookState(FormationSikenbisha)
	mv, ok := s.NextMove(pos, 2)
	if s.Formation() != FormationKakugawari {
		t.Fatalf("formation = %v", s.Formation())
	}
	if !ok || mv != NewWalk(SQ33, SQ34) {
		t.Errorf("move after change: %v, %v", mv, ok)
	}

	// Too late for the switch: the change entry no longer fires.
	s = NewBookState(FormationSikenbisha)
	_, _ = s.NextMove(pos, 6)
	if s.Formation() != FormationSikenbisha {
		t.Errorf("formation changed at ply 6: %v", s.Formation())
	}
}

func TestBookStateExhaustion(t *testing.T) {
	var pos = NewPosition(HumSenteSikenbisha.Startpos())
	var s = NewBookState(FormationHumNimaiochi)

	var n = 0
	for {
		_, ok := s.NextMove(pos, n+1)
		if !ok {
			break
		}
		n++
		if n > 40 {
			t.Fatal("book does not run out")
		}
	}
	if !s.Formation().IsNothing() {
		t.Errorf("formation after exhaustion = %v", s.Formation())
	}
	// No branch entry of this formation matches the startpos, so the
	// count is the length of the move sequence.
	if n != 19 {
		t.Errorf("book yielded %d moves", n)
	}
}

func TestNewEngineHumSente(t *testing.T) {
	e, umv := NewEngine(HumSenteSikenbisha)
	if umv != UndoableMoveNone {
		t.Fatalf("first move = %v", umv)
	}
	if e.Position().SideToMove() != HUM {
		t.Errorf("side to move = %v", e.Position().SideToMove())
	}
	if e.ProgressPly() != 0 || e.ProgressLevel() != 0 {
		t.Errorf("progress = %d/%d", e.ProgressPly(), e.ProgressLevel())
	}
	if e.BookState().Formation() != FormationSikenbisha {
		t.Errorf("formation = %v", e.BookState().Formation())
	}
}

func TestNewEngineComSente(t *testing.T) {
	e, umv := NewEngine(ComSenteSikenbisha)
	// The quiet initial position goes straight into the book.
	if umv.Move() != NewWalk(SQ33, SQ34) {
		t.Fatalf("first move = %v", umv)
	}
	if e.Position().SideToMove() != HUM {
		t.Errorf("side to move = %v", e.Position().SideToMove())
	}
	if e.ProgressPly() != 1 {
		t.Errorf("progress ply = %d", e.ProgressPly())
	}
}

func TestDoStepUndoStep(t *testing.T) {
	e, _ := NewEngine(HumSenteSikenbisha)
	_, wantBoard, wantHands := HumSenteSikenbisha.Startpos()

	resp, err := e.DoStep(NewWalk(SQ77, SQ76))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Kind() != ResponseMove {
		t.Fatalf("response kind = %v", resp.Kind())
	}
	umvCom, ok := resp.MoveCom()
	if !ok || umvCom.Move() != NewWalk(SQ33, SQ34) {
		t.Errorf("com move = %v, %v", umvCom, ok)
	}
	if e.ProgressPly() != 2 || e.Position().Ply() != 3 {
		t.Errorf("after step: progress %d, ply %d", e.ProgressPly(), e.Position().Ply())
	}

	e.UndoStep(resp)
	if *e.Position().Board() != wantBoard || *e.Position().Hands() != wantHands {
		t.Errorf("undo did not restore the position")
	}
	if e.ProgressPly() != 0 || e.Position().Ply() != 1 {
		t.Errorf("after undo: progress %d, ply %d", e.ProgressPly(), e.Position().Ply())
	}
	if e.Position().SideToMove() != HUM {
		t.Errorf("after undo: side to move = %v", e.Position().SideToMove())
	}
}

func TestDoStepMatta(t *testing.T) {
	e, _ := NewEngine(HumSenteSikenbisha)

	resp, err := e.DoStep(NewMatta(NewWalk(SQ77, SQ76)))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Kind() != ResponseMove {
		t.Fatalf("response kind = %v", resp.Kind())
	}
	// The quiet extra think pass leaves the progress level alone.
	if e.ProgressLevel() != 0 || e.ProgressLevelSub() != 0 {
		t.Errorf("progress level = %d/%d", e.ProgressLevel(), e.ProgressLevelSub())
	}

	e.UndoStep(resp)
	if e.ProgressPly() != 0 || e.Position().Ply() != 1 {
		t.Errorf("after undo: progress %d, ply %d", e.ProgressPly(), e.Position().Ply())
	}
}

func TestDoStepSuicide(t *testing.T) {
	sideToMove, board, hands, err := DecodeSFENPosition("sfen 4k4/9/9/9/9/9/4r4/9/4K4 b - 1")
	if err != nil {
		t.Fatal(err)
	}
	var e = &Engine{
		pos:       NewPosition(sideToMove, board, hands),
		bookState: NewBookState(FormationSikenbisha),
	}

	// The king stays on the rook's file.
	_, err = e.DoStep(NewWalk(SQ59, SQ58))
	if err != ErrSuicideMove {
		t.Fatalf("err = %v", err)
	}
	if e.Position().Ply() != 1 || e.ProgressPly() != 0 {
		t.Errorf("suicide move advanced the game")
	}

	// Sidestepping off the file is fine.
	if _, err := e.DoStep(NewWalk(SQ59, SQ49)); err != nil {
		t.Errorf("legal escape rejected: %v", err)
	}
}

func TestDoStepHumWin(t *testing.T) {
	sideToMove, board, hands, err := DecodeSFENPosition("sfen 4k4/9/4P4/9/9/9/9/9/4K4 b G 1")
	if err != nil {
		t.Fatal(err)
	}
	var e = &Engine{
		pos:       NewPosition(sideToMove, board, hands),
		bookState: NewBookState(FormationSikenbisha),
	}

	// G*52 backed by the pawn on 53 mates the bare king.
	resp, err := e.DoStep(NewDrop(Gold, SQ52))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Kind() != ResponseHumWin {
		t.Fatalf("response kind = %v", resp.Kind())
	}
	if _, ok := resp.MoveCom(); ok {
		t.Errorf("resignation carries a com move")
	}

	e.UndoStep(resp)
	if e.Position().Board()[SQ52] != NoPiece || e.Position().Hand(HUM).Count(Gold) != 1 {
		t.Errorf("undo did not restore the drop")
	}
}

func TestNewEngineFromPosition(t *testing.T) {
	sideToMove, board, hands, err := DecodeSFENPosition("sfen 4k4/9/4P4/9/9/9/9/9/4K4 b G 1")
	if err != nil {
		t.Fatal(err)
	}

	e, err := NewEngineFromPosition(sideToMove, board, hands)
	if err != nil {
		t.Fatal(err)
	}
	if e.ProgressPly() != 0 || e.ProgressLevel() != 0 {
		t.Errorf("progress = %d/%d", e.ProgressPly(), e.ProgressLevel())
	}
	if !e.BookState().Formation().IsNothing() {
		t.Errorf("formation = %v", e.BookState().Formation())
	}

	resp, err := e.DoStep(NewDrop(Gold, SQ52))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Kind() != ResponseHumWin {
		t.Errorf("response kind = %v", resp.Kind())
	}

	if _, err := NewEngineFromPosition(COM, board, hands); err == nil {
		t.Errorf("diagram with COM to move accepted")
	}
}

func TestThinkFindsMate(t *testing.T) {
	sideToMove, board, hands, err := DecodeSFENPosition("sfen 8k/9/9/9/9/9/4p4/9/4K4 w g 1")
	if err != nil {
		t.Fatal(err)
	}
	var e = &Engine{
		pos:       NewPosition(sideToMove, board, hands),
		bookState: NewBookState(FormationSikenbisha),
	}

	// g*58 backed by the pawn on 57 mates the bare king.
	var raw = e.think(MoveNone)
	if raw.kind != ResponseMove || !raw.humIsCheckmated {
		t.Fatalf("kind %v, mate %v", raw.kind, raw.humIsCheckmated)
	}
	if raw.bestMv != NewDrop(Gold, SQ58) {
		t.Errorf("best move = %v", raw.bestMv)
	}
}

func TestProgressLevelByPly(t *testing.T) {
	var cases = []struct {
		plyBefore int
		wantLevel int
	}{
		{10, 0},
		{50, 1},
		{60, 1},
		{70, 3},
	}
	for _, c := range cases {
		e, _ := NewEngine(HumSenteSikenbisha)
		e.progressPly = c.plyBefore
		if _, err := e.doMoveHum(NewWalk(SQ77, SQ76)); err != nil {
			t.Fatal(err)
		}
		if e.progressLevel != c.wantLevel {
			t.Errorf("ply %d: level = %d, want %d", c.plyBefore+1, e.progressLevel, c.wantLevel)
		}
	}
}

func TestProgressPlyCap(t *testing.T) {
	e, _ := NewEngine(HumSenteSikenbisha)
	e.progressPly = 100
	e.incrementProgressPly()
	if e.progressPly != 100 {
		t.Errorf("progress ply = %d", e.progressPly)
	}
}

func TestEngineClone(t *testing.T) {
	e, _ := NewEngine(HumSenteSikenbisha)
	var clone = e.Clone()

	if _, err := clone.DoStep(NewWalk(SQ77, SQ76)); err != nil {
		t.Fatal(err)
	}
	if e.Position().Ply() != 1 || e.ProgressPly() != 0 {
		t.Errorf("stepping the clone modified the original")
	}
}
