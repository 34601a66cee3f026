package shell

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/shogihack/naitou/common"
	"github.com/shogihack/naitou/engine"
)

func runCommands(t *testing.T, input string) (*Shell, string) {
	t.Helper()
	sideToMove, board, hands := engine.HumSenteSikenbisha.Startpos()
	var out bytes.Buffer
	var sh = &Shell{
		pos: NewPosition(sideToMove, board, hands),
		in:  strings.NewReader(input),
		out: &out,
	}
	if err := sh.Run(); err != nil {
		t.Fatal(err)
	}
	return sh, out.String()
}

func TestShellMoveUndo(t *testing.T) {
	sh, out := runCommands(t, "move 7g7f\nundo\nquit\n")
	if strings.Contains(out, "error:") {
		t.Errorf("output contains an error:\n%s", out)
	}
	_, wantBoard, _ := engine.HumSenteSikenbisha.Startpos()
	if *sh.pos.Board() != wantBoard {
		t.Errorf("undo did not restore the position")
	}
}

func TestShellIllegalMove(t *testing.T) {
	_, out := runCommands(t, "move 5e5d\nquit\n")
	if !strings.Contains(out, "error: illegal move") {
		t.Errorf("illegal move accepted:\n%s", out)
	}
}

func TestShellPosition(t *testing.T) {
	sh, out := runCommands(t, "position sfen 4k4/9/9/9/9/9/9/9/4K4 w - 1\nprint attacker\nquit\n")
	if strings.Contains(out, "error:") {
		t.Errorf("output contains an error:\n%s", out)
	}
	if sh.pos.SideToMove() != COM {
		t.Errorf("side to move = %v", sh.pos.SideToMove())
	}
	if len(sh.history) != 0 {
		t.Errorf("position command kept the history")
	}
}

func TestShellUnknownCommand(t *testing.T) {
	_, out := runCommands(t, "frobnicate\nquit\n")
	if !strings.Contains(out, "error: unknown command") {
		t.Errorf("unknown command accepted:\n%s", out)
	}
}
