package common

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

var kifPieceKindNames = [...]string{
	"", "歩", "香", "桂", "銀", "角", "飛", "金", "玉",
	"と", "成香", "成桂", "成銀", "馬", "龍",
}

var kifColNames = [...]string{"１", "２", "３", "４", "５", "６", "７", "８", "９"}
var kifRowNames = [...]string{"一", "二", "三", "四", "五", "六", "七", "八", "九"}

// EncodeKIF renders a record in KIF format, replaying the moves from
// the given initial position to recover the piece names. Takeback flags
// are dropped: the takeback trick replays the same move, so the record
// reads the same without them.
//
// Non-even initial positions get 手合割:その他; KIF proper would carry a
// board diagram, which nothing downstream needs.
func EncodeKIF(sideToMove Side, board *Board, hands *Hands, mvs []Move) (string, error) {
	var sb strings.Builder

	_, evenBoard, evenHands, err := DecodeSFENPosition("startpos")
	if err != nil {
		panic(err)
	}
	if sideToMove == HUM && *board == evenBoard && *hands == evenHands {
		sb.WriteString("手合割:平手\n")
	} else {
		sb.WriteString("手合割:その他\n")
	}
	sb.WriteString("先手:HUM\n")
	sb.WriteString("後手:COM\n")
	sb.WriteString("手数----指手---------消費時間--\n")

	p := NewPosition(sideToMove, *board, *hands)

	prevDst := SquareNone
	for i, mv := range mvs {
		mv = mv.WithoutMatta()
		if !mv.IsValid() {
			return "", fmt.Errorf("move %d is invalid", i+1)
		}

		var body strings.Builder

		dst := mv.Dst()
		if dst == prevDst {
			body.WriteString("同　")
		} else {
			body.WriteString(kifColNames[SquareCol(dst)])
			body.WriteString(kifRowNames[SquareRow(dst)])
		}

		if mv.IsDrop() {
			pk := mv.DroppedPieceKind()
			if p.Hand(p.SideToMove()).Count(pk) == 0 {
				return "", fmt.Errorf("move %d drops a piece not in hand", i+1)
			}
			body.WriteString(kifPieceKindNames[pk])
			body.WriteString("打")
		} else {
			pc := p.Board()[mv.Src()]
			if pc == NoPiece || pc.Side() != p.SideToMove() {
				return "", fmt.Errorf("move %d has no own piece on the source", i+1)
			}
			body.WriteString(kifPieceKindNames[pc.Kind()])
			if mv.IsPromotion() {
				body.WriteString("成")
			}
			fmt.Fprintf(&body, "(%d%d)", SquareCol(mv.Src())+1, SquareRow(mv.Src())+1)
		}

		fmt.Fprintf(&sb, "%4d %-12s ( 0:00/00:00:00)\n", i+1, body.String())

		p.DoMove(mv)
		prevDst = dst
	}

	return sb.String(), nil
}

// NewShiftJISWriter wraps w so that UTF-8 written to it comes out
// Shift-JIS encoded, the encoding classic KIF consumers expect. Close
// flushes the transformer; it does not close w.
func NewShiftJISWriter(w io.Writer) io.WriteCloser {
	return transform.NewWriter(w, japanese.ShiftJIS.NewEncoder())
}
