package common

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeKIF(t *testing.T) {
	sideToMove, board, hands, err := DecodeSFENPosition("startpos")
	if err != nil {
		t.Fatal(err)
	}

	var mvs = []Move{
		NewWalk(SQ77, SQ76),
		NewWalk(SQ33, SQ34),
		NewWalk(SQ88, SQ22),
		NewWalk(SQ31, SQ22),
	}
	s, err := EncodeKIF(sideToMove, &board, &hands, mvs)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"手合割:平手",
		"１ ７六歩(77)",
		"２ ３四歩(33)",
		"３ ２二角(88)", // the walk is generated without promotion here
		"４ 同　銀(31)",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q in:\n%s", want, s)
		}
	}
}

func TestEncodeKIFDropAndPromotion(t *testing.T) {
	sideToMove, board, hands, err := DecodeSFENPosition("sfen 4k4/9/4P4/9/9/9/9/9/4K4 b G 1")
	if err != nil {
		t.Fatal(err)
	}

	var mvs = []Move{NewWalkPromotion(SQ53, SQ52), NewWalk(SQ51, SQ52), NewDrop(Gold, SQ55)}
	s, err := EncodeKIF(sideToMove, &board, &hands, mvs)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"手合割:その他",
		"５二歩成(53)",
		"同　玉(51)",
		"５五金打",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q in:\n%s", want, s)
		}
	}
}

func TestEncodeKIFRejectsBadMoves(t *testing.T) {
	sideToMove, board, hands, err := DecodeSFENPosition("startpos")
	if err != nil {
		t.Fatal(err)
	}

	// No gold in hand at the start.
	if _, err := EncodeKIF(sideToMove, &board, &hands, []Move{NewDrop(Gold, SQ55)}); err == nil {
		t.Errorf("drop from an empty hand accepted")
	}
	// Empty source square.
	if _, err := EncodeKIF(sideToMove, &board, &hands, []Move{NewWalk(SQ55, SQ54)}); err == nil {
		t.Errorf("walk from an empty square accepted")
	}
}

func TestShiftJISWriter(t *testing.T) {
	var buf bytes.Buffer
	var w = NewShiftJISWriter(&buf)
	if _, err := w.Write([]byte("歩")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	// JIS X 0208 kanji are 2 bytes in Shift-JIS, 3 in UTF-8.
	if buf.Len() != 2 {
		t.Errorf("encoded length = %d", buf.Len())
	}
}
