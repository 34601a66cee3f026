package common

import (
	"fmt"
	"strconv"
	"strings"
)

// StartposBoard returns the even-game initial board.
func StartposBoard() Board {
	return Board{
		CLance, NoPiece, CPawn, NoPiece, NoPiece, NoPiece, HPawn, NoPiece, HLance,
		CKnight, CBishop, CPawn, NoPiece, NoPiece, NoPiece, HPawn, HRook, HKnight,
		CSilver, NoPiece, CPawn, NoPiece, NoPiece, NoPiece, HPawn, NoPiece, HSilver,
		CGold, NoPiece, CPawn, NoPiece, NoPiece, NoPiece, HPawn, NoPiece, HGold,
		CKing, NoPiece, CPawn, NoPiece, NoPiece, NoPiece, HPawn, NoPiece, HKing,
		CGold, NoPiece, CPawn, NoPiece, NoPiece, NoPiece, HPawn, NoPiece, HGold,
		CSilver, NoPiece, CPawn, NoPiece, NoPiece, NoPiece, HPawn, NoPiece, HSilver,
		CKnight, CRook, CPawn, NoPiece, NoPiece, NoPiece, HPawn, HBishop, HKnight,
		CLance, NoPiece, CPawn, NoPiece, NoPiece, NoPiece, HPawn, NoPiece, HLance,
	}
}

// DecodeSFEN decodes an sfen string into a side to move, board, hands and
// move list. The syntax is checked; legality is not.
//
// Leading and trailing spaces are ignored, as is a leading "position" token.
// A move prefixed with '!' carries the takeback flag (a local extension).
func DecodeSFEN(s string) (Side, Board, Hands, []Move, error) {
	var tokens = strings.Fields(strings.TrimSpace(s))

	sideToMove, board, hands, rest, err := decodeSFENPosition(tokens)
	if err != nil {
		return 0, Board{}, Hands{}, nil, err
	}

	var mvs []Move
	if len(rest) > 0 {
		if rest[0] != "moves" {
			return 0, Board{}, Hands{}, nil,
				fmt.Errorf("%q expected, but got %s", "moves", rest[0])
		}
		for _, tok := range rest[1:] {
			mv, err := decodeSFENMove(tok)
			if err != nil {
				return 0, Board{}, Hands{}, nil, err
			}
			mvs = append(mvs, mv)
		}
	}

	return sideToMove, board, hands, mvs, nil
}

// DecodeSFENPosition decodes an sfen position string into a side to move,
// board and hands. The syntax is checked; legality is not.
func DecodeSFENPosition(s string) (Side, Board, Hands, error) {
	var tokens = strings.Fields(strings.TrimSpace(s))

	sideToMove, board, hands, rest, err := decodeSFENPosition(tokens)
	if err != nil {
		return 0, Board{}, Hands{}, err
	}
	if len(rest) > 0 {
		return 0, Board{}, Hands{}, fmt.Errorf("position string has redundant token: %s", rest[0])
	}

	return sideToMove, board, hands, nil
}

func decodeSFENPosition(tokens []string) (Side, Board, Hands, []string, error) {
	// External tools are inconsistent about the "position" prefix; just
	// skip it when present.
	if len(tokens) > 0 && tokens[0] == "position" {
		tokens = tokens[1:]
	}

	if len(tokens) == 0 {
		return 0, Board{}, Hands{}, nil, fmt.Errorf("position string is empty")
	}

	if tokens[0] == "startpos" {
		return HUM, StartposBoard(), Hands{}, tokens[1:], nil
	}

	if tokens[0] != "sfen" {
		return 0, Board{}, Hands{}, nil, fmt.Errorf("invalid position string magic: %s", tokens[0])
	}
	if len(tokens) < 5 {
		return 0, Board{}, Hands{}, nil, fmt.Errorf("incomplete sfen position string")
	}

	board, err := decodeSFENBoard(tokens[1])
	if err != nil {
		return 0, Board{}, Hands{}, nil, err
	}
	sideToMove, err := decodeSFENSide(tokens[2])
	if err != nil {
		return 0, Board{}, Hands{}, nil, err
	}
	hands, err := decodeSFENHands(tokens[3])
	if err != nil {
		return 0, Board{}, Hands{}, nil, err
	}
	if ply, err := strconv.Atoi(tokens[4]); err != nil || ply < 1 {
		return 0, Board{}, Hands{}, nil, fmt.Errorf("invalid ply string: %s", tokens[4])
	}

	return sideToMove, board, hands, tokens[5:], nil
}

func decodeSFENBoard(s string) (Board, error) {
	var board Board

	var rows = strings.Split(s, "/")
	if len(rows) != 9 {
		return Board{}, fmt.Errorf("board string must have exactly 9 rows")
	}

	for row := Row1; row <= Row9; row++ {
		if err := decodeSFENBoardRow(rows[row], row, &board); err != nil {
			return Board{}, err
		}
	}

	return board, nil
}

func decodeSFENBoardRow(s string, row int, board *Board) error {
	var col = Col9
	var promo = false

	var checkOverflow = func(n int) error {
		if col-n+1 < Col1 {
			return fmt.Errorf("row overflow")
		}
		return nil
	}

	for _, c := range s {
		switch {
		case c == '+':
			if promo {
				return fmt.Errorf("double '+' is not allowed")
			}
			if err := checkOverflow(1); err != nil {
				return err
			}
			promo = true
		case '1' <= c && c <= '9':
			if promo {
				return fmt.Errorf("'+' cannot be placed before digit")
			}
			var n = int(c - '0')
			if err := checkOverflow(n); err != nil {
				return err
			}
			col -= n
		default:
			side, pk, err := decodeSFENBoardPiece(c)
			if err != nil {
				return err
			}
			if err := checkOverflow(1); err != nil {
				return err
			}
			if promo {
				if !pk.IsPromotable() {
					return fmt.Errorf("not promotable piece: %c", c)
				}
				pk = pk.Promoted()
				promo = false
			}
			board[MakeSquare(col, row)] = MakePiece(side, pk)
			col--
		}
	}

	if promo {
		return fmt.Errorf("remaining promotion flag")
	}
	if col+1 != Col1 {
		return fmt.Errorf("board row must have exactly 9 columns")
	}

	return nil
}

func decodeSFENBoardPiece(c rune) (Side, PieceKind, error) {
	var side = HUM
	if 'a' <= c && c <= 'z' {
		side = COM
		c -= 'a' - 'A'
	}

	var pk PieceKind
	switch c {
	case 'K':
		pk = King
	case 'R':
		pk = Rook
	case 'B':
		pk = Bishop
	case 'G':
		pk = Gold
	case 'S':
		pk = Silver
	case 'N':
		pk = Knight
	case 'L':
		pk = Lance
	case 'P':
		pk = Pawn
	default:
		return 0, 0, fmt.Errorf("invalid board piece char: %c", c)
	}

	return side, pk, nil
}

func decodeSFENSide(s string) (Side, error) {
	switch s {
	case "b":
		return HUM, nil
	case "w":
		return COM, nil
	}
	return 0, fmt.Errorf("invalid side string: %s", s)
}

func decodeSFENHands(s string) (Hands, error) {
	var hands Hands

	if s == "-" {
		return hands, nil
	}

	var count = 0
	for _, c := range s {
		switch {
		case '0' <= c && c <= '9':
			if c == '0' && count == 0 {
				return Hands{}, fmt.Errorf("leading zero is not allowed")
			}
			count = count*10 + int(c-'0')
			if count > 255 {
				return Hands{}, fmt.Errorf("count is too large")
			}
		default:
			side, pk, err := decodeSFENBoardPiece(c)
			if err != nil || pk == King {
				return Hands{}, fmt.Errorf("invalid hand piece char: %c", c)
			}
			var n = count
			if n == 0 {
				n = 1
			}
			if hands[side].Count(pk)+n > 255 {
				return Hands{}, fmt.Errorf("hand overflow")
			}
			hands[side].Add(pk, n)
			count = 0
		}
	}

	if count != 0 {
		return Hands{}, fmt.Errorf("remaining count specifier")
	}

	return hands, nil
}

// DecodeSFENMove decodes an sfen move string. The syntax is checked;
// legality is not. Leading and trailing spaces are ignored.
func DecodeSFENMove(s string) (Move, error) {
	return decodeSFENMove(strings.TrimSpace(s))
}

func decodeSFENMove(s string) (Move, error) {
	if s == "" {
		return MoveNone, fmt.Errorf("move string is empty")
	}

	var matta = false
	if s[0] == '!' {
		matta = true
		s = s[1:]
	}

	mv, ok := decodeSFENMoveWalk(s)
	if !ok {
		mv, ok = decodeSFENMoveDrop(s)
	}
	if !ok {
		return MoveNone, fmt.Errorf("invalid move string: %s", s)
	}

	if matta {
		mv = NewMatta(mv)
	}
	return mv, nil
}

func decodeSFENMoveWalk(s string) (Move, bool) {
	if len(s) != 4 && len(s) != 5 {
		return MoveNone, false
	}

	srcCol, ok1 := decodeSFENMoveCol(s[0])
	srcRow, ok2 := decodeSFENMoveRow(s[1])
	dstCol, ok3 := decodeSFENMoveCol(s[2])
	dstRow, ok4 := decodeSFENMoveRow(s[3])
	if !(ok1 && ok2 && ok3 && ok4) {
		return MoveNone, false
	}

	var promo = false
	if len(s) == 5 {
		if s[4] != '+' {
			return MoveNone, false
		}
		promo = true
	}

	var src = MakeSquare(srcCol, srcRow)
	var dst = MakeSquare(dstCol, dstRow)
	if promo {
		return NewWalkPromotion(src, dst), true
	}
	return NewWalk(src, dst), true
}

func decodeSFENMoveDrop(s string) (Move, bool) {
	if len(s) != 4 || s[1] != '*' {
		return MoveNone, false
	}

	var pk PieceKind
	switch s[0] {
	case 'R':
		pk = Rook
	case 'B':
		pk = Bishop
	case 'G':
		pk = Gold
	case 'S':
		pk = Silver
	case 'N':
		pk = Knight
	case 'L':
		pk = Lance
	case 'P':
		pk = Pawn
	default:
		return MoveNone, false
	}

	dstCol, ok1 := decodeSFENMoveCol(s[2])
	dstRow, ok2 := decodeSFENMoveRow(s[3])
	if !(ok1 && ok2) {
		return MoveNone, false
	}

	return NewDrop(pk, MakeSquare(dstCol, dstRow)), true
}

func decodeSFENMoveCol(c byte) (int, bool) {
	if '1' <= c && c <= '9' {
		return Col1 + int(c-'1'), true
	}
	return 0, false
}

func decodeSFENMoveRow(c byte) (int, bool) {
	if 'a' <= c && c <= 'i' {
		return Row1 + int(c-'a'), true
	}
	return 0, false
}

// EncodeSFEN encodes a side to move, board, hands and move list into an
// sfen string. No legality checking is done.
//
// An even-game initial position encodes as "startpos". A move with the
// takeback flag is prefixed with '!'.
func EncodeSFEN(sideToMove Side, board *Board, hands *Hands, mvs []Move) string {
	var sb strings.Builder
	sb.WriteString(EncodeSFENPosition(sideToMove, board, hands))

	sb.WriteString(" moves")
	for _, mv := range mvs {
		sb.WriteByte(' ')
		sb.WriteString(mv.String())
	}

	return sb.String()
}

// EncodeSFENPosition encodes a side to move, board and hands into an sfen
// position string, or "startpos" for the even-game initial position.
func EncodeSFENPosition(sideToMove Side, board *Board, hands *Hands) string {
	if sideToMove == HUM && *board == StartposBoard() &&
		hands[HUM].IsEmpty() && hands[COM].IsEmpty() {
		return "startpos"
	}

	var sb strings.Builder
	sb.WriteString("sfen ")

	encodeSFENBoard(board, &sb)
	sb.WriteByte(' ')

	if sideToMove == HUM {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	sb.WriteByte(' ')

	encodeSFENHands(hands, &sb)

	// The ply is always written as 1.
	sb.WriteString(" 1")

	return sb.String()
}

func encodeSFENBoard(board *Board, sb *strings.Builder) {
	for row := Row1; row <= Row9; row++ {
		if row != Row1 {
			sb.WriteByte('/')
		}

		var runBlank = 0
		for col := Col9; col >= Col1; col-- {
			var pc = board[MakeSquare(col, row)]
			if pc == NoPiece {
				runBlank++
				continue
			}
			if runBlank > 0 {
				sb.WriteByte(byte('0' + runBlank))
				runBlank = 0
			}
			sb.WriteString(pc.String())
		}
		if runBlank > 0 {
			sb.WriteByte(byte('0' + runBlank))
		}
	}
}

func encodeSFENHands(hands *Hands, sb *strings.Builder) {
	// Per the sfen convention all of the first player's hand comes first,
	// each hand ordered rook, bishop, gold, silver, knight, lance, pawn.
	var pks = [...]PieceKind{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

	if hands[HUM].IsEmpty() && hands[COM].IsEmpty() {
		sb.WriteByte('-')
		return
	}

	for side := HUM; side <= COM; side++ {
		for _, pk := range pks {
			var n = hands[side].Count(pk)
			if n == 0 {
				continue
			}
			if n >= 2 {
				sb.WriteString(strconv.Itoa(n))
			}
			sb.WriteString(MakePiece(side, pk).String())
		}
	}
}

// EncodeSFENMove encodes a move into its sfen form.
func EncodeSFENMove(mv Move) string {
	return mv.String()
}
