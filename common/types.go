package common

import (
	"strconv"
	"strings"
)

// Sides are named HUM/COM rather than sente/gote: the original program
// always renders the human side at the bottom of the screen.
type Side int

const (
	HUM Side = 0
	COM Side = 1
)

func (s Side) Inv() Side {
	return s ^ 1
}

func (s Side) String() string {
	if s == HUM {
		return "HUM"
	}
	return "COM"
}

const (
	Col1 = iota
	Col2
	Col3
	Col4
	Col5
	Col6
	Col7
	Col8
	Col9
)

const (
	Row1 = iota
	Row2
	Row3
	Row4
	Row5
	Row6
	Row7
	Row8
	Row9
)

// Squares are numbered column-major: SQ11=0, SQ12=1, ..., SQ99=80.
const (
	SQ11 = iota
	SQ12
	SQ13
	SQ14
	SQ15
	SQ16
	SQ17
	SQ18
	SQ19
	SQ21
	SQ22
	SQ23
	SQ24
	SQ25
	SQ26
	SQ27
	SQ28
	SQ29
	SQ31
	SQ32
	SQ33
	SQ34
	SQ35
	SQ36
	SQ37
	SQ38
	SQ39
	SQ41
	SQ42
	SQ43
	SQ44
	SQ45
	SQ46
	SQ47
	SQ48
	SQ49
	SQ51
	SQ52
	SQ53
	SQ54
	SQ55
	SQ56
	SQ57
	SQ58
	SQ59
	SQ61
	SQ62
	SQ63
	SQ64
	SQ65
	SQ66
	SQ67
	SQ68
	SQ69
	SQ71
	SQ72
	SQ73
	SQ74
	SQ75
	SQ76
	SQ77
	SQ78
	SQ79
	SQ81
	SQ82
	SQ83
	SQ84
	SQ85
	SQ86
	SQ87
	SQ88
	SQ89
	SQ91
	SQ92
	SQ93
	SQ94
	SQ95
	SQ96
	SQ97
	SQ98
	SQ99
)

const SquareNone = -1

// Square deltas. "Up" is toward row 1 (the COM side of the board).
const (
	DirR = -9
	DirU = -1
	DirD = 1
	DirL = 9

	DirRU = DirR + DirU
	DirRD = DirR + DirD
	DirLU = DirL + DirU
	DirLD = DirL + DirD

	DirRUU = DirRU + DirU
	DirRDD = DirRD + DirD
	DirLUU = DirLU + DirU
	DirLDD = DirLD + DirD
)

// PieceKind values follow the yaneura-ou layout: consecutive raw kinds,
// and OR 1<<3 promotes.
type PieceKind int

const (
	NoPieceKind PieceKind = iota
	Pawn
	Lance
	Knight
	Silver
	Bishop
	Rook
	Gold
	King
	ProPawn
	ProLance
	ProKnight
	ProSilver
	Horse
	Dragon
)

const promotionBit = 1 << 3

func (pk PieceKind) IsPiece() bool {
	return Pawn <= pk && pk <= Dragon
}

func (pk PieceKind) IsPromotable() bool {
	return Pawn <= pk && pk <= Rook
}

func (pk PieceKind) IsPromoted() bool {
	return ProPawn <= pk && pk <= Dragon
}

// IsHand reports whether the kind can sit in a hand.
func (pk PieceKind) IsHand() bool {
	return Pawn <= pk && pk <= Gold
}

// HasRangedEffect reports lance, bishop, rook, horse or dragon.
// Bishop=5, rook=6, horse=13, dragon=14: adding 1 and masking 0b110
// catches all but the lance.
func (pk PieceKind) HasRangedEffect() bool {
	return pk == Lance || (pk+1)&0b110 == 0b110
}

func (pk PieceKind) Promoted() PieceKind {
	return pk | promotionBit
}

func (pk PieceKind) Raw() PieceKind {
	return pk & 7
}

var pieceKindNames = [...]string{
	"NO_PIECE_KIND", "PAWN", "LANCE", "KNIGHT", "SILVER", "BISHOP", "ROOK",
	"GOLD", "KING", "PRO_PAWN", "PRO_LANCE", "PRO_KNIGHT", "PRO_SILVER",
	"HORSE", "DRAGON",
}

func (pk PieceKind) String() string {
	return pieceKindNames[pk]
}

// Piece is a side-qualified kind: OR 1<<4 makes a COM piece.
type Piece int

const (
	NoPiece Piece = 0

	HPawn      Piece = 1
	HLance     Piece = 2
	HKnight    Piece = 3
	HSilver    Piece = 4
	HBishop    Piece = 5
	HRook      Piece = 6
	HGold      Piece = 7
	HKing      Piece = 8
	HProPawn   Piece = 9
	HProLance  Piece = 10
	HProKnight Piece = 11
	HProSilver Piece = 12
	HHorse     Piece = 13
	HDragon    Piece = 14

	CPawn      Piece = 17
	CLance     Piece = 18
	CKnight    Piece = 19
	CSilver    Piece = 20
	CBishop    Piece = 21
	CRook      Piece = 22
	CGold      Piece = 23
	CKing      Piece = 24
	CProPawn   Piece = 25
	CProLance  Piece = 26
	CProKnight Piece = 27
	CProSilver Piece = 28
	CHorse     Piece = 29
	CDragon    Piece = 30
)

const comBit = 1 << 4

func MakePiece(side Side, pk PieceKind) Piece {
	return Piece(int(side)<<4 | int(pk))
}

func (pc Piece) IsPiece() bool {
	return pc != NoPiece && pc.Kind().IsPiece()
}

func (pc Piece) Side() Side {
	return Side(pc>>4) & 1
}

func (pc Piece) Kind() PieceKind {
	return PieceKind(pc & 0xF)
}

func (pc Piece) IsPromotable() bool {
	return pc.Kind().IsPromotable()
}

func (pc Piece) HasRangedEffect() bool {
	return pc.Kind().HasRangedEffect()
}

func (pc Piece) Promoted() Piece {
	return pc | promotionBit
}

func (pc Piece) RawKind() PieceKind {
	return PieceKind(pc & 7)
}

var pieceNames = [32]string{
	HPawn: "P", HLance: "L", HKnight: "N", HSilver: "S", HBishop: "B",
	HRook: "R", HGold: "G", HKing: "K", HProPawn: "+P", HProLance: "+L",
	HProKnight: "+N", HProSilver: "+S", HHorse: "+B", HDragon: "+R",

	CPawn: "p", CLance: "l", CKnight: "n", CSilver: "s", CBishop: "b",
	CRook: "r", CGold: "g", CKing: "k", CProPawn: "+p", CProLance: "+l",
	CProKnight: "+n", CProSilver: "+s", CHorse: "+b", CDragon: "+r",
}

func (pc Piece) String() string {
	if pc == NoPiece {
		return "."
	}
	return pieceNames[pc]
}

// Hand holds in-hand piece counts indexed by raw kind (Pawn..Gold).
type Hand [8]uint8

func (h Hand) Count(pk PieceKind) int {
	return int(h[pk])
}

func (h *Hand) Add(pk PieceKind, n int) {
	h[pk] = uint8(int(h[pk]) + n)
}

func (h Hand) IsEmpty() bool {
	return h == Hand{}
}

func (h Hand) String() string {
	if h.IsEmpty() {
		return "-"
	}
	var sb strings.Builder
	for pk := Pawn; pk <= Gold; pk++ {
		if n := h.Count(pk); n > 0 {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte("?PLNSBRG"[pk])
			sb.WriteString(strconv.Itoa(n))
		}
	}
	return sb.String()
}

type Hands [2]Hand

// Board is the mailbox view of the position, kept alongside the
// bitboards.
type Board [81]Piece

func (b Board) String() string {
	var sb strings.Builder
	for row := Row1; row <= Row9; row++ {
		for col := Col9; col >= Col1; col-- {
			var pc = b[MakeSquare(col, row)]
			var name = pc.String()
			if len(name) == 1 {
				sb.WriteByte(' ')
			}
			sb.WriteString(name)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

const MaxMoves = 600
