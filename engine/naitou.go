package engine

import (
	"fmt"
	"strings"

	. "github.com/shogihack/naitou/common"
)

// Handicap selects the initial position and, for even games, the COM
// formation (Sikenbisha without a time limit, Nakabisha with one).
type Handicap int

const (
	HumSenteSikenbisha Handicap = iota
	HumSenteNakabisha
	HumHishaochi
	HumNimaiochi
	ComSenteSikenbisha
	ComSenteNakabisha
	ComHishaochi
	ComNimaiochi
)

var handicapNames = [...]string{
	"HumSenteSikenbisha",
	"HumSenteNakabisha",
	"HumHishaochi",
	"HumNimaiochi",
	"ComSenteSikenbisha",
	"ComSenteNakabisha",
	"ComHishaochi",
	"ComNimaiochi",
}

func (h Handicap) String() string {
	return handicapNames[h]
}

func ParseHandicap(s string) (Handicap, error) {
	for i, name := range handicapNames {
		if strings.EqualFold(s, name) {
			return Handicap(i), nil
		}
	}
	return 0, fmt.Errorf("unknown handicap: %q", s)
}

// HandicapFromStartpos finds the handicap matching the given initial
// position and time limit setting.
func HandicapFromStartpos(sideToMove Side, board *Board, hands *Hands, timelimit bool) (Handicap, error) {
	posEq := func(h Handicap) bool {
		s, b, hs := h.Startpos()
		return sideToMove == s && *board == b && *hands == hs
	}

	switch {
	case posEq(HumSenteSikenbisha):
		if timelimit {
			return HumSenteNakabisha, nil
		}
		return HumSenteSikenbisha, nil
	case posEq(HumHishaochi):
		return HumHishaochi, nil
	case posEq(HumNimaiochi):
		return HumNimaiochi, nil
	case posEq(ComSenteSikenbisha):
		if timelimit {
			return ComSenteNakabisha, nil
		}
		return ComSenteSikenbisha, nil
	case posEq(ComHishaochi):
		return ComHishaochi, nil
	case posEq(ComNimaiochi):
		return ComNimaiochi, nil
	}
	return 0, fmt.Errorf("no handicap matches")
}

// SFEN returns the sfen position string for the initial position.
func (h Handicap) SFEN() string {
	switch h {
	case HumSenteSikenbisha, HumSenteNakabisha:
		return "startpos"
	case HumHishaochi:
		return "sfen lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B7/LNSGKGSNL b - 1"
	case HumNimaiochi:
		return "sfen lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/9/LNSGKGSNL b - 1"
	case ComSenteSikenbisha, ComSenteNakabisha:
		return "sfen lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL w - 1"
	case ComHishaochi:
		return "sfen lnsgkgsnl/7b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL w - 1"
	case ComNimaiochi:
		return "sfen lnsgkgsnl/9/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL w - 1"
	}
	panic("invalid handicap")
}

func (h Handicap) Startpos() (Side, Board, Hands) {
	sideToMove, board, hands, err := DecodeSFENPosition(h.SFEN())
	if err != nil {
		panic(err)
	}
	return sideToMove, board, hands
}

func (h Handicap) SideToMove() Side {
	sideToMove, _, _ := h.Startpos()
	return sideToMove
}

// squareValue converts a square to the internal coordinate value used
// by the move ordering: 11*rowNum + (10 - colNum).
func squareValue(sq int) uint8 {
	return uint8(11*(SquareRow(sq)+1) + (10 - (SquareCol(sq) + 1)))
}

// squareDistanceFrom is the Chebyshev distance between sq1 and sq2.
// SquareNone as sq1 is treated as the out-of-board point (col 10, row 9).
func squareDistanceFrom(sq1, sq2 int) int {
	if sq1 == SquareNone {
		dx := 1 + Col9 - SquareCol(sq2)
		dy := Row9 - SquareRow(sq2)
		return Max(dx, dy)
	}
	return SquareDistance(sq1, sq2)
}

// Piece price tables. The same piece kind is worth different amounts
// depending on which side of an exchange estimate it appears on.

// piecePriceA: attacker selection and capture gain.
var piecePriceA = [15]uint8{
	255, // NoPieceKind
	1,   // Pawn
	4,   // Lance
	4,   // Knight
	8,   // Silver
	16,  // Bishop
	17,  // Rook
	8,   // Gold
	40,  // King
	2,   // ProPawn
	5,   // ProLance
	6,   // ProKnight
	8,   // ProSilver
	20,  // Horse
	22,  // Dragon
}

// piecePriceB: HUM piece and COM attacker in the capture-gain scan.
var piecePriceB = [15]uint8{
	255, 1, 4, 4, 8, 16, 17, 8, 40,
	8,  // ProPawn
	8,  // ProLance
	8,  // ProKnight
	8,  // ProSilver
	22, // Horse
	22, // Dragon
}

// piecePriceC: HUM attacker in the capture-loss scan.
var piecePriceC = [15]uint8{
	255, 1, 4, 4, 8, 16, 17, 8, 40,
	2,  // ProPawn
	8,  // ProLance
	8,  // ProKnight
	8,  // ProSilver
	22, // Horse
	22, // Dragon
}

// piecePriceD: COM piece and COM attacker in the capture-loss scan.
var piecePriceD = [15]uint8{
	255, 1, 4, 4, 8, 16, 17, 8, 40,
	1,  // ProPawn
	4,  // ProLance
	4,  // ProKnight
	8,  // ProSilver
	20, // Horse
	22, // Dragon
}

// Attacker returns the cheapest piece kind of side us with an effect on
// sq (prices per piecePriceA, ties broken by squareValue of the piece's
// square). Shadow effects do not count. NoPieceKind if none.
func Attacker(p *Position, us Side, sq int) PieceKind {
	them := us.Inv()

	curPk := NoPieceKind
	curSq := SQ11

	// A piece (us, pk) has an effect on sq iff sq's piece (them, pk)
	// would have an effect on it.
	for pk := Pawn; pk <= Dragon; pk++ {
		bb := Effect(MakePiece(them, pk), sq, p.BBOccupied()).And(p.BBPiece(us, pk))
		for !bb.IsZero() {
			sqAttacker := bb.PopLeastSquare()
			if curPk == NoPieceKind ||
				piecePriceA[pk] < piecePriceA[curPk] ||
				(piecePriceA[pk] == piecePriceA[curPk] && squareValue(sqAttacker) < squareValue(curSq)) {
				curPk = pk
				curSq = sqAttacker
			}
		}
	}

	return curPk
}

// comDropSrcValue is the move source value a COM drop carries in the
// ordering. Cheaper kinds get smaller values.
func comDropSrcValue(pk PieceKind) uint8 {
	switch pk {
	case Pawn:
		return 201
	case Lance:
		return 202
	case Knight:
		return 203
	case Silver:
		return 204
	case Gold:
		return 205
	case Bishop:
		return 206
	case Rook:
		return 207
	}
	panic("piece kind cannot be in hand")
}
