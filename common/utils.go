package common

func Min(l, r int) int {
	if l < r {
		return l
	}
	return r
}

func Max(l, r int) int {
	if l > r {
		return l
	}
	return r
}

func AbsDelta(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}

func MakeSquare(col, row int) int {
	return 9*col + row
}

func SquareCol(sq int) int {
	return sq / 9
}

func SquareRow(sq int) int {
	return sq % 9
}

func SquareIsOnBoard(sq int) bool {
	return SQ11 <= sq && sq <= SQ99
}

func ColIsOnBoard(col int) bool {
	return Col1 <= col && col <= Col9
}

func RowIsOnBoard(row int) bool {
	return Row1 <= row && row <= Row9
}

// SquareDistance is the Chebyshev distance.
func SquareDistance(sq1, sq2 int) int {
	return Max(AbsDelta(SquareCol(sq1), SquareCol(sq2)), AbsDelta(SquareRow(sq1), SquareRow(sq2)))
}

// RowIsPromotionZone uses a single 32-bit mask for both sides, shifting
// instead of multiplying.
func RowIsPromotionZone(row int, side Side) bool {
	const maskHum = 1<<Row1 | 1<<Row2 | 1<<Row3
	const maskCom = 1<<Row7 | 1<<Row8 | 1<<Row9
	const mask = maskHum | maskCom<<16

	return mask&(1<<(uint(side)<<4+uint(row))) != 0
}

func SquareIsPromotionZone(sq int, side Side) bool {
	return RowIsPromotionZone(SquareRow(sq), side)
}

// SquareWithWall packs a square together with per-direction distances to
// the board edge, so that a single add and mask test implement a ray
// step (yaneura-ou layout):
//
//	bit0-7:   square
//	bit8:     guard (keeps negative squares from borrowing upward)
//	bit9-13:  squares remaining to the right
//	bit14-18: squares remaining upward
//	bit19-23: squares remaining downward
//	bit24-28: squares remaining to the left
type SquareWithWall int32

const (
	DirWWR SquareWithWall = DirR - 1<<9 + 1<<24
	DirWWU SquareWithWall = DirU - 1<<14 + 1<<19
	DirWWD SquareWithWall = -DirWWU
	DirWWL SquareWithWall = -DirWWR

	DirWWRU = DirWWR + DirWWU
	DirWWRD = DirWWR + DirWWD
	DirWWLU = DirWWL + DirWWU
	DirWWLD = DirWWL + DirWWD

	DirWWRUU = DirWWRU + DirWWU
	DirWWRDD = DirWWRD + DirWWD
	DirWWLUU = DirWWLU + DirWWU
	DirWWLDD = DirWWLD + DirWWD
)

var squareWithWallTable = func() (table [81]SquareWithWall) {
	// From square 11 there are 0 squares right, 0 up, 8 down, 8 left.
	const inner11 = SQ11 | 1<<8 | 0<<9 | 0<<14 | 8<<19 | 8<<24

	for sq := SQ11; sq <= SQ99; sq++ {
		var c = SquareCol(sq)
		var r = SquareRow(sq)
		table[sq] = SquareWithWall(inner11) +
			SquareWithWall(c)*DirWWL + SquareWithWall(r)*DirWWD
	}
	return
}()

func SquareToWall(sq int) SquareWithWall {
	return squareWithWallTable[sq]
}

func (sqww SquareWithWall) IsOnBoard() bool {
	const mask = 1<<13 | 1<<18 | 1<<23 | 1<<28

	return sqww&mask == 0
}

func (sqww SquareWithWall) Square() int {
	return int(sqww & 0xFF)
}

const (
	colNames = "123456789"
	rowNames = "abcdefghi"
)

func SquareName(sq int) string {
	return string(colNames[SquareCol(sq)]) + string(rowNames[SquareRow(sq)])
}
