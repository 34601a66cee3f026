package common

import "math/bits"

// Direction of a ray on the board, from HUM's point of view.
//
// The numbering pairs opposite directions so that dir and 7-dir always
// point away from each other:
//
//	530
//	6.1
//	742
type Direction int

const (
	DirectionRU Direction = iota
	DirectionRRight
	DirectionRD
	DirectionUp
	DirectionDown
	DirectionLU
	DirectionLeft
	DirectionLD
)

func (d Direction) Inv() Direction {
	return 7 - d
}

var directionDeltas = [8]SquareWithWall{
	DirWWRU, DirWWR, DirWWRD, DirWWU, DirWWD, DirWWLU, DirWWL, DirWWLD,
}

// SqwwDelta converts the direction to a SquareWithWall delta.
func (d Direction) SqwwDelta() SquareWithWall {
	return directionDeltas[d]
}

var directionNames = [8]string{"RU", "R", "RD", "U", "D", "LU", "L", "LD"}

func (d Direction) String() string {
	return directionNames[d]
}

// DirectionSet is a set of directions, one bit per Direction value.
type DirectionSet uint8

const (
	DirSetRU DirectionSet = 1 << iota
	DirSetR
	DirSetRD
	DirSetU
	DirSetD
	DirSetLU
	DirSetL
	DirSetLD
)

const DirSetAll DirectionSet = 0xFF

func MakeDirectionSet(dir Direction) DirectionSet {
	return 1 << dir
}

// DirectionSetFromSquares returns the direction from src toward dst, as a set
// of at most one element. Squares not on a shared line give the empty set.
func DirectionSetFromSquares(src, dst int) DirectionSet {
	return directionFromSquaresTable[src][dst]
}

var directionFromSquaresTable = func() (table [81][81]DirectionSet) {
	for sq := SQ11; sq <= SQ99; sq++ {
		for dir := DirectionRU; dir <= DirectionLD; dir++ {
			delta := dir.SqwwDelta()
			for ww := SquareToWall(sq) + delta; ww.IsOnBoard(); ww += delta {
				table[sq][ww.Square()] = MakeDirectionSet(dir)
			}
		}
	}
	return
}()

func (ds DirectionSet) IsEmpty() bool {
	return ds == 0
}

func (ds DirectionSet) IsDisjoint(other DirectionSet) bool {
	return ds&other == 0
}

func (ds DirectionSet) IsSubset(other DirectionSet) bool {
	return ds&other == ds
}

func (ds DirectionSet) IsSuperset(other DirectionSet) bool {
	return other.IsSubset(ds)
}

func (ds DirectionSet) Contains(dir Direction) bool {
	return ds&MakeDirectionSet(dir) != 0
}

// GetLeast returns the lowest-numbered direction. ds must not be empty.
func (ds DirectionSet) GetLeast() Direction {
	return Direction(bits.TrailingZeros8(uint8(ds)))
}

// PopLeast removes and returns the lowest-numbered direction. ds must not be
// empty.
func (ds *DirectionSet) PopLeast() Direction {
	dir := ds.GetLeast()
	*ds &= *ds - 1
	return dir
}

// ForEach calls f for every direction in the set.
func (ds DirectionSet) ForEach(f func(Direction)) {
	for s := ds; !s.IsEmpty(); {
		f(s.PopLeast())
	}
}

const (
	bishopDirs = DirSetRU | DirSetRD | DirSetLU | DirSetLD
	rookDirs   = DirSetR | DirSetU | DirSetD | DirSetL
)

// SupportedDirections returns the directions in which a ranged effect resting
// on pc is extended one square beyond it (the shadow effect). Knights and
// kings extend nothing.
func SupportedDirections(pc Piece) DirectionSet {
	return supportedDirectionsTable[pc]
}

var supportedDirectionsTable = [32]DirectionSet{
	HPawn:      DirSetU,
	HLance:     DirSetU,
	HSilver:    DirSetRU | DirSetRD | DirSetU | DirSetLU | DirSetLD,
	HBishop:    bishopDirs,
	HRook:      rookDirs,
	HGold:      DirSetRU | DirSetR | DirSetU | DirSetD | DirSetLU | DirSetL,
	HProPawn:   DirSetRU | DirSetR | DirSetU | DirSetD | DirSetLU | DirSetL,
	HProLance:  DirSetRU | DirSetR | DirSetU | DirSetD | DirSetLU | DirSetL,
	HProKnight: DirSetRU | DirSetR | DirSetU | DirSetD | DirSetLU | DirSetL,
	HProSilver: DirSetRU | DirSetR | DirSetU | DirSetD | DirSetLU | DirSetL,
	HHorse:     DirSetAll,
	HDragon:    DirSetAll,

	CPawn:      DirSetD,
	CLance:     DirSetD,
	CSilver:    DirSetRU | DirSetRD | DirSetD | DirSetLU | DirSetLD,
	CBishop:    bishopDirs,
	CRook:      rookDirs,
	CGold:      DirSetR | DirSetRD | DirSetU | DirSetD | DirSetL | DirSetLD,
	CProPawn:   DirSetR | DirSetRD | DirSetU | DirSetD | DirSetL | DirSetLD,
	CProLance:  DirSetR | DirSetRD | DirSetU | DirSetD | DirSetL | DirSetLD,
	CProKnight: DirSetR | DirSetRD | DirSetU | DirSetD | DirSetL | DirSetLD,
	CProSilver: DirSetR | DirSetRD | DirSetU | DirSetD | DirSetL | DirSetLD,
	CHorse:     DirSetAll,
	CDragon:    DirSetAll,
}

// DirectionSetPair bundles a DirectionSet per side: low 8 bits HUM, high 8
// bits COM.
type DirectionSetPair uint16

const DirSetPairAll DirectionSetPair = 0xFFFF

func MakeDirectionSetPair(dirsHum, dirsCom DirectionSet) DirectionSetPair {
	return DirectionSetPair(dirsHum) | DirectionSetPair(dirsCom)<<8
}

func DirectionSetPairFromPart(side Side, dirs DirectionSet) DirectionSetPair {
	return DirectionSetPair(dirs) << (uint(side) << 3)
}

// RangedDirections returns the ranged effect directions of pc, side included.
// Only lances, bishops, rooks, horses and dragons have any.
func RangedDirections(pc Piece) DirectionSetPair {
	return rangedDirectionsTable[pc]
}

var rangedDirectionsTable = func() (table [32]DirectionSetPair) {
	table[HLance] = DirectionSetPairFromPart(HUM, DirSetU)
	table[HBishop] = DirectionSetPairFromPart(HUM, bishopDirs)
	table[HRook] = DirectionSetPairFromPart(HUM, rookDirs)
	table[HHorse] = table[HBishop]
	table[HDragon] = table[HRook]

	table[CLance] = DirectionSetPairFromPart(COM, DirSetD)
	table[CBishop] = DirectionSetPairFromPart(COM, bishopDirs)
	table[CRook] = DirectionSetPairFromPart(COM, rookDirs)
	table[CHorse] = table[CBishop]
	table[CDragon] = table[CRook]
	return
}()

func (dsp DirectionSetPair) IsEmpty() bool {
	return dsp == 0
}

func (dsp DirectionSetPair) Get(side Side) DirectionSet {
	return DirectionSet(dsp >> (uint(side) << 3))
}

// Pop removes one direction, regardless of side, and returns it together
// with the pair restricted to that direction. The order is unspecified.
func (dsp *DirectionSetPair) Pop() (Direction, DirectionSetPair) {
	dirIdx := uint(bits.TrailingZeros16(uint16(*dsp))) & 7
	dir := Direction(dirIdx)

	part := *dsp & DirectionSetPair(1<<dirIdx|1<<(dirIdx+8))
	*dsp &^= part

	return dir, part
}

// EffectCountBoard holds the number of effects per square for one side.
//
// The original game counts shadow effects: a ranged effect resting on a
// friendly non-king piece that itself has an effect in the same direction is
// extended by one square. SupportedDirections lists the qualifying piece and
// direction combinations.
type EffectCountBoard [81]uint8

// RangedEffectBoard holds, per square, both sides' ranged effect directions.
type RangedEffectBoard [81]DirectionSetPair

func (ecb EffectCountBoard) String() string {
	const chars = "0123456789ABCDEF"

	var sb []byte
	for row := Row1; row <= Row9; row++ {
		for col := Col9; col >= Col1; col-- {
			sb = append(sb, chars[ecb[MakeSquare(col, row)]])
		}
		sb = append(sb, '\n')
	}
	return string(sb)
}
