package common

import "math/bits"

// Bitboard is a column-major board set split into two 64-bit parts.
// Part 0 holds bit 0 = square 1a through bit 62 = square 7i (bit 63 unused),
// part 1 holds bit 0 = square 8a through bit 17 = square 9i.
type Bitboard struct {
	p0, p1 uint64
}

const (
	allBitsP0 = 0x7FFFFFFFFFFFFFFF
	allBitsP1 = 0x3FFFF
)

func AllSquaresBB() Bitboard {
	return Bitboard{allBitsP0, allBitsP1}
}

func BitboardFromParts(p0, p1 uint64) Bitboard {
	return Bitboard{p0, p1}
}

func SquareBB(sq int) Bitboard {
	return squareBBTable[sq]
}

func SquareIsPart0(sq int) bool {
	return sq <= SQ79
}

func (b Bitboard) Part0() uint64 { return b.p0 }
func (b Bitboard) Part1() uint64 { return b.p1 }

func (b Bitboard) Part(i int) uint64 {
	if i == 0 {
		return b.p0
	}
	return b.p1
}

// IsValid reports whether every bit outside the board area is zero.
func (b Bitboard) IsValid() bool {
	return b.p0&^uint64(allBitsP0) == 0 && b.p1&^uint64(allBitsP1) == 0
}

func (b Bitboard) IsZero() bool {
	return b.p0 == 0 && b.p1 == 0
}

// Test reports whether b and other share at least one set bit.
func (b Bitboard) Test(other Bitboard) bool {
	return b.p0&other.p0 != 0 || b.p1&other.p1 != 0
}

func (b Bitboard) TestSquare(sq int) bool {
	return b.Test(SquareBB(sq))
}

// AndNot returns (NOT b) AND rhs. The NOT covers bits outside the board area
// as well.
func (b Bitboard) AndNot(rhs Bitboard) Bitboard {
	return Bitboard{^b.p0 & rhs.p0, ^b.p1 & rhs.p1}
}

// Not flips every board square and leaves the outside bits zero.
func (b Bitboard) Not() Bitboard {
	return b.Xor(AllSquaresBB())
}

func (b Bitboard) And(rhs Bitboard) Bitboard {
	return Bitboard{b.p0 & rhs.p0, b.p1 & rhs.p1}
}

func (b Bitboard) Or(rhs Bitboard) Bitboard {
	return Bitboard{b.p0 | rhs.p0, b.p1 | rhs.p1}
}

func (b Bitboard) Xor(rhs Bitboard) Bitboard {
	return Bitboard{b.p0 ^ rhs.p0, b.p1 ^ rhs.p1}
}

// AddParts adds the two 64-bit parts independently.
func (b Bitboard) AddParts(rhs Bitboard) Bitboard {
	return Bitboard{b.p0 + rhs.p0, b.p1 + rhs.p1}
}

// SubParts subtracts the two 64-bit parts independently.
func (b Bitboard) SubParts(rhs Bitboard) Bitboard {
	return Bitboard{b.p0 - rhs.p0, b.p1 - rhs.p1}
}

func (b Bitboard) ShiftLeftParts(n uint) Bitboard {
	return Bitboard{b.p0 << n, b.p1 << n}
}

func (b Bitboard) ShiftRightParts(n uint) Bitboard {
	return Bitboard{b.p0 >> n, b.p1 >> n}
}

func (b Bitboard) CountOnes() int {
	return bits.OnesCount64(b.p0) + bits.OnesCount64(b.p1)
}

// GetLeastSquare returns the square of the lowest set bit. b must be nonzero.
func (b Bitboard) GetLeastSquare() int {
	if b.p0 != 0 {
		return bits.TrailingZeros64(b.p0)
	}
	return 63 + bits.TrailingZeros64(b.p1)
}

// PopLeastSquare clears the lowest set bit and returns its square.
// b must be nonzero.
func (b *Bitboard) PopLeastSquare() int {
	if b.p0 != 0 {
		sq := bits.TrailingZeros64(b.p0)
		b.p0 &= b.p0 - 1
		return sq
	}
	sq := 63 + bits.TrailingZeros64(b.p1)
	b.p1 &= b.p1 - 1
	return sq
}

// ForEachSquare calls f for every set square in ascending order.
func (b Bitboard) ForEachSquare(f func(sq int)) {
	for p := b.p0; p != 0; p &= p - 1 {
		f(bits.TrailingZeros64(p))
	}
	for p := b.p1; p != 0; p &= p - 1 {
		f(63 + bits.TrailingZeros64(p))
	}
}

// ByteReverse reverses the byte order of the full 128 bits.
func (b Bitboard) ByteReverse() Bitboard {
	return Bitboard{bits.ReverseBytes64(b.p1), bits.ReverseBytes64(b.p0)}
}

// UnpackPair regroups two bitboards into (their part-0 halves, their part-1
// halves). Applying it twice restores the inputs.
func UnpackPair(lo, hi Bitboard) (Bitboard, Bitboard) {
	return Bitboard{lo.p0, hi.p0}, Bitboard{lo.p1, hi.p1}
}

// DecrementUnpackedPair treats each unpacked pair as a 128-bit integer and
// decrements both.
func DecrementUnpackedPair(lo, hi Bitboard) (Bitboard, Bitboard) {
	if lo.p0 == 0 {
		hi.p0--
	}
	if lo.p1 == 0 {
		hi.p1--
	}
	lo.p0--
	lo.p1--
	return lo, hi
}

func (b Bitboard) String() string {
	var sb []byte
	for row := Row1; row <= Row9; row++ {
		for col := Col9; col >= Col1; col-- {
			if b.TestSquare(MakeSquare(col, row)) {
				sb = append(sb, ' ', '*')
			} else {
				sb = append(sb, ' ', '.')
			}
		}
		sb = append(sb, '\n')
	}
	return string(sb)
}

// Bitboard2 holds two bitboards operated on in lockstep. Bishop effect
// computation uses it to handle both diagonals at once.
type Bitboard2 struct {
	b0, b1 Bitboard
}

func BroadcastBitboard2(b Bitboard) Bitboard2 {
	return Bitboard2{b, b}
}

func Bitboard2From(b0, b1 Bitboard) Bitboard2 {
	return Bitboard2{b0, b1}
}

func (b Bitboard2) Bitboard0() Bitboard { return b.b0 }
func (b Bitboard2) Bitboard1() Bitboard { return b.b1 }

// Merge returns the OR of the two halves.
func (b Bitboard2) Merge() Bitboard {
	return b.b0.Or(b.b1)
}

func (b Bitboard2) ByteReverse() Bitboard2 {
	return Bitboard2{b.b0.ByteReverse(), b.b1.ByteReverse()}
}

func (b Bitboard2) And(rhs Bitboard2) Bitboard2 {
	return Bitboard2{b.b0.And(rhs.b0), b.b1.And(rhs.b1)}
}

func (b Bitboard2) Or(rhs Bitboard2) Bitboard2 {
	return Bitboard2{b.b0.Or(rhs.b0), b.b1.Or(rhs.b1)}
}

func (b Bitboard2) Xor(rhs Bitboard2) Bitboard2 {
	return Bitboard2{b.b0.Xor(rhs.b0), b.b1.Xor(rhs.b1)}
}

func UnpackPair2(lo, hi Bitboard2) (Bitboard2, Bitboard2) {
	lo0, hi0 := UnpackPair(lo.b0, hi.b0)
	lo1, hi1 := UnpackPair(lo.b1, hi.b1)
	return Bitboard2{lo0, lo1}, Bitboard2{hi0, hi1}
}

func DecrementUnpackedPair2(lo, hi Bitboard2) (Bitboard2, Bitboard2) {
	lo0, hi0 := DecrementUnpackedPair(lo.b0, hi.b0)
	lo1, hi1 := DecrementUnpackedPair(lo.b1, hi.b1)
	return Bitboard2{lo0, lo1}, Bitboard2{hi0, hi1}
}
