package common

// Move is packed into a uint32:
//
//	bit0-6:  destination
//	bit7-13: source (dropped piece kind for drops)
//	bit14:   drop flag
//	bit15:   promotion flag
//	bit31:   takeback flag
//
// A takeback move asks the engine to think once more before answering; the
// board part of the move is unchanged.
type Move uint32

const MoveNone Move = 0

const (
	flagDrop      Move = 1 << 14
	flagPromotion Move = 1 << 15
	flagMatta     Move = 1 << 31
)

// NewWalk makes a non-promoting board move. src and dst must be distinct
// squares on the board.
func NewWalk(src, dst int) Move {
	return Move(dst) | Move(src)<<7
}

// NewWalkPromotion makes a promoting board move.
func NewWalkPromotion(src, dst int) Move {
	return Move(dst) | Move(src)<<7 | flagPromotion
}

// NewDrop makes a drop of piece kind pk onto dst. pk must be a hand kind.
func NewDrop(pk PieceKind, dst int) Move {
	return Move(dst) | Move(pk)<<7 | flagDrop
}

// NewMatta marks mv as played after a takeback.
func NewMatta(mv Move) Move {
	return mv | flagMatta
}

func (m Move) IsDrop() bool {
	return m&flagDrop != 0
}

func (m Move) IsPromotion() bool {
	return m&flagPromotion != 0
}

func (m Move) IsMatta() bool {
	return m&flagMatta != 0
}

// WithoutMatta strips the takeback flag.
func (m Move) WithoutMatta() Move {
	return m &^ flagMatta
}

// IsValid reports whether the move is plausible in isolation; the board is
// not consulted.
func (m Move) IsValid() bool {
	if m.IsDrop() && m.IsPromotion() {
		return false
	}
	dst := m.Dst()
	if m.IsDrop() {
		return m.DroppedPieceKind().IsHand() && SquareIsOnBoard(dst)
	}
	src := m.Src()
	return src != dst && SquareIsOnBoard(src) && SquareIsOnBoard(dst)
}

func (m Move) Dst() int {
	return int(m & 0x7F)
}

// Src returns the source square. m must be a board move.
func (m Move) Src() int {
	return int(m>>7) & 0x7F
}

// DroppedPieceKind returns the dropped kind. m must be a drop.
func (m Move) DroppedPieceKind() PieceKind {
	return PieceKind(m>>7) & 0x7F
}

// String renders the move in sfen form, with a leading '!' for takebacks.
func (m Move) String() string {
	if !m.IsValid() {
		return "????"
	}
	var s string
	if m.IsMatta() {
		s = "!"
	}
	if m.IsDrop() {
		return s + string("?PLNSBRG"[m.DroppedPieceKind()]) + "*" + SquareName(m.Dst())
	}
	s += SquareName(m.Src()) + SquareName(m.Dst())
	if m.IsPromotion() {
		s += "+"
	}
	return s
}

// UndoableMove extends the Move layout with what a do needs to be undone:
//
//	bit16-20: moved piece (side included; meaningless for drops)
//	bit21-25: captured piece (NoPiece when the move is not a capture)
type UndoableMove uint32

const UndoableMoveNone UndoableMove = 0

// MakeUndoableWalk packs undo information onto a board move. Pass NoPiece
// as pcCaptured for non-captures.
func MakeUndoableWalk(mv Move, pcSrc, pcCaptured Piece) UndoableMove {
	return UndoableMove(mv.WithoutMatta()) |
		UndoableMove(pcSrc)<<16 | UndoableMove(pcCaptured)<<21
}

// MakeUndoableDrop packs a drop; a drop already carries everything undo needs.
func MakeUndoableDrop(mv Move) UndoableMove {
	return UndoableMove(mv.WithoutMatta())
}

// Move strips the undo information.
func (um UndoableMove) Move() Move {
	return Move(um & 0xFFFF)
}

func (um UndoableMove) IsDrop() bool {
	return um&UndoableMove(flagDrop) != 0
}

func (um UndoableMove) IsPromotion() bool {
	return um&UndoableMove(flagPromotion) != 0
}

func (um UndoableMove) Dst() int {
	return int(um & 0x7F)
}

// Src returns the source square. um must be a board move.
func (um UndoableMove) Src() int {
	return int(um>>7) & 0x7F
}

// DroppedPieceKind returns the dropped kind. um must be a drop.
func (um UndoableMove) DroppedPieceKind() PieceKind {
	return PieceKind(um>>7) & 0x7F
}

// PieceSrc returns the moved piece. um must be a board move.
func (um UndoableMove) PieceSrc() Piece {
	return Piece(um>>16) & 0x1F
}

// PieceCaptured returns the captured piece, NoPiece for non-captures.
func (um UndoableMove) PieceCaptured() Piece {
	return Piece(um>>21) & 0x1F
}

// PieceDst returns the piece standing on the destination after the move.
// um must be a board move.
func (um UndoableMove) PieceDst() Piece {
	if um.IsPromotion() {
		return um.PieceSrc().Promoted()
	}
	return um.PieceSrc()
}

func (um UndoableMove) String() string {
	return um.Move().String()
}
