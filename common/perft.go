package common

// PerftLeafNode is handed to the Perft callback for every legal leaf
// position.
type PerftLeafNode struct {
	pos        *Position
	umv        UndoableMove // UndoableMoveNone at the root
	checked    bool
	checkmated bool
}

func (l *PerftLeafNode) Position() *Position {
	return l.pos
}

// PreviousMove returns the move leading to the leaf, or UndoableMoveNone at
// depth zero.
func (l *PerftLeafNode) PreviousMove() UndoableMove {
	return l.umv
}

func (l *PerftLeafNode) IsChecked() bool {
	return l.checked
}

func (l *PerftLeafNode) IsCheckmated() bool {
	return l.checkmated
}

// Perft enumerates all legal positions depth plies ahead and calls f for
// each. Perpetual-check repetitions and pawn-drop stalemates currently count
// as legal. The position is unchanged on return.
func Perft(pos *Position, depth int, f func(*PerftLeafNode)) {
	perftDFS(pos, UndoableMoveNone, depth, f)
}

// perftDFS may be entered on an illegal position: the side not to move may
// be in check (the previous move was a suicide), or the previous move may
// have been a pawn-drop mate. Both are detected here, one ply late.
func perftDFS(pos *Position, umv UndoableMove, depth int, f func(*PerftLeafNode)) {
	var us = pos.SideToMove()
	var them = us.Inv()

	if pos.IsChecked(them) {
		return
	}

	var checked = pos.IsChecked(us)

	// Interior nodes just play every pseudo-legal move; the illegal ones
	// are rejected by the next recursion. Pawn-drop mates in interior
	// nodes end the line like any other mate.
	if depth > 0 {
		var buf [MaxMoves]Move
		var mvs []Move
		if checked {
			mvs = GenerateEvasions(buf[:0], pos)
		} else {
			mvs = GenerateMoves(buf[:0], pos)
		}
		for _, mv := range mvs {
			var umvNext = pos.DoMove(mv)
			perftDFS(pos, umvNext, depth-1, f)
			pos.UndoMove(umvNext)
		}
		return
	}

	var checkmated = checked && pos.IsCheckmated()

	// A mate delivered by a pawn drop is illegal.
	if checkmated && umv != UndoableMoveNone &&
		umv.IsDrop() && umv.DroppedPieceKind() == Pawn {
		return
	}

	f(&PerftLeafNode{pos: pos, umv: umv, checked: checked, checkmated: checkmated})
}
