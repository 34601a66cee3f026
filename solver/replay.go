package solver

import (
	"errors"
	"fmt"

	. "github.com/shogihack/naitou/common"
	"github.com/shogihack/naitou/engine"
)

// Replay decodes an sfen record, recognizes the handicap from its
// initial position, and advances a fresh engine through the record. The
// record must alternate HUM and COM moves, each COM move matching what
// the engine actually replies, and must end in an ongoing position with
// HUM to move.
//
// It returns the handicap, the advanced engine, and the record's moves
// from the initial position (the COM first move included, for handicaps
// where COM moves first).
func Replay(sfen string, timelimit bool) (engine.Handicap, *engine.Engine, []Move, error) {
	sideToMove, board, hands, record, err := DecodeSFEN(sfen)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("decode record: %w", err)
	}

	handicap, err := engine.HandicapFromStartpos(sideToMove, &board, &hands, timelimit)
	if err != nil {
		return 0, nil, nil, err
	}

	eng, umvCom := engine.NewEngine(handicap)

	mvs := record
	if umvCom != UndoableMoveNone {
		if len(mvs) == 0 {
			return 0, nil, nil, errors.New("record is missing the com first move")
		}
		if mvs[0] != umvCom.Move() {
			return 0, nil, nil, fmt.Errorf("com first move mismatch: record %v, engine %v", mvs[0], umvCom.Move())
		}
		mvs = mvs[1:]
	}

	for len(mvs) > 0 {
		resp, err := eng.DoStep(mvs[0])
		if err != nil {
			return 0, nil, nil, fmt.Errorf("move %v: %w", mvs[0], err)
		}

		if resp.Kind() != engine.ResponseMove {
			return 0, nil, nil, fmt.Errorf("move %v: unexpected game end", mvs[0])
		}
		umvCom, _ := resp.MoveCom()
		if len(mvs) < 2 {
			return 0, nil, nil, errors.New("record ends on a com move")
		}
		if mvs[1] != umvCom.Move() {
			return 0, nil, nil, fmt.Errorf("com move mismatch: record %v, engine %v", mvs[1], umvCom.Move())
		}

		mvs = mvs[2:]
	}

	return handicap, eng, record, nil
}
