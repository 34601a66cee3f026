// Command trace replays a record and emits the engine's full decision
// trace to stdout, one event per line, for diffing against the
// original. The record may end with the game: the last COM move of a
// mating sequence, or a final HUM move the engine answers with a
// resignation or a suicide verdict.
//
// Usage: trace [flags] <sfen>
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/shogihack/naitou/common"
	"github.com/shogihack/naitou/engine"
)

var flgTimelimit bool

func main() {
	flag.BoolVar(&flgTimelimit, "timelimit", false, "original's time limit setting; selects the even-game formation")
	flag.Parse()

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <sfen>\n", os.Args[0])
		os.Exit(2)
	}

	engine.EnableTrace(zerolog.New(os.Stdout))

	if err := trace(flag.Arg(0), flgTimelimit); err != nil {
		logger.Fatal().Err(err).Msg("trace record")
	}
}

func trace(sfen string, timelimit bool) error {
	sideToMove, board, hands, mvs, err := common.DecodeSFEN(sfen)
	if err != nil {
		return fmt.Errorf("decode record: %w", err)
	}

	handicap, err := engine.HandicapFromStartpos(sideToMove, &board, &hands, timelimit)
	if err != nil {
		return err
	}

	eng, umvCom := engine.NewEngine(handicap)
	if umvCom != common.UndoableMoveNone {
		if len(mvs) == 0 {
			return errors.New("record is missing the com first move")
		}
		if mvs[0] != umvCom.Move() {
			return fmt.Errorf("com first move mismatch: record %v, engine %v", mvs[0], umvCom.Move())
		}
		mvs = mvs[1:]
	}

	for len(mvs) > 0 {
		resp, err := eng.DoStep(mvs[0])
		if err != nil {
			return fmt.Errorf("move %v: %w", mvs[0], err)
		}

		switch resp.Kind() {
		case engine.ResponseMove, engine.ResponseComWin:
			umvCom, _ := resp.MoveCom()
			if len(mvs) < 2 {
				return errors.New("record ends on a com move")
			}
			if mvs[1] != umvCom.Move() {
				return fmt.Errorf("com move mismatch: record %v, engine %v", mvs[1], umvCom.Move())
			}
			if resp.Kind() == engine.ResponseComWin {
				if len(mvs) != 2 {
					return errors.New("record continues past a com win")
				}
				return nil
			}
		case engine.ResponseHumWin, engine.ResponseHumSuicide:
			if len(mvs) != 1 {
				return errors.New("record continues past the game end")
			}
			return nil
		}

		mvs = mvs[2:]
	}

	return nil
}
