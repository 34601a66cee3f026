// Command solve finds every shortest forced win from the end of a
// record. The record must end in an ongoing position with HUM to move.
// A bare diagram position (no game history) is also accepted and
// solved tsume-style, with the opening book out of play.
//
// Usage: solve [flags] <sfen> <depth>
//
// Each solution is printed to stdout as one sfen record line, or as a
// Shift-JIS KIF record with -kif.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/shogihack/naitou/common"
	"github.com/shogihack/naitou/engine"
	"github.com/shogihack/naitou/solver"
)

var (
	flgTimelimit bool
	flgThreads   int
	flgKIF       bool
)

func main() {
	flag.BoolVar(&flgTimelimit, "timelimit", false, "original's time limit setting; selects the even-game formation")
	flag.IntVar(&flgThreads, "threads", 0, "worker count (default: logical CPUs)")
	flag.BoolVar(&flgKIF, "kif", false, "print solutions as Shift-JIS KIF records")
	flag.Parse()

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <sfen> <depth>\n", os.Args[0])
		os.Exit(2)
	}
	depth, err := strconv.Atoi(flag.Arg(1))
	if err != nil || depth < 1 {
		logger.Fatal().Str("depth", flag.Arg(1)).Msg("depth must be a positive integer")
	}

	eng, record, sideToMove, board, hands := loadRecord(logger, flag.Arg(0))

	threads := flgThreads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	logger.Info().
		Int("threads", threads).
		Int("depth", depth).
		Msg("solve")

	err = solver.Solve(eng, record, depth, threads, func(mvs []common.Move) {
		printSolution(logger, sideToMove, &board, &hands, mvs)
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("solve")
	}
}

// loadRecord replays a game record, or falls back to a bare diagram
// when the sfen does not start from a known handicap.
func loadRecord(logger zerolog.Logger, sfen string) (*engine.Engine, []common.Move, common.Side, common.Board, common.Hands) {
	handicap, eng, record, err := solver.Replay(sfen, flgTimelimit)
	if err == nil {
		logger.Info().Stringer("handicap", handicap).Msg("record replayed")
		sideToMove, board, hands := handicap.Startpos()
		return eng, record, sideToMove, board, hands
	}

	sideToMove, board, hands, derr := common.DecodeSFENPosition(sfen)
	if derr != nil {
		logger.Fatal().Err(err).Msg("replay record")
	}
	eng, derr = engine.NewEngineFromPosition(sideToMove, board, hands)
	if derr != nil {
		logger.Fatal().Err(derr).Msg("load diagram")
	}
	logger.Info().Msg("diagram loaded")
	return eng, nil, sideToMove, board, hands
}

func printSolution(logger zerolog.Logger, sideToMove common.Side, board *common.Board, hands *common.Hands, mvs []common.Move) {
	if !flgKIF {
		fmt.Println(common.EncodeSFEN(sideToMove, board, hands, mvs))
		return
	}

	s, err := common.EncodeKIF(sideToMove, board, hands, mvs)
	if err != nil {
		logger.Error().Err(err).Msg("encode kif")
		return
	}
	w := common.NewShiftJISWriter(os.Stdout)
	io.WriteString(w, s+"\n")
	w.Close()
}
