package solver

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	. "github.com/shogihack/naitou/common"
	"github.com/shogihack/naitou/engine"
)

// Sink receives one winning line: the complete record from the initial
// position, takeback flags included. The slice is only valid for the
// duration of the call.
type Sink func(mvs []Move)

// syncSink serializes emissions from concurrent workers.
type syncSink struct {
	mu   sync.Mutex
	sink Sink
}

func (s *syncSink) emit(mvs []Move) {
	s.mu.Lock()
	s.sink(mvs)
	s.mu.Unlock()
}

// humMoves appends the HUM moves to try: evasions when in check,
// otherwise every pseudo-legal move. Suicide moves among them are
// rejected by the engine later.
func humMoves(mvs []Move, pos *Position) []Move {
	if pos.IsChecked(HUM) {
		return GenerateEvasions(mvs, pos)
	}
	return GenerateMoves(mvs, pos)
}

// Solve finds every line within depth HUM plies that ends in the engine
// resigning, starting from eng's position (HUM to move). history is the
// record leading to that position; every emitted line extends it. Each
// first move is searched on its own worker, at most threads (NumCPU if
// zero or less) at a time.
//
// The search is exhaustive: nothing is pruned, so all solutions up to
// the depth are found, each exactly once.
func Solve(eng *engine.Engine, history []Move, depth, threads int, sink Sink) error {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	out := &syncSink{sink: sink}

	var buf [MaxMoves]Move
	mvs := humMoves(buf[:0], eng.Position())

	var g errgroup.Group
	g.SetLimit(threads)
	for _, mv := range mvs {
		mv := mv
		g.Go(func() error {
			s := &solver{
				eng:     eng.Clone(),
				history: copyHistory(history, depth),
				emit:    out.emit,
			}
			s.solveFirst(mv, depth)
			return nil
		})
	}
	return g.Wait()
}

type solver struct {
	eng     *engine.Engine
	history []Move
	emit    func([]Move)
}

func (s *solver) solveFirst(mv Move, depth int) {
	resp, err := s.eng.DoStep(mv)
	if err != nil {
		return
	}

	switch resp.Kind() {
	case engine.ResponseMove:
		umvCom, _ := resp.MoveCom()
		s.history = append(s.history, mv, umvCom.Move())
		s.solveDFS(depth - 1)
	case engine.ResponseHumWin:
		s.history = append(s.history, mv)
		s.emit(s.history)
	}
}

func (s *solver) solveDFS(depth int) {
	if depth == 0 {
		return
	}

	var buf [MaxMoves]Move
	mvs := humMoves(buf[:0], s.eng.Position())

	for _, mv := range mvs {
		resp, err := s.eng.DoStep(mv)
		if err != nil {
			continue
		}

		switch resp.Kind() {
		case engine.ResponseMove:
			umvCom, _ := resp.MoveCom()
			s.history = append(s.history, mv, umvCom.Move())
			s.solveDFS(depth - 1)
			s.history = s.history[:len(s.history)-2]
		case engine.ResponseHumWin:
			s.history = append(s.history, mv)
			s.emit(s.history)
			s.history = s.history[:len(s.history)-1]
		}

		s.eng.UndoStep(resp)
	}
}

// SolveExtinct finds every line within depth HUM plies that captures
// all COM pieces except the king and ends in the engine resigning.
// branchDepth (ceil(depth/2) if zero or less) sets where the parallel
// split happens: all workers walk the tree above it in lockstep, and at
// remaining depth depth-branchDepth each subtree is assigned round-robin
// to exactly one worker.
//
// Besides the normal moves, each HUM move is also tried with the
// takeback flag, which burns the original's extra think pass to shift
// its progress bookkeeping. Takebacks are pointless on the very first
// ply and once past progress level 0, so they are skipped there.
func SolveExtinct(eng *engine.Engine, history []Move, depth, threads, branchDepth int, sink Sink) error {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if branchDepth <= 0 {
		branchDepth = (depth + 1) / 2
	}
	if branchDepth > depth {
		branchDepth = depth
	}

	out := &syncSink{sink: sink}

	var g errgroup.Group
	for threadID := 0; threadID < threads; threadID++ {
		threadID := threadID
		g.Go(func() error {
			s := &extinctSolver{
				threadCount: threads,
				threadID:    threadID,
				branchDepth: depth - branchDepth,
				// Each worker keeps its own counter; they all visit
				// the split nodes in the same order, so the counters
				// agree without sharing. Starts one short so the node
				// numbering begins at 0.
				branchIdx: threads - 1,
				eng:       eng.Clone(),
				history:   copyHistory(history, depth),
				emit:      out.emit,
			}
			s.solve(depth)
			return nil
		})
	}
	return g.Wait()
}

type extinctSolver struct {
	threadCount int
	threadID    int

	// Remaining depth of the parallel split.
	branchDepth int

	// Split-node counter mod threadCount; a worker descends only into
	// split nodes whose number matches its thread id.
	branchIdx int

	eng     *engine.Engine
	history []Move
	emit    func([]Move)
}

func (s *extinctSolver) solve(depth int) {
	comNonkingCount := s.eng.Position().ComNonkingCount()

	// Fewer remaining plies than COM pieces to capture: no solution
	// below here.
	if depth < comNonkingCount {
		return
	}

	if depth == s.branchDepth {
		s.branchIdx++
		if s.branchIdx == s.threadCount {
			s.branchIdx = 0
		}
		if s.threadID != s.branchIdx {
			return
		}
	}

	// On the capture frontier every move must take a piece.
	var buf [MaxMoves]Move
	var mvs []Move
	if depth == comNonkingCount {
		mvs = GenerateCaptures(buf[:0], s.eng.Position())
	} else {
		mvs = humMoves(buf[:0], s.eng.Position())
	}

	genMatta := s.eng.ProgressPly() != 0 && s.eng.ProgressLevel() == 0

	for _, mv := range mvs {
		s.step(mv, depth)
		if genMatta {
			s.step(NewMatta(mv), depth)
		}
	}
}

func (s *extinctSolver) step(mv Move, depth int) {
	resp, err := s.eng.DoStep(mv)
	if err != nil {
		return
	}

	switch resp.Kind() {
	case engine.ResponseMove:
		umvCom, _ := resp.MoveCom()
		s.history = append(s.history, mv, umvCom.Move())
		s.solve(depth - 1)
		s.history = s.history[:len(s.history)-2]
	case engine.ResponseHumWin:
		// Above the split every worker reaches this node, so only
		// worker 0 reports it.
		if s.eng.Position().ComNonkingCount() == 0 &&
			(depth <= s.branchDepth || s.threadID == 0) {
			s.history = append(s.history, mv)
			s.emit(s.history)
			s.history = s.history[:len(s.history)-1]
		}
	}

	s.eng.UndoStep(resp)
}

func copyHistory(history []Move, depth int) []Move {
	h := make([]Move, len(history), len(history)+2*depth)
	copy(h, history)
	return h
}
