package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	. "github.com/shogihack/naitou/common"
	"github.com/shogihack/naitou/engine"
)

// Shell is the single-player inspection shell: set up positions, play
// moves for either side by hand, and dump internal state.
type Shell struct {
	pos     *Position
	history []UndoableMove

	in  io.Reader
	out io.Writer
}

func New() *Shell {
	sideToMove, board, hands := engine.HumSenteSikenbisha.Startpos()
	return &Shell{
		pos: NewPosition(sideToMove, board, hands),
		in:  os.Stdin,
		out: os.Stdout,
	}
}

func (sh *Shell) Run() error {
	sh.printPosition()

	var scanner = bufio.NewScanner(sh.in)
	for {
		fmt.Fprintf(sh.out, "\nsolo shell > ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		var fields = strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" {
			return nil
		}

		if err := sh.doCommand(fields[0], fields[1:]); err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
	}
}

func (sh *Shell) doCommand(cmd string, args []string) error {
	switch cmd {
	case "position":
		return sh.positionCommand(args)
	case "move":
		return sh.moveCommand(args)
	case "undo":
		return sh.undoCommand()
	case "print":
		return sh.printCommand(args)
	}
	return fmt.Errorf("unknown command: %v", cmd)
}

func (sh *Shell) positionCommand(args []string) error {
	sideToMove, board, hands, err := DecodeSFENPosition(strings.Join(args, " "))
	if err != nil {
		return err
	}

	sh.pos = NewPosition(sideToMove, board, hands)
	sh.history = sh.history[:0]

	sh.printPosition()
	return nil
}

func (sh *Shell) moveCommand(args []string) error {
	if len(args) == 0 {
		return errors.New("move is not specified")
	}
	mv, err := DecodeSFENMove(args[0])
	if err != nil {
		return err
	}

	// Any pseudo-legal move goes, suicides included; the shell is for
	// poking at positions, not for playing fair games.
	var buf [MaxMoves]Move
	if !containsMove(GenerateMoves(buf[:0], sh.pos), mv.WithoutMatta()) {
		return errors.New("illegal move")
	}

	sh.history = append(sh.history, sh.pos.DoMove(mv))

	sh.printPosition()
	return nil
}

func (sh *Shell) undoCommand() error {
	if len(sh.history) == 0 {
		return errors.New("history is empty")
	}
	umv := sh.history[len(sh.history)-1]
	sh.history = sh.history[:len(sh.history)-1]

	sh.pos.UndoMove(umv)

	sh.printPosition()
	return nil
}

func (sh *Shell) printCommand(args []string) error {
	if len(args) == 0 {
		return errors.New("object name is not specified")
	}

	switch args[0] {
	case "position":
		sh.printPosition()
	case "effect":
		fmt.Fprintln(sh.out, sh.pos.EffectBoard(HUM))
		fmt.Fprint(sh.out, sh.pos.EffectBoard(COM))
	case "attacker":
		sh.printAttacker()
	default:
		return errors.New("unknown object name")
	}
	return nil
}

func (sh *Shell) printPosition() {
	fmt.Fprint(sh.out, sh.pos)
}

// printAttacker dumps, for every square, the cheapest attacker of each
// side ("v" marks COM, the side moving down the board).
func (sh *Shell) printAttacker() {
	for row := Row1; row <= Row9; row++ {
		for col := Col9; col >= Col1; col-- {
			sq := MakeSquare(col, row)
			atkHum := engine.Attacker(sh.pos, HUM, sq)
			atkCom := engine.Attacker(sh.pos, COM, sq)

			fmt.Fprint(sh.out, "[")
			if atkHum == NoPieceKind {
				fmt.Fprint(sh.out, "   ")
			} else {
				fmt.Fprintf(sh.out, " %2s", MakePiece(HUM, atkHum))
			}
			if atkCom == NoPieceKind {
				fmt.Fprint(sh.out, "   ")
			} else {
				fmt.Fprintf(sh.out, "v%2s", MakePiece(HUM, atkCom))
			}
			fmt.Fprint(sh.out, "]")
		}
		fmt.Fprintln(sh.out)
	}
}

func containsMove(mvs []Move, mv Move) bool {
	for _, m := range mvs {
		if m == mv {
			return true
		}
	}
	return false
}
