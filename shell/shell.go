// Package shell is an interactive Connect Four game against the search engine.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"connect4/config"
	"connect4/game"
	"connect4/searcher"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	Human = game.SideA
	AI    = game.SideB
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingArgs    = errors.New("missing arguments")
	ErrGameOver       = errors.New("game is over; type new to play again")
)

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	rows, cols int
	options    []searcher.Option
	depth      int
	rng        *rand.Rand
	searcher   *searcher.Searcher

	board *game.Board
	over  bool
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController returns a controller writing to out. Call Loop to read
// commands from the terminal or Execute to drive it directly.
func NewShellController(cfg *config.Config, out io.Writer) *ShellController {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	sc := &ShellController{
		out:     out,
		rows:    cfg.Rows,
		cols:    cfg.Cols,
		options: []searcher.Option{searcher.WithConfig(cfg.SearchConfig())},
		depth:   cfg.Depth,
		rng:     rand.New(rand.NewSource(seed)),
	}
	sc.buildSearcher()
	sc.board = game.NewBoard(sc.rows, sc.cols)
	return sc
}

func (sc *ShellController) buildSearcher() {
	options := append([]searcher.Option{}, sc.options...)
	options = append(options, searcher.WithDepth(sc.depth), searcher.WithRand(sc.rng))
	sc.searcher = searcher.NewSearcher(options...)
}

func (sc *ShellController) Board() *game.Board {
	return sc.board
}

func (sc *ShellController) Depth() int {
	return sc.depth
}

func (sc *ShellController) IsOver() bool {
	return sc.over
}

func (sc *ShellController) showBoard() {
	showMessage("\nCurrent board:", sc.out)
	io.WriteString(sc.out, sc.board.String())
}

// Execute runs a single command line. Failed commands leave the game unchanged.
func (sc *ShellController) Execute(line string) (bool, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return false, err
	}
	if len(fields) == 0 {
		return false, nil
	}

	cmd, args := fields[0], fields[1:]
	if _, err := strconv.Atoi(cmd); err == nil {
		cmd, args = "drop", fields
	}

	switch cmd {
	case "drop":
		if len(args) < 1 {
			return false, fmt.Errorf("%w: drop <col>", ErrMissingArgs)
		}
		col, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("column must be a number: %w", err)
		}
		return false, sc.humanMove(col)
	case "hint":
		return false, sc.hint()
	case "depth":
		if len(args) < 1 {
			showMessage(fmt.Sprintf("Search depth is %d", sc.depth), sc.out)
			return false, nil
		}
		depth, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("depth must be a number: %w", err)
		}
		if depth < 1 {
			return false, fmt.Errorf("%w: got %d", searcher.ErrInvalidDepth, depth)
		}
		sc.depth = depth
		sc.buildSearcher()
		showMessage(fmt.Sprintf("Search depth set to %d", depth), sc.out)
	case "new":
		starting := Human
		if len(args) > 0 {
			switch strings.ToUpper(args[0]) {
			case "A":
			case "B":
				starting = AI
			default:
				return false, fmt.Errorf("%w: %s (expected A or B)", game.ErrInvalidSide, args[0])
			}
		}
		return false, sc.newGame(starting)
	case "load":
		if len(args) < 1 {
			return false, fmt.Errorf("%w: load <row>...", ErrMissingArgs)
		}
		return false, sc.load(args)
	case "board":
		sc.showBoard()
	case "help":
		usage(sc.out)
	case "exit", "bye":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	return false, nil
}

func (sc *ShellController) newGame(starting game.Cell) error {
	sc.board = game.NewBoard(sc.rows, sc.cols)
	sc.over = false
	showMessage("New game.", sc.out)
	if starting == AI {
		return sc.aiMove()
	}
	sc.showBoard()
	return nil
}

func (sc *ShellController) load(rows []string) error {
	board, err := game.ParseBoard(rows)
	if err != nil {
		return err
	}
	sc.board = board
	sc.over = false
	sc.showBoard()
	sc.checkGameOver()
	return nil
}

func (sc *ShellController) humanMove(col int) error {
	if sc.over {
		return ErrGameOver
	}
	if _, err := sc.board.Drop(col, Human); err != nil {
		return err
	}
	sc.showBoard()
	if sc.checkGameOver() {
		return nil
	}
	return sc.aiMove()
}

func (sc *ShellController) aiMove() error {
	showMessage("AI is thinking...", sc.out)
	decision, metric, err := sc.searcher.BestMove(sc.board, AI)
	if err != nil {
		return err
	}
	log.Debug().Int("nodes", metric.Nodes).Dur("duration", metric.Duration).Msg("ai-move")
	if _, err := sc.board.Drop(decision.Column, AI); err != nil {
		return err
	}
	showMessage(fmt.Sprintf("AI chooses column %d", decision.Column), sc.out)
	sc.showBoard()
	sc.checkGameOver()
	return nil
}

func (sc *ShellController) hint() error {
	if sc.over {
		return ErrGameOver
	}
	decision, _, err := sc.searcher.BestMove(sc.board, Human)
	if err != nil {
		return err
	}
	showMessage(fmt.Sprintf("Suggested column %d (value %d)", decision.Column, decision.Value), sc.out)
	return nil
}

// checkGameOver announces a finished game and reports whether it is over.
func (sc *ShellController) checkGameOver() bool {
	winner, won := sc.board.Winner()
	switch {
	case won && winner == Human:
		showMessage("Player 1 wins!", sc.out)
	case won:
		showMessage("AI wins!", sc.out)
	case sc.board.IsFull():
		showMessage("It's a tie!", sc.out)
	default:
		return false
	}
	sc.over = true
	return true
}

// errorMessage is how a failed command is reported to the player.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrColumnFull):
		return "Column full. Try again."
	case errors.Is(err, game.ErrColumnOutOfRange):
		return "Column out of range. Try again."
	default:
		return "Error: " + err.Error()
	}
}

// Loop reads commands until exit or end of input. historyFile may be empty.
func (sc *ShellController) Loop(historyFile string) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mconnect4>\033[0m ",
		HistoryFile:     historyFile,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("drop"),
			readline.PcItem("hint"),
			readline.PcItem("depth"),
			readline.PcItem("new", readline.PcItem("A"), readline.PcItem("B")),
			readline.PcItem("load"),
			readline.PcItem("board"),
			readline.PcItem("help"),
			readline.PcItem("exit"),
		),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}
	defer l.Close()
	sc.l = l
	sc.out = l.Stdout()

	usage(sc.out)
	sc.showBoard()
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		quit, err := sc.Execute(strings.TrimSpace(line))
		if err != nil {
			log.Debug().Err(err).Msg("command-failed")
			showMessage(errorMessage(err), sc.out)
		}
		if quit {
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
	return nil
}
