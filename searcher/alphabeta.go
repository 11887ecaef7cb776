// Package searcher picks Connect Four moves with depth-limited minimax and
// alpha-beta pruning.
package searcher

import (
	"fmt"
	"math"
	"time"

	"connect4/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

/*
function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
*/

// Infinity bounds every score, sentinels included.
const Infinity = int64(math.MaxInt64)

// NoColumn is the column of a leaf decision.
const NoColumn = -1

// Decision is a searched column and its minimax value from the maximizing
// side's perspective.
type Decision struct {
	Column int
	Value  int64
}

type Searcher struct {
	config  Config
	rng     *rand.Rand
	metrics Collector
}

func NewSearcher(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		config:  DefaultConfig(),
		metrics: NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		panic(fmt.Sprintf("invalid search config: %v", err))
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return s
}

func (s *Searcher) Config() Config {
	return s.config
}

// BestMove searches board to the configured depth for side and returns the
// chosen column. The board is never modified.
func (s *Searcher) BestMove(board *game.Board, side game.Cell) (Decision, SearchMetric, error) {
	none := Decision{Column: NoColumn}
	if !side.IsSide() {
		return none, SearchMetric{}, fmt.Errorf("failed to search for %s: %w", side, game.ErrInvalidSide)
	}
	if err := board.Validate(); err != nil {
		return none, SearchMetric{}, fmt.Errorf("failed to search: %w", err)
	}
	if board.IsTerminal() {
		return none, SearchMetric{}, fmt.Errorf("failed to search: %w", ErrGameOver)
	}

	s.metrics.Start(s.config.Depth)
	decision := s.Search(board, side, s.config.Depth, -Infinity, Infinity, true)
	metric := s.metrics.Complete()

	log.Debug().
		Str("side", side.String()).
		Int("depth", s.config.Depth).
		Int("column", decision.Column).
		Int64("value", decision.Value).
		Int("nodes", metric.Nodes).
		Dur("duration", metric.Duration).
		Msg("best-move")
	return decision, metric, nil
}

// Search runs minimax with alpha-beta pruning. side is the maximizing side and
// its opponent minimizes; maximizing tells whose turn it is at this node.
// Requires a gravity-consistent board, depth >= 0 and alpha <= beta.
func (s *Searcher) Search(board *game.Board, side game.Cell, depth int, alpha, beta int64, maximizing bool) Decision {
	s.metrics.AddNode()
	opponent := side.Opponent()

	won := board.HasFourInRow(side)
	lost := board.HasFourInRow(opponent)
	full := board.IsFull()
	if depth == 0 || won || lost || full {
		s.metrics.AddLeaf(won || lost || full)
		switch {
		case won:
			return Decision{Column: NoColumn, Value: s.config.Sentinel}
		case lost:
			return Decision{Column: NoColumn, Value: -s.config.Sentinel}
		case full:
			return Decision{Column: NoColumn, Value: 0}
		default:
			return Decision{Column: NoColumn, Value: board.ScorePosition(side, s.config.Weights)}
		}
	}

	moves := board.LegalMoves()
	// Fallback when no column strictly improves on the initial bound
	best := Decision{Column: moves[s.rng.Intn(len(moves))]}

	if maximizing {
		best.Value = -Infinity
		for _, col := range moves {
			child := board.Copy()
			mustDrop(child, col, side)
			value := s.Search(child, side, depth-1, alpha, beta, false).Value
			if value > best.Value {
				best.Value = value
				best.Column = col
			}
			alpha = max(alpha, best.Value)
			if alpha >= beta {
				s.metrics.AddCutoff()
				break
			}
		}
		return best
	}

	best.Value = Infinity
	for _, col := range moves {
		child := board.Copy()
		mustDrop(child, col, opponent)
		value := s.Search(child, side, depth-1, alpha, beta, true).Value
		if value < best.Value {
			best.Value = value
			best.Column = col
		}
		beta = min(beta, best.Value)
		if alpha >= beta {
			s.metrics.AddCutoff()
			break
		}
	}
	return best
}

// mustDrop applies a move taken from LegalMoves
func mustDrop(board *game.Board, col int, side game.Cell) {
	if _, err := board.Drop(col, side); err != nil {
		panic(fmt.Sprintf("search generated an illegal move: %v", err))
	}
}
