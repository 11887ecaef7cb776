package agent

import (
	"fmt"
	"time"

	"connect4/game"
	"connect4/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that drops into a uniformly random
// legal column.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(board *game.Board, side game.Cell) (int, searcher.SearchMetric, error) {
	start := time.Now()
	if !side.IsSide() {
		return searcher.NoColumn, searcher.SearchMetric{}, fmt.Errorf("failed to find move for %s: %w", side, game.ErrInvalidSide)
	}
	moves := board.LegalMoves()
	if len(moves) == 0 {
		return searcher.NoColumn, searcher.SearchMetric{}, fmt.Errorf("failed to find move: %w", ErrNoLegalMoves)
	}
	col := moves[a.rng.Intn(len(moves))]
	return col, searcher.SearchMetric{Duration: time.Since(start)}, nil
}
