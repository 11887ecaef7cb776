package agent

import (
	"fmt"

	"connect4/game"
	"connect4/searcher"
)

type searchAgent struct {
	searcher *searcher.Searcher
}

// NewSearchAgent returns an agent that plays the alpha-beta search's best move.
func NewSearchAgent(s *searcher.Searcher) Agent {
	return searchAgent{searcher: s}
}

func (a searchAgent) FindMove(board *game.Board, side game.Cell) (int, searcher.SearchMetric, error) {
	decision, metric, err := a.searcher.BestMove(board, side)
	if err != nil {
		return searcher.NoColumn, metric, fmt.Errorf("failed to find move: %w", err)
	}
	return decision.Column, metric, nil
}
