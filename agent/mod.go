// Package agent adapts move pickers to the engine and the experiment harness.
package agent

import (
	"errors"

	"connect4/game"
	"connect4/searcher"
)

var ErrNoLegalMoves = errors.New("no legal moves")

type Agent interface {
	// FindMove returns a column for side and the metrics (if collected) of the search behind it
	FindMove(board *game.Board, side game.Cell) (int, searcher.SearchMetric, error)
}
