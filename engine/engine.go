// Package engine plays complete Connect Four games between two agents.
package engine

import (
	"context"

	"connect4/experiments/metrics"
	"connect4/game"
)

type Engine interface {
	// Run plays until a side connects four or the board fills up
	Run(ctx context.Context) (GameResult, error)
}

type GameResult struct {
	Winner game.Cell // Empty on a draw
	Board  *game.Board
	Game   metrics.GameMetric
	Moves  []metrics.MoveMetric
}

func (r GameResult) IsDraw() bool {
	return r.Game.Draw
}
