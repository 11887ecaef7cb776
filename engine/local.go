package engine

import (
	"context"
	"fmt"
	"time"

	"connect4/agent"
	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/rs/zerolog/log"
)

type localEngine struct {
	board    *game.Board
	agents   [2]agent.Agent
	starting game.Cell
}

// LocalEngine returns an engine where agents[0] plays SideA and agents[1]
// plays SideB. The board is played on in place.
func LocalEngine(agents [2]agent.Agent, board *game.Board, starting game.Cell) Engine {
	if agents[0] == nil || agents[1] == nil {
		panic("need two agents")
	}
	if !starting.IsSide() {
		panic(fmt.Sprintf("invalid starting side %s", starting))
	}
	return &localEngine{
		board:    board,
		agents:   agents,
		starting: starting,
	}
}

func (e *localEngine) agentFor(side game.Cell) agent.Agent {
	if side == game.SideA {
		return e.agents[0]
	}
	return e.agents[1]
}

func (e *localEngine) Run(ctx context.Context) (GameResult, error) {
	result := GameResult{
		Winner: game.Empty,
		Board:  e.board,
		Game: metrics.GameMetric{
			StartingSide: e.starting,
			StartTime:    time.Now(),
		},
	}
	if err := e.board.Validate(); err != nil {
		return result, fmt.Errorf("failed to start game: %w", err)
	}

	log.Debug().Msgf("side %s is starting", e.starting)

	side := e.starting
	for step := 1; !e.board.IsTerminal(); step++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		col, searchMetric, err := e.agentFor(side).FindMove(e.board.Copy(), side)
		if err != nil {
			return result, fmt.Errorf("failed to play step %d: %w", step, err)
		}
		if _, err := e.board.Drop(col, side); err != nil {
			return result, fmt.Errorf("failed to play step %d: %w", step, err)
		}

		result.Moves = append(result.Moves, metrics.MoveMetric{
			Step:         step,
			Side:         side,
			Column:       col,
			SearchMetric: searchMetric,
		})
		log.Debug().
			Int("step", step).
			Str("side", side.String()).
			Int("column", col).
			Dur("duration", searchMetric.Duration).
			Msg("move")

		side = side.Opponent()
	}

	if winner, ok := e.board.Winner(); ok {
		result.Winner = winner
	} else {
		result.Game.Draw = true
	}
	result.Game.Winner = result.Winner
	result.Game.EndTime = time.Now()
	result.Game.Duration = result.Game.EndTime.Sub(result.Game.StartTime)
	result.Game.TotalMoves = len(result.Moves)

	log.Debug().Msgf("game over after %d moves with winner: %s", result.Game.TotalMoves, result.Winner)
	return result, nil
}
