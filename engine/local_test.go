package engine

import (
	"context"
	"errors"
	"testing"

	"connect4/agent"
	"connect4/game"
	"connect4/searcher"

	"github.com/stretchr/testify/require"
)

// scriptedAgent replays fixed columns
type scriptedAgent struct {
	columns []int
	next    int
}

func (a *scriptedAgent) FindMove(board *game.Board, side game.Cell) (int, searcher.SearchMetric, error) {
	if a.next >= len(a.columns) {
		return searcher.NoColumn, searcher.SearchMetric{}, errors.New("script exhausted")
	}
	col := a.columns[a.next]
	a.next++
	return col, searcher.SearchMetric{}, nil
}

func TestLocalEngine(t *testing.T) {
	t.Run("stopping on a vertical win", func(t *testing.T) {
		agents := [2]agent.Agent{
			&scriptedAgent{columns: []int{0, 0, 0, 0}},
			&scriptedAgent{columns: []int{1, 1, 1}},
		}
		e := LocalEngine(agents, game.NewStandardBoard(), game.SideA)

		result, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, game.SideA, result.Winner)
		require.False(t, result.IsDraw())
		require.Equal(t, 7, result.Game.TotalMoves)
		require.Len(t, result.Moves, 7)
		require.Equal(t, game.SideA, result.Game.StartingSide)
		require.Equal(t, game.SideA, result.Game.Winner)
		require.False(t, result.Game.EndTime.Before(result.Game.StartTime))
	})

	t.Run("alternating sides from the starting side", func(t *testing.T) {
		agents := [2]agent.Agent{
			&scriptedAgent{columns: []int{1, 1, 1}},
			&scriptedAgent{columns: []int{0, 0, 0, 0}},
		}
		e := LocalEngine(agents, game.NewStandardBoard(), game.SideB)

		result, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, game.SideB, result.Winner)
		for i, move := range result.Moves {
			require.Equal(t, i+1, move.Step)
			if i%2 == 0 {
				require.Equal(t, game.SideB, move.Side)
				require.Equal(t, 0, move.Column)
			} else {
				require.Equal(t, game.SideA, move.Side)
				require.Equal(t, 1, move.Column)
			}
		}
	})

	t.Run("ending in a draw on a full board", func(t *testing.T) {
		agents := [2]agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)}
		e := LocalEngine(agents, game.NewBoard(3, 3), game.SideA)

		result, err := e.Run(context.Background())

		require.NoError(t, err)
		require.True(t, result.IsDraw())
		require.Equal(t, game.Empty, result.Winner)
		require.Equal(t, 9, result.Game.TotalMoves)
		require.True(t, result.Board.IsFull())
	})

	t.Run("returning invalid moves as errors", func(t *testing.T) {
		agents := [2]agent.Agent{
			&scriptedAgent{columns: []int{0, 7}},
			&scriptedAgent{columns: []int{0}},
		}
		board := game.NewStandardBoard()
		e := LocalEngine(agents, board, game.SideA)

		result, err := e.Run(context.Background())

		var invalid *game.InvalidMoveError
		require.ErrorAs(t, err, &invalid)
		require.ErrorIs(t, err, game.ErrColumnOutOfRange)
		require.Equal(t, 7, invalid.Column)
		require.Len(t, result.Moves, 2)
		require.Equal(t, 2, board.Count(game.SideA)+board.Count(game.SideB), "Rejected move should leave the board unchanged")
	})

	t.Run("stopping on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		agents := [2]agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)}
		e := LocalEngine(agents, game.NewStandardBoard(), game.SideA)

		result, err := e.Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, result.Moves)
	})

	t.Run("playing search against random", func(t *testing.T) {
		agents := [2]agent.Agent{
			agent.NewSearchAgent(searcher.NewSearcher(searcher.WithSeed(4), searcher.WithDepth(3))),
			agent.NewRandomAgent(5),
		}
		e := LocalEngine(agents, game.NewStandardBoard(), game.SideB)

		result, err := e.Run(context.Background())

		require.NoError(t, err)
		require.True(t, result.Board.IsTerminal())
		pieces := result.Board.Count(game.SideA) + result.Board.Count(game.SideB)
		require.Equal(t, result.Game.TotalMoves, pieces)
		if !result.IsDraw() {
			require.True(t, result.Board.HasFourInRow(result.Winner))
			require.False(t, result.Board.HasFourInRow(result.Winner.Opponent()))
		}
	})

	t.Run("panicking without two agents", func(t *testing.T) {
		require.Panics(t, func() {
			LocalEngine([2]agent.Agent{agent.NewRandomAgent(1), nil}, game.NewStandardBoard(), game.SideA)
		})
	})
}
