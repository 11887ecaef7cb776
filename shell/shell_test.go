package shell

import (
	"bytes"
	"testing"

	"connect4/config"
	"connect4/game"
	"connect4/searcher"

	"github.com/stretchr/testify/require"
)

func newController(t *testing.T) (*ShellController, *bytes.Buffer) {
	t.Helper()
	var cfg config.Config
	require.NoError(t, cfg.Load([]string{"--seed", "1", "--depth", "3"}))
	var out bytes.Buffer
	return NewShellController(&cfg, &out), &out
}

func execute(t *testing.T, sc *ShellController, line string) {
	t.Helper()
	quit, err := sc.Execute(line)
	require.NoError(t, err, "Command %q should succeed", line)
	require.False(t, quit)
}

func TestHumanMoves(t *testing.T) {
	t.Run("winning as the human", func(t *testing.T) {
		sc, out := newController(t)
		execute(t, sc, `load ....... ....... ....... A...... A...B.. A...BB.`)

		execute(t, sc, "0")

		require.Contains(t, out.String(), "Player 1 wins!")
		require.True(t, sc.IsOver())
		require.NotContains(t, out.String(), "AI is thinking")

		_, err := sc.Execute("1")
		require.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("losing to the AI", func(t *testing.T) {
		sc, out := newController(t)
		execute(t, sc, `load ....... ....... ....... B...... B.....A B....AA`)

		execute(t, sc, "drop 3")

		require.Contains(t, out.String(), "AI chooses column 0")
		require.Contains(t, out.String(), "AI wins!")
		require.True(t, sc.IsOver())
	})

	t.Run("ending in a tie", func(t *testing.T) {
		sc, out := newController(t)
		execute(t, sc, "load .ABBAAB BBAABBA AABBAAB BBAABBA AABBAAB BBAABBA")

		execute(t, sc, "0")

		require.Contains(t, out.String(), "It's a tie!")
		require.True(t, sc.IsOver())
		require.True(t, sc.Board().IsFull())
	})

	t.Run("answering with an AI move", func(t *testing.T) {
		sc, out := newController(t)

		execute(t, sc, "3")

		require.Equal(t, 1, sc.Board().Count(Human))
		require.Equal(t, 1, sc.Board().Count(AI))
		require.Contains(t, out.String(), "AI is thinking...")
		require.False(t, sc.IsOver())
	})

	t.Run("rejecting a full column", func(t *testing.T) {
		sc, _ := newController(t)
		execute(t, sc, "load A...... B...... A...... B...... A...... B......")
		before := sc.Board().Copy()

		_, err := sc.Execute("0")

		require.ErrorIs(t, err, game.ErrColumnFull)
		require.Equal(t, "Column full. Try again.", errorMessage(err))
		require.Equal(t, before, sc.Board())
	})

	t.Run("rejecting a column out of range", func(t *testing.T) {
		sc, _ := newController(t)

		_, err := sc.Execute("9")

		require.ErrorIs(t, err, game.ErrColumnOutOfRange)
		require.Equal(t, 0, sc.Board().Count(Human))
	})

	t.Run("rejecting a missing column", func(t *testing.T) {
		sc, _ := newController(t)

		_, err := sc.Execute("drop")

		require.ErrorIs(t, err, ErrMissingArgs)
	})
}

func TestCommands(t *testing.T) {
	t.Run("starting a game with the AI first", func(t *testing.T) {
		sc, out := newController(t)

		execute(t, sc, "new B")

		require.Equal(t, 0, sc.Board().Count(Human))
		require.Equal(t, 1, sc.Board().Count(AI))
		require.Contains(t, out.String(), "New game.")
	})

	t.Run("starting a game with the human first", func(t *testing.T) {
		sc, _ := newController(t)
		execute(t, sc, "3")

		execute(t, sc, "new")

		require.Equal(t, 0, sc.Board().Count(Human)+sc.Board().Count(AI))
		require.False(t, sc.IsOver())
	})

	t.Run("rejecting an unknown starting side", func(t *testing.T) {
		sc, _ := newController(t)

		_, err := sc.Execute("new C")

		require.ErrorIs(t, err, game.ErrInvalidSide)
	})

	t.Run("suggesting the winning column", func(t *testing.T) {
		sc, out := newController(t)
		execute(t, sc, "load ....... ....... ....... ....... BBB.... AAA....")

		execute(t, sc, "hint")

		require.Contains(t, out.String(), "Suggested column 3")
		require.Equal(t, 3, sc.Board().Count(Human), "Hint should not play")
	})

	t.Run("changing the search depth", func(t *testing.T) {
		sc, out := newController(t)

		execute(t, sc, "depth 2")
		require.Equal(t, 2, sc.Depth())
		require.Contains(t, out.String(), "Search depth set to 2")

		_, err := sc.Execute("depth 0")
		require.ErrorIs(t, err, searcher.ErrInvalidDepth)
		require.Equal(t, 2, sc.Depth())

		_, err = sc.Execute("depth deep")
		require.Error(t, err)
	})

	t.Run("loading an invalid position", func(t *testing.T) {
		sc, _ := newController(t)

		_, err := sc.Execute("load A...... .......")

		require.ErrorIs(t, err, game.ErrInvalidBoard)
		require.Equal(t, game.StandardRows, sc.Board().Rows())
	})

	t.Run("showing help and the board", func(t *testing.T) {
		sc, out := newController(t)

		execute(t, sc, "help")
		execute(t, sc, "board")

		require.Contains(t, out.String(), "Commands:")
		require.Contains(t, out.String(), "Current board:")
		require.Contains(t, out.String(), "0   1   2   3   4   5   6")
	})

	t.Run("ignoring blank lines", func(t *testing.T) {
		sc, out := newController(t)

		execute(t, sc, "   ")

		require.Empty(t, out.String())
	})

	t.Run("rejecting unknown commands", func(t *testing.T) {
		sc, _ := newController(t)

		_, err := sc.Execute("resign")
		require.ErrorIs(t, err, ErrUnknownCommand)

		_, err = sc.Execute(`load "unterminated`)
		require.Error(t, err)
	})

	t.Run("quitting", func(t *testing.T) {
		sc, _ := newController(t)

		for _, line := range []string{"exit", "bye"} {
			quit, err := sc.Execute(line)
			require.NoError(t, err)
			require.True(t, quit)
		}
	})
}
