package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasFourInRow(t *testing.T) {
	orientations := []struct {
		name   string
		dr, dc int
		starts [][2]int // (row, col) of the first cell of the run
	}{
		{"horizontal", 0, 1, [][2]int{{0, 0}, {5, 3}, {2, 1}}},
		{"vertical", 1, 0, [][2]int{{0, 0}, {2, 6}, {1, 3}}},
		{"diagonal down-right", 1, 1, [][2]int{{0, 0}, {2, 3}, {1, 2}}},
		{"diagonal up-right", -1, 1, [][2]int{{3, 0}, {5, 3}, {4, 1}}},
	}

	for _, o := range orientations {
		for _, side := range []Cell{SideA, SideB} {
			for _, start := range o.starts {
				name := fmt.Sprintf("%s run for %s from (%d,%d)", o.name, side, start[0], start[1])
				t.Run(name, func(t *testing.T) {
					b := NewStandardBoard()
					for i := 0; i < WindowLength; i++ {
						b.Set(start[0]+i*o.dr, start[1]+i*o.dc, side)
					}

					require.True(t, b.HasFourInRow(side), "Should detect the run for its owner")
					require.False(t, b.HasFourInRow(side.Opponent()), "Should not report the run for the opponent")
					require.True(t, b.IsTerminal())

					mirrored := mirror(b)
					require.True(t, mirrored.HasFourInRow(side), "Detection should survive reflection")
					require.False(t, mirrored.HasFourInRow(side.Opponent()))
				})
			}
		}
	}

	t.Run("three in a row is not a win", func(t *testing.T) {
		b := NewStandardBoard()
		for i := 0; i < WindowLength-1; i++ {
			b.Set(5, i, SideA)
			b.Set(i, 6, SideB)
		}

		require.False(t, b.HasFourInRow(SideA))
		require.False(t, b.HasFourInRow(SideB))
		require.False(t, b.IsTerminal())
	})

	t.Run("broken run is not a win", func(t *testing.T) {
		b, err := ParseBoard([]string{
			".......",
			".......",
			".......",
			".......",
			".......",
			"AAABAAA",
		})
		require.NoError(t, err)

		require.False(t, b.HasFourInRow(SideA))
	})

	t.Run("empty is never a winner", func(t *testing.T) {
		require.False(t, NewStandardBoard().HasFourInRow(Empty))
	})
}

func TestIsTerminal(t *testing.T) {
	t.Run("empty board is not terminal", func(t *testing.T) {
		require.False(t, NewStandardBoard().IsTerminal())
	})

	t.Run("full board without a winner is terminal", func(t *testing.T) {
		b := drawnBoard(t)

		require.True(t, b.IsTerminal())
		_, won := b.Winner()
		require.False(t, won, "Drawn board should have no winner")
	})
}

func TestWinner(t *testing.T) {
	b, err := ParseBoard([]string{
		".......",
		".......",
		"..B....",
		"..B....",
		"..BA...",
		".ABAA..",
	})
	require.NoError(t, err)

	winner, won := b.Winner()

	require.True(t, won)
	require.Equal(t, SideB, winner)
}

func mirror(b *Board) *Board {
	m := NewBoard(b.Rows(), b.Cols())
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			m.Set(r, b.Cols()-1-c, b.Cell(r, c))
		}
	}
	return m
}
