package game

// Weights are the constants of the positional heuristic.
type Weights struct {
	Center        int64 // Per piece in the middle column
	Four          int64 // Window completely owned
	Three         int64 // Three owned, one empty
	Two           int64 // Two owned, two empty
	OpponentThree int64 // Penalty for three opponent pieces and one empty
}

// DefaultWeights returns the reference weights.
func DefaultWeights() Weights {
	return Weights{
		Center:        3,
		Four:          100,
		Three:         10,
		Two:           5,
		OpponentThree: 80,
	}
}

// Window is a run of WindowLength cells along one orientation.
type Window [WindowLength]Cell

// EvaluateWindow scores a single window from side's perspective.
//
// Only one of the side-count branches can fire. The opponent threat is checked
// on its own and is not the mirror image of side's score: the heuristic only
// penalizes the opponent's open three.
func EvaluateWindow(window Window, side Cell, w Weights) int64 {
	own, empty, opp := 0, 0, 0
	opponent := side.Opponent()
	for _, cell := range window {
		switch cell {
		case side:
			own++
		case Empty:
			empty++
		case opponent:
			opp++
		}
	}

	var score int64
	switch {
	case own == 4:
		score += w.Four
	case own == 3 && empty == 1:
		score += w.Three
	case own == 2 && empty == 2:
		score += w.Two
	}
	if opp == 3 && empty == 1 {
		score -= w.OpponentThree
	}
	return score
}

// ScorePosition evaluates a non-terminal board for side: the center column
// bonus plus the sum of EvaluateWindow over every window. Larger is better
// for side.
func (b *Board) ScorePosition(side Cell, w Weights) int64 {
	center := b.cols / 2
	var score int64
	for r := 0; r < b.rows; r++ {
		if b.cells[r*b.cols+center] == side {
			score += w.Center
		}
	}

	b.forEachWindow(func(window Window) {
		score += EvaluateWindow(window, side, w)
	})
	return score
}

// Windows returns every evaluation window on the board: rows, then columns,
// then down-right diagonals, then up-right diagonals.
func (b *Board) Windows() []Window {
	windows := []Window{}
	b.forEachWindow(func(window Window) {
		windows = append(windows, window)
	})
	return windows
}

func (b *Board) forEachWindow(fn func(Window)) {
	var window Window
	collect := func(row, col, dr, dc int) {
		for i := 0; i < WindowLength; i++ {
			window[i] = b.cells[(row+i*dr)*b.cols+col+i*dc]
		}
		fn(window)
	}

	for r := 0; r < b.rows; r++ {
		for c := 0; c+WindowLength <= b.cols; c++ {
			collect(r, c, 0, 1)
		}
	}
	for c := 0; c < b.cols; c++ {
		for r := 0; r+WindowLength <= b.rows; r++ {
			collect(r, c, 1, 0)
		}
	}
	for r := 0; r+WindowLength <= b.rows; r++ {
		for c := 0; c+WindowLength <= b.cols; c++ {
			collect(r, c, 1, 1)
		}
	}
	// Up-right diagonals start on the bottom cell of the run
	for r := 0; r+WindowLength <= b.rows; r++ {
		for c := 0; c+WindowLength <= b.cols; c++ {
			collect(r+WindowLength-1, c, -1, 1)
		}
	}
}
