package game

// HasFourInRow reports whether side owns a complete window in any of the four
// orientations: horizontal, vertical, diagonal down-right and diagonal up-right.
func (b *Board) HasFourInRow(side Cell) bool {
	if !side.IsSide() {
		return false
	}
	// Horizontal
	for r := 0; r < b.rows; r++ {
		for c := 0; c+WindowLength <= b.cols; c++ {
			if b.runOf(side, r, c, 0, 1) {
				return true
			}
		}
	}
	// Vertical
	for r := 0; r+WindowLength <= b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if b.runOf(side, r, c, 1, 0) {
				return true
			}
		}
	}
	// Diagonal down-right
	for r := 0; r+WindowLength <= b.rows; r++ {
		for c := 0; c+WindowLength <= b.cols; c++ {
			if b.runOf(side, r, c, 1, 1) {
				return true
			}
		}
	}
	// Diagonal up-right
	for r := WindowLength - 1; r < b.rows; r++ {
		for c := 0; c+WindowLength <= b.cols; c++ {
			if b.runOf(side, r, c, -1, 1) {
				return true
			}
		}
	}
	return false
}

// runOf checks WindowLength cells starting at (row, col) stepping by (dr, dc).
// The caller guarantees the whole run is on the board.
func (b *Board) runOf(side Cell, row, col, dr, dc int) bool {
	for i := 0; i < WindowLength; i++ {
		if b.cells[(row+i*dr)*b.cols+col+i*dc] != side {
			return false
		}
	}
	return true
}

// IsTerminal reports whether the game is over: either side has four in a row
// or the board is full.
func (b *Board) IsTerminal() bool {
	return b.HasFourInRow(SideA) || b.HasFourInRow(SideB) || b.IsFull()
}

// Winner returns the side with four in a row, if any. SideA is checked first;
// positions reached by legal play never have two winners.
func (b *Board) Winner() (Cell, bool) {
	if b.HasFourInRow(SideA) {
		return SideA, true
	}
	if b.HasFourInRow(SideB) {
		return SideB, true
	}
	return Empty, false
}
