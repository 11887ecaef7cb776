package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Board is a gravity-constrained grid. Row 0 is the top row, so pieces settle
// at the highest empty row index of a column.
type Board struct {
	rows  int
	cols  int
	cells []Cell // Row-major, indexed by row*cols + col
}

// NewBoard returns an empty board with the given dimensions.
func NewBoard(rows, cols int) *Board {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("invalid board dimensions %dx%d", rows, cols))
	}
	return &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

// NewStandardBoard returns an empty 6x7 board.
func NewStandardBoard() *Board {
	return NewBoard(StandardRows, StandardCols)
}

// ParseBoard builds a board from text rows, top row first. Empty cells are
// '.', ' ' or '0'; SideA is 'A' or '1'; SideB is 'B' or '2'.
func ParseBoard(rows []string) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: no cells", ErrInvalidBoard)
	}
	b := NewBoard(len(rows), len(rows[0]))
	for r, line := range rows {
		if len(line) != b.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidBoard, r, len(line), b.cols)
		}
		for c, ch := range line {
			cell, ok := parseCell(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unknown cell %q at row %d column %d", ErrInvalidBoard, ch, r, c)
			}
			b.cells[r*b.cols+c] = cell
		}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// Cell returns the occupancy at (row, col). Panics when out of range.
func (b *Board) Cell(row, col int) Cell {
	return b.cells[b.index(row, col)]
}

// Set writes a cell directly, bypassing gravity. Used to load positions;
// call Validate afterwards.
func (b *Board) Set(row, col int, cell Cell) {
	b.cells[b.index(row, col)] = cell
}

func (b *Board) index(row, col int) int {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		panic(fmt.Sprintf("cell (%d, %d) outside %dx%d board", row, col, b.rows, b.cols))
	}
	return row*b.cols + col
}

// Copy returns an independent board with identical contents.
func (b *Board) Copy() *Board {
	cellsCopy := make([]Cell, len(b.cells))
	copy(cellsCopy, b.cells)

	return &Board{
		rows:  b.rows,
		cols:  b.cols,
		cells: cellsCopy,
	}
}

// IsLegal reports whether col is on the board and its top cell is empty.
func (b *Board) IsLegal(col int) bool {
	return col >= 0 && col < b.cols && b.cells[col] == Empty
}

// LegalMoves returns the playable columns in ascending order. An empty slice
// means the board is full.
func (b *Board) LegalMoves() []int {
	moves := make([]int, 0, b.cols)
	for c := 0; c < b.cols; c++ {
		if b.IsLegal(c) {
			moves = append(moves, c)
		}
	}
	return moves
}

// NextOpenRow returns the row a piece dropped in col would land on.
func (b *Board) NextOpenRow(col int) (int, bool) {
	if col < 0 || col >= b.cols {
		return -1, false
	}
	for r := b.rows - 1; r >= 0; r-- {
		if b.cells[r*b.cols+col] == Empty {
			return r, true
		}
	}
	return -1, false
}

// Drop places side's piece on the lowest empty row of col and returns that row.
func (b *Board) Drop(col int, side Cell) (int, error) {
	if !side.IsSide() {
		return -1, &InvalidMoveError{Column: col, Side: side, Err: ErrInvalidSide}
	}
	if col < 0 || col >= b.cols {
		return -1, &InvalidMoveError{Column: col, Side: side, Err: ErrColumnOutOfRange}
	}
	row, ok := b.NextOpenRow(col)
	if !ok {
		return -1, &InvalidMoveError{Column: col, Side: side, Err: ErrColumnFull}
	}
	b.cells[row*b.cols+col] = side
	return row, nil
}

// IsFull reports whether no column can take another piece.
func (b *Board) IsFull() bool {
	for c := 0; c < b.cols; c++ {
		if b.cells[c] == Empty {
			return false
		}
	}
	return true
}

// Count returns the number of cells occupied by side.
func (b *Board) Count(side Cell) int {
	n := 0
	for _, cell := range b.cells {
		if cell == side {
			n++
		}
	}
	return n
}

// Validate checks that every cell holds a known value and that every column
// is a contiguous stack resting on the bottom row.
func (b *Board) Validate() error {
	for c := 0; c < b.cols; c++ {
		seenPiece := false
		for r := 0; r < b.rows; r++ {
			cell := b.cells[r*b.cols+c]
			if cell > SideB {
				return fmt.Errorf("%w: unknown cell value %d at row %d column %d", ErrInvalidBoard, cell, r, c)
			}
			if cell != Empty {
				seenPiece = true
			} else if seenPiece {
				return fmt.Errorf("%w: floating piece above empty cell at row %d column %d", ErrInvalidBoard, r, c)
			}
		}
	}
	return nil
}

// String renders the board the way the command line game prints it.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		sb.WriteString("|")
		for c := 0; c < b.cols; c++ {
			sb.WriteString(" ")
			sb.WriteString(b.cells[r*b.cols+c].symbol())
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}
	labels := make([]string, b.cols)
	for c := range labels {
		labels[c] = strconv.Itoa(c)
	}
	sb.WriteString("  ")
	sb.WriteString(strings.Join(labels, "   "))
	sb.WriteString("\n")
	return sb.String()
}
