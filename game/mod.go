package game

// Cell is the occupancy of a single board square.
type Cell uint8

const (
	Empty Cell = iota
	SideA
	SideB
)

const (
	StandardRows = 6
	StandardCols = 7
	WindowLength = 4 // Pieces in a row needed to win, and the size of an evaluation window
)

// Opponent returns the other side. Empty has no opponent and maps to itself.
func (c Cell) Opponent() Cell {
	switch c {
	case SideA:
		return SideB
	case SideB:
		return SideA
	default:
		return Empty
	}
}

// IsSide reports whether c is one of the two playing sides.
func (c Cell) IsSide() bool {
	return c == SideA || c == SideB
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "."
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return "?"
	}
}

// symbol is how a cell is drawn by the text renderer
func (c Cell) symbol() string {
	switch c {
	case SideA:
		return "1"
	case SideB:
		return "2"
	default:
		return " "
	}
}

func parseCell(r rune) (Cell, bool) {
	switch r {
	case '.', ' ', '0':
		return Empty, true
	case 'A', 'a', '1':
		return SideA, true
	case 'B', 'b', '2':
		return SideB, true
	default:
		return Empty, false
	}
}
