package game

import (
	"fmt"
	"strings"
)

// Cell is a grid or shape cell. Empty is the only value with meaning; any other value marks the
// cell as occupied and is carried through for colouring.
type Cell uint8

const Empty Cell = 0

// Position is a column/row offset within the grid. For a piece it locates the top-left corner of
// the shape matrix.
type Position struct {
	X, Y int
}

// Add returns p shifted by dx columns and dy rows.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// CellWrite is a single assignment applied by Grid.WithCellsSet.
type CellWrite struct {
	X, Y  int
	Value Cell
}

// Grid is a fixed-size board of landed cells. It has value semantics: every operation that
// changes cells returns a new Grid and leaves the receiver untouched.
type Grid struct {
	rows, cols int
	cells      []Cell
}

// EmptyGrid creates a rows×cols grid with every cell empty. Non-positive dimensions are a
// programming error.
func EmptyGrid(rows, cols int) Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("invalid grid dimensions %dx%d", rows, cols))
	}
	return Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
}

// Rows returns the grid height.
func (g Grid) Rows() int {
	return g.rows
}

// Cols returns the grid width.
func (g Grid) Cols() int {
	return g.cols
}

// InBounds reports whether (x, y) lies inside the grid.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// At returns the cell at column x, row y. Callers must bounds-check first.
func (g Grid) At(x, y int) Cell {
	return g.cells[y*g.cols+x]
}

// Row returns a copy of row y.
func (g Grid) Row(y int) []Cell {
	row := make([]Cell, g.cols)
	copy(row, g.cells[y*g.cols:(y+1)*g.cols])
	return row
}

// Occupied returns the number of nonzero cells.
func (g Grid) Occupied() int {
	n := 0
	for _, c := range g.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

// WithCellsSet returns a copy of the grid with the listed cells assigned. Writes outside the grid
// panic.
func (g Grid) WithCellsSet(writes []CellWrite) Grid {
	out := g.clone()
	for _, w := range writes {
		if !g.InBounds(w.X, w.Y) {
			panic(fmt.Sprintf("cell write (%d,%d) outside %dx%d grid", w.X, w.Y, g.rows, g.cols))
		}
		out.cells[w.Y*g.cols+w.X] = w.Value
	}
	return out
}

// Equal reports whether both grids have the same dimensions and cells.
func (g Grid) Equal(other Grid) bool {
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i, c := range g.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

func (g Grid) String() string {
	var b strings.Builder
	for y := range g.rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := range g.cols {
			if g.At(x, y) != Empty {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

func (g Grid) clone() Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// rowFull reports whether row y has no empty cell.
func (g Grid) rowFull(y int) bool {
	for _, c := range g.cells[y*g.cols : (y+1)*g.cols] {
		if c == Empty {
			return false
		}
	}
	return true
}
