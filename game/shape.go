package game

import "strings"

// Kind identifies one of the seven catalog pieces.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// Shape is one rotation state of a piece: a small rectangular matrix where nonzero cells are
// occupied. Shapes are immutable; Rotate returns a new value.
type Shape struct {
	kind  Kind
	cells [][]Cell
}

func newShape(kind Kind, rows ...[]Cell) Shape {
	return Shape{kind: kind, cells: rows}
}

// Kind returns the catalog piece the shape was derived from.
func (s Shape) Kind() Kind {
	return s.kind
}

// Rows returns the height of the shape matrix.
func (s Shape) Rows() int {
	return len(s.cells)
}

// Cols returns the width of the shape matrix.
func (s Shape) Cols() int {
	if len(s.cells) == 0 {
		return 0
	}
	return len(s.cells[0])
}

// At returns the cell at column x, row y of the shape matrix.
func (s Shape) At(x, y int) Cell {
	return s.cells[y][x]
}

// Cells returns the offsets of every occupied cell, row by row.
func (s Shape) Cells() []Position {
	var out []Position
	for dy, row := range s.cells {
		for dx, c := range row {
			if c != Empty {
				out = append(out, Position{X: dx, Y: dy})
			}
		}
	}
	return out
}

// Rotate turns the shape a quarter turn by transposing the matrix and reversing the row order.
// The footprint may change from R×C to C×R; there is no re-centering.
func (s Shape) Rotate() Shape {
	rows, cols := s.Rows(), s.Cols()
	rotated := make([][]Cell, cols)
	for i := range cols {
		row := make([]Cell, rows)
		for j := range rows {
			row[j] = s.cells[j][i]
		}
		rotated[cols-1-i] = row
	}
	return Shape{kind: s.kind, cells: rotated}
}

// Equal reports whether both shapes have the same dimensions and cells.
func (s Shape) Equal(other Shape) bool {
	if s.Rows() != other.Rows() || s.Cols() != other.Cols() {
		return false
	}
	for y, row := range s.cells {
		for x, c := range row {
			if other.cells[y][x] != c {
				return false
			}
		}
	}
	return true
}

// String renders the shape with '#' for occupied cells and '.' for empty ones.
func (s Shape) String() string {
	var b strings.Builder
	for y, row := range s.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			if c != Empty {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
