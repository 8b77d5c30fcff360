package game

// IsValidPlacement reports whether shape s fits at p on g. Every occupied shape cell must lie
// inside the grid on an empty cell. Empty shape cells are not checked and may hang outside the
// grid.
func IsValidPlacement(g Grid, s Shape, p Position) bool {
	for dy, row := range s.cells {
		for dx, c := range row {
			if c == Empty {
				continue
			}
			x, y := p.X+dx, p.Y+dy
			if !g.InBounds(x, y) {
				return false
			}
			if g.At(x, y) != Empty {
				return false
			}
		}
	}
	return true
}

// Merge writes every occupied cell of s at p into a copy of g. The placement must be valid.
func Merge(g Grid, s Shape, p Position) Grid {
	return g.WithCellsSet(shapeWrites(s, p))
}

// ClearLines removes every full row and prepends the same number of empty rows, so the result has
// the dimensions of g. Surviving rows keep their relative order. It returns the compacted grid
// and the number of rows removed.
func ClearLines(g Grid) (Grid, int) {
	out := Grid{rows: g.rows, cols: g.cols, cells: make([]Cell, len(g.cells))}

	dst := g.rows - 1
	for y := g.rows - 1; y >= 0; y-- {
		if g.rowFull(y) {
			continue
		}
		copy(out.cells[dst*g.cols:(dst+1)*g.cols], g.cells[y*g.cols:(y+1)*g.cols])
		dst--
	}

	return out, dst + 1
}

// Project returns g with the falling piece overlaid. The result is for drawing only. Shape cells
// outside the grid are skipped.
func Project(g Grid, s Shape, p Position) Grid {
	out := g.clone()
	for _, w := range shapeWrites(s, p) {
		if g.InBounds(w.X, w.Y) {
			out.cells[w.Y*g.cols+w.X] = w.Value
		}
	}
	return out
}

func shapeWrites(s Shape, p Position) []CellWrite {
	writes := make([]CellWrite, 0, 4)
	for dy, row := range s.cells {
		for dx, c := range row {
			if c != Empty {
				writes = append(writes, CellWrite{X: p.X + dx, Y: p.Y + dy, Value: c})
			}
		}
	}
	return writes
}
