package game_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockfall/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillRow returns g with row y occupied except for the listed columns.
func fillRow(g game.Grid, y int, holes ...int) game.Grid {
	skip := make(map[int]bool, len(holes))
	for _, x := range holes {
		skip[x] = true
	}
	var writes []game.CellWrite
	for x := range g.Cols() {
		if !skip[x] {
			writes = append(writes, game.CellWrite{X: x, Y: y, Value: 1})
		}
	}
	return g.WithCellsSet(writes)
}

func randomGrid(rng *rand.Rand, rows, cols int, density float64) game.Grid {
	g := game.EmptyGrid(rows, cols)
	var writes []game.CellWrite
	for y := range rows {
		for x := range cols {
			if rng.Float64() < density {
				writes = append(writes, game.CellWrite{X: x, Y: y, Value: game.Cell(1 + rng.IntN(7))})
			}
		}
	}
	return g.WithCellsSet(writes)
}

func TestEmptyGrid(t *testing.T) {
	g := game.EmptyGrid(20, 10)
	assert.Equal(t, 20, g.Rows())
	assert.Equal(t, 10, g.Cols())
	assert.Equal(t, 0, g.Occupied())

	for _, dims := range [][2]int{{0, 10}, {20, 0}, {-1, 5}} {
		assert.Panics(t, func() { game.EmptyGrid(dims[0], dims[1]) }, "dims %v", dims)
	}
}

func TestWithCellsSet(t *testing.T) {
	g := game.EmptyGrid(3, 3)
	h := g.WithCellsSet([]game.CellWrite{{X: 1, Y: 2, Value: 5}})

	assert.Equal(t, game.Cell(5), h.At(1, 2))
	assert.Equal(t, game.Empty, g.At(1, 2), "input grid must not change")
	assert.Equal(t, 1, h.Occupied())

	assert.Panics(t, func() {
		g.WithCellsSet([]game.CellWrite{{X: 3, Y: 0, Value: 1}})
	})
}

func TestGridRowIsACopy(t *testing.T) {
	g := fillRow(game.EmptyGrid(2, 3), 1)
	row := g.Row(1)
	row[0] = game.Empty
	assert.Equal(t, game.Cell(1), g.At(0, 1))
}

func TestClearLines(t *testing.T) {
	t.Run("no full rows", func(t *testing.T) {
		g := fillRow(game.EmptyGrid(4, 3), 3, 1)
		out, n := game.ClearLines(g)
		assert.Equal(t, 0, n)
		assert.True(t, g.Equal(out))
	})

	t.Run("compacts and keeps order", func(t *testing.T) {
		g := game.EmptyGrid(5, 3).WithCellsSet([]game.CellWrite{
			{X: 0, Y: 0, Value: 1},
			{X: 1, Y: 2, Value: 2},
		})
		g = fillRow(g, 1)
		g = fillRow(g, 3)
		g = fillRow(g, 4, 2)

		out, n := game.ClearLines(g)
		require.Equal(t, 2, n)
		assert.Equal(t, "...\n...\n#..\n.#.\n##.", out.String())
	})

	t.Run("all rows full", func(t *testing.T) {
		g := game.EmptyGrid(2, 2)
		g = fillRow(fillRow(g, 0), 1)
		out, n := game.ClearLines(g)
		assert.Equal(t, 2, n)
		assert.Equal(t, 0, out.Occupied())
	})
}

func TestClearLinesProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := range 200 {
		rows, cols := 1+rng.IntN(20), 1+rng.IntN(10)
		g := randomGrid(rng, rows, cols, 0.6)
		for y := range rows {
			if rng.IntN(3) == 0 {
				g = fillRow(g, y)
			}
		}

		var survivors [][]game.Cell
		for y := range rows {
			row := g.Row(y)
			full := true
			for _, c := range row {
				if c == game.Empty {
					full = false
				}
			}
			if !full {
				survivors = append(survivors, row)
			}
		}

		out, n := game.ClearLines(g)
		require.Equal(t, rows, out.Rows(), "case %d", i)
		require.Equal(t, cols, out.Cols(), "case %d", i)
		require.Equal(t, rows-len(survivors), n, "case %d", i)

		for y := range n {
			assert.Equal(t, make([]game.Cell, cols), out.Row(y), "case %d: row %d must be empty", i, y)
		}
		for j, row := range survivors {
			assert.Equal(t, row, out.Row(n+j), "case %d: survivor %d out of order", i, j)
		}

		again, m := game.ClearLines(out)
		assert.Zero(t, m, "case %d", i)
		assert.True(t, out.Equal(again), "case %d", i)
	}
}
