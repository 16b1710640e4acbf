// Package engine implements the deterministic core of the 2048 puzzle:
// the board snapshot, line merging, terminal-state detection and the phase
// machine that paces a turn against an external animation layer.
//
// The package has no UI dependencies. Every transition consumes a snapshot
// and returns a new one; nothing here mutates a Grid another caller holds.
package engine

import (
	"fmt"
	"iter"
)

// Grid is an immutable size×size board snapshot stored row-major.
// The zero Grid has size 0 and is only useful as a placeholder.
type Grid struct {
	size  int
	cells []Cell
}

// NewGrid returns an empty board. It panics if size is not positive.
func NewGrid(size int) Grid {
	if size <= 0 {
		panic(fmt.Sprintf("engine: invalid grid size %d", size))
	}
	return Grid{size: size, cells: make([]Cell, size*size)}
}

// GridFromValues builds a board from a row-major value matrix, allocating a
// fresh block for every non-zero entry. Intended for tests and replays.
func GridFromValues(values [][]int, r Random) Grid {
	g := NewGrid(len(values))
	for y, row := range values {
		if len(row) != g.size {
			panic(fmt.Sprintf("engine: row %d has %d values, want %d", y, len(row), g.size))
		}
		for x, v := range row {
			if v == 0 {
				continue
			}
			g.cells[y*g.size+x] = Cell{Block: &Block{ID: newBlockID(r), Value: v}}
		}
	}
	return g
}

// Size returns the board dimension.
func (g Grid) Size() int {
	return g.size
}

// Contains reports whether p lies on the board.
func (g Grid) Contains(p Position) bool {
	return p.X >= 0 && p.X < g.size && p.Y >= 0 && p.Y < g.size
}

func (g Grid) index(p Position) int {
	if !g.Contains(p) {
		panic(fmt.Errorf("%w: (%d,%d) on %dx%d grid", ErrOutOfRange, p.X, p.Y, g.size, g.size))
	}
	return p.Y*g.size + p.X
}

func (g Grid) checkLine(i int) {
	if i < 0 || i >= g.size {
		panic(fmt.Errorf("%w: line %d on %dx%d grid", ErrOutOfRange, i, g.size, g.size))
	}
}

// At returns the cell at p.
func (g Grid) At(p Position) Cell {
	return g.cells[g.index(p)]
}

// With returns a copy of the grid with the cell at p replaced.
func (g Grid) With(p Position, c Cell) Grid {
	i := g.index(p)
	next := g.Clone()
	next.cells[i] = c
	return next
}

// Row returns a copy of row y, ordered by increasing x.
func (g Grid) Row(y int) []Cell {
	g.checkLine(y)
	row := make([]Cell, g.size)
	copy(row, g.cells[y*g.size:(y+1)*g.size])
	return row
}

// WithRow returns a copy of the grid with row y replaced.
func (g Grid) WithRow(y int, row []Cell) Grid {
	g.checkLine(y)
	if len(row) != g.size {
		panic(fmt.Errorf("%w: row of length %d on %dx%d grid", ErrOutOfRange, len(row), g.size, g.size))
	}
	next := g.Clone()
	next.putRow(y, row)
	return next
}

// Column returns a copy of column x, ordered by increasing y.
func (g Grid) Column(x int) []Cell {
	g.checkLine(x)
	col := make([]Cell, g.size)
	for y := range g.size {
		col[y] = g.cells[y*g.size+x]
	}
	return col
}

// WithColumn returns a copy of the grid with column x replaced.
func (g Grid) WithColumn(x int, col []Cell) Grid {
	g.checkLine(x)
	if len(col) != g.size {
		panic(fmt.Errorf("%w: column of length %d on %dx%d grid", ErrOutOfRange, len(col), g.size, g.size))
	}
	next := g.Clone()
	next.putColumn(x, col)
	return next
}

// putRow and putColumn overwrite cells in place. Only call them on a grid
// nothing else references yet, such as a fresh Clone.
func (g Grid) putRow(y int, row []Cell) {
	copy(g.cells[y*g.size:(y+1)*g.size], row)
}

func (g Grid) putColumn(x int, col []Cell) {
	for y, c := range col {
		g.cells[y*g.size+x] = c
	}
}

// Clone returns an independent snapshot. Cells are values whose blocks are
// never mutated, so a shallow copy of the backing slice is a full copy.
func (g Grid) Clone() Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return Grid{size: g.size, cells: cells}
}

// All yields every cell in row-major order. Breaking out of the range loop
// stops the enumeration.
func (g Grid) All() iter.Seq2[Position, Cell] {
	return func(yield func(Position, Cell) bool) {
		for i, c := range g.cells {
			if !yield(Position{X: i % g.size, Y: i / g.size}, c) {
				return
			}
		}
	}
}

// Map returns a new grid with f applied to every cell.
func (g Grid) Map(f func(Position, Cell) Cell) Grid {
	next := Grid{size: g.size, cells: make([]Cell, len(g.cells))}
	for p, c := range g.All() {
		next.cells[p.Y*g.size+p.X] = f(p, c)
	}
	return next
}

// Values returns the block values as a row-major matrix, 0 for empty cells.
func (g Grid) Values() [][]int {
	out := make([][]int, g.size)
	for y := range g.size {
		out[y] = make([]int, g.size)
		for x := range g.size {
			out[y][x] = g.cells[y*g.size+x].Value()
		}
	}
	return out
}

// ClearTransient drops the isNew and merged presentation state from every cell.
func ClearTransient(g Grid) Grid {
	return g.Map(func(_ Position, c Cell) Cell {
		return c.Settled()
	})
}
