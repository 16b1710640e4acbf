package engine

import "github.com/google/uuid"

// BlockID is the stable identity of a block across moves.
type BlockID uuid.UUID

// String returns the canonical UUID form.
func (id BlockID) String() string {
	return uuid.UUID(id).String()
}

// Block is a single numbered tile. Blocks are never mutated once placed in a
// cell; every change builds a new one.
type Block struct {
	ID    BlockID
	Value int
	IsNew bool // Spawned this round (pop animation)
}

// Cell is one board position. Merged holds the block absorbed by a merge in
// this cell during the ACTIVE phase and is nil otherwise.
type Cell struct {
	Block  *Block
	Merged *Block
}

// Empty reports whether the cell holds no block.
func (c Cell) Empty() bool {
	return c.Block == nil
}

// Value returns the block value, or 0 for an empty cell.
func (c Cell) Value() int {
	if c.Block == nil {
		return 0
	}
	return c.Block.Value
}

// Settled returns the cell with its transient presentation state dropped.
func (c Cell) Settled() Cell {
	if c.Block == nil {
		return Cell{}
	}
	if !c.Block.IsNew && c.Merged == nil {
		return c
	}
	b := *c.Block
	b.IsNew = false
	return Cell{Block: &b}
}

// Position addresses a cell: X is the column, Y is the row.
type Position struct {
	X, Y int
}
