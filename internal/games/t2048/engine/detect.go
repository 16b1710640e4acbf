package engine

// DefaultWinTarget is the block value that wins the game.
const DefaultWinTarget = 2048

// EmptyPositions lists every cell without a block in row-major order.
func EmptyPositions(g Grid) []Position {
	var out []Position
	for p, c := range g.All() {
		if c.Empty() {
			out = append(out, p)
		}
	}
	return out
}

// HasEmpty reports whether any cell is free.
func HasEmpty(g Grid) bool {
	for _, c := range g.All() {
		if c.Empty() {
			return true
		}
	}
	return false
}

// HasWon reports whether some block has reached the target value.
func HasWon(g Grid, target int) bool {
	for _, c := range g.All() {
		if c.Block != nil && c.Block.Value >= target {
			return true
		}
	}
	return false
}

// HasLost reports whether no legal move remains: the board is full and no row
// or column contains a pair. Which way a pair would merge does not matter, so
// every line is scanned toward its high end.
func HasLost(g Grid) bool {
	if HasEmpty(g) {
		return false
	}
	for i := range g.Size() {
		if _, paired := PairLine(compact(g.Row(i)), 1); paired {
			return false
		}
		if _, paired := PairLine(compact(g.Column(i)), 1); paired {
			return false
		}
	}
	return true
}

// MaxValue returns the highest block value on the board.
func MaxValue(g Grid) int {
	best := 0
	for _, c := range g.All() {
		if v := c.Value(); v > best {
			best = v
		}
	}
	return best
}

// TotalValue sums every live block. Absorbed blocks are not counted; their
// value already lives in the merged block.
func TotalValue(g Grid) int {
	total := 0
	for _, c := range g.All() {
		total += c.Value()
	}
	return total
}

// hasNewBlock reports whether a block spawned this round is on the board.
func hasNewBlock(g Grid) bool {
	for _, c := range g.All() {
		if c.Block != nil && c.Block.IsNew {
			return true
		}
	}
	return false
}
