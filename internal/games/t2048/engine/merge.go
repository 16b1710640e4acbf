package engine

// Group is one unit of a resolved line: a lone block, or a pair that merges
// into a single block. Lead is the member nearer the destination edge.
type Group struct {
	Lead  Block
	Trail *Block
}

// Pair reports whether the group merges two blocks.
func (g Group) Pair() bool {
	return g.Trail != nil
}

// MoveResult summarizes one resolved move.
type MoveResult struct {
	Direction Direction
	Score     int // Sum of merged values
	Merges    int
	Changed   bool // Some block moved or merged
}

// PairLine groups a compacted line, given in natural low-to-high order, for a
// move toward the edge named by sign (+1 high end, -1 low end).
//
// Scanning starts at the destination edge. A block pairs with its immediate
// neighbour on the trailing side when that neighbour is still unconsumed and
// has the same value; otherwise it stands alone. A formed pair never absorbs
// a third block. Groups are returned in destination-to-trailing order.
func PairLine(blocks []Block, sign int) ([]Group, bool) {
	n := len(blocks)
	groups := make([]Group, 0, n)
	paired := false

	// at maps the k-th block from the destination edge to its slice index.
	at := func(k int) int {
		if sign > 0 {
			return n - 1 - k
		}
		return k
	}

	for k := 0; k < n; k++ {
		lead := blocks[at(k)]
		if k+1 < n {
			trail := blocks[at(k+1)]
			if trail.Value == lead.Value {
				groups = append(groups, Group{Lead: lead, Trail: &trail})
				paired = true
				k++
				continue
			}
		}
		groups = append(groups, Group{Lead: lead})
	}
	return groups, paired
}

// compact returns the blocks of a line in order, dropping empty cells.
func compact(cells []Cell) []Block {
	blocks := make([]Block, 0, len(cells))
	for _, c := range cells {
		if c.Block != nil {
			blocks = append(blocks, *c.Block)
		}
	}
	return blocks
}

// ResolveLine slides and merges one row or column toward the edge named by
// sign. The result has the same length as the input; the score is the sum of
// the values produced by merges.
func ResolveLine(cells []Cell, sign int) (line []Cell, score int, merges int, changed bool) {
	n := len(cells)
	line = make([]Cell, n)
	groups, _ := PairLine(compact(cells), sign)

	for k, grp := range groups {
		pos := k
		if sign > 0 {
			pos = n - 1 - k
		}

		if !grp.Pair() {
			b := grp.Lead
			line[pos] = Cell{Block: &b}
			continue
		}

		merged := Block{ID: grp.Lead.ID, Value: grp.Lead.Value + grp.Trail.Value}
		absorbed := *grp.Trail
		line[pos] = Cell{Block: &merged, Merged: &absorbed}
		score += merged.Value
		merges++
	}

	for i := range n {
		if movedOrMerged(cells[i], line[i]) {
			changed = true
			break
		}
	}
	return line, score, merges, changed
}

func movedOrMerged(before, after Cell) bool {
	if after.Merged != nil {
		return true
	}
	switch {
	case before.Block == nil && after.Block == nil:
		return false
	case before.Block == nil || after.Block == nil:
		return true
	}
	return before.Block.ID != after.Block.ID
}

// Resolve applies a move to every row (horizontal moves) or every column
// (vertical moves) of one snapshot and returns the resulting grid.
func Resolve(g Grid, dir Direction) (Grid, MoveResult, error) {
	if err := dir.Validate(); err != nil {
		return g, MoveResult{}, err
	}

	res := MoveResult{Direction: dir}
	sign := dir.Sign()
	next := g.Clone()

	for i := range g.Size() {
		var (
			line   []Cell
			score  int
			merges int
			moved  bool
		)
		if dir.Horizontal() {
			line, score, merges, moved = ResolveLine(g.Row(i), sign)
			next.putRow(i, line)
		} else {
			line, score, merges, moved = ResolveLine(g.Column(i), sign)
			next.putColumn(i, line)
		}
		res.Score += score
		res.Merges += merges
		res.Changed = res.Changed || moved
	}
	return next, res, nil
}
