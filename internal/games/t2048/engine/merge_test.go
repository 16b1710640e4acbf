package engine

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line builds a row of cells from values, 0 meaning empty.
func line(values ...int) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		if v != 0 {
			cells[i] = Cell{Block: block(v)}
		}
	}
	return cells
}

func cellValues(cells []Cell) []int {
	out := make([]int, len(cells))
	for i, c := range cells {
		out[i] = c.Value()
	}
	return out
}

func TestResolveLine(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		sign     int
		expected []int
		score    int
		changed  bool
	}{
		{"simple merge", []int{2, 2, 0, 0}, -1, []int{4, 0, 0, 0}, 4, true},
		{"merge with trailing tile", []int{2, 2, 2, 0}, -1, []int{4, 2, 0, 0}, 4, true},
		{"double merge", []int{2, 2, 2, 2}, -1, []int{4, 4, 0, 0}, 8, true},
		{"no merge possible", []int{2, 4, 8, 16}, -1, []int{2, 4, 8, 16}, 0, false},
		{"slide with gap", []int{0, 0, 2, 2}, -1, []int{4, 0, 0, 0}, 4, true},
		{"slide with multiple gaps", []int{2, 0, 0, 2}, -1, []int{4, 0, 0, 0}, 4, true},
		{"no change needed", []int{4, 2, 0, 0}, -1, []int{4, 2, 0, 0}, 0, false},
		{"empty row", []int{0, 0, 0, 0}, -1, []int{0, 0, 0, 0}, 0, false},
		{"single tile", []int{0, 4, 0, 0}, -1, []int{4, 0, 0, 0}, 0, true},
		{"toward high edge pairs from the high end", []int{2, 2, 2, 0}, 1, []int{0, 0, 2, 4}, 4, true},
		{"toward high edge double", []int{4, 4, 4, 4}, 1, []int{0, 0, 8, 8}, 16, true},
		{"toward high edge unequal", []int{2, 4, 0, 0}, 1, []int{0, 0, 2, 4}, 0, true},
		{"six wide", []int{0, 2, 2, 0, 4, 4}, 1, []int{0, 0, 0, 0, 4, 8}, 12, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, score, _, changed := ResolveLine(line(tc.input...), tc.sign)
			assert.Equal(t, tc.expected, cellValues(out))
			assert.Equal(t, tc.score, score)
			assert.Equal(t, tc.changed, changed)
		})
	}
}

func TestResolveLineKeepsDestinationSideIdentity(t *testing.T) {
	cells := line(2, 2, 0)
	low, high := *cells[0].Block, *cells[1].Block

	left, _, _, _ := ResolveLine(cells, -1)
	require.NotNil(t, left[0].Merged)
	assert.Equal(t, low.ID, left[0].Block.ID, "low-index block leads a move toward index 0")
	assert.Equal(t, high.ID, left[0].Merged.ID)

	right, _, _, _ := ResolveLine(cells, 1)
	require.NotNil(t, right[2].Merged)
	assert.Equal(t, high.ID, right[2].Block.ID, "high-index block leads a move toward the high end")
	assert.Equal(t, low.ID, right[2].Merged.ID)

	assert.Nil(t, cells[0].Merged, "input line must not change")
}

func TestOneMergePerBlockPerMove(t *testing.T) {
	for _, n := range []int{3, 4, 5, 6} {
		values := make([]int, n)
		for i := range values {
			values[i] = 4
		}

		out, _, merges, _ := ResolveLine(line(values...), -1)

		assert.Equal(t, n/2, merges, "run of %d equal blocks", n)
		absorbed := 0
		for _, c := range out {
			if c.Merged != nil {
				absorbed++
				assert.Equal(t, 8, c.Block.Value, "no triple merge")
			}
		}
		assert.Equal(t, n/2, absorbed)
	}
}

func TestPairLineGroups(t *testing.T) {
	blocks := []Block{*block(2), *block(2), *block(2)}

	groups, paired := PairLine(blocks, -1)
	require.True(t, paired)
	require.Len(t, groups, 2)
	assert.True(t, groups[0].Pair())
	assert.Equal(t, blocks[0].ID, groups[0].Lead.ID)
	assert.Equal(t, blocks[1].ID, groups[0].Trail.ID)
	assert.False(t, groups[1].Pair())
	assert.Equal(t, blocks[2].ID, groups[1].Lead.ID)

	groups, paired = PairLine(blocks, 1)
	require.True(t, paired)
	assert.Equal(t, blocks[2].ID, groups[0].Lead.ID)
	assert.Equal(t, blocks[1].ID, groups[0].Trail.ID)
	assert.Equal(t, blocks[0].ID, groups[1].Lead.ID)

	_, paired = PairLine([]Block{*block(2), *block(4), *block(2)}, 1)
	assert.False(t, paired)
}

func TestResolveLineProperties(t *testing.T) {
	rng := NewRandom(2048)
	choices := []int{0, 0, 2, 2, 4, 8}

	for i := 0; i < 500; i++ {
		n := rng.Between(1, 7)
		values := make([]int, n)
		for j := range values {
			values[j] = choices[rng.Between(0, len(choices)-1)]
		}
		cells := line(values...)

		for _, sign := range []int{-1, 1} {
			out, _, _, _ := ResolveLine(cells, sign)
			require.Len(t, out, n, "size preserved for %v", values)
			assert.Equal(t, lineTotal(cells), lineTotal(out), "value conserved for %v", values)
		}

		// Resolving the reversed line toward the low end mirrors resolving
		// the line toward the high end.
		forward, _, _, _ := ResolveLine(cells, 1)
		reversed := slices.Clone(cells)
		slices.Reverse(reversed)
		backward, _, _, _ := ResolveLine(reversed, -1)
		slices.Reverse(backward)
		assert.Equal(t, lineIDs(forward), lineIDs(backward), "mirror for %v", values)
		assert.Equal(t, cellValues(forward), cellValues(backward), "mirror for %v", values)
	}
}

func lineTotal(cells []Cell) int {
	total := 0
	for _, c := range cells {
		total += c.Value()
	}
	return total
}

func lineIDs(cells []Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		if c.Block != nil {
			out[i] = c.Block.ID.String()
		}
		if c.Merged != nil {
			out[i] += "+" + c.Merged.ID.String()
		}
	}
	return out
}

func TestResolveScenario(t *testing.T) {
	start := [][]int{
		{0, 0, 2, 0, 0, 2},
		{0, 2, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0},
		{0, 4, 0, 0, 0, 2},
		{0, 0, 0, 2, 0, 0},
		{0, 0, 0, 0, 0, 0},
	}

	tests := []struct {
		name     string
		dir      Direction
		expected [][]int
	}{
		{
			name: "up",
			dir:  Up,
			expected: [][]int{
				{0, 2, 2, 2, 0, 4},
				{0, 4, 0, 0, 0, 0},
				{0, 0, 0, 0, 0, 0},
				{0, 0, 0, 0, 0, 0},
				{0, 0, 0, 0, 0, 0},
				{0, 0, 0, 0, 0, 0},
			},
		},
		{
			name: "left",
			dir:  Left,
			expected: [][]int{
				{4, 0, 0, 0, 0, 0},
				{2, 0, 0, 0, 0, 0},
				{0, 0, 0, 0, 0, 0},
				{4, 2, 0, 0, 0, 0},
				{2, 0, 0, 0, 0, 0},
				{0, 0, 0, 0, 0, 0},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := GridFromValues(start, NewRandom(6))

			next, res, err := Resolve(g, tc.dir)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, next.Values())
			assert.True(t, res.Changed)
			assert.Equal(t, 1, res.Merges)
			assert.Equal(t, 4, res.Score)
			assert.Equal(t, TotalValue(g), TotalValue(next))
			assert.Equal(t, start, g.Values(), "source snapshot untouched")
		})
	}
}

func TestResolveDownAndRight(t *testing.T) {
	g := GridFromValues([][]int{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	}, NewRandom(4))

	down, _, err := Resolve(g, Down)
	require.NoError(t, err)
	assert.Equal(t, [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	}, down.Values())

	right, _, err := Resolve(g, Right)
	require.NoError(t, err)
	assert.Equal(t, [][]int{
		{0, 2, 4, 4},
		{0, 0, 0, 4},
		{0, 0, 4, 2},
		{0, 0, 0, 2},
	}, right.Values())
}

func TestResolveInvalidDirection(t *testing.T) {
	g := NewGrid(4)

	for _, dir := range []Direction{{0, 0}, {1, 1}, {-1, 1}, {2, 0}, {0, -3}} {
		_, _, err := Resolve(g, dir)
		assert.ErrorIs(t, err, ErrInvalidDirection, "direction %v", dir)
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"up": Up, "d": Down, "left": Left, "r": Right} {
		got, err := ParseDirection(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}
