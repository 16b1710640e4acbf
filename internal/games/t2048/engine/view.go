package engine

// Entity is one visible thing on the board as the presentation layer sees it.
type Entity struct {
	ID       BlockID
	Value    int
	Position Position
	IsNew    bool
	IsMerged bool // Absorbed by a merge this round; disappears after the slide
}

// View is a read-only projection of a state for rendering and animation.
type View struct {
	Phase    Phase
	Round    uint64
	Pending  int // Completions the current round still waits for
	Score    int
	Moves    int
	Size     int
	MaxValue int
	Entities []Entity
}

// Project builds the view of s. Entities are listed in row-major cell order,
// a cell's live block before the block it absorbed.
func Project(s State) View {
	v := View{
		Phase:    s.Phase,
		Round:    s.Barrier.Round,
		Pending:  s.Barrier.Remaining(),
		Score:    s.Score,
		Moves:    s.Moves,
		Size:     s.Grid.Size(),
		MaxValue: MaxValue(s.Grid),
	}
	for p, c := range s.Grid.All() {
		if c.Block != nil {
			v.Entities = append(v.Entities, Entity{
				ID:       c.Block.ID,
				Value:    c.Block.Value,
				Position: p,
				IsNew:    c.Block.IsNew,
			})
		}
		if c.Merged != nil {
			v.Entities = append(v.Entities, Entity{
				ID:       c.Merged.ID,
				Value:    c.Merged.Value,
				Position: p,
				IsMerged: true,
			})
		}
	}
	return v
}

// Positions maps every live block in the view to where it sits.
func (v View) Positions() map[BlockID]Position {
	out := make(map[BlockID]Position, len(v.Entities))
	for _, e := range v.Entities {
		if !e.IsMerged {
			out[e.ID] = e.Position
		}
	}
	return out
}
