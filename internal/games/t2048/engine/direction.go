package engine

import "fmt"

// Direction is a unit move vector in grid coordinates.
type Direction struct {
	X, Y int
}

// The four legal moves. Up points toward row 0.
var (
	Up    = Direction{X: 0, Y: -1}
	Down  = Direction{X: 0, Y: 1}
	Left  = Direction{X: -1, Y: 0}
	Right = Direction{X: 1, Y: 0}
)

// Validate reports ErrInvalidDirection unless exactly one axis is ±1.
func (d Direction) Validate() error {
	switch {
	case d.X == 0 && (d.Y == 1 || d.Y == -1):
		return nil
	case d.Y == 0 && (d.X == 1 || d.X == -1):
		return nil
	}
	return fmt.Errorf("%w: {%d,%d}", ErrInvalidDirection, d.X, d.Y)
}

// Horizontal reports whether the move runs along rows.
func (d Direction) Horizontal() bool {
	return d.X != 0
}

// Sign returns +1 when the destination edge is the high-index end of the line
// and -1 when it is the low-index end.
func (d Direction) Sign() int {
	if d.X != 0 {
		return d.X
	}
	return d.Y
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("{%d,%d}", d.X, d.Y)
	}
}

// ParseDirection accepts up/down/left/right and their first letters.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return Direction{}, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}
