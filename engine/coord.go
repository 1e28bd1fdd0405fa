package engine

import "fmt"

// Coord addresses one cell of the unbounded grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Axes are the four principal directions a line can run along:
// horizontal, vertical, diagonal up-right and diagonal down-right.
var Axes = [4]Coord{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: -1}}

func NewCoord(x, y int) Coord {
	return Coord{X: x, Y: y}
}

func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Less orders coordinates by X, then Y.
func (c Coord) Less(other Coord) bool {
	if c.X != other.X {
		return c.X < other.X
	}
	return c.Y < other.Y
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
