package engine

import "sort"

// FrontierRadius is the Chebyshev distance from a stone within which empty
// cells are move candidates.
const FrontierRadius = 2

// Frontier is the candidate-move set. It is always rebuilt from scratch.
type Frontier struct {
	cells map[Coord]struct{}
}

func NewFrontier() Frontier {
	f := Frontier{}
	f.Rebuild(NewBoard())
	return f
}

// Rebuild replaces the frontier with every empty cell near a stone, or the
// block around the origin when the board is empty.
func (f *Frontier) Rebuild(board Board) {
	f.cells = make(map[Coord]struct{}, board.Count()*8+25)
	if board.Count() == 0 {
		for dx := -FrontierRadius; dx <= FrontierRadius; dx++ {
			for dy := -FrontierRadius; dy <= FrontierRadius; dy++ {
				f.cells[Coord{X: dx, Y: dy}] = struct{}{}
			}
		}
		return
	}
	for stone := range board.cells {
		for dx := -FrontierRadius; dx <= FrontierRadius; dx++ {
			for dy := -FrontierRadius; dy <= FrontierRadius; dy++ {
				q := stone.Add(dx, dy)
				if board.IsEmpty(q) {
					f.cells[q] = struct{}{}
				}
			}
		}
	}
}

func (f Frontier) Contains(c Coord) bool {
	_, ok := f.cells[c]
	return ok
}

func (f Frontier) Len() int {
	return len(f.cells)
}

// Coords lists the frontier in Coord.Less order.
func (f Frontier) Coords() []Coord {
	coords := make([]Coord, 0, len(f.cells))
	for c := range f.cells {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		return coords[i].Less(coords[j])
	})
	return coords
}

func (f Frontier) Clone() Frontier {
	clone := Frontier{cells: make(map[Coord]struct{}, len(f.cells))}
	for c := range f.cells {
		clone.cells[c] = struct{}{}
	}
	return clone
}
