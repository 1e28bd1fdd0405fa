package engine

import "sort"

// Board is a sparse occupancy map. A missing key is an empty cell.
type Board struct {
	cells map[Coord]Color
}

// Stone is one occupied cell.
type Stone struct {
	Coord Coord `json:"coord"`
	Color Color `json:"color"`
}

func NewBoard() Board {
	return Board{cells: make(map[Coord]Color)}
}

func (b Board) At(c Coord) (Color, bool) {
	color, ok := b.cells[c]
	return color, ok
}

func (b Board) IsEmpty(c Coord) bool {
	_, ok := b.cells[c]
	return !ok
}

// Set places a stone. The caller guarantees c is empty.
func (b *Board) Set(c Coord, color Color) {
	if b.cells == nil {
		b.cells = make(map[Coord]Color)
	}
	b.cells[c] = color
}

func (b *Board) Clear() {
	b.cells = make(map[Coord]Color)
}

func (b Board) Count() int {
	return len(b.cells)
}

// Stones lists every occupied cell ordered by coordinate.
func (b Board) Stones() []Stone {
	stones := make([]Stone, 0, len(b.cells))
	for c, color := range b.cells {
		stones = append(stones, Stone{Coord: c, Color: color})
	}
	sort.Slice(stones, func(i, j int) bool {
		return stones[i].Coord.Less(stones[j].Coord)
	})
	return stones
}

func (b Board) Clone() Board {
	clone := Board{cells: make(map[Coord]Color, len(b.cells))}
	for c, color := range b.cells {
		clone.cells[c] = color
	}
	return clone
}

func (b Board) hasColor(c Coord, color Color) bool {
	got, ok := b.cells[c]
	return ok && got == color
}
