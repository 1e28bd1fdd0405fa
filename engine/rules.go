package engine

// WinLength is the run length that ends the game. Longer runs also win.
const WinLength = 5

// WinsAt reports whether the stone of color at c completes a run of
// WinLength or more. The stone must already be on the board.
func WinsAt(board Board, c Coord, color Color) bool {
	for _, axis := range Axes {
		count := 1
		count += countDirection(board, c, axis.X, axis.Y, color)
		count += countDirection(board, c, -axis.X, -axis.Y, color)
		if count >= WinLength {
			return true
		}
	}
	return false
}

// WinningLine returns the full run through c on the first axis that
// reaches WinLength, ordered from its backward end.
func WinningLine(board Board, c Coord) ([]Coord, bool) {
	color, ok := board.At(c)
	if !ok {
		return nil, false
	}
	for _, axis := range Axes {
		line := collectLine(board, c, axis.X, axis.Y, color)
		if len(line) >= WinLength {
			return line, true
		}
	}
	return nil, false
}

// countDirection counts contiguous stones of color stepping away from
// start, start itself excluded.
func countDirection(board Board, start Coord, dx, dy int, color Color) int {
	count := 0
	next := start.Add(dx, dy)
	for board.hasColor(next, color) {
		count++
		next = next.Add(dx, dy)
	}
	return count
}

func collectLine(board Board, start Coord, dx, dy int, color Color) []Coord {
	back := countDirection(board, start, -dx, -dy, color)
	forward := countDirection(board, start, dx, dy, color)
	line := make([]Coord, 0, back+forward+1)
	cur := start.Add(-back*dx, -back*dy)
	for i := 0; i <= back+forward; i++ {
		line = append(line, cur)
		cur = cur.Add(dx, dy)
	}
	return line
}
