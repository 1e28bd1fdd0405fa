package engine

// BestMove returns the frontier cell with the highest ScorePoint for color.
// Ties go to the smallest coordinate in Coord.Less order so the choice is
// reproducible. ok is false only when the frontier is empty.
func BestMove(board Board, frontier Frontier, color Color) (Coord, int, bool) {
	var best Coord
	bestScore := 0
	found := false
	for _, c := range frontier.Coords() {
		score := ScorePoint(board, c, color)
		if !found || score > bestScore {
			best = c
			bestScore = score
			found = true
		}
	}
	return best, bestScore, found
}
