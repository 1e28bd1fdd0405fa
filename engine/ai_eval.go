package engine

import "math"

// OccupiedScore is returned for cells that already hold a stone so they
// can never be selected.
const OccupiedScore = math.MinInt32 / 4

// LinePattern is a run through a candidate cell along one axis: its length
// counting the candidate itself, and how many of its two ends are empty.
type LinePattern struct {
	Length int `json:"length"`
	Open   int `json:"open"`
}

type patternWeight struct {
	length int
	open   int
	points int
}

// Patterns below five stones are matched exactly; anything unlisted scores
// the fallback points.
var offenseWeights = [...]patternWeight{
	{length: 4, open: 2, points: 50_000},
	{length: 4, open: 1, points: 20_000},
	{length: 3, open: 2, points: 10_000},
	{length: 3, open: 1, points: 1_000},
	{length: 2, open: 2, points: 500},
	{length: 2, open: 1, points: 100},
	{length: 1, open: 2, points: 50},
}

var defenseWeights = [...]patternWeight{
	{length: 4, open: 2, points: 40_000},
	{length: 4, open: 1, points: 15_000},
	{length: 3, open: 2, points: 8_000},
	{length: 3, open: 1, points: 800},
}

const (
	offenseFivePoints  = 1_000_000
	defenseFivePoints  = 900_000
	offenseOtherPoints = 10
	defenseOtherPoints = 0
)

// AxisScore explains one axis' contribution to ScorePoint.
type AxisScore struct {
	Axis    Coord       `json:"axis"`
	Offense LinePattern `json:"offense"`
	Defense LinePattern `json:"defense"`
	Points  int         `json:"points"`
}

// ScorePoint rates placing a color stone at c. The value is the sum over
// the four axes of the own-run value plus the value of blocking the
// opponent's run through c.
func ScorePoint(board Board, c Coord, color Color) int {
	if !board.IsEmpty(c) {
		return OccupiedScore
	}
	score := 0
	for _, axis := range Axes {
		score += axisScore(board, c, axis, color).Points
	}
	return score
}

// ScoreBreakdown returns the per-axis terms of ScorePoint. It returns nil
// for an occupied cell.
func ScoreBreakdown(board Board, c Coord, color Color) []AxisScore {
	if !board.IsEmpty(c) {
		return nil
	}
	breakdown := make([]AxisScore, 0, len(Axes))
	for _, axis := range Axes {
		breakdown = append(breakdown, axisScore(board, c, axis, color))
	}
	return breakdown
}

func axisScore(board Board, c Coord, axis Coord, color Color) AxisScore {
	offense := linePattern(board, c, axis, color)
	defense := linePattern(board, c, axis, color.Opponent())
	return AxisScore{
		Axis:    axis,
		Offense: offense,
		Defense: defense,
		Points:  offensePoints(offense) + defensePoints(defense),
	}
}

// linePattern measures the run of color that a stone at c would join.
func linePattern(board Board, c Coord, axis Coord, color Color) LinePattern {
	forward := countDirection(board, c, axis.X, axis.Y, color)
	backward := countDirection(board, c, -axis.X, -axis.Y, color)
	open := 0
	if board.IsEmpty(c.Add((forward+1)*axis.X, (forward+1)*axis.Y)) {
		open++
	}
	if board.IsEmpty(c.Add(-(backward+1)*axis.X, -(backward+1)*axis.Y)) {
		open++
	}
	return LinePattern{Length: 1 + forward + backward, Open: open}
}

func offensePoints(p LinePattern) int {
	if p.Length >= WinLength {
		return offenseFivePoints
	}
	return lookupWeight(offenseWeights[:], p, offenseOtherPoints)
}

func defensePoints(p LinePattern) int {
	if p.Length >= WinLength {
		return defenseFivePoints
	}
	return lookupWeight(defenseWeights[:], p, defenseOtherPoints)
}

func lookupWeight(weights []patternWeight, p LinePattern, fallback int) int {
	for _, w := range weights {
		if w.length == p.Length && w.open == p.Open {
			return w.points
		}
	}
	return fallback
}
