// Package engine implements the rules of unbounded five-in-a-row and the
// one-ply heuristic used by the computer player.
//
// A Game is not safe for concurrent use; the driver that owns it must
// serialize every call.
package engine

// Game is the turn engine. TryApplyMove and Reset are its only mutators.
type Game struct {
	state    GameState
	frontier Frontier
	history  MoveHistory
}

func NewGame() *Game {
	g := &Game{}
	g.Reset()
	return g
}

func (g *Game) Reset() {
	g.state.Reset()
	g.history.Clear()
	g.frontier.Rebuild(g.state.Board)
}

// TryApplyMove places a stone for the side to move. It fails without
// touching the board, turn or winner when the game is over or c is taken.
func (g *Game) TryApplyMove(c Coord) (bool, string) {
	return g.applyMove(c, false, 0)
}

// ApplyBestMove plays BestMove for the side to move.
func (g *Game) ApplyBestMove() (Coord, bool) {
	if g.state.Status != StatusInProgress {
		return Coord{}, false
	}
	move, score, ok := g.BestMove(g.state.ToMove)
	if !ok {
		return Coord{}, false
	}
	applied, _ := g.applyMove(move, true, score)
	return move, applied
}

func (g *Game) applyMove(c Coord, isAi bool, score int) (bool, string) {
	if g.state.Status != StatusInProgress {
		return false, "game over"
	}
	if !g.state.Board.IsEmpty(c) {
		return false, "occupied"
	}
	player := g.state.ToMove
	g.state.Board.Set(c, player)
	g.state.LastMove = c
	g.state.HasLastMove = true
	g.history.Push(HistoryEntry{Move: c, Player: player, IsAi: isAi, Score: score})

	if WinsAt(g.state.Board, c, player) {
		g.state.Status = StatusWon
		g.state.Winner = player
		g.state.HasWinner = true
		if line, ok := WinningLine(g.state.Board, c); ok {
			g.state.WinningLine = line
		}
	} else {
		g.state.ToMove = player.Opponent()
	}
	g.frontier.Rebuild(g.state.Board)
	return true, ""
}

// BestMove evaluates the current frontier for color.
func (g *Game) BestMove(color Color) (Coord, int, bool) {
	return BestMove(g.state.Board, g.frontier, color)
}

func (g *Game) ToMove() Color {
	return g.state.ToMove
}

func (g *Game) Status() GameStatus {
	return g.state.Status
}

func (g *Game) IsOver() bool {
	return g.state.Status == StatusWon
}

func (g *Game) Winner() (Color, bool) {
	return g.state.Winner, g.state.HasWinner
}

func (g *Game) LastMove() (Coord, bool) {
	return g.state.LastMove, g.state.HasLastMove
}

func (g *Game) At(c Coord) (Color, bool) {
	return g.state.Board.At(c)
}

func (g *Game) Stones() []Stone {
	return g.state.Board.Stones()
}

func (g *Game) Frontier() Frontier {
	return g.frontier.Clone()
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return MoveHistory{entries: g.history.All()}
}

// ScoreBreakdown explains ScorePoint for c on the current board.
func (g *Game) ScoreBreakdown(c Coord, color Color) []AxisScore {
	return ScoreBreakdown(g.state.Board, c, color)
}
