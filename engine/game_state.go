package engine

type GameStatus int

const (
	StatusInProgress GameStatus = iota
	StatusWon
)

func (s GameStatus) String() string {
	if s == StatusWon {
		return "won"
	}
	return "in_progress"
}

// GameState is the turn state. Winner and LastMove are only meaningful
// when their Has flags are set.
type GameState struct {
	Board       Board
	ToMove      Color
	Status      GameStatus
	Winner      Color
	HasWinner   bool
	LastMove    Coord
	HasLastMove bool
	WinningLine []Coord
}

func DefaultGameState() GameState {
	state := GameState{}
	state.Reset()
	return state
}

func (s *GameState) Reset() {
	s.Board = NewBoard()
	s.ToMove = ColorBlack
	s.Status = StatusInProgress
	s.Winner = ColorBlack
	s.HasWinner = false
	s.LastMove = Coord{}
	s.HasLastMove = false
	s.WinningLine = nil
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	clone.WinningLine = append([]Coord(nil), s.WinningLine...)
	return clone
}
