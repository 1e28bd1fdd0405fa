package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, g *Game, moves ...Coord) {
	t.Helper()
	for _, move := range moves {
		applied, reason := g.TryApplyMove(move)
		require.Truef(t, applied, "move %v rejected: %s", move, reason)
	}
}

func TestNewGameInitialState(t *testing.T) {
	g := NewGame()
	assert.Equal(t, ColorBlack, g.ToMove())
	assert.Equal(t, StatusInProgress, g.Status())
	_, hasWinner := g.Winner()
	assert.False(t, hasWinner)
	_, hasLast := g.LastMove()
	assert.False(t, hasLast)
	assert.Empty(t, g.Stones())
	assert.Equal(t, originBlock(), g.Frontier().Coords())
}

func TestTryApplyMoveAlternatesTurns(t *testing.T) {
	g := NewGame()
	play(t, g, Coord{X: 0, Y: 0})
	assert.Equal(t, ColorWhite, g.ToMove())
	play(t, g, Coord{X: -40, Y: 7})
	assert.Equal(t, ColorBlack, g.ToMove())

	color, ok := g.At(Coord{X: -40, Y: 7})
	require.True(t, ok)
	assert.Equal(t, ColorWhite, color)
	last, ok := g.LastMove()
	require.True(t, ok)
	assert.Equal(t, Coord{X: -40, Y: 7}, last)
	assert.Equal(t, 2, g.History().Size())
	assert.False(t, g.Frontier().Contains(Coord{X: 0, Y: 0}))
	assert.True(t, g.Frontier().Contains(Coord{X: -42, Y: 9}))
}

func TestTryApplyMoveRejectsOccupied(t *testing.T) {
	g := NewGame()
	play(t, g, Coord{X: 0, Y: 0}, Coord{X: 1, Y: 0})
	before := g.State()
	frontierBefore := g.Frontier().Coords()

	applied, reason := g.TryApplyMove(Coord{X: 1, Y: 0})
	assert.False(t, applied)
	assert.Equal(t, "occupied", reason)
	assert.Equal(t, before, g.State())
	assert.Equal(t, frontierBefore, g.Frontier().Coords())
	assert.Equal(t, 2, g.History().Size())
}

// Black lines up (0,0)..(4,0) while White plays a harmless column.
func TestBlackWinsWithFiveInRow(t *testing.T) {
	g := NewGame()
	play(t, g,
		Coord{X: 0, Y: 0}, Coord{X: 0, Y: 1},
		Coord{X: 1, Y: 0}, Coord{X: 0, Y: 2},
		Coord{X: 2, Y: 0}, Coord{X: 0, Y: 3},
		Coord{X: 3, Y: 0}, Coord{X: 0, Y: 4},
	)
	_, hasWinner := g.Winner()
	require.False(t, hasWinner)

	play(t, g, Coord{X: 4, Y: 0})
	winner, hasWinner := g.Winner()
	require.True(t, hasWinner)
	assert.Equal(t, ColorBlack, winner)
	assert.Equal(t, StatusWon, g.Status())
	assert.True(t, g.IsOver())
	assert.Equal(t, ColorBlack, g.ToMove())
	assert.Len(t, g.State().WinningLine, 5)

	applied, reason := g.TryApplyMove(Coord{X: 10, Y: 10})
	assert.False(t, applied)
	assert.Equal(t, "game over", reason)
	_, moved := g.ApplyBestMove()
	assert.False(t, moved)
}

func TestWinOnEveryAxisThroughGame(t *testing.T) {
	for _, axis := range Axes {
		g := NewGame()
		for i := 0; i < WinLength; i++ {
			play(t, g, Coord{X: i * axis.X, Y: i * axis.Y})
			if i < WinLength-1 {
				// White answers far away so it never blocks.
				play(t, g, Coord{X: 100 + i*3, Y: 100})
			}
		}
		winner, ok := g.Winner()
		require.Truef(t, ok, "axis %v", axis)
		assert.Equal(t, ColorBlack, winner)
	}
}

func TestBlockedFourDoesNotWinThroughGame(t *testing.T) {
	g := NewGame()
	play(t, g,
		Coord{X: 1, Y: 0}, Coord{X: 0, Y: 0},
		Coord{X: 2, Y: 0}, Coord{X: 5, Y: 0},
		Coord{X: 3, Y: 0}, Coord{X: 0, Y: 5},
		Coord{X: 4, Y: 0},
	)
	_, hasWinner := g.Winner()
	assert.False(t, hasWinner)
	assert.Equal(t, ColorWhite, g.ToMove())
}

func TestPostWinStateIsFrozen(t *testing.T) {
	g := NewGame()
	for i := 0; i < 4; i++ {
		play(t, g, Coord{X: 0, Y: i}, Coord{X: 5, Y: i})
	}
	play(t, g, Coord{X: 0, Y: 4})
	require.True(t, g.IsOver())

	before := g.State()
	frontier := g.Frontier().Coords()
	for _, c := range []Coord{{X: 1, Y: 1}, {X: 0, Y: 0}, {X: -100, Y: 100}} {
		applied, _ := g.TryApplyMove(c)
		assert.False(t, applied)
	}
	assert.Equal(t, before, g.State())
	assert.Equal(t, frontier, g.Frontier().Coords())
}

func TestResetRestoresInitialStateAndIsIdempotent(t *testing.T) {
	g := NewGame()
	play(t, g, Coord{X: 3, Y: 3}, Coord{X: 4, Y: 4}, Coord{X: 5, Y: 5})

	g.Reset()
	once := g.State()
	onceFrontier := g.Frontier().Coords()
	g.Reset()

	assert.Equal(t, once, g.State())
	assert.Equal(t, onceFrontier, g.Frontier().Coords())
	assert.Equal(t, DefaultGameState(), g.State())
	assert.Equal(t, originBlock(), g.Frontier().Coords())
	assert.Empty(t, g.Stones())
	assert.Equal(t, 0, g.History().Size())
	for _, c := range []Coord{{X: 3, Y: 3}, {X: 4, Y: 4}, {X: 5, Y: 5}} {
		_, ok := g.At(c)
		assert.False(t, ok)
	}
}

func TestResetAfterWinAllowsPlay(t *testing.T) {
	g := NewGame()
	for i := 0; i < 4; i++ {
		play(t, g, Coord{X: i, Y: i}, Coord{X: i, Y: -10})
	}
	play(t, g, Coord{X: 4, Y: 4})
	require.True(t, g.IsOver())

	g.Reset()
	assert.False(t, g.IsOver())
	play(t, g, Coord{X: 0, Y: 0})
}

func TestApplyBestMoveRecordsAiHistory(t *testing.T) {
	g := NewGame()
	move, ok := g.ApplyBestMove()
	require.True(t, ok)
	assert.Contains(t, originBlock(), move)

	last, ok := g.History().Last()
	require.True(t, ok)
	assert.True(t, last.IsAi)
	assert.Equal(t, ColorBlack, last.Player)
	assert.Equal(t, move, last.Move)
	assert.Equal(t, 4*50, last.Score)
}

func TestComputerTakesImmediateWin(t *testing.T) {
	g := NewGame()
	play(t, g,
		Coord{X: 0, Y: 0}, Coord{X: 0, Y: 1},
		Coord{X: 1, Y: 0}, Coord{X: 1, Y: 1},
		Coord{X: 2, Y: 0}, Coord{X: 2, Y: 1},
		Coord{X: 3, Y: 0}, Coord{X: 20, Y: 20},
	)
	move, ok := g.ApplyBestMove()
	require.True(t, ok)
	assert.Contains(t, []Coord{{X: -1, Y: 0}, {X: 4, Y: 0}}, move)
	winner, ok := g.Winner()
	require.True(t, ok)
	assert.Equal(t, ColorBlack, winner)
}

func TestSelfPlayStaysLegal(t *testing.T) {
	g := NewGame()
	for ply := 0; ply < 80 && !g.IsOver(); ply++ {
		toMove := g.ToMove()
		move, ok := g.ApplyBestMove()
		require.True(t, ok)
		color, occupied := g.At(move)
		require.True(t, occupied)
		require.Equal(t, toMove, color)
		requireFrontierExact(t, g.state.Board, g.frontier)
	}
}
