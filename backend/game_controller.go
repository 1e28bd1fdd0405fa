package main

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/x4d3/gomoku/driver"
	"github.com/x4d3/gomoku/engine"
)

type GameController struct {
	mu             sync.Mutex
	driver         *driver.Driver
	clock          func() time.Time
	ghostEnabled   func() bool
	ghostPublisher func(ghostPayload)
}

func NewGameController(settings driver.Settings) *GameController {
	return newGameControllerWithClock(settings, time.Now)
}

func newGameControllerWithClock(settings driver.Settings, clock func() time.Time) *GameController {
	return &GameController{
		driver: driver.New(settings, clock()),
		clock:  clock,
	}
}

func (gc *GameController) SetGhostPublisher(enabled func() bool, publisher func(ghostPayload)) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.ghostEnabled = enabled
	gc.ghostPublisher = publisher
}

func (gc *GameController) ApplyHumanMove(c engine.Coord) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	mover := gc.driver.Game().ToMove()
	ok, reason := gc.driver.HumanMove(c, gc.clock())
	if !ok {
		logrus.WithFields(logrus.Fields{"x": c.X, "y": c.Y, "reason": reason}).Debug("human move rejected")
		return false, reason
	}
	gc.logMoveLocked(c, mover, false)
	gc.publishGhostLocked()
	return true, ""
}

// Tick gives the computer a chance to move. It returns true when the
// board changed.
func (gc *GameController) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	mover := gc.driver.Game().ToMove()
	move, moved := gc.driver.Tick(gc.clock())
	if !moved {
		return false
	}
	gc.logMoveLocked(move, mover, true)
	gc.publishGhostLocked()
	return true
}

// Status builds the full status DTO under a single lock.
func (gc *GameController) Status() StatusResponse {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return buildStatus(gc.driver)
}

func (gc *GameController) Settings() driver.Settings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.driver.Settings()
}

func (gc *GameController) Reset() {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.driver.Reset(gc.clock())
	logrus.Info("game reset")
	gc.publishGhostLocked()
}

func (gc *GameController) UpdateSettings(update driver.Settings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.driver.UpdateSettings(update, gc.clock())
	logrus.WithFields(logrus.Fields{
		"black": update.BlackType.String(),
		"white": update.WhiteType.String(),
	}).Info("settings updated")
	gc.publishGhostLocked()
}

type Hint struct {
	Color     engine.Color
	Move      engine.Coord
	Score     int
	Breakdown []engine.AxisScore
}

// Hint evaluates the frontier for color, or for the side to move when
// color is nil, without touching the game.
func (gc *GameController) Hint(color *engine.Color) (Hint, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	game := gc.driver.Game()
	side := game.ToMove()
	if color != nil {
		side = *color
	}
	move, score, ok := game.BestMove(side)
	if !ok {
		return Hint{}, false
	}
	return Hint{Color: side, Move: move, Score: score, Breakdown: game.ScoreBreakdown(move, side)}, true
}

func (gc *GameController) logMoveLocked(c engine.Coord, mover engine.Color, isAi bool) {
	game := gc.driver.Game()
	fields := logrus.Fields{"x": c.X, "y": c.Y, "player": mover.String(), "ai": isAi}
	if entry, ok := game.History().Last(); ok && isAi {
		fields["score"] = entry.Score
	}
	logrus.WithFields(fields).Debug("move applied")
	if winner, ok := game.Winner(); ok {
		state := game.State()
		logrus.WithFields(logrus.Fields{
			"winner": winner.String(),
			"moves":  state.Board.Count(),
		}).Info("game won")
	}
}

// GhostPayload returns the current suggestion, whether or not ghost mode
// is enabled.
func (gc *GameController) GhostPayload() ghostPayload {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.ghostPayloadLocked()
}

func (gc *GameController) ghostPayloadLocked() ghostPayload {
	game := gc.driver.Game()
	payload := ghostPayload{
		NextPlayer: colorToInt(game.ToMove()),
		HistoryLen: game.History().Size(),
	}
	if !game.IsOver() && gc.driver.IsHuman(game.ToMove()) {
		if move, score, ok := game.BestMove(game.ToMove()); ok {
			payload.Active = true
			payload.Best = &ghostCell{X: move.X, Y: move.Y, Player: colorToInt(game.ToMove())}
			payload.Score = score
		}
	}
	return payload
}

// publishGhostLocked sends the suggested move for a human side to move.
func (gc *GameController) publishGhostLocked() {
	if gc.ghostPublisher == nil || gc.ghostEnabled == nil || !gc.ghostEnabled() {
		return
	}
	gc.ghostPublisher(gc.ghostPayloadLocked())
}
