// Package driver runs a game the way a presentation layer does: it holds the
// per-side controller selection and a single deferred computer-move deadline
// that the owner checks once per tick.
package driver

import (
	"fmt"
	"strings"
	"time"

	"github.com/x4d3/gomoku/engine"
)

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

func (t PlayerType) String() string {
	if t == PlayerAI {
		return "ai"
	}
	return "human"
}

func ParsePlayerType(raw string) (PlayerType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "human", "h":
		return PlayerHuman, nil
	case "ai", "computer", "cpu":
		return PlayerAI, nil
	default:
		return PlayerHuman, fmt.Errorf("unknown player type %q", raw)
	}
}

// Default pacing between a move and the computer's reply.
const (
	DefaultAiDelay       = 120 * time.Millisecond
	DefaultAiToggleDelay = 80 * time.Millisecond
)

type Settings struct {
	BlackType     PlayerType
	WhiteType     PlayerType
	AiDelay       time.Duration
	AiToggleDelay time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		BlackType:     PlayerHuman,
		WhiteType:     PlayerAI,
		AiDelay:       DefaultAiDelay,
		AiToggleDelay: DefaultAiToggleDelay,
	}
}

func (s Settings) TypeFor(color engine.Color) PlayerType {
	if color == engine.ColorBlack {
		return s.BlackType
	}
	return s.WhiteType
}

// Driver owns one game. It is not safe for concurrent use.
type Driver struct {
	game     *engine.Game
	settings Settings
	wantAI   bool
	nextAiAt time.Time
}

func New(settings Settings, now time.Time) *Driver {
	d := &Driver{game: engine.NewGame(), settings: settings}
	d.rearm(now, settings.AiDelay)
	return d
}

func (d *Driver) Game() *engine.Game {
	return d.game
}

func (d *Driver) Settings() Settings {
	return d.settings
}

func (d *Driver) IsHuman(color engine.Color) bool {
	return d.settings.TypeFor(color) == PlayerHuman
}

// IsAITurn reports whether the game is running and the side to move is
// computer-controlled.
func (d *Driver) IsAITurn() bool {
	return !d.game.IsOver() && !d.IsHuman(d.game.ToMove())
}

// NextAIAt returns the pending computer-move deadline, if any.
func (d *Driver) NextAIAt() (time.Time, bool) {
	return d.nextAiAt, d.wantAI
}

func (d *Driver) QueueAI(now time.Time, delay time.Duration) {
	d.wantAI = true
	d.nextAiAt = now.Add(delay)
}

// HumanMove applies a move on behalf of a human-controlled side to move.
func (d *Driver) HumanMove(c engine.Coord, now time.Time) (bool, string) {
	if d.game.IsOver() {
		return false, "game over"
	}
	if !d.IsHuman(d.game.ToMove()) {
		return false, "not human turn"
	}
	ok, reason := d.game.TryApplyMove(c)
	if !ok {
		return false, reason
	}
	d.rearm(now, d.settings.AiDelay)
	return true, ""
}

func (d *Driver) Reset(now time.Time) {
	d.game.Reset()
	d.rearm(now, d.settings.AiDelay)
}

// SetPlayerType switches one side's controller. Handing the side to move
// to the computer schedules its move after AiToggleDelay.
func (d *Driver) SetPlayerType(color engine.Color, t PlayerType, now time.Time) {
	if color == engine.ColorBlack {
		d.settings.BlackType = t
	} else {
		d.settings.WhiteType = t
	}
	if color == d.game.ToMove() && t == PlayerAI && !d.game.IsOver() {
		d.QueueAI(now, d.settings.AiToggleDelay)
	}
}

// UpdateSettings replaces pacing and controllers in one step. Only a side
// whose controller actually changes can reschedule the computer.
func (d *Driver) UpdateSettings(settings Settings, now time.Time) {
	d.settings.AiDelay = settings.AiDelay
	d.settings.AiToggleDelay = settings.AiToggleDelay
	if settings.BlackType != d.settings.BlackType {
		d.SetPlayerType(engine.ColorBlack, settings.BlackType, now)
	}
	if settings.WhiteType != d.settings.WhiteType {
		d.SetPlayerType(engine.ColorWhite, settings.WhiteType, now)
	}
	if !d.IsAITurn() {
		d.wantAI = false
	}
}

func (d *Driver) TogglePlayerType(color engine.Color, now time.Time) PlayerType {
	next := PlayerAI
	if d.settings.TypeFor(color) == PlayerAI {
		next = PlayerHuman
	}
	d.SetPlayerType(color, next, now)
	return next
}

// Tick plays the computer's move when one is due. It returns the applied
// move and true if the board changed.
func (d *Driver) Tick(now time.Time) (engine.Coord, bool) {
	if !d.IsAITurn() || !d.wantAI {
		return engine.Coord{}, false
	}
	if now.Before(d.nextAiAt) {
		return engine.Coord{}, false
	}
	move, ok := d.game.ApplyBestMove()
	if !ok {
		d.wantAI = false
		return engine.Coord{}, false
	}
	d.rearm(now, d.settings.AiDelay)
	return move, true
}

func (d *Driver) rearm(now time.Time, delay time.Duration) {
	if d.IsAITurn() {
		d.QueueAI(now, delay)
		return
	}
	d.wantAI = false
}
