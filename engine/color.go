package engine

import (
	"fmt"
	"strings"
)

// Color is the owner of a stone or the side to move.
type Color int

const (
	ColorBlack Color = iota
	ColorWhite
)

func (c Color) Opponent() Color {
	if c == ColorBlack {
		return ColorWhite
	}
	return ColorBlack
}

func (c Color) String() string {
	if c == ColorBlack {
		return "Black"
	}
	return "White"
}

func ParseColor(raw string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "black", "b", "1":
		return ColorBlack, nil
	case "white", "w", "2":
		return ColorWhite, nil
	default:
		return ColorBlack, fmt.Errorf("unknown color %q", raw)
	}
}
