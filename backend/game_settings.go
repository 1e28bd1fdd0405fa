package main

import "github.com/x4d3/gomoku/driver"

// GameSettingsDTO accepts either explicit per-side controllers or the
// legacy mode/human_player pair.
type GameSettingsDTO struct {
	Mode        string `json:"mode,omitempty"`
	HumanPlayer int    `json:"human_player,omitempty"`
	Black       string `json:"black,omitempty"`
	White       string `json:"white,omitempty"`
}

func settingsFromDTO(dto GameSettingsDTO, base driver.Settings) (driver.Settings, error) {
	settings := base
	switch dto.Mode {
	case "ai_vs_ai":
		settings.BlackType = driver.PlayerAI
		settings.WhiteType = driver.PlayerAI
	case "human_vs_human":
		settings.BlackType = driver.PlayerHuman
		settings.WhiteType = driver.PlayerHuman
	case "ai_vs_human":
		if dto.HumanPlayer == 2 {
			settings.BlackType = driver.PlayerAI
			settings.WhiteType = driver.PlayerHuman
		} else {
			settings.BlackType = driver.PlayerHuman
			settings.WhiteType = driver.PlayerAI
		}
	}
	if dto.Black != "" {
		t, err := driver.ParsePlayerType(dto.Black)
		if err != nil {
			return base, err
		}
		settings.BlackType = t
	}
	if dto.White != "" {
		t, err := driver.ParsePlayerType(dto.White)
		if err != nil {
			return base, err
		}
		settings.WhiteType = t
	}
	return settings, nil
}

func controllerSettingsDTO(settings driver.Settings) GameSettingsDTO {
	mode := "ai_vs_human"
	if settings.BlackType == driver.PlayerAI && settings.WhiteType == driver.PlayerAI {
		mode = "ai_vs_ai"
	} else if settings.BlackType == driver.PlayerHuman && settings.WhiteType == driver.PlayerHuman {
		mode = "human_vs_human"
	}
	humanPlayer := 0
	if settings.BlackType == driver.PlayerHuman {
		humanPlayer = 1
	} else if settings.WhiteType == driver.PlayerHuman {
		humanPlayer = 2
	}
	return GameSettingsDTO{
		Mode:        mode,
		HumanPlayer: humanPlayer,
		Black:       settings.BlackType.String(),
		White:       settings.WhiteType.String(),
	}
}
