package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/x4d3/gomoku/driver"
	"github.com/x4d3/gomoku/engine"
)

type StatusResponse struct {
	Settings     GameSettingsDTO   `json:"settings"`
	Config       Config            `json:"config"`
	NextPlayer   int               `json:"next_player"`
	Winner       int               `json:"winner"`
	Status       string            `json:"status"`
	MoveCount    int               `json:"move_count"`
	Stones       []stoneDTO        `json:"stones"`
	LastMove     *engine.Coord     `json:"last_move"`
	WinningLine  []engine.Coord    `json:"winning_line"`
	History      []historyEntryDTO `json:"history"`
	FrontierSize int               `json:"frontier_size"`
	AiPending    bool              `json:"ai_pending"`
}

type apiMove struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type stoneDTO struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Player int `json:"player"`
}

type historyEntryDTO struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Player int  `json:"player"`
	IsAi   bool `json:"is_ai"`
	Score  int  `json:"score"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

type axisScoreDTO struct {
	Dx            int `json:"dx"`
	Dy            int `json:"dy"`
	OffenseLength int `json:"offense_length"`
	OffenseOpen   int `json:"offense_open"`
	DefenseLength int `json:"defense_length"`
	DefenseOpen   int `json:"defense_open"`
	Points        int `json:"points"`
}

type hintResponse struct {
	X         int            `json:"x"`
	Y         int            `json:"y"`
	Player    int            `json:"player"`
	Score     int            `json:"score"`
	Breakdown []axisScoreDTO `json:"breakdown"`
}

func newRouter(controller *GameController, hub *Hub, ghostHub *GhostHub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controller.Status())
	})

	reset := func(w http.ResponseWriter, r *http.Request) {
		controller.Reset()
		status := controller.Status()
		hub.PublishReset(status)
		writeJSON(w, http.StatusOK, status)
	}
	r.Post("/api/reset", reset)
	r.Post("/api/stop", reset)

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   json.RawMessage  `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := controller.Settings()
		config := GetConfig()
		if len(payload.Config) > 0 && string(payload.Config) != "null" {
			merged, err := MergeConfig(config, payload.Config)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			config = merged
			settings = config.DriverSettings()
		}
		if payload.Settings != nil {
			updated, err := settingsFromDTO(*payload.Settings, settings)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			settings = updated
		}
		config = config.WithSettings(settings)
		configStore.Update(config)
		setLogLevel(config.LogLevel)
		controller.UpdateSettings(settings)
		hub.PublishSettings(settingsPayload{
			Settings: controllerSettingsDTO(controller.Settings()),
			Config:   config,
		})
		writeJSON(w, http.StatusOK, controller.Status())
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		applied, errMsg := controller.ApplyHumanMove(engine.NewCoord(payload.X, payload.Y))
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		status := controller.Status()
		publishMove(hub, status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Get("/api/hint", func(w http.ResponseWriter, r *http.Request) {
		var color *engine.Color
		if raw := r.URL.Query().Get("color"); raw != "" {
			parsed, err := engine.ParseColor(raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			color = &parsed
		}
		hint, ok := controller.Hint(color)
		if !ok {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "no candidate cells"})
			return
		}
		writeJSON(w, http.StatusOK, hintToDTO(hint))
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})
	r.Get("/ws/ghost", func(w http.ResponseWriter, r *http.Request) {
		serveGhostWS(ghostHub, controller, w, r)
	})
	return r
}

// buildStatus reads everything from one driver so the snapshot is
// consistent. Callers hold the controller lock.
func buildStatus(d *driver.Driver) StatusResponse {
	game := d.Game()
	state := game.State()
	stones := state.Board.Stones()
	stoneDTOs := make([]stoneDTO, 0, len(stones))
	for _, stone := range stones {
		stoneDTOs = append(stoneDTOs, stoneDTO{X: stone.Coord.X, Y: stone.Coord.Y, Player: colorToInt(stone.Color)})
	}
	var lastMove *engine.Coord
	if state.HasLastMove {
		move := state.LastMove
		lastMove = &move
	}
	winningLine := state.WinningLine
	if winningLine == nil {
		winningLine = []engine.Coord{}
	}
	_, aiPending := d.NextAIAt()
	return StatusResponse{
		Settings:     controllerSettingsDTO(d.Settings()),
		Config:       GetConfig(),
		NextPlayer:   colorToInt(state.ToMove),
		Winner:       winnerFromState(state),
		Status:       state.Status.String(),
		MoveCount:    len(stones),
		Stones:       stoneDTOs,
		LastMove:     lastMove,
		WinningLine:  winningLine,
		History:      historyToDTO(game.History()),
		FrontierSize: game.Frontier().Len(),
		AiPending:    aiPending,
	}
}

// publishMove broadcasts the newest history entry of status, then status.
func publishMove(hub *Hub, status StatusResponse) {
	if n := len(status.History); n > 0 {
		hub.PublishHistory(historyPayload{History: status.History[n-1:]})
	}
	hub.PublishStatus(status)
}

func colorToInt(color engine.Color) int {
	if color == engine.ColorBlack {
		return 1
	}
	return 2
}

func winnerFromState(state engine.GameState) int {
	if !state.HasWinner {
		return 0
	}
	return colorToInt(state.Winner)
}

func historyToDTO(history engine.MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry engine.HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		X:      entry.Move.X,
		Y:      entry.Move.Y,
		Player: colorToInt(entry.Player),
		IsAi:   entry.IsAi,
		Score:  entry.Score,
	}
}

func hintToDTO(hint Hint) hintResponse {
	breakdown := make([]axisScoreDTO, 0, len(hint.Breakdown))
	for _, axis := range hint.Breakdown {
		breakdown = append(breakdown, axisScoreDTO{
			Dx:            axis.Axis.X,
			Dy:            axis.Axis.Y,
			OffenseLength: axis.Offense.Length,
			OffenseOpen:   axis.Offense.Open,
			DefenseLength: axis.Defense.Length,
			DefenseOpen:   axis.Defense.Open,
			Points:        axis.Points,
		})
	}
	return hintResponse{
		X:         hint.Move.X,
		Y:         hint.Move.Y,
		Player:    colorToInt(hint.Color),
		Score:     hint.Score,
		Breakdown: breakdown,
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
