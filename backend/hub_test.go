package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x4d3/gomoku/driver"
	"github.com/x4d3/gomoku/engine"
)

type liveServer struct {
	controller *GameController
	server     *httptest.Server
}

// startLiveServer runs the router with both hubs, wired the way main does.
func startLiveServer(t *testing.T, settings driver.Settings, ghostMode bool) liveServer {
	t.Helper()
	cfg := DefaultConfig().WithSettings(settings)
	cfg.GhostMode = ghostMode
	useConfig(t, cfg)

	clock := newFakeClock()
	controller := newGameControllerWithClock(settings, clock.Now)
	hub := NewHub()
	ghostHub := NewGhostHub()
	controller.SetGhostPublisher(
		func() bool { return GetConfig().GhostMode },
		ghostHub.Publish,
	)
	done := make(chan struct{})
	go hub.Run(done)
	go ghostHub.Run(done)
	server := httptest.NewServer(newRouter(controller, hub, ghostHub))
	t.Cleanup(func() {
		server.Close()
		close(done)
	})
	return liveServer{controller: controller, server: server}
}

func (s liveServer) dial(t *testing.T, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readWS(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func readGhost(t *testing.T, conn *websocket.Conn) ghostPayload {
	t.Helper()
	msg := readWS(t, conn)
	require.Equal(t, "ghost", msg.Type)
	var payload ghostPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	return payload
}

func readStatusOfType(t *testing.T, conn *websocket.Conn, msgType string) StatusResponse {
	t.Helper()
	for i := 0; i < 4; i++ {
		msg := readWS(t, conn)
		if msg.Type != msgType {
			continue
		}
		var status StatusResponse
		require.NoError(t, json.Unmarshal(msg.Payload, &status))
		return status
	}
	t.Fatalf("no %q message received", msgType)
	return StatusResponse{}
}

func TestGhostSocketSendsCurrentSuggestionOnReconnect(t *testing.T) {
	live := startLiveServer(t, humanVsHuman(), true)

	first := live.dial(t, "/ws/ghost")
	initial := readGhost(t, first)
	require.True(t, initial.Active)
	require.NotNil(t, initial.Best)
	assert.Equal(t, ghostCell{X: -2, Y: -2, Player: 1}, *initial.Best)
	assert.Equal(t, 0, initial.HistoryLen)
	require.NoError(t, first.Close())

	applied, reason := live.controller.ApplyHumanMove(engine.NewCoord(-2, -2))
	require.True(t, applied, reason)

	second := live.dial(t, "/ws/ghost")
	fresh := readGhost(t, second)
	require.True(t, fresh.Active)
	require.NotNil(t, fresh.Best)
	assert.Equal(t, 1, fresh.HistoryLen)
	assert.Equal(t, 2, fresh.Best.Player)
	for _, stone := range live.controller.Status().Stones {
		assert.False(t, stone.X == fresh.Best.X && stone.Y == fresh.Best.Y, "suggested an occupied cell")
	}
}

func TestGhostSocketStreamsSuggestionsAfterMoves(t *testing.T) {
	live := startLiveServer(t, humanVsHuman(), true)
	conn := live.dial(t, "/ws/ghost")
	require.Equal(t, 0, readGhost(t, conn).HistoryLen)

	applied, reason := live.controller.ApplyHumanMove(engine.NewCoord(0, 0))
	require.True(t, applied, reason)

	update := readGhost(t, conn)
	assert.Equal(t, 1, update.HistoryLen)
	assert.Equal(t, 2, update.NextPlayer)
	assert.True(t, update.Active)
}

func TestStatusSocketBroadcastsMoves(t *testing.T) {
	live := startLiveServer(t, humanVsHuman(), false)
	conn := live.dial(t, "/ws/")

	initial := readStatusOfType(t, conn, "status")
	assert.Equal(t, 0, initial.MoveCount)

	resp, err := http.Post(live.server.URL+"/api/move", "application/json", bytes.NewBufferString(`{"x":3,"y":-1}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	update := readStatusOfType(t, conn, "status")
	assert.Equal(t, 1, update.MoveCount)
	assert.Len(t, update.History, 1)
	assert.Equal(t, 2, update.NextPlayer)

	require.NoError(t, conn.WriteJSON(wsMessage{Type: "request_status"}))
	again := readStatusOfType(t, conn, "status")
	assert.Equal(t, update.Stones, again.Stones)
}
