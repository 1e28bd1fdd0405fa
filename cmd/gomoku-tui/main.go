package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/x4d3/gomoku/driver"
	"github.com/x4d3/gomoku/engine"
)

const (
	tickInterval = 30 * time.Millisecond
	cellWidth    = 2
	headerLines  = 2
	footerLines  = 3
	minViewCells = 5
)

var (
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	lastStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	winStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type model struct {
	drv     *driver.Driver
	clock   func() time.Time
	cursor  engine.Coord
	origin  engine.Coord
	cols    int
	rows    int
	message string
}

func newModel(settings driver.Settings, clock func() time.Time) model {
	m := model{
		drv:   driver.New(settings, clock()),
		clock: clock,
		cols:  19,
		rows:  19,
	}
	m.origin = engine.NewCoord(-m.cols/2, -m.rows/2)
	return m
}

func (m model) Init() tea.Cmd {
	return tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		col := msg.X / cellWidth
		row := msg.Y - headerLines
		if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
			return m, nil
		}
		m.cursor = m.origin.Add(col, row)
		m.place()
		return m, nil
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		if move, moved := m.drv.Tick(time.Time(msg)); moved {
			logrus.WithFields(logrus.Fields{"x": move.X, "y": move.Y}).Debug("computer moved")
			m.message = ""
		}
		return m, tickCmd()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(0, -1)
	case "down", "j":
		m.moveCursor(0, 1)
	case "left", "h":
		m.moveCursor(-1, 0)
	case "right", "l":
		m.moveCursor(1, 0)
	case " ", "enter":
		m.place()
	case "b":
		t := m.drv.TogglePlayerType(engine.ColorBlack, m.clock())
		m.message = fmt.Sprintf("Black is now %s", t)
	case "w":
		t := m.drv.TogglePlayerType(engine.ColorWhite, m.clock())
		m.message = fmt.Sprintf("White is now %s", t)
	case "r":
		m.drv.Reset(m.clock())
		m.message = ""
	case "c":
		if last, ok := m.drv.Game().LastMove(); ok {
			m.cursor = last
		} else {
			m.cursor = engine.Coord{}
		}
		m.center()
	}
	return m, nil
}

// place plays at the cursor, or starts a new game once the current one
// is over.
func (m *model) place() {
	if m.drv.Game().IsOver() {
		m.drv.Reset(m.clock())
		m.message = ""
		return
	}
	if ok, reason := m.drv.HumanMove(m.cursor, m.clock()); !ok {
		m.message = reason
		return
	}
	m.message = ""
}

func (m *model) moveCursor(dx, dy int) {
	m.cursor = m.cursor.Add(dx, dy)
	if m.cursor.X < m.origin.X {
		m.origin.X = m.cursor.X
	}
	if m.cursor.X >= m.origin.X+m.cols {
		m.origin.X = m.cursor.X - m.cols + 1
	}
	if m.cursor.Y < m.origin.Y {
		m.origin.Y = m.cursor.Y
	}
	if m.cursor.Y >= m.origin.Y+m.rows {
		m.origin.Y = m.cursor.Y - m.rows + 1
	}
}

func (m *model) center() {
	m.origin = engine.NewCoord(m.cursor.X-m.cols/2, m.cursor.Y-m.rows/2)
}

func (m *model) resize(width, height int) {
	m.cols = max(minViewCells, width/cellWidth)
	m.rows = max(minViewCells, height-headerLines-footerLines)
	m.center()
}

func (m model) View() string {
	game := m.drv.Game()
	state := game.State()
	settings := m.drv.Settings()

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Black: %s  White: %s  %s",
		settings.BlackType, settings.WhiteType, m.statusLine(state))))
	b.WriteString(fmt.Sprintf("\ncursor %s\n", m.cursor))

	winning := make(map[engine.Coord]struct{}, len(state.WinningLine))
	for _, c := range state.WinningLine {
		winning[c] = struct{}{}
	}
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			c := m.origin.Add(col, row)
			b.WriteString(m.renderCell(state, c, winning))
		}
		b.WriteByte('\n')
	}

	if m.message != "" {
		b.WriteString(messageStyle.Render(m.message))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("arrows/hjkl move  space place  b/w toggle AI  c center  r reset  q quit"))
	return b.String()
}

func (m model) statusLine(state engine.GameState) string {
	if state.HasWinner {
		return fmt.Sprintf("%s wins! (place to restart)", state.Winner)
	}
	if m.drv.IsAITurn() {
		return fmt.Sprintf("%s (computer) thinking", state.ToMove)
	}
	return fmt.Sprintf("%s to move", state.ToMove)
}

func (m model) renderCell(state engine.GameState, c engine.Coord, winning map[engine.Coord]struct{}) string {
	glyph := "·"
	style := emptyStyle
	if color, ok := state.Board.At(c); ok {
		style = lipgloss.NewStyle()
		glyph = "●"
		if color == engine.ColorWhite {
			glyph = "○"
		}
		if _, ok := winning[c]; ok {
			style = winStyle
		} else if state.HasLastMove && state.LastMove == c {
			style = lastStyle
		}
	}
	if c == m.cursor {
		style = cursorStyle
	}
	return style.Render(glyph) + " "
}

func main() {
	black := flag.String("black", "human", "black controller: human or ai")
	white := flag.String("white", "ai", "white controller: human or ai")
	logLevel := flag.String("log-level", "warn", "log level")
	logFile := flag.String("log-file", "", "append logs to this file; logging is off when empty")
	flag.Parse()

	settings := driver.DefaultSettings()
	var err error
	if settings.BlackType, err = driver.ParsePlayerType(*black); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if settings.WhiteType, err = driver.ParsePlayerType(*white); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if level, err := logrus.ParseLevel(*logLevel); err == nil {
		logrus.SetLevel(level)
	}
	closer, err := configureLogging(*logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	p := tea.NewProgram(newModel(settings, time.Now), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logrus.WithError(err).Error("tui exited")
		fmt.Fprintln(os.Stderr, err)
		closer.Close()
		os.Exit(1)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// configureLogging keeps logrus off the terminal, which the board owns
// while the program runs.
func configureLogging(path string) (io.Closer, error) {
	if path == "" {
		logrus.SetOutput(io.Discard)
		return nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)
	return f, nil
}
