// Package tui is the terminal front end, built on bubbletea. It drives a game scheduler from
// frame ticks and key presses and renders the projected grid with lipgloss.
//
// The model is designed for single-threaded use within the bubbletea event loop.
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/plus3/blockfall/game"
)

// FrameInterval is how often the scheduler advances while the program runs.
const FrameInterval = 50 * time.Millisecond

// frameMsg triggers one scheduler frame.
type frameMsg time.Time

// Bindings maps key names to commands: the arrow keys plus vi-style hjkl.
var Bindings = map[string]game.Command{
	"left":  game.MoveLeft,
	"h":     game.MoveLeft,
	"right": game.MoveRight,
	"l":     game.MoveRight,
	"up":    game.Rotate,
	"k":     game.Rotate,
	"down":  game.Descend,
	"j":     game.Descend,
}

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	gameOverStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	cellStyles    = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("129")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("21")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	}
)

// Model is the bubbletea model for a single player.
type Model struct {
	scheduler  *game.Scheduler
	newSession func() game.Session
	last       time.Time
	quitting   bool
}

// New creates a model driving scheduler. newSession is called when the player restarts after a
// game over; it may be nil to disable restarts.
func New(scheduler *game.Scheduler, newSession func() game.Session) Model {
	return Model{scheduler: scheduler, newSession: newSession}
}

func frameCmd() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return frameCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		now := time.Time(msg)
		dt := FrameInterval.Seconds()
		if !m.last.IsZero() {
			dt = now.Sub(m.last).Seconds()
		}
		m.last = now
		m.scheduler.Once(dt)
		return m, frameCmd()

	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "r":
		if m.scheduler.Session().GameOver() && m.newSession != nil {
			m.scheduler.Reset(m.newSession())
		}
		return m, nil
	}

	cmd, ok := Bindings[key]
	if !ok || m.scheduler.Session().GameOver() {
		return m, nil
	}
	m.scheduler.Submit(cmd)
	m.scheduler.Once(0)
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	session := m.scheduler.Session()
	var b strings.Builder
	b.WriteString(titleStyle.Render("BLOCKFALL"))
	b.WriteString("\n")
	b.WriteString(boardStyle.Render(RenderGrid(session.Snapshot())))
	b.WriteString("\n")

	if session.GameOver() {
		b.WriteString(gameOverStyle.Render("GAME OVER"))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("r restart • q quit"))
	} else {
		b.WriteString(helpStyle.Render("←/→ move • ↑ rotate • ↓ drop • q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderGrid draws every cell two characters wide: filled cells as blocks, empty cells as dots.
func RenderGrid(grid game.Grid) string {
	var b strings.Builder
	for y := range grid.Rows() {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := range grid.Cols() {
			c := grid.At(x, y)
			if c == game.Empty {
				b.WriteString(emptyStyle.Render(" ."))
				continue
			}
			b.WriteString(cellStyles[int(c-1)%len(cellStyles)].Render("██"))
		}
	}
	return b.String()
}
